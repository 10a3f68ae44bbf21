package viewstate

import "github.com/vaughan-dsouza/simple-posts/internal/models"

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// EditTarget names the post the form is bound to. Set is false in create-mode.
type EditTarget struct {
	ID  int64
	Set bool
}

// FormState holds the drafts and the edit target.
type FormState struct {
	Title   string
	Content string
	Target  EditTarget
}

func (f FormState) Mode() Mode {
	if f.Target.Set {
		return ModeEdit
	}
	return ModeCreate
}

type Status struct {
	Loading bool
	Err     string
}

// State is a point-in-time copy of a Controller, ready to render.
// Posts are in display order: newest first.
type State struct {
	Posts  []models.Post
	Form   FormState
	Status Status
}

func (s State) Mode() Mode {
	return s.Form.Mode()
}

func (s State) Editing() bool {
	return s.Form.Target.Set
}

func (s State) SubmitLabel() string {
	if s.Editing() {
		return "Update Post"
	}
	return "Create Post"
}

// Empty reports whether the "no posts yet" placeholder should be shown.
func (s State) Empty() bool {
	return !s.Status.Loading && s.Status.Err == "" && len(s.Posts) == 0
}
