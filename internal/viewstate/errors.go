package viewstate

const (
	MsgBlankFields   = "Please enter title and content"
	MsgCreateFailed  = "Create failed"
	MsgUpdateFailed  = "Update failed"
	MsgDeleteFailed  = "Delete failed"
	MsgLoadFailed    = "Could not load posts"
	MsgConfirmDelete = "Delete this post?"
)

// Warning is a failure to be shown to the user as a modal notice.
// Message is user-facing; Err, if set, is the underlying cause.
type Warning struct {
	Message string
	Err     error
}

func (w *Warning) Error() string {
	if w.Err != nil {
		return w.Message + ": " + w.Err.Error()
	}
	return w.Message
}

func (w *Warning) Unwrap() error {
	return w.Err
}

// ErrBlankFields is returned without any network call when a draft is blank.
var ErrBlankFields = &Warning{Message: MsgBlankFields}
