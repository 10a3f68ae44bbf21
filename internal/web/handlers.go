package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vaughan-dsouza/simple-posts/internal/models"
	"github.com/vaughan-dsouza/simple-posts/internal/utils"
	"github.com/vaughan-dsouza/simple-posts/internal/viewstate"
)

type confirmPrompt struct {
	ID      int64
	Message string
	Post    *models.Post
}

type pageData struct {
	State   viewstate.State
	Alerts  []string
	Confirm *confirmPrompt
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctrl, sess, created := s.controller(r)

	// A plain page load (first visit or reload) mounts the page and fetches.
	// So does a redirect that lands on a controller this process has not
	// seen yet (evicted, restarted or another replica).
	if fresh, _ := sess.Values[keyFresh].(bool); created || !fresh {
		_ = ctrl.List(r.Context())
	}
	delete(sess.Values, keyFresh)

	data := pageData{
		State:  ctrl.Snapshot(),
		Alerts: s.flashes(sess),
	}
	if id, ok := sess.Values[keyConfirmID].(int64); ok {
		msg, _ := sess.Values[keyConfirmMsg].(string)
		post, _ := ctrl.Find(id)
		data.Confirm = &confirmPrompt{ID: id, Message: msg, Post: post}
		delete(sess.Values, keyConfirmID)
		delete(sess.Values, keyConfirmMsg)
	}

	if err := sess.Save(r, w); err != nil {
		s.serverError(w, err)
		return
	}
	s.render(w, data)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctrl, sess := s.actionController(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	ctrl.SetTitle(r.PostFormValue("title"))
	ctrl.SetContent(r.PostFormValue("content"))
	s.warn(sess, ctrl.Submit(r.Context()))

	s.redirectHome(w, r, sess)
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	ctrl, sess := s.actionController(r)

	if id, ok := utils.ParseID(chi.URLParam(r, "id")); ok {
		post, _ := ctrl.Find(id)
		ctrl.BeginEdit(post)
	}

	s.redirectHome(w, r, sess)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	ctrl, sess := s.actionController(r)
	ctrl.CancelEdit()
	s.redirectHome(w, r, sess)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctrl, sess := s.actionController(r)

	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		s.redirectHome(w, r, sess)
		return
	}

	confirm := newFormConfirmer(r)
	s.warn(sess, ctrl.Delete(r.Context(), id, confirm))
	if confirm.pending() {
		sess.Values[keyConfirmID] = id
		sess.Values[keyConfirmMsg] = confirm.asked
	}

	s.redirectHome(w, r, sess)
}

type stateJSON struct {
	Posts   []models.Post `json:"posts"`
	Title   string        `json:"title"`
	Content string        `json:"content"`
	Editing *int64        `json:"editing"`
	Mode    string        `json:"mode"`
	Loading bool          `json:"loading"`
	Error   string        `json:"error,omitempty"`
}

// handleState reports the session's view state. A request without an
// established session gets the empty initial state.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st := viewstate.State{Posts: []models.Post{}}
	if ctrl, ok := s.existing(r); ok {
		st = ctrl.Snapshot()
	}

	out := stateJSON{
		Posts:   st.Posts,
		Title:   st.Form.Title,
		Content: st.Form.Content,
		Mode:    st.Mode().String(),
		Loading: st.Status.Loading,
		Error:   st.Status.Err,
	}
	if st.Editing() {
		id := st.Form.Target.ID
		out.Editing = &id
	}

	utils.JSON(w, http.StatusOK, out)
}
