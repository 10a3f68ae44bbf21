package web

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/vaughan-dsouza/simple-posts/internal/viewstate"
)

// controller resolves the session cookie to its controller, issuing a new
// session id when the cookie is missing or unreadable. created is true when
// the controller did not exist before this request, so it has never fetched.
func (s *Server) controller(r *http.Request) (ctrl *viewstate.Controller, sess *sessions.Session, created bool) {
	sess = s.session(r)

	sid, _ := sess.Values[keySID].(string)
	if sid == "" {
		sid = uuid.NewString()
		sess.Values[keySID] = sid
	}
	ctrl, created = s.sessions.get(sid)
	return ctrl, sess, created
}

// actionController is controller for the form actions. A controller this
// process has not seen before is mounted first, so the action works on the
// current collection and the redirect that follows may skip the fetch.
func (s *Server) actionController(r *http.Request) (*viewstate.Controller, *sessions.Session) {
	ctrl, sess, created := s.controller(r)
	if created {
		_ = ctrl.List(r.Context())
	}
	return ctrl, sess
}

// existing returns the controller of an established session without
// registering a new one.
func (s *Server) existing(r *http.Request) (*viewstate.Controller, bool) {
	sid, _ := s.session(r).Values[keySID].(string)
	if sid == "" {
		return nil, false
	}
	return s.sessions.peek(sid)
}

func (s *Server) session(r *http.Request) *sessions.Session {
	sess, err := s.store.Get(r, sessionName)
	if err != nil {
		s.logger.Debug("discarding unreadable session", "error", err)
	}
	return sess
}

// warn queues a user-facing notice for the next render. Errors that are not
// warnings get a generic notice.
func (s *Server) warn(sess *sessions.Session, err error) {
	if err == nil {
		return
	}
	var w *viewstate.Warning
	if errors.As(err, &w) {
		sess.AddFlash(w.Message)
		return
	}
	sess.AddFlash("Something went wrong")
}

func (s *Server) flashes(sess *sessions.Session) []string {
	var out []string
	for _, f := range sess.Flashes() {
		if msg, ok := f.(string); ok {
			out = append(out, msg)
		}
	}
	return out
}

// redirectHome saves the session and sends the browser back to the page.
// The page was already brought up to date by the action, so the next render
// skips the mount-time fetch.
func (s *Server) redirectHome(w http.ResponseWriter, r *http.Request, sess *sessions.Session) {
	sess.Values[keyFresh] = true
	if err := sess.Save(r, w); err != nil {
		s.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) serverError(w http.ResponseWriter, err error) {
	s.logger.Error("web: request failed", "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
