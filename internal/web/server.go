// Package web serves the posts page. Each browser session owns a
// viewstate.Controller; form posts drive it and the page is re-rendered
// from its snapshot.
package web

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/vaughan-dsouza/simple-posts/internal/config"
	"github.com/vaughan-dsouza/simple-posts/internal/middleware"
	"github.com/vaughan-dsouza/simple-posts/internal/viewstate"
)

const sessionName = "posts_session"

// session keys
const (
	keySID        = "sid"
	keyFresh      = "fresh"
	keyConfirmID  = "confirm_id"
	keyConfirmMsg = "confirm_msg"
)

type Server struct {
	api      viewstate.PostsService
	store    sessions.Store
	sessions *registry
	tmpl     *template.Template
	logger   *slog.Logger
}

func New(api viewstate.PostsService, cfg *config.WebConfig, logger *slog.Logger) *Server {
	s := &Server{
		api:    api,
		store:  newSessionStore(cfg),
		tmpl:   parseTemplates(),
		logger: logger,
	}
	s.sessions = newRegistry(cfg.MaxSessions, cfg.SessionIdleTTL, func() *viewstate.Controller {
		return viewstate.NewController(s.api, s.logger)
	})
	return s
}

func newSessionStore(cfg *config.WebConfig) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(cfg.SessionIdleTTL.Seconds()),
		SameSite: http.SameSiteLaxMode,
		Secure:   cfg.CookieSecure,
	}
	return store
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logging(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(noStore)

	r.Get("/", s.handleIndex)
	r.Get("/state", s.handleState)
	r.Post("/submit", s.handleSubmit)
	r.Post("/edit/{id}", s.handleEdit)
	r.Post("/cancel", s.handleCancel)
	r.Post("/delete/{id}", s.handleDelete)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

// noStore keeps browsers from caching per-session pages.
func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
