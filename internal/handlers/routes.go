package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/vaughan-dsouza/simple-posts/internal/middleware"
)

// Routes builds the Posts Service router. An empty origin list or one
// containing "*" allows every origin.
func (h *Handler) Routes(logger *slog.Logger, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health.Check)

	r.Get("/posts", h.Posts.GetPosts)
	r.Post("/posts", h.Posts.CreatePost)
	r.Get("/posts/{id}", h.Posts.GetPostByID)
	r.Put("/posts/{id}", h.Posts.UpdatePost)
	r.Delete("/posts/{id}", h.Posts.DeletePost)

	return r
}
