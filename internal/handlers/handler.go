package handlers

import (
	"log/slog"

	"github.com/vaughan-dsouza/simple-posts/internal/events"
	"github.com/vaughan-dsouza/simple-posts/internal/store"
)

type Handler struct {
	Store  store.PostStore
	Posts  *PostHandler
	Health *HealthHandler
}

func NewHandler(s store.PostStore, pub events.Publisher, logger *slog.Logger) *Handler {
	if pub == nil {
		pub = events.NoopPublisher{}
	}
	return &Handler{
		Store:  s,
		Posts:  NewPostHandler(s, pub, logger),
		Health: &HealthHandler{Store: s},
	}
}
