package store

import (
	"context"
	"errors"

	"github.com/vaughan-dsouza/simple-posts/internal/models"
)

var ErrNotFound = errors.New("post not found")

// PostStore persists posts. List returns posts in ascending id order.
type PostStore interface {
	List(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, in models.PostInput) (*models.Post, error)
	Update(ctx context.Context, id int64, in models.PostInput) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}
