package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/vaughan-dsouza/simple-posts/internal/models"
)

const (
	TypePostCreated = "post.created"
	TypePostUpdated = "post.updated"
	TypePostDeleted = "post.deleted"
)

type PostPayload struct {
	PostID int64  `json:"post_id"`
	Title  string `json:"title,omitempty"`
}

// PostEvent is published after every successful mutation of a post.
type PostEvent struct {
	ID        uuid.UUID   `json:"id"`
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   PostPayload `json:"payload"`
}

func NewPostEvent(eventType string, post models.Post) PostEvent {
	return PostEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload: PostPayload{
			PostID: post.ID,
			Title:  post.Title,
		},
	}
}
