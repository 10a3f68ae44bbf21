package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/vaughan-dsouza/simple-posts/internal/events"
	"github.com/vaughan-dsouza/simple-posts/internal/models"
	"github.com/vaughan-dsouza/simple-posts/internal/store"
	"github.com/vaughan-dsouza/simple-posts/internal/utils"
)

const msgNotFound = "Post not found"

type PostHandler struct {
	Store     store.PostStore
	Publisher events.Publisher
	Logger    *slog.Logger
}

func NewPostHandler(s store.PostStore, pub events.Publisher, logger *slog.Logger) *PostHandler {
	return &PostHandler{Store: s, Publisher: pub, Logger: logger}
}

type postBody struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

const (
	maxTitleLen   = 100
	maxContentLen = 500
)

// input validates a create/update body. Both fields are required, must not be
// blank and must fit the column sizes. The second result is the 400 message.
func (b postBody) input() (models.PostInput, string) {
	if b.Title == nil || b.Content == nil || utils.Blank(*b.Title) || utils.Blank(*b.Content) {
		return models.PostInput{}, "title and content are required"
	}
	if utf8.RuneCountInString(*b.Title) > maxTitleLen {
		return models.PostInput{}, fmt.Sprintf("title must be at most %d characters", maxTitleLen)
	}
	if utf8.RuneCountInString(*b.Content) > maxContentLen {
		return models.PostInput{}, fmt.Sprintf("content must be at most %d characters", maxContentLen)
	}
	return models.PostInput{Title: *b.Title, Content: *b.Content}, ""
}

// ---------------------- CREATE ----------------------

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var body postBody
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return
	}
	in, msg := body.input()
	if msg != "" {
		utils.JSONError(w, http.StatusBadRequest, msg)
		return
	}

	post, err := h.Store.Create(r.Context(), in)
	if err != nil {
		h.Logger.Error("create post failed", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.publish(r.Context(), events.TypePostCreated, *post)
	utils.JSON(w, http.StatusCreated, post)
}

// ---------------------- GET ONE ----------------------

func (h *PostHandler) GetPostByID(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.JSONMessage(w, http.StatusNotFound, msgNotFound)
		return
	}

	post, err := h.Store.Get(r.Context(), id)
	if err != nil {
		h.storeError(w, "get post failed", id, err)
		return
	}

	utils.JSON(w, http.StatusOK, post)
}

// ---------------------- LIST ----------------------

func (h *PostHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Store.List(r.Context())
	if err != nil {
		h.Logger.Error("list posts failed", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, posts)
}

// ---------------------- UPDATE ----------------------

func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.JSONMessage(w, http.StatusNotFound, msgNotFound)
		return
	}

	var body postBody
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return
	}
	in, msg := body.input()
	if msg != "" {
		utils.JSONError(w, http.StatusBadRequest, msg)
		return
	}

	post, err := h.Store.Update(r.Context(), id, in)
	if err != nil {
		h.storeError(w, "update post failed", id, err)
		return
	}

	h.publish(r.Context(), events.TypePostUpdated, *post)
	utils.JSON(w, http.StatusOK, post)
}

// ---------------------- DELETE ----------------------

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.JSONMessage(w, http.StatusNotFound, msgNotFound)
		return
	}

	if err := h.Store.Delete(r.Context(), id); err != nil {
		h.storeError(w, "delete post failed", id, err)
		return
	}

	h.publish(r.Context(), events.TypePostDeleted, models.Post{ID: id})
	utils.JSONMessage(w, http.StatusOK, "Post deleted")
}

func (h *PostHandler) storeError(w http.ResponseWriter, msg string, id int64, err error) {
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONMessage(w, http.StatusNotFound, msgNotFound)
		return
	}
	h.Logger.Error(msg, "id", id, "error", err)
	utils.JSONError(w, http.StatusInternalServerError, err.Error())
}

// publish never fails the request; the mutation is already committed.
func (h *PostHandler) publish(ctx context.Context, eventType string, post models.Post) {
	if err := h.Publisher.Publish(ctx, events.NewPostEvent(eventType, post)); err != nil {
		h.Logger.Warn("publish event failed", "type", eventType, "post_id", post.ID, "error", err)
	}
}
