// Package viewstate holds the UI state of the posts page and mediates between
// user actions and the Posts Service.
//
// A Controller is one page's worth of state. Every mutation of the remote
// collection is followed by a full re-fetch; the cached collection is never
// patched locally.
package viewstate

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/vaughan-dsouza/simple-posts/internal/models"
)

// PostsService is the remote collaborator. *client.Client satisfies it.
type PostsService interface {
	List(ctx context.Context) ([]models.Post, error)
	Create(ctx context.Context, in models.PostInput) (*models.Post, error)
	Update(ctx context.Context, id int64, in models.PostInput) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(message string) bool
}

type ConfirmFunc func(message string) bool

func (f ConfirmFunc) Confirm(message string) bool {
	return f(message)
}

type Controller struct {
	svc    PostsService
	logger *slog.Logger

	// op serializes user actions; mu guards the fields below so that
	// Snapshot can run while an action is waiting on the network.
	op     sync.Mutex
	mu     sync.RWMutex
	posts  []models.Post
	form   FormState
	status Status
}

func NewController(svc PostsService, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		svc:    svc,
		logger: logger,
		posts:  []models.Post{},
	}
}

// List re-fetches the collection. Failures are recorded in Status.Err and
// also returned.
func (c *Controller) List(ctx context.Context) error {
	c.op.Lock()
	defer c.op.Unlock()
	return c.list(ctx)
}

func (c *Controller) list(ctx context.Context) error {
	c.mu.Lock()
	c.status = Status{Loading: true}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.status.Loading = false
		c.mu.Unlock()
	}()

	posts, err := c.svc.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.Error("fetch posts failed", "error", err)
		c.status.Err = MsgLoadFailed
		c.posts = []models.Post{}
		return err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	c.posts = posts
	return nil
}

func (c *Controller) Create(ctx context.Context, title, content string) error {
	c.op.Lock()
	defer c.op.Unlock()

	if blank(title) || blank(content) {
		return ErrBlankFields
	}
	if _, err := c.svc.Create(ctx, models.PostInput{Title: title, Content: content}); err != nil {
		c.logger.Error("create post failed", "error", err)
		return &Warning{Message: MsgCreateFailed, Err: err}
	}

	_ = c.list(ctx)

	c.mu.Lock()
	c.form.Title = ""
	c.form.Content = ""
	c.mu.Unlock()
	return nil
}

func (c *Controller) Update(ctx context.Context, id int64, title, content string) error {
	c.op.Lock()
	defer c.op.Unlock()

	if blank(title) || blank(content) {
		return ErrBlankFields
	}
	if _, err := c.svc.Update(ctx, id, models.PostInput{Title: title, Content: content}); err != nil {
		c.logger.Error("update post failed", "id", id, "error", err)
		return &Warning{Message: MsgUpdateFailed, Err: err}
	}

	_ = c.list(ctx)

	c.mu.Lock()
	c.form = FormState{}
	c.mu.Unlock()
	return nil
}

// Delete removes a post once confirm agrees. A declined confirmation is not
// an error. The follow-up refresh is awaited before Delete returns.
func (c *Controller) Delete(ctx context.Context, id int64, confirm Confirmer) error {
	if confirm == nil || !confirm.Confirm(MsgConfirmDelete) {
		return nil
	}

	c.op.Lock()
	defer c.op.Unlock()

	if err := c.svc.Delete(ctx, id); err != nil {
		c.logger.Error("delete post failed", "id", id, "error", err)
		return &Warning{Message: MsgDeleteFailed, Err: err}
	}

	_ = c.list(ctx)
	return nil
}

// BeginEdit binds the form to post. A nil post is ignored.
func (c *Controller) BeginEdit(post *models.Post) {
	if post == nil {
		return
	}
	c.op.Lock()
	defer c.op.Unlock()

	c.mu.Lock()
	c.form = FormState{
		Title:   post.Title,
		Content: post.Content,
		Target:  EditTarget{ID: post.ID, Set: true},
	}
	c.mu.Unlock()
}

func (c *Controller) CancelEdit() {
	c.op.Lock()
	defer c.op.Unlock()

	c.mu.Lock()
	c.form = FormState{}
	c.mu.Unlock()
}

// Submit updates the edit target when one is set and creates a post otherwise.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.RLock()
	form := c.form
	c.mu.RUnlock()

	if form.Target.Set {
		return c.Update(ctx, form.Target.ID, form.Title, form.Content)
	}
	return c.Create(ctx, form.Title, form.Content)
}

func (c *Controller) SetTitle(title string) {
	c.mu.Lock()
	c.form.Title = title
	c.mu.Unlock()
}

func (c *Controller) SetContent(content string) {
	c.mu.Lock()
	c.form.Content = content
	c.mu.Unlock()
}

// Find looks id up in the cached collection.
func (c *Controller) Find(id int64) (*models.Post, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.posts {
		if p.ID == id {
			post := p
			return &post, true
		}
	}
	return nil, false
}

func (c *Controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	display := make([]models.Post, len(c.posts))
	for i, p := range c.posts {
		display[len(c.posts)-1-i] = p
	}
	return State{
		Posts:  display,
		Form:   c.form,
		Status: c.status,
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
