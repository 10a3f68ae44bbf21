package store

import (
	"context"
	"sort"
	"sync"

	"github.com/vaughan-dsouza/simple-posts/internal/models"
)

var _ PostStore = (*MemoryStore)(nil)

// MemoryStore keeps posts in process memory. Used with DB_DRIVER=memory and in tests.
type MemoryStore struct {
	mu     sync.RWMutex
	posts  map[int64]models.Post
	nextID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		posts:  make(map[int64]models.Post),
		nextID: 1,
	}
}

func (s *MemoryStore) List(ctx context.Context) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ID < posts[j].ID
	})
	return posts, nil
}

func (s *MemoryStore) Get(ctx context.Context, id int64) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) Create(ctx context.Context, in models.PostInput) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := models.Post{ID: s.nextID, Title: in.Title, Content: in.Content}
	s.nextID++
	s.posts[p.ID] = p
	return &p, nil
}

func (s *MemoryStore) Update(ctx context.Context, id int64, in models.PostInput) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return nil, ErrNotFound
	}
	p := models.Post{ID: id, Title: in.Title, Content: in.Content}
	s.posts[id] = p
	return &p, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}
