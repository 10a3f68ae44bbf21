package web

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/vaughan-dsouza/simple-posts/internal/viewstate"
)

// registry keeps one controller per browser session. It holds at most size
// controllers, dropping the least recently used one when full, and forgets a
// controller once it has been idle for ttl. A size or ttl <= 0 disables that
// limit.
type registry struct {
	// mu makes lookup-or-create atomic for a single id.
	mu     sync.Mutex
	cache  *expirable.LRU[string, *viewstate.Controller]
	create func() *viewstate.Controller
}

func newRegistry(size int, ttl time.Duration, create func() *viewstate.Controller) *registry {
	if size < 0 {
		size = 0
	}
	return &registry{
		cache:  expirable.NewLRU[string, *viewstate.Controller](size, nil, ttl),
		create: create,
	}
}

// get returns the controller for id and whether it was just created.
func (r *registry) get(id string) (*viewstate.Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ctrl, ok := r.cache.Get(id); ok {
		// re-adding renews the idle deadline
		r.cache.Add(id, ctrl)
		return ctrl, false
	}
	ctrl := r.create()
	r.cache.Add(id, ctrl)
	return ctrl, true
}

// peek returns the controller for id without creating one.
func (r *registry) peek(id string) (*viewstate.Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.Get(id)
}

func (r *registry) len() int {
	return r.cache.Len()
}
