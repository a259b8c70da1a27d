package server

import (
	"sync"
	"time"

	"github.com/abhisek/karuta/internal/session"
)

// entry holds one player's controller. Its mutex serializes every request
// touching the controller.
type entry struct {
	mu       sync.Mutex
	ctrl     *session.Controller
	lastSeen time.Time
}

// registry maps stable session handles to controllers. The handle given to
// the client does not change when the controller restarts its quiz.
type registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
	create  func() *session.Controller
}

func newRegistry(ttl time.Duration, now func() time.Time, create func() *session.Controller) *registry {
	return &registry{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     now,
		create:  create,
	}
}

// add creates a controller under a new handle, first pruning idle sessions.
func (r *registry) add() (string, *entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pruneLocked()
	id := session.NewID()
	e := &entry{ctrl: r.create(), lastSeen: r.now()}
	r.entries[id] = e
	return id, e
}

func (r *registry) get(id string) (*entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e, true
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// prune drops sessions idle for longer than the TTL and returns how many
// were removed.
func (r *registry) prune() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pruneLocked()
}

func (r *registry) pruneLocked() int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.ttl)
	n := 0
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			n++
		}
	}
	return n
}
