package state

import (
	"sync"

	"github.com/simaogato/finance-dashboard/internal/domain"
)

// Listener is called after every committed mutation
type Listener func()

// Store holds one user's State in memory and serializes access to it.
// Readers always get a deep copy; writers mutate through Update.
type Store struct {
	mu        sync.RWMutex
	state     domain.State
	listeners []Listener
}

// NewStore creates a new Store seeded with the given state
func NewStore(initial domain.State) *Store {
	initial.Normalize()
	return &Store{state: initial.Clone()}
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() domain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Update applies fn to a working copy and commits it when fn succeeds.
// A failing fn leaves the store untouched, and so does one that changes nothing:
// listeners only hear about real changes. They run after the lock is released.
func (s *Store) Update(fn func(st *domain.State) error) error {
	s.mu.Lock()
	working := s.state.Clone()
	if err := fn(&working); err != nil {
		s.mu.Unlock()
		return err
	}
	working.Normalize()
	if working.Equal(s.state) {
		s.mu.Unlock()
		return nil
	}
	s.state = working
	listeners := append([]Listener{}, s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l()
	}
	return nil
}

// Replace swaps the whole state and notifies listeners when it differs
func (s *Store) Replace(next domain.State) {
	_ = s.Update(func(st *domain.State) error {
		*st = next.Clone()
		return nil
	})
}

// Load swaps the whole state without notifying listeners.
// Used when hydrating from a persisted copy that must not echo back as a change.
func (s *Store) Load(next domain.State) {
	next = next.Clone()
	next.Normalize()

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()
}

// Subscribe registers l to be called after every committed mutation
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}
