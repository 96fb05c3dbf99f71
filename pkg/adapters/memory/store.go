package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/aretw0/intake/pkg/domain"
)

// Store keeps wizard sessions in process memory. Progress is lost on exit,
// which is what the CLI's default store and the tests want.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*domain.State
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*domain.State)}
}

// Save stores a snapshot; later edits to state by the caller are not seen.
func (s *Store) Save(_ context.Context, sessionID string, state *domain.State) error {
	snap := state.Snapshot()

	s.mu.Lock()
	s.sessions[sessionID] = snap
	s.mu.Unlock()
	return nil
}

// Load returns a snapshot so callers can mutate it freely.
func (s *Store) Load(_ context.Context, sessionID string) (*domain.State, error) {
	s.mu.RLock()
	state, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return state.Snapshot(), nil
}

func (s *Store) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}

// List returns session IDs in lexical order.
func (s *Store) List(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.sessions)), nil
}
