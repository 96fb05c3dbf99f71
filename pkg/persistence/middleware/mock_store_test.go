package middleware_test

import (
	"context"
	"slices"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/ports"
)

// rawStore keeps the pointers that reach the backend so tests can inspect
// what a middleware actually persisted.
type rawStore struct {
	states map[string]*domain.State
	saves  int
}

func newRawStore() *rawStore {
	return &rawStore{states: map[string]*domain.State{}}
}

func (s *rawStore) Save(_ context.Context, id string, state *domain.State) error {
	s.saves++
	s.states[id] = state
	return nil
}

func (s *rawStore) Load(_ context.Context, id string) (*domain.State, error) {
	if st, ok := s.states[id]; ok {
		return st, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (s *rawStore) Delete(_ context.Context, id string) error {
	delete(s.states, id)
	return nil
}

func (s *rawStore) List(context.Context) ([]string, error) {
	ids := make([]string, 0, len(s.states))
	for id := range s.states {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

var _ ports.StateStore = (*rawStore)(nil)
