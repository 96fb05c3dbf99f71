package ports

import (
	"context"

	"github.com/aretw0/intake/pkg/domain"
)

// StateStore persists wizard sessions between requests or CLI runs.
// Implementations must not keep references to the states they are handed.
type StateStore interface {
	Save(ctx context.Context, sessionID string, state *domain.State) error

	// Load returns domain.ErrSessionNotFound for unknown or expired sessions.
	Load(ctx context.Context, sessionID string) (*domain.State, error)

	// Delete is a no-op for unknown sessions.
	Delete(ctx context.Context, sessionID string) error

	List(ctx context.Context) ([]string, error)
}
