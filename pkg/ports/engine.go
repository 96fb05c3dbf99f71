package ports

import (
	"context"

	"github.com/aretw0/intake/pkg/domain"
)

// WizardEngine defines the stateless transition surface used by adapters that keep
// sessions externally (HTTP, stores). Every call takes a state and returns a new one;
// the input state is never mutated.
type WizardEngine interface {
	Start(ctx context.Context, sessionID string) *domain.State
	Update(ctx context.Context, state *domain.State, section string, value any) (*domain.State, domain.Result, error)
	UpdateField(ctx context.Context, state *domain.State, path string, value any) (*domain.State, domain.Result, error)
	AddEntry(ctx context.Context, state *domain.State, section string) (*domain.State, domain.Result, error)
	RemoveEntry(ctx context.Context, state *domain.State, section string, index int) (*domain.State, domain.Result, error)
	Advance(ctx context.Context, state *domain.State) (*domain.State, domain.Result, error)
	Retreat(ctx context.Context, state *domain.State) (*domain.State, domain.Result, error)

	// BeginSubmit marks the state as submitting. Hosts persist the result before Deliver runs.
	BeginSubmit(ctx context.Context, state *domain.State) (*domain.State, error)
	// CompleteSubmit validates the whole document and delivers it.
	CompleteSubmit(ctx context.Context, state *domain.State) (*domain.State, domain.Result, error)
	// Submit runs BeginSubmit and CompleteSubmit back to back.
	Submit(ctx context.Context, state *domain.State) (*domain.State, domain.Result, error)
}
