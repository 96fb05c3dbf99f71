package ports

import (
	"context"

	"github.com/aretw0/intake/pkg/domain"
)

// Deliverer transmits a validated application to the back office.
// The engine calls it once per submit and never retries.
type Deliverer interface {
	Deliver(ctx context.Context, formType domain.FormType, doc domain.Document) error
}

// DelivererFunc adapts a function to the Deliverer interface.
type DelivererFunc func(ctx context.Context, formType domain.FormType, doc domain.Document) error

func (f DelivererFunc) Deliver(ctx context.Context, formType domain.FormType, doc domain.Document) error {
	return f(ctx, formType, doc)
}
