// Package logsink delivers applications to a structured log instead of an inbox.
// It backs the "log" mail driver used in development.
package logsink

import (
	"context"
	"log/slog"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/persistence/middleware"
	"github.com/aretw0/intake/pkg/ports"
)

// DefaultPatterns mask contact and identity fields.
var DefaultPatterns = []string{"(?i)email", "(?i)phone", "(?i)licen[cs]e", "(?i)vin$", "(?i)dateOfBirth"}

var _ ports.Deliverer = (*Deliverer)(nil)

// Deliverer logs each application with sensitive values masked.
type Deliverer struct {
	logger *slog.Logger
	masker *middleware.Masker
}

// New creates a Deliverer. A nil masker uses DefaultPatterns.
func New(logger *slog.Logger, masker *middleware.Masker) *Deliverer {
	if masker == nil {
		masker = middleware.MustMasker(DefaultPatterns...)
	}
	return &Deliverer{logger: logger, masker: masker}
}

func (d *Deliverer) Deliver(ctx context.Context, formType domain.FormType, doc domain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.logger.InfoContext(ctx, "Application received",
		"form_type", formType,
		"document", map[string]any(d.masker.Mask(doc)),
	)
	return nil
}
