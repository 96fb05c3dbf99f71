package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/intake/internal/logging"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/ports"
)

// Sender is the transport used by Deliverer; *Client satisfies it.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

var _ ports.Deliverer = (*Deliverer)(nil)

// Deliverer mails each submitted application as an HTML summary.
type Deliverer struct {
	sender   Sender
	renderer *Renderer
	logger   *slog.Logger
}

// DelivererOption configures a Deliverer.
type DelivererOption func(*Deliverer)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) DelivererOption {
	return func(d *Deliverer) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDeliverer wires a sender and a renderer.
func NewDeliverer(sender Sender, renderer *Renderer, opts ...DelivererOption) *Deliverer {
	d := &Deliverer{
		sender:   sender,
		renderer: renderer,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Deliver renders doc and sends it once.
func (d *Deliverer) Deliver(ctx context.Context, formType domain.FormType, doc domain.Document) error {
	html, err := d.renderer.Render(formType, doc)
	if err != nil {
		return err
	}

	id, err := d.sender.Send(ctx, Message{
		Subject: Subject(formType),
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("send application mail: %w", err)
	}

	d.logger.Info("Application mailed", "form_type", formType, "message_id", id)
	return nil
}
