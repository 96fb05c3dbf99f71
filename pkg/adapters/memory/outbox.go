package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/intake/pkg/domain"
)

// Message is one application accepted by the Outbox.
type Message struct {
	FormType    domain.FormType
	Document    domain.Document
	DeliveredAt time.Time
}

// Outbox implements ports.Deliverer by keeping applications in memory.
// It backs the "memory" mail driver for local runs and tests.
type Outbox struct {
	mu       sync.Mutex
	messages []Message
	fail     error
}

// NewOutbox creates an empty outbox.
func NewOutbox() *Outbox {
	return &Outbox{}
}

// FailWith makes every following Deliver return err. Pass nil to recover.
func (o *Outbox) FailWith(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fail = err
}

// Deliver stores a copy of doc.
func (o *Outbox) Deliver(ctx context.Context, formType domain.FormType, doc domain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fail != nil {
		return o.fail
	}
	o.messages = append(o.messages, Message{
		FormType:    formType,
		Document:    doc.Clone(),
		DeliveredAt: time.Now().UTC(),
	})
	return nil
}

// Messages returns the delivered applications in order.
func (o *Outbox) Messages() []Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Message(nil), o.messages...)
}

// Len returns the number of delivered applications.
func (o *Outbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.messages)
}
