package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSessionStart     EventType = "session_start"
	EventStepEnter        EventType = "step_enter"
	EventValidationFailed EventType = "validation_failed"
	EventSubmitStart      EventType = "submit_start"
	EventDelivery         EventType = "delivery"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
	FormType  FormType  `json:"form_type"`
}

// StepEvent represents entry into a step (including the start of a session).
type StepEvent struct {
	EventBase
	From     int    `json:"from"`
	To       int    `json:"to"`
	StepName string `json:"step_name"`
}

// ValidationEvent represents a validation pass that produced errors.
type ValidationEvent struct {
	EventBase
	Step        int      `json:"step"`
	WholeForm   bool     `json:"whole_form"`
	FailedPaths []string `json:"failed_paths"`
}

// DeliveryEvent represents one delivery attempt.
type DeliveryEvent struct {
	EventBase
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnSessionStart     func(context.Context, *StepEvent)
	OnStepEnter        func(context.Context, *StepEvent)
	OnValidationFailed func(context.Context, *ValidationEvent)
	OnSubmitStart      func(context.Context, *EventBase)
	OnDelivery         func(context.Context, *DeliveryEvent)
}

// Merge returns hooks that call h first and then other for every event.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnSessionStart:     chain(h.OnSessionStart, other.OnSessionStart),
		OnStepEnter:        chain(h.OnStepEnter, other.OnStepEnter),
		OnValidationFailed: chain(h.OnValidationFailed, other.OnValidationFailed),
		OnSubmitStart:      chain(h.OnSubmitStart, other.OnSubmitStart),
		OnDelivery:         chain(h.OnDelivery, other.OnDelivery),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
