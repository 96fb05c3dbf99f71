package runtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/schema"
)

// BeginSubmit marks the session as submitting. It fails with ErrSubmitInFlight
// when a submit is already running and with ErrAlreadySubmitted after delivery.
func (e *Engine) BeginSubmit(ctx context.Context, state *domain.State) (*domain.State, error) {
	if err := e.checkEditable(state); err != nil {
		return nil, err
	}
	next := e.cloneState(state)
	next.Submitting = true

	e.logger.Debug("submit started", "session_id", state.SessionID, "step", state.StepIndex)
	if e.hooks.OnSubmitStart != nil {
		base := e.event(domain.EventSubmitStart, next)
		e.hooks.OnSubmitStart(ctx, &base)
	}
	return next, nil
}

// CompleteSubmit validates the whole document and, when valid, makes a single
// delivery attempt with the normalized copy. The returned state always has
// Submitting cleared.
//
//   - invalid: every violation across sections lands in the error map, step unchanged.
//   - delivered: step moves to the confirmation step, errors are emptied, the document
//     becomes the normalized copy and the session is terminal.
//   - delivery failed: document, step and errors are unchanged; Result.Err holds a
//     *domain.DeliveryError.
func (e *Engine) CompleteSubmit(ctx context.Context, state *domain.State) (*domain.State, domain.Result, error) {
	if err := e.checkState(state); err != nil {
		return nil, domain.Result{}, err
	}

	next := e.cloneState(state)
	next.Submitting = false

	normalized, err := schema.ValidateDocument(e.def.Schema, state.Document)
	if err != nil {
		var aggr *schema.AggregateError
		if !errors.As(err, &aggr) {
			return nil, domain.Result{}, err
		}
		next.Errors = aggr.ErrorMap()
		e.emitValidationFailed(ctx, next, true)
		return next, domain.Result{Outcome: domain.OutcomeValidationFailed, Errors: next.Errors.Clone()}, nil
	}

	if derr := e.deliver(ctx, next, normalized); derr != nil {
		return next, domain.Result{Outcome: domain.OutcomeDeliveryFailed, Errors: next.Errors.Clone(), Err: derr}, nil
	}

	from := next.StepIndex
	next.Document = normalized
	next.Errors = make(domain.ErrorMap)
	next.StepIndex = e.def.Registry.Len() - 1
	next.Status = domain.StatusSubmitted
	e.emitStepEnter(ctx, next, from)
	return next, domain.Result{Outcome: domain.OutcomeDelivered, Errors: domain.ErrorMap{}}, nil
}

// Submit runs BeginSubmit and CompleteSubmit back to back for single-owner callers.
func (e *Engine) Submit(ctx context.Context, state *domain.State) (*domain.State, domain.Result, error) {
	pending, err := e.BeginSubmit(ctx, state)
	if err != nil {
		return nil, domain.Result{}, err
	}
	return e.CompleteSubmit(ctx, pending)
}

func (e *Engine) deliver(ctx context.Context, s *domain.State, doc domain.Document) error {
	if e.deliverer == nil {
		return &domain.DeliveryError{FormType: s.FormType, Cause: fmt.Errorf("no deliverer configured")}
	}

	start := e.now()
	err := e.deliverer.Deliver(ctx, s.FormType, doc.Clone())
	elapsed := e.now().Sub(start)

	var derr error
	if err != nil {
		derr = &domain.DeliveryError{FormType: s.FormType, Cause: err}
		e.logger.Error("delivery failed", "session_id", s.SessionID, "form_type", s.FormType, "error", err)
	} else {
		e.logger.Info("application delivered", "session_id", s.SessionID, "form_type", s.FormType, "duration", elapsed)
	}

	if e.hooks.OnDelivery != nil {
		e.hooks.OnDelivery(ctx, &domain.DeliveryEvent{
			EventBase: e.event(domain.EventDelivery, s),
			Duration:  elapsed,
			Err:       derr,
		})
	}
	return derr
}
