package runtime

import (
	"context"
	"errors"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/schema"
)

// Advance validates the section owned by the current step. On success the error map
// is emptied and the index moves forward, except on the last editable step where the
// wizard stays put (leaving it requires Submit). On failure the error map is replaced
// with the step's violations and the index is unchanged.
func (e *Engine) Advance(ctx context.Context, state *domain.State) (*domain.State, domain.Result, error) {
	if err := e.checkEditable(state); err != nil {
		return nil, domain.Result{}, err
	}

	reg := e.def.Registry
	from := state.StepIndex
	section := reg.SectionAt(from)

	next := e.cloneState(state)
	if section == "" {
		// Only reachable with a hand-built state sitting on the confirmation step.
		return next, domain.Result{Outcome: domain.OutcomeStayed, Errors: next.Errors.Clone()}, nil
	}

	_, err := schema.ValidateSection(e.def.Schema, section, state.Document[section])
	if err != nil {
		var aggr *schema.AggregateError
		if !errors.As(err, &aggr) {
			return nil, domain.Result{}, err
		}
		next.Errors = aggr.ErrorMap()
		e.emitValidationFailed(ctx, next, false)
		return next, domain.Result{Outcome: domain.OutcomeValidationFailed, Errors: next.Errors.Clone()}, nil
	}

	next.Errors = make(domain.ErrorMap)
	if from >= reg.LastEditable() {
		return next, domain.Result{Outcome: domain.OutcomeStayed, Errors: domain.ErrorMap{}}, nil
	}
	next.StepIndex = from + 1
	e.emitStepEnter(ctx, next, from)
	return next, domain.Result{Outcome: domain.OutcomeAdvanced, Errors: domain.ErrorMap{}}, nil
}

// Retreat moves back one step without validating and without touching the error map.
// At step 0 it is a no-op.
func (e *Engine) Retreat(ctx context.Context, state *domain.State) (*domain.State, domain.Result, error) {
	if err := e.checkEditable(state); err != nil {
		return nil, domain.Result{}, err
	}

	next := e.cloneState(state)
	if state.StepIndex <= 0 {
		next.StepIndex = 0
		return next, domain.Result{Outcome: domain.OutcomeStayed, Errors: next.Errors.Clone()}, nil
	}
	next.StepIndex = state.StepIndex - 1
	e.emitStepEnter(ctx, next, state.StepIndex)
	return next, domain.Result{Outcome: domain.OutcomeRetreated, Errors: next.Errors.Clone()}, nil
}
