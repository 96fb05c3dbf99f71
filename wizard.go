package intake

import (
	"context"
	"sync"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/forms"
)

// Wizard is a stateful handle over one session, for hosts that keep the
// session in process (terminal runners, tests). It is safe for concurrent use:
// while a delivery is in flight every other transition fails with
// domain.ErrSubmitInFlight and Submitting reports true.
type Wizard struct {
	mu     sync.Mutex
	engine *Engine
	state  *domain.State
}

// NewWizard starts a fresh session.
func (e *Engine) NewWizard(ctx context.Context, sessionID string) *Wizard {
	return &Wizard{engine: e, state: e.Start(ctx, sessionID)}
}

// Resume wraps an existing state, e.g. one loaded from a store.
func (e *Engine) Resume(state *domain.State) *Wizard {
	return &Wizard{engine: e, state: state.Snapshot()}
}

// Definition returns the form the wizard fills.
func (w *Wizard) Definition() *forms.Definition {
	return w.engine.Definition()
}

// State returns a snapshot of the current state.
func (w *Wizard) State() *domain.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Snapshot()
}

// Step returns the current step index.
func (w *Wizard) Step() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.StepIndex
}

// Errors returns a copy of the current error map.
func (w *Wizard) Errors() domain.ErrorMap {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Errors.Clone()
}

// Submitting reports whether a delivery is in flight.
func (w *Wizard) Submitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Submitting
}

// Done reports whether the application was delivered.
func (w *Wizard) Done() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.IsSubmitted()
}

// Progress reports the progress indicator of the current step.
func (w *Wizard) Progress() domain.Progress {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.engine.Progress(w.state)
}

// Update replaces one section wholesale; errors of changed fields are cleared.
func (w *Wizard) Update(ctx context.Context, section string, value any) (domain.Result, error) {
	return w.apply(func(s *domain.State) (*domain.State, domain.Result, error) {
		return w.engine.Update(ctx, s, section, value)
	})
}

// UpdateField sets one leaf field by dotted path.
func (w *Wizard) UpdateField(ctx context.Context, path string, value any) (domain.Result, error) {
	return w.apply(func(s *domain.State) (*domain.State, domain.Result, error) {
		return w.engine.UpdateField(ctx, s, path, value)
	})
}

// AddEntry appends a seeded record to a repeatable section.
func (w *Wizard) AddEntry(ctx context.Context, section string) (domain.Result, error) {
	return w.apply(func(s *domain.State) (*domain.State, domain.Result, error) {
		return w.engine.AddEntry(ctx, s, section)
	})
}

// RemoveEntry drops the record at index; the first record cannot be removed.
func (w *Wizard) RemoveEntry(ctx context.Context, section string, index int) (domain.Result, error) {
	return w.apply(func(s *domain.State) (*domain.State, domain.Result, error) {
		return w.engine.RemoveEntry(ctx, s, section, index)
	})
}

// Advance validates the current step and moves forward when it passes.
func (w *Wizard) Advance(ctx context.Context) (domain.Result, error) {
	return w.apply(func(s *domain.State) (*domain.State, domain.Result, error) {
		return w.engine.Advance(ctx, s)
	})
}

// Retreat moves back one step without validating. It is a no-op at step 0.
func (w *Wizard) Retreat(ctx context.Context) (domain.Result, error) {
	return w.apply(func(s *domain.State) (*domain.State, domain.Result, error) {
		return w.engine.Retreat(ctx, s)
	})
}

// Submit validates and delivers the document. The lock is released during delivery
// so observers can see Submitting() == true.
func (w *Wizard) Submit(ctx context.Context) (domain.Result, error) {
	w.mu.Lock()
	pending, err := w.engine.BeginSubmit(ctx, w.state)
	if err != nil {
		w.mu.Unlock()
		return domain.Result{}, err
	}
	w.state = pending
	w.mu.Unlock()

	next, res, err := w.engine.CompleteSubmit(ctx, pending)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		// Release the flag so the session is not stuck submitting.
		w.state = pending.Snapshot()
		w.state.Submitting = false
		return domain.Result{}, err
	}
	w.state = next
	return res, nil
}

// Proceed advances, or submits on the last editable step.
func (w *Wizard) Proceed(ctx context.Context) (domain.Result, error) {
	if w.Step() >= w.engine.Definition().Registry.LastEditable() {
		return w.Submit(ctx)
	}
	return w.Advance(ctx)
}

func (w *Wizard) apply(op func(*domain.State) (*domain.State, domain.Result, error)) (domain.Result, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	next, res, err := op(w.state)
	if err != nil {
		return domain.Result{}, err
	}
	w.state = next
	return res, nil
}
