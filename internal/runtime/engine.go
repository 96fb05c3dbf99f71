package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/intake/internal/logging"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/forms"
	"github.com/aretw0/intake/pkg/ports"
)

// Engine is the wizard state machine of one form family.
// It is stateless: every operation takes a state and returns a new one,
// leaving the input untouched.
type Engine struct {
	def       *forms.Definition
	deliverer ports.Deliverer
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
	now       func() time.Time
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger used for transition diagnostics.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability callbacks. Hooks registered
// by repeated options all fire, in registration order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithClock overrides the time source used for timestamps and delivery durations.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

var _ ports.WizardEngine = (*Engine)(nil)

// NewEngine creates an engine for def. The deliverer receives normalized documents on submit.
func NewEngine(def *forms.Definition, deliverer ports.Deliverer, opts ...EngineOption) *Engine {
	e := &Engine{
		def:       def,
		deliverer: deliverer,
		logger:    logging.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Definition returns the form family the engine drives.
func (e *Engine) Definition() *forms.Definition {
	return e.def
}

// Start creates a fresh session at step 0 with a seeded document.
func (e *Engine) Start(ctx context.Context, sessionID string) *domain.State {
	state := domain.NewState(sessionID, e.def.Type, e.def.Seed())
	now := e.now().UTC()
	state.CreatedAt, state.UpdatedAt = now, now

	e.logger.Debug("session started", "session_id", sessionID, "form_type", e.def.Type)
	if e.hooks.OnSessionStart != nil {
		e.hooks.OnSessionStart(ctx, &domain.StepEvent{
			EventBase: e.event(domain.EventSessionStart, state),
			From:      0,
			To:        0,
			StepName:  e.stepName(0),
		})
	}
	return state
}

// cloneState creates a deep copy of the state for the next transition.
func (e *Engine) cloneState(s *domain.State) *domain.State {
	next := s.Snapshot()
	if next.Errors == nil {
		next.Errors = make(domain.ErrorMap)
	}
	if next.Document == nil {
		next.Document = make(domain.Document)
	}
	next.UpdatedAt = e.now().UTC()
	return next
}

// checkEditable rejects transitions on nil, foreign, submitted or submitting states.
func (e *Engine) checkEditable(s *domain.State) error {
	if err := e.checkState(s); err != nil {
		return err
	}
	if s.Submitting {
		return domain.ErrSubmitInFlight
	}
	return nil
}

func (e *Engine) checkState(s *domain.State) error {
	if s == nil {
		return fmt.Errorf("nil state")
	}
	if s.FormType != e.def.Type {
		return fmt.Errorf("%w: state holds %q, engine drives %q", domain.ErrUnknownFormType, s.FormType, e.def.Type)
	}
	if s.IsSubmitted() {
		return domain.ErrAlreadySubmitted
	}
	return nil
}

func (e *Engine) stepName(i int) string {
	step, _ := e.def.Registry.StepAt(i)
	return step.Name
}

func (e *Engine) event(t domain.EventType, s *domain.State) domain.EventBase {
	return domain.EventBase{
		Timestamp: e.now().UTC(),
		Type:      t,
		SessionID: s.SessionID,
		FormType:  s.FormType,
	}
}

func (e *Engine) emitStepEnter(ctx context.Context, s *domain.State, from int) {
	e.logger.Debug("step entered", "session_id", s.SessionID, "from", from, "to", s.StepIndex)
	if e.hooks.OnStepEnter == nil {
		return
	}
	e.hooks.OnStepEnter(ctx, &domain.StepEvent{
		EventBase: e.event(domain.EventStepEnter, s),
		From:      from,
		To:        s.StepIndex,
		StepName:  e.stepName(s.StepIndex),
	})
}

func (e *Engine) emitValidationFailed(ctx context.Context, s *domain.State, wholeForm bool) {
	e.logger.Debug("validation failed",
		"session_id", s.SessionID,
		"step", s.StepIndex,
		"whole_form", wholeForm,
		"errors", len(s.Errors))
	if e.hooks.OnValidationFailed == nil {
		return
	}
	e.hooks.OnValidationFailed(ctx, &domain.ValidationEvent{
		EventBase:   e.event(domain.EventValidationFailed, s),
		Step:        s.StepIndex,
		WholeForm:   wholeForm,
		FailedPaths: s.Errors.Paths(),
	})
}
