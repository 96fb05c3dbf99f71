package intake

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/intake/internal/logging"
	"github.com/aretw0/intake/internal/runtime"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/forms"
	"github.com/aretw0/intake/pkg/forms/catalog"
	"github.com/aretw0/intake/pkg/ports"
)

// Engine is the high-level entry point of the library.
// It wraps the internal runtime for one form family and provides a simplified API for consumers.
type Engine struct {
	runtime   *runtime.Engine
	def       *forms.Definition
	catalog   *forms.Catalog
	deliverer ports.Deliverer
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithDeliverer sets the collaborator that receives submitted applications.
func WithDeliverer(d ports.Deliverer) Option {
	return func(e *Engine) {
		e.deliverer = d
	}
}

// WithCatalog replaces the built-in auto/property catalog.
func WithCatalog(c *forms.Catalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// New initializes an Engine for formType.
// Without WithCatalog, the built-in auto and property applications are used.
func New(formType domain.FormType, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.catalog == nil {
		eng.catalog = catalog.Default()
	}

	def, err := eng.catalog.Lookup(formType)
	if err != nil {
		return nil, err
	}
	eng.def = def

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	eng.logger = eng.logger.With("form", string(formType))

	eng.runtime = runtime.NewEngine(def, eng.deliverer,
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	)
	return eng, nil
}

// MustNew is like New but panics when formType is not registered.
func MustNew(formType domain.FormType, opts ...Option) *Engine {
	eng, err := New(formType, opts...)
	if err != nil {
		panic(fmt.Sprintf("intake: %v", err))
	}
	return eng
}

// Definition returns the form family the engine drives.
func (e *Engine) Definition() *forms.Definition {
	return e.def
}

// Start creates the initial state for a session and triggers lifecycle hooks.
func (e *Engine) Start(ctx context.Context, sessionID string) *domain.State {
	return e.runtime.Start(ctx, sessionID)
}

// Update replaces one section of the document.
func (e *Engine) Update(ctx context.Context, state *domain.State, section string, value any) (*domain.State, domain.Result, error) {
	return e.runtime.Update(ctx, state, section, value)
}

// UpdateField sets one value by dotted path.
func (e *Engine) UpdateField(ctx context.Context, state *domain.State, path string, value any) (*domain.State, domain.Result, error) {
	return e.runtime.UpdateField(ctx, state, path, value)
}

// AddEntry appends a record to a repeatable section.
func (e *Engine) AddEntry(ctx context.Context, state *domain.State, section string) (*domain.State, domain.Result, error) {
	return e.runtime.AddEntry(ctx, state, section)
}

// RemoveEntry deletes a record of a repeatable section.
func (e *Engine) RemoveEntry(ctx context.Context, state *domain.State, section string, index int) (*domain.State, domain.Result, error) {
	return e.runtime.RemoveEntry(ctx, state, section, index)
}

// Advance validates the current step and moves forward when it is valid.
func (e *Engine) Advance(ctx context.Context, state *domain.State) (*domain.State, domain.Result, error) {
	return e.runtime.Advance(ctx, state)
}

// Retreat moves back one step.
func (e *Engine) Retreat(ctx context.Context, state *domain.State) (*domain.State, domain.Result, error) {
	return e.runtime.Retreat(ctx, state)
}

// BeginSubmit marks the state as submitting.
func (e *Engine) BeginSubmit(ctx context.Context, state *domain.State) (*domain.State, error) {
	return e.runtime.BeginSubmit(ctx, state)
}

// CompleteSubmit validates the whole document and delivers it.
func (e *Engine) CompleteSubmit(ctx context.Context, state *domain.State) (*domain.State, domain.Result, error) {
	return e.runtime.CompleteSubmit(ctx, state)
}

// Submit validates the whole document and delivers it in one call.
func (e *Engine) Submit(ctx context.Context, state *domain.State) (*domain.State, domain.Result, error) {
	return e.runtime.Submit(ctx, state)
}

// Proceed is the "Next"/"Submit" button: Advance on every editable step but the last,
// Submit on the last one.
func (e *Engine) Proceed(ctx context.Context, state *domain.State) (*domain.State, domain.Result, error) {
	if state != nil && state.StepIndex >= e.def.Registry.LastEditable() {
		return e.runtime.Submit(ctx, state)
	}
	return e.runtime.Advance(ctx, state)
}

// Progress reports the progress indicator for state.
func (e *Engine) Progress(state *domain.State) domain.Progress {
	return e.def.Progress(state.StepIndex)
}

// ApplicantName returns the name greeted on the confirmation step.
func (e *Engine) ApplicantName(state *domain.State) string {
	return e.def.ApplicantName(state.Document)
}

var _ ports.WizardEngine = (*Engine)(nil)
