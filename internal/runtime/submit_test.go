package runtime_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/intake/internal/runtime"
	"github.com/aretw0/intake/internal/testutils"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/forms/property"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(t *testing.T, engine *runtime.Engine, state *domain.State, doc domain.Document) *domain.State {
	t.Helper()
	for _, section := range doc.SectionKeys() {
		var err error
		state, _, err = engine.Update(context.Background(), state, section, doc[section])
		require.NoError(t, err)
	}
	return state
}

func TestEngine_PropertyHappyPath(t *testing.T) {
	ctx := context.Background()
	deliverer := &testutils.RecordingDeliverer{}
	engine := runtime.NewEngine(property.Definition(), deliverer)

	doc := testutils.ValidPropertyDocument()
	doc["applicantInfo"].(map[string]any)["favouriteColour"] = "blue"
	state := fill(t, engine, engine.Start(ctx, "p1"), doc)

	for i := 0; i < 3; i++ {
		var res domain.Result
		var err error
		state, res, err = engine.Advance(ctx, state)
		require.NoError(t, err)
		require.Equal(t, domain.OutcomeAdvanced, res.Outcome, "advance %d: %v", i, res.Errors)
	}
	require.Equal(t, 3, state.StepIndex)

	final, res, err := engine.Submit(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeDelivered, res.Outcome)
	assert.True(t, res.OK())

	delivery := testutils.RequireSingleDelivery(t, deliverer)
	assert.Equal(t, domain.FormProperty, delivery.FormType)
	assert.Equal(t, []string{"applicantInfo", "insuranceHistory", "propertyOverview", "propertySystems"}, delivery.Document.SectionKeys())
	_, extra := delivery.Document.Lookup("applicantInfo.favouriteColour")
	assert.False(t, extra, "undeclared keys must not be delivered")
	nonSmokers, _ := delivery.Document.Lookup("insuranceHistory.nonSmokers")
	assert.Equal(t, true, nonSmokers)

	assert.Equal(t, 4, final.StepIndex)
	assert.True(t, final.IsSubmitted())
	assert.False(t, final.Submitting)
	assert.Empty(t, final.Errors)
	assert.Equal(t, delivery.Document, final.Document)
}

func TestEngine_SubmitValidationFailure(t *testing.T) {
	ctx := context.Background()
	deliverer := &testutils.RecordingDeliverer{}
	engine := runtime.NewEngine(property.Definition(), deliverer)

	doc := testutils.ValidPropertyDocument()
	doc["applicantInfo"].(map[string]any)["email"] = "nope"
	doc["insuranceHistory"].(map[string]any)["policyNumber"] = ""
	state := fill(t, engine, engine.Start(ctx, "p1"), doc)
	state.StepIndex = 3

	next, res, err := engine.Submit(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeValidationFailed, res.Outcome)
	assert.Equal(t, domain.ErrorMap{
		"applicantInfo.email":           "invalid email format",
		"insuranceHistory.policyNumber": "required",
	}, next.Errors)
	assert.Equal(t, 3, next.StepIndex)
	assert.False(t, next.Submitting)
	assert.Empty(t, deliverer.Calls())
}

func TestEngine_SubmitDeliveryFailure(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("smtp down")
	deliverer := &testutils.RecordingDeliverer{Err: boom}

	var delivered []*domain.DeliveryEvent
	engine := runtime.NewEngine(property.Definition(), deliverer,
		runtime.WithLifecycleHooks(domain.LifecycleHooks{
			OnDelivery: func(_ context.Context, e *domain.DeliveryEvent) { delivered = append(delivered, e) },
		}))

	state := fill(t, engine, engine.Start(ctx, "p1"), testutils.ValidPropertyDocument())
	state.StepIndex = 3

	next, res, err := engine.Submit(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeDeliveryFailed, res.Outcome)
	assert.NotEqual(t, domain.OutcomeValidationFailed, res.Outcome)

	var derr *domain.DeliveryError
	require.ErrorAs(t, res.Err, &derr)
	assert.ErrorIs(t, res.Err, boom)
	assert.Equal(t, domain.FormProperty, derr.FormType)

	assert.Equal(t, 3, next.StepIndex)
	assert.False(t, next.Submitting)
	assert.False(t, next.IsSubmitted())
	assert.Equal(t, state.Document, next.Document)

	require.Len(t, delivered, 1)
	assert.ErrorIs(t, delivered[0].Err, boom)
}

func TestEngine_SubmitGuards(t *testing.T) {
	ctx := context.Background()
	engine := runtime.NewEngine(property.Definition(), &testutils.RecordingDeliverer{})
	state := fill(t, engine, engine.Start(ctx, "p1"), testutils.ValidPropertyDocument())

	pending, err := engine.BeginSubmit(ctx, state)
	require.NoError(t, err)
	assert.True(t, pending.Submitting)
	assert.False(t, state.Submitting)

	t.Run("In Flight", func(t *testing.T) {
		_, err := engine.BeginSubmit(ctx, pending)
		assert.ErrorIs(t, err, domain.ErrSubmitInFlight)
		_, _, err = engine.Advance(ctx, pending)
		assert.ErrorIs(t, err, domain.ErrSubmitInFlight)
		_, _, err = engine.UpdateField(ctx, pending, "applicantInfo.name", "x")
		assert.ErrorIs(t, err, domain.ErrSubmitInFlight)
	})

	done, res, err := engine.CompleteSubmit(ctx, pending)
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeDelivered, res.Outcome)

	t.Run("Submitted Is Terminal", func(t *testing.T) {
		_, err := engine.BeginSubmit(ctx, done)
		assert.ErrorIs(t, err, domain.ErrAlreadySubmitted)
		_, _, err = engine.Retreat(ctx, done)
		assert.ErrorIs(t, err, domain.ErrAlreadySubmitted)
		_, _, err = engine.Update(ctx, done, "applicantInfo", map[string]any{})
		assert.ErrorIs(t, err, domain.ErrAlreadySubmitted)
		_, _, err = engine.CompleteSubmit(ctx, done)
		assert.ErrorIs(t, err, domain.ErrAlreadySubmitted)
	})

	t.Run("Submit From Early Step", func(t *testing.T) {
		require.Equal(t, 0, state.StepIndex)
		final, res, err := engine.Submit(ctx, state)
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeDelivered, res.Outcome)
		assert.Equal(t, 4, final.StepIndex)
	})
}

func TestEngine_NoDeliverer(t *testing.T) {
	ctx := context.Background()
	engine := runtime.NewEngine(property.Definition(), nil)
	state := fill(t, engine, engine.Start(ctx, "p1"), testutils.ValidPropertyDocument())

	_, res, err := engine.Submit(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeDeliveryFailed, res.Outcome)
}

func TestEngine_Hooks(t *testing.T) {
	ctx := context.Background()
	var events []domain.EventType
	record := func(t domain.EventType) { events = append(events, t) }

	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	engine := runtime.NewEngine(property.Definition(), &testutils.RecordingDeliverer{},
		runtime.WithClock(func() time.Time { return clock }),
		runtime.WithLifecycleHooks(domain.LifecycleHooks{
			OnSessionStart:     func(_ context.Context, e *domain.StepEvent) { record(e.Type) },
			OnStepEnter:        func(_ context.Context, e *domain.StepEvent) { record(e.Type) },
			OnValidationFailed: func(_ context.Context, e *domain.ValidationEvent) { record(e.Type) },
			OnSubmitStart:      func(_ context.Context, e *domain.EventBase) { record(e.Type) },
			OnDelivery:         func(_ context.Context, e *domain.DeliveryEvent) { record(e.Type) },
		}))

	state := engine.Start(ctx, "p1")
	assert.Equal(t, clock, state.CreatedAt)

	state, _, _ = engine.Advance(ctx, state)
	state = fill(t, engine, state, testutils.ValidPropertyDocument())
	state, _, _ = engine.Advance(ctx, state)
	_, _, _ = engine.Submit(ctx, state)

	assert.Equal(t, []domain.EventType{
		domain.EventSessionStart,
		domain.EventValidationFailed,
		domain.EventStepEnter,
		domain.EventSubmitStart,
		domain.EventDelivery,
		domain.EventStepEnter,
	}, events)
}
