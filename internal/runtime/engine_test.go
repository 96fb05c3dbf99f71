package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/intake/internal/runtime"
	"github.com/aretw0/intake/internal/testutils"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/forms/auto"
	"github.com/aretw0/intake/pkg/forms/property"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAutoEngine(opts ...runtime.EngineOption) (*runtime.Engine, *testutils.RecordingDeliverer) {
	d := &testutils.RecordingDeliverer{}
	return runtime.NewEngine(auto.Definition(), d, opts...), d
}

func TestEngine_Start(t *testing.T) {
	var started []string
	engine, _ := newAutoEngine(runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnSessionStart: func(_ context.Context, e *domain.StepEvent) { started = append(started, e.SessionID) },
	}))

	state := engine.Start(context.Background(), "s1")

	assert.Equal(t, 0, state.StepIndex)
	assert.Equal(t, domain.FormAuto, state.FormType)
	assert.Equal(t, domain.StatusEditing, state.Status)
	assert.Empty(t, state.Errors)
	assert.ElementsMatch(t, []string{"generalInfo", "drivers", "vehicles", "drivingHistory"}, state.Document.SectionKeys())
	assert.Equal(t, []string{"s1"}, started)
}

func TestEngine_AdvanceScenario(t *testing.T) {
	ctx := context.Background()
	engine, _ := newAutoEngine()
	state := engine.Start(ctx, "s1")

	state, _, err := engine.Update(ctx, state, "generalInfo", map[string]any{
		"insuredName": "",
		"address":     "123 St",
		"mobilePhone": "555-1212",
		"email":       "bad-email",
	})
	require.NoError(t, err)

	next, res, err := engine.Advance(ctx, state)
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeValidationFailed, res.Outcome)
	assert.False(t, res.OK())
	assert.Equal(t, 0, next.StepIndex)
	assert.Equal(t, domain.ErrorMap{
		"generalInfo.insuredName": "required",
		"generalInfo.email":       "invalid email format",
	}, next.Errors)
	assert.Empty(t, state.Errors, "input state must not be mutated")
}

func TestEngine_AdvanceOnlyValidatesCurrentStep(t *testing.T) {
	ctx := context.Background()
	engine, _ := newAutoEngine()
	state := engine.Start(ctx, "s1")
	state, _, _ = engine.Update(ctx, state, "generalInfo", testutils.ValidGeneralInfo())

	next, res, err := engine.Advance(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAdvanced, res.Outcome)
	assert.Equal(t, 1, next.StepIndex)
	assert.Empty(t, next.Errors)

	// Step 1 (drivers) is seeded empty: only driver paths are reported.
	failed, res, err := engine.Advance(ctx, next)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeValidationFailed, res.Outcome)
	assert.Equal(t, 1, failed.StepIndex)
	assert.Equal(t, []string{"drivers.0.licenseNumber", "drivers.0.name", "drivers.0.relationToInsured"}, failed.Errors.Paths())
}

func TestEngine_AdvanceStopsAtLastEditable(t *testing.T) {
	ctx := context.Background()
	engine, _ := newAutoEngine()
	state := engine.Start(ctx, "s1")

	for section, value := range testutils.ValidAutoDocument() {
		var err error
		state, _, err = engine.Update(ctx, state, section, value)
		require.NoError(t, err)
	}

	var res domain.Result
	for i := 0; i < 3; i++ {
		var err error
		state, res, err = engine.Advance(ctx, state)
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeAdvanced, res.Outcome)
	}
	assert.Equal(t, 3, state.StepIndex)

	state, res, err := engine.Advance(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeStayed, res.Outcome)
	assert.Equal(t, 3, state.StepIndex)
	assert.False(t, state.IsSubmitted())
}

func TestEngine_Retreat(t *testing.T) {
	ctx := context.Background()
	engine, _ := newAutoEngine()
	state := engine.Start(ctx, "s1")

	t.Run("Idempotent At Zero", func(t *testing.T) {
		next, res, err := engine.Retreat(ctx, state)
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeStayed, res.Outcome)
		assert.Equal(t, state.StepIndex, next.StepIndex)
		assert.Equal(t, state.Document, next.Document)
		assert.Equal(t, state.Errors, next.Errors)
	})

	t.Run("Keeps Errors", func(t *testing.T) {
		s := state.Snapshot()
		s.StepIndex = 2
		s.Errors["vehicles.0.vin"] = "required"

		next, res, err := engine.Retreat(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeRetreated, res.Outcome)
		assert.Equal(t, 1, next.StepIndex)
		assert.Equal(t, "required", next.Errors["vehicles.0.vin"])
	})
}

func TestEngine_ErrorClearing(t *testing.T) {
	ctx := context.Background()
	engine, _ := newAutoEngine()
	state := engine.Start(ctx, "s1")
	state, _, _ = engine.Update(ctx, state, "generalInfo", map[string]any{
		"insuredName": "", "address": "", "mobilePhone": "", "email": "bad",
	})
	state, _, _ = engine.Advance(ctx, state)
	require.Len(t, state.Errors, 4)

	t.Run("UpdateField Clears Exactly That Path", func(t *testing.T) {
		next, res, err := engine.UpdateField(ctx, state, "generalInfo.email", "ann@example.com")
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeUpdated, res.Outcome)
		assert.NotContains(t, next.Errors, "generalInfo.email")
		assert.Len(t, next.Errors, 3)
		assert.Len(t, state.Errors, 4)
	})

	t.Run("UpdateField With Same Value Keeps Error", func(t *testing.T) {
		next, _, err := engine.UpdateField(ctx, state, "generalInfo.email", "bad")
		require.NoError(t, err)
		assert.Equal(t, "invalid email format", next.Errors["generalInfo.email"])
		assert.Len(t, next.Errors, 4)
	})

	t.Run("Update Clears Changed Fields Only", func(t *testing.T) {
		section := map[string]any{
			"insuredName": "Ann", "address": "", "mobilePhone": "", "email": "bad",
		}
		next, _, err := engine.Update(ctx, state, "generalInfo", section)
		require.NoError(t, err)
		assert.Equal(t, domain.ErrorMap{
			"generalInfo.address":     "required",
			"generalInfo.mobilePhone": "required",
			"generalInfo.email":       "invalid email format",
		}, next.Errors)
	})

	t.Run("Update Does Not Validate", func(t *testing.T) {
		next, _, err := engine.Update(ctx, state, "generalInfo", map[string]any{
			"insuredName": "", "address": "", "mobilePhone": "", "email": "still-bad",
		})
		require.NoError(t, err)
		assert.NotContains(t, next.Errors, "generalInfo.email")
	})
}

func TestEngine_Entries(t *testing.T) {
	ctx := context.Background()
	engine, _ := newAutoEngine()
	state := engine.Start(ctx, "s1")

	t.Run("Bounded At Three", func(t *testing.T) {
		s := state
		var err error
		for i := 0; i < 2; i++ {
			s, _, err = engine.AddEntry(ctx, s, "drivers")
			require.NoError(t, err)
		}
		assert.Len(t, s.Document["drivers"], 3)

		over, _, err := engine.AddEntry(ctx, s, "drivers")
		assert.ErrorIs(t, err, domain.ErrEntryLimit)
		assert.Nil(t, over)
		assert.Len(t, s.Document["drivers"], 3)
	})

	t.Run("First Entry Not Removable", func(t *testing.T) {
		s, _, err := engine.AddEntry(ctx, state, "vehicles")
		require.NoError(t, err)
		s, _, err = engine.RemoveEntry(ctx, s, "vehicles", 1)
		require.NoError(t, err)
		assert.Len(t, s.Document["vehicles"], 1)

		_, _, err = engine.RemoveEntry(ctx, s, "vehicles", 0)
		assert.ErrorIs(t, err, domain.ErrEntryNotRemovable)
		_, _, err = engine.RemoveEntry(ctx, s, "vehicles", 1)
		assert.ErrorIs(t, err, domain.ErrEntryNotRemovable)
	})

	t.Run("Removal Clears Stale Paths", func(t *testing.T) {
		s, _, _ := engine.AddEntry(ctx, state, "drivers")
		s.Errors["drivers.1.name"] = "required"
		s.Errors["generalInfo.email"] = "required"

		next, _, err := engine.RemoveEntry(ctx, s, "drivers", 1)
		require.NoError(t, err)
		assert.Equal(t, domain.ErrorMap{"generalInfo.email": "required"}, next.Errors)
	})

	t.Run("Non Repeatable", func(t *testing.T) {
		_, _, err := engine.AddEntry(ctx, state, "generalInfo")
		assert.ErrorIs(t, err, domain.ErrNotRepeatable)
	})

	t.Run("Nested Field Of Added Entry", func(t *testing.T) {
		s, _, _ := engine.AddEntry(ctx, state, "drivers")
		s, _, err := engine.UpdateField(ctx, s, "drivers.1.dateLicensed.g2", "2015-04-01")
		require.NoError(t, err)
		v, _ := s.Document.Lookup("drivers.1.dateLicensed.g2")
		assert.Equal(t, "2015-04-01", v)
	})
}

func TestEngine_ProgrammerErrors(t *testing.T) {
	ctx := context.Background()
	engine, _ := newAutoEngine()
	state := engine.Start(ctx, "s1")

	_, _, err := engine.Update(ctx, state, "applicantInfo", map[string]any{})
	assert.ErrorIs(t, err, domain.ErrUnknownSection)

	_, _, err = engine.UpdateField(ctx, state, "generalInfo.favouriteColour", "blue")
	assert.ErrorIs(t, err, domain.ErrInvalidPath)

	_, _, err = engine.UpdateField(ctx, state, "drivers.2.name", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidPath)

	_, _, err = engine.UpdateField(ctx, state, "drivers.0", "junk")
	assert.ErrorIs(t, err, domain.ErrInvalidPath, "a list entry is not a leaf")

	_, _, err = engine.UpdateField(ctx, state, "drivers.0.dateLicensed", map[string]any{"g": "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidPath, "a nested object is not a leaf")

	foreign := property.Definition()
	_, _, err = engine.Advance(ctx, runtime.NewEngine(foreign, nil).Start(ctx, "p"))
	assert.ErrorIs(t, err, domain.ErrUnknownFormType)
}
