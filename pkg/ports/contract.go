package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore implementation
// adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	newState := func(id string) *domain.State {
		return domain.NewState(id, domain.FormAuto, domain.Document{
			"generalInfo": map[string]any{"insuredName": "Ann", "email": "ann@example.com"},
			"drivers":     []any{map[string]any{"name": "Ann"}},
		})
	}

	t.Run("Save and Load", func(t *testing.T) {
		state := newState(sessionID)
		state.StepIndex = 2
		state.Errors["drivers.0.licenseNumber"] = "required"

		err := store.Save(ctx, sessionID, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, 2, loaded.StepIndex)
		assert.Equal(t, domain.FormAuto, loaded.FormType)
		assert.Equal(t, domain.StatusEditing, loaded.Status)
		assert.Equal(t, "required", loaded.Errors["drivers.0.licenseNumber"])

		name, ok := loaded.Document.Lookup("drivers.0.name")
		assert.True(t, ok)
		assert.Equal(t, "Ann", name)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, newState(sessionID))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, newState(id1))
		_ = store.Save(ctx, id2, newState(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
