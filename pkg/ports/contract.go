package ports

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractRecord(id string, started time.Time) *domain.RunRecord {
	res := &domain.Result{
		Verdict:    domain.VerdictAccepted,
		Halt:       domain.HaltAcceptState,
		Steps:      3,
		FinalState: "qA",
		Head:       2,
		Tape:       "001",
	}
	return domain.NewRunRecord(id, "contains-one", "001", res, nil, started, 5*time.Millisecond)
}

// RunStoreContract runs a suite of tests to verify that a RunStore
// implementation adheres to the interface contract.
func RunStoreContract(t *testing.T, store RunStore) {
	ctx := context.Background()
	runID := "contract-run-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		rec := contractRecord(runID, time.Now().UTC())
		require.NoError(t, store.Save(ctx, rec), "Save should not return error")

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, rec.ID, loaded.ID)
		assert.Equal(t, rec.Machine, loaded.Machine)
		assert.Equal(t, rec.Input, loaded.Input)
		assert.Equal(t, domain.VerdictAccepted, loaded.Verdict)
		assert.Equal(t, domain.HaltAcceptState, loaded.Halt)
		assert.Equal(t, 3, loaded.Steps)
		assert.Equal(t, "001", loaded.Tape)
		assert.Equal(t, rec.Duration, loaded.Duration)
		assert.True(t, rec.StartedAt.Equal(loaded.StartedAt))
	})

	t.Run("Save Failed Run", func(t *testing.T) {
		id := runID + "-failed"
		rec := domain.NewRunRecord(id, "m", "", nil, fmt.Errorf("%w (head at -1)", domain.ErrTapeUnderflow), time.Now().UTC(), time.Millisecond)
		require.NoError(t, store.Save(ctx, rec))
		defer func() { _ = store.Delete(ctx, id) }()

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, loaded.Verdict)
		assert.Contains(t, loaded.Error, "tape underflow")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID)
		assert.True(t, errors.Is(err, domain.ErrRunNotFound))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, contractRecord(runID, time.Now().UTC())))
		require.NoError(t, store.Delete(ctx, runID), "Delete should not return error")

		_, err := store.Load(ctx, runID)
		assert.True(t, errors.Is(err, domain.ErrRunNotFound), "Load after Delete should return ErrRunNotFound")

		assert.NoError(t, store.Delete(ctx, runID), "Deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := runID + "-1"
		id2 := runID + "-2"
		base := time.Now().UTC()
		require.NoError(t, store.Save(ctx, contractRecord(id1, base)))
		require.NoError(t, store.Save(ctx, contractRecord(id2, base.Add(time.Second))))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}

// DefinitionLoaderContract verifies a DefinitionLoader seeded with the given
// machines. Every name in want must load to a definition with that start state.
func DefinitionLoaderContract(t *testing.T, loader DefinitionLoader, want map[string]string) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load", func(t *testing.T) {
		for name, start := range want {
			def, err := loader.Load(ctx, name)
			require.NoError(t, err, "machine %s", name)
			assert.Equal(t, start, def.Start)
		}
	})

	t.Run("Load NotFound", func(t *testing.T) {
		_, err := loader.Load(ctx, "non-existent-machine")
		assert.True(t, errors.Is(err, domain.ErrMachineNotFound))
	})

	t.Run("List", func(t *testing.T) {
		names, err := loader.List(ctx)
		require.NoError(t, err)
		assert.Len(t, names, len(want))
		for name := range want {
			assert.Contains(t, names, name)
		}
		assert.IsIncreasing(t, names)
	})
}
