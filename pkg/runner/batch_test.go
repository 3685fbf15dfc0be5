package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{ *memory.Store }

func (failingStore) Save(context.Context, *domain.RunRecord) error { return errors.New("disk full") }

func TestRunner_Batch(t *testing.T) {
	store := memory.NewStore()
	r := NewRunner(
		WithEngine(runtime.NewEngine()),
		WithDefinition("contains-one", mustParse(t, containsOne)),
		WithStore(store),
		WithWorkers(2),
	)

	inputs := []string{"1", "000", "0001", "02", "", "10"}
	outcomes, err := r.Batch(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, outcomes, len(inputs))

	for i, o := range outcomes {
		assert.Equal(t, inputs[i], o.Input, "order preserved")
	}
	assert.True(t, outcomes[0].Result.Accepted())
	assert.False(t, outcomes[1].Result.Accepted())
	assert.ErrorIs(t, outcomes[3].Err, domain.ErrSymbolNotInAlphabet)
	assert.Empty(t, outcomes[3].RunID, "invalid inputs are not recorded")

	assert.Equal(t, BatchSummary{Total: 6, Accepted: 3, Rejected: 2, Failed: 1}, Summarize(outcomes))

	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, ids, 5)
}

func TestRunner_Batch_StoreFailure(t *testing.T) {
	r := NewRunner(
		WithEngine(runtime.NewEngine()),
		WithDefinition("contains-one", mustParse(t, containsOne)),
		WithStore(failingStore{memory.NewStore()}),
	)
	_, err := r.Batch(context.Background(), []string{"1", "0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestRunner_Batch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(
		WithEngine(runtime.NewEngine()),
		WithDefinition("contains-one", mustParse(t, containsOne)),
	)
	_, err := r.Batch(ctx, []string{"1"})
	assert.ErrorIs(t, err, context.Canceled)
}
