package runner

import (
	"context"
	"testing"

	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	loader, err := memory.NewFromSources(map[string]string{"contains-one": containsOne})
	require.NoError(t, err)
	store := memory.NewStore()
	return &Service{
		Loader: loader,
		Store:  store,
		NewEngine: func(maxSteps int) ports.Simulator {
			return runtime.NewEngine(runtime.WithMaxSteps(maxSteps))
		},
	}, store
}

func TestService_SimulateNamed(t *testing.T) {
	svc, store := newTestService(t)

	o, err := svc.Simulate(context.Background(), Request{Machine: "contains-one", Input: "001"})
	require.NoError(t, err)
	require.NoError(t, o.Err)
	assert.True(t, o.Result.Accepted())
	require.NotEmpty(t, o.RunID)

	rec, err := store.Load(context.Background(), o.RunID)
	require.NoError(t, err)
	assert.Equal(t, "contains-one", rec.Machine)
}

func TestService_SimulateInline(t *testing.T) {
	svc, _ := newTestService(t)

	o, err := svc.Simulate(context.Background(), Request{Definition: containsOne, Input: "000"})
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictRejected, o.Result.Verdict)

	yamlDef := "start: q0\naccept: qA\nreject: qR\nalphabet: [\"1\"]\nrules:\n  - q0(1,1,R)qA\n"
	o, err = svc.Simulate(context.Background(), Request{Definition: yamlDef, Format: "yaml", Input: "1"})
	require.NoError(t, err)
	assert.True(t, o.Result.Accepted())
}

func TestService_Errors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Simulate(ctx, Request{Input: "1"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.Simulate(ctx, Request{Machine: "contains-one", Definition: containsOne, Input: "1"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.Simulate(ctx, Request{Machine: "nope", Input: "1"})
	assert.ErrorIs(t, err, domain.ErrMachineNotFound)

	_, err = svc.Simulate(ctx, Request{Definition: "q0\nqA\nqR\n0\nq0(0,0)q1\n", Input: "0"})
	assert.ErrorIs(t, err, domain.ErrMalformedDefinition)

	_, err = svc.Simulate(ctx, Request{Machine: "contains-one", Input: "012"})
	assert.ErrorIs(t, err, domain.ErrSymbolNotInAlphabet)
}

func TestService_ControlCharactersReachValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// A tab is not a tape symbol and is not silently dropped.
	_, err := svc.Simulate(ctx, Request{Machine: "contains-one", Input: "0\t1"})
	assert.ErrorIs(t, err, domain.ErrSymbolNotInAlphabet)

	// Only the trailing line terminator is stripped.
	o, err := svc.Simulate(ctx, Request{Machine: "contains-one", Input: "01\r\n"})
	require.NoError(t, err)
	assert.True(t, o.Result.Accepted())
	assert.Equal(t, "01", o.Input)
}

func TestService_StepLimitInOutcome(t *testing.T) {
	svc, _ := newTestService(t)

	o, err := svc.Simulate(context.Background(), Request{Definition: pingPong, Input: "0", MaxSteps: 10})
	require.NoError(t, err)
	assert.ErrorIs(t, o.Err, domain.ErrStepLimitExceeded)
	assert.Nil(t, o.Result)
}
