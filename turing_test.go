package turing_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const containsOne = `q0
qA
qR
0,1
q0(0,0,R)q0
q0(1,1,R)qA
`

func TestMachine_ContainsOne(t *testing.T) {
	m, err := turing.Parse(containsOne)
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		input  string
		accept bool
		halt   domain.HaltReason
		steps  int
	}{
		{"1", true, domain.HaltAcceptState, 1},
		{"0001", true, domain.HaltAcceptState, 4},
		{"000", false, domain.HaltNoTransition, 3},
		{"", false, domain.HaltNoTransition, 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res, err := m.Simulate(ctx, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.accept, res.Accepted())
			assert.Equal(t, tt.halt, res.Halt)
			assert.Equal(t, tt.steps, res.Steps)

			ok, err := m.Accepts(ctx, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.accept, ok)
		})
	}
}

func TestMachine_StartIsAccept(t *testing.T) {
	m, err := turing.Parse("q0\nq0\nqR\n0\n")
	require.NoError(t, err)

	for _, input := range []string{"", "0", "000"} {
		res, err := m.Simulate(context.Background(), input)
		require.NoError(t, err)
		assert.True(t, res.Accepted(), "input %q", input)
		assert.Zero(t, res.Steps)
	}
}

func TestMachine_DegenerateDefinition(t *testing.T) {
	// Four lines: fully labelled, no rules.
	m, err := turing.Parse("q0\nqA\nqR\n0,1")
	require.NoError(t, err)
	assert.Empty(t, m.Definition().Rules)
	assert.Equal(t, "qA", m.Definition().Accept)

	for _, input := range []string{"", "01"} {
		res, err := m.Simulate(context.Background(), input)
		require.NoError(t, err)
		assert.False(t, res.Accepted())
		assert.Equal(t, domain.HaltNoTransition, res.Halt)
	}
}

func TestMachine_TapeUnderflow(t *testing.T) {
	m, err := turing.Parse("q0\nqA\nqR\n0\nq0(0,0,L)q1\n")
	require.NoError(t, err)

	_, err = m.Simulate(context.Background(), "0")
	assert.ErrorIs(t, err, domain.ErrTapeUnderflow)
}

func TestMachine_Bounds(t *testing.T) {
	src := "q0\nqA\nqR\n0\nq0( , ,R)q0\nq0(0,0,R)q0\n"

	m, err := turing.Parse(src, turing.WithMaxSteps(50))
	require.NoError(t, err)
	_, err = m.Simulate(context.Background(), "0")
	assert.ErrorIs(t, err, domain.ErrStepLimitExceeded)

	m, err = turing.Parse(src, turing.WithTimeout(20*time.Millisecond))
	require.NoError(t, err)
	_, err = m.Simulate(context.Background(), "0")
	assert.ErrorIs(t, err, domain.ErrDeadlineExceeded)
}

func TestMachine_Hooks(t *testing.T) {
	var steps, halts, extra int
	m, err := turing.Parse(containsOne,
		turing.WithLifecycleHooks(domain.LifecycleHooks{
			OnStep: func(context.Context, *domain.StepEvent) { steps++ },
			OnHalt: func(context.Context, *domain.HaltEvent) { halts++ },
		}),
		turing.WithLifecycleHooks(domain.LifecycleHooks{
			OnHalt: func(context.Context, *domain.HaltEvent) { extra++ },
		}),
	)
	require.NoError(t, err)

	_, err = m.Simulate(context.Background(), "001")
	require.NoError(t, err)
	assert.Equal(t, 3, steps)
	assert.Equal(t, 1, halts)
	assert.Equal(t, 1, extra)
}

func TestMachine_ValidateInput(t *testing.T) {
	m, err := turing.Parse(containsOne)
	require.NoError(t, err)

	assert.NoError(t, m.ValidateInput("0101"))
	assert.ErrorIs(t, m.ValidateInput("012"), domain.ErrSymbolNotInAlphabet)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contains-one.tm")
	require.NoError(t, os.WriteFile(path, []byte(containsOne), 0o644))

	m, err := turing.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "contains-one", m.Name)

	_, err = turing.Load(filepath.Join(dir, "missing.tm"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.tm")
	require.NoError(t, os.WriteFile(bad, []byte("q0\nqA\nqR\n0\nq0(0,0,R\n"), 0o644))
	_, err = turing.Load(bad)
	assert.ErrorIs(t, err, domain.ErrMalformedDefinition)
	assert.True(t, strings.HasPrefix(err.Error(), bad))
}

func TestLoad_StrictDirections(t *testing.T) {
	src := "q0\nqA\nqR\n0\nq0(0,0,S)qA\n"

	m, err := turing.Parse(src)
	require.NoError(t, err)
	res, err := m.Simulate(context.Background(), "0")
	require.NoError(t, err)
	assert.Equal(t, domain.HaltMalformedDirection, res.Halt)

	_, err = turing.Parse(src, turing.WithStrictDirections())
	assert.ErrorIs(t, err, domain.ErrMalformedDefinition)
}

func TestNew_FromDSL(t *testing.T) {
	b := dsl.New().Start("q0").Accept("qA").Reject("qR").Alphabet('0', '1')
	b.State("q0").On('0').Right().To("q0").On('1').Right().To("qA")
	def, err := b.Build()
	require.NoError(t, err)

	m, err := turing.New(def, turing.WithName("dsl"))
	require.NoError(t, err)
	ok, err := m.Accepts(context.Background(), "01")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = turing.New(nil)
	assert.ErrorIs(t, err, domain.ErrMalformedDefinition)
}

func TestMachine_Runner(t *testing.T) {
	m, err := turing.Parse(containsOne, turing.WithName("contains-one"))
	require.NoError(t, err)

	outcomes, err := m.Runner().Batch(context.Background(), []string{"1", "00", "2"})
	require.NoError(t, err)
	require.Len(t, outcomes, 3)
	assert.True(t, outcomes[0].Result.Accepted())
	assert.False(t, outcomes[1].Result.Accepted())
	assert.ErrorIs(t, outcomes[2].Err, domain.ErrSymbolNotInAlphabet)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, strings.TrimSpace(turing.Version))
}
