package runner

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const containsOne = "q0\nqA\nqR\n0,1\nq0(0,0,R)q0\nq0(1,1,R)qA\n"

// pingPong never halts on a non-empty input.
const pingPong = "q0\nqA\nqR\n0\nq0(0,0,R)q1\nq1( , ,L)q0\n"

func mustParse(t *testing.T, src string) *domain.Definition {
	t.Helper()
	def, err := compiler.NewParser().ParseBytes([]byte(src))
	require.NoError(t, err)
	return def
}

func runSession(t *testing.T, r *Runner) {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("session did not finish")
	}
}

func TestRunner_Run_Session(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRunner(
		WithEngine(runtime.NewEngine()),
		WithDefinition("contains-one", mustParse(t, containsOne)),
		WithInputHandler(NewTextHandler(strings.NewReader("001\n000\n   \n01a\nexit\n001\n"), out)),
	)
	runSession(t, r)

	text := out.String()
	assert.Contains(t, text, "Enter a string using only alphabet characters [0, 1]")
	assert.Contains(t, text, "*ACCEPTED* user string '001'")
	assert.Contains(t, text, "did *NOT ACCEPT* user string '000'")
	assert.Contains(t, text, "No string entered")
	assert.Contains(t, text, "symbol not in input alphabet")
	// Nothing after exit is simulated.
	assert.Equal(t, 1, strings.Count(text, "*ACCEPTED*"))
}

func TestRunner_Run_EOFEndsSession(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRunner(
		WithEngine(runtime.NewEngine()),
		WithDefinition("contains-one", mustParse(t, containsOne)),
		WithInputHandler(NewTextHandler(strings.NewReader("1"), out)),
	)
	runSession(t, r)
	assert.Contains(t, out.String(), "*ACCEPTED* user string '1'")
}

func TestRunner_Run_NoRulesNotice(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRunner(
		WithEngine(runtime.NewEngine()),
		WithDefinition("empty", mustParse(t, "q0\nqA\nqR\n0\n")),
		WithInputHandler(NewTextHandler(strings.NewReader("0\n"), out)),
	)
	runSession(t, r)
	assert.Contains(t, out.String(), "[System] machine has no transition rules")
	assert.Contains(t, out.String(), "did *NOT ACCEPT* user string '0'")
}

func TestRunner_Run_RecordsRuns(t *testing.T) {
	store := memory.NewStore()
	ids := 0
	r := NewRunner(
		WithEngine(runtime.NewEngine()),
		WithDefinition("contains-one", mustParse(t, containsOne)),
		WithStore(store),
		WithIDGenerator(func() string { ids++; return fmt.Sprintf("run-%d", ids) }),
		WithInputHandler(NewTextHandler(strings.NewReader("01\n00\n"), &bytes.Buffer{})),
	)
	runSession(t, r)

	listed, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"run-1", "run-2"}, listed)

	rec, err := store.Load(context.Background(), "run-2")
	require.NoError(t, err)
	assert.Equal(t, "contains-one", rec.Machine)
	assert.Equal(t, "00", rec.Input)
	assert.Equal(t, domain.VerdictRejected, rec.Verdict)
	assert.Equal(t, domain.HaltNoTransition, rec.Halt)
}

func TestRunner_Run_InterruptStopsOnlyTheRun(t *testing.T) {
	interrupts := make(chan struct{})
	out := &bytes.Buffer{}
	r := NewRunner(
		WithEngine(runtime.NewEngine()),
		WithDefinition("ping-pong", mustParse(t, pingPong)),
		WithInterruptSource(interrupts),
		WithInputHandler(NewTextHandler(strings.NewReader("0\nexit\n"), out)),
	)

	go func() {
		time.Sleep(50 * time.Millisecond)
		interrupts <- struct{}{}
	}()
	runSession(t, r)

	assert.Contains(t, out.String(), "failed on user string '0'")
	assert.Contains(t, out.String(), "deadline exceeded")
}

func TestRunner_Run_StepLimit(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRunner(
		WithEngine(runtime.NewEngine(runtime.WithMaxSteps(100))),
		WithDefinition("ping-pong", mustParse(t, pingPong)),
		WithInputHandler(NewTextHandler(strings.NewReader("0\n"), out)),
	)
	runSession(t, r)
	assert.Contains(t, out.String(), "step limit exceeded")
}

func TestRunner_Run_JSONHandler(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRunner(
		WithEngine(runtime.NewEngine()),
		WithDefinition("contains-one", mustParse(t, containsOne)),
		WithInputHandler(NewJSONHandler(strings.NewReader("\"001\"\n0x\n"), out)),
	)
	runSession(t, r)

	var msgs []Message
	sc := bufio.NewScanner(out)
	for sc.Scan() {
		var m Message
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		msgs = append(msgs, m)
	}
	require.Len(t, msgs, 5) // prompt, result, prompt, system, prompt

	assert.Equal(t, "prompt", msgs[0].Type)
	assert.Equal(t, []domain.Symbol{'0', '1'}, msgs[0].Alphabet)
	assert.Equal(t, "result", msgs[1].Type)
	require.NotNil(t, msgs[1].Outcome.Result)
	assert.True(t, msgs[1].Outcome.Result.Accepted())
	assert.Equal(t, "system", msgs[3].Type)
	assert.Contains(t, msgs[3].Message, "'x'")
}

func TestRunner_Unconfigured(t *testing.T) {
	assert.ErrorIs(t, NewRunner().Run(context.Background()), ErrNoEngine)
	_, err := NewRunner(WithEngine(runtime.NewEngine())).Simulate(context.Background(), "0")
	assert.ErrorIs(t, err, ErrNoDefinition)
}

func TestFormatOutcome(t *testing.T) {
	acc := &Outcome{Input: "1", Result: &domain.Result{Verdict: domain.VerdictAccepted, Steps: 1, FinalState: "qA"}}
	assert.Equal(t, "Turing Machine *ACCEPTED* user string '1' (1 steps, halted in qA)", FormatOutcome(acc))

	rej := &Outcome{Input: "0", Result: &domain.Result{Verdict: domain.VerdictRejected, Halt: domain.HaltNoTransition, Steps: 1, FinalState: "q0"}}
	assert.Equal(t, "Turing Machine did *NOT ACCEPT* user string '0' (1 steps, no_transition in q0)", FormatOutcome(rej))
}
