package runner

import (
	"context"
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI) and JSON (structured) modes.
type IOHandler interface {
	// Prompt asks for the next input string.
	Prompt(ctx context.Context, alphabet []domain.Symbol) error

	// Input reads one input string. It returns io.EOF when the source is exhausted.
	Input(ctx context.Context) (string, error)

	// Output presents the outcome of one simulation.
	Output(ctx context.Context, outcome *Outcome) error

	// SystemOutput presents a meta-message (validation errors, notices).
	SystemOutput(ctx context.Context, msg string) error
}

// Outcome is the result of simulating one input.
// Exactly one of Result and Err is set.
type Outcome struct {
	RunID  string         `json:"run_id,omitempty"`
	Input  string         `json:"input"`
	Result *domain.Result `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
	Err    error          `json:"-"`
}

func newOutcome(id, input string, res *domain.Result, err error) *Outcome {
	o := &Outcome{RunID: id, Input: input, Result: res, Err: err}
	if err != nil {
		o.Error = err.Error()
	}
	return o
}

// OutcomeRenderer formats an outcome for a text handler (e.g. with colors).
type OutcomeRenderer func(*Outcome) string

// FormatOutcome is the plain-text rendering of an outcome.
func FormatOutcome(o *Outcome) string {
	if o.Err != nil || o.Result == nil {
		return fmt.Sprintf("Turing Machine failed on user string '%s': %s", o.Input, o.Error)
	}
	r := o.Result
	if r.Accepted() {
		return fmt.Sprintf("Turing Machine *ACCEPTED* user string '%s' (%d steps, halted in %s)", o.Input, r.Steps, r.FinalState)
	}
	return fmt.Sprintf("Turing Machine did *NOT ACCEPT* user string '%s' (%d steps, %s in %s)", o.Input, r.Steps, r.Halt, r.FinalState)
}
