package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/google/uuid"
)

// ErrNoEngine is returned when the Runner was built without WithEngine.
var ErrNoEngine = errors.New("runner: no engine configured")

// ErrNoDefinition is returned when the Runner was built without WithDefinition.
var ErrNoDefinition = errors.New("runner: no machine definition configured")

// exitWords end an interactive session.
var exitWords = map[string]bool{"exit": true, "quit": true}

// Runner simulates one machine against many inputs.
type Runner struct {
	// Handler is the strategy for IO in interactive sessions.
	// If nil, a TextHandler over Stdin/Stdout is used.
	Handler IOHandler

	// Logger is used for internal debug logging.
	Logger *slog.Logger

	// Store persists every run. If nil, runs are not recorded.
	Store ports.RunStore

	// Workers bounds batch concurrency.
	Workers int

	// InterruptSource cancels the simulation in progress when signalled.
	// While waiting for input it ends the session instead.
	InterruptSource <-chan struct{}

	engine  ports.Simulator
	machine string
	def     *domain.Definition
	newID   func() string
}

// NewRunner creates a Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger:  logging.NewNop(),
		Workers: DefaultWorkers,
		newID:   newRunID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// newRunID mints time-ordered (v7) IDs so stores can sort by ID too.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (r *Runner) check() error {
	if r.engine == nil {
		return ErrNoEngine
	}
	if r.def == nil {
		return ErrNoDefinition
	}
	return nil
}

// Run executes the interactive loop until the input is exhausted, the user
// types exit/quit, an interrupt arrives at the prompt, or ctx is done.
// Empty strings and strings outside the alphabet are reported and re-prompted.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.check(); err != nil {
		return err
	}
	handler := r.Handler
	if handler == nil {
		handler = NewTextHandler(os.Stdin, os.Stdout)
	}

	if len(r.def.Rules) == 0 && r.def.Start != r.def.Accept {
		if err := handler.SystemOutput(ctx, "machine has no transition rules: every string is rejected"); err != nil {
			return err
		}
	}

	for {
		if err := handler.Prompt(ctx, r.def.Alphabet); err != nil {
			return err
		}

		inCtx, release := r.interruptible(ctx)
		raw, err := handler.Input(inCtx)
		interrupted := inCtx.Err() != nil && ctx.Err() == nil
		release()

		if err != nil {
			if errors.Is(err, io.EOF) || interrupted || ctx.Err() != nil {
				r.Logger.Debug("session ended", "reason", err)
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		input, err := SanitizeInput(raw)
		if err != nil {
			if err := handler.SystemOutput(ctx, fmt.Sprintf("%v. Please try again.", err)); err != nil {
				return err
			}
			continue
		}

		trimmed := strings.TrimSpace(input)
		if exitWords[trimmed] {
			return nil
		}
		if trimmed == "" {
			if err := handler.SystemOutput(ctx, "No string entered. Please try again."); err != nil {
				return err
			}
			continue
		}

		if err := validator.ValidateInput(r.def, input); err != nil {
			if err := handler.SystemOutput(ctx, fmt.Sprintf("%v. Please try again.", err)); err != nil {
				return err
			}
			continue
		}

		simCtx, release := r.interruptible(ctx)
		outcome, err := r.Simulate(simCtx, input)
		release()
		if err != nil {
			return err
		}
		if err := handler.Output(ctx, outcome); err != nil {
			return err
		}
	}
}

// Simulate runs one input and records it. The returned error is only set
// for store failures; simulation errors travel in the Outcome.
func (r *Runner) Simulate(ctx context.Context, input string) (*Outcome, error) {
	if err := r.check(); err != nil {
		return nil, err
	}

	started := time.Now()
	res, simErr := r.engine.Simulate(ctx, r.def, input)
	elapsed := time.Since(started)

	id := ""
	if r.Store != nil {
		id = r.newID()
		rec := domain.NewRunRecord(id, r.machine, input, res, simErr, started.UTC(), elapsed)
		// The simulation may have been cancelled; the record should still land.
		if err := r.Store.Save(context.WithoutCancel(ctx), rec); err != nil {
			return nil, fmt.Errorf("failed to record run: %w", err)
		}
	}

	if simErr != nil {
		r.Logger.Warn("simulation failed", "machine", r.machine, "run", id, "err", simErr)
	} else {
		r.Logger.Debug("simulation finished", "machine", r.machine, "run", id, "verdict", res.Verdict, "steps", res.Steps)
	}
	return newOutcome(id, input, res, simErr), nil
}

// interruptible derives a context cancelled by the next interrupt.
func (r *Runner) interruptible(ctx context.Context) (context.Context, func()) {
	c, cancel := context.WithCancel(ctx)
	if r.InterruptSource == nil {
		return c, cancel
	}
	done := make(chan struct{})
	go func() {
		select {
		case <-r.InterruptSource:
			cancel()
		case <-done:
		}
	}()
	return c, func() {
		close(done)
		cancel()
	}
}
