// Package runtime drives a machine definition over a tape until it halts.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/tape"
	"github.com/aretw0/turing/pkg/domain"
)

// cancelCheckInterval is how many steps run between context checks.
const cancelCheckInterval = 1024

// Engine is the core state machine runner.
// It holds configuration only; every simulation owns a fresh tape, so one
// Engine may serve concurrent simulations over a shared Definition.
type Engine struct {
	maxSteps int
	timeout  time.Duration
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithMaxSteps bounds the number of applied rules. Zero (the default) means unbounded.
func WithMaxSteps(n int) EngineOption {
	return func(e *Engine) {
		e.maxSteps = n
	}
}

// WithTimeout bounds the wall-clock duration of each simulation. Zero means unbounded.
func WithTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.timeout = d
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates a new engine. Without options it behaves like the
// classic machine: no step bound, no deadline.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxSteps returns the configured step ceiling (0 = unbounded).
func (e *Engine) MaxSteps() int { return e.maxSteps }

// Simulate runs def on input until it halts.
//
// A halted machine yields a Result whose Verdict is Accepted or Rejected.
// Failures that are not verdicts come back as *ExecutionError wrapping
// domain.ErrTapeUnderflow, domain.ErrStepLimitExceeded or
// domain.ErrDeadlineExceeded. A machine that never halts makes Simulate
// block until the context or a configured bound stops it.
func (e *Engine) Simulate(ctx context.Context, def *domain.Definition, input string) (*domain.Result, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	started := time.Now()
	r := &run{
		engine: e,
		def:    def,
		tape:   tape.New(input),
		state:  def.Start,
	}

	res, err := r.loop(ctx)
	if err != nil {
		e.logger.Debug("simulation failed", "state", r.state, "steps", r.steps, "err", err)
		return nil, err
	}

	e.logger.Debug("simulation halted",
		"verdict", res.Verdict,
		"halt", res.Halt,
		"state", res.FinalState,
		"steps", res.Steps,
	)
	if e.hooks.OnHalt != nil {
		e.hooks.OnHalt(ctx, &domain.HaltEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventHalt},
			Result:    res,
			Duration:  time.Since(started),
		})
	}
	return res, nil
}

// Accepts is the boolean projection of Simulate.
func (e *Engine) Accepts(ctx context.Context, def *domain.Definition, input string) (bool, error) {
	res, err := e.Simulate(ctx, def, input)
	if err != nil {
		return false, err
	}
	return res.Accepted(), nil
}

// run is the mutable state of one simulation.
type run struct {
	engine *Engine
	def    *domain.Definition
	tape   *tape.Tape
	state  string
	steps  int
	last   *domain.Rule
}

func (r *run) loop(ctx context.Context) (*domain.Result, error) {
	done := ctx.Done()

	for {
		// Entering the accept state halts before the next read, so a machine
		// whose start state accepts never touches its tape.
		if r.state == r.def.Accept {
			return r.halt(domain.VerdictAccepted, domain.HaltAcceptState), nil
		}

		if done != nil && r.steps%cancelCheckInterval == 0 {
			select {
			case <-done:
				return nil, r.fail(fmt.Errorf("%w: %w", domain.ErrDeadlineExceeded, ctx.Err()))
			default:
			}
		}
		sym, err := r.tape.Read()
		if err != nil {
			return nil, r.fail(err)
		}

		rule, ok := r.def.Match(r.state, sym)
		if !ok {
			return r.halt(domain.VerdictRejected, domain.HaltNoTransition), nil
		}

		if !rule.Move.Valid() {
			// The write lands before the halt; the head stays put and the
			// step is not counted.
			if err := r.tape.Write(rule.Write); err != nil {
				return nil, r.fail(err)
			}
			r.last = &rule
			return r.halt(domain.VerdictRejected, domain.HaltMalformedDirection), nil
		}

		// Checked only once a rule would fire: a machine that halts after
		// exactly maxSteps steps returns its verdict.
		if r.engine.maxSteps > 0 && r.steps >= r.engine.maxSteps {
			return nil, r.fail(fmt.Errorf("%w (%d)", domain.ErrStepLimitExceeded, r.engine.maxSteps))
		}

		if r.engine.hooks.OnStep != nil {
			r.engine.hooks.OnStep(ctx, &domain.StepEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStep},
				Step:      r.steps + 1,
				State:     r.state,
				Head:      r.tape.Head(),
				Symbol:    sym,
				Rule:      rule,
				Tape:      r.tape.String(),
			})
		}

		if err := r.tape.Write(rule.Write); err != nil {
			return nil, r.fail(err)
		}
		r.tape.Move(rule.Move)
		r.steps++
		r.last = &rule

		// Write and move are already applied when the reject state is entered.
		if rule.To == r.def.Reject {
			r.state = rule.To
			return r.halt(domain.VerdictRejected, domain.HaltRejectState), nil
		}
		r.state = rule.To
	}
}

func (r *run) halt(v domain.Verdict, reason domain.HaltReason) *domain.Result {
	return &domain.Result{
		Verdict:    v,
		Halt:       reason,
		Steps:      r.steps,
		FinalState: r.state,
		Head:       r.tape.Head(),
		Tape:       r.tape.String(),
		Rule:       r.last,
	}
}

func (r *run) fail(err error) *ExecutionError {
	return &ExecutionError{
		Err:   err,
		State: r.state,
		Steps: r.steps,
		Head:  r.tape.Head(),
		Tape:  r.tape.String(),
	}
}
