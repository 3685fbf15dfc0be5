package runner

import (
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

// DefaultWorkers bounds batch concurrency when no limit is configured.
const DefaultWorkers = 4

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithEngine configures the simulator. Required.
func WithEngine(engine ports.Simulator) Option {
	return func(r *Runner) {
		r.engine = engine
	}
}

// WithDefinition sets the machine to run and the name it is recorded under.
func WithDefinition(name string, def *domain.Definition) Option {
	return func(r *Runner) {
		r.machine = name
		r.def = def
	}
}

// WithStore persists a RunRecord for every simulation.
func WithStore(store ports.RunStore) Option {
	return func(r *Runner) {
		r.Store = store
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithWorkers bounds batch concurrency.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		r.Workers = n
	}
}

// WithIDGenerator overrides how run IDs are minted.
func WithIDGenerator(gen func() string) Option {
	return func(r *Runner) {
		r.newID = gen
	}
}

// WithInterruptSource sets a channel that, when signalled, cancels the
// simulation in progress without ending the session.
func WithInterruptSource(ch <-chan struct{}) Option {
	return func(r *Runner) {
		r.InterruptSource = ch
	}
}
