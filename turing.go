package turing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
)

// Machine is the high-level entry point for the library.
// It pairs an immutable definition with a configured engine and is safe for
// concurrent use.
type Machine struct {
	Name string

	def    *domain.Definition
	engine *runtime.Engine
	logger *slog.Logger
}

type config struct {
	runtimeOpts []runtime.EngineOption
	parserOpts  []compiler.Option
	hooks       domain.LifecycleHooks
	hooked      bool
	logger      *slog.Logger
	name        string
}

// Option defines a functional option for configuring the Machine.
type Option func(*config)

// WithMaxSteps bounds every simulation to n steps (0 means unbounded).
func WithMaxSteps(n int) Option {
	return func(c *config) {
		c.runtimeOpts = append(c.runtimeOpts, runtime.WithMaxSteps(n))
	}
}

// WithTimeout bounds the wall-clock time of every simulation.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.runtimeOpts = append(c.runtimeOpts, runtime.WithTimeout(d))
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls merge.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *config) {
		if c.hooked {
			c.hooks = c.hooks.Merge(hooks)
			return
		}
		c.hooks = hooks
		c.hooked = true
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithStrictDirections makes parsing fail on directions other than L and R.
func WithStrictDirections() Option {
	return func(c *config) {
		c.parserOpts = append(c.parserOpts, compiler.WithStrictDirections())
	}
}

// WithName sets the name runs of this machine are recorded under.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// New wraps an already-built definition.
func New(def *domain.Definition, opts ...Option) (*Machine, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: nil definition", domain.ErrMalformedDefinition)
	}
	c := &config{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(c)
	}

	runtimeOpts := append([]runtime.EngineOption{
		runtime.WithLogger(c.logger),
		runtime.WithLifecycleHooks(c.hooks),
	}, c.runtimeOpts...)

	return &Machine{
		Name:   c.name,
		def:    def,
		engine: runtime.NewEngine(runtimeOpts...),
		logger: c.logger,
	}, nil
}

// Parse builds a machine from definition text in the line-oriented format.
func Parse(src string, opts ...Option) (*Machine, error) {
	return ParseFile("", []byte(src), opts...)
}

// ParseFile builds a machine from data, choosing the decoder from the
// extension of name (.yaml, .yml and .json are structured documents).
func ParseFile(name string, data []byte, opts ...Option) (*Machine, error) {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	def, err := compiler.NewParser(c.parserOpts...).ParseFile(name, data)
	if err != nil {
		return nil, err
	}
	if name != "" {
		base := filepath.Base(name)
		opts = append([]Option{WithName(strings.TrimSuffix(base, filepath.Ext(base)))}, opts...)
	}
	return New(def, opts...)
}

// Load reads and parses a definition file.
func Load(path string, opts ...Option) (*Machine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine %s: %w", path, err)
	}
	m, err := ParseFile(path, data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Definition returns the parsed definition. Callers must not mutate it.
func (m *Machine) Definition() *domain.Definition {
	return m.def
}

// Engine exposes the configured simulator, e.g. for a runner.Runner.
func (m *Machine) Engine() *runtime.Engine {
	return m.engine
}

// ValidateInput checks every symbol of input against the alphabet.
func (m *Machine) ValidateInput(input string) error {
	return validator.ValidateInput(m.def, input)
}

// Simulate runs the machine on input. The alphabet is not consulted; call
// ValidateInput first to reject foreign symbols.
func (m *Machine) Simulate(ctx context.Context, input string) (*domain.Result, error) {
	return m.engine.Simulate(ctx, m.def, input)
}

// Accepts is the boolean projection of Simulate.
func (m *Machine) Accepts(ctx context.Context, input string) (bool, error) {
	return m.engine.Accepts(ctx, m.def, input)
}

// Runner builds a runner.Runner for interactive sessions and batches.
func (m *Machine) Runner(opts ...runner.Option) *runner.Runner {
	base := []runner.Option{
		runner.WithEngine(m.engine),
		runner.WithDefinition(m.Name, m.def),
		runner.WithLogger(m.logger),
	}
	return runner.NewRunner(append(base, opts...)...)
}
