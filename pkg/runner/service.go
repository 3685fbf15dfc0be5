package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

// ErrInvalidRequest is returned for requests that name neither or both of
// a stored machine and an inline definition.
var ErrInvalidRequest = errors.New("invalid simulation request")

// inlineMachine is the name inline definitions are recorded under.
const inlineMachine = "inline"

// Request describes one stateless simulation.
type Request struct {
	// Machine names a definition known to the loader.
	Machine string `json:"machine,omitempty"`

	// Definition is inline definition source. Format selects the decoder:
	// "yaml" or "json" for structured documents, anything else for text.
	Definition string `json:"definition,omitempty"`
	Format     string `json:"format,omitempty"`

	Input string `json:"input"`

	// MaxSteps overrides the service's step ceiling when positive.
	MaxSteps int `json:"max_steps,omitempty"`
}

// EngineFactory builds a simulator bounded by maxSteps (0 means the
// factory's own default).
type EngineFactory func(maxSteps int) ports.Simulator

// Service runs stateless simulations against named or inline machines.
// It backs the HTTP and MCP adapters.
type Service struct {
	Loader    ports.DefinitionLoader
	Store     ports.RunStore
	NewEngine EngineFactory
	Parser    *compiler.Parser
	Logger    *slog.Logger
}

// Resolve loads or parses the machine a request refers to.
func (s *Service) Resolve(ctx context.Context, req Request) (string, *domain.Definition, error) {
	switch {
	case req.Machine != "" && req.Definition != "":
		return "", nil, fmt.Errorf("%w: machine and definition are mutually exclusive", ErrInvalidRequest)
	case req.Machine != "":
		if s.Loader == nil {
			return "", nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, req.Machine)
		}
		def, err := s.Loader.Load(ctx, req.Machine)
		if err != nil {
			return "", nil, err
		}
		return req.Machine, def, nil
	case req.Definition != "":
		parser := s.Parser
		if parser == nil {
			parser = compiler.NewParser()
		}
		name := inlineMachine + ".tm"
		if f := strings.ToLower(req.Format); f == "yaml" || f == "yml" || f == "json" {
			name = inlineMachine + "." + f
		}
		def, err := parser.ParseFile(name, []byte(req.Definition))
		if err != nil {
			return "", nil, err
		}
		return inlineMachine, def, nil
	default:
		return "", nil, fmt.Errorf("%w: one of machine or definition is required", ErrInvalidRequest)
	}
}

// Simulate resolves the machine, validates the input against its alphabet
// and runs it. Errors that prevent the run (unknown machine, bad definition,
// bad input) are returned; simulation failures travel in the Outcome.
func (s *Service) Simulate(ctx context.Context, req Request) (*Outcome, error) {
	if s.NewEngine == nil {
		return nil, ErrNoEngine
	}
	input, err := CheckInput(req.Input)
	if err != nil {
		return nil, err
	}

	name, def, err := s.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateInput(def, input); err != nil {
		return nil, err
	}

	logger := s.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	r := NewRunner(
		WithEngine(s.NewEngine(req.MaxSteps)),
		WithDefinition(name, def),
		WithStore(s.Store),
		WithLogger(logger),
	)
	return r.Simulate(ctx, input)
}
