package ports

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
)

// Simulator runs a definition against an input.
// internal/runtime.Engine is the canonical implementation.
type Simulator interface {
	Simulate(ctx context.Context, def *domain.Definition, input string) (*domain.Result, error)
}
