package runner

import (
	"context"

	"github.com/aretw0/turing/internal/validator"
	"golang.org/x/sync/errgroup"
)

// BatchSummary counts batch outcomes.
type BatchSummary struct {
	Total    int `json:"total"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
	Failed   int `json:"failed"`
}

// Summarize tallies outcomes.
func Summarize(outcomes []*Outcome) BatchSummary {
	s := BatchSummary{Total: len(outcomes)}
	for _, o := range outcomes {
		switch {
		case o.Err != nil || o.Result == nil:
			s.Failed++
		case o.Result.Accepted():
			s.Accepted++
		default:
			s.Rejected++
		}
	}
	return s
}

// Batch simulates every input concurrently, at most Workers at a time, and
// returns outcomes in input order. Inputs outside the alphabet become failed
// outcomes without running. The error is set only if ctx ends or a run
// cannot be recorded.
func (r *Runner) Batch(ctx context.Context, inputs []string) ([]*Outcome, error) {
	if err := r.check(); err != nil {
		return nil, err
	}

	outcomes := make([]*Outcome, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	workers := r.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	g.SetLimit(workers)

	for i, input := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := validator.ValidateInput(r.def, input); err != nil {
				outcomes[i] = newOutcome("", input, nil, err)
				return nil
			}
			o, err := r.Simulate(gctx, input)
			if err != nil {
				return err
			}
			outcomes[i] = o
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	if err := ctx.Err(); err != nil {
		return outcomes, err
	}
	r.Logger.Info("batch finished", "machine", r.machine, "inputs", len(inputs), "workers", workers)
	return outcomes, nil
}
