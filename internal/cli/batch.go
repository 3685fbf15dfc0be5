package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/runner"
)

// BatchOptions configures the batch command.
type BatchOptions struct {
	Machine string
	// InputsFile holds one input per line; "-" reads In.
	InputsFile string
	Workers    int
	MaxSteps   int
	JSON       bool
	Record     bool
}

// batchReport is the JSON document written by the batch command.
type batchReport struct {
	Machine  string              `json:"machine"`
	Summary  runner.BatchSummary `json:"summary"`
	Outcomes []*runner.Outcome   `json:"outcomes"`
}

// Batch simulates every line of the inputs file concurrently. It exits 1 if
// any input failed and 2 if any was rejected.
func (a *App) Batch(ctx context.Context, opts BatchOptions) error {
	name, def, err := loadMachine(ctx, a.Config, opts.Machine)
	if err != nil {
		return err
	}
	inputs, err := a.readInputs(opts.InputsFile)
	if err != nil {
		return err
	}

	store, closeStore, err := a.openStore(ctx, opts.Record)
	if err != nil {
		return err
	}
	defer closeStore()

	workers := a.Config.Batch.Workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}
	logger := a.logger()
	r := runner.NewRunner(
		runner.WithEngine(createEngine(a.Config, EngineOptions{MaxSteps: opts.MaxSteps}, logger)),
		runner.WithDefinition(name, def),
		runner.WithStore(store),
		runner.WithLogger(logger),
		runner.WithWorkers(workers),
	)

	outcomes, err := r.Batch(ctx, inputs)
	if err != nil {
		return fmt.Errorf("batch aborted: %w", err)
	}
	summary := runner.Summarize(outcomes)

	if opts.JSON {
		enc := json.NewEncoder(a.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(batchReport{Machine: name, Summary: summary, Outcomes: outcomes}); err != nil {
			return err
		}
	} else {
		render := tui.NewOutcomeRenderer(a.profile())
		for _, o := range outcomes {
			fmt.Fprintln(a.Out, render(o))
		}
		printSystemMessage(a.Out, "%d inputs: %d accepted, %d rejected, %d failed",
			summary.Total, summary.Accepted, summary.Rejected, summary.Failed)
	}

	switch {
	case summary.Failed > 0:
		return &ExitCodeError{Code: ExitError}
	case summary.Rejected > 0:
		return &ExitCodeError{Code: ExitRejected}
	}
	return nil
}

// readInputs reads one input per line, dropping the line terminator only.
// A trailing empty line is not an input.
func (a *App) readInputs(path string) ([]string, error) {
	var r io.Reader
	if path == "" || path == "-" {
		r = a.In
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open inputs: %w", err)
		}
		defer f.Close()
		r = f
	}

	var inputs []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		inputs = append(inputs, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inputs: %w", err)
	}
	return inputs, nil
}
