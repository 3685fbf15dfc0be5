package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/runner"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	Machine  string
	Inputs   []string
	MaxSteps int
	Timeout  time.Duration
	Trace    bool
	JSON     bool
	Record   bool
	Debug    bool
}

// Run handles the 'run' command. With inputs it simulates each of them and
// exits 2 if any is rejected; without inputs it runs a session over In until
// exit or EOF, with a banner on a terminal.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	name, def, err := loadMachine(ctx, a.Config, opts.Machine)
	if err != nil {
		return err
	}

	store, closeStore, err := a.openStore(ctx, opts.Record)
	if err != nil {
		return err
	}
	defer closeStore()

	logger := a.logger()
	profile := a.profile()

	var hooks domain.LifecycleHooks
	if opts.Trace {
		if opts.JSON {
			hooks = observability.TraceHooks(a.Err, observability.DefaultTraceFormatter)
		} else {
			hooks = observability.TraceHooks(a.Out, tui.NewTraceFormatter(profile))
		}
	}
	engine := createEngine(a.Config, EngineOptions{
		MaxSteps: opts.MaxSteps,
		Timeout:  opts.Timeout,
		Hooks:    hooks,
		Debug:    opts.Debug,
	}, logger)

	var handler runner.IOHandler
	if opts.JSON {
		handler = runner.NewJSONHandler(a.In, a.Out)
	} else {
		handler = runner.NewTextHandler(a.In, a.Out, runner.WithTextHandlerRenderer(tui.NewOutcomeRenderer(profile)))
	}

	runnerOpts := []runner.Option{
		runner.WithEngine(engine),
		runner.WithDefinition(name, def),
		runner.WithStore(store),
		runner.WithLogger(logger),
		runner.WithInputHandler(handler),
	}

	if len(opts.Inputs) > 0 {
		return a.runInputs(ctx, runner.NewRunner(runnerOpts...), handler, def, opts)
	}

	if a.interactive() && !opts.JSON {
		tui.PrintBanner(a.Out, profile)
		printSystemMessage(a.Out, "Loaded machine '%s' (%d rules). Type exit or press Ctrl+D to quit.", name, len(def.Rules))
	}

	// Ctrl+C stops a runaway machine; at the prompt it ends the session.
	signals := runner.NewSignalManager()
	defer signals.Stop()
	runnerOpts = append(runnerOpts, runner.WithInterruptSource(signals.C()))

	return runner.NewRunner(runnerOpts...).Run(ctx)
}

// runInputs simulates the command-line inputs in order.
func (a *App) runInputs(ctx context.Context, r *runner.Runner, handler runner.IOHandler, def *domain.Definition, opts RunOptions) error {
	if !opts.JSON {
		printSystemMessage(a.Out, "Alphabet: %s", validator.FormatAlphabet(def.Alphabet))
	}

	rejected, failed := 0, 0
	for _, input := range opts.Inputs {
		if err := validator.ValidateInput(def, input); err != nil {
			failed++
			if err := handler.SystemOutput(ctx, err.Error()); err != nil {
				return err
			}
			continue
		}

		outcome, err := r.Simulate(ctx, input)
		if err != nil {
			return err
		}
		if err := handler.Output(ctx, outcome); err != nil {
			return err
		}
		switch {
		case outcome.Err != nil:
			failed++
		case !outcome.Result.Accepted():
			rejected++
		}
		if opts.Trace && !opts.JSON && outcome.Result != nil {
			fmt.Fprintf(a.Out, "final tape: %s\n", tui.TapeView(a.profile(), outcome.Result.Tape, outcome.Result.Head))
		}
		if outcome.RunID != "" && !opts.JSON {
			printSystemMessage(a.Out, "Recorded run %s", outcome.RunID)
		}
	}

	switch {
	case failed > 0:
		return &ExitCodeError{Code: ExitError}
	case rejected > 0:
		return &ExitCodeError{Code: ExitRejected}
	}
	return nil
}

// writeLines prints one line per item.
func writeLines(w io.Writer, items []string) {
	for _, item := range items {
		fmt.Fprintln(w, item)
	}
}
