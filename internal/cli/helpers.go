// Package cli implements the turing commands on top of the runner, the
// adapters and the presentation packages. cmd/turing only parses flags.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/turing/internal/config"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Exit codes.
const (
	ExitError    = 1
	ExitRejected = 2
)

// ExitCodeError carries a process exit code up to main.
// A nil Err means nothing is left to print.
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitCodeError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by a command onto a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ec *ExitCodeError
	if errors.As(err, &ec) {
		return ec.Code
	}
	return ExitError
}

// App bundles what every command needs.
type App struct {
	Config config.Config
	Logger *slog.Logger

	In  io.Reader
	Out io.Writer
	Err io.Writer

	// NoColor forces plain output even on a terminal.
	NoColor bool
}

// NewApp builds an App over the process streams.
func NewApp(cfg config.Config, logger *slog.Logger) *App {
	return &App{
		Config: cfg,
		Logger: logger,
		In:     os.Stdin,
		Out:    os.Stdout,
		Err:    os.Stderr,
	}
}

// NewLogger configures the application logger from the config.
// Without a log level, a log file or debug mode it is a no-op logger, so
// Stdout and Stderr carry only command output. With log_file set, records
// also go to that file as JSON; the returned close function releases it.
func NewLogger(cfg config.Config, debug bool) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if debug {
		level = slog.LevelDebug
	}

	if cfg.LogFile == "" {
		if !debug && cfg.LogLevel == "" {
			return logging.NewNop(), noop, nil
		}
		return logging.New(level), noop, nil
	}

	if dir := filepath.Dir(cfg.LogFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return logging.NewWithFile(level, f), f.Close, nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.Debug("Step", "step", e.Step, "state", e.State, "head", e.Head, "rule", e.Rule.String())
		},
		OnHalt: func(ctx context.Context, e *domain.HaltEvent) {
			logger.Debug("Halt", "verdict", e.Result.Verdict, "halt", e.Result.Halt, "steps", e.Result.Steps)
		},
	}
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// isTerminal reports whether v is a file attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// interactive reports whether both ends of the session are a terminal.
func (a *App) interactive() bool {
	return isTerminal(a.In) && isTerminal(a.Out)
}

// profile picks the color profile for Out.
func (a *App) profile() termenv.Profile {
	if a.NoColor {
		return termenv.Ascii
	}
	return termenv.NewOutput(a.Out).EnvColorProfile()
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return logging.NewNop()
	}
	return a.Logger
}
