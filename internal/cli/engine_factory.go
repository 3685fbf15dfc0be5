package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/config"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/runner"
)

// EngineOptions are the per-invocation overrides of the configured bounds.
// Zero values keep the configuration.
type EngineOptions struct {
	MaxSteps int
	Timeout  time.Duration
	Hooks    domain.LifecycleHooks
	Debug    bool
}

// createEngine initializes an engine with standard CLI conventions.
func createEngine(cfg config.Config, opts EngineOptions, logger *slog.Logger) *runtime.Engine {
	maxSteps := cfg.MaxSteps
	if opts.MaxSteps > 0 {
		maxSteps = opts.MaxSteps
	}
	timeout := cfg.Timeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}

	hooks := opts.Hooks
	if opts.Debug {
		hooks = hooks.Merge(createDebugHooks(logger))
	}

	return runtime.NewEngine(
		runtime.WithMaxSteps(maxSteps),
		runtime.WithTimeout(timeout),
		runtime.WithLifecycleHooks(hooks),
		runtime.WithLogger(logger),
	)
}

// engineFactory adapts createEngine for the stateless service, letting each
// request lower or raise the step ceiling.
func engineFactory(cfg config.Config, hooks domain.LifecycleHooks, logger *slog.Logger) runner.EngineFactory {
	return func(maxSteps int) ports.Simulator {
		return createEngine(cfg, EngineOptions{MaxSteps: maxSteps, Hooks: hooks}, logger)
	}
}

func createParser(cfg config.Config) *compiler.Parser {
	if cfg.Strict {
		return compiler.NewParser(compiler.WithStrictDirections())
	}
	return compiler.NewParser()
}

// createLoader serves the machines directory.
func createLoader(cfg config.Config) *file.Loader {
	return file.NewLoader(cfg.MachinesDir, file.WithParser(createParser(cfg)))
}

// loadMachine resolves ref as a file path first and as a machine name in the
// machines directory second. The returned name is the file stem.
func loadMachine(ctx context.Context, cfg config.Config, ref string) (string, *domain.Definition, error) {
	if ref == "" {
		return "", nil, errors.New("no machine given")
	}

	data, err := os.ReadFile(ref)
	switch {
	case err == nil:
		def, err := createParser(cfg).ParseFile(ref, data)
		if err != nil {
			return "", nil, fmt.Errorf("%s: %w", ref, err)
		}
		return machineName(ref), def, nil
	case errors.Is(err, fs.ErrNotExist) && !strings.ContainsAny(ref, `/\`):
		def, lerr := createLoader(cfg).Load(ctx, ref)
		if lerr != nil {
			if errors.Is(lerr, domain.ErrMachineNotFound) {
				return "", nil, fmt.Errorf("%w: %q is neither a file nor a machine in %s", domain.ErrMachineNotFound, ref, cfg.MachinesDir)
			}
			return "", nil, lerr
		}
		return machineName(ref), def, nil
	default:
		return "", nil, fmt.Errorf("failed to read machine: %w", err)
	}
}

func machineName(ref string) string {
	base := filepath.Base(ref)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
