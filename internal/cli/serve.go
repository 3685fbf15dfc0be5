package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	httpAdapter "github.com/aretw0/turing/pkg/adapters/http"
	mcpAdapter "github.com/aretw0/turing/pkg/adapters/mcp"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/runner"
)

// shutdownTimeout bounds graceful shutdown of the HTTP server.
const shutdownTimeout = 5 * time.Second

// newService wires the stateless simulation service used by serve and mcp.
func (a *App) newService(ctx context.Context, metrics *observability.Metrics) (*runner.Service, func() error, error) {
	store, closeStore, err := a.openStore(ctx, false)
	if err != nil {
		return nil, nil, err
	}
	logger := a.logger()

	var hooks domain.LifecycleHooks
	if metrics != nil {
		hooks = metrics.Hooks()
	}
	// Step logging formats the tape on every step.
	if logger.Enabled(ctx, slog.LevelDebug) {
		hooks = hooks.Merge(observability.LoggingHooks(logger))
	}
	return &runner.Service{
		Loader:    createLoader(a.Config),
		Store:     store,
		NewEngine: engineFactory(a.Config, hooks, logger),
		Parser:    createParser(a.Config),
		Logger:    logger,
	}, closeStore, nil
}

// Serve runs the HTTP API on addr until ctx is done, then shuts down
// gracefully.
func (a *App) Serve(ctx context.Context, addr string) error {
	if addr == "" {
		addr = a.Config.HTTP.Addr
	}
	metrics := observability.NewMetrics()
	svc, closeStore, err := a.newService(ctx, metrics)
	if err != nil {
		return err
	}
	defer closeStore()

	logger := a.logger()
	srv := &http.Server{
		Addr:              addr,
		Handler:           httpAdapter.NewHandler(svc, httpAdapter.WithMetrics(metrics), httpAdapter.WithLogger(logger)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(a.Err, "Turing HTTP Server listening on %s (machines: %s)", addr, a.Config.MachinesDir)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		printSystemMessage(a.Err, "Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("server exited")
		return nil
	}
}

// ServeMCP runs the MCP server over stdio, or over SSE when port is set.
func (a *App) ServeMCP(ctx context.Context, port int) error {
	svc, closeStore, err := a.newService(ctx, nil)
	if err != nil {
		return err
	}
	defer closeStore()

	server := mcpAdapter.NewServer(svc)
	if port > 0 {
		return server.ServeSSE(ctx, port)
	}
	return server.ServeStdio()
}
