package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
)

// LoggingHooks logs every step at debug level and every halt at info level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step",
				"step", e.Step,
				"state", e.State,
				"head", e.Head,
				"read", e.Symbol.String(),
				"rule", e.Rule.String(),
			)
		},
		OnHalt: func(ctx context.Context, e *domain.HaltEvent) {
			logger.InfoContext(ctx, "halt",
				"verdict", e.Result.Verdict,
				"halt", e.Result.Halt,
				"state", e.Result.FinalState,
				"steps", e.Result.Steps,
				"duration", e.Duration,
			)
		},
	}
}

// TraceFormatter renders a tape window for a step.
type TraceFormatter func(e *domain.StepEvent) string

// DefaultTraceFormatter prints "#step state tape rule".
func DefaultTraceFormatter(e *domain.StepEvent) string {
	return fmt.Sprintf("#%-5d %-10s %s  %s", e.Step, e.State, e.Tape, e.Rule.String())
}

// TraceHooks writes one line per step to w.
// A nil format uses DefaultTraceFormatter.
func TraceHooks(w io.Writer, format TraceFormatter) domain.LifecycleHooks {
	if format == nil {
		format = DefaultTraceFormatter
	}
	return domain.LifecycleHooks{
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			fmt.Fprintln(w, format(e))
		},
	}
}
