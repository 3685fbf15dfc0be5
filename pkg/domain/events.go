package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStep EventType = "step"
	EventHalt EventType = "halt"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StepEvent describes one applied rule.
// Head and Tape reflect the configuration before the rule was applied.
type StepEvent struct {
	EventBase
	Step   int    `json:"step"`
	State  string `json:"state"`
	Head   int    `json:"head"`
	Symbol Symbol `json:"symbol"`
	Rule   Rule   `json:"rule"`
	Tape   string `json:"tape"`
}

// HaltEvent is emitted once the machine reached a verdict.
type HaltEvent struct {
	EventBase
	Result   *Result       `json:"result"`
	Duration time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for engine observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnStep func(context.Context, *StepEvent)
	OnHalt func(context.Context, *HaltEvent)
}

// Merge returns hooks that call h first, then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStep: func(ctx context.Context, e *StepEvent) {
			if h.OnStep != nil {
				h.OnStep(ctx, e)
			}
			if other.OnStep != nil {
				other.OnStep(ctx, e)
			}
		},
		OnHalt: func(ctx context.Context, e *HaltEvent) {
			if h.OnHalt != nil {
				h.OnHalt(ctx, e)
			}
			if other.OnHalt != nil {
				other.OnHalt(ctx, e)
			}
		},
	}
}
