package observability

import (
	"context"
	"errors"
	"net/http"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for simulations.
type Metrics struct {
	registry *prometheus.Registry

	runs      *prometheus.CounterVec
	steps     prometheus.Counter
	runSteps  prometheus.Histogram
	runErrors *prometheus.CounterVec
}

// NewMetrics creates collectors registered on a private registry,
// along with the Go and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_runs_total",
				Help: "Total number of simulations that reached a verdict",
			},
			[]string{"verdict", "halt"},
		),
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "turing_steps_total",
			Help: "Total number of transitions applied across all simulations",
		}),
		runSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "turing_run_steps",
			Help:    "Steps taken per simulation",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		runErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_run_errors_total",
				Help: "Total number of simulations that ended in an error",
			},
			[]string{"kind"},
		),
	}
	m.registry.MustRegister(
		m.runs, m.steps, m.runSteps, m.runErrors,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry, e.g. for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks records every verdict.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnHalt: func(_ context.Context, e *domain.HaltEvent) {
			if e.Result == nil {
				return
			}
			m.runs.WithLabelValues(string(e.Result.Verdict), string(e.Result.Halt)).Inc()
			m.steps.Add(float64(e.Result.Steps))
			m.runSteps.Observe(float64(e.Result.Steps))
		},
	}
}

// ObserveError counts a failed simulation. Nil is ignored.
func (m *Metrics) ObserveError(err error) {
	if err == nil {
		return
	}
	m.runErrors.WithLabelValues(ErrorKind(err)).Inc()
}

// ErrorKind classifies an error into a low-cardinality label.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrTapeUnderflow):
		return "tape_underflow"
	case errors.Is(err, domain.ErrStepLimitExceeded):
		return "step_limit"
	case errors.Is(err, domain.ErrDeadlineExceeded):
		return "deadline"
	case errors.Is(err, domain.ErrMalformedDefinition):
		return "malformed_definition"
	case errors.Is(err, domain.ErrSymbolNotInAlphabet):
		return "alphabet"
	default:
		return "other"
	}
}
