package observability

import (
	"context"

	"github.com/aretw0/fsm/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fsm"

// Metrics holds the collectors describing automaton evaluations.
type Metrics struct {
	steps       *prometheus.CounterVec
	runs        *prometheus.CounterVec
	inputLength *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		steps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "steps_total",
				Help:      "Total number of transitions taken",
			},
			[]string{"automaton"},
		),
		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of completed evaluations by verdict",
			},
			[]string{"automaton", "verdict"},
		),
		inputLength: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "input_length",
				Help:      "Number of symbols consumed per evaluation",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"automaton"},
		),
	}
}

// Hooks returns runner callbacks that record into m.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			m.steps.WithLabelValues(e.Automaton).Inc()
		},
		OnResult: func(_ context.Context, e *domain.ResultEvent) {
			m.runs.WithLabelValues(e.Automaton, string(e.Result.Verdict())).Inc()
			m.inputLength.WithLabelValues(e.Automaton).Observe(float64(e.Result.Steps))
		},
	}
}
