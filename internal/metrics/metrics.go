// Package metrics records Prometheus counters and timings for sketch
// analysis. A nil *Metrics is valid and records nothing, so callers that
// run without a registry need no special casing.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ironsheep/sketch2wire/internal/config"
	"github.com/ironsheep/sketch2wire/internal/imaging"
	"github.com/ironsheep/sketch2wire/internal/pipeline"
)

const namespace = "sketch2wire"

// Outcome label values.
const (
	OutcomeOK          = "ok"
	OutcomeDecodeError = "decode_error"
	OutcomeConfigError = "config_error"
	OutcomeError       = "error"
)

// Metrics holds the collectors of one process.
type Metrics struct {
	analyses   *prometheus.CounterVec
	components *prometheus.CounterVec
	duration   prometheus.Histogram
	toolCalls  *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Sketch analyses by outcome.",
		}, []string{"outcome"}),
		components: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "components_total",
			Help:      "Detected components by type.",
		}, []string{"type"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Wall time of one sketch analysis.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "MCP tool invocations by tool and outcome.",
		}, []string{"tool", "outcome"}),
	}
	reg.MustRegister(m.analyses, m.components, m.duration, m.toolCalls)
	return m
}

// ObserveAnalysis records one pipeline run. res may be nil when err is set.
func (m *Metrics) ObserveAnalysis(res *pipeline.Result, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(Outcome(err)).Inc()
	if err != nil {
		return
	}
	m.duration.Observe(elapsed.Seconds())
	for _, c := range res.Components {
		m.components.WithLabelValues(c.Type.String()).Inc()
	}
}

// ObserveToolCall records one MCP tool invocation.
func (m *Metrics) ObserveToolCall(tool string, err error) {
	if m == nil {
		return
	}
	m.toolCalls.WithLabelValues(tool, Outcome(err)).Inc()
}

// Outcome maps an error to its outcome label.
func Outcome(err error) string {
	var decErr *imaging.DecodeError
	var cfgErr *config.ConfigError
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &decErr):
		return OutcomeDecodeError
	case errors.As(err, &cfgErr):
		return OutcomeConfigError
	default:
		return OutcomeError
	}
}
