package application

import (
	"net/http"
	"time"

	"devutils-bridge/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// unknownLabel replaces tool and operation names that are not in the catalog,
// keeping label cardinality bounded.
const unknownLabel = "unknown"

// Metrics records bridge call counts and latencies on a private registry.
type Metrics struct {
	registry *prometheus.Registry
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates and registers the bridge metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "devutils",
			Subsystem: "bridge",
			Name:      "tool_calls_total",
			Help:      "Bridge tool calls by tool, operation and outcome.",
		}, []string{"tool", "operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "devutils",
			Subsystem: "bridge",
			Name:      "tool_call_duration_seconds",
			Help:      "Bridge tool call latency.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"tool"}),
	}
	m.registry.MustRegister(m.calls, m.duration)
	return m
}

// ObserveCall records one completed call.
func (m *Metrics) ObserveCall(tool, operation, outcome string, elapsed time.Duration) {
	toolLabel, opLabel := unknownLabel, unknownLabel
	if id, ok := domain.ParseToolID(tool); ok {
		toolLabel = string(id)
		for _, op := range domain.OperationsFor(id) {
			if op == operation {
				opLabel = op
				break
			}
		}
	}

	m.calls.WithLabelValues(toolLabel, opLabel, outcome).Inc()
	m.duration.WithLabelValues(toolLabel).Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
