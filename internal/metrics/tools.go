package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// MCP tool Prometheus metrics.
var (
	ToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ndlcore",
			Subsystem: "mcp",
			Name:      "tool_calls_total",
			Help:      "Total number of MCP tool calls",
		},
		[]string{"tool", "status"},
	)

	ToolCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ndlcore",
			Subsystem: "mcp",
			Name:      "tool_call_duration_seconds",
			Help:      "MCP tool call duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"tool"},
	)

	ToolResultsReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ndlcore",
			Subsystem: "mcp",
			Name:      "tool_results_returned",
			Help:      "Corpus records returned per search tool call",
			Buckets:   []float64{0, 1, 5, 10, 20, 50},
		},
		[]string{"tool"},
	)
)

var registerOnce sync.Once

// Register registers all ndlcore collectors on the default registry.
// Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ToolCallsTotal)
		prometheus.MustRegister(ToolCallDuration)
		prometheus.MustRegister(ToolResultsReturned)
		prometheus.MustRegister(httpRequestDuration)
		prometheus.MustRegister(httpRequestsTotal)
	})
}
