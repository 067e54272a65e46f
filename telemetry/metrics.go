package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_requests_total",
		Help: "Total number of answered queries by outcome",
	}, []string{"outcome"}) // answered, refused, freeform

	toolCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_tool_calls_total",
		Help: "Total number of tool invocations",
	}, []string{"tool", "status"})

	confidenceTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_confidence_total",
		Help: "Responses by confidence level",
	}, []string{"level"})

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "folio_request_duration_seconds",
		Help:    "Time to answer a query in seconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
	})
)

// RecordRequest records one answered query.
func RecordRequest(outcome string, start time.Time) {
	requestsTotal.WithLabelValues(outcome).Inc()
	requestDuration.Observe(time.Since(start).Seconds())
}

// RecordToolCall records one tool invocation. status is "success" or the
// error code.
func RecordToolCall(tool, status string) {
	toolCallsTotal.WithLabelValues(tool, status).Inc()
}

// RecordConfidence records the confidence level of a response.
func RecordConfidence(level string) {
	confidenceTotal.WithLabelValues(level).Inc()
}

// MetricsHandler serves the default Prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
