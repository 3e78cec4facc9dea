// Package metrics provides Prometheus metrics for the chemistry data MCP server.
// It tracks tool calls, guarded backend calls, and HTTP transport traffic.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const (
	Namespace = "chemdata_mcp"
)

var (
	// RequestsTotal counts total MCP tool calls by tool name and status
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "requests_total",
		Help:      "Total number of MCP tool calls",
	}, []string{"tool", "status"})

	// RequestDuration measures request latency distribution
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "request_duration_seconds",
		Help:      "Request latency distribution by tool",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"tool"})

	// RequestInFlight tracks currently executing requests
	RequestInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "requests_in_flight",
		Help:      "Number of requests currently being processed",
	}, []string{"tool"})

	// GuardedCallsTotal counts guarded backend operations by outcome status
	GuardedCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "guarded_calls_total",
		Help:      "Guarded backend operations by service, operation and status (ok, error, timeout)",
	}, []string{"service", "operation", "status"})

	// GuardedCallDuration measures guarded operation latency up to completion or cutoff
	GuardedCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "guarded_call_duration_seconds",
		Help:      "Guarded backend operation latency by service and operation",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
	}, []string{"service", "operation"})

	// GuardSlotsInUse tracks occupied worker slots, including abandoned calls
	GuardSlotsInUse = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "guard_slots_in_use",
		Help:      "Worker slots held by in-flight backend calls",
	})

	// BackendAPILatency measures HTTP latency by service and action
	BackendAPILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "backend_api_latency_seconds",
		Help:      "Backend API call latency by service and action",
		Buckets:   prometheus.DefBuckets,
	}, []string{"service", "action"})

	// BackendAPIRequestsTotal counts backend HTTP requests
	BackendAPIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "backend_api_requests_total",
		Help:      "Total backend API requests by service, action and status",
	}, []string{"service", "action", "status"})

	// BackendAPIErrors counts backend HTTP errors by status code
	BackendAPIErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "backend_api_errors_total",
		Help:      "Backend API errors by service, action and error code",
	}, []string{"service", "action", "error_code"})

	// FiltersDropped counts query filters discarded because their value did not parse
	FiltersDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "filters_dropped_total",
		Help:      "Malformed query filters dropped by service and attribute",
	}, []string{"service", "attribute"})

	// RateLimitRejections counts requests rejected due to rate limiting
	RateLimitRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "rate_limit_rejections_total",
		Help:      "Requests rejected due to rate limiting",
	})

	// PanicsRecovered counts recovered panics
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "panics_recovered_total",
		Help:      "Number of panics recovered in tool handlers and guarded calls",
	}, []string{"tool"})

	// HTTPRequestsTotal counts HTTP transport requests
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method and status",
	}, []string{"method", "status"})

	// HTTPRequestDuration measures HTTP request latency
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency distribution",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path"})

	// BinaryPayloadSize tracks sizes of opaque payloads passed through (structure files, images, exports)
	BinaryPayloadSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "binary_payload_bytes",
		Help:      "Binary payload size distribution in bytes",
		Buckets:   []float64{100, 1000, 10000, 50000, 100000, 250000, 500000, 1000000, 5000000},
	}, []string{"service", "kind"})
)

// RecordRequest records a completed request with its duration and status
func RecordRequest(tool string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	RequestsTotal.WithLabelValues(tool, status).Inc()
	RequestDuration.WithLabelValues(tool).Observe(duration)
}

// RecordGuardedCall records one classified guard outcome
func RecordGuardedCall(service, operation, status string, duration float64) {
	GuardedCallsTotal.WithLabelValues(service, operation, status).Inc()
	GuardedCallDuration.WithLabelValues(service, operation).Observe(duration)
}

// RecordAPICall records a backend HTTP call
func RecordAPICall(service, action string, duration float64, success bool, errorCode string) {
	status := "success"
	if !success {
		status = "error"
	}
	BackendAPIRequestsTotal.WithLabelValues(service, action, status).Inc()
	BackendAPILatency.WithLabelValues(service, action).Observe(duration)
	if errorCode != "" {
		BackendAPIErrors.WithLabelValues(service, action, errorCode).Inc()
	}
}

// RecordDroppedFilter records a filter that was discarded during query composition
func RecordDroppedFilter(service, attribute string) {
	FiltersDropped.WithLabelValues(service, attribute).Inc()
}

// RecordBinaryPayload records the size of an opaque payload
func RecordBinaryPayload(service, kind string, size int) {
	BinaryPayloadSize.WithLabelValues(service, kind).Observe(float64(size))
}
