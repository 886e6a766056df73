// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the crewgate gateway.
package observability

import "github.com/prometheus/client_golang/prometheus"

// PipelineBuckets defines histogram buckets suited for RAG pipeline
// latencies, ranging from 100ms to 120s. A crew run includes retrieval
// and generation, so the tail is long.
var PipelineBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

var (
	// RequestsTotal counts all HTTP requests by method and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crewgate_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "status"},
	)

	// RequestDuration records HTTP request duration in seconds by method.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crewgate_request_duration_seconds",
			Help:    "Request duration",
			Buckets: PipelineBuckets,
		},
		[]string{"method"},
	)

	// InflightRequests tracks the number of requests currently being handled.
	InflightRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "crewgate_inflight_requests",
			Help: "Requests in flight",
		},
	)

	// PipelineRequestsTotal counts pipeline runs by runner name and outcome.
	PipelineRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crewgate_pipeline_requests_total",
			Help: "Pipeline runs",
		},
		[]string{"pipeline", "status"},
	)

	// PipelineLatency records pipeline run duration in seconds.
	PipelineLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crewgate_pipeline_latency_seconds",
			Help:    "Pipeline latency",
			Buckets: PipelineBuckets,
		},
		[]string{"pipeline"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		InflightRequests,
		PipelineRequestsTotal,
		PipelineLatency,
	)
}
