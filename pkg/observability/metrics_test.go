package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestMetricsRegistered verifies that all metrics are registered in the
// default registry and appear after being seeded.
func TestMetricsRegistered(t *testing.T) {
	expected := map[string]bool{
		"crewgate_requests_total":            false,
		"crewgate_request_duration_seconds":  false,
		"crewgate_inflight_requests":         false,
		"crewgate_pipeline_requests_total":   false,
		"crewgate_pipeline_latency_seconds":  false,
	}

	// Counters and histograms only appear after their first observation.
	RequestsTotal.WithLabelValues("GET", "2xx").Inc()
	RequestDuration.WithLabelValues("GET").Observe(0.1)
	PipelineRequestsTotal.WithLabelValues("crew", "ok").Inc()
	PipelineLatency.WithLabelValues("crew").Observe(0.1)

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("unexpected gather error: %v", err)
	}
	for _, mf := range families {
		if _, ok := expected[mf.GetName()]; ok {
			expected[mf.GetName()] = true
		}
	}

	for name, found := range expected {
		if !found {
			t.Errorf("metric %s not found in default registry", name)
		}
	}
}

func TestMetricsMiddlewareCountsRequests(t *testing.T) {
	before := counterValue(t, "crewgate_requests_total", map[string]string{"method": "POST", "status": "4xx"})

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/chat/completions", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	after := counterValue(t, "crewgate_requests_total", map[string]string{"method": "POST", "status": "4xx"})
	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}

func TestMetricsMiddlewareDefaultStatus(t *testing.T) {
	before := counterValue(t, "crewgate_requests_total", map[string]string{"method": "GET", "status": "2xx"})

	// Handler that writes a body without an explicit WriteHeader.
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/models", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	after := counterValue(t, "crewgate_requests_total", map[string]string{"method": "GET", "status": "2xx"})
	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}

// counterValue gathers the default registry and returns the value of the
// named counter with exactly the given labels, or 0 if absent.
func counterValue(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather error: %v", err)
	}

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if matchLabels(m, labels) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func matchLabels(m *dto.Metric, labels map[string]string) bool {
	got := make(map[string]string)
	for _, lp := range m.GetLabel() {
		got[lp.GetName()] = lp.GetValue()
	}
	for k, v := range labels {
		if got[k] != v {
			return false
		}
	}
	return true
}
