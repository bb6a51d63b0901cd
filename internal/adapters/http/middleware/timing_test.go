package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"planner/internal/observability"
)

func requestCount(t *testing.T, method, route, status string) uint64 {
	t.Helper()
	m := &dto.Metric{}
	if err := observability.HTTPRequestDuration.WithLabelValues(method, route, status).(prometheus.Metric).Write(m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func timedMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/static/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return Timing(time.Second)(mux)
}

// TestTimingMiddleware_LabelsByPattern verifies requests are observed under their route pattern.
func TestTimingMiddleware_LabelsByPattern(t *testing.T) {
	before := requestCount(t, "GET", "GET /api/items/{id}", "200")

	rr := httptest.NewRecorder()
	timedMux().ServeHTTP(rr, httptest.NewRequest("GET", "/api/items/42", nil))

	if got := requestCount(t, "GET", "GET /api/items/{id}", "200") - before; got != 1 {
		t.Errorf("observations = %d, want 1", got)
	}
}

// TestTimingMiddleware_SkipsStatic verifies static assets are excluded from timing.
func TestTimingMiddleware_SkipsStatic(t *testing.T) {
	before := requestCount(t, "GET", "/static/", "200")

	rr := httptest.NewRecorder()
	timedMux().ServeHTTP(rr, httptest.NewRequest("GET", "/static/style.css", nil))

	if got := requestCount(t, "GET", "/static/", "200") - before; got != 0 {
		t.Errorf("observations = %d, want 0 (static excluded)", got)
	}
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

// TestTimingMiddleware_CapturesStatusCode verifies the status code is captured.
func TestTimingMiddleware_CapturesStatusCode(t *testing.T) {
	before := requestCount(t, "GET", "/missing", "404")

	rr := httptest.NewRecorder()
	timedMux().ServeHTTP(rr, httptest.NewRequest("GET", "/missing", nil))

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
	if got := requestCount(t, "GET", "/missing", "404") - before; got != 1 {
		t.Errorf("observations = %d, want 1", got)
	}
}

// TestTimingMiddleware_Unmatched verifies requests outside any route share one label.
func TestTimingMiddleware_Unmatched(t *testing.T) {
	before := requestCount(t, "DELETE", unmatchedRoute, "405")

	handler := Timing(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("DELETE", "/anything", nil))

	if got := requestCount(t, "DELETE", unmatchedRoute, "405") - before; got != 1 {
		t.Errorf("observations = %d, want 1", got)
	}
}
