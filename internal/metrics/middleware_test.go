package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMiddleware_RecordsRequest(t *testing.T) {
	reg := NewRegistry()
	wrapped := HTTPMiddleware(reg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest("GET", "/api/bundle", nil)
	wrapped.ServeHTTP(httptest.NewRecorder(), req)

	got := testutil.ToFloat64(reg.httpRequestsTotal.WithLabelValues("GET", "/api/bundle", "4xx"))
	if got != 1 {
		t.Errorf("expected one 4xx request recorded, got %v", got)
	}
	if inFlight := testutil.ToFloat64(reg.httpRequestsInFlight); inFlight != 0 {
		t.Errorf("expected in-flight gauge back at 0, got %v", inFlight)
	}
}

func TestHTTPMiddleware_DefaultStatusIs200(t *testing.T) {
	reg := NewRegistry()
	wrapped := HTTPMiddleware(reg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok")) // implicit 200
	}))

	req := httptest.NewRequest("GET", "/api/health", nil)
	wrapped.ServeHTTP(httptest.NewRecorder(), req)

	got := testutil.ToFloat64(reg.httpRequestsTotal.WithLabelValues("GET", "/api/health", "2xx"))
	if got != 1 {
		t.Errorf("expected one 2xx request recorded, got %v", got)
	}
}

func TestStatusLabel(t *testing.T) {
	cases := map[int]string{
		200: "2xx",
		204: "2xx",
		301: "3xx",
		404: "4xx",
		500: "5xx",
	}
	for status, want := range cases {
		if got := statusLabel(status); got != want {
			t.Errorf("statusLabel(%d) = %q, want %q", status, got, want)
		}
	}
}

func TestRegistry_BundleMetrics(t *testing.T) {
	reg := NewRegistry()

	reg.ObserveBuild("fallback", 0.2)
	reg.RecordServed("fallback")
	reg.RecordSkippedRows("MU", 3)

	if got := testutil.ToFloat64(reg.bundleBuildsTotal.WithLabelValues("fallback")); got != 1 {
		t.Errorf("expected one fallback build, got %v", got)
	}
	if got := testutil.ToFloat64(reg.bundleServedTotal.WithLabelValues("fallback")); got != 1 {
		t.Errorf("expected one fallback serve, got %v", got)
	}
	if got := testutil.ToFloat64(reg.archiveRowsBad.WithLabelValues("MU")); got != 3 {
		t.Errorf("expected 3 skipped rows for MU, got %v", got)
	}
}
