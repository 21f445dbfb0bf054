package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Ikkisovi/portifolio-dashboard/internal/api/middleware"
	"github.com/Ikkisovi/portifolio-dashboard/internal/core"
	"github.com/Ikkisovi/portifolio-dashboard/internal/metrics"
	"github.com/Ikkisovi/portifolio-dashboard/internal/portfolio"
)

// emptyLoader returns an archive error for every symbol, so the cache serves
// the fallback dataset deterministically.
type emptyLoader struct{}

func (emptyLoader) Load(ctx context.Context, symbol string) (core.PriceSeries, error) {
	return core.PriceSeries{}, core.ErrArchiveMissingOrMalformed
}

func newTestServer(apiKey string) *Server {
	builder := portfolio.NewBuilder(emptyLoader{}, portfolio.BuildConfig{
		Tickers:     []string{"MU", "SNDK"},
		Benchmark:   "SPY",
		Start:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		BaseCapital: 100000,
		Currency:    "USD",
	}, zap.NewNop())
	cache := portfolio.NewCache(builder, nil, zap.NewNop())

	return NewServer(Config{
		Host:   "localhost",
		Port:   0,
		APIKey: apiKey,
	}, cache, nil, zap.NewNop())
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer("")

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data["status"] != "ok" {
		t.Errorf("expected status ok, got %q", resp.Data["status"])
	}
	if resp.Data["bundle"] != string(portfolio.StateUninitialized) {
		t.Errorf("expected uninitialized bundle state, got %q", resp.Data["bundle"])
	}
}

func TestServer_Bundle(t *testing.T) {
	srv := newTestServer("")

	req := httptest.NewRequest("GET", "/api/bundle", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Data core.Bundle `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	// The loader always fails, so the fallback dataset comes back.
	if !resp.Data.Fallback {
		t.Error("expected fallback bundle")
	}
	if len(resp.Data.Equity) == 0 {
		t.Error("expected non-empty equity curve")
	}
	if len(resp.Data.Positions) != 4 {
		t.Errorf("expected 4 positions, got %d", len(resp.Data.Positions))
	}
	if resp.Data.Account.RuntimeStatistics["Equity"] == "" {
		t.Error("expected runtime statistics on account")
	}
}

func TestServer_BundleSlices(t *testing.T) {
	srv := newTestServer("")

	paths := []string{
		"/api/equity",
		"/api/equity/drawdown",
		"/api/positions",
		"/api/account",
		"/api/benchmark",
	}
	for _, path := range paths {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, w.Code)
		}
	}
}

func TestServer_APIAuth_Required(t *testing.T) {
	srv := newTestServer("test-key")

	// Without API key
	req := httptest.NewRequest("GET", "/api/bundle", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without key, got %d", w.Code)
	}

	// With API key
	req = httptest.NewRequest("GET", "/api/bundle", nil)
	req.Header.Set("X-API-Key", "test-key")
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 with key, got %d", w.Code)
	}
}

func TestServer_HealthSkipsAuth(t *testing.T) {
	srv := newTestServer("test-key")

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 on health without key, got %d", w.Code)
	}
}

func TestServer_RequestIDEcho(t *testing.T) {
	srv := newTestServer("")

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("expected generated request ID header")
	}

	req = httptest.NewRequest("GET", "/api/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if got := w.Header().Get(middleware.RequestIDHeader); got != "abc-123" {
		t.Errorf("expected client request ID echoed, got %q", got)
	}
}

func TestServer_MetricsEndpoint(t *testing.T) {
	builder := portfolio.NewBuilder(emptyLoader{}, portfolio.BuildConfig{
		Tickers:     []string{"MU"},
		Start:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		BaseCapital: 100000,
	}, zap.NewNop())
	reg := metrics.NewRegistry()
	cache := portfolio.NewCache(builder, reg, zap.NewNop())

	srv := NewServer(Config{
		Host:        "localhost",
		Port:        0,
		MetricsPath: "/metrics",
	}, cache, reg, zap.NewNop())

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 on metrics, got %d", w.Code)
	}
}
