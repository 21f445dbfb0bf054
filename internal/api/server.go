// Package api serves the example bundle to dashboard sessions as JSON.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Ikkisovi/portifolio-dashboard/internal/api/middleware"
	"github.com/Ikkisovi/portifolio-dashboard/internal/api/response"
	"github.com/Ikkisovi/portifolio-dashboard/internal/metrics"
	"github.com/Ikkisovi/portifolio-dashboard/internal/portfolio"
)

// Config holds server configuration
type Config struct {
	Host        string
	Port        int
	APIKey      string
	MetricsPath string
}

// Server is the HTTP server for the dashboard backend.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
	cache      *portfolio.Cache
	metrics    *metrics.Registry
}

// NewServer creates a new HTTP server around the bundle cache.
func NewServer(cfg Config, cache *portfolio.Cache, reg *metrics.Registry, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	mux := http.NewServeMux()

	s := &Server{
		logger:  logger,
		mux:     mux,
		cache:   cache,
		metrics: reg,
	}

	s.setupRoutes(cfg)

	var handler http.Handler = mux
	if reg != nil {
		handler = metrics.HTTPMiddleware(reg)(handler)
	}
	handler = middleware.RequestID(handler)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes(cfg Config) {
	auth := middleware.APIKeyAuth(cfg.APIKey)
	protect := func(h http.HandlerFunc) http.Handler { return auth(h) }

	s.mux.Handle("/api/bundle", protect(s.handleBundle))
	s.mux.Handle("/api/equity", protect(s.handleEquity))
	s.mux.Handle("/api/equity/drawdown", protect(s.handleDrawdown))
	s.mux.Handle("/api/positions", protect(s.handlePositions))
	s.mux.Handle("/api/account", protect(s.handleAccount))
	s.mux.Handle("/api/benchmark", protect(s.handleBenchmark))

	// Health and metrics stay unauthenticated for probes and scrapers.
	s.mux.HandleFunc("/api/health", s.handleHealth)
	if s.metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		s.mux.Handle(path, s.metrics.Handler())
	}
}

func (s *Server) handleBundle(w http.ResponseWriter, r *http.Request) {
	bundle := s.cache.Get(r.Context())
	if s.metrics != nil {
		source := "built"
		if bundle.Fallback {
			source = "fallback"
		}
		s.metrics.RecordServed(source)
	}
	s.logger.Debug("served bundle",
		zap.String("requestID", middleware.GetRequestID(r.Context())),
		zap.Bool("fallback", bundle.Fallback))
	response.JSON(w, http.StatusOK, bundle)
}

func (s *Server) handleEquity(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, s.cache.Get(r.Context()).Equity)
}

func (s *Server) handleDrawdown(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, portfolio.Drawdown(s.cache.Get(r.Context()).Equity))
}

func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, s.cache.Get(r.Context()).Positions)
}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, s.cache.Get(r.Context()).Account)
}

func (s *Server) handleBenchmark(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, s.cache.Get(r.Context()).Benchmark)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"bundle": string(s.cache.State()),
	})
}

// Handler exposes the full middleware-wrapped handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
