package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Bundle builder metrics
	bundleBuildsTotal *prometheus.CounterVec
	bundleBuildSecs   prometheus.Histogram
	bundleServedTotal *prometheus.CounterVec
	archiveRowsBad    *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),

		bundleBuildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bundle_builds_total",
				Help: "Completed example bundle build attempts by outcome",
			},
			[]string{"outcome"},
		),

		bundleBuildSecs: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bundle_build_duration_seconds",
				Help:    "Example bundle build duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),

		bundleServedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bundle_served_total",
				Help: "Bundle responses served by source",
			},
			[]string{"source"},
		),

		archiveRowsBad: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "archive_rows_skipped_total",
				Help: "Malformed archive rows skipped during decode",
			},
			[]string{"symbol"},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)
	reg.MustRegister(r.bundleBuildsTotal)
	reg.MustRegister(r.bundleBuildSecs)
	reg.MustRegister(r.bundleServedTotal)
	reg.MustRegister(r.archiveRowsBad)

	return r
}

// RecordRequest records a completed HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, seconds float64) {
	r.httpRequestsTotal.WithLabelValues(method, path, statusLabel(status)).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// InFlightInc increments the in-flight request gauge.
func (r *Registry) InFlightInc() { r.httpRequestsInFlight.Inc() }

// InFlightDec decrements the in-flight request gauge.
func (r *Registry) InFlightDec() { r.httpRequestsInFlight.Dec() }

// ObserveBuild records a completed bundle build attempt. outcome is "built"
// or "fallback".
func (r *Registry) ObserveBuild(outcome string, seconds float64) {
	r.bundleBuildsTotal.WithLabelValues(outcome).Inc()
	r.bundleBuildSecs.Observe(seconds)
}

// RecordServed counts a bundle response by source ("built" or "fallback").
func (r *Registry) RecordServed(source string) {
	r.bundleServedTotal.WithLabelValues(source).Inc()
}

// RecordSkippedRows counts malformed archive rows skipped for a symbol.
func (r *Registry) RecordSkippedRows(symbol string, rows int) {
	r.archiveRowsBad.WithLabelValues(symbol).Add(float64(rows))
}

// Handler returns the HTTP handler exposing this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{})
}

func statusLabel(status int) string {
	switch {
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
