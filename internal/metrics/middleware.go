package metrics

import (
	"net/http"
	"time"
)

// statusRecorder captures the status code the wrapped handler writes.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// HTTPMiddleware instruments every request with the registry's HTTP metrics:
// the in-flight gauge, the per-status-class request counter and the duration
// histogram. Handlers that never call WriteHeader count as 200.
func HTTPMiddleware(reg *Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reg.InFlightInc()
			defer reg.InFlightDec()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r)

			reg.RecordRequest(r.Method, r.URL.Path, rec.status, time.Since(start).Seconds())
		})
	}
}
