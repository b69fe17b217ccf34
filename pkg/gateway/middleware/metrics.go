package middleware

import (
	"net/http"
	"time"
)

// RequestRecorder receives per-request metrics. Implementations must be
// safe for concurrent use.
type RequestRecorder interface {
	RecordRequest(route string, status int, duration time.Duration)
}

// MetricsMiddleware records request count and duration for each request.
// The route label is the registered pattern path, not the raw URL, to keep
// metric cardinality bounded.
//
// Example usage:
//
//	handler = MetricsMiddleware(collector.Request())(handler)
func MetricsMiddleware(recorder RequestRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if recorder == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			recorder.RecordRequest(r.URL.Path, rw.statusCode, time.Since(startTime))
		})
	}
}
