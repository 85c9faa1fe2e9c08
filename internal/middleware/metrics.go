package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"tattiadmin/internal/metrics"
)

// Metrics records a latency observation for every request, labeled by
// method, matched chi route pattern, and status code. Using the route
// pattern instead of the raw path keeps label cardinality bounded.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.WithLabelValues(
			r.Method, route, strconv.Itoa(wrapped.statusCode),
		).Observe(time.Since(start).Seconds())
	})
}
