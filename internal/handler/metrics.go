package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/farmdesk/backend/internal/metrics"
)

// Metrics returns middleware that records Prometheus request metrics.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(sr, r)

		path := normalizePath(r.URL.Path)
		metrics.HTTPRequestsTotal.WithLabelValues(
			r.Method, path, strconv.Itoa(sr.statusCode),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			r.Method, path,
		).Observe(time.Since(start).Seconds())
	})
}

// normalizePath replaces message ids with a placeholder to keep metric
// cardinality bounded.
func normalizePath(path string) string {
	const prefix = "/api/messages/"
	if strings.HasPrefix(path, prefix) && len(path) > len(prefix) {
		if strings.HasSuffix(path, "/status") {
			return prefix + "{id}/status"
		}
		return prefix + "{id}"
	}
	return path
}
