package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/okian/tabellone/pkg/logger"
	"github.com/okian/tabellone/pkg/metrics"
)

// MetricsMiddleware records request count, latency and error class for one
// route. Server errors are also logged with the route pattern.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		status := strconv.Itoa(rec.status)
		metrics.RecordHTTPRequest(endpoint, r.Method, status)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, status, float64(elapsed.Milliseconds()))

		class := errorClass(rec.status)
		if class == "" {
			return
		}
		metrics.RecordErrorByComponent("http", class)
		if rec.status >= http.StatusInternalServerError {
			logger.Get().Error(r.Context(), "request failed",
				logger.String("endpoint", endpoint),
				logger.String("pattern", r.Pattern),
				logger.Int("status", rec.status),
				logger.Duration("elapsed", elapsed),
			)
		}
	}
}

// errorClass buckets failing statuses for the errors_total metric; it is
// empty for successful responses.
func errorClass(status int) string {
	switch {
	case status < http.StatusBadRequest:
		return ""
	case status == http.StatusTooManyRequests:
		return "backpressure"
	case status == http.StatusNotFound:
		return "not_found"
	case status == http.StatusServiceUnavailable:
		return "unavailable"
	case status >= http.StatusInternalServerError:
		return "server_error"
	default:
		return "client_error"
	}
}

// statusRecorder remembers the status written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}
