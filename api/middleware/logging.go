// ABOUTME: HTTP request logging middleware for the search API
// ABOUTME: Tags each request with an id and logs method, path, status and latency

package middleware

import (
	"context"
	"net/http"
	"time"

	"devpulse-search-api/core/interfaces"
	"github.com/google/uuid"
)

// requestIDHeader carries the request id back to the caller so a slow or
// failed search can be correlated with the server logs.
const requestIDHeader = "X-Request-ID"

// slowRequestThreshold flags searches that burned a large share of the
// fan-out budget. Those usually mean a source is degraded.
const slowRequestThreshold = 10 * time.Second

type requestIDContextKey struct{}

// RequestIDFromContext returns the id assigned to the current request,
// or the empty string when the logging middleware is not installed.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written bool
}

func (rec *statusRecorder) WriteHeader(code int) {
	if rec.written {
		return
	}
	rec.status = code
	rec.written = true
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if !rec.written {
		rec.WriteHeader(http.StatusOK)
	}
	return rec.ResponseWriter.Write(b)
}

// RequestLoggingMiddleware assigns each request an id, stores it in the
// request context and response headers, and logs the request lifecycle.
func RequestLoggingMiddleware(logger interfaces.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.New().String()
			w.Header().Set(requestIDHeader, requestID)
			r = r.WithContext(context.WithValue(r.Context(), requestIDContextKey{}, requestID))

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			logger.Info("request received", map[string]interface{}{
				"request_id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
				"client_ip":  clientIP(r),
				"user_agent": r.UserAgent(),
			})

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)

			logger.Info("request served", map[string]interface{}{
				"request_id":  requestID,
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rec.status,
				"duration_ms": elapsed.Milliseconds(),
			})

			if elapsed > slowRequestThreshold {
				logger.Warn("slow request", map[string]interface{}{
					"request_id":  requestID,
					"path":        r.URL.Path,
					"duration_ms": elapsed.Milliseconds(),
				})
			}

			if rec.status >= http.StatusInternalServerError {
				logger.Error("request failed", map[string]interface{}{
					"request_id": requestID,
					"method":     r.Method,
					"path":       r.URL.Path,
					"status":     rec.status,
				})
			}
		})
	}
}
