// ABOUTME: Request logging middleware for API endpoints
// ABOUTME: Assigns a request ID, logs timing and status, and tags outgoing upstream calls

package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"kvk-insights-api/core/interfaces"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// slowRequest is the duration above which a request is logged as a warning.
// Full profiles fan out to many sources, so this sits above the source timeout.
const slowRequest = 10 * time.Second

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.ResponseWriter.WriteHeader(code)
		rw.written = true
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

type requestIDKey struct{}

// WithRequestID stores id in ctx
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request ID stored in ctx, or ""
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestLoggingMiddleware creates a middleware that logs all requests. An
// incoming X-Request-ID is reused; otherwise a new UUID is assigned.
func RequestLoggingMiddleware(logger interfaces.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			w.Header().Set(RequestIDHeader, requestID)
			r = r.WithContext(WithRequestID(r.Context(), requestID))

			start := time.Now()
			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			logger.Info("Request started", RequestLogFields(r))

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			fields := ResponseLogFields(wrapped.statusCode, duration)
			fields["request_id"] = requestID
			fields["method"] = r.Method
			fields["path"] = r.URL.Path

			switch {
			case wrapped.statusCode >= 500:
				logger.Error("Request failed with server error", fields)
			case duration > slowRequest:
				logger.Warn("Slow request detected", fields)
			default:
				logger.Info("Request completed", fields)
			}
		})
	}
}

// LoggingRoundTripper implements http.RoundTripper with logging. Outgoing
// calls carry the request ID of the API request that caused them.
type LoggingRoundTripper struct {
	Transport http.RoundTripper
	Logger    interfaces.Logger
}

// RoundTrip logs outgoing HTTP requests
func (t *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	transport := t.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	requestID := RequestIDFromContext(req.Context())
	if requestID != "" && req.Header.Get(RequestIDHeader) == "" {
		req = req.Clone(req.Context())
		req.Header.Set(RequestIDHeader, requestID)
	}

	start := time.Now()
	resp, err := transport.RoundTrip(req)
	duration := time.Since(start)

	fields := map[string]interface{}{
		"request_id":  requestID,
		"method":      req.Method,
		"host":        req.URL.Host,
		"path":        req.URL.Path,
		"duration_ms": duration.Milliseconds(),
	}

	if err != nil {
		fields["error"] = err.Error()
		t.Logger.Warn("Upstream request failed", fields)
		return nil, err
	}

	fields["status"] = resp.StatusCode
	t.Logger.Debug("Upstream request completed", fields)
	return resp, nil
}

// RequestLogFields extracts common log fields from a request. The query
// string is left out because it may carry registration numbers.
func RequestLogFields(r *http.Request) map[string]interface{} {
	return map[string]interface{}{
		"request_id": RequestIDFromContext(r.Context()),
		"method":     r.Method,
		"path":       r.URL.Path,
		"remote_ip":  extractIP(r),
		"user_agent": r.UserAgent(),
	}
}

// ResponseLogFields creates log fields for a response
func ResponseLogFields(statusCode int, duration time.Duration) map[string]interface{} {
	return map[string]interface{}{
		"status":      statusCode,
		"duration_ms": duration.Milliseconds(),
		"status_text": http.StatusText(statusCode),
	}
}
