package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/browsekit/navigator/pkg/metrics"
)

type ctxKey string

// RequestIDKey carries the per-request uuid through the context.
const RequestIDKey = ctxKey("request_id")

type MiddlewareFunc func(next http.HandlerFunc) http.HandlerFunc

func Chain(mws ...MiddlewareFunc) MiddlewareFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}

// RequestID reads the id assigned by WithIncomingRequestLogging, or "N/A"
// when the middleware did not run.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return "N/A"
}

func WithIncomingRequestLogging(logger *slog.Logger) MiddlewareFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			id := "N/A"
			if uid, err := uuid.NewV7(); err == nil {
				id = uid.String()
			}
			r = r.WithContext(context.WithValue(r.Context(), RequestIDKey, id))

			logger.Info("incoming request",
				slog.GroupAttrs(
					"meta_data",
					slog.String("request_id", id),
					slog.String("method", r.Method),
					slog.String("remote_host", r.RemoteAddr),
					slog.String("route", r.URL.String()),
					slog.String("query", r.URL.RawQuery),
					slog.String("user_agent", r.UserAgent()),
				),
			)

			next.ServeHTTP(w, r)
		}
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func WithRequestMetrics() MiddlewareFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			metrics.RequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.status)).Inc()
		}
	}
}
