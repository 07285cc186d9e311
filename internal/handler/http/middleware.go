package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel/trace"

	"feedboard/internal/handler/http/requestid"
	"feedboard/internal/handler/http/respond"
	"feedboard/internal/handler/http/responsewriter"
	"feedboard/internal/observability/logging"
	"feedboard/internal/observability/metrics"
)

// Logging logs one line per request. The request-scoped logger, carrying
// request_id, is stored in the context for handlers.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := responsewriter.Wrap(w)

			reqLogger := logging.WithRequestID(r.Context(), logger)
			r = r.WithContext(logging.WithLogger(r.Context(), reqLogger))

			next.ServeHTTP(wrapped, r)

			traceID := trace.SpanFromContext(r.Context()).SpanContext().TraceID().String()
			duration := time.Since(start)

			reqLogger.Info("request completed",
				slog.String("trace_id", traceID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("query", respond.SanitizeMessage(r.URL.RawQuery)),
				slog.String("remote_addr", r.RemoteAddr),
				slog.Int("status", wrapped.StatusCode()),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Duration("duration", duration),
			)
		})
	}
}

// Recover turns a handler panic into a 500 response and an error log line.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					// ヘッダー未送信の場合のみエラーレスポンスを返す
					if rw, ok := w.(*responsewriter.ResponseWriter); !ok || !rw.Written() {
						respond.SafeError(w, http.StatusInternalServerError, fmt.Errorf("internal error"))
					}

					logger.Error("panic recovered",
						slog.String("request_id", requestid.FromContext(r.Context())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
					)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Metrics records request count and latency by route pattern. It must wrap
// the ServeMux directly so the matched pattern is visible after dispatch.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := responsewriter.Wrap(w)

		next.ServeHTTP(wrapped, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(r.Method, path, wrapped.StatusCode(), time.Since(start))
	})
}

// Chain applies middleware so that the first one listed is the outermost.
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
