package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/trilhaapi/tarefa-api/internal/api/shared"
	"github.com/trilhaapi/tarefa-api/internal/platform/logger"
)

// NewTraceMiddleware returns middleware that adds a trace ID and a
// request-scoped logger to the request context. The trace ID is echoed in the
// X-Trace-ID response header and the completed request is logged with its
// status and duration.
// It should run before any handler that logs or writes error responses.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ctx := logger.WithLogger(r.Context(), base)
			ctx = shared.SetTraceID(ctx, r.Header.Get(shared.TraceIDHeader))
			traceID := shared.GetTraceID(ctx)
			log := logger.FromContext(ctx)

			w.Header().Set(shared.TraceIDHeader, traceID)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("request_id", chimiddleware.GetReqID(ctx)),
				slog.String("remote_addr", r.RemoteAddr))

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.Info("request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)))
		})
	}
}
