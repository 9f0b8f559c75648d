package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/trilhaapi/tarefa-api/internal/platform/logger"
	"github.com/trilhaapi/tarefa-api/internal/redact"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is implemented by dependencies that can report their availability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports whether the service can reach its store.
type HealthHandler struct {
	pinger Pinger
	logger *slog.Logger
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(pinger Pinger, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{
		pinger: pinger,
		logger: logger.With(slog.String("component", "health_handler")),
	}
}

// ServeHTTP handles GET /health.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := h.pinger.Ping(ctx); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Warn("health check failed",
			slog.String("error", redact.Error(err)))
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(MsgServiceUnhealthy))
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
