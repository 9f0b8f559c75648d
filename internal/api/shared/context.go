package shared

import (
	"context"

	"github.com/google/uuid"
	"github.com/trilhaapi/tarefa-api/internal/platform/logger"
)

// TraceIDHeader is the header used to propagate and return the trace ID.
const TraceIDHeader = "X-Trace-ID"

// SetTraceID stores traceID in the context, generating a new one when traceID
// is empty or not a valid UUID.
func SetTraceID(ctx context.Context, traceID string) context.Context {
	if _, err := uuid.Parse(traceID); err != nil {
		traceID = uuid.NewString()
	}
	return logger.WithTraceID(ctx, traceID)
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	return logger.TraceIDFromContext(ctx)
}
