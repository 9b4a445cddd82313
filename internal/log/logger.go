package log

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

type contextKey string

// CorrelationIDKey is the context key under which the per-request correlation ID is stored.
var CorrelationIDKey contextKey = "correlation_id"

// LoggerContextKey is the context key under which a request-scoped logger is stored.
const LoggerContextKey contextKey = "logger"

// Logger wraps slog with correlation-aware helpers.
type Logger struct {
	*slog.Logger
}

func NewJSONLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}
}

// WithCorrelationID returns a logger that tags every record with the request's
// correlation ID, generating one when the context carries none.
func (l *Logger) WithCorrelationID(ctx context.Context) *Logger {
	return &Logger{
		Logger: l.Logger.With(string(CorrelationIDKey), CorrelationIDFromContext(ctx)),
	}
}

func CorrelationIDFromContext(ctx context.Context) string {
	if ctx != nil {
		if id, ok := ctx.Value(CorrelationIDKey).(string); ok && id != "" {
			return id
		}
	}
	return NewCorrelationID()
}

func NewCorrelationID() string {
	return uuid.New().String()
}

// FromContext returns the request-scoped logger injected by the router middleware,
// falling back to the given logger (or a fresh one) tagged with the correlation ID.
func FromContext(ctx context.Context, fallback *Logger) *Logger {
	if ctx != nil {
		if l, ok := ctx.Value(LoggerContextKey).(*Logger); ok {
			return l
		}
	}

	if fallback == nil {
		fallback = NewJSONLogger()
	}
	if ctx == nil {
		return fallback
	}
	return fallback.WithCorrelationID(ctx)
}
