// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// LogContextKey is a type for context keys used by the logging package.
type LogContextKey string

// RequestID is the context key carrying the request correlation ID.
const RequestID LogContextKey = "request_id"

// WithRequestID returns a new context with the given request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestID, id)
}

// ExtractRequestID retrieves the request ID from the context.
func ExtractRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestID).(string); ok {
		return id
	}
	return ""
}

// RepoLogger provides structured logging for repository operations.
type RepoLogger struct {
	tableName string
	logger    *Logger
}

// NewRepoLogger creates a new RepoLogger for the given table.
func NewRepoLogger(tableName string) *RepoLogger {
	return &RepoLogger{tableName: tableName, logger: GlobalLogger}
}

// LogError logs a repository error.
func (l *RepoLogger) LogError(ctx context.Context, err error, operation string) {
	l.logger.ErrorContext(ctx, "repository error",
		slog.String("table", l.tableName),
		slog.String("operation", operation),
		slog.String("request_id", ExtractRequestID(ctx)),
		slog.String("error", err.Error()),
	)
}

// LogWrite logs a repository mutation.
func (l *RepoLogger) LogWrite(ctx context.Context, operation string, id uint) {
	l.logger.InfoContext(ctx, "repository write",
		slog.String("table", l.tableName),
		slog.String("operation", operation),
		slog.Uint64("id", uint64(id)),
		slog.String("request_id", ExtractRequestID(ctx)),
	)
}
