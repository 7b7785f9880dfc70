package dataprovider

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with store-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithStore adds the store name to every record.
func (l *Logger) WithStore(name string) *Logger {
	if name == "" {
		return l
	}
	return &Logger{
		Logger: l.Logger.With("store", name),
	}
}

// LogCount logs a count evaluation.
func (l *Logger) LogCount(ctx context.Context, signature string, matched int, cached bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "count failed",
			"filter", signature,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "count completed",
		"filter", signature,
		"matched", matched,
		"cached", cached,
	)
}

// LogFetch logs a fetch operation.
func (l *Logger) LogFetch(ctx context.Context, signature string, returned int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "fetch failed",
			"filter", signature,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "fetch completed",
		"filter", signature,
		"returned", returned,
	)
}

// LogReplace logs a bulk replacement of the record collection.
func (l *Logger) LogReplace(ctx context.Context, count int) {
	l.InfoContext(ctx, "records replaced",
		"count", count,
	)
}

// LogFilterChange logs the notification of filter listeners.
func (l *Logger) LogFilterChange(ctx context.Context, signature string, listeners int) {
	l.DebugContext(ctx, "filter changed",
		"filter", signature,
		"listeners", listeners,
	)
}
