package semvec

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with store-specific helpers so every operation
// logs consistent field names.
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
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogSave logs a save operation.
func (l *Logger) LogSave(ctx context.Context, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"count", count,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "save completed",
			"count", count,
		)
	}
}

// LogFetch logs a fetch operation.
func (l *Logger) LogFetch(ctx context.Context, semantic bool, results int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "fetch failed",
			"semantic", semantic,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "fetch completed",
			"semantic", semantic,
			"results", results,
		)
	}
}

// LogDelete logs a delete operation.
func (l *Logger) LogDelete(ctx context.Context, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "delete failed",
			"count", count,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "delete completed",
			"count", count,
		)
	}
}

// LogTransaction logs an applied transaction.
func (l *Logger) LogTransaction(ctx context.Context, deletes, updates, inserts int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "transaction failed",
			"deletes", deletes,
			"updates", updates,
			"inserts", inserts,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "transaction committed",
			"deletes", deletes,
			"updates", updates,
			"inserts", inserts,
		)
	}
}
