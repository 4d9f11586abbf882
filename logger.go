package attrcodec

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with codec-specific context.
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

// WithDirectory adds the segment directory to every record.
func (l *Logger) WithDirectory(dir string) *Logger {
	return &Logger{
		Logger: l.Logger.With("directory", dir),
	}
}

// WithField adds a field name to every record.
func (l *Logger) WithField(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("field", name),
	}
}

// LogReadAll logs a ReadAll operation.
func (l *Logger) LogReadAll(ctx context.Context, attrs, rowIDs int, nbytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "read attributes failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "read attributes completed",
			"attributes", attrs,
			"row_ids", rowIDs,
			"bytes", nbytes,
		)
	}
}

// LogWriteAll logs a WriteAll operation.
func (l *Logger) LogWriteAll(ctx context.Context, attrs int, nbytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "write attributes failed",
			"attributes_written", attrs,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "write attributes completed",
			"attributes", attrs,
			"bytes", nbytes,
		)
	}
}

// LogReadRowIDs logs a ReadRowIDs operation.
func (l *Logger) LogReadRowIDs(ctx context.Context, files, rowIDs int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "read row ids failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "read row ids completed",
			"files", files,
			"row_ids", rowIDs,
		)
	}
}

// LogReadRange logs a ReadRange operation.
func (l *Logger) LogReadRange(ctx context.Context, offset, count int64, n int, total uint64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "read range failed",
			"offset", offset,
			"count", count,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "read range completed",
			"offset", offset,
			"count", count,
			"read", n,
			"total", total,
		)
	}
}
