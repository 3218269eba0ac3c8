package deepdist

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with deepdist-specific context.
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

// WithCutoff adds the session cutoff to the logger.
func (l *Logger) WithCutoff(cutoff float64) *Logger {
	return &Logger{
		Logger: l.Logger.With("cutoff", cutoff),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogRoughDistance logs the outcome of a rough distance computation.
func (l *Logger) LogRoughDistance(ctx context.Context, dist float64, reportSize int, err error) {
	if err != nil {
		l.WarnContext(ctx, "rough distance failed",
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "rough distance computed",
		"distance", dist,
		"report_size", reportSize,
	)
}

// LogPrecompute logs a pairwise precomputation.
func (l *Logger) LogPrecompute(ctx context.Context, method string, pairs, declined int) {
	l.DebugContext(ctx, "pair distances precomputed",
		"method", method,
		"pairs", pairs,
		"declined", declined,
	)
}

// LogPrecomputeSkipped logs why a precomputation produced no table.
func (l *Logger) LogPrecomputeSkipped(ctx context.Context, method, reason string) {
	l.DebugContext(ctx, "pair precomputation skipped",
		"method", method,
		"reason", reason,
	)
}
