package kmeansviz

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with kmeansviz-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// WithIteration adds an iteration field to the logger.
func (l *Logger) WithIteration(iteration int) *Logger {
	return &Logger{
		Logger: l.Logger.With("iteration", iteration),
	}
}

// LogReset logs the start of a new run.
func (l *Logger) LogReset(k, n int) {
	l.Info("run reset",
		"k", k,
		"points", n,
	)
}

// LogAssign logs an assigning step.
func (l *Logger) LogAssign(point, cluster int, seed bool) {
	l.Debug("point assigned",
		"point", point,
		"cluster", cluster,
		"seed", seed,
	)
}

// LogUpdate logs an updating step.
func (l *Logger) LogUpdate(iteration int, maxShift float64, emptyClusters int) {
	if emptyClusters > 0 {
		l.Debug("centroids updated with empty clusters",
			"iteration", iteration,
			"max_shift", maxShift,
			"empty_clusters", emptyClusters,
		)
	} else {
		l.Debug("centroids updated",
			"iteration", iteration,
			"max_shift", maxShift,
		)
	}
}

// LogConverged logs convergence of a run.
func (l *Logger) LogConverged(iteration int) {
	l.Info("run converged",
		"iteration", iteration,
	)
}

// LogRun logs the outcome of a run-to-convergence call.
func (l *Logger) LogRun(ctx context.Context, iteration int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "run failed",
			"iteration", iteration,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "run completed",
			"iteration", iteration,
		)
	}
}
