// Package bootstrap wires process-level infrastructure.
package bootstrap

import (
	"log/slog"
	"os"
)

// NewLogger creates a new slog.Logger instance with the specified log level.
// Logs go to stderr; stdout is reserved for operator-facing output.
func NewLogger(level string) *slog.Logger {
	logLevel := toLevel(level)
	loggerOpts := &slog.HandlerOptions{
		AddSource: logLevel == slog.LevelDebug,
		Level:     logLevel,
	}
	logHandler := slog.NewTextHandler(os.Stderr, loggerOpts)
	return slog.New(logHandler)
}

// toLevel converts a string representation of a log level to slog.Level.
func toLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
