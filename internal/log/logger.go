// Package log owns the process-wide structured logger. Components receive
// child loggers from the composition root rather than importing this
// package themselves.
package log

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	once   sync.Once
	logger *slog.Logger
)

// Setup initializes the global logger with JSON output on stdout. The
// first call wins; later calls are no-ops so tests and tools cannot
// reconfigure a running process.
func Setup(level string) {
	once.Do(func() {
		handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: parseLevel(level),
		})
		logger = slog.New(handler)
		slog.SetDefault(logger)
	})
}

// parseLevel maps a config log_level value to a slog level. Unknown
// values fall back to info, matching the config default.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// Get returns the configured logger, initializing at info level if Setup
// has not run.
func Get() *slog.Logger {
	if logger == nil {
		Setup("info")
	}
	return logger
}

// WithComponent returns a child logger tagged with a component field, one
// per wired subsystem (api, intake).
func WithComponent(name string) *slog.Logger {
	return Get().With(slog.String("component", name))
}
