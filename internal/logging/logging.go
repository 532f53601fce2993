package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New initializes a new slog logger writing to stderr and sets it as the
// default. format is "text" (default) or "json"; level is debug, info
// (default), warn or error. Empty values fall back to the LOG_FORMAT and
// LOG_LEVEL environment variables.
func New(format, level string) *slog.Logger {
	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	logger := NewWithWriter(os.Stderr, format, level)
	slog.SetDefault(logger)
	return logger
}

// NewWithWriter builds a logger for the given format and level names without
// touching the process default.
func NewWithWriter(w io.Writer, format, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
