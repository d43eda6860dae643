package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var logger *slog.Logger

func init() {
	// Default to INFO level, human-readable output
	Init("info", "text")
}

// Init installs the global logger. Level is one of debug, info, warn or
// error; format is "text" or "json". Unknown values fall back to info/text.
func Init(level, format string) {
	logger = slog.New(newHandler(os.Stderr, level, format))
	slog.SetDefault(logger)
}

// InitLogger keeps the older single-argument form working.
func InitLogger(level string) {
	Init(level, "text")
}

func newHandler(w io.Writer, level, format string) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetLogger returns the global logger instance
func GetLogger() *slog.Logger {
	return logger
}
