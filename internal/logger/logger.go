// Package logger holds the process-wide structured logger. Everything logs
// through L so output stays one JSON stream regardless of which package emits.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

var level = new(slog.LevelVar)

// L is the shared logger. Its level is adjustable at runtime via SetLevel,
// which is how the configured log.level takes effect at startup.
var L = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

// SetLevel applies a level by name. Unrecognized names fall back to info.
func SetLevel(name string) {
	level.Set(parseLevel(name))
}

func parseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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
