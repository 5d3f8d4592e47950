// Package logging configures structured logging for the whole process.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup installs the global slog default. Level is one of debug, info, warn,
// error (case-insensitive, defaults to info); format is "text" or "json".
// If w is nil, os.Stderr is used.
func Setup(level, format string, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// Component returns a logger tagged with a component attribute.
func Component(name string) *slog.Logger {
	return slog.Default().With(slog.String("component", name))
}
