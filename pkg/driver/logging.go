package driver

import (
	"io"
	"log/slog"
	"strings"
)

func parseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning", "":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelWarn, false
	}
}

// NewLogger returns a text logger writing to w at the configured level. A nil
// writer discards everything.
func NewLogger(w io.Writer, level string) *slog.Logger {
	if w == nil {
		w = io.Discard
	}
	lvl, _ := parseLevel(level)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
