package cli

import (
	"io"
	"log/slog"

	"github.com/craftfile-labs/craftfile/internal/config"
)

// newLogger builds a slog.Logger from the configured level and format. It
// does not touch the global default logger.
func newLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch config.Get(config.KeyLogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if config.Get(config.KeyLogFormat) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
