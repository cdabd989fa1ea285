package main

import (
	"log/slog"
	"os"
)

// NewLogger returns a JSON slog.Logger on stdout with the given level. Source
// positions are added at debug level.
func NewLogger(level slog.Leveler) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: level.Level() <= slog.LevelDebug,
	})
	return slog.New(h)
}
