package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger. Text output keeps local logs readable; the
// deployment wraps stdout with its own JSON shipper.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
