package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
)

// New creates a configured application logger.
// It writes to Stderr (to keep Stdout free for trajectory output) using the
// charm handler for readable console records. charm log levels share slog's
// numeric values, so the slog level converts directly.
func New(level slog.Level) *slog.Logger {
	handler := log.NewWithOptions(os.Stderr, log.Options{
		Level:           log.Level(level),
		ReportTimestamp: false,
		Prefix:          "synd",
	})
	return slog.New(handler)
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
