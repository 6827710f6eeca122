// Package diaglog reports run diagnostics and debug logs on the error stream.
package diaglog

import (
	"io"
	"log/slog"
)

// NewLogger returns a text logger writing to w. Debug records are kept only when
// verbose is set.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
