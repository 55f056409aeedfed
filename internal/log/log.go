// Package log builds the slog loggers used by the htmlwash service and CLI.
//
// Loggers are created once at startup and passed explicitly to the
// components that need them; the washing pipeline itself never logs.
package log

import (
	"io"
	"log/slog"
)

// New creates a text logger writing to w. Records below Warn are dropped
// unless verbose is set, which lowers the level to Debug.
func New(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, handlerOptions(verbose)))
}

// NewJSON creates a JSON logger writing to w, for log aggregation.
func NewJSON(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, handlerOptions(verbose)))
}

// NewFromFlags picks New or NewJSON.
func NewFromFlags(w io.Writer, verbose, json bool) *slog.Logger {
	if json {
		return NewJSON(w, verbose)
	}
	return New(w, verbose)
}

// Discard returns a logger that drops every record. Useful in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
