// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging constructs the process-wide slog logger. Sinks are
// configured once here; every other package receives a *slog.Logger at
// construction time and never touches handler setup.
// Implements: prd005-pipeline R6.1-R6.4.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
)

// FieldComponent is the standardized attribute key identifying the
// emitting component.
const FieldComponent = "component"

// FieldRunID is the standardized attribute key carrying the batch run
// correlation ID.
const FieldRunID = "run_id"

// Options describes logger construction parameters.
type Options struct {
	// Level is the minimum level: debug, info, warn, or error.
	Level string

	// Format selects the handler: "text", "json", or "auto" (text when
	// stderr is a terminal, json otherwise).
	Format string

	// File is an optional log file appended in addition to stderr.
	File string
}

// New constructs a slog logger writing to stderr and, when opts.File is
// set, to the log file as well.
func New(opts Options) (*slog.Logger, error) {
	w, err := openWriter(opts.File)
	if err != nil {
		return nil, err
	}

	handlerOpts := &slog.HandlerOptions{Level: parseLevel(opts.Level)}

	var handler slog.Handler
	switch resolveFormat(opts.Format) {
	case "json":
		handlerOpts.ReplaceAttr = jsonAttrs
		handler = slog.NewJSONHandler(w, handlerOpts)
	case "text":
		handler = slog.NewTextHandler(w, handlerOpts)
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	return slog.New(handler), nil
}

// NewNop returns a logger that discards everything. Used as the default
// for components constructed without a logger, and in tests.
func NewNop() *slog.Logger {
	return slog.New(nopHandler{})
}

// NewComponentLogger returns logger tagged with a component attribute.
// A nil logger yields a no-op base.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(slog.String(FieldComponent, component))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// resolveFormat maps "auto" (or empty) to a concrete handler name based on
// whether stderr is a terminal.
func resolveFormat(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	if f != "" && f != "auto" {
		return f
	}
	fd := os.Stderr.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return "text"
	}
	return "json"
}

func openWriter(file string) (io.Writer, error) {
	if strings.TrimSpace(file) == "" {
		return os.Stderr, nil
	}
	if dir := filepath.Dir(file); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", file, err)
	}
	return io.MultiWriter(os.Stderr, f), nil
}

// jsonAttrs normalizes JSON record keys to ts/level/msg with RFC3339 UTC
// timestamps and lowercase levels.
func jsonAttrs(groups []string, attr slog.Attr) slog.Attr {
	switch attr.Key {
	case slog.TimeKey:
		attr.Key = "ts"
		if attr.Value.Kind() == slog.KindTime {
			attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
		}
	case slog.LevelKey:
		attr.Key = "level"
		attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
	case slog.MessageKey:
		attr.Key = "msg"
	}
	return attr
}

// nopHandler discards all log output.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }
