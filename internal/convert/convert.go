// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert routes discovered files to a conversion strategy and
// normalizes the resulting Markdown. Text content passes through
// verbatim; office and PDF content is delegated to a pluggable Converter
// backend addressed by file URI.
// Implements: prd002-conversion R1-R5;
//
//	docs/ARCHITECTURE § Conversion.
package convert

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pdiddy/any2md/internal/container"
	"github.com/pdiddy/any2md/internal/logging"
	"github.com/pdiddy/any2md/pkg/types"
)

// Converter transforms a document, addressed by a file URI, into Markdown
// text. Backends: container-piped markitdown and the markitdown binary.
type Converter interface {
	// Convert reads the document at uri and returns the Markdown content.
	Convert(uri string) (string, error)
}

// NewConverter builds the office/PDF converter for the configured
// backend. BackendAuto detects a container runtime, docker first.
func NewConverter(cfg types.ConverterConfig) (Converter, error) {
	switch cfg.Backend {
	case types.BackendMarkitdown:
		return NewExecConverter()
	case types.BackendDocker:
		rt := container.Docker()
		if !rt.Available() {
			return nil, fmt.Errorf("docker runtime not available")
		}
		return NewContainerConverter(rt, cfg.Image)
	case types.BackendPodman:
		rt := container.Podman()
		if !rt.Available() {
			return nil, fmt.Errorf("podman runtime not available")
		}
		return NewContainerConverter(rt, cfg.Image)
	case types.BackendAuto, "":
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		return NewContainerConverter(rt, cfg.Image)
	default:
		return nil, fmt.Errorf("unknown converter backend %q", cfg.Backend)
	}
}

// Dispatcher converts one file at a time based on the category resolved
// at discovery. A nil Converter is allowed: text files still convert, and
// delegated categories fail per file.
type Dispatcher struct {
	converter Converter
	logger    *slog.Logger
}

// NewDispatcher returns a Dispatcher delegating office/PDF content to
// converter. A nil logger discards diagnostics.
func NewDispatcher(converter Converter, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		converter: converter,
		logger:    logging.NewComponentLogger(logger, "convert"),
	}
}

// Dispatch converts one file to Markdown text. Each call is atomic: whole
// file in, whole text out. An unsupported category yields an empty result
// and a warning, not an error; an empty result means "nothing to do" and
// is never written by the caller.
func (d *Dispatcher) Dispatch(file types.SourceFile) (string, error) {
	switch file.Category {
	case types.CategoryText:
		data, err := os.ReadFile(file.Path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", file.Path, err)
		}
		return stripNUL(string(data)), nil

	case types.CategoryOffice, types.CategoryPDF:
		if d.converter == nil {
			return "", fmt.Errorf("no converter available for %s", file.Path)
		}
		out, err := d.converter.Convert(FileURI(file.Path))
		if err != nil {
			return "", fmt.Errorf("converting %s: %w", file.Path, err)
		}
		return stripNUL(out), nil

	default:
		d.logger.Warn("unsupported category, nothing to do",
			"path", file.Path, "category", string(file.Category))
		return "", nil
	}
}

// stripNUL removes embedded NUL bytes. Binary junk behind a text
// extension otherwise leaks into artifacts and downstream indexers.
func stripNUL(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

// Frontmatter prepends YAML frontmatter describing the source to body.
func Frontmatter(file types.SourceFile, body string) string {
	ts := time.Now().UTC().Format(time.RFC3339)
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "source: %q\n", file.Path)
	fmt.Fprintf(&b, "category: %q\n", string(file.Category))
	fmt.Fprintf(&b, "converted_at: %q\n", ts)
	b.WriteString("---\n\n")
	b.WriteString(body)
	return b.String()
}
