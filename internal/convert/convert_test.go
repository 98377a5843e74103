// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/any2md/pkg/types"
)

// fakeConverter implements Converter for testing. It records the URI it
// received and returns canned Markdown or an error.
type fakeConverter struct {
	output  string
	err     error
	lastURI string
}

func (f *fakeConverter) Convert(uri string) (string, error) {
	f.lastURI = uri
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

func writeSource(t *testing.T, dir, name, content string) types.SourceFile {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return types.SourceFile{Path: path, RelPath: name, Category: types.CategoryText}
}

func TestDispatchTextPassthrough(t *testing.T) {
	file := writeSource(t, t.TempDir(), "a.md", "# Heading\n\nbody text\n")

	got, err := NewDispatcher(nil, nil).Dispatch(file)
	if err != nil {
		t.Fatal(err)
	}
	if got != "# Heading\n\nbody text\n" {
		t.Errorf("content = %q, want passthrough", got)
	}
}

func TestDispatchTextStripsNUL(t *testing.T) {
	file := writeSource(t, t.TempDir(), "dirty.txt", "hel\x00lo\x00")

	got, err := NewDispatcher(nil, nil).Dispatch(file)
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello" {
		t.Errorf("content = %q, want %q", got, "hello")
	}
}

func TestDispatchTextReadFailure(t *testing.T) {
	file := types.SourceFile{
		Path:     filepath.Join(t.TempDir(), "gone.md"),
		RelPath:  "gone.md",
		Category: types.CategoryText,
	}

	if _, err := NewDispatcher(nil, nil).Dispatch(file); err == nil {
		t.Fatal("expected error for unreadable text file")
	}
}

func TestDispatchDelegatesByURI(t *testing.T) {
	for _, category := range []types.Category{types.CategoryOffice, types.CategoryPDF} {
		t.Run(string(category), func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "doc.bin")
			if err := os.WriteFile(path, []byte("binary"), 0o644); err != nil {
				t.Fatal(err)
			}
			file := types.SourceFile{Path: path, RelPath: "doc.bin", Category: category}

			conv := &fakeConverter{output: "# Converted"}
			got, err := NewDispatcher(conv, nil).Dispatch(file)
			if err != nil {
				t.Fatal(err)
			}
			if got != "# Converted" {
				t.Errorf("content = %q", got)
			}
			if conv.lastURI != FileURI(path) {
				t.Errorf("converter received %q, want %q", conv.lastURI, FileURI(path))
			}
		})
	}
}

func TestDispatchStripsNULFromConverterOutput(t *testing.T) {
	file := types.SourceFile{Path: "/src/p.pdf", RelPath: "p.pdf", Category: types.CategoryPDF}
	conv := &fakeConverter{output: "out\x00put"}

	got, err := NewDispatcher(conv, nil).Dispatch(file)
	if err != nil {
		t.Fatal(err)
	}
	if got != "output" {
		t.Errorf("content = %q, want %q", got, "output")
	}
}

func TestDispatchConverterFailure(t *testing.T) {
	file := types.SourceFile{Path: "/src/p.pdf", RelPath: "p.pdf", Category: types.CategoryPDF}
	conv := &fakeConverter{err: errors.New("container crashed")}

	_, err := NewDispatcher(conv, nil).Dispatch(file)
	if err == nil {
		t.Fatal("expected converter error to propagate")
	}
	if !strings.Contains(err.Error(), "container crashed") {
		t.Errorf("error = %v, want wrapped cause", err)
	}
}

func TestDispatchWithoutConverter(t *testing.T) {
	file := types.SourceFile{Path: "/src/p.pdf", RelPath: "p.pdf", Category: types.CategoryPDF}

	if _, err := NewDispatcher(nil, nil).Dispatch(file); err == nil {
		t.Fatal("expected error when no converter is configured")
	}
}

func TestDispatchUnsupportedIsEmptyNotError(t *testing.T) {
	file := types.SourceFile{Path: "/src/x.png", RelPath: "x.png", Category: types.CategoryUnsupported}

	got, err := NewDispatcher(nil, nil).Dispatch(file)
	if err != nil {
		t.Fatalf("unsupported category should not error: %v", err)
	}
	if got != "" {
		t.Errorf("content = %q, want empty", got)
	}
}

func TestNewConverterUnknownBackend(t *testing.T) {
	_, err := NewConverter(types.ConverterConfig{Backend: "pandoc"})
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if !strings.Contains(err.Error(), "pandoc") {
		t.Errorf("error = %v, should name the backend", err)
	}
}

func TestFrontmatter(t *testing.T) {
	file := types.SourceFile{Path: "/src/a.md", RelPath: "a.md", Category: types.CategoryText}

	got := Frontmatter(file, "# Body\n")

	if !strings.HasPrefix(got, "---\n") {
		t.Error("output should start with a frontmatter delimiter")
	}
	if !strings.Contains(got, `source: "/src/a.md"`) {
		t.Errorf("frontmatter missing source: %s", got)
	}
	if !strings.Contains(got, `category: "text"`) {
		t.Errorf("frontmatter missing category: %s", got)
	}
	if !strings.Contains(got, "converted_at:") {
		t.Errorf("frontmatter missing converted_at: %s", got)
	}
	if !strings.HasSuffix(got, "---\n\n# Body\n") {
		t.Errorf("body not preserved after frontmatter: %s", got)
	}
}

func TestFileURIRoundTrip(t *testing.T) {
	paths := []string{
		"/src/plain.md",
		"/src/with space/doc.pdf",
		"/src/Ünïcode/ß.docx",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			uri := FileURI(path)
			if !strings.HasPrefix(uri, "file://") {
				t.Errorf("uri = %q, want file scheme", uri)
			}
			back, err := PathFromFileURI(uri)
			if err != nil {
				t.Fatal(err)
			}
			if back != path {
				t.Errorf("round trip = %q, want %q", back, path)
			}
		})
	}
}

func TestPathFromFileURIRejectsOtherSchemes(t *testing.T) {
	if _, err := PathFromFileURI("https://example.com/doc.pdf"); err == nil {
		t.Fatal("expected error for non-file scheme")
	}
}
