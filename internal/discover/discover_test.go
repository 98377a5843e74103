// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pdiddy/any2md/pkg/types"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want types.Category
	}{
		{"notes.txt", types.CategoryText},
		{"readme.md", types.CategoryText},
		{"doc.markdown", types.CategoryText},
		{"REPORT.MD", types.CategoryText},
		{"slides.ppt", types.CategoryOffice},
		{"slides.pptx", types.CategoryOffice},
		{"letter.doc", types.CategoryOffice},
		{"Letter.DocX", types.CategoryOffice},
		{"paper.pdf", types.CategoryPDF},
		{"paper.PDF", types.CategoryPDF},
		{"image.png", types.CategoryUnsupported},
		{"archive.tar.gz", types.CategoryUnsupported},
		{"noextension", types.CategoryUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Classify(tt.path); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestDiscoverMissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), nil)
	if !errors.Is(err, ErrDirNotFound) {
		t.Fatalf("err = %v, want ErrDirNotFound", err)
	}
}

func TestDiscoverNotADirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "plain.md")

	_, err := Discover(filepath.Join(dir, "plain.md"), nil)
	if !errors.Is(err, ErrDirNotFound) {
		t.Fatalf("err = %v, want ErrDirNotFound", err)
	}
}

func TestDiscoverEmptyDir(t *testing.T) {
	files, err := Discover(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Errorf("got %d files, want 0", len(files))
	}
}

func TestDiscoverNestedTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md")
	writeFile(t, root, "b.txt")
	writeFile(t, root, filepath.Join("sub", "dir", "c.md"))
	writeFile(t, root, filepath.Join("sub", "slides.pptx"))
	writeFile(t, root, "paper.pdf")
	writeFile(t, root, "image.png") // unsupported, dropped with a warning

	files, err := Discover(root, nil)
	if err != nil {
		t.Fatal(err)
	}

	want := []struct {
		rel string
		cat types.Category
	}{
		{"a.md", types.CategoryText},
		{"b.txt", types.CategoryText},
		{"paper.pdf", types.CategoryPDF},
		{filepath.Join("sub", "dir", "c.md"), types.CategoryText},
		{filepath.Join("sub", "slides.pptx"), types.CategoryOffice},
	}
	if len(files) != len(want) {
		t.Fatalf("got %d files, want %d: %+v", len(files), len(want), files)
	}

	for i, f := range files {
		if f.RelPath != want[i].rel {
			t.Errorf("files[%d].RelPath = %q, want %q", i, f.RelPath, want[i].rel)
		}
		if f.Category != want[i].cat {
			t.Errorf("files[%d].Category = %q, want %q", i, f.Category, want[i].cat)
		}
		if !filepath.IsAbs(f.Path) {
			t.Errorf("files[%d].Path = %q, want absolute", i, f.Path)
		}
	}
}

func TestDiscoverOrderDeterministic(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"z.md", "a.md", filepath.Join("m", "x.txt"), "b.pdf"} {
		writeFile(t, root, rel)
	}

	first, err := Discover(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Discover(root, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("discovery order not deterministic:\n%+v\n%+v", first, second)
	}
}
