// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover enumerates conversion candidates under a source tree.
// Each candidate's category is resolved exactly once here and carried
// through the rest of the pipeline, so later stages dispatch on the tag
// instead of re-inspecting extensions.
// Implements: prd001-discovery R1-R3;
//
//	docs/ARCHITECTURE § Discovery.
package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/any2md/internal/logging"
	"github.com/pdiddy/any2md/pkg/types"
)

// ErrDirNotFound reports a missing or invalid source directory. This is
// the one fatal, run-aborting condition in a batch run.
var ErrDirNotFound = errors.New("source directory not found")

// Classify maps a path's extension to its conversion category,
// case-insensitively.
func Classify(path string) types.Category {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".markdown":
		return types.CategoryText
	case ".ppt", ".pptx", ".doc", ".docx":
		return types.CategoryOffice
	case ".pdf":
		return types.CategoryPDF
	default:
		return types.CategoryUnsupported
	}
}

// Discover walks sourceDir recursively and returns every supported file
// as a SourceFile, in lexical walk order so repeated runs over the same
// tree log identically. Unsupported extensions are logged at Warn and
// dropped; they never become candidates. Returns ErrDirNotFound when
// sourceDir is missing or not a directory.
func Discover(sourceDir string, logger *slog.Logger) ([]types.SourceFile, error) {
	log := logging.NewComponentLogger(logger, "discover")

	info, err := os.Stat(sourceDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDirNotFound, sourceDir)
	}

	root, err := filepath.Abs(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", sourceDir, err)
	}

	var files []types.SourceFile
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees degrade to a warning; the run goes on
			// with what is reachable.
			log.Warn("walk error, skipping", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}

		category := Classify(path)
		if category == types.CategoryUnsupported {
			log.Warn("unsupported file type, skipping", "path", path)
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		files = append(files, types.SourceFile{
			Path:     path,
			RelPath:  rel,
			Category: category,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	log.Info("discovery complete", "root", root, "files", len(files))
	return files, nil
}
