// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry persists the mapping from source path to last-observed
// fingerprint and decides which files need (re)processing.
// Implements: prd003-registry R2-R4;
//
//	docs/ARCHITECTURE § Change Detection.
package registry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pdiddy/any2md/internal/logging"
	"github.com/pdiddy/any2md/pkg/types"
)

// FileName is the well-known registry file name inside the processed
// directory. The format is a JSON object keyed by absolute source path;
// it must stay re-loadable by the exact shape it was saved in.
const FileName = "file_registry.json"

// Store loads and persists the registry file.
type Store struct {
	logger *slog.Logger
}

// NewStore returns a Store reporting through logger. A nil logger
// discards diagnostics.
func NewStore(logger *slog.Logger) *Store {
	return &Store{logger: logging.NewComponentLogger(logger, "registry")}
}

// Load reads the registry from dir. A missing or malformed file yields an
// empty registry, treated as "nothing previously processed": both
// conditions are logged, never returned as errors.
func (s *Store) Load(dir string) types.Registry {
	path := filepath.Join(dir, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("no registry file, starting empty", "path", path)
		} else {
			s.logger.Warn("registry unreadable, starting empty", "path", path, "error", err)
		}
		return types.Registry{}
	}

	var reg types.Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		s.logger.Warn("registry malformed, starting empty", "path", path, "error", err)
		return types.Registry{}
	}
	if reg == nil {
		reg = types.Registry{}
	}

	s.logger.Debug("registry loaded", "path", path, "entries", len(reg))
	return reg
}

// Save persists the registry to dir, creating it if absent. The write is
// atomic from a reader's perspective: the serialized form goes to a temp
// file in the same directory and is renamed over the previous registry.
func (s *Store) Save(dir string, reg types.Registry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating registry directory: %w", err)
	}

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling registry: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".registry-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing registry: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, filepath.Join(dir, FileName)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	s.logger.Debug("registry saved", "path", filepath.Join(dir, FileName), "entries", len(reg))
	return nil
}
