// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConverterBackend identifies the office/PDF conversion strategy.
// Per prd002-conversion R5.1.
type ConverterBackend string

const (
	// BackendAuto detects a container runtime, trying docker then podman.
	BackendAuto ConverterBackend = "auto"

	// BackendDocker forces the docker container runtime.
	BackendDocker ConverterBackend = "docker"

	// BackendPodman forces the podman container runtime.
	BackendPodman ConverterBackend = "podman"

	// BackendMarkitdown runs a markitdown binary found on PATH instead of
	// a container.
	BackendMarkitdown ConverterBackend = "markitdown"
)

// LogConfig holds logging sink settings. The core packages receive a
// constructed logger and never read these directly.
type LogConfig struct {
	// Level is the minimum level: debug, info, warn, or error.
	Level string `json:"level" yaml:"level"`

	// Format selects the handler: text, json, or auto (text on a TTY,
	// json otherwise).
	Format string `json:"format" yaml:"format"`

	// File is an optional log file written alongside stderr. Empty
	// disables file logging.
	File string `json:"file" yaml:"file"`
}

// ConverterConfig holds settings for the office/PDF converter.
// Per prd002-conversion R5.1-R5.3.
type ConverterConfig struct {
	// Backend selects the conversion strategy: auto, docker, podman, or
	// markitdown.
	Backend ConverterBackend `json:"backend" yaml:"backend"`

	// Image is the container image files are piped through when a
	// container backend is active.
	Image string `json:"image" yaml:"image"`
}

// CatalogConfig holds settings for the artifact catalog.
// Per prd004-catalog R1.2, R2.3.
type CatalogConfig struct {
	// MaxResults is the default maximum number of search results
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Config groups all settings for a conversion run.
type Config struct {
	// SourceDir is the directory scanned for convertible documents.
	SourceDir string `json:"source_dir" yaml:"source_dir"`

	// ProcessedDir receives converted Markdown artifacts, the file
	// registry, and the catalog database.
	ProcessedDir string `json:"processed_dir" yaml:"processed_dir"`

	// Incremental skips files whose fingerprint matches the registry.
	Incremental bool `json:"incremental" yaml:"incremental"`

	// Workers bounds the number of concurrent conversion workers
	// (default 4, minimum 1).
	Workers int `json:"workers" yaml:"workers"`

	// Frontmatter prepends YAML frontmatter (source, category,
	// converted_at) to each artifact.
	Frontmatter bool `json:"frontmatter" yaml:"frontmatter"`

	Log       LogConfig       `json:"log" yaml:"log"`
	Converter ConverterConfig `json:"converter" yaml:"converter"`
	Catalog   CatalogConfig   `json:"catalog" yaml:"catalog"`
}
