// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Category classifies a source file into a conversion strategy. It is
// resolved once during discovery and carried with the file through the
// pipeline, so later stages never re-inspect the extension.
// Per prd001-discovery R2.1-R2.4.
type Category string

const (
	// CategoryText covers plain text and Markdown; content passes through
	// verbatim apart from NUL sanitization.
	CategoryText Category = "text"

	// CategoryOffice covers presentation and word-processor formats,
	// delegated to the external converter.
	CategoryOffice Category = "office"

	// CategoryPDF covers PDF documents, delegated to the external converter.
	CategoryPDF Category = "pdf"

	// CategoryUnsupported marks extensions outside the supported sets.
	// Discovery warns and drops these before the diff phase.
	CategoryUnsupported Category = "unsupported"
)

// FileFingerprint records the observable identity of a file's content and
// metadata at a point in time. A new fingerprint replaces the old one;
// fingerprints are never mutated in place. Per prd003-registry R1.1-R1.3.
type FileFingerprint struct {
	// Hash is the SHA-256 hex digest of the file content, or a
	// "timestamp-<seconds>" fallback when the content could not be read.
	Hash string `json:"hash" yaml:"hash"`

	// MTime is the file modification time in seconds since the Unix
	// epoch, including the fractional part.
	MTime float64 `json:"mtime" yaml:"mtime"`

	// Size is the file size in bytes.
	Size int64 `json:"size" yaml:"size"`

	// Path is the absolute source path, duplicated from the registry key
	// so each entry is self-describing.
	Path string `json:"path" yaml:"path"`
}

// Registry maps absolute source paths to their most recent fingerprints.
// It is loaded once per run, mutated in memory by the orchestrator alone,
// and persisted once at the end of the run, replacing the prior state in
// full. Per prd003-registry R2.1-R2.3.
type Registry map[string]FileFingerprint

// SourceFile is a discovered conversion candidate with its category
// resolved. Per prd001-discovery R3.1.
type SourceFile struct {
	// Path is the absolute path to the source file.
	Path string `json:"path" yaml:"path"`

	// RelPath is the path relative to the source root, used to derive the
	// flattened artifact name.
	RelPath string `json:"rel_path" yaml:"rel_path"`

	// Category selects the conversion strategy.
	Category Category `json:"category" yaml:"category"`
}
