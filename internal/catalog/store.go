// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog indexes converted Markdown artifacts for full-text
// retrieval.
// Implements: prd004-catalog (R1-R4);
//
//	docs/ARCHITECTURE § Catalog.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/any2md/pkg/types"
)

const dbFile = "catalog.db"

// Store manages the artifact catalog SQLite database.
type Store struct {
	db           *sql.DB
	processedDir string
	maxResults   int
}

// NewStore opens or creates the catalog database at
// processedDir/catalog.db. It creates the schema if it does not exist.
func NewStore(processedDir string, cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(processedDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating processed directory: %w", err)
	}

	dbPath := filepath.Join(processedDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:           db,
		processedDir: processedDir,
		maxResults:   maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	if _, err := s.db.Exec(
		`CREATE TABLE IF NOT EXISTS documents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			artifact TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			indexed_at TEXT NOT NULL,
			file_mod_time TEXT NOT NULL
		)`,
	); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='documents_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE documents_fts USING fts5(title, content, content=documents, content_rowid=id)`,
			`CREATE TRIGGER documents_ai AFTER INSERT ON documents BEGIN
				INSERT INTO documents_fts(rowid, title, content) VALUES (new.id, new.title, new.content);
			END`,
			`CREATE TRIGGER documents_ad AFTER DELETE ON documents BEGIN
				INSERT INTO documents_fts(documents_fts, rowid, title, content) VALUES('delete', old.id, old.title, old.content);
			END`,
			`CREATE TRIGGER documents_au AFTER UPDATE ON documents BEGIN
				INSERT INTO documents_fts(documents_fts, rowid, title, content) VALUES('delete', old.id, old.title, old.content);
				INSERT INTO documents_fts(rowid, title, content) VALUES (new.id, new.title, new.content);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from a catalog indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of artifacts processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads Markdown artifacts from the processed directory and
// populates the database. It detects new, changed, and unchanged
// artifacts for incremental updates; one bad artifact never aborts the
// indexing run.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	entries, err := os.ReadDir(s.processedDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading processed directory %s: %w", s.processedDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		name := entry.Name()

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		// Check whether the artifact has changed since last indexing.
		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM documents WHERE artifact = ?`, name,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", name)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		data, err := os.ReadFile(filepath.Join(s.processedDir, name))
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		content := string(data)
		title := extractTitle(content, strings.TrimSuffix(name, ".md"))

		if err := s.upsertDocument(ctx, name, title, content, modTime); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s\n", name)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s\n", name)
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	return summary, nil
}

func (s *Store) upsertDocument(ctx context.Context, artifact, title, content, modTime string) error {
	indexedAt := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (artifact, title, content, indexed_at, file_mod_time)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(artifact) DO UPDATE SET
			title=excluded.title, content=excluded.content,
			indexed_at=excluded.indexed_at, file_mod_time=excluded.file_mod_time`,
		artifact, title, content, indexedAt, modTime,
	)
	if err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}
	return nil
}

// extractTitle returns the first level-one heading in content, or
// fallback when there is none.
func extractTitle(content, fallback string) string {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
		}
	}
	return fallback
}
