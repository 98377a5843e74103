// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
)

// QueryOptions holds parameters for catalog queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string. Empty lists every
	// document.
	Query string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// SearchResult is one cataloged artifact.
type SearchResult struct {
	Artifact  string `json:"artifact" yaml:"artifact"`
	Title     string `json:"title" yaml:"title"`
	Content   string `json:"content" yaml:"content"`
	IndexedAt string `json:"indexed_at" yaml:"indexed_at"`
}

// Search queries the catalog. Full-text results are ranked by
// relevance; an empty query lists documents sorted by artifact name.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]SearchResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		query string
		args  []any
	)
	if opts.Query != "" {
		query = `SELECT d.artifact, d.title, d.content, d.indexed_at
			FROM documents_fts
			JOIN documents d ON d.id = documents_fts.rowid
			WHERE documents_fts MATCH ?
			ORDER BY documents_fts.rank
			LIMIT ?`
		args = []any{opts.Query, maxResults}
	} else {
		query = `SELECT artifact, title, content, indexed_at
			FROM documents
			ORDER BY artifact
			LIMIT ?`
		args = []any{maxResults}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Artifact, &r.Title, &r.Content, &r.IndexedAt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, r)
	}

	return results, rows.Err()
}
