// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// QueryOptions holds parameters for catalog queries.
type QueryOptions struct {
	// Query is matched against symbol names and details with FTS5. Each
	// whitespace-separated term is quoted, so FTS5 operators are literal.
	Query string

	// Kind filters by symbol kind (instruction, account, error, struct).
	Kind string

	// Program filters by program key.
	Program string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Kind == "" && q.Program == ""
}

// QueryResult is one symbol with the record it was stored from.
type QueryResult struct {
	Program string         `json:"program" yaml:"program"`
	Kind    string         `json:"kind" yaml:"kind"`
	Name    string         `json:"name" yaml:"name"`
	Ordinal int            `json:"ordinal" yaml:"ordinal"`
	Detail  map[string]any `json:"detail" yaml:"detail"`
}

// Retrieve queries the catalog. Full-text queries are ordered by rank;
// filter-only queries by program, kind and source order. Without FTS5 each
// query term must occur as a case-insensitive substring of the name or
// detail, and results use the filter-only order.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		match  = ftsQuery(opts.Query)
		useFTS = match != "" && s.fts
	)

	if useFTS {
		qb.WriteString(
			`SELECT sy.program_key, sy.kind, sy.name, sy.ordinal, sy.detail
			FROM symbols_fts
			JOIN symbols sy ON sy.rowid = symbols_fts.rowid
			WHERE symbols_fts MATCH ?`)
		args = append(args, match)
	} else {
		qb.WriteString(
			`SELECT sy.program_key, sy.kind, sy.name, sy.ordinal, sy.detail
			FROM symbols sy
			WHERE 1=1`)
		for _, term := range strings.Fields(opts.Query) {
			qb.WriteString(` AND (sy.name LIKE ? ESCAPE '\' OR sy.detail LIKE ? ESCAPE '\')`)
			pattern := "%" + likeEscaper.Replace(term) + "%"
			args = append(args, pattern, pattern)
		}
	}

	if opts.Kind != "" {
		qb.WriteString(` AND sy.kind = ?`)
		args = append(args, opts.Kind)
	}

	if opts.Program != "" {
		qb.WriteString(` AND sy.program_key = ?`)
		args = append(args, opts.Program)
	}

	if useFTS {
		qb.WriteString(` ORDER BY symbols_fts.rank, sy.rowid`)
	} else {
		qb.WriteString(` ORDER BY sy.program_key, sy.kind, sy.ordinal`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr     QueryResult
			detail string
		)
		if err := rows.Scan(&qr.Program, &qr.Kind, &qr.Name, &qr.Ordinal, &detail); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if err := json.Unmarshal([]byte(detail), &qr.Detail); err != nil {
			return nil, fmt.Errorf("decoding %s %s: %w", qr.Kind, qr.Name, err)
		}
		results = append(results, qr)
	}

	return results, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ftsQuery turns free text into an FTS5 expression of quoted terms, which
// FTS5 combines with AND.
func ftsQuery(text string) string {
	terms := strings.Fields(text)
	for i, term := range terms {
		terms[i] = `"` + strings.ReplaceAll(term, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}
