// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

const exportLimit = 100000

// Export holds the catalog contents written by ExportYAML and ExportJSON.
type Export struct {
	Programs []ProgramRecord `json:"programs" yaml:"programs"`
	Symbols  []QueryResult   `json:"symbols" yaml:"symbols"`
}

// ExportYAML writes the catalog to dir/index/export.yaml and returns the
// path. It supports the same filters as Retrieve.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) (string, error) {
	exp, err := s.export(ctx, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, indexDir, "export.yaml")
	data, err := yaml.Marshal(exp)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the catalog to dir/index/export.json and returns the
// path. It supports the same filters as Retrieve.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) (string, error) {
	exp, err := s.export(ctx, opts)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(exp); err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}

	path := filepath.Join(s.dir, indexDir, "export.json")
	return path, os.WriteFile(path, buf.Bytes(), 0o644)
}

func (s *Store) export(ctx context.Context, opts QueryOptions) (*Export, error) {
	programs, err := s.Programs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing programs for export: %w", err)
	}

	opts.MaxResults = exportLimit
	symbols, err := s.Retrieve(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	if opts.Program != "" {
		kept := programs[:0]
		for _, p := range programs {
			if p.Key == opts.Program {
				kept = append(kept, p)
			}
		}
		programs = kept
	}

	if programs == nil {
		programs = []ProgramRecord{}
	}
	if symbols == nil {
		symbols = []QueryResult{}
	}
	return &Export{Programs: programs, Symbols: symbols}, nil
}
