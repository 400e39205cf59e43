// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists extracted program interfaces in a SQLite
// database with a full-text index over symbol names, for tools that query
// many programs at once. Extraction itself stays stateless; the catalog
// only records what dump_info produced.
package catalog

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/anchor-idl/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "catalog.db"
)

// Symbol kinds stored in the catalog.
const (
	KindInstruction = "instruction"
	KindAccount     = "account"
	KindError       = "error"
	KindStruct      = "struct"
)

// Store manages the catalog SQLite database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int

	// fts is false when the driver was built without FTS5 (the sqlite_fts5
	// build tag); Retrieve then matches terms with LIKE.
	fts bool
}

// NewStore opens or creates the catalog database at dir/index/catalog.db
// and creates the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("catalog directory is not set")
	}

	dbDir := filepath.Join(cfg.Dir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		dir:        cfg.Dir,
		maxResults: maxResults,
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
	statements := []string{
		`CREATE TABLE IF NOT EXISTS programs (
			key TEXT PRIMARY KEY,
			program_id TEXT,
			source_path TEXT,
			source_hash TEXT,
			recorded_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS symbols (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			program_key TEXT NOT NULL REFERENCES programs(key) ON DELETE CASCADE,
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			ordinal INTEGER NOT NULL,
			detail TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_symbols_program ON symbols(program_key)`,
		`CREATE INDEX IF NOT EXISTS idx_symbols_kind ON symbols(kind)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='symbols_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists > 0 {
		s.fts = true
		return nil
	}

	_, err := s.db.Exec(`CREATE VIRTUAL TABLE symbols_fts USING fts5(name, detail, content=symbols, content_rowid=rowid)`)
	switch {
	case err != nil && strings.Contains(err.Error(), "no such module"):
		slog.Debug("sqlite built without fts5, catalog search falls back to LIKE")
		return nil
	case err != nil:
		return fmt.Errorf("creating FTS table: %w", err)
	}
	s.fts = true

	ftsStatements := []string{
		`CREATE TRIGGER symbols_ai AFTER INSERT ON symbols BEGIN
			INSERT INTO symbols_fts(rowid, name, detail) VALUES (new.rowid, new.name, new.detail);
		END`,
		`CREATE TRIGGER symbols_ad AFTER DELETE ON symbols BEGIN
			INSERT INTO symbols_fts(symbols_fts, rowid, name, detail) VALUES('delete', old.rowid, old.name, old.detail);
		END`,
		`CREATE TRIGGER symbols_au AFTER UPDATE ON symbols BEGIN
			INSERT INTO symbols_fts(symbols_fts, rowid, name, detail) VALUES('delete', old.rowid, old.name, old.detail);
			INSERT INTO symbols_fts(rowid, name, detail) VALUES (new.rowid, new.name, new.detail);
		END`,
	}
	for _, stmt := range ftsStatements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}

	return nil
}

// RecordStatus reports what Record did with a program.
type RecordStatus string

const (
	StatusIndexed RecordStatus = "indexed"
	StatusUpdated RecordStatus = "updated"
	StatusSkipped RecordStatus = "skipped"
)

// ProgramKey returns the catalog key for a record: its program identifier,
// or the source path when the identifier is empty.
func ProgramKey(info *types.ProgramInfo, sourcePath string) string {
	if info.ProgramID != "" {
		return info.ProgramID
	}
	return sourcePath
}

// Record stores info under its program key. When the hash of text matches
// the stored one the program is skipped; otherwise all of its symbols are
// replaced in one transaction.
func (s *Store) Record(ctx context.Context, info *types.ProgramInfo, sourcePath, text string) (RecordStatus, error) {
	key := ProgramKey(info, sourcePath)
	hash := hashText(text)

	var storedHash string
	err := s.db.QueryRowContext(ctx,
		`SELECT source_hash FROM programs WHERE key = ?`, key,
	).Scan(&storedHash)

	switch {
	case err == nil && storedHash == hash:
		return StatusSkipped, nil
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return "", fmt.Errorf("looking up program %s: %w", key, err)
	}
	isUpdate := err == nil

	if err := s.recordProgram(ctx, key, info, sourcePath, hash); err != nil {
		return "", fmt.Errorf("recording program %s: %w", key, err)
	}

	if isUpdate {
		return StatusUpdated, nil
	}
	return StatusIndexed, nil
}

func (s *Store) recordProgram(ctx context.Context, key string, info *types.ProgramInfo, sourcePath, hash string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM symbols WHERE program_key = ?`, key); err != nil {
		return fmt.Errorf("deleting old symbols: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO programs (key, program_id, source_path, source_hash, recorded_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			program_id=excluded.program_id, source_path=excluded.source_path,
			source_hash=excluded.source_hash, recorded_at=excluded.recorded_at`,
		key, info.ProgramID, sourcePath, hash, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upserting program: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO symbols (program_key, kind, name, ordinal, detail) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, sym := range symbolsOf(info) {
		detail, err := json.Marshal(sym.record)
		if err != nil {
			return fmt.Errorf("marshaling %s %s: %w", sym.kind, sym.name, err)
		}
		if _, err := stmt.ExecContext(ctx, key, sym.kind, sym.name, sym.ordinal, string(detail)); err != nil {
			return fmt.Errorf("inserting %s %s: %w", sym.kind, sym.name, err)
		}
	}

	return tx.Commit()
}

// symbol is one catalog row before insertion.
type symbol struct {
	kind    string
	name    string
	ordinal int
	record  any
}

// symbolsOf flattens info into rows, keeping each list's source order in
// ordinal.
func symbolsOf(info *types.ProgramInfo) []symbol {
	var syms []symbol
	for i, v := range info.Instructions {
		syms = append(syms, symbol{KindInstruction, v.Name, i, v})
	}
	for i, v := range info.Accounts {
		syms = append(syms, symbol{KindAccount, v.Name, i, v})
	}
	for i, v := range info.Errors {
		syms = append(syms, symbol{KindError, v.Name, i, v})
	}
	for i, v := range info.Structs {
		syms = append(syms, symbol{KindStruct, v.Name, i, v})
	}
	return syms
}

// hashText returns the hex SHA-256 of text.
func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// ProgramRecord describes one recorded program.
type ProgramRecord struct {
	Key        string `json:"key" yaml:"key"`
	ProgramID  string `json:"program_id" yaml:"program_id"`
	SourcePath string `json:"source_path" yaml:"source_path"`
	SourceHash string `json:"source_hash" yaml:"source_hash"`
	RecordedAt string `json:"recorded_at" yaml:"recorded_at"`
	Symbols    int    `json:"symbols" yaml:"symbols"`
}

// Programs lists recorded programs ordered by key.
func (s *Store) Programs(ctx context.Context) ([]ProgramRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.key, p.program_id, p.source_path, p.source_hash, p.recorded_at,
			(SELECT count(*) FROM symbols sy WHERE sy.program_key = p.key)
		 FROM programs p ORDER BY p.key`)
	if err != nil {
		return nil, fmt.Errorf("listing programs: %w", err)
	}
	defer rows.Close()

	var programs []ProgramRecord
	for rows.Next() {
		var p ProgramRecord
		if err := rows.Scan(&p.Key, &p.ProgramID, &p.SourcePath, &p.SourceHash, &p.RecordedAt, &p.Symbols); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}
