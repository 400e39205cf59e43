// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/anchor-idl/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "idl")
	store, err := NewStore(types.CatalogConfig{Dir: dir, MaxResults: 20})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, dir
}

func sampleProgram(id string) *types.ProgramInfo {
	info := types.NewProgramInfo()
	info.ProgramID = id
	info.Instructions = []types.InstructionInfo{
		{Name: "make_offer", Arguments: []types.ArgumentInfo{{Name: "id", TypeName: "u64"}}},
		{Name: "take_offer", Arguments: []types.ArgumentInfo{}},
	}
	info.Accounts = []types.AccountInfo{
		{Name: "MakeOffer", Fields: []types.FieldInfo{{Name: "maker", TypeName: "Signer<'info>,"}}},
	}
	info.Errors = []types.ErrorInfo{
		{Name: "InvalidAmount,", Code: 6000, Message: "InvalidAmount,"},
	}
	info.Structs = []types.StructInfo{
		{Name: "MakeOffer", Fields: []types.FieldInfo{{Name: "maker", TypeName: "Signer<'info>,"}}},
		{Name: "Escrow", Fields: []types.FieldInfo{{Name: "bump", TypeName: "u8,"}}},
	}
	return info
}

func record(t *testing.T, store *Store, info *types.ProgramInfo, path, text string) RecordStatus {
	t.Helper()
	status, err := store.Record(context.Background(), info, path, text)
	require.NoError(t, err)
	return status
}

// --- schema ---

func TestNewStoreCreatesSchema(t *testing.T) {
	store, dir := testStore(t)

	tables := []string{"programs", "symbols"}
	if store.fts {
		tables = append(tables, "symbols_fts")
	}
	for _, table := range tables {
		var count int
		err := store.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type='table' AND name = ?`, table,
		).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s", table)
	}

	_, err := os.Stat(filepath.Join(dir, indexDir, dbFile))
	assert.NoError(t, err)
}

func TestNewStoreReopens(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "idl")
	for i := 0; i < 2; i++ {
		store, err := NewStore(types.CatalogConfig{Dir: dir})
		require.NoError(t, err)
		require.NoError(t, store.Close())
	}
}

func TestNewStoreRequiresDir(t *testing.T) {
	_, err := NewStore(types.CatalogConfig{})
	require.Error(t, err)
}

// --- record ---

func TestRecordIncremental(t *testing.T) {
	store, _ := testStore(t)
	info := sampleProgram("SWAP1")

	assert.Equal(t, StatusIndexed, record(t, store, info, "lib.rs", "v1"))
	assert.Equal(t, StatusSkipped, record(t, store, info, "lib.rs", "v1"))

	info.Instructions = info.Instructions[:1]
	assert.Equal(t, StatusUpdated, record(t, store, info, "lib.rs", "v2"))

	programs, err := store.Programs(context.Background())
	require.NoError(t, err)
	require.Len(t, programs, 1)
	assert.Equal(t, "SWAP1", programs[0].Key)
	assert.Equal(t, "lib.rs", programs[0].SourcePath)
	assert.Equal(t, hashText("v2"), programs[0].SourceHash)
	assert.Equal(t, 5, programs[0].Symbols)
}

func TestRecordKeysByPathWithoutProgramID(t *testing.T) {
	store, _ := testStore(t)
	info := sampleProgram("")

	record(t, store, info, "programs/a/src/lib.rs", "a")
	record(t, store, info, "programs/b/src/lib.rs", "b")

	programs, err := store.Programs(context.Background())
	require.NoError(t, err)
	require.Len(t, programs, 2)
	assert.Equal(t, "programs/a/src/lib.rs", programs[0].Key)
	assert.Equal(t, "", programs[0].ProgramID)
}

func TestRecordEmptyProgram(t *testing.T) {
	store, _ := testStore(t)

	assert.Equal(t, StatusIndexed, record(t, store, types.NewProgramInfo(), "lib.rs", ""))

	results, err := store.Retrieve(context.Background(), QueryOptions{Program: "lib.rs"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

// --- retrieve ---

func TestRetrieve(t *testing.T) {
	store, _ := testStore(t)
	record(t, store, sampleProgram("SWAP1"), "swap/lib.rs", "swap")
	record(t, store, sampleProgram("SWAP2"), "swap2/lib.rs", "swap2")

	tests := []struct {
		name      string
		opts      QueryOptions
		wantCount int
		check     func(t *testing.T, results []QueryResult)
	}{
		{
			name:      "full text on name",
			opts:      QueryOptions{Query: "escrow"},
			wantCount: 2,
			check: func(t *testing.T, results []QueryResult) {
				for _, r := range results {
					assert.Equal(t, "Escrow", r.Name)
					assert.Equal(t, KindStruct, r.Kind)
				}
			},
		},
		{
			name:      "full text with program filter",
			opts:      QueryOptions{Query: "offer", Program: "SWAP1", Kind: KindInstruction},
			wantCount: 2,
		},
		{
			name:      "kind filter keeps source order",
			opts:      QueryOptions{Kind: KindInstruction, Program: "SWAP2"},
			wantCount: 2,
			check: func(t *testing.T, results []QueryResult) {
				assert.Equal(t, "make_offer", results[0].Name)
				assert.Equal(t, 0, results[0].Ordinal)
				assert.Equal(t, "take_offer", results[1].Name)
				assert.Equal(t, 1, results[1].Ordinal)
			},
		},
		{
			name:      "detail decoded",
			opts:      QueryOptions{Kind: KindError, Program: "SWAP1"},
			wantCount: 1,
			check: func(t *testing.T, results []QueryResult) {
				assert.Equal(t, float64(6000), results[0].Detail["code"])
				assert.Equal(t, "InvalidAmount,", results[0].Detail["message"])
			},
		},
		{
			name:      "limit",
			opts:      QueryOptions{Program: "SWAP1", MaxResults: 3},
			wantCount: 3,
		},
		{
			name:      "operators are literal",
			opts:      QueryOptions{Query: `make" OR "escrow`},
			wantCount: 0,
		},
		{
			name:      "no match",
			opts:      QueryOptions{Query: "nonexistent"},
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := store.Retrieve(context.Background(), tt.opts)
			require.NoError(t, err)
			require.Len(t, results, tt.wantCount)
			if tt.check != nil {
				tt.check(t, results)
			}
		})
	}
}

func TestRetrieveWithoutFTS(t *testing.T) {
	store, _ := testStore(t)
	store.fts = false
	record(t, store, sampleProgram("SWAP1"), "lib.rs", "v1")

	results, err := store.Retrieve(context.Background(), QueryOptions{Query: "OFFER", Kind: KindInstruction})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "make_offer", results[0].Name)

	results, err = store.Retrieve(context.Background(), QueryOptions{Query: "100%"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestQueryOptionsIsEmpty(t *testing.T) {
	assert.True(t, QueryOptions{MaxResults: 5}.IsEmpty())
	assert.False(t, QueryOptions{Kind: KindStruct}.IsEmpty())
	assert.False(t, QueryOptions{Query: "x"}.IsEmpty())
}

func TestFTSQuery(t *testing.T) {
	assert.Equal(t, "", ftsQuery("   "))
	assert.Equal(t, `"make" "offer"`, ftsQuery("make offer"))
	assert.Equal(t, `"a""b"`, ftsQuery(`a"b`))
}

// --- export ---

func TestExportJSON(t *testing.T) {
	store, dir := testStore(t)
	record(t, store, sampleProgram("SWAP1"), "lib.rs", "v1")

	path, err := store.ExportJSON(context.Background(), QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, indexDir, "export.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var exp Export
	require.NoError(t, json.Unmarshal(data, &exp))
	require.Len(t, exp.Programs, 1)
	assert.Len(t, exp.Symbols, 6)
	assert.Contains(t, string(data), `Signer<'info>,`)
}

func TestExportYAMLFiltered(t *testing.T) {
	store, _ := testStore(t)
	record(t, store, sampleProgram("SWAP1"), "a.rs", "a")
	record(t, store, sampleProgram("SWAP2"), "b.rs", "b")

	path, err := store.ExportYAML(context.Background(), QueryOptions{Program: "SWAP2", Kind: KindAccount})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var exp Export
	require.NoError(t, yaml.Unmarshal(data, &exp))
	require.Len(t, exp.Programs, 1)
	assert.Equal(t, "SWAP2", exp.Programs[0].Key)
	require.Len(t, exp.Symbols, 1)
	assert.Equal(t, "MakeOffer", exp.Symbols[0].Name)
}

func TestExportEmptyCatalog(t *testing.T) {
	store, _ := testStore(t)

	path, err := store.ExportJSON(context.Background(), QueryOptions{})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"programs": [], "symbols": []}`, string(data))
}
