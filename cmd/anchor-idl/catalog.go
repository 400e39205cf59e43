// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/anchor-idl/internal/catalog"
	"github.com/pdiddy/anchor-idl/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Query interfaces recorded by dump_info --catalog-dir",
	Long: `Catalog manages a local SQLite index of extracted program interfaces.
dump_info --catalog-dir records into it; use subcommands to search symbols,
list programs, or export.`,
}

// catalogSettings maps the catalog's persistent flags to their config keys.
var catalogSettings = map[string]string{
	"dir":         "catalog.dir",
	"max-results": "catalog.max_results",
}

// --- query subcommand ---

var catalogQueryCmd = &cobra.Command{
	Use:   "query [terms]",
	Short: "Search recorded symbols by name with optional filters",
	Long: `Query searches instruction, account, error, and struct names (and their
recorded details) with FTS5 full-text search, structured filters (kind,
program), or both.`,
	RunE: runCatalogQuery,
}

func runCatalogQuery(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide search terms, --kind, or --program")
	}

	results, err := store.Retrieve(cmd.Context(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(cmd.OutOrStdout(), results, jsonOutput)
}

func formatQueryOutput(w io.Writer, results []catalog.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		if results == nil {
			results = []catalog.QueryResult{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-12s  %-32s  %s\n", "Rank", "Kind", "Name", "Program")
	fmt.Fprintln(w, strings.Repeat("-", 96))

	for i, r := range results {
		name := r.Name
		if len(name) > 32 {
			name = name[:29] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-12s  %-32s  %s\n", i+1, r.Kind, name, r.Program)
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

// --- programs subcommand ---

var catalogProgramsCmd = &cobra.Command{
	Use:   "programs",
	Short: "List recorded programs",
	RunE:  runCatalogPrograms,
}

func runCatalogPrograms(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	programs, err := store.Programs(cmd.Context())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(programs) == 0 {
		fmt.Fprintln(w, "No programs recorded.")
		return nil
	}
	for _, p := range programs {
		fmt.Fprintf(w, "%s\t%d symbols\t%s\t%s\n", p.Key, p.Symbols, p.SourcePath, p.RecordedAt)
	}
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	Long: `Export writes recorded programs and symbols (or a filtered subset) to
index/export.yaml or index/export.json under the catalog directory.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(cmd.Context(), opts)
	case "json":
		path, err = store.ExportJSON(cmd.Context(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}

// --- shared helpers ---

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	if err := applyConfig(cmd, catalogSettings); err != nil {
		return nil, err
	}
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = "idl"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return catalog.NewStore(types.CatalogConfig{
		Dir:        dir,
		MaxResults: maxResults,
	})
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) catalog.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	kind, _ := cmd.Flags().GetString("kind")
	program, _ := cmd.Flags().GetString("program")
	limit, _ := cmd.Flags().GetInt("limit")

	return catalog.QueryOptions{
		Query:      queryText,
		Kind:       kind,
		Program:    program,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("dir", "idl", "catalog directory (contains index/)")
	catalogCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Query flags.
	catalogQueryCmd.Flags().String("query", "", "full-text search terms")
	catalogQueryCmd.Flags().String("kind", "", "filter by kind: instruction, account, error, struct")
	catalogQueryCmd.Flags().String("program", "", "filter by program key")
	catalogQueryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	catalogQueryCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	catalogExportCmd.Flags().String("query", "", "full-text filter for partial export")
	catalogExportCmd.Flags().String("kind", "", "filter by kind for partial export")
	catalogExportCmd.Flags().String("program", "", "filter by program key for partial export")

	// Wire subcommands.
	catalogCmd.AddCommand(catalogQueryCmd)
	catalogCmd.AddCommand(catalogProgramsCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
