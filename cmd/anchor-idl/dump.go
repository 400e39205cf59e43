// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/anchor-idl/internal/catalog"
	"github.com/pdiddy/anchor-idl/internal/extract"
	"github.com/pdiddy/anchor-idl/internal/render"
	"github.com/pdiddy/anchor-idl/internal/source"
	"github.com/pdiddy/anchor-idl/internal/watch"
	"github.com/pdiddy/anchor-idl/pkg/types"
)

var dumpCmd = &cobra.Command{
	Use:   "dump_info",
	Short: "Extract the program interface and print it",
	Long: `dump_info reads the program module source (default
programs/swap-program/src/lib.rs under the working directory), extracts the
program identifier, instructions, account schemas, error codes, and structs,
and prints them to stdout.

A missing or unreadable source file is reported on stderr and yields a
record with an empty identifier and empty lists; the command still
succeeds. Unknown flags are ignored.`,
	FParseErrWhitelist: cobra.FParseErrWhitelist{
		UnknownFlags: true,
	},
	RunE: runDump,
}

// dumpSettings maps dump_info flags to their config keys.
var dumpSettings = map[string]string{
	"source":          "source",
	"format":          "format",
	"context-param":   "rules.context_param",
	"error-code-base": "rules.error_code_base",
	"watch":           "watch",
	"debounce":        "debounce",
	"catalog-dir":     "catalog.dir",
}

func init() {
	defaults := types.DefaultRules()

	dumpCmd.Flags().String("source", types.DefaultSourcePath, "program module source, relative to the working directory")
	dumpCmd.Flags().String("format", string(types.FormatJSON), "output format: json, yaml, or table")
	dumpCmd.Flags().String("context-param", defaults.ContextParam, "parameter name that marks an instruction's execution context")
	dumpCmd.Flags().Uint32("error-code-base", defaults.ErrorCodeBase, "code assigned to the first error variant")
	dumpCmd.Flags().Bool("watch", false, "keep running and re-extract when the source changes")
	dumpCmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period after a change before re-extracting")
	dumpCmd.Flags().String("catalog-dir", "", "also record the result in the catalog under this directory")

	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd, dumpSettings); err != nil {
		return err
	}

	cfg, err := dumpConfig(cmd)
	if err != nil {
		return err
	}
	catalogDir, _ := cmd.Flags().GetString("catalog-dir")

	path := source.Resolve("", cfg.SourcePath)
	patterns := extract.NewPatterns(cfg.Rules)

	var store *catalog.Store
	if catalogDir != "" {
		store, err = catalog.NewStore(types.CatalogConfig{Dir: catalogDir})
		if err != nil {
			logger.Warn("catalog unavailable, not recording", "dir", catalogDir, "error", err)
		} else {
			defer store.Close()
		}
	}

	run := func(ctx context.Context) error {
		text := source.Load(path, logger)
		info := patterns.Extract(text)
		if err := render.Write(cmd.OutOrStdout(), info, cfg.Format); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		if store != nil {
			status, err := store.Record(ctx, info, path, text)
			if err != nil {
				logger.Warn("catalog record failed", "path", path, "error", err)
			} else {
				logger.Info("catalog "+string(status), "program", catalog.ProgramKey(info, path))
			}
		}
		return nil
	}

	if err := run(cmd.Context()); err != nil {
		return err
	}
	if !cfg.Watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watch.File(ctx, path, cfg.Debounce, func() {
		if err := run(ctx); err != nil {
			logger.Error("re-extraction failed", "error", err)
		}
	}, logger)
}

// dumpConfig reads the dump_info settings from the command's flags.
func dumpConfig(cmd *cobra.Command) (types.ExtractionConfig, error) {
	sourcePath, _ := cmd.Flags().GetString("source")
	if sourcePath == "" {
		sourcePath = types.DefaultSourcePath
	}
	formatName, _ := cmd.Flags().GetString("format")
	format, err := render.ParseFormat(formatName)
	if err != nil {
		return types.ExtractionConfig{}, err
	}
	contextParam, _ := cmd.Flags().GetString("context-param")
	codeBase, _ := cmd.Flags().GetUint32("error-code-base")
	watchSource, _ := cmd.Flags().GetBool("watch")
	debounce, _ := cmd.Flags().GetDuration("debounce")

	return types.ExtractionConfig{
		Rules: types.Rules{
			ContextParam:  contextParam,
			ErrorCodeBase: codeBase,
		},
		SourcePath: sourcePath,
		Format:     format,
		Watch:      watchSource,
		Debounce:   debounce,
	}, nil
}
