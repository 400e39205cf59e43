// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the anchor-idl CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// usageLine is printed for every invocation other than a known subcommand.
const usageLine = "Solana Swap Program - Use 'dump_info' command to export program definition"

// logger writes diagnostics to stderr; stdout carries only command output.
var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// rootCmd is the base command for the anchor-idl CLI.
var rootCmd = &cobra.Command{
	Use:   "anchor-idl",
	Short: "Extract the interface description of an Anchor program",
	Long: `anchor-idl reads the source of a single program module and prints a
structured interface description: the program identifier, instruction
signatures, account input schemas, plain structs, and error codes.

Run "anchor-idl dump_info" to extract. Any other invocation prints a usage
line and exits successfully.`,
	Args: cobra.ArbitraryArgs,
	FParseErrWhitelist: cobra.FParseErrWhitelist{
		UnknownFlags: true,
	},
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), usageLine)
	},
}

func init() {
	cobra.OnInitialize(initLogging, initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./anchor-idl.yaml or ~/.config/anchor-idl/anchor-idl.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug diagnostics to stderr")

	// "help" and "completion" are unknown invocations like any other;
	// --help still works.
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func initLogging() {
	level := slog.LevelInfo
	if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("anchor-idl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "anchor-idl"))
		}
	}

	viper.SetEnvPrefix("ANCHOR_IDL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

// applyConfig fills each flag that was not given on the command line from
// the config file or environment, keyed by settings (flag name → viper
// key). Commands then read every setting through cmd.Flags().
func applyConfig(cmd *cobra.Command, settings map[string]string) error {
	for flag, key := range settings {
		f := cmd.Flags().Lookup(flag)
		if f == nil || f.Changed || !viper.IsSet(key) {
			continue
		}
		if err := f.Value.Set(viper.GetString(key)); err != nil {
			return fmt.Errorf("config %s: %w", key, err)
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
