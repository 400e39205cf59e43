//go:build mage

// Package main contains Mage build targets for anchor-idl developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "anchor-idl"
	cmdPkg  = "./cmd/anchor-idl"

	// buildTags enables FTS5 in go-sqlite3 for catalog search.
	buildTags = "sqlite_fts5"

	// idlDir receives Dump output and is the default catalog directory.
	idlDir  = "idl"
	idlFile = "program.json"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-tags", buildTags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Dump builds the CLI and writes the interface description of the program
// in the working directory to idl/program.json.
func Dump() error {
	mg.Deps(Build)

	if err := os.MkdirAll(idlDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", idlDir, err)
	}
	out, err := sh.Output(filepath.Join(binDir, binName), "dump_info")
	if err != nil {
		return fmt.Errorf("dump_info: %w", err)
	}
	path := filepath.Join(idlDir, idlFile)
	if err := os.WriteFile(path, []byte(out+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

// Test runs the unit tests for every package.
func Test() error {
	return sh.RunV("go", "test", "-tags", buildTags, "./...")
}

// Clean removes build output and the generated interface description.
func Clean() error {
	for _, path := range []string{binDir, filepath.Join(idlDir, idlFile)} {
		if err := sh.Rm(path); err != nil {
			return fmt.Errorf("removing %s: %w", path, err)
		}
		fmt.Println("  removed", path)
	}
	return nil
}
