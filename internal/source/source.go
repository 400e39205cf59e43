// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source loads the program module text that extraction runs over.
// The file is read once, up front; nothing downstream touches the
// filesystem again.
package source

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Resolve joins path onto root unless path is already absolute. An empty
// root means the current working directory, falling back to "." when it
// cannot be determined.
func Resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			wd = "."
		}
		root = wd
	}
	return filepath.Join(root, path)
}

// Read returns the contents of the file at path.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading source %s: %w", path, err)
	}
	return string(data), nil
}

// Load reads the file at path. A missing or unreadable file is not an
// error: Load logs a warning and returns empty text, so extraction still
// produces a (near-empty) record.
func Load(path string, logger *slog.Logger) string {
	if logger == nil {
		logger = slog.Default()
	}
	text, err := Read(path)
	if err != nil {
		logger.Warn("could not read program source, continuing with empty text",
			"path", path, "error", err)
		return ""
	}
	return text
}
