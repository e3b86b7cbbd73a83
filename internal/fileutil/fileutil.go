// Package fileutil provides the flat-file writes used by the pipeline stages.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"blogpipe/internal/apperr"
)

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating directory %s: %w", apperr.ErrIO, dir, err)
	}

	return nil
}

// WriteText writes content verbatim to dir/name, replacing any existing file,
// and returns the written path.
func WriteText(dir, name, content string) (string, error) {
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("%w: writing %s: %w", apperr.ErrIO, path, err)
	}

	return path, nil
}

// ReadText reads a UTF-8 text file.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %w", apperr.ErrIO, path, err)
	}

	return string(data), nil
}
