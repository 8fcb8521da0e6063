// Package safeio contains filesystem helpers shared by the fetcher and
// generator: atomic writes and archive path containment.
package safeio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteFileAtomic writes data to path via a temporary file in the same
// directory followed by a rename, so readers never observe a partial file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}

// ContainedPath joins name onto baseDir and verifies the result stays inside
// baseDir, rejecting traversal via ".." or absolute names. Archive member
// names pass through here before extraction.
func ContainedPath(baseDir, name string) (string, error) {
	if name == "" {
		return "", errors.New("empty path name")
	}
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("absolute path not allowed: %s", name)
	}

	joined := filepath.Join(baseDir, name)

	baseAbs, err := filepath.Abs(baseDir)
	if err != nil {
		return "", errors.New("failed to resolve base directory")
	}
	joinedAbs, err := filepath.Abs(joined)
	if err != nil {
		return "", errors.New("failed to resolve joined path")
	}

	rel, err := filepath.Rel(baseAbs, joinedAbs)
	if err != nil {
		return "", errors.New("failed to compute relative path")
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes base directory: %s", name)
	}

	return joined, nil
}
