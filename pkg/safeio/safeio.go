package safeio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// CleanUserPath cleans a user-provided path and rejects traversal attempts.
// Returns paths with forward slashes for cross-platform consistency.
func CleanUserPath(p string) (string, error) {
	c := filepath.Clean(p)
	if strings.Contains(c, "..") {
		return "", errors.New("path traversal detected")
	}
	return filepath.ToSlash(c), nil
}

// containedPath resolves relPath against baseDir and verifies the result does
// not escape baseDir. Returns the absolute destination path.
func containedPath(baseDir, relPath string) (string, error) {
	baseAbs, err := filepath.Abs(baseDir)
	if err != nil {
		return "", errors.New("failed to resolve base directory")
	}
	destAbs, err := filepath.Abs(filepath.Join(baseAbs, relPath))
	if err != nil {
		return "", errors.New("failed to resolve destination path")
	}

	rel, err := filepath.Rel(baseAbs, destAbs)
	if err != nil {
		return "", errors.New("failed to compute relative path")
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.New("destination is outside base directory")
	}
	return destAbs, nil
}

// WriteFileContained writes data to relPath under baseDir, creating parent
// directories as needed. The write is refused if relPath resolves outside
// baseDir.
func WriteFileContained(baseDir, relPath string, data []byte) error {
	dest, err := containedPath(baseDir, relPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	// #nosec G304 -- dest has been verified to be contained within baseDir
	return os.WriteFile(dest, data, 0o644)
}
