// Package fileio implements the editor's file layer (§4.8): validated
// UTF-8, LF-only reads, and atomic saves via a sibling temp file, fsync,
// and rename.
package fileio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrInvalidEncoding is returned when a file's bytes are not valid UTF-8.
var ErrInvalidEncoding = errors.New("fileio: invalid UTF-8")

// ErrContainsCR is returned when a file contains a carriage return byte;
// the editor's file format is LF-only (§6, §4.8: "reject, don't
// normalise").
var ErrContainsCR = errors.New("fileio: file contains CR bytes")

// Read opens path, validates its content, and returns it as a string.
// Non-existent files return os.ErrNotExist wrapped in the returned error
// so callers can offer "create new file" per scenario S1.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("fileio: read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("fileio: read %s: %w", path, ErrInvalidEncoding)
	}
	if strings.IndexByte(string(data), '\r') >= 0 {
		return "", fmt.Errorf("fileio: read %s: %w", path, ErrContainsCR)
	}
	return string(data), nil
}

// Exists reports whether path names an existing file.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Save writes content to path atomically: it serializes to a sibling temp
// file named "<name>.<pid>", fsyncs it, then renames it over path. On
// failure the target file is left untouched (Property 9).
func Save(path, content string) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	tmpPath := filepath.Join(dir, fmt.Sprintf("%s.%d", base, os.Getpid()))

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("fileio: create temp file for %s: %w", path, err)
	}

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("fileio: write temp file for %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("fileio: fsync temp file for %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("fileio: close temp file for %s: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("fileio: rename temp file onto %s: %w", path, err)
	}
	return nil
}
