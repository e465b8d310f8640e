// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package output persists catalog artifacts inside their sanctioned
// directories. Every destination is checked lexically against its base
// directory before anything touches the filesystem.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BoundaryError reports a destination that resolves outside its directory.
type BoundaryError struct {
	Dir  string
	Path string
}

// Error implements the error interface.
func (e *BoundaryError) Error() string {
	return fmt.Sprintf("output path %q escapes directory %q", e.Path, e.Dir)
}

// Resolve joins name onto dir and returns the absolute result, or a
// *BoundaryError when the result is not strictly inside dir.
func Resolve(dir, name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", &BoundaryError{Dir: dir, Path: name}
	}
	return Contain(dir, filepath.Join(dir, name))
}

// Contain returns the absolute form of target if it lies strictly inside dir.
func Contain(dir, target string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory %s: %w", dir, err)
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolving path %s: %w", target, err)
	}

	rel, err := filepath.Rel(absDir, absTarget)
	if err != nil {
		return "", &BoundaryError{Dir: dir, Path: target}
	}
	if rel == "." || rel == ".." || filepath.IsAbs(rel) ||
		strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &BoundaryError{Dir: dir, Path: target}
	}
	return absTarget, nil
}

// Marshal renders v as two-space indented JSON with a trailing newline.
// HTML characters are not escaped so descriptions stay readable.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteJSON writes v to path after verifying that path lies within dir.
// The file is replaced atomically. It returns the absolute path written.
func WriteJSON(dir, path string, v any) (string, error) {
	dest, err := Contain(dir, path)
	if err != nil {
		return "", err
	}

	data, err := Marshal(v)
	if err != nil {
		return "", err
	}

	if err := WriteFileAtomic(dest, data); err != nil {
		return "", err
	}
	return dest, nil
}

// WriteFileAtomic writes data to a temporary file next to dest and renames
// it into place, creating parent directories as needed.
func WriteFileAtomic(dest string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dest, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", dest, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dest, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil { //#nosec G302 -- published artifacts are world-readable
		return fmt.Errorf("setting permissions on %s: %w", dest, err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return fmt.Errorf("replacing %s: %w", dest, err)
	}
	return nil
}
