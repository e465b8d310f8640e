// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package corpus discovers groups and units in a content tree on disk.
//
// Every directory and file decision goes through [exclude.Match]. Symlinks and
// other non-regular entries are ignored. A directory that cannot be read is
// reported and treated as empty; only a missing corpus root is fatal.
package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/stacklok/toolhive-catalog/exclude"
)

// ErrRootNotFound is returned when the corpus root does not exist or is not a directory.
var ErrRootNotFound = errors.New("corpus root not found")

// SkillFile is the metadata file that marks a skill folder.
const SkillFile = "SKILL.md"

// ModelsDir is the directory under a provider folder that holds model definitions.
const ModelsDir = "models"

// ModelPattern selects model definition files below ModelsDir. It is matched
// against the lowercased relative path.
const ModelPattern = "**/*.toml"

// Warner receives recoverable resource problems.
type Warner interface {
	Warn(unit, format string, args ...any)
}

// Entry is a discovered directory.
type Entry struct {
	// Name is the directory's base name.
	Name string
	// Path is the directory's filesystem path.
	Path string
}

// CheckRoot returns ErrRootNotFound unless root is an existing directory.
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return fmt.Errorf("%w: %s: %w", ErrRootNotFound, root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrRootNotFound, root)
	}
	return nil
}

// Groups lists the immediate, non-excluded subdirectories of root ordered
// case-insensitively by name.
func Groups(root string, w Warner) ([]Entry, error) {
	if err := CheckRoot(root); err != nil {
		return nil, err
	}
	return subdirs(root, w, nil), nil
}

// SkillUnits lists the immediate subdirectories of groupDir that contain a
// regular SKILL.md, ordered like Groups.
func SkillUnits(groupDir string, w Warner) []Entry {
	return subdirs(groupDir, w, func(dir string) bool {
		info, err := os.Lstat(filepath.Join(dir, SkillFile))
		return err == nil && info.Mode().IsRegular()
	})
}

// ModelFiles walks providerDir/models depth-first and returns the
// slash-separated paths, relative to the models directory, of every regular
// file matching ModelPattern. The result is lexically ordered. A provider
// without a models directory has no model files.
func ModelFiles(providerDir string, w Warner) []string {
	modelsDir := filepath.Join(providerDir, ModelsDir)
	info, err := os.Lstat(modelsDir)
	if err != nil || !info.IsDir() {
		return nil
	}

	var files []string
	_ = filepath.WalkDir(modelsDir, func(p string, d fs.DirEntry, err error) error {
		rel, relErr := filepath.Rel(modelsDir, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if err != nil {
			w.Warn("", "cannot read %s: %v", p, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if exclude.Match(rel, true) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || exclude.Match(rel, false) {
			return nil
		}
		if ok, _ := doublestar.Match(ModelPattern, strings.ToLower(rel)); ok {
			files = append(files, rel)
		}
		return nil
	})

	slices.Sort(files)
	return files
}

// ModelID returns the identity of a model file: the provider folder name
// joined with the file's path below the models directory, without extension.
func ModelID(provider, rel string) string {
	return provider + "/" + strings.TrimSuffix(rel, path.Ext(rel))
}

// subdirs lists the non-excluded, non-symlink subdirectories of dir for which
// keep returns true.
func subdirs(dir string, w Warner, keep func(string) bool) []Entry {
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.Warn("", "cannot read %s: %v", dir, err)
		return nil
	}

	var out []Entry
	for _, e := range entries {
		if !e.IsDir() || e.Type()&fs.ModeSymlink != 0 {
			continue
		}
		if exclude.Match(e.Name(), true) {
			continue
		}
		p := filepath.Join(dir, e.Name())
		if keep != nil && !keep(p) {
			continue
		}
		out = append(out, Entry{Name: e.Name(), Path: p})
	}

	slices.SortFunc(out, func(a, b Entry) int {
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}
