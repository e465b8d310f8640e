// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package exclude

import (
	"path"
	"strings"
)

// excludedNames are basenames that are never part of a corpus.
var excludedNames = map[string]struct{}{
	".DS_Store":            {},
	"Thumbs.db":            {},
	"ehthumbs.db":          {},
	"desktop.ini":          {},
	".env":                 {},
	".netrc":               {},
	".npmrc":               {},
	".pypirc":              {},
	".htpasswd":            {},
	".git-credentials":     {},
	".bash_history":        {},
	"id_rsa":               {},
	"id_dsa":               {},
	"id_ecdsa":             {},
	"id_ed25519":           {},
	"credentials.json":     {},
	"secrets.json":         {},
	"service-account.json": {},
}

// envPlaceholders are .env.* files that carry no secrets by convention.
var envPlaceholders = map[string]struct{}{
	".env.example":  {},
	".env.sample":   {},
	".env.template": {},
}

// excludedSuffixes are matched case-insensitively against the basename.
var excludedSuffixes = []string{
	// keys and certificates
	".pem", ".key", ".p12", ".pfx", ".crt", ".cer", ".der",
	".jks", ".keystore", ".kdbx", ".gpg", ".asc",
	// editor swap and backup files
	".swp", ".swo", ".swn", "~", ".tmp", ".orig",
	// bytecode
	".pyc",
}

// vcsMarkers are checked as substrings of "/" + rel + "/".
var vcsMarkers = []string{"/.git/", "/.svn/", "/.hg/", "/.bzr/"}

// excludedDirs are directory names excluded at any depth.
var excludedDirs = map[string]struct{}{
	".git":             {},
	".svn":             {},
	".hg":              {},
	".bzr":             {},
	"node_modules":     {},
	"bower_components": {},
	"__pycache__":      {},
	".venv":            {},
	"venv":             {},
	".tox":             {},
	".pytest_cache":    {},
	".mypy_cache":      {},
	".ruff_cache":      {},
	".gradle":          {},
	".next":            {},
	".turbo":           {},
	".cache":           {},
	".idea":            {},
	".vscode":          {},
}

// Match reports whether the entry at rel must be skipped. rel is relative to
// the scan root. When isDir is true a match also excludes the whole subtree.
func Match(rel string, isDir bool) bool {
	rel = normalize(rel)
	if rel == "" || rel == "." {
		return false
	}

	base := path.Base(rel)
	if _, ok := excludedNames[base]; ok {
		return true
	}
	if strings.HasPrefix(base, ".env.") {
		if _, ok := envPlaceholders[base]; !ok {
			return true
		}
	}

	lower := strings.ToLower(base)
	for _, suffix := range excludedSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}

	wrapped := "/" + rel + "/"
	for _, marker := range vcsMarkers {
		if strings.Contains(wrapped, marker) {
			return true
		}
	}

	// Every segment but the last is a directory. The last one is only a
	// directory when isDir says so.
	segments := strings.Split(rel, "/")
	for i, seg := range segments {
		last := i == len(segments)-1
		if last && !isDir {
			break
		}
		if _, ok := excludedDirs[seg]; ok {
			return true
		}
		if strings.HasPrefix(seg, ".") && seg != "." && seg != ".." {
			return true
		}
	}

	return false
}

// normalize converts rel to a cleaned forward-slash path without a leading
// "./" or "/".
func normalize(rel string) string {
	rel = strings.ReplaceAll(rel, "\\", "/")
	rel = path.Clean(rel)
	rel = strings.TrimPrefix(rel, "/")
	return rel
}
