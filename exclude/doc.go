// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package exclude decides which corpus entries are invisible to the catalog
build: never scanned, never archived and never counted.

The policy is fixed. It covers version-control metadata, OS and editor
artifacts, credential and key material, dependency and build caches, and every
dot-prefixed directory. There is no configuration surface; callers cannot
loosen it.

# Usage

Paths are relative to the directory being scanned and may use either
separator:

	if exclude.Match("scripts/.venv", true) {
		return filepath.SkipDir
	}

A true result for a directory also covers everything beneath it, so walkers
must skip the whole subtree.

A dot-prefixed file is not excluded for its leading dot alone: placeholders
such as .gitkeep or .gitignore stay in archives. Only dot-prefixed directories
are excluded wholesale.
*/
package exclude
