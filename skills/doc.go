// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package skills normalizes the YAML frontmatter of SKILL.md files into
// catalog records.
package skills
