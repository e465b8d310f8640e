// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skills

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/toolhive-catalog/report"
)

func TestParse_Complete(t *testing.T) {
	t.Parallel()

	raw := `---
name: PDF Toolkit
description: Extract text, tables and forms from PDF documents.
version: 1.0
license: Apache-2.0
status: Beta
tags: pdf, documents, pdf
allowed-tools:
  - Bash
  - Read
author: Docs Team
compatibility: requires python3
metadata:
  owner: docs
  tier: "1"
unknown-key: ignored
---
# PDF Toolkit

Body text with --- inside it.
`
	s, warnings := Parse("pdf", []byte(raw))
	assert.Empty(t, warnings)

	assert.Equal(t, "pdf", s.ID)
	assert.Equal(t, "PDF Toolkit", s.Name)
	assert.Equal(t, "Extract text, tables and forms from PDF documents.", s.Description)
	assert.Equal(t, "1.0", s.Version)
	assert.Equal(t, "Apache-2.0", s.License)
	assert.Equal(t, "beta", s.Status)
	assert.Equal(t, []string{"pdf", "documents"}, s.Tags)
	assert.Equal(t, []string{"Bash", "Read"}, s.AllowedTools)
	assert.Equal(t, "Docs Team", s.Author)
	assert.Equal(t, "requires python3", s.Compatibility)
	assert.Equal(t, map[string]string{"owner": "docs", "tier": "1"}, s.Metadata)
}

func TestParse_DocumentFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		message string
	}{
		{name: "no frontmatter", raw: "# Just markdown\n", message: "must start with YAML frontmatter"},
		{name: "empty file", raw: "", message: "must start with YAML frontmatter"},
		{name: "unterminated", raw: "---\nname: x\ndescription: y\n", message: "missing closing delimiter"},
		{name: "delimiter only", raw: "---", message: "missing closing delimiter"},
		{name: "invalid yaml", raw: "---\nname: [unclosed\n---\n", message: "parsing frontmatter YAML"},
		{name: "not a mapping", raw: "---\n- a\n- b\n---\n", message: "parsing frontmatter YAML"},
		{
			name:    "oversize",
			raw:     "---\n" + strings.Repeat("# padding line\n", maxFrontmatterSize/10) + "---\n",
			message: "exceeds maximum size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, warnings := Parse("broken", []byte(tt.raw))
			require.Len(t, warnings, 1)
			assert.Contains(t, warnings[0].Message, tt.message)
			assert.Equal(t, "broken", s.ID)
			assert.Equal(t, "broken", s.Name)
			assert.Empty(t, s.Description)
		})
	}
}

func TestParse_FieldDefects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		field    string
		check    func(t *testing.T, name, description, status string, tags []string)
		contains string
	}{
		{
			name:     "missing name falls back to id",
			body:     "description: d",
			field:    "name",
			contains: "required field is missing",
			check: func(t *testing.T, name, _, _ string, _ []string) {
				t.Helper()
				assert.Equal(t, "unit", name)
			},
		},
		{
			name:     "missing description",
			body:     "name: n",
			field:    "description",
			contains: "required field is missing",
			check: func(t *testing.T, _, description, _ string, _ []string) {
				t.Helper()
				assert.Empty(t, description)
			},
		},
		{
			name:     "null description",
			body:     "name: n\ndescription:",
			field:    "description",
			contains: "required field is missing",
		},
		{
			name:     "description is a list",
			body:     "name: n\ndescription: [a, b]",
			field:    "description",
			contains: "expected a string",
		},
		{
			name:     "name is a boolean",
			body:     "name: true\ndescription: d",
			field:    "name",
			contains: "got bool",
			check: func(t *testing.T, name, _, _ string, _ []string) {
				t.Helper()
				assert.Equal(t, "unit", name)
			},
		},
		{
			name:     "unknown status",
			body:     "name: n\ndescription: d\nstatus: wip",
			field:    "status",
			contains: `unknown value "wip" dropped`,
			check: func(t *testing.T, _, _, status string, _ []string) {
				t.Helper()
				assert.Empty(t, status)
			},
		},
		{
			name:     "tags mapping",
			body:     "name: n\ndescription: d\ntags:\n  a: b",
			field:    "tags",
			contains: "expected a string or a list of strings",
			check: func(t *testing.T, _, _, _ string, tags []string) {
				t.Helper()
				assert.Nil(t, tags)
			},
		},
		{
			name:     "nested metadata",
			body:     "name: n\ndescription: d\nmetadata:\n  owner:\n    team: docs",
			field:    "metadata",
			contains: "expected a mapping of strings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, warnings := Parse("unit", []byte("---\n"+tt.body+"\n---\nbody\n"))
			require.Len(t, warnings, 1)
			assert.Equal(t, tt.field, warnings[0].Field)
			assert.Contains(t, warnings[0].Message, tt.contains)
			if tt.check != nil {
				tt.check(t, s.Name, s.Description, s.Status, s.Tags)
			}
		})
	}
}

func TestParse_TagSpellings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  []string
	}{
		{value: "a b  c", want: []string{"a", "b", "c"}},
		{value: "a, b c, ,d", want: []string{"a", "b c", "d"}},
		{value: "[x, y]", want: []string{"x", "y"}},
		{value: `""`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()

			s, warnings := Parse("unit", []byte("---\nname: n\ndescription: d\ntags: "+tt.value+"\n---\n"))
			assert.Empty(t, warnings)
			assert.Equal(t, tt.want, s.Tags)
		})
	}
}

func TestParse_WindowsLineEndings(t *testing.T) {
	t.Parallel()

	s, warnings := Parse("crlf", []byte("---\r\nname: CRLF\r\ndescription: works\r\n---\r\nbody\r\n"))
	assert.Empty(t, warnings)
	assert.Equal(t, "CRLF", s.Name)
	assert.Equal(t, "works", s.Description)
}

func TestParse_WarningsAreFieldWarnings(t *testing.T) {
	t.Parallel()

	_, warnings := Parse("unit", []byte("---\n---\n"))
	assert.Equal(t, []report.FieldWarning{
		{Field: "name", Message: "required field is missing"},
		{Field: "description", Message: "required field is missing"},
	}, warnings)
}
