// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skills

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// maxFrontmatterSize limits frontmatter to prevent YAML parsing attacks.
const maxFrontmatterSize = 64 * 1024

var delimiter = []byte("---")

var (
	errNoFrontmatter   = errors.New("SKILL.md must start with YAML frontmatter (---)")
	errUnterminated    = errors.New("SKILL.md frontmatter missing closing delimiter (---)")
	errFrontmatterSize = fmt.Errorf("frontmatter exceeds maximum size of %d bytes", maxFrontmatterSize)
)

// splitFrontmatter returns the YAML between the opening and closing "---"
// lines of content. The closing delimiter must sit on a line of its own.
func splitFrontmatter(content []byte) ([]byte, error) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	content = bytes.TrimLeft(content, " \t\r\n")

	first, rest, found := cutLine(content)
	if !bytes.Equal(bytes.TrimSpace(first), delimiter) {
		return nil, errNoFrontmatter
	}
	if !found {
		return nil, errUnterminated
	}

	body := rest
	offset := 0
	for {
		line, tail, more := cutLine(rest)
		if bytes.Equal(bytes.TrimRight(line, " \t\r"), delimiter) {
			fm := body[:offset]
			if len(fm) > maxFrontmatterSize {
				return nil, errFrontmatterSize
			}
			return fm, nil
		}
		if offset > maxFrontmatterSize {
			return nil, errFrontmatterSize
		}
		if !more {
			return nil, errUnterminated
		}
		offset += len(line) + 1
		rest = tail
	}
}

func cutLine(b []byte) (line, rest []byte, found bool) {
	return bytes.Cut(b, []byte("\n"))
}

// decodeTree parses frontmatter YAML into a key-value tree whose values are
// left as nodes for per-field decoding.
func decodeTree(fm []byte) (map[string]yaml.Node, error) {
	tree := map[string]yaml.Node{}
	if len(bytes.TrimSpace(fm)) == 0 {
		return tree, nil
	}
	if err := yaml.Unmarshal(fm, &tree); err != nil {
		return nil, fmt.Errorf("parsing frontmatter YAML: %w", err)
	}
	return tree, nil
}
