// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skills

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stacklok/toolhive-catalog/catalog"
	"github.com/stacklok/toolhive-catalog/report"
)

// Frontmatter keys recognized by Parse. Unknown keys are ignored.
const (
	keyName          = "name"
	keyDescription   = "description"
	keyVersion       = "version"
	keyLicense       = "license"
	keyStatus        = "status"
	keyTags          = "tags"
	keyAllowedTools  = "allowed-tools"
	keyAuthor        = "author"
	keyCompatibility = "compatibility"
	keyMetadata      = "metadata"
)

// Parse normalizes the SKILL.md content of the skill identified by id.
//
// It never fails: a document without usable frontmatter yields a record named
// after id with an empty description and a single warning. Field problems
// yield a warning each and the field falls back to its zero value, except
// name which falls back to id. Derived fields such as the download URL are
// left for the caller.
func Parse(id string, raw []byte) (catalog.Skill, []report.FieldWarning) {
	s := catalog.Skill{ID: id, Name: id}

	fm, err := splitFrontmatter(raw)
	if err != nil {
		return s, []report.FieldWarning{{Message: err.Error()}}
	}
	tree, err := decodeTree(fm)
	if err != nil {
		return s, []report.FieldWarning{{Message: err.Error()}}
	}

	d := decoder{tree: tree}
	if name := d.requiredString(keyName); name != "" {
		s.Name = name
	}
	s.Description = d.requiredString(keyDescription)
	s.Version = d.optionalString(keyVersion)
	s.License = d.optionalString(keyLicense)
	s.Status = d.enum(keyStatus, catalog.SkillStatuses)
	s.Tags = d.list(keyTags)
	s.AllowedTools = d.list(keyAllowedTools)
	s.Author = d.optionalString(keyAuthor)
	s.Compatibility = d.optionalString(keyCompatibility)
	s.Metadata = d.stringMap(keyMetadata)

	return s, d.warnings
}

// decoder extracts typed fields from a frontmatter tree and collects a
// warning for every field it cannot use.
type decoder struct {
	tree     map[string]yaml.Node
	warnings []report.FieldWarning
}

func (d *decoder) warn(field, format string, args ...any) {
	d.warnings = append(d.warnings, report.FieldWarning{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (d *decoder) lookup(key string) (*yaml.Node, bool) {
	n, ok := d.tree[key]
	if !ok || isNull(&n) {
		return nil, false
	}
	return &n, true
}

func (d *decoder) requiredString(key string) string {
	n, ok := d.lookup(key)
	if !ok {
		d.warn(key, "required field is missing")
		return ""
	}
	return d.scalarString(key, n)
}

func (d *decoder) optionalString(key string) string {
	n, ok := d.lookup(key)
	if !ok {
		return ""
	}
	return d.scalarString(key, n)
}

// scalarString accepts string and numeric scalars so that "version: 1.0"
// keeps its spelling.
func (d *decoder) scalarString(key string, n *yaml.Node) string {
	if n.Kind != yaml.ScalarNode {
		d.warn(key, "expected a string")
		return ""
	}
	switch n.ShortTag() {
	case "!!str", "!!int", "!!float":
		return strings.TrimSpace(n.Value)
	default:
		d.warn(key, "expected a string, got %s", strings.TrimPrefix(n.ShortTag(), "!!"))
		return ""
	}
}

func (d *decoder) enum(key string, allowed []string) string {
	v := strings.ToLower(d.optionalString(key))
	if v == "" {
		return ""
	}
	if !slices.Contains(allowed, v) {
		d.warn(key, "unknown value %q dropped", v)
		return ""
	}
	return v
}

func (d *decoder) list(key string) []string {
	n, ok := d.lookup(key)
	if !ok {
		return nil
	}
	var v stringOrSlice
	if err := n.Decode(&v); err != nil {
		d.warn(key, "%v", err)
		return nil
	}
	if len(v) == 0 {
		return nil
	}
	return v
}

func (d *decoder) stringMap(key string) map[string]string {
	n, ok := d.lookup(key)
	if !ok {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		d.warn(key, "expected a mapping of strings")
		return nil
	}
	var m map[string]string
	if err := n.Decode(&m); err != nil {
		d.warn(key, "expected a mapping of strings")
		return nil
	}
	if len(m) == 0 {
		return nil
	}
	return m
}

func isNull(n *yaml.Node) bool {
	return n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

// stringOrSlice is a YAML type that can unmarshal from a string or a sequence.
// A string is split on commas when it contains one, otherwise on whitespace.
type stringOrSlice []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *stringOrSlice) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var parts []string
		if strings.Contains(value.Value, ",") {
			parts = strings.Split(value.Value, ",")
		} else {
			parts = strings.Fields(value.Value)
		}
		*s = compact(parts)
		return nil
	case yaml.SequenceNode:
		var arr []string
		if err := value.Decode(&arr); err != nil {
			return errors.New("expected a list of strings")
		}
		*s = compact(arr)
		return nil
	case yaml.DocumentNode, yaml.MappingNode, yaml.AliasNode:
		return errors.New("expected a string or a list of strings")
	}
	return fmt.Errorf("unexpected YAML node kind %d", value.Kind)
}

// compact trims entries and drops empty and repeated ones, keeping first-seen order.
func compact(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || slices.Contains(out, p) {
			continue
		}
		out = append(out, p)
	}
	return out
}
