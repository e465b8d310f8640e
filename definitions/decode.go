// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package definitions

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/stacklok/toolhive-catalog/report"
)

// decodeTree parses TOML into a key-value tree.
func decodeTree(raw []byte) (map[string]any, error) {
	tree := map[string]any{}
	if err := toml.Unmarshal(raw, &tree); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("parsing TOML at line %d, column %d: %w", row, col, err)
		}
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}
	return tree, nil
}

// decoder extracts typed fields from a TOML tree and collects a warning for
// every field it cannot use. Field names in warnings are dotted paths.
type decoder struct {
	tree     map[string]any
	prefix   string
	warnings *[]report.FieldWarning
}

func newDecoder(tree map[string]any) decoder {
	return decoder{tree: tree, warnings: &[]report.FieldWarning{}}
}

func (d decoder) path(key string) string {
	if d.prefix == "" {
		return key
	}
	return d.prefix + "." + key
}

func (d decoder) warn(key, format string, args ...any) {
	*d.warnings = append(*d.warnings, report.FieldWarning{Field: d.path(key), Message: fmt.Sprintf(format, args...)})
}

// table returns a decoder for the sub-table at key. ok is false when the key
// is absent or not a table.
func (d decoder) table(key string) (decoder, bool) {
	v, ok := d.tree[key]
	if !ok {
		return decoder{}, false
	}
	sub, isTable := v.(map[string]any)
	if !isTable {
		d.warn(key, "expected a table, got %s", typeName(v))
		return decoder{}, false
	}
	return decoder{tree: sub, prefix: d.path(key), warnings: d.warnings}, true
}

func (d decoder) requiredString(key string) string {
	if _, ok := d.tree[key]; !ok {
		d.warn(key, "required field is missing")
		return ""
	}
	return d.optionalString(key)
}

func (d decoder) optionalString(key string) string {
	v, ok := d.tree[key]
	if !ok {
		return ""
	}
	s, isString := v.(string)
	if !isString {
		d.warn(key, "expected a string, got %s", typeName(v))
		return ""
	}
	return strings.TrimSpace(s)
}

func (d decoder) requiredBool(key string) bool {
	if _, ok := d.tree[key]; !ok {
		d.warn(key, "required field is missing; defaulting to false")
		return false
	}
	return d.optionalBool(key)
}

func (d decoder) optionalBool(key string) bool {
	v, ok := d.tree[key]
	if !ok {
		return false
	}
	b, isBool := v.(bool)
	if !isBool {
		d.warn(key, "expected a boolean, got %s; defaulting to false", typeName(v))
		return false
	}
	return b
}

// date accepts a string or a TOML date and renders dates as YYYY-MM-DD.
func (d decoder) date(key string) string {
	v, ok := d.tree[key]
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case toml.LocalDate:
		return t.String()
	case toml.LocalDateTime:
		return t.LocalDate.String()
	case time.Time:
		return t.Format(time.DateOnly)
	default:
		d.warn(key, "expected a date or string, got %s", typeName(v))
		return ""
	}
}

func (d decoder) enum(key string, allowed []string) string {
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

// stringList returns a list of strings. Non-string items are dropped with a
// warning. When allowed is non-empty, items outside it are dropped too.
func (d decoder) stringList(key string, allowed []string) []string {
	v, ok := d.tree[key]
	if !ok {
		return nil
	}
	items, isList := v.([]any)
	if !isList {
		d.warn(key, "expected a list of strings, got %s", typeName(v))
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, isString := item.(string)
		if !isString {
			d.warn(key, "non-string item %v dropped", item)
			continue
		}
		s = strings.TrimSpace(s)
		if len(allowed) > 0 {
			s = strings.ToLower(s)
			if !slices.Contains(allowed, s) {
				d.warn(key, "unknown value %q dropped", s)
				continue
			}
		}
		if s != "" && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

// count returns a non-negative integer or nil when absent or unusable.
func (d decoder) count(key string) *int64 {
	v, ok := d.tree[key]
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case int64:
		if n < 0 {
			d.warn(key, "negative value %d ignored", n)
			return nil
		}
		return &n
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			d.warn(key, "non-finite value ignored")
			return nil
		}
		d.warn(key, "expected an integer, got %v", n)
		return nil
	default:
		d.warn(key, "expected an integer, got %s", typeName(v))
		return nil
	}
}

// amount returns a finite non-negative number or nil when absent or unusable.
func (d decoder) amount(key string) *float64 {
	v, ok := d.tree[key]
	if !ok {
		return nil
	}
	var f float64
	switch n := v.(type) {
	case int64:
		f = float64(n)
	case float64:
		f = n
	default:
		d.warn(key, "expected a number, got %s", typeName(v))
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		d.warn(key, "non-finite value ignored")
		return nil
	}
	if f < 0 {
		d.warn(key, "negative value %v ignored", f)
		return nil
	}
	return &f
}

func typeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case int64:
		return "integer"
	case float64:
		return "float"
	case []any:
		return "array"
	case map[string]any:
		return "table"
	case toml.LocalDate, toml.LocalDateTime, toml.LocalTime, time.Time:
		return "datetime"
	default:
		return fmt.Sprintf("%T", v)
	}
}
