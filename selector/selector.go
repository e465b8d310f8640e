// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package selector compiles the public visibility rule, a CEL expression
// over the variable unit, into a catalog.KeepFunc.
//
// The unit variable is a map with the keys id, name, group, status (strings)
// and tags (list of strings). For example:
//
//	unit.status != "deprecated" && !("internal" in unit.tags)
//
// A rule that does not compile is a configuration error. A rule that fails
// for a particular unit hides that unit from the public edition.
package selector

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/stacklok/toolhive-catalog/catalog"
)

const (
	// MaxExpressionLength is the maximum allowed length of a rule.
	MaxExpressionLength = 4096

	// CostLimit is the runtime cost limit for evaluating a rule once.
	CostLimit = 100000
)

// Selector is a compiled visibility rule. The zero value and a nil *Selector
// keep every unit. It is safe for concurrent use.
type Selector struct {
	source  string
	program cel.Program
}

// Compile parses and type-checks expr, which must evaluate to a boolean.
// An empty or blank expr yields a Selector that keeps every unit.
func Compile(expr string) (*Selector, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return &Selector{}, nil
	}
	if len(expr) > MaxExpressionLength {
		return nil, fmt.Errorf("%w: expression length %d exceeds maximum of %d",
			ErrExpressionCheck, len(expr), MaxExpressionLength)
	}

	env, err := cel.NewEnv(cel.Variable("unit", cel.MapType(cel.StringType, cel.DynType)))
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	parsed, issues := env.Parse(expr)
	if issues.Err() != nil {
		return nil, newCompileError(ErrKindParse, expr, issues)
	}
	checked, issues := env.Check(parsed)
	if issues.Err() != nil {
		return nil, newCompileError(ErrKindCheck, expr, issues)
	}
	if !reflect.DeepEqual(checked.OutputType(), cel.BoolType) {
		return nil, fmt.Errorf("%w: expression %q must evaluate to bool, got %s",
			ErrExpressionCheck, expr, checked.OutputType())
	}

	program, err := env.Program(checked, cel.CostLimit(CostLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program for %q: %w", expr, err)
	}
	return &Selector{source: expr, program: program}, nil
}

// Source returns the rule as compiled.
func (s *Selector) Source() string {
	if s == nil {
		return ""
	}
	return s.source
}

// Match evaluates the rule for u.
func (s *Selector) Match(u catalog.UnitView) (bool, error) {
	if s == nil || s.program == nil {
		return true, nil
	}

	out, _, err := s.program.Eval(map[string]any{"unit": activation(u)})
	if err != nil {
		return false, fmt.Errorf("%w for %s: %s", ErrEvaluation, u.ID, err)
	}
	keep, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w for %s: expected bool, got %T", ErrEvaluation, u.ID, out.Value())
	}
	return keep, nil
}

// Keep adapts the selector to a catalog.KeepFunc. Units whose evaluation
// fails are hidden and reported to onError when it is not nil.
func (s *Selector) Keep(onError func(catalog.UnitView, error)) catalog.KeepFunc {
	if s == nil || s.program == nil {
		return nil
	}
	return func(u catalog.UnitView) bool {
		keep, err := s.Match(u)
		if err != nil {
			if onError != nil {
				onError(u, err)
			}
			return false
		}
		return keep
	}
}

func activation(u catalog.UnitView) map[string]any {
	tags := u.Tags
	if tags == nil {
		tags = []string{}
	}
	return map[string]any{
		"id":     u.ID,
		"name":   u.Name,
		"group":  u.Group,
		"status": u.Status,
		"tags":   tags,
	}
}
