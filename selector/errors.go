// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package selector

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
)

// Sentinel errors for visibility rules.
var (
	// ErrExpressionCheck is returned when a rule fails syntax or type checking.
	ErrExpressionCheck = errors.New("public filter check failed")

	// ErrEvaluation is returned when a rule fails to evaluate for a unit.
	ErrEvaluation = errors.New("public filter evaluation failed")
)

// ErrKind identifies the compilation stage that rejected a rule.
type ErrKind string

const (
	// ErrKindParse indicates a syntax error in the rule.
	ErrKindParse ErrKind = "parse"
	// ErrKindCheck indicates a type checking error in the rule.
	ErrKindCheck ErrKind = "check"
)

// ErrInstance represents one occurrence of an error in a rule.
type ErrInstance struct {
	Line int    `json:"line,omitempty"`
	Col  int    `json:"col,omitempty"`
	Msg  string `json:"msg,omitempty"`
}

// CompileError reports why a rule was rejected, with source locations.
type CompileError struct {
	Kind   ErrKind       `json:"kind"`
	Source string        `json:"source,omitempty"`
	Errors []ErrInstance `json:"errors,omitempty"`
	cause  error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("CEL %s error in expression %q: %s", e.Kind, e.Source, e.cause)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.cause
}

func newCompileError(kind ErrKind, source string, issues *cel.Issues) error {
	ce := &CompileError{
		Kind:   kind,
		Source: source,
		Errors: make([]ErrInstance, 0, len(issues.Errors())),
		cause:  fmt.Errorf("%w: %w", ErrExpressionCheck, issues.Err()),
	}
	for _, err := range issues.Errors() {
		ce.Errors = append(ce.Errors, ErrInstance{
			Line: err.Location.Line(),
			Col:  err.Location.Column(),
			Msg:  err.Message,
		})
	}
	return ce
}
