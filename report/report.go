// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package report carries the per-run counters and warnings of a catalog
// pipeline as an explicit value instead of process-wide state.
package report

import (
	"fmt"
	"log/slog"
)

// FieldWarning describes a recoverable problem with one metadata field.
type FieldWarning struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// String renders the warning as "field: message".
func (w FieldWarning) String() string {
	if w.Field == "" {
		return w.Message
	}
	return fmt.Sprintf("%s: %s", w.Field, w.Message)
}

// Warning is a recorded diagnostic attached to a unit or a path.
type Warning struct {
	Unit    string `json:"unit,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	// Counted is true when the warning also incremented the error counter.
	Counted bool `json:"counted"`
}

// Stats are the run totals printed in the summary.
type Stats struct {
	Processed int `json:"processed"`
	Packaged  int `json:"packaged"`
	Warnings  int `json:"warnings"`
	Errors    int `json:"errors"`
}

// Report accumulates diagnostics for a single pipeline run.
// It is not safe for concurrent use; each pipeline owns its own Report.
type Report struct {
	logger   *slog.Logger
	stats    Stats
	warnings []Warning
}

// New creates a Report that mirrors every diagnostic to logger.
// A nil logger discards log output.
func New(logger *slog.Logger) *Report {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Report{logger: logger}
}

// FieldDefects records each field warning as an input defect on unit: a
// warning that also counts as an error.
func (r *Report) FieldDefects(unit string, warnings []FieldWarning) {
	for _, w := range warnings {
		r.record(unit, w.Field, w.Message, true)
	}
}

// Warn records a resource problem that was recovered without data loss
// for the run, such as an unreadable directory treated as empty.
func (r *Report) Warn(unit, format string, args ...any) {
	r.record(unit, "", fmt.Sprintf(format, args...), false)
}

// Fail records a resource failure that lost output for a unit.
func (r *Report) Fail(unit string, err error) {
	r.record(unit, "", err.Error(), true)
}

// Processed increments the processed-unit counter.
func (r *Report) Processed() {
	r.stats.Processed++
}

// Packaged increments the packaged-archive counter.
func (r *Report) Packaged() {
	r.stats.Packaged++
}

// Stats returns a snapshot of the counters.
func (r *Report) Stats() Stats {
	return r.stats
}

// Warnings returns the recorded warnings in the order they occurred.
func (r *Report) Warnings() []Warning {
	out := make([]Warning, len(r.warnings))
	copy(out, r.warnings)
	return out
}

func (r *Report) record(unit, field, msg string, counted bool) {
	r.stats.Warnings++
	if counted {
		r.stats.Errors++
	}
	r.warnings = append(r.warnings, Warning{
		Unit:    unit,
		Field:   field,
		Message: msg,
		Counted: counted,
	})

	attrs := []any{"counted", counted}
	if unit != "" {
		attrs = append(attrs, "unit", unit)
	}
	if field != "" {
		attrs = append(attrs, "field", field)
	}
	r.logger.Warn(msg, attrs...)
}
