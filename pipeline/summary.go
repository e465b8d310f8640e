// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/stacklok/toolhive-catalog/report"
)

// PrintSummary writes one block per pipeline result with its counters and
// the files it produced, followed by a total line when there are several.
// Color follows the color package's NoColor switch.
func PrintSummary(w io.Writer, results []Result) {
	header := color.New(color.Bold)
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()

	for i, r := range results {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = header.Fprintf(w, "%s\n", r.Corpus)
		_, _ = fmt.Fprintf(w, "  processed: %s\n", cyan(r.Stats.Processed))
		if r.Corpus == CorpusSkills {
			_, _ = fmt.Fprintf(w, "  packaged:  %s\n", green(r.Stats.Packaged))
		}

		warnings := fmt.Sprint(r.Stats.Warnings)
		if r.Stats.Warnings > 0 {
			warnings = yellow(r.Stats.Warnings)
		}
		_, _ = fmt.Fprintf(w, "  warnings:  %s\n", warnings)

		errs := fmt.Sprint(r.Stats.Errors)
		if r.Stats.Errors > 0 {
			errs = red(r.Stats.Errors)
		}
		_, _ = fmt.Fprintf(w, "  errors:    %s\n", errs)

		for _, out := range r.Outputs {
			_, _ = fmt.Fprintf(w, "  wrote %s\n", out)
		}
	}

	if len(results) > 1 {
		t := TotalStats(results)
		_, _ = header.Fprintf(w, "\ntotal: processed %d, packaged %d, warnings %d, errors %d\n",
			t.Processed, t.Packaged, t.Warnings, t.Errors)
	}
}

// HasErrors reports whether any result counted an error.
func HasErrors(results []Result) bool {
	for _, r := range results {
		if r.Stats.Errors > 0 {
			return true
		}
	}
	return false
}

// TotalStats sums the counters of every result.
func TotalStats(results []Result) report.Stats {
	var total report.Stats
	for _, r := range results {
		total.Processed += r.Stats.Processed
		total.Packaged += r.Stats.Packaged
		total.Warnings += r.Stats.Warnings
		total.Errors += r.Stats.Errors
	}
	return total
}
