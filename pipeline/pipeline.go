// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/stacklok/toolhive-catalog/catalog"
	"github.com/stacklok/toolhive-catalog/config"
	"github.com/stacklok/toolhive-catalog/corpus"
	"github.com/stacklok/toolhive-catalog/output"
	"github.com/stacklok/toolhive-catalog/report"
	"github.com/stacklok/toolhive-catalog/selector"
)

// Corpus names used in logs and summaries.
const (
	CorpusSkills      = "skills"
	CorpusDefinitions = "definitions"
)

// Options configures a build.
type Options struct {
	Layout  config.Layout
	BaseURL string

	// GeneratedAt is stamped on every manifest.
	GeneratedAt time.Time
	// ArchiveEpoch is the modification time of every archive member. The
	// zero value means 1980-01-01, the earliest time zip can store.
	ArchiveEpoch time.Time

	// Selector hides units from the public editions. Nil keeps every unit.
	Selector *selector.Selector

	// Only restricts RunAll to one pipeline: config.OnlySkills or
	// config.OnlyDefinitions. Empty runs both.
	Only string

	// RunID tags every log record. RunAll generates one when empty.
	RunID string

	Logger *slog.Logger
}

func (o Options) logger(corpusName string) *slog.Logger {
	l := o.Logger
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	if o.RunID != "" {
		l = l.With("run_id", o.RunID)
	}
	return l.With("corpus", corpusName)
}

func (o Options) meta() catalog.Meta {
	return catalog.Meta{GeneratedAt: o.GeneratedAt, BaseURL: o.BaseURL}
}

// Result summarizes one pipeline run.
type Result struct {
	Corpus   string
	Stats    report.Stats
	Warnings []report.Warning
	// Outputs are the absolute paths of the files written, in write order.
	Outputs []string
}

func newResult(corpusName string, rep *report.Report) Result {
	return Result{Corpus: corpusName, Stats: rep.Stats(), Warnings: rep.Warnings()}
}

// RunAll checks the corpus roots, then runs the selected pipelines
// concurrently. A fatal error in one pipeline does not stop the other; all
// fatal errors are returned together. Results are ordered skills first.
func RunAll(ctx context.Context, opts Options) ([]Result, error) {
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}

	var runs []func(context.Context, Options) (Result, error)
	var roots []string
	if opts.Only == "" || opts.Only == config.OnlySkills {
		runs = append(runs, RunSkills)
		roots = append(roots, opts.Layout.SkillsRoot)
	}
	if opts.Only == "" || opts.Only == config.OnlyDefinitions {
		runs = append(runs, RunDefinitions)
		roots = append(roots, opts.Layout.DefinitionsRoot)
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("unknown pipeline %q", opts.Only)
	}

	for _, root := range roots {
		if err := corpus.CheckRoot(root); err != nil {
			return nil, err
		}
	}

	results := make([]Result, len(runs))
	errs := make([]error, len(runs))
	var g errgroup.Group
	for i, run := range runs {
		g.Go(func() error {
			results[i], errs[i] = run(ctx, opts)
			return nil
		})
	}
	_ = g.Wait()

	var merr *multierror.Error
	for _, err := range errs {
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	return results, merr.ErrorOrNil()
}

// isFatal reports whether err must end the pipeline instead of being
// recorded against a single unit.
func isFatal(ctx context.Context, err error) bool {
	var boundary *output.BoundaryError
	return errors.As(err, &boundary) || ctx.Err() != nil
}

// writeOutputs writes the public manifest, its schema and the internal
// catalog, each checked against its directory.
func writeOutputs(res *Result, l config.Layout, files []outputFile) error {
	for _, f := range files {
		dir := l.PublicDir
		if f.internal {
			dir = l.InternalDir
		}
		written, err := output.WriteJSON(dir, f.path, f.value)
		if err != nil {
			return fmt.Errorf("writing %s: %w", filepath.Base(f.path), err)
		}
		res.Outputs = append(res.Outputs, written)
	}
	return nil
}

type outputFile struct {
	path     string
	value    any
	internal bool
}
