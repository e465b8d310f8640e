// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/stacklok/toolhive-catalog/catalog"
	"github.com/stacklok/toolhive-catalog/corpus"
	"github.com/stacklok/toolhive-catalog/definitions"
	"github.com/stacklok/toolhive-catalog/report"
	"github.com/stacklok/toolhive-catalog/validation/identity"
)

// RunDefinitions builds the models catalog from the provider corpus.
func RunDefinitions(ctx context.Context, opts Options) (Result, error) {
	log := opts.logger(CorpusDefinitions)
	rep := report.New(log)
	l := opts.Layout

	groups, err := corpus.Groups(l.DefinitionsRoot, rep)
	if err != nil {
		return newResult(CorpusDefinitions, rep), err
	}

	cat := catalog.NewModelCatalog()
	for _, g := range groups {
		if err := ctx.Err(); err != nil {
			return newResult(CorpusDefinitions, rep), err
		}
		addProvider(ctx, rep, cat, l.DefinitionsRoot, g)
	}
	if err := ctx.Err(); err != nil {
		return newResult(CorpusDefinitions, rep), err
	}

	internal := cat.Build(opts.meta())
	public := catalog.PublicModels(internal, opts.Selector.Keep(func(u catalog.UnitView, err error) {
		rep.Fail(u.ID, err)
	}))

	res := newResult(CorpusDefinitions, rep)
	err = writeOutputs(&res, l, []outputFile{
		{path: l.ModelsManifest, value: public},
		{path: l.ModelsSchema, value: catalog.ModelsSchema()},
		{path: l.ModelsInternal, value: internal, internal: true},
	})
	if err != nil {
		return res, err
	}

	log.Info("models catalog written",
		"models", public.TotalModels,
		"providers", public.TotalProviders,
		"internal_models", internal.TotalModels,
	)
	return res, nil
}

func addProvider(ctx context.Context, rep *report.Report, cat *catalog.ModelCatalog, root string, g corpus.Entry) {
	if err := identity.ValidateSegment(g.Name); err != nil {
		rep.Fail(g.Name, err)
		return
	}

	p := readProvider(rep, g)
	groupRel := relPath(root, g.Path)
	p.SourcePath = groupRel

	slug, err := cat.AddProvider(p)
	if err != nil {
		rep.Fail(g.Name, err)
		return
	}

	for _, rel := range corpus.ModelFiles(g.Path, rep) {
		if ctx.Err() != nil {
			return
		}
		rep.Processed()
		id := corpus.ModelID(g.Name, rel)

		if err := identity.ValidatePath(id); err != nil {
			rep.Fail(id, err)
			continue
		}

		if err := cat.Claim(id); err != nil {
			rep.Fail(id, err)
			continue
		}

		file := filepath.Join(g.Path, corpus.ModelsDir, filepath.FromSlash(rel))
		raw, err := os.ReadFile(file) //#nosec G304 -- path is inside the corpus walk
		if err != nil {
			rep.Fail(id, fmt.Errorf("reading model file: %w", err))
			continue
		}

		m, warnings := definitions.ParseModel(id, slug, raw)
		rep.FieldDefects(id, warnings)
		m.SourcePath = path.Join(groupRel, corpus.ModelsDir, rel)

		if err := cat.Add(m); err != nil {
			rep.Fail(id, err)
		}
	}
}

// readProvider loads provider.toml. A missing file falls back to the folder
// name without counting an error.
func readProvider(rep *report.Report, g corpus.Entry) catalog.Provider {
	fallback := catalog.Provider{ID: g.Name, Name: g.Name}

	raw, err := os.ReadFile(filepath.Join(g.Path, definitions.ProviderFile)) //#nosec G304 -- path is inside the corpus walk
	switch {
	case errors.Is(err, fs.ErrNotExist):
		rep.Warn(g.Name, "missing %s; using folder name", definitions.ProviderFile)
		return fallback
	case err != nil:
		rep.Fail(g.Name, fmt.Errorf("reading %s: %w", definitions.ProviderFile, err))
		return fallback
	}

	p, warnings := definitions.ParseProvider(g.Name, raw)
	rep.FieldDefects(g.Name, warnings)
	return p
}
