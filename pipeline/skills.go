// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/stacklok/toolhive-catalog/archive"
	"github.com/stacklok/toolhive-catalog/catalog"
	"github.com/stacklok/toolhive-catalog/corpus"
	"github.com/stacklok/toolhive-catalog/oci/layout"
	"github.com/stacklok/toolhive-catalog/report"
	"github.com/stacklok/toolhive-catalog/skills"
	"github.com/stacklok/toolhive-catalog/validation/identity"
)

// RunSkills builds the skills catalog and one archive per skill.
func RunSkills(ctx context.Context, opts Options) (Result, error) {
	log := opts.logger(CorpusSkills)
	rep := report.New(log)
	l := opts.Layout

	groups, err := corpus.Groups(l.SkillsRoot, rep)
	if err != nil {
		return newResult(CorpusSkills, rep), err
	}

	b := skillBuilder{
		opts:     opts,
		rep:      rep,
		catalog:  catalog.NewSkillCatalog(),
		packager: archive.NewPackager(l.DownloadsDir, opts.ArchiveEpoch),
	}
	if l.OCILayout != "" {
		pub, err := layout.NewPublisher(l.OCILayout, archive.ClampEpoch(opts.ArchiveEpoch))
		if err != nil {
			rep.Fail("", fmt.Errorf("opening OCI layout: %w", err))
		} else {
			b.publisher = pub
		}
	}

	for _, g := range groups {
		if err := b.addCategory(ctx, g); err != nil {
			return newResult(CorpusSkills, rep), err
		}
	}

	internal := b.catalog.Build(opts.meta())
	public := catalog.PublicSkills(internal, opts.Selector.Keep(func(u catalog.UnitView, err error) {
		rep.Fail(u.ID, err)
	}))

	res := newResult(CorpusSkills, rep)
	err = writeOutputs(&res, l, []outputFile{
		{path: l.SkillsManifest, value: public},
		{path: l.SkillsSchema, value: catalog.SkillsSchema()},
		{path: l.SkillsInternal, value: internal, internal: true},
	})
	if err != nil {
		return res, err
	}

	log.Info("skills catalog written",
		"skills", public.TotalSkills,
		"categories", public.TotalCategories,
		"internal_skills", internal.TotalSkills,
	)
	return res, nil
}

type skillBuilder struct {
	opts      Options
	rep       *report.Report
	catalog   *catalog.SkillCatalog
	packager  *archive.Packager
	publisher *layout.Publisher
}

func (b *skillBuilder) addCategory(ctx context.Context, g corpus.Entry) error {
	slug, err := b.catalog.AddCategory(g.Name)
	if err != nil {
		b.rep.Fail(g.Name, err)
		return nil
	}

	for _, u := range corpus.SkillUnits(g.Path, b.rep) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.addSkill(ctx, slug, u); err != nil {
			return err
		}
	}
	return nil
}

// addSkill processes one skill folder. Only fatal errors are returned.
func (b *skillBuilder) addSkill(ctx context.Context, slug string, u corpus.Entry) error {
	id := u.Name
	b.rep.Processed()

	if err := identity.ValidateSegment(id); err != nil {
		b.rep.Fail(id, err)
		return nil
	}

	// Claim before packaging so a duplicate never overwrites the first archive.
	if err := b.catalog.Claim(id); err != nil {
		b.rep.Fail(id, err)
		return nil
	}

	raw, err := os.ReadFile(filepath.Join(u.Path, corpus.SkillFile)) //#nosec G304 -- path is inside the corpus walk
	if err != nil {
		b.rep.Fail(id, fmt.Errorf("reading %s: %w", corpus.SkillFile, err))
		return nil
	}

	s, warnings := skills.Parse(id, raw)
	b.rep.FieldDefects(id, warnings)
	s.Category = slug
	s.SourcePath = relPath(b.opts.Layout.SkillsRoot, u.Path)
	s.DownloadURL = b.opts.Layout.DownloadsPath + "/" + url.PathEscape(id+archive.Extension)

	res, err := b.packager.Package(ctx, u.Path, id)
	switch {
	case err != nil && isFatal(ctx, err):
		return err
	case err != nil:
		b.rep.Fail(id, fmt.Errorf("packaging: %w", err))
	default:
		b.rep.Packaged()
		s.SizeBytes = res.Size
		s.FileCount = res.FileCount
		s.Digest = res.Digest.String()
		b.mirror(ctx, s, res.Path)
	}

	if err := b.catalog.Add(s); err != nil {
		b.rep.Fail(id, err)
	}
	return nil
}

func (b *skillBuilder) mirror(ctx context.Context, s catalog.Skill, archivePath string) {
	if b.publisher == nil {
		return
	}
	if _, err := b.publisher.Publish(ctx, s, archivePath); err != nil {
		b.rep.Fail(s.ID, fmt.Errorf("mirroring to OCI layout: %w", err))
	}
}

// relPath returns target relative to root with forward slashes, or target
// unchanged when it is not below root.
func relPath(root, target string) string {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}
