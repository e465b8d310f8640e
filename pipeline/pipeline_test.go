// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/toolhive-catalog/catalog"
	"github.com/stacklok/toolhive-catalog/config"
	"github.com/stacklok/toolhive-catalog/corpus"
	"github.com/stacklok/toolhive-catalog/oci/layout"
	"github.com/stacklok/toolhive-catalog/output"
	"github.com/stacklok/toolhive-catalog/report"
	"github.com/stacklok/toolhive-catalog/selector"
)

var testGeneratedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
}

func testLayout(t *testing.T) config.Layout {
	t.Helper()
	root := t.TempDir()
	cfg := config.Config{
		Root:        root,
		BaseURL:     "https://example.com",
		PublicDir:   filepath.Join(root, "public"),
		InternalDir: filepath.Join(root, "internal"),
		Skills:      config.SkillsConfig{Source: "skills", DownloadsPath: "/downloads/skills"},
		Definitions: config.DefinitionsConfig{Source: "providers"},
	}
	return cfg.Layout()
}

func testOptions(l config.Layout) Options {
	return Options{
		Layout:      l,
		BaseURL:     "https://example.com",
		GeneratedAt: testGeneratedAt,
		RunID:       "test-run",
	}
}

func skillDoc(name, description string, extra ...string) string {
	lines := []string{"---", "name: " + name, "description: " + description}
	lines = append(lines, extra...)
	lines = append(lines, "---", "", "# "+name, "")
	return strings.Join(lines, "\n")
}

func readJSON[T any](t *testing.T, path string) T {
	t.Helper()
	data, err := os.ReadFile(path) //#nosec G304 -- test fixture path
	require.NoError(t, err)
	var v T
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}

const gpt4o = `
name = "GPT-4o"
family = "gpt"
attachment = true
reasoning = false
tool_call = true
temperature = true
release_date = 2024-05-13

[modalities]
input = ["text", "image"]
output = ["text"]

[limit]
context = 128000
output = 16384

[cost]
input = 2.5
output = 10
cache_read = 1.25
`

const gpt4oMini = `
name = "GPT-4o mini"
attachment = true
reasoning = false
`

func TestRunDefinitions(t *testing.T) {
	t.Parallel()

	l := testLayout(t)
	writeTree(t, l.DefinitionsRoot, map[string]string{
		"openai/provider.toml":         "name = \"OpenAI\"\ndoc = \"https://platform.openai.com/docs\"\nenv = [\"OPENAI_API_KEY\"]\n",
		"openai/models/gpt-4o.toml":    gpt4o,
		"openai/models/mini.toml":      gpt4oMini,
		"openai/models/notes.md":       "not a model",
		"openai/.cache/models/x.toml":  gpt4o,
		".hidden/provider.toml":        "name = \"Hidden\"\n",
		".hidden/models/secret.toml":   gpt4o,
		"empty/provider.toml":          "name = \"Empty\"\n",
		"empty/models/README.md":       "nothing here",
		"openai/models/nested/o1.json": "{}",
	})

	res, err := RunDefinitions(context.Background(), testOptions(l))
	require.NoError(t, err)

	assert.Equal(t, CorpusDefinitions, res.Corpus)
	assert.Equal(t, 2, res.Stats.Processed)
	assert.Equal(t, 0, res.Stats.Packaged)
	assert.Equal(t, 1, res.Stats.Errors, "missing tool_call is a single defect")
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "openai/mini", res.Warnings[0].Unit)
	assert.Equal(t, "tool_call", res.Warnings[0].Field)
	assert.Equal(t, []string{l.ModelsManifest, l.ModelsSchema, l.ModelsInternal}, res.Outputs)

	public := readJSON[catalog.PublicModelManifest](t, l.ModelsManifest)
	assert.Equal(t, catalog.FormatVersion, public.Version)
	assert.Equal(t, "2026-03-01T12:00:00Z", public.GeneratedAt)
	assert.Equal(t, 1, public.TotalProviders)
	assert.Equal(t, 2, public.TotalModels)
	require.Len(t, public.Providers, 1)

	p := public.Providers[0]
	assert.Equal(t, "OpenAI", p.Name)
	assert.Equal(t, "openai", p.Slug)
	assert.Equal(t, 2, p.ModelCount)
	require.Len(t, p.Models, 2)

	full, mini := p.Models[0], p.Models[1]
	assert.Equal(t, "openai/gpt-4o", full.ID)
	assert.True(t, full.ToolCall)
	assert.Equal(t, "2024-05-13", full.ReleaseDate)
	require.NotNil(t, full.Cost)
	assert.InDelta(t, 2.5, *full.Cost.Input, 1e-9)
	require.NotNil(t, full.Limit)
	assert.Equal(t, int64(128000), *full.Limit.Context)

	assert.Equal(t, "openai/mini", mini.ID)
	assert.Equal(t, "GPT-4o mini", mini.Name)
	assert.False(t, mini.ToolCall)
	assert.Nil(t, mini.Cost)
	assert.Nil(t, mini.Modalities)

	internal := readJSON[catalog.ModelManifest](t, l.ModelsInternal)
	require.Len(t, internal.Providers, 1)
	assert.Equal(t, []string{"OPENAI_API_KEY"}, internal.Providers[0].Env)
	assert.Equal(t, "openai/models/gpt-4o.toml", internal.Providers[0].Models[0].SourcePath)
	require.NotNil(t, internal.Providers[0].Models[0].Cost.CacheRead)

	raw, err := os.ReadFile(l.ModelsManifest)
	require.NoError(t, err)
	require.NoError(t, catalog.ValidateModelsBytes(raw))
	assert.NotContains(t, string(raw), "cache_read")
	assert.NotContains(t, string(raw), "source_path")
}

func TestRunDefinitions_MissingProviderFile(t *testing.T) {
	t.Parallel()

	l := testLayout(t)
	writeTree(t, l.DefinitionsRoot, map[string]string{
		"acme/models/rocket.toml": "name = \"Rocket\"\nattachment = false\nreasoning = true\ntool_call = true\n",
	})

	res, err := RunDefinitions(context.Background(), testOptions(l))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Stats.Errors)
	assert.Equal(t, 1, res.Stats.Warnings)
	require.Len(t, res.Warnings, 1)
	assert.False(t, res.Warnings[0].Counted)
	assert.Contains(t, res.Warnings[0].Message, "provider.toml")

	public := readJSON[catalog.PublicModelManifest](t, l.ModelsManifest)
	require.Len(t, public.Providers, 1)
	assert.Equal(t, "acme", public.Providers[0].Name)
	assert.Equal(t, "acme", public.Providers[0].Slug)
}

func TestRunDefinitions_MalformedModel(t *testing.T) {
	t.Parallel()

	l := testLayout(t)
	writeTree(t, l.DefinitionsRoot, map[string]string{
		"acme/provider.toml":      "name = \"Acme\"\n",
		"acme/models/broken.toml": "name = \"Broken\nattachment = ",
	})

	res, err := RunDefinitions(context.Background(), testOptions(l))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.Errors)

	public := readJSON[catalog.PublicModelManifest](t, l.ModelsManifest)
	require.Len(t, public.Providers, 1)
	require.Len(t, public.Providers[0].Models, 1)
	assert.Equal(t, "acme/broken", public.Providers[0].Models[0].Name)
}

func TestRunDefinitions_Deterministic(t *testing.T) {
	t.Parallel()

	l := testLayout(t)
	writeTree(t, l.DefinitionsRoot, map[string]string{
		"openai/provider.toml":      "name = \"OpenAI\"\ndoc = \"https://platform.openai.com/docs\"\n",
		"openai/models/gpt-4o.toml": gpt4o,
		"openai/models/mini.toml":   gpt4oMini,
		"mistral/provider.toml":     "name = \"Mistral\"\n",
		"mistral/models/large.toml": gpt4o,
	})
	opts := testOptions(l)

	_, err := RunDefinitions(context.Background(), opts)
	require.NoError(t, err)
	first := snapshot(t, l.PublicDir, l.InternalDir)
	require.Len(t, first, 3)

	later := time.Now().Add(time.Hour)
	require.NoError(t, filepath.WalkDir(l.DefinitionsRoot, func(p string, _ fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		return os.Chtimes(p, later, later)
	}))

	_, err = RunDefinitions(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, first, snapshot(t, l.PublicDir, l.InternalDir))
}

func skillsCorpus(t *testing.T, l config.Layout) {
	t.Helper()
	writeTree(t, l.SkillsRoot, map[string]string{
		"Data Science/pdf/SKILL.md":          skillDoc("PDF Tools", "Extract text from PDF files.", "tags: [pdf, extract]", "status: stable"),
		"Data Science/pdf/scripts/run.py":    "print('hi')\n",
		"Data Science/pdf/.git/HEAD":         "ref: refs/heads/main\n",
		"Data Science/csv/SKILL.md":          skillDoc("CSV Helper", "Work with CSV files.", "status: deprecated"),
		"devTools/lint/SKILL.md":             skillDoc("Linter", "Lint all the things."),
		"devTools/no-manifest/README.md":     "not a skill",
		".archive/old/SKILL.md":              skillDoc("Old", "Excluded."),
		"Empty Category/placeholder/note.md": "nothing",
	})
}

func TestRunSkills(t *testing.T) {
	t.Parallel()

	l := testLayout(t)
	skillsCorpus(t, l)

	res, err := RunSkills(context.Background(), testOptions(l))
	require.NoError(t, err)

	assert.Equal(t, report.Stats{Processed: 3, Packaged: 3}, res.Stats)
	assert.Equal(t, []string{l.SkillsManifest, l.SkillsSchema, l.SkillsInternal}, res.Outputs)

	public := readJSON[catalog.PublicSkillManifest](t, l.SkillsManifest)
	assert.Equal(t, "https://example.com", public.BaseURL)
	assert.Equal(t, 3, public.TotalSkills)
	assert.Equal(t, 2, public.TotalCategories)
	require.Len(t, public.Categories, 2)

	ds, dev := public.Categories[0], public.Categories[1]
	assert.Equal(t, "Data Science", ds.Name)
	assert.Equal(t, "data-science", ds.Slug)
	assert.Equal(t, "devTools", dev.Name)
	assert.Equal(t, "dev-tools", dev.Slug)

	require.Len(t, ds.Skills, 2)
	assert.Equal(t, "CSV Helper", ds.Skills[0].Name)
	pdf := ds.Skills[1]
	assert.Equal(t, "pdf", pdf.ID)
	assert.Equal(t, "data-science", pdf.Category)
	assert.Equal(t, "/downloads/skills/pdf.zip", pdf.DownloadURL)
	assert.Equal(t, 2, pdf.FileCount)
	assert.Equal(t, []string{"pdf", "extract"}, pdf.Tags)

	zipPath := filepath.Join(l.DownloadsDir, "pdf.zip")
	info, err := os.Stat(zipPath)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), pdf.SizeBytes)
	assert.Equal(t, []string{"pdf/SKILL.md", "pdf/scripts/run.py"}, zipNames(t, zipPath))

	internal := readJSON[catalog.SkillManifest](t, l.SkillsInternal)
	ipdf := internal.Categories[0].Skills[1]
	assert.Equal(t, "Data Science/pdf", ipdf.SourcePath)
	assert.True(t, strings.HasPrefix(ipdf.Digest, "sha256:"))

	raw, err := os.ReadFile(l.SkillsManifest)
	require.NoError(t, err)
	require.NoError(t, catalog.ValidateSkillsBytes(raw))
	assert.NotContains(t, string(raw), "digest")
	assert.NotContains(t, string(raw), "source_path")
}

func TestRunSkills_DuplicateIdentity(t *testing.T) {
	t.Parallel()

	l := testLayout(t)
	writeTree(t, l.SkillsRoot, map[string]string{
		"alpha/dup/SKILL.md": skillDoc("First", "The first one."),
		"beta/DUP/SKILL.md":  skillDoc("Second", "The second one."),
	})

	res, err := RunSkills(context.Background(), testOptions(l))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Stats.Processed)
	assert.Equal(t, 1, res.Stats.Packaged)
	assert.Equal(t, 1, res.Stats.Errors)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "DUP", res.Warnings[0].Unit)

	public := readJSON[catalog.PublicSkillManifest](t, l.SkillsManifest)
	require.Len(t, public.Categories, 1)
	assert.Equal(t, "alpha", public.Categories[0].Slug)

	zr, err := zip.OpenReader(filepath.Join(l.DownloadsDir, "dup.zip"))
	require.NoError(t, err)
	defer func() { _ = zr.Close() }()
	require.Len(t, zr.File, 1)
	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Contains(t, string(body), "First")

	_, err = os.Stat(filepath.Join(l.DownloadsDir, "DUP.zip"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRunSkills_InvalidIdentity(t *testing.T) {
	t.Parallel()

	l := testLayout(t)
	writeTree(t, l.SkillsRoot, map[string]string{
		"misc/ok/SKILL.md":        skillDoc("OK", "Fine."),
		"misc/trailing /SKILL.md": skillDoc("Trailing", "Space after the name."),
		"misc/tab\there/SKILL.md": skillDoc("Tab", "Control character."),
	})

	res, err := RunSkills(context.Background(), testOptions(l))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Stats.Processed)
	assert.Equal(t, 1, res.Stats.Packaged)
	assert.Equal(t, 2, res.Stats.Errors)

	entries, err := os.ReadDir(l.DownloadsDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ok.zip", entries[0].Name())
}

func TestRunSkills_InvalidFrontmatterStillPackaged(t *testing.T) {
	t.Parallel()

	l := testLayout(t)
	writeTree(t, l.SkillsRoot, map[string]string{
		"misc/raw/SKILL.md": "# No frontmatter here\n",
	})

	res, err := RunSkills(context.Background(), testOptions(l))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.Packaged)
	assert.Equal(t, 1, res.Stats.Errors)

	public := readJSON[catalog.PublicSkillManifest](t, l.SkillsManifest)
	require.Len(t, public.Categories, 1)
	assert.Equal(t, "raw", public.Categories[0].Skills[0].Name)
}

func TestRunSkills_NonLatinCategories(t *testing.T) {
	t.Parallel()

	l := testLayout(t)
	writeTree(t, l.SkillsRoot, map[string]string{
		"日本語/a/SKILL.md":  skillDoc("A", "First."),
		"日本語/b/SKILL.md":  skillDoc("B", "Second."),
		"Русский/c/SKILL.md": skillDoc("C", "Third."),
	})

	res, err := RunSkills(context.Background(), testOptions(l))
	require.NoError(t, err)
	assert.Equal(t, report.Stats{Processed: 3, Packaged: 3}, res.Stats)

	public := readJSON[catalog.PublicSkillManifest](t, l.SkillsManifest)
	assert.Equal(t, 3, public.TotalSkills)
	slugs := make([]string, 0, len(public.Categories))
	for _, c := range public.Categories {
		slugs = append(slugs, c.Slug)
	}
	assert.ElementsMatch(t, []string{"日本語", "русский"}, slugs)

	raw, err := os.ReadFile(l.SkillsManifest)
	require.NoError(t, err)
	require.NoError(t, catalog.ValidateSkillsBytes(raw))
}

func TestRunSkills_Deterministic(t *testing.T) {
	t.Parallel()

	l := testLayout(t)
	skillsCorpus(t, l)
	opts := testOptions(l)

	_, err := RunSkills(context.Background(), opts)
	require.NoError(t, err)
	first := snapshot(t, l.PublicDir, l.InternalDir)

	// Touch the sources; archive bytes must not depend on file times.
	later := time.Now().Add(time.Hour)
	require.NoError(t, filepath.WalkDir(l.SkillsRoot, func(p string, _ fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		return os.Chtimes(p, later, later)
	}))

	_, err = RunSkills(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, first, snapshot(t, l.PublicDir, l.InternalDir))
}

func TestRunSkills_OutputEscapeIsFatal(t *testing.T) {
	t.Parallel()

	l := testLayout(t)
	skillsCorpus(t, l)
	outside := filepath.Join(t.TempDir(), "skills.json")
	l.SkillsManifest = outside

	_, err := RunSkills(context.Background(), testOptions(l))
	var boundary *output.BoundaryError
	require.ErrorAs(t, err, &boundary)

	_, statErr := os.Stat(outside)
	assert.ErrorIs(t, statErr, fs.ErrNotExist)
}

func TestRunSkills_Cancelled(t *testing.T) {
	t.Parallel()

	l := testLayout(t)
	skillsCorpus(t, l)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunSkills(ctx, testOptions(l))
	require.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(l.SkillsManifest)
	assert.ErrorIs(t, statErr, fs.ErrNotExist)
}

func TestRunSkills_PublicFilter(t *testing.T) {
	t.Parallel()

	l := testLayout(t)
	skillsCorpus(t, l)
	sel, err := selector.Compile(`unit.status != "deprecated"`)
	require.NoError(t, err)
	opts := testOptions(l)
	opts.Selector = sel

	res, err := RunSkills(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Stats.Errors)
	assert.Equal(t, 3, res.Stats.Packaged, "hidden skills are still packaged")

	public := readJSON[catalog.PublicSkillManifest](t, l.SkillsManifest)
	assert.Equal(t, 2, public.TotalSkills)
	for _, c := range public.Categories {
		for _, s := range c.Skills {
			assert.NotEqual(t, "csv", s.ID)
		}
	}

	internal := readJSON[catalog.SkillManifest](t, l.SkillsInternal)
	assert.Equal(t, 3, internal.TotalSkills)
}

func TestRunSkills_OCIMirror(t *testing.T) {
	t.Parallel()

	l := testLayout(t)
	skillsCorpus(t, l)
	l.OCILayout = filepath.Join(l.PublicDir, "oci")

	res, err := RunSkills(context.Background(), testOptions(l))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Stats.Errors)

	store, err := layout.NewStore(l.OCILayout)
	require.NoError(t, err)
	tags, err := store.ListTags(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"csv", "lint", "pdf"}, tags)

	_, err = store.Resolve(context.Background(), layout.Tag("pdf"))
	require.NoError(t, err)
}

func TestRunSkills_OCIMirrorDistinctTags(t *testing.T) {
	t.Parallel()

	l := testLayout(t)
	writeTree(t, l.SkillsRoot, map[string]string{
		"misc/my skill/SKILL.md": skillDoc("Spaced", "Has a space."),
		"misc/my-skill/SKILL.md": skillDoc("Hyphenated", "Has a hyphen."),
		"misc/ünicode/SKILL.md":  skillDoc("Unicode", "Starts with a non-ASCII letter."),
	})
	l.OCILayout = filepath.Join(l.PublicDir, "oci")

	res, err := RunSkills(context.Background(), testOptions(l))
	require.NoError(t, err)
	assert.Equal(t, report.Stats{Processed: 3, Packaged: 3}, res.Stats)

	store, err := layout.NewStore(l.OCILayout)
	require.NoError(t, err)
	tags, err := store.ListTags(context.Background())
	require.NoError(t, err)
	assert.Len(t, tags, 3)

	internal := readJSON[catalog.SkillManifest](t, l.SkillsInternal)
	for _, s := range internal.Categories[0].Skills {
		got, err := store.ArchiveDigest(context.Background(), layout.Tag(s.ID))
		require.NoError(t, err, s.ID)
		assert.Equal(t, s.Digest, got.String(), s.ID)
	}
}

func TestRunAll(t *testing.T) {
	t.Parallel()

	l := testLayout(t)
	skillsCorpus(t, l)
	writeTree(t, l.DefinitionsRoot, map[string]string{
		"openai/provider.toml":      "name = \"OpenAI\"\n",
		"openai/models/gpt-4o.toml": gpt4o,
	})

	results, err := RunAll(context.Background(), testOptions(l))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, CorpusSkills, results[0].Corpus)
	assert.Equal(t, CorpusDefinitions, results[1].Corpus)
	assert.False(t, HasErrors(results))
	assert.Equal(t, report.Stats{Processed: 4, Packaged: 3}, TotalStats(results))
}

func TestRunAll_Only(t *testing.T) {
	t.Parallel()

	l := testLayout(t)
	writeTree(t, l.DefinitionsRoot, map[string]string{
		"openai/provider.toml":      "name = \"OpenAI\"\n",
		"openai/models/gpt-4o.toml": gpt4o,
	})
	opts := testOptions(l)
	opts.Only = config.OnlyDefinitions

	results, err := RunAll(context.Background(), opts)
	require.NoError(t, err, "the missing skills root is not checked")
	require.Len(t, results, 1)
	assert.Equal(t, CorpusDefinitions, results[0].Corpus)

	_, statErr := os.Stat(l.SkillsManifest)
	assert.ErrorIs(t, statErr, fs.ErrNotExist)
}

func TestRunAll_MissingRoot(t *testing.T) {
	t.Parallel()

	l := testLayout(t)
	skillsCorpus(t, l)

	results, err := RunAll(context.Background(), testOptions(l))
	require.ErrorIs(t, err, corpus.ErrRootNotFound)
	assert.Nil(t, results)

	_, statErr := os.Stat(l.PublicDir)
	assert.ErrorIs(t, statErr, fs.ErrNotExist, "nothing is written when a root is missing")
}

func TestRunAll_UnknownPipeline(t *testing.T) {
	t.Parallel()

	opts := testOptions(testLayout(t))
	opts.Only = "everything"
	_, err := RunAll(context.Background(), opts)
	require.Error(t, err)
}

//nolint:paralleltest // mutates color.NoColor
func TestPrintSummary(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })

	var buf bytes.Buffer
	PrintSummary(&buf, []Result{
		{Corpus: CorpusSkills, Stats: report.Stats{Processed: 3, Packaged: 2, Warnings: 1, Errors: 1}, Outputs: []string{"/out/skills.json"}},
		{Corpus: CorpusDefinitions, Stats: report.Stats{Processed: 5}},
	})

	want := strings.Join([]string{
		"skills",
		"  processed: 3",
		"  packaged:  2",
		"  warnings:  1",
		"  errors:    1",
		"  wrote /out/skills.json",
		"",
		"definitions",
		"  processed: 5",
		"  warnings:  0",
		"  errors:    0",
		"",
		"total: processed 8, packaged 2, warnings 1, errors 1",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func zipNames(t *testing.T, path string) []string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer func() { _ = zr.Close() }()
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

// snapshot reads every file below dirs keyed by path.
func snapshot(t *testing.T, dirs ...string) map[string][]byte {
	t.Helper()
	files := map[string][]byte{}
	for _, dir := range dirs {
		require.NoError(t, filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			data, err := os.ReadFile(p) //#nosec G304 -- test output path
			if err != nil {
				return err
			}
			files[p] = data
			return nil
		}))
	}
	return files
}
