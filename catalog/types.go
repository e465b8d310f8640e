// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package catalog

import "time"

// FormatVersion is the catalog format version written to every manifest.
const FormatVersion = "1.0.0"

// Meta carries the run-level values stamped onto a manifest.
type Meta struct {
	GeneratedAt time.Time
	BaseURL     string
}

func (m Meta) timestamp() string {
	return m.GeneratedAt.UTC().Format(time.RFC3339)
}

// UnitView is the flattened view of a unit used by visibility rules.
type UnitView struct {
	ID     string
	Name   string
	Group  string
	Status string
	Tags   []string
}

// Skill is the full-fidelity record of one skill bundle.
type Skill struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// Category is the owning category slug.
	Category    string   `json:"category"`
	DownloadURL string   `json:"download_url"`
	SizeBytes   int64    `json:"size_bytes"`
	FileCount   int      `json:"file_count"`
	Version     string   `json:"version,omitempty"`
	License     string   `json:"license,omitempty"`
	Status      string   `json:"status,omitempty"`
	Tags        []string `json:"tags,omitempty"`

	// Digest is the sha256 digest of the archive, e.g. "sha256:ab12...".
	Digest        string            `json:"digest,omitempty"`
	AllowedTools  []string          `json:"allowed_tools,omitempty"`
	Author        string            `json:"author,omitempty"`
	Compatibility string            `json:"compatibility,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	// SourcePath is the slash-separated path of the skill folder relative
	// to the corpus root.
	SourcePath string `json:"source_path"`
}

// View returns the visibility-rule view of the skill.
func (s Skill) View() UnitView {
	return UnitView{ID: s.ID, Name: s.Name, Group: s.Category, Status: s.Status, Tags: s.Tags}
}

// Category groups skills by their category folder.
type Category struct {
	Name       string  `json:"name"`
	Slug       string  `json:"slug"`
	SkillCount int     `json:"skill_count"`
	Skills     []Skill `json:"skills"`
}

// SkillManifest is the internal skills catalog.
type SkillManifest struct {
	Version         string     `json:"version"`
	GeneratedAt     string     `json:"generated_at"`
	BaseURL         string     `json:"base_url"`
	TotalSkills     int        `json:"total_skills"`
	TotalCategories int        `json:"total_categories"`
	Categories      []Category `json:"categories"`
}

// PublicSkill is the redistributable projection of a Skill.
type PublicSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	DownloadURL string   `json:"download_url"`
	SizeBytes   int64    `json:"size_bytes"`
	FileCount   int      `json:"file_count"`
	Version     string   `json:"version,omitempty"`
	License     string   `json:"license,omitempty"`
	Status      string   `json:"status,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// PublicCategory is the redistributable projection of a Category.
type PublicCategory struct {
	Name       string        `json:"name"`
	Slug       string        `json:"slug"`
	SkillCount int           `json:"skill_count"`
	Skills     []PublicSkill `json:"skills"`
}

// PublicSkillManifest is the public skills manifest.
type PublicSkillManifest struct {
	Version         string           `json:"version"`
	GeneratedAt     string           `json:"generated_at"`
	BaseURL         string           `json:"base_url"`
	TotalSkills     int              `json:"total_skills"`
	TotalCategories int              `json:"total_categories"`
	Categories      []PublicCategory `json:"categories"`
}

// Modalities lists the input and output modalities of a model.
type Modalities struct {
	Input  []string `json:"input"`
	Output []string `json:"output"`
}

// Limit holds token limits. Absent values are omitted.
type Limit struct {
	Context *int64 `json:"context,omitempty"`
	Output  *int64 `json:"output,omitempty"`
}

// Cost holds prices in USD per million tokens.
type Cost struct {
	Input       *float64 `json:"input,omitempty"`
	Output      *float64 `json:"output,omitempty"`
	CacheRead   *float64 `json:"cache_read,omitempty"`
	CacheWrite  *float64 `json:"cache_write,omitempty"`
	InputAudio  *float64 `json:"input_audio,omitempty"`
	OutputAudio *float64 `json:"output_audio,omitempty"`
	Reasoning   *float64 `json:"reasoning,omitempty"`
}

// Model is the full-fidelity record of one model definition.
type Model struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// Provider is the owning provider slug.
	Provider    string      `json:"provider"`
	Family      string      `json:"family,omitempty"`
	Attachment  bool        `json:"attachment"`
	Reasoning   bool        `json:"reasoning"`
	ToolCall    bool        `json:"tool_call"`
	Temperature bool        `json:"temperature"`
	OpenWeights bool        `json:"open_weights"`
	Knowledge   string      `json:"knowledge,omitempty"`
	ReleaseDate string      `json:"release_date,omitempty"`
	LastUpdated string      `json:"last_updated,omitempty"`
	Status      string      `json:"status,omitempty"`
	Modalities  *Modalities `json:"modalities,omitempty"`
	Limit       *Limit      `json:"limit,omitempty"`
	Cost        *Cost       `json:"cost,omitempty"`
	SourcePath  string      `json:"source_path"`
}

// View returns the visibility-rule view of the model.
func (m Model) View() UnitView {
	return UnitView{ID: m.ID, Name: m.Name, Group: m.Provider, Status: m.Status}
}

// Provider groups models by their provider folder.
type Provider struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Slug       string   `json:"slug"`
	Doc        string   `json:"doc,omitempty"`
	API        string   `json:"api,omitempty"`
	NPM        string   `json:"npm,omitempty"`
	Env        []string `json:"env,omitempty"`
	ModelCount int      `json:"model_count"`
	Models     []Model  `json:"models"`
	SourcePath string   `json:"source_path"`
}

// ModelManifest is the internal models catalog.
type ModelManifest struct {
	Version        string     `json:"version"`
	GeneratedAt    string     `json:"generated_at"`
	BaseURL        string     `json:"base_url"`
	TotalModels    int        `json:"total_models"`
	TotalProviders int        `json:"total_providers"`
	Providers      []Provider `json:"providers"`
}

// PublicCost is the coarse input/output price pair published externally.
type PublicCost struct {
	Input  *float64 `json:"input,omitempty"`
	Output *float64 `json:"output,omitempty"`
}

// PublicModel is the redistributable projection of a Model.
type PublicModel struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Provider    string      `json:"provider"`
	Family      string      `json:"family,omitempty"`
	Attachment  bool        `json:"attachment"`
	Reasoning   bool        `json:"reasoning"`
	ToolCall    bool        `json:"tool_call"`
	Temperature bool        `json:"temperature"`
	OpenWeights bool        `json:"open_weights"`
	Knowledge   string      `json:"knowledge,omitempty"`
	ReleaseDate string      `json:"release_date,omitempty"`
	LastUpdated string      `json:"last_updated,omitempty"`
	Status      string      `json:"status,omitempty"`
	Modalities  *Modalities `json:"modalities,omitempty"`
	Limit       *Limit      `json:"limit,omitempty"`
	Cost        *PublicCost `json:"cost,omitempty"`
}

// PublicProvider is the redistributable projection of a Provider.
type PublicProvider struct {
	Name       string        `json:"name"`
	Slug       string        `json:"slug"`
	Doc        string        `json:"doc,omitempty"`
	ModelCount int           `json:"model_count"`
	Models     []PublicModel `json:"models"`
}

// PublicModelManifest is the public models manifest.
type PublicModelManifest struct {
	Version        string           `json:"version"`
	GeneratedAt    string           `json:"generated_at"`
	BaseURL        string           `json:"base_url"`
	TotalModels    int              `json:"total_models"`
	TotalProviders int              `json:"total_providers"`
	Providers      []PublicProvider `json:"providers"`
}
