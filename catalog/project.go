// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package catalog

import "slices"

// KeepFunc decides whether a unit appears in the public edition.
// A nil KeepFunc keeps every unit.
type KeepFunc func(UnitView) bool

// Public projects a skill to its public record.
func (s Skill) Public() PublicSkill {
	return PublicSkill{
		ID:          s.ID,
		Name:        s.Name,
		Description: Truncate(s.Description, DescriptionBudget),
		Category:    s.Category,
		DownloadURL: s.DownloadURL,
		SizeBytes:   s.SizeBytes,
		FileCount:   s.FileCount,
		Version:     s.Version,
		License:     s.License,
		Status:      s.Status,
		Tags:        slices.Clone(s.Tags),
	}
}

// PublicSkills projects the internal skills manifest to the public edition.
// Categories left empty by keep are dropped and counts are recomputed.
func PublicSkills(m SkillManifest, keep KeepFunc) PublicSkillManifest {
	out := PublicSkillManifest{
		Version:     m.Version,
		GeneratedAt: m.GeneratedAt,
		BaseURL:     m.BaseURL,
		Categories:  make([]PublicCategory, 0, len(m.Categories)),
	}
	for _, cat := range m.Categories {
		pc := PublicCategory{Name: cat.Name, Slug: cat.Slug, Skills: make([]PublicSkill, 0, len(cat.Skills))}
		for _, s := range cat.Skills {
			if keep != nil && !keep(s.View()) {
				continue
			}
			pc.Skills = append(pc.Skills, s.Public())
		}
		if len(pc.Skills) == 0 {
			continue
		}
		pc.SkillCount = len(pc.Skills)
		out.TotalSkills += pc.SkillCount
		out.Categories = append(out.Categories, pc)
	}
	out.TotalCategories = len(out.Categories)
	return out
}

// Public projects a model to its public record. Cost is reduced to the
// input/output pair and dropped when neither is known.
func (m Model) Public() PublicModel {
	pm := PublicModel{
		ID:          m.ID,
		Name:        m.Name,
		Description: Truncate(m.Description, DescriptionBudget),
		Provider:    m.Provider,
		Family:      m.Family,
		Attachment:  m.Attachment,
		Reasoning:   m.Reasoning,
		ToolCall:    m.ToolCall,
		Temperature: m.Temperature,
		OpenWeights: m.OpenWeights,
		Knowledge:   m.Knowledge,
		ReleaseDate: m.ReleaseDate,
		LastUpdated: m.LastUpdated,
		Status:      m.Status,
	}
	if m.Modalities != nil {
		pm.Modalities = &Modalities{
			Input:  slices.Clone(m.Modalities.Input),
			Output: slices.Clone(m.Modalities.Output),
		}
	}
	if m.Limit != nil && (m.Limit.Context != nil || m.Limit.Output != nil) {
		l := *m.Limit
		pm.Limit = &l
	}
	if m.Cost != nil && (m.Cost.Input != nil || m.Cost.Output != nil) {
		pm.Cost = &PublicCost{Input: m.Cost.Input, Output: m.Cost.Output}
	}
	return pm
}

// PublicModels projects the internal models manifest to the public edition.
func PublicModels(m ModelManifest, keep KeepFunc) PublicModelManifest {
	out := PublicModelManifest{
		Version:     m.Version,
		GeneratedAt: m.GeneratedAt,
		BaseURL:     m.BaseURL,
		Providers:   make([]PublicProvider, 0, len(m.Providers)),
	}
	for _, p := range m.Providers {
		pp := PublicProvider{Name: p.Name, Slug: p.Slug, Doc: p.Doc, Models: make([]PublicModel, 0, len(p.Models))}
		for _, model := range p.Models {
			if keep != nil && !keep(model.View()) {
				continue
			}
			pp.Models = append(pp.Models, model.Public())
		}
		if len(pp.Models) == 0 {
			continue
		}
		pp.ModelCount = len(pp.Models)
		out.TotalModels += pp.ModelCount
		out.Providers = append(out.Providers, pp)
	}
	out.TotalProviders = len(out.Providers)
	return out
}
