// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for catalog assembly.
var (
	// ErrDuplicateIdentity is returned when a unit identity was already claimed in this run.
	ErrDuplicateIdentity = errors.New("duplicate unit identity")

	// ErrDuplicateSlug is returned when a group slug was already claimed in this run.
	ErrDuplicateSlug = errors.New("duplicate group slug")

	// ErrEmptySlug is returned when a group name has no slug-able characters.
	ErrEmptySlug = errors.New("group name yields an empty slug")

	// ErrUnknownGroup is returned when a unit references a group that was not added.
	ErrUnknownGroup = errors.New("unknown group")

	// ErrUnclaimedIdentity is returned when a unit is added without claiming its identity first.
	ErrUnclaimedIdentity = errors.New("identity was not claimed")
)

// claims tracks case-insensitively unique keys for a single run.
type claims map[string]string

func (c claims) claim(key string) error {
	folded := strings.ToLower(key)
	if prior, ok := c[folded]; ok {
		return fmt.Errorf("%q collides with %q", key, prior)
	}
	c[folded] = key
	return nil
}

func (c claims) has(key string) bool {
	_, ok := c[strings.ToLower(key)]
	return ok
}

// SkillCatalog accumulates skills under their categories for one run.
// It is fed sequentially and is not safe for concurrent use.
type SkillCatalog struct {
	ids        claims
	slugs      claims
	categories map[string]*Category
}

// NewSkillCatalog returns an empty skill catalog.
func NewSkillCatalog() *SkillCatalog {
	return &SkillCatalog{
		ids:        claims{},
		slugs:      claims{},
		categories: map[string]*Category{},
	}
}

// AddCategory registers a category by display name and returns its slug.
func (c *SkillCatalog) AddCategory(name string) (string, error) {
	slug, err := claimSlug(c.slugs, name)
	if err != nil {
		return "", err
	}
	c.categories[slug] = &Category{Name: name, Slug: slug}
	return slug, nil
}

// Claim reserves a skill identity. It must be called before the skill is
// packaged so that a colliding identity never overwrites an earlier archive.
func (c *SkillCatalog) Claim(id string) error {
	if err := c.ids.claim(id); err != nil {
		return fmt.Errorf("%w: %w", ErrDuplicateIdentity, err)
	}
	return nil
}

// Add appends a normalized skill to its category.
func (c *SkillCatalog) Add(s Skill) error {
	if !c.ids.has(s.ID) {
		return fmt.Errorf("%w: %s", ErrUnclaimedIdentity, s.ID)
	}
	cat, ok := c.categories[s.Category]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGroup, s.Category)
	}
	cat.Skills = append(cat.Skills, s)
	return nil
}

// Build returns the internal manifest. Categories and skills are sorted by
// display name, empty categories are omitted and every count is computed
// from the sorted result.
func (c *SkillCatalog) Build(meta Meta) SkillManifest {
	order := newNameOrder()

	categories := make([]Category, 0, len(c.categories))
	for _, cat := range c.categories {
		if len(cat.Skills) == 0 {
			continue
		}
		out := *cat
		out.Skills = append([]Skill(nil), cat.Skills...)
		sortByName(order, out.Skills, func(s Skill) (string, string) { return s.Name, s.ID })
		categories = append(categories, out)
	}
	sortByName(order, categories, func(g Category) (string, string) { return g.Name, g.Slug })

	m := SkillManifest{
		Version:     FormatVersion,
		GeneratedAt: meta.timestamp(),
		BaseURL:     meta.BaseURL,
		Categories:  categories,
	}
	for i := range m.Categories {
		m.Categories[i].SkillCount = len(m.Categories[i].Skills)
		m.TotalSkills += m.Categories[i].SkillCount
	}
	m.TotalCategories = len(m.Categories)
	return m
}

// ModelCatalog accumulates model definitions under their providers for one
// run. It is fed sequentially and is not safe for concurrent use.
type ModelCatalog struct {
	ids       claims
	slugs     claims
	providers map[string]*Provider
}

// NewModelCatalog returns an empty model catalog.
func NewModelCatalog() *ModelCatalog {
	return &ModelCatalog{
		ids:       claims{},
		slugs:     claims{},
		providers: map[string]*Provider{},
	}
}

// AddProvider registers a provider. The slug derives from p.ID, the provider
// folder name; p.Name is display only. The stored provider's slug is set and
// returned.
func (c *ModelCatalog) AddProvider(p Provider) (string, error) {
	slug, err := claimSlug(c.slugs, p.ID)
	if err != nil {
		return "", err
	}
	p.Slug = slug
	p.Models = nil
	if p.Name == "" {
		p.Name = p.ID
	}
	c.providers[slug] = &p
	return slug, nil
}

// Claim reserves a model identity.
func (c *ModelCatalog) Claim(id string) error {
	if err := c.ids.claim(id); err != nil {
		return fmt.Errorf("%w: %w", ErrDuplicateIdentity, err)
	}
	return nil
}

// Add appends a normalized model to its provider.
func (c *ModelCatalog) Add(m Model) error {
	if !c.ids.has(m.ID) {
		return fmt.Errorf("%w: %s", ErrUnclaimedIdentity, m.ID)
	}
	p, ok := c.providers[m.Provider]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGroup, m.Provider)
	}
	p.Models = append(p.Models, m)
	return nil
}

// Build returns the internal manifest, sorted and counted like
// SkillCatalog.Build.
func (c *ModelCatalog) Build(meta Meta) ModelManifest {
	order := newNameOrder()

	providers := make([]Provider, 0, len(c.providers))
	for _, p := range c.providers {
		if len(p.Models) == 0 {
			continue
		}
		out := *p
		out.Models = append([]Model(nil), p.Models...)
		sortByName(order, out.Models, func(m Model) (string, string) { return m.Name, m.ID })
		providers = append(providers, out)
	}
	sortByName(order, providers, func(p Provider) (string, string) { return p.Name, p.Slug })

	m := ModelManifest{
		Version:     FormatVersion,
		GeneratedAt: meta.timestamp(),
		BaseURL:     meta.BaseURL,
		Providers:   providers,
	}
	for i := range m.Providers {
		m.Providers[i].ModelCount = len(m.Providers[i].Models)
		m.TotalModels += m.Providers[i].ModelCount
	}
	m.TotalProviders = len(m.Providers)
	return m
}

func claimSlug(slugs claims, name string) (string, error) {
	slug := Slugify(name)
	if slug == "" {
		return "", fmt.Errorf("%w: %q", ErrEmptySlug, name)
	}
	if err := slugs.claim(slug); err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrDuplicateSlug, name, err)
	}
	return slug, nil
}
