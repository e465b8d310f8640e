// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package definitions

import (
	"github.com/stacklok/toolhive-catalog/catalog"
	"github.com/stacklok/toolhive-catalog/report"
)

// ProviderFile is the provider metadata file inside a provider folder.
const ProviderFile = "provider.toml"

// ParseProvider normalizes provider.toml content for the provider folder id.
// The display name falls back to id. It never fails; problems are returned
// as warnings.
func ParseProvider(id string, raw []byte) (catalog.Provider, []report.FieldWarning) {
	p := catalog.Provider{ID: id, Name: id}

	tree, err := decodeTree(raw)
	if err != nil {
		return p, []report.FieldWarning{{Message: err.Error()}}
	}

	d := newDecoder(tree)
	if name := d.optionalString("name"); name != "" {
		p.Name = name
	}
	p.Env = d.stringList("env", nil)
	if len(p.Env) == 0 {
		p.Env = nil
	}
	p.NPM = d.optionalString("npm")
	p.API = d.optionalString("api")
	p.Doc = d.optionalString("doc")

	return p, *d.warnings
}

// ParseModel normalizes the TOML definition of the model id owned by the
// provider slug. It never fails: a document that does not parse yields a
// record named after id and a single warning. Missing required booleans
// default to false with a warning each.
func ParseModel(id, provider string, raw []byte) (catalog.Model, []report.FieldWarning) {
	m := catalog.Model{ID: id, Name: id, Provider: provider}

	tree, err := decodeTree(raw)
	if err != nil {
		return m, []report.FieldWarning{{Message: err.Error()}}
	}

	d := newDecoder(tree)
	if name := d.requiredString("name"); name != "" {
		m.Name = name
	}
	m.Attachment = d.requiredBool("attachment")
	m.Reasoning = d.requiredBool("reasoning")
	m.ToolCall = d.requiredBool("tool_call")
	m.Temperature = d.optionalBool("temperature")
	m.OpenWeights = d.optionalBool("open_weights")
	m.Description = d.optionalString("description")
	m.Family = d.optionalString("family")
	m.Knowledge = d.date("knowledge")
	m.ReleaseDate = d.date("release_date")
	m.LastUpdated = d.date("last_updated")
	m.Status = d.enum("status", catalog.ModelStatuses)

	if t, ok := d.table("modalities"); ok {
		m.Modalities = &catalog.Modalities{
			Input:  t.stringList("input", catalog.ModalityValues),
			Output: t.stringList("output", catalog.ModalityValues),
		}
		if m.Modalities.Input == nil {
			m.Modalities.Input = []string{}
		}
		if m.Modalities.Output == nil {
			m.Modalities.Output = []string{}
		}
	}

	if t, ok := d.table("limit"); ok {
		l := catalog.Limit{Context: t.count("context"), Output: t.count("output")}
		if l.Context != nil || l.Output != nil {
			m.Limit = &l
		}
	}

	if t, ok := d.table("cost"); ok {
		c := catalog.Cost{
			Input:       t.amount("input"),
			Output:      t.amount("output"),
			CacheRead:   t.amount("cache_read"),
			CacheWrite:  t.amount("cache_write"),
			InputAudio:  t.amount("input_audio"),
			OutputAudio: t.amount("output_audio"),
			Reasoning:   t.amount("reasoning"),
		}
		if c != (catalog.Cost{}) {
			m.Cost = &c
		}
	}

	return m, *d.warnings
}
