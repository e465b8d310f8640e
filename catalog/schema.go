// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"github.com/invopop/jsonschema"
)

// SchemaDraft is the JSON Schema dialect of the emitted schemas.
const SchemaDraft = "http://json-schema.org/draft-07/schema#"

// The schemas below are authored by hand and must track the Public* types.
// The test suite validates fully populated manifests against them and checks
// that every public JSON field is described.

// SkillsSchema describes the shape of PublicSkillManifest.
func SkillsSchema() *jsonschema.Schema {
	skill := object(
		field("id", str(), true),
		field("name", str(), true),
		field("description", description(), true),
		field("category", str(), true),
		field("download_url", str(), true),
		field("size_bytes", nonNegativeInt(), true),
		field("file_count", nonNegativeInt(), true),
		field("version", str(), false),
		field("license", str(), false),
		field("status", enum(SkillStatuses...), false),
		field("tags", list(str()), false),
	)
	category := object(
		field("name", str(), true),
		field("slug", slug(), true),
		field("skill_count", nonNegativeInt(), true),
		field("skills", list(skill), true),
	)
	root := object(
		field("version", str(), true),
		field("generated_at", dateTime(), true),
		field("base_url", str(), true),
		field("total_skills", nonNegativeInt(), true),
		field("total_categories", nonNegativeInt(), true),
		field("categories", list(category), true),
	)
	root.Version = SchemaDraft
	root.Title = "Skills manifest"
	root.Description = "Public catalog of downloadable skill bundles grouped by category."
	return root
}

// ModelsSchema describes the shape of PublicModelManifest.
func ModelsSchema() *jsonschema.Schema {
	modalities := object(
		field("input", list(enum(ModalityValues...)), true),
		field("output", list(enum(ModalityValues...)), true),
	)
	limit := object(
		field("context", nonNegativeInt(), false),
		field("output", nonNegativeInt(), false),
	)
	cost := object(
		field("input", nonNegativeNumber(), false),
		field("output", nonNegativeNumber(), false),
	)
	model := object(
		field("id", str(), true),
		field("name", str(), true),
		field("description", description(), false),
		field("provider", slug(), true),
		field("family", str(), false),
		field("attachment", boolean(), true),
		field("reasoning", boolean(), true),
		field("tool_call", boolean(), true),
		field("temperature", boolean(), true),
		field("open_weights", boolean(), true),
		field("knowledge", str(), false),
		field("release_date", str(), false),
		field("last_updated", str(), false),
		field("status", enum(ModelStatuses...), false),
		field("modalities", modalities, false),
		field("limit", limit, false),
		field("cost", cost, false),
	)
	provider := object(
		field("name", str(), true),
		field("slug", slug(), true),
		field("doc", str(), false),
		field("model_count", nonNegativeInt(), true),
		field("models", list(model), true),
	)
	root := object(
		field("version", str(), true),
		field("generated_at", dateTime(), true),
		field("base_url", str(), true),
		field("total_models", nonNegativeInt(), true),
		field("total_providers", nonNegativeInt(), true),
		field("providers", list(provider), true),
	)
	root.Version = SchemaDraft
	root.Title = "Models manifest"
	root.Description = "Public catalog of model definitions grouped by provider."
	return root
}

// Recognized enumerations. Parsers drop values outside these sets.
var (
	SkillStatuses  = []string{"stable", "beta", "experimental", "deprecated"}
	ModelStatuses  = []string{"alpha", "beta", "deprecated"}
	ModalityValues = []string{"text", "image", "audio", "video", "pdf"}
)

type schemaField struct {
	name     string
	schema   *jsonschema.Schema
	required bool
}

func field(name string, s *jsonschema.Schema, required bool) schemaField {
	return schemaField{name: name, schema: s, required: required}
}

// object builds a closed object schema with properties in authored order.
func object(fields ...schemaField) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:                 "object",
		Properties:           jsonschema.NewProperties(),
		AdditionalProperties: jsonschema.FalseSchema,
	}
	for _, f := range fields {
		s.Properties.Set(f.name, f.schema)
		if f.required {
			s.Required = append(s.Required, f.name)
		}
	}
	return s
}

func str() *jsonschema.Schema { return &jsonschema.Schema{Type: "string"} }

func boolean() *jsonschema.Schema { return &jsonschema.Schema{Type: "boolean"} }

func dateTime() *jsonschema.Schema { return &jsonschema.Schema{Type: "string", Format: "date-time"} }

func slug() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Pattern: `^[\p{L}\p{M}\p{Nd}]+(-[\p{L}\p{M}\p{Nd}]+)*$`}
}

func description() *jsonschema.Schema {
	budget := uint64(DescriptionBudget)
	return &jsonschema.Schema{Type: "string", MaxLength: &budget}
}

func nonNegativeInt() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "integer", Minimum: "0"}
}

func nonNegativeNumber() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "number", Minimum: "0"}
}

func list(items *jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "array", Items: items}
}

func enum(values ...string) *jsonschema.Schema {
	e := make([]any, len(values))
	for i, v := range values {
		e[i] = v
	}
	return &jsonschema.Schema{Type: "string", Enum: e}
}
