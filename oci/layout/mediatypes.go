// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"strings"

	"github.com/opencontainers/go-digest"
)

// Artifact and layer types for mirrored skills.
const (
	// ArtifactTypeSkill identifies skill archive artifacts in manifests.
	ArtifactTypeSkill = "application/vnd.toolhive.catalog.skill.v1"

	// MediaTypeSkillArchive is the media type of the zip layer.
	MediaTypeSkillArchive = "application/vnd.toolhive.catalog.skill.zip"
)

// Annotation keys for skill metadata in manifests.
const (
	// AnnotationSkillName is the annotation key for skill name.
	AnnotationSkillName = "dev.toolhive.catalog.skill.name"

	// AnnotationSkillDescription is the annotation key for skill description.
	AnnotationSkillDescription = "dev.toolhive.catalog.skill.description"

	// AnnotationSkillCategory is the annotation key for the owning category slug.
	AnnotationSkillCategory = "dev.toolhive.catalog.skill.category"
)

// maxTagLength is the longest tag the distribution spec allows.
const maxTagLength = 128

// tagSuffixLength is the number of digest hex characters appended to a
// rewritten tag.
const tagSuffixLength = 8

// Tag converts a skill identity to a valid OCI tag. An identity that is
// already a valid tag is used as is. Otherwise characters outside
// [A-Za-z0-9._-] become "-", a first character outside [A-Za-z0-9_] becomes
// "_", and "-" plus the first hex characters of the identity's sha256 digest
// is appended so that distinct identities keep distinct tags.
func Tag(id string) string {
	var b strings.Builder
	for i, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			b.WriteRune(c)
		case i == 0:
			b.WriteByte('_')
		case c == '.' || c == '-':
			b.WriteRune(c)
		default:
			b.WriteByte('-')
		}
	}
	tag := b.String()
	if tag == id && len(tag) > 0 && len(tag) <= maxTagLength {
		return tag
	}

	suffix := "-" + digest.FromString(id).Encoded()[:tagSuffixLength]
	if len(tag) > maxTagLength-len(suffix) {
		tag = tag[:maxTagLength-len(suffix)]
	}
	if tag == "" {
		tag = "_"
	}
	return tag + suffix
}
