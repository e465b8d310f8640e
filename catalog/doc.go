// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package catalog holds the record types of the skills and models catalogs
// and the pure operations over them.
//
// A run feeds normalized units into a [SkillCatalog] or [ModelCatalog].
// Identities are claimed before a unit is packaged so a collision never
// overwrites an earlier archive. Build sorts groups and units by display name
// using locale-aware collation and recomputes every count. The public edition
// is a projection of the internal manifest ([PublicSkills], [PublicModels])
// and is described by [SkillsSchema] and [ModelsSchema].
package catalog
