// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package pipeline runs the skills and definitions builds.
//
// Each pipeline walks its corpus, normalizes every unit, packages skills,
// assembles the internal catalog and writes three files: the public
// manifest, its JSON Schema and the internal catalog. Problems with a single
// unit are recorded in the run's report and never stop the build. Only a
// missing corpus root, an output path outside its directory or a cancelled
// context end a pipeline early.
package pipeline
