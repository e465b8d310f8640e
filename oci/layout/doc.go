// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package layout mirrors skill archives into a local OCI Image Layout.
//
// Each archive becomes a single-layer OCI artifact with an empty JSON config,
// tagged with the skill identity, so the downloads can also be served by any
// OCI-aware tooling. The layout is written with oras-go.
package layout
