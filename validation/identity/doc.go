// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package identity validates the folder-derived identities of catalog units.
//
// An identity becomes an archive file name, a URL path segment and an OCI tag,
// so it must be a single printable path segment. Identities are never
// rewritten: a folder whose name is not a valid identity is skipped.
package identity
