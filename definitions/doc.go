// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package definitions normalizes provider and model TOML definitions into
// catalog records.
//
// Input is untrusted. Every problem becomes a [report.FieldWarning] and the
// affected field falls back to a safe default: strings become empty, required
// booleans become false, and unusable numbers or enum values are omitted.
package definitions
