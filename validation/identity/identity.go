// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package identity

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid unit identity")

// ValidateSegment validates a single identity segment such as a skill folder
// name or a provider folder name.
func ValidateSegment(name string) error {
	if name == "" || strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: cannot be empty or consist only of whitespace", ErrInvalid)
	}

	if strings.Contains(name, "\x00") {
		return fmt.Errorf("%w: cannot contain null bytes", ErrInvalid)
	}

	if name == "." || name == ".." {
		return fmt.Errorf("%w: %q is a relative path element", ErrInvalid, name)
	}

	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: cannot contain path separators: %q", ErrInvalid, name)
	}

	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return fmt.Errorf("%w: cannot contain control characters: %q", ErrInvalid, name)
	}

	if strings.TrimSpace(name) != name {
		return fmt.Errorf("%w: cannot have leading or trailing whitespace: %q", ErrInvalid, name)
	}

	return nil
}

// ValidatePath validates a slash-separated identity such as a model id made
// of the provider folder and the model file path. Every segment must pass
// ValidateSegment.
func ValidatePath(id string) error {
	if id == "" {
		return fmt.Errorf("%w: cannot be empty", ErrInvalid)
	}
	for _, seg := range strings.Split(id, "/") {
		if err := ValidateSegment(seg); err != nil {
			return fmt.Errorf("segment of %q: %w", id, err)
		}
	}
	return nil
}
