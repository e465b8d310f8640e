// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package env

//go:generate mockgen -copyright_file=../.github/license-header.txt -source=env.go -destination=mocks/mock_reader.go -package=mocks Reader

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// SourceDateEpochVar pins build timestamps for reproducible output.
const SourceDateEpochVar = "SOURCE_DATE_EPOCH"

// Reader defines an interface for environment variable access
type Reader interface {
	Getenv(key string) string
}

// OSReader implements Reader using the standard os package
type OSReader struct{}

// Getenv returns the value of the environment variable named by the key
func (*OSReader) Getenv(key string) string {
	return os.Getenv(key)
}

// SourceDateEpoch returns the time pinned by SOURCE_DATE_EPOCH.
// The boolean is false when the variable is unset or not a valid
// non-negative integer number of seconds.
func SourceDateEpoch(r Reader) (time.Time, bool) {
	raw := strings.TrimSpace(r.Getenv(SourceDateEpochVar))
	if raw == "" {
		return time.Time{}, false
	}
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || secs < 0 {
		return time.Time{}, false
	}
	return time.Unix(secs, 0).UTC(), true
}

// Clock returns the build time: SOURCE_DATE_EPOCH when set, otherwise now.
func Clock(r Reader, now func() time.Time) time.Time {
	if t, ok := SourceDateEpoch(r); ok {
		return t
	}
	return now().UTC().Truncate(time.Second)
}
