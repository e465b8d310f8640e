// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package env

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/stacklok/toolhive-catalog/env/mocks"
)

func TestOSReader_Getenv(t *testing.T) { //nolint:paralleltest // Modifies environment variables
	// Cannot run in parallel because it modifies environment variables
	testKey := "TEST_ENV_VARIABLE_FOR_TESTING"
	testValue := "test_value_123"

	// Set an environment variable for testing
	originalValue, wasSet := os.LookupEnv(testKey)
	os.Setenv(testKey, testValue)
	t.Cleanup(func() {
		if wasSet {
			os.Setenv(testKey, originalValue)
		} else {
			os.Unsetenv(testKey)
		}
	})

	reader := &OSReader{}

	tests := []struct {
		name string
		key  string
		want string
	}{
		{
			name: "existing environment variable",
			key:  testKey,
			want: testValue,
		},
		{
			name: "non-existing environment variable",
			key:  "NONEXISTENT_ENV_VAR_TESTING_12345",
			want: "",
		},
		{
			name: "empty key",
			key:  "",
			want: "",
		},
	}

	for _, tt := range tests { //nolint:paralleltest // Test modifies environment variables
		t.Run(tt.name, func(t *testing.T) {
			// Cannot run in parallel because parent test modifies environment variables
			got := reader.Getenv(tt.key)
			if got != tt.want {
				t.Errorf("OSReader.Getenv() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestReader_InterfaceCompliance ensures OSReader implements the Reader interface
func TestReader_InterfaceCompliance(t *testing.T) {
	t.Parallel()
	var _ Reader = &OSReader{}
	// If this compiles, the test passes
}

func TestSourceDateEpoch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		value  string
		want   time.Time
		wantOK bool
	}{
		{name: "unset", value: ""},
		{name: "valid", value: "1700000000", want: time.Unix(1700000000, 0).UTC(), wantOK: true},
		{name: "surrounding whitespace", value: " 86400 ", want: time.Unix(86400, 0).UTC(), wantOK: true},
		{name: "zero", value: "0", want: time.Unix(0, 0).UTC(), wantOK: true},
		{name: "negative", value: "-5"},
		{name: "not a number", value: "yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			reader := mocks.NewMockReader(ctrl)
			reader.EXPECT().Getenv(SourceDateEpochVar).Return(tt.value)

			got, ok := SourceDateEpoch(reader)
			assert.Equal(t, tt.wantOK, ok)
			assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
		})
	}
}

func TestClock(t *testing.T) {
	t.Parallel()

	now := func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 890, time.FixedZone("x", 3600)) }

	t.Run("falls back to now in UTC", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		reader := mocks.NewMockReader(ctrl)
		reader.EXPECT().Getenv(SourceDateEpochVar).Return("")

		got := Clock(reader, now)
		assert.Equal(t, time.Date(2026, 3, 4, 4, 6, 7, 0, time.UTC), got)
	})

	t.Run("prefers SOURCE_DATE_EPOCH", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		reader := mocks.NewMockReader(ctrl)
		reader.EXPECT().Getenv(SourceDateEpochVar).Return("315532800")

		got := Clock(reader, now)
		assert.Equal(t, time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC), got)
	})
}
