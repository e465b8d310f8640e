// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package env provides an interface-based abstraction for environment variable
access, enabling dependency injection and testing isolation.

# Basic Usage

Use OSReader to read environment variables via the standard os package:

	reader := &env.OSReader{}
	value := reader.Getenv("CATALOG_LOG_FORMAT")

# Reproducible Builds

SourceDateEpoch and Clock resolve the build timestamp. When
SOURCE_DATE_EPOCH is set, catalogs carry that time in generated_at and
archives use it for member modification times, so two builds of the same
corpus are byte-identical:

	buildTime := env.Clock(&env.OSReader{}, time.Now)

# Testing

The Reader interface allows injecting a mock in tests to avoid relying on
real environment variables. A generated mock is available in the mocks
sub-package:

	ctrl := gomock.NewController(t)
	mock := mocks.NewMockReader(ctrl)
	mock.EXPECT().Getenv("SOURCE_DATE_EPOCH").Return("0")

	result := env.Clock(mock, time.Now)
*/
package env
