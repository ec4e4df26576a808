// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package logger

// Standard field names. Use these instead of raw strings so log lines stay
// consistent across packages.
const (
	// Components
	FieldComponent = "component"
	FieldOperation = "operation"

	// Conversions
	FieldSource = "source"
	FieldTarget = "target"
	FieldFormat = "format"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError     = "error"
	FieldErrorType = "error_type"

	// Sizes
	FieldSize  = "size"
	FieldCount = "count"

	// Files
	FieldFile = "file"
)
