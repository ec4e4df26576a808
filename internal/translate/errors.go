// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"github.com/cockroachdb/errors"
)

// Error kinds. Every failure returned by a handler or the conversion pipeline
// is marked with exactly one of these; test with errors.Is.
var (
	// ErrEmptyInput indicates the source text is blank.
	ErrEmptyInput = errors.New("empty input")

	// ErrNoDeclaration indicates the top-level declaration pattern is absent.
	ErrNoDeclaration = errors.New("no declaration found")

	// ErrNoFields indicates declarations were found but no field could be read.
	ErrNoFields = errors.New("no fields extracted")

	// ErrInvalidJSON indicates a JSON Schema source that is not usable JSON.
	ErrInvalidJSON = errors.New("invalid JSON")

	// ErrUnsupportedFormat indicates an unknown format identifier.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrExternalBridge indicates a builder expression that could not be evaluated.
	ErrExternalBridge = errors.New("expression evaluation failed")

	// ErrGeneration indicates a generator could not render a schema.
	ErrGeneration = errors.New("generation failed")

	// ErrInputTooLarge indicates the source text exceeds the configured ceiling.
	ErrInputTooLarge = errors.New("input too large")

	// ErrTimeout indicates parsing exceeded the configured deadline.
	ErrTimeout = errors.New("operation timed out")
)

var kinds = []error{
	ErrEmptyInput,
	ErrNoDeclaration,
	ErrNoFields,
	ErrInvalidJSON,
	ErrUnsupportedFormat,
	ErrExternalBridge,
	ErrGeneration,
	ErrInputTooLarge,
	ErrTimeout,
}

// Fail returns an error carrying msg, marked with kind.
func Fail(kind error, msg string) error {
	return errors.Mark(errors.New(msg), kind)
}

// Failf is Fail with a format string.
func Failf(kind error, format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), kind)
}

// Kind returns the error kind err is marked with, or nil.
func Kind(err error) error {
	if err == nil {
		return nil
	}
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// KindName returns a short identifier for the kind of err, for logs.
func KindName(err error) string {
	switch Kind(err) {
	case ErrEmptyInput:
		return "empty_input"
	case ErrNoDeclaration:
		return "no_declaration"
	case ErrNoFields:
		return "no_fields"
	case ErrInvalidJSON:
		return "invalid_json"
	case ErrUnsupportedFormat:
		return "unsupported_format"
	case ErrExternalBridge:
		return "external_bridge"
	case ErrGeneration:
		return "generation"
	case ErrInputTooLarge:
		return "input_too_large"
	case ErrTimeout:
		return "timeout"
	}
	if err == nil {
		return ""
	}
	return "unknown"
}
