// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package translate defines the contract every notation handler implements,
// the error taxonomy, and the naming and planning helpers handlers share.
package translate

import (
	"strings"

	"github.com/dacolabs/schemamap/internal/jschema"
)

// Handler is the parse/generate/validate triple for one notation.
type Handler interface {
	// Parse reads source text into a canonical schema.
	Parse(text string) (*jschema.Schema, error)

	// Generate renders a canonical schema as source text.
	// It is total over well-formed schemas.
	Generate(schema *jschema.Schema) (string, error)

	// Validate is a cheap structural pre-check. It never panics.
	Validate(text string) Validation
}

// Validation is the outcome of a structural pre-check.
type Validation struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// Valid returns a passing validation.
func Valid() Validation {
	return Validation{Valid: true}
}

// Invalid returns a failing validation carrying msg.
func Invalid(msg string) Validation {
	return Validation{Error: msg}
}

// InvalidErr returns a failing validation carrying the message of err.
func InvalidErr(err error) Validation {
	return Validation{Error: err.Error()}
}

// IsBlank reports whether text holds nothing but whitespace.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// RequireText fails with ErrEmptyInput when text is blank.
func RequireText(text string) error {
	if IsBlank(text) {
		return Fail(ErrEmptyInput, "Empty input")
	}
	return nil
}
