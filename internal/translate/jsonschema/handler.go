// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package jsonschema provides the JSON Schema notation handler. JSON Schema is
// the canonical form itself, so parsing and generation are passthroughs.
package jsonschema

import (
	"encoding/json"

	"github.com/dacolabs/schemamap/internal/jschema"
	"github.com/dacolabs/schemamap/internal/translate"
)

// schemaKeywords are the keywords of which at least one must be present.
var schemaKeywords = []string{"type", "properties", "$ref", "oneOf", "anyOf", "allOf"}

// Handler converts between JSON Schema documents and canonical schemas.
type Handler struct{}

var _ translate.Handler = (*Handler)(nil)

// Parse decodes a JSON Schema document, keeping the order of every object.
func (h *Handler) Parse(text string) (*jschema.Schema, error) {
	if err := translate.RequireText(text); err != nil {
		return nil, err
	}
	if err := check(text, "Input does not appear to be a valid JSON Schema (missing type, properties, or combinators)"); err != nil {
		return nil, err
	}
	schema, err := jschema.Decode([]byte(text))
	if err != nil {
		return nil, translate.Failf(translate.ErrInvalidJSON, "Invalid JSON Schema: %v", err)
	}
	return schema, nil
}

// Generate renders schema as two-space indented JSON.
func (h *Handler) Generate(schema *jschema.Schema) (string, error) {
	if schema == nil {
		return "", translate.Fail(translate.ErrGeneration, "No schema to generate from")
	}
	out, err := jschema.Encode(schema)
	if err != nil {
		return "", translate.Failf(translate.ErrGeneration, "failed to encode schema: %v", err)
	}
	return string(out), nil
}

// Validate checks that text is a JSON object carrying a schema keyword.
func (h *Handler) Validate(text string) translate.Validation {
	if err := translate.RequireText(text); err != nil {
		return translate.InvalidErr(err)
	}
	if err := check(text, "Missing type, properties, or combinators: not a valid JSON Schema"); err != nil {
		return translate.InvalidErr(err)
	}
	return translate.Valid()
}

// check reports syntax errors, non-object documents and documents without any
// schema keyword. missing is the message used for the last case.
func check(text, missing string) error {
	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return translate.Failf(translate.ErrInvalidJSON, "Invalid JSON: %v", err)
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return translate.Fail(translate.ErrInvalidJSON, "Input must be a JSON object")
	}
	for _, k := range schemaKeywords {
		if present(obj[k]) {
			return nil
		}
	}
	return translate.Fail(translate.ErrInvalidJSON, missing)
}

// present mirrors a truthiness test: absent, null, false and "" do not count.
func present(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	}
	return true
}
