// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/google/jsonschema-go/jsonschema"
)

// Lint performs a strict structural check of a JSON Schema document: every
// keyword must have the shape the draft requires and every local $ref must
// resolve.
func Lint(data []byte) error {
	var s jsonschema.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "decode")
	}
	if _, err := s.Resolve(&jsonschema.ResolveOptions{}); err != nil {
		return errors.Wrap(err, "resolve")
	}
	return nil
}
