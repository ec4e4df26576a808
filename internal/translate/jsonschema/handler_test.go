// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jsonschema

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/dacolabs/schemamap/internal/jschema"
	"github.com/dacolabs/schemamap/internal/translate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userSchema = `{
  "type": "object",
  "title": "User",
  "properties": {
    "name": {
      "type": "string"
    },
    "age": {
      "type": "integer"
    }
  },
  "required": [
    "name",
    "age"
  ]
}`

func TestParse_RoundTrip(t *testing.T) {
	h := &Handler{}

	schema, err := h.Parse(userSchema)
	require.NoError(t, err)

	name, ok := schema.Properties.Get("name")
	require.True(t, ok)
	assert.Equal(t, jschema.KindString, name.PrimaryKind())
	age, ok := schema.Properties.Get("age")
	require.True(t, ok)
	assert.Equal(t, jschema.KindInteger, age.PrimaryKind())
	assert.Equal(t, []string{"name", "age"}, schema.Required)

	out, err := h.Generate(schema)
	require.NoError(t, err)
	assert.Equal(t, userSchema, out)
}

func TestParse_KeepsUnknownKeywords(t *testing.T) {
	h := &Handler{}
	input := `{"x-owner": "team", "type": "string", "examples": ["a"]}`

	schema, err := h.Parse(input)
	require.NoError(t, err)

	out, err := h.Generate(schema)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"x-owner\": \"team\",\n  \"type\": \"string\",\n  \"examples\": [\n    \"a\"\n  ]\n}", out)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  error
		msg   string
	}{
		{"empty", "  ", translate.ErrEmptyInput, "Empty input"},
		{"syntax", "{", translate.ErrInvalidJSON, "Invalid JSON:"},
		{"not object", "[1, 2]", translate.ErrInvalidJSON, "Input must be a JSON object"},
		{"null", "null", translate.ErrInvalidJSON, "Input must be a JSON object"},
		{"no keywords", `{"title": "X"}`, translate.ErrInvalidJSON, "missing type, properties, or combinators"},
		{"false type", `{"type": false}`, translate.ErrInvalidJSON, "missing type"},
	}

	h := &Handler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Parse(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParse_AcceptsCombinators(t *testing.T) {
	h := &Handler{}
	for _, input := range []string{
		`{"$ref": "#/definitions/User"}`,
		`{"oneOf": [{"type": "string"}]}`,
		`{"anyOf": [{"type": "string"}]}`,
		`{"allOf": [{"type": "string"}]}`,
		`{"properties": {}}`,
	} {
		_, err := h.Parse(input)
		assert.NoError(t, err, input)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
		msg   string
	}{
		{"schema", userSchema, true, ""},
		{"empty", "", false, "Empty input"},
		{"garbage", "this is not valid input!@#$%", false, "Invalid JSON:"},
		{"string", `"hello"`, false, "Input must be a JSON object"},
		{"no keywords", `{}`, false, "Missing type, properties, or combinators"},
	}

	h := &Handler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := h.Validate(tt.input)
			assert.Equal(t, tt.valid, v.Valid)
			if tt.msg != "" {
				assert.Contains(t, v.Error, tt.msg)
			} else {
				assert.Empty(t, v.Error)
			}
		})
	}
}

func TestGenerate_Constructed(t *testing.T) {
	schema := jschema.Object()
	schema.Title = "User"
	schema.Properties.Set("email", jschema.Nullable(jschema.Of(jschema.KindString)))

	out, err := (&Handler{}).Generate(schema)
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "User"`)
	assert.Contains(t, out, "\"type\": [\n        \"string\",\n        \"null\"\n      ]")
}

func TestGenerate_Nil(t *testing.T) {
	_, err := (&Handler{}).Generate(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, translate.ErrGeneration))
}
