// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"simple.yaml": &fstest.MapFile{Data: []byte(`type: object
properties:
  zeta:
    type: string
  alpha:
    type: integer
    minimum: 0
  active:
    type: boolean
    default: true
required: [zeta]
`)},
		"simple.json": &fstest.MapFile{Data: []byte(`{"type":"object","properties":{"name":{"type":"string"},"age":{"type":"integer"}}}`)},
		"with-file-ref.yaml": &fstest.MapFile{Data: []byte(`type: object
properties:
  data:
    $ref: ./external.yaml
  local:
    $ref: "#/definitions/Local"
definitions:
  Local:
    type: string
`)},
		"external.yaml": &fstest.MapFile{Data: []byte(`type: object
properties:
  id:
    type: string
  value:
    type: number
`)},
		"nested/main.json":        &fstest.MapFile{Data: []byte(`{"type":"object","properties":{"child":{"$ref":"child.json"}}}`)},
		"nested/child.json":       &fstest.MapFile{Data: []byte(`{"type":"object","properties":{"leaf":{"$ref":"sub/leaf.json"}}}`)},
		"nested/sub/leaf.json":    &fstest.MapFile{Data: []byte(`{"type":"boolean","title":"Leaf"}`)},
		"broken-ref.json":         &fstest.MapFile{Data: []byte(`{"properties":{"x":{"$ref":"missing.json"}}}`)},
		"invalid.yaml":            &fstest.MapFile{Data: []byte("{{invalid yaml")},
		"invalid.json":            &fstest.MapFile{Data: []byte("{invalid json}")},
		"anchors.yml":             &fstest.MapFile{Data: []byte("base: &b {type: string}\nproperties:\n  a: *b\n")},
		"empty-document.yaml":     &fstest.MapFile{Data: []byte("")},
		"quoted-scalars.yaml":     &fstest.MapFile{Data: []byte("type: string\nenum: [\"1\", yes, 2]\n")},
		"not-a-schema-root.json":  &fstest.MapFile{Data: []byte(`[]`)},
		"description-html.yaml":   &fstest.MapFile{Data: []byte("description: a <b> & c\n")},
		"unsupported-extension.x": &fstest.MapFile{Data: []byte(`{"type":"string"}`)},
	}
}

func TestLoadFile_YAML(t *testing.T) {
	schema, err := NewLoader(testFS()).LoadFile("simple.yaml")
	require.NoError(t, err)

	assert.Equal(t, KindObject, schema.PrimaryKind())
	assert.Equal(t, []string{"zeta", "alpha", "active"}, schema.Properties.Keys())
	assert.Equal(t, []string{"zeta"}, schema.Required)

	alpha, _ := schema.Properties.Get("alpha")
	require.NotNil(t, alpha.Minimum)
	assert.InDelta(t, 0.0, *alpha.Minimum, 0)

	active, _ := schema.Properties.Get("active")
	assert.Equal(t, "true", string(active.Default))
}

func TestLoadFile_JSON(t *testing.T) {
	schema, err := NewLoader(testFS()).LoadFile("simple.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age"}, schema.Properties.Keys())
}

func TestLoadFile_YAMLScalars(t *testing.T) {
	loader := NewLoader(testFS())

	anchors, err := loader.LoadFile("anchors.yml")
	require.NoError(t, err)
	a, ok := anchors.Properties.Get("a")
	require.True(t, ok)
	assert.Equal(t, KindString, a.PrimaryKind())

	quoted, err := loader.LoadFile("quoted-scalars.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "yes", "2"}, quoted.EnumStrings())

	html, err := loader.LoadFile("description-html.yaml")
	require.NoError(t, err)
	assert.Equal(t, "a <b> & c", html.Description)
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"not found", "nonexistent.yaml"},
		{"invalid yaml", "invalid.yaml"},
		{"invalid json", "invalid.json"},
		{"empty yaml document", "empty-document.yaml"},
		{"array root", "not-a-schema-root.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(testFS()).LoadFile(tt.path)
			require.Error(t, err)
		})
	}
}

func TestLoadFile_OtherExtensionsAreJSON(t *testing.T) {
	schema, err := NewLoader(testFS()).LoadFile("unsupported-extension.x")
	require.NoError(t, err)
	assert.Equal(t, KindString, schema.PrimaryKind())
}

func TestResolveRefs_SimpleFileRef(t *testing.T) {
	loader := NewLoader(testFS())
	schema, err := loader.LoadFile("with-file-ref.yaml")
	require.NoError(t, err)

	data, _ := schema.Properties.Get("data")
	assert.Equal(t, "./external.yaml", data.Ref)

	require.NoError(t, loader.ResolveRefs(schema, "."))

	data, _ = schema.Properties.Get("data")
	assert.Empty(t, data.Ref)
	assert.Equal(t, KindObject, data.PrimaryKind())
	assert.Equal(t, []string{"id", "value"}, data.Properties.Keys())

	local, _ := schema.Properties.Get("local")
	assert.Equal(t, "#/definitions/Local", local.Ref)
}

func TestResolveRefs_NestedFileRefs(t *testing.T) {
	loader := NewLoader(testFS())
	schema, err := loader.LoadFile("nested/main.json")
	require.NoError(t, err)
	require.NoError(t, loader.ResolveRefs(schema, "nested"))

	child, _ := schema.Properties.Get("child")
	leaf, ok := child.Properties.Get("leaf")
	require.True(t, ok)
	assert.Equal(t, "Leaf", leaf.Title)
	assert.Equal(t, KindBoolean, leaf.PrimaryKind())
}

func TestResolveRefs_MissingFile(t *testing.T) {
	loader := NewLoader(testFS())
	schema, err := loader.LoadFile("broken-ref.json")
	require.NoError(t, err)
	require.Error(t, loader.ResolveRefs(schema, "."))
}

func TestYAMLToJSON_KeepsOrder(t *testing.T) {
	out, err := YAMLToJSON([]byte("b: 1\na: [x, 2.5, null, false]\n"))
	require.NoError(t, err)
	assert.Equal(t, `{"b":1,"a":["x",2.5,null,false]}`, string(out))
}

func TestYAMLToJSON_Aliases(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{name: "shared anchor", input: "a: &x {t: 1}\nb: *x\n", want: `{"a":{"t":1},"b":{"t":1}}`},
		{name: "self reference", input: "a: &x\n  b: *x\n", wantErr: "refers to itself"},
		{name: "sequence cycle", input: "a: &x [1, *x]\n", wantErr: "refers to itself"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := YAMLToJSON([]byte(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestYAMLToJSON_AliasExpansionLimit(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i < 8; i++ {
		fmt.Fprintf(&sb, "l%d: &l%d [*l%d, *l%d, *l%d, *l%d, *l%d, *l%d, *l%d, *l%d, *l%d, *l%d]\n",
			i, i, i-1, i-1, i-1, i-1, i-1, i-1, i-1, i-1, i-1, i-1)
	}

	_, err := YAMLToJSON([]byte(sb.String()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alias expansions")
}

func TestResolveRefs_Circular(t *testing.T) {
	fsys := fstest.MapFS{
		"cycle/a.json":    &fstest.MapFile{Data: []byte(`{"properties":{"b":{"$ref":"b.json"}}}`)},
		"cycle/b.json":    &fstest.MapFile{Data: []byte(`{"properties":{"a":{"$ref":"a.json"}}}`)},
		"cycle/self.json": &fstest.MapFile{Data: []byte(`{"properties":{"me":{"$ref":"self.json"}}}`)},
	}
	loader := NewLoader(fsys)

	for _, file := range []string{"cycle/a.json", "cycle/self.json"} {
		t.Run(file, func(t *testing.T) {
			schema, err := loader.LoadFile(file)
			require.NoError(t, err)
			err = loader.ResolveRefs(schema, "cycle")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "circular $ref")
		})
	}
}
