// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/dacolabs/schemamap/internal/translate"
	"github.com/dacolabs/schemamap/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const prismaUser = `model User {
  name   String
  age    Int
  active Boolean?
  tags   String[]
}`

func TestMain(m *testing.M) {
	interactive = func() bool { return false }
	os.Exit(m.Run())
}

// execute runs the root command with args and stdin, returning stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd(func(string) string { return "" })
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestConvert_Stdin(t *testing.T) {
	out, err := execute(t, prismaUser, "convert", "--from", "prisma", "--to", "pydantic")
	require.NoError(t, err)
	assert.Contains(t, out, "class User(BaseModel):")
	assert.Contains(t, out, "active: Optional[bool] = None")
}

func TestConvert_FileToFile(t *testing.T) {
	input := writeTemp(t, "schema.prisma", prismaUser)
	output := filepath.Join(t.TempDir(), "user.go")

	out, err := execute(t, "", "convert", "-f", "prisma", "-t", "go-struct", "-i", input, "-o", output)
	require.NoError(t, err)
	assert.Contains(t, out, output)

	data, err := os.ReadFile(output) //nolint:gosec // test file path
	require.NoError(t, err)
	assert.Contains(t, string(data), "type User struct {")

	_, err = execute(t, "", "convert", "-f", "prisma", "-t", "go-struct", "-i", input, "-o", output)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.Contains(t, errors.FlattenHints(err), "--force")

	_, err = execute(t, "", "convert", "-f", "prisma", "-t", "go-struct", "-i", input, "-o", output, "--force")
	require.NoError(t, err)
}

func TestConvert_All(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	out, err := execute(t, prismaUser, "convert", "--from", "prisma", "--all", "-d", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 7 formats from Prisma")

	for _, f := range translate.Formats() {
		path := filepath.Join(dir, f.String()+f.Extension())
		assert.FileExists(t, path)
	}
}

func TestConvert_Errors(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr string
		kind    error
	}{
		{"missing source", prismaUser, []string{"convert", "--to", "zod"}, "--from is required", nil},
		{"missing target", prismaUser, []string{"convert", "--from", "prisma"}, "--to is required", nil},
		{"all and to", prismaUser, []string{"convert", "--from", "prisma", "--to", "zod", "--all"}, "mutually exclusive", nil},
		{"unsupported source", prismaUser, []string{"convert", "--from", "graphql", "--to", "zod"}, "Unsupported format: graphql", translate.ErrUnsupportedFormat},
		{"unsupported target", prismaUser, []string{"convert", "--from", "prisma", "--to", "graphql"}, "Unsupported format: graphql", translate.ErrUnsupportedFormat},
		{"empty input", "   ", []string{"convert", "--from", "prisma", "--to", "zod"}, "Empty input", translate.ErrEmptyInput},
		{"missing file", "", []string{"convert", "--from", "prisma", "--to", "zod", "-i", "does-not-exist.prisma"}, "failed to read", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			if tt.kind != nil {
				assert.True(t, errors.Is(err, tt.kind))
			}
		})
	}
}

func TestConvert_JSONSchemaYAML(t *testing.T) {
	input := writeTemp(t, "user.yaml", `type: object
title: User
properties:
  name:
    type: string
  age:
    type: integer
required: [name]
`)

	out, err := execute(t, "", "convert", "--from", "json-schema", "--to", "typescript", "-i", input)
	require.NoError(t, err)
	assert.Contains(t, out, "export interface User {")
	assert.Contains(t, out, "  name: string;")
	assert.Contains(t, out, "  age?: number;")
}

func TestConvert_ResolveRefs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "address.json"), []byte(`{
  "type": "object",
  "properties": {"city": {"type": "string"}},
  "required": ["city"]
}`), 0o600))
	input := filepath.Join(dir, "user.json")
	require.NoError(t, os.WriteFile(input, []byte(`{
  "type": "object",
  "title": "User",
  "properties": {
    "name": {"type": "string"},
    "address": {"$ref": "./address.json"}
  },
  "required": ["name", "address"]
}`), 0o600))

	out, err := execute(t, "", "convert", "--from", "json-schema", "--to", "go-struct", "-i", input, "--resolve-refs")
	require.NoError(t, err)
	assert.Contains(t, out, "type Address struct {")
	assert.Contains(t, out, "City string `json:\"city\"`")
}

func TestValidate(t *testing.T) {
	out, err := execute(t, prismaUser, "validate", "--format", "prisma")
	require.NoError(t, err)
	assert.Contains(t, out, "Valid Prisma input")

	out, err = execute(t, "this is not valid input!@#$%", "validate", "--format", "pydantic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid Pydantic input")
	assert.Contains(t, out, "No Pydantic BaseModel class found")

	_, err = execute(t, prismaUser, "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--format is required")
}

func TestValidate_Strict(t *testing.T) {
	out, err := execute(t, prismaUser, "validate", "--format", "prisma", "--strict")
	require.NoError(t, err)
	assert.Contains(t, out, "Valid Prisma input")

	// Structurally fine, but declares no usable fields.
	_, err = execute(t, "model Empty {\n  @@map(\"empty\")\n}", "validate", "--format", "prisma", "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid Prisma input")
}

func TestValidate_StrictDanglingRef(t *testing.T) {
	input := `{"type": "object", "properties": {"a": {"$ref": "#/definitions/Missing"}}}`
	out, err := execute(t, input, "validate", "--format", "json-schema", "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unresolved reference #/definitions/Missing")
	assert.Contains(t, out, "Unresolved reference")
}

func TestFormats(t *testing.T) {
	out, err := execute(t, "", "formats")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "EXTENSION")
	for _, f := range translate.Formats() {
		assert.Contains(t, out, f.String())
	}

	out, err = execute(t, "", "formats", "-o", "json")
	require.NoError(t, err)
	var infos []formatInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 7)
	assert.Equal(t, "typescript", infos[0].ID)
	assert.Equal(t, ".prisma", infos[5].Extension)

	out, err = execute(t, "", "formats", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "- id: go-struct")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version.Short()+"\n", out)

	out, err = execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "schemamap version")

	out, err = execute(t, "", "version", "-o", "json")
	require.NoError(t, err)
	var b version.Build
	require.NoError(t, json.Unmarshal([]byte(out), &b))
	assert.Equal(t, version.Short(), b.Version)
}

func TestRoot_InvalidConfig(t *testing.T) {
	path := writeTemp(t, "schemamap.yaml", "version: 3\n")
	_, err := execute(t, "", "--config", path, "formats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config version")
}

func TestRoot_ConfigDefaults(t *testing.T) {
	path := writeTemp(t, "schemamap.yaml", "version: 1\nsource: prisma\ntarget: typescript\n")
	out, err := execute(t, prismaUser, "--config", path, "convert")
	require.NoError(t, err)
	assert.Contains(t, out, "export interface User {")
}
