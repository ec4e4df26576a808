// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prisma

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/dacolabs/schemamap/internal/jschema"
	"github.com/dacolabs/schemamap/internal/translate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prop(t *testing.T, s *jschema.Schema, name string) *jschema.Schema {
	t.Helper()
	p, ok := s.Properties.Get(name)
	require.True(t, ok, "missing property %q", name)
	return p
}

func TestParse_Model(t *testing.T) {
	input := `model User {
  name   String
  age    Int
  active Boolean?
  tags   String[]
}`

	schema, err := (&Handler{}).Parse(input)
	require.NoError(t, err)

	assert.Equal(t, "User", schema.Title)
	assert.Equal(t, []string{"name", "age", "tags"}, schema.Required)
	assert.NotContains(t, schema.Required, "active")
	assert.Equal(t, []string{"boolean", "null"}, prop(t, schema, "active").Types)
	assert.Equal(t, jschema.KindString, prop(t, schema, "tags").Items.PrimaryKind())
}

func TestParse_Attributes(t *testing.T) {
	input := `datasource db {
  provider = "postgresql"
  url      = env("DATABASE_URL")
}

model Post {
  id        Int      @id @default(autoincrement())
  // the headline
  title     String   @default("untitled")
  views     Int      @default(0)
  createdAt DateTime @default(now()) @map("created_at")
  payload   Json?
  price     Decimal
  author    User     @relation(fields: [authorId], references: [id])

  @@index([title])
}`

	schema, err := (&Handler{}).Parse(input)
	require.NoError(t, err)

	assert.Equal(t, "Post", schema.Title)
	assert.Equal(t, []string{"id", "title", "views", "created_at", "payload", "price", "author"}, schema.Properties.Keys())

	title := prop(t, schema, "title")
	v, ok := title.DefaultValue()
	require.True(t, ok)
	assert.Equal(t, "untitled", v)

	views := prop(t, schema, "views")
	assert.Equal(t, `0`, string(views.Default))
	assert.False(t, prop(t, schema, "id").HasDefault())

	assert.Equal(t, "date-time", prop(t, schema, "created_at").Format)
	assert.True(t, prop(t, schema, "payload").AllowsAdditional())
	assert.Equal(t, jschema.KindNumber, prop(t, schema, "price").PrimaryKind())
	assert.Equal(t, jschema.KindString, prop(t, schema, "author").PrimaryKind())
}

func TestParse_Enum(t *testing.T) {
	schema, err := (&Handler{}).Parse("enum Role {\n  ADMIN\n  USER\n}")
	require.NoError(t, err)

	assert.Equal(t, "Role", schema.Title)
	assert.Equal(t, []string{"string"}, schema.Types)
	assert.Equal(t, []any{"ADMIN", "USER"}, schema.Enum)

	out, err := (&Handler{}).Generate(schema)
	require.NoError(t, err)
	assert.Equal(t, "enum Role {\n  ADMIN\n  USER\n}", out)
}

func TestParse_EnumSingleLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []any
	}{
		{"one line", "enum Role { ADMIN USER }", []any{"ADMIN", "USER"}},
		{"mixed", "enum Role {\n  ADMIN USER\n  GUEST\n}", []any{"ADMIN", "USER", "GUEST"}},
		{"attribute ends values", "enum Role {\n  ADMIN @map(\"admin\") USER\n}", []any{"ADMIN"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := (&Handler{}).Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, schema.Enum)
		})
	}

	schema, err := (&Handler{}).Parse("enum Role { ADMIN USER }")
	require.NoError(t, err)
	out, err := (&Handler{}).Generate(schema)
	require.NoError(t, err)
	assert.Equal(t, "enum Role {\n  ADMIN\n  USER\n}", out)
}

func TestParse_EnumsAndModels(t *testing.T) {
	input := `model User {
  id   Int  @id
  role Role @default(USER)
}

enum Role {
  ADMIN
  USER @map("user")
}`

	schema, err := (&Handler{}).Parse(input)
	require.NoError(t, err)

	assert.Equal(t, jschema.RootTitle, schema.Title)
	assert.Equal(t, []string{"Role", "User"}, schema.Definitions.Keys())

	user, _ := schema.Definitions.Get("User")
	assert.Equal(t, []string{"ADMIN", "USER"}, prop(t, user, "role").EnumStrings())

	out, err := (&Handler{}).Generate(schema)
	require.NoError(t, err)
	want := `enum Role {
  ADMIN
  USER
}

model User {
  id   Int
  role Role
}`
	assert.Equal(t, want, out)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  error
	}{
		{"empty", "", translate.ErrEmptyInput},
		{"generator only", "generator client {\n  provider = \"prisma-client-js\"\n}", translate.ErrNoDeclaration},
		{"empty model", "model User {\n}", translate.ErrNoFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&Handler{}).Parse(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind))
		})
	}
}

func TestGenerate_Model(t *testing.T) {
	schema := jschema.Object()
	schema.Title = "Account"
	schema.Properties.Set("id", jschema.Of(jschema.KindInteger))
	schema.Properties.Set("email", jschema.Nullable(jschema.Of(jschema.KindString)))
	schema.Properties.Set("created-at", &jschema.Schema{Types: []string{"string"}, Format: "date-time"})
	schema.Properties.Set("scores", jschema.ArrayOf(jschema.Of(jschema.KindNumber)))
	schema.Properties.Set("meta", jschema.MapOf(nil))
	status := jschema.StringEnum("on", "off")
	status.Default = jschema.Raw("on")
	schema.Properties.Set("status", status)
	schema.Required = []string{"id", "email", "created-at", "scores", "status"}

	out, err := (&Handler{}).Generate(schema)
	require.NoError(t, err)

	want := `model Account {
  id        Int
  email     String?
  createdAt DateTime @map("created-at")
  scores    Float[]
  meta      Json?
  status    String   @default("on")
}`
	assert.Equal(t, want, out)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"model", "model A {\n  b String\n}", true},
		{"enum", "enum A { B }", true},
		{"empty", "", false},
		{"garbage", "this is not valid input!@#$%", false},
		{"unterminated", "model A {", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := (&Handler{}).Validate(tt.input)
			assert.Equal(t, tt.valid, v.Valid)
			if !tt.valid {
				assert.NotEmpty(t, v.Error)
			}
		})
	}
}
