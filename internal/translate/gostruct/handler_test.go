// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package gostruct

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

func TestParse_User(t *testing.T) {
	input := "type User struct {\n\tName string `json:\"name\"`\n\tAge int `json:\"age\"`\n}"

	schema, err := (&Handler{}).Parse(input)
	require.NoError(t, err)

	assert.Equal(t, "User", schema.Title)
	assert.Equal(t, []string{"name", "age"}, schema.Required)
	assert.Equal(t, jschema.KindInteger, prop(t, schema, "age").PrimaryKind())
}

func TestParse_Fields(t *testing.T) {
	input := "type Account struct {\n" +
		"\t// ID is the primary key\n" +
		"\tID        int64             `json:\"id\" db:\"id\"`\n" +
		"\tEmail     *string           `json:\"email,omitempty\"`\n" +
		"\tCreatedAt time.Time         `json:\"created_at\"`\n" +
		"\tScores    []float64         `json:\"scores\"`\n" +
		"\tLabels    map[string]string `json:\"labels\"`\n" +
		"\tMeta      interface{}       `json:\"meta\"`\n" +
		"\tSecret    string            `json:\"-\"`\n" +
		"\tDisplayName string\n" +
		"\tinternal  string\n" +
		"\tX, Y      int\n" +
		"}"

	schema, err := (&Handler{}).Parse(input)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "email", "created_at", "scores", "labels", "meta", "displayName", "x", "y"}, schema.Properties.Keys())
	assert.NotContains(t, schema.Required, "email")
	assert.Contains(t, schema.Required, "displayName")

	assert.Equal(t, []string{"string", "null"}, prop(t, schema, "email").Types)
	assert.Equal(t, "date-time", prop(t, schema, "created_at").Format)
	assert.Equal(t, jschema.KindNumber, prop(t, schema, "scores").Items.PrimaryKind())
	assert.Equal(t, jschema.KindString, prop(t, schema, "labels").AdditionalProperties.PrimaryKind())
	assert.True(t, prop(t, schema, "meta").IsAny())
	assert.Equal(t, jschema.KindInteger, prop(t, schema, "y").PrimaryKind())
}

func TestParse_TypeMapping(t *testing.T) {
	tests := []struct {
		goType string
		want   []string
	}{
		{"uint8", []string{"integer"}},
		{"float32", []string{"number"}},
		{"bool", []string{"boolean"}},
		{"[]byte", []string{"string"}},
		{"*int", []string{"integer", "null"}},
		{"Custom", []string{"string"}},
		{"[3]int", []string{"array"}},
	}

	for _, tt := range tests {
		t.Run(tt.goType, func(t *testing.T) {
			schema, err := (&Handler{}).Parse("type T struct {\n\tF " + tt.goType + "\n}")
			require.NoError(t, err)
			assert.Equal(t, tt.want, prop(t, schema, "f").Types)
		})
	}
}

func TestParse_MultipleStructs(t *testing.T) {
	input := "type Role string\n\n" +
		"const (\n\tRoleAdmin Role = \"ADMIN\"\n\tRoleUser  Role = \"USER\"\n)\n\n" +
		"type Address struct {\n\tCity string `json:\"city\"`\n}\n\n" +
		"type User struct {\n\tRole    Role     `json:\"role\"`\n\tAddress *Address `json:\"address,omitempty\"`\n}"

	schema, err := (&Handler{}).Parse(input)
	require.NoError(t, err)

	assert.Equal(t, jschema.RootTitle, schema.Title)
	assert.Equal(t, []string{"Role", "Address", "User"}, schema.Definitions.Keys())

	role, _ := schema.Definitions.Get("Role")
	assert.Equal(t, []string{"ADMIN", "USER"}, role.EnumStrings())

	user, _ := schema.Definitions.Get("User")
	assert.Equal(t, "Role", prop(t, user, "role").RefName())
	member, ok := prop(t, user, "address").NullableMember()
	require.True(t, ok)
	assert.Equal(t, "Address", member.RefName())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  error
	}{
		{"empty", "\n\t", translate.ErrEmptyInput},
		{"no struct", "type Role string", translate.ErrNoDeclaration},
		{"unterminated", "type User struct {\n\tName string", translate.ErrNoDeclaration},
		{"no fields", "type User struct {\n\tinternal string\n}", translate.ErrNoFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&Handler{}).Parse(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind))
		})
	}
}

func TestGenerate_Struct(t *testing.T) {
	schema := jschema.Object()
	schema.Title = "user_profile"
	schema.Properties.Set("user_id", jschema.Of(jschema.KindInteger))
	schema.Properties.Set("name", jschema.Of(jschema.KindString))
	schema.Properties.Set("email", jschema.Nullable(jschema.Of(jschema.KindString)))
	schema.Properties.Set("created_at", &jschema.Schema{Types: []string{"string"}, Format: "date-time"})
	schema.Properties.Set("meta", jschema.MapOf(nil))
	schema.Properties.Set("any", jschema.Any())
	schema.Required = []string{"user_id", "name"}

	out, err := (&Handler{}).Generate(schema)
	require.NoError(t, err)

	want := "type UserProfile struct {\n" +
		"\tUserID    int                    `json:\"user_id\"`\n" +
		"\tName      string                 `json:\"name\"`\n" +
		"\tEmail     *string                `json:\"email,omitempty\"`\n" +
		"\tCreatedAt time.Time              `json:\"created_at,omitempty\"`\n" +
		"\tMeta      map[string]interface{} `json:\"meta,omitempty\"`\n" +
		"\tAny       interface{}            `json:\"any,omitempty\"`\n" +
		"}"
	assert.Equal(t, want, out)
}

func TestGenerate_CollidingFieldNames(t *testing.T) {
	schema := jschema.Object()
	schema.Title = "Event"
	schema.Properties.Set("user_id", jschema.Of(jschema.KindString))
	schema.Properties.Set("userId", jschema.Of(jschema.KindString))
	schema.Required = []string{"user_id", "userId"}

	out, err := (&Handler{}).Generate(schema)
	require.NoError(t, err)

	want := "type Event struct {\n" +
		"\tUserID  string `json:\"user_id\"`\n" +
		"\tUserID2 string `json:\"userId\"`\n" +
		"}"
	assert.Equal(t, want, out)
}

func TestGenerate_DefinitionsAndNested(t *testing.T) {
	address := jschema.Object()
	address.Properties.Set("city", jschema.Of(jschema.KindString))

	user := jschema.Object()
	user.Properties.Set("role", jschema.RefTo("Role"))
	user.Properties.Set("home_address", address)
	user.Required = []string{"role", "home_address"}

	schema := jschema.Object()
	schema.Title = jschema.RootTitle
	schema.Definitions = jschema.NewMap()
	schema.Definitions.Set("Role", jschema.StringEnum("ADMIN", "in_progress"))
	schema.Definitions.Set("User", user)

	out, err := (&Handler{}).Generate(schema)
	require.NoError(t, err)

	want := "type Role string\n\n" +
		"const (\n" +
		"\tRoleAdmin      Role = \"ADMIN\"\n" +
		"\tRoleInProgress Role = \"in_progress\"\n" +
		")\n\n" +
		"type User struct {\n" +
		"\tRole        Role        `json:\"role\"`\n" +
		"\tHomeAddress HomeAddress `json:\"home_address\"`\n" +
		"}\n\n" +
		"type HomeAddress struct {\n" +
		"\tCity string `json:\"city,omitempty\"`\n" +
		"}"
	assert.Equal(t, want, out)
}

func TestRoundTrip(t *testing.T) {
	input := "type Role string\n\n" +
		"const (\n\tRoleAdmin Role = \"ADMIN\"\n)\n\n" +
		"type User struct {\n" +
		"\tName string `json:\"name\"`\n" +
		"\tAge  *int   `json:\"age,omitempty\"`\n" +
		"\tRole Role   `json:\"role\"`\n" +
		"}"

	h := &Handler{}
	first, err := h.Parse(input)
	require.NoError(t, err)
	out, err := h.Generate(first)
	require.NoError(t, err)
	second, err := h.Parse(out)
	require.NoError(t, err)

	assert.Equal(t, first.Definitions.Keys(), second.Definitions.Keys())
	u1, _ := first.Definitions.Get("User")
	u2, _ := second.Definitions.Get("User")
	assert.Equal(t, u1.Properties.Keys(), u2.Properties.Keys())
	assert.Equal(t, u1.Required, u2.Required)
	assert.Equal(t, prop(t, u1, "age").Types, prop(t, u2, "age").Types)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
		msg   string
	}{
		{"struct", "type A struct {\n\tB string\n}", true, ""},
		{"empty", "", false, "Empty input"},
		{"garbage", "this is not valid input!@#$%", false, "No Go struct definition found"},
		{"unterminated", "type A struct {", false, "Could not parse struct body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := (&Handler{}).Validate(tt.input)
			assert.Equal(t, tt.valid, v.Valid)
			assert.Contains(t, v.Error, tt.msg)
		})
	}
}
