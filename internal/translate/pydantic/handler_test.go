// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package pydantic

import (
	"strings"
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

const userSource = `class User(BaseModel):
    name: str
    age: int
    active: Optional[bool] = None
    tags: Optional[List[str]] = None`

func TestParse_Model(t *testing.T) {
	schema, err := (&Handler{}).Parse(userSource)
	require.NoError(t, err)

	assert.Equal(t, "User", schema.Title)
	assert.Equal(t, []string{"name", "age", "active", "tags"}, schema.Properties.Keys())
	assert.Equal(t, []string{"name", "age"}, schema.Required)
	assert.Equal(t, []string{"boolean", "null"}, prop(t, schema, "active").Types)
	assert.Equal(t, []string{"array", "null"}, prop(t, schema, "tags").Types)
	assert.Equal(t, jschema.KindString, prop(t, schema, "tags").Items.PrimaryKind())
}

func TestParse_Members(t *testing.T) {
	input := `from typing import Optional, List
from pydantic import BaseModel, Field


class Address(BaseModel):
    """Postal address."""
    city: str
    zip_code: str | None


class Role(str, Enum):
    ADMIN = "admin"
    USER = auto()


class User(BaseModel):
    id: UUID
    name: str = Field(..., alias="full-name", description="Display name")
    email: EmailStr
    score: float = 0.5
    active: bool = Field(default=True)
    tags: list[str] = Field(default_factory=list)
    meta: Dict[str, int]
    role: Role
    address: Optional["Address"] = None
    kind: Literal["a", "b"]
    created: datetime  # creation time
    model_config = ConfigDict(populate_by_name=True)

    def display(self) -> str:
        label: str = self.name
        return label
`

	schema, err := (&Handler{}).Parse(input)
	require.NoError(t, err)
	require.Equal(t, []string{"Address", "Role", "User"}, schema.Definitions.Keys())

	address, _ := schema.Definitions.Get("Address")
	assert.Equal(t, "Postal address.", address.Description)
	assert.Equal(t, []string{"city"}, address.Required)
	assert.Equal(t, []string{"string", "null"}, prop(t, address, "zip_code").Types)

	role, _ := schema.Definitions.Get("Role")
	assert.Equal(t, []string{"admin", "USER"}, role.EnumStrings())

	user, _ := schema.Definitions.Get("User")
	assert.Equal(t, []string{"id", "full-name", "email", "score", "active", "tags", "meta", "role", "address", "kind", "created"}, user.Properties.Keys())
	assert.Equal(t, []string{"id", "full-name", "email", "meta", "role", "kind", "created"}, user.Required)

	assert.Equal(t, "uuid", prop(t, user, "id").Format)
	assert.Equal(t, "Display name", prop(t, user, "full-name").Description)
	assert.Equal(t, "email", prop(t, user, "email").Format)
	assert.JSONEq(t, `0.5`, string(prop(t, user, "score").Default))
	assert.JSONEq(t, `true`, string(prop(t, user, "active").Default))
	assert.Equal(t, jschema.KindString, prop(t, user, "tags").Items.PrimaryKind())
	assert.Equal(t, jschema.KindInteger, prop(t, user, "meta").AdditionalProperties.PrimaryKind())
	assert.Equal(t, "Role", prop(t, user, "role").RefName())
	assert.Equal(t, []string{"a", "b"}, prop(t, user, "kind").EnumStrings())
	assert.Equal(t, "date-time", prop(t, user, "created").Format)

	member, ok := prop(t, user, "address").NullableMember()
	require.True(t, ok)
	assert.Equal(t, "Address", member.RefName())
}

func TestParse_Types(t *testing.T) {
	tests := []struct {
		annotation string
		kinds      []string
		format     string
	}{
		{"str", []string{"string"}, ""},
		{"int", []string{"integer"}, ""},
		{"float", []string{"number"}, ""},
		{"Decimal", []string{"number"}, ""},
		{"bool", []string{"boolean"}, ""},
		{"date", []string{"string"}, "date"},
		{"datetime.datetime", []string{"string"}, "date-time"},
		{"HttpUrl", []string{"string"}, "uri"},
		{"Set[int]", []string{"array"}, ""},
		{"Tuple[int, ...]", []string{"array"}, ""},
		{"dict", []string{"object"}, ""},
		{"Annotated[int, Field(gt=0)]", []string{"integer"}, ""},
		{"int | None", []string{"integer", "null"}, ""},
		{"Union[str, None]", []string{"string", "null"}, ""},
		{"Whatever", []string{"string"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.annotation, func(t *testing.T) {
			schema, err := (&Handler{}).Parse("class M(BaseModel):\n    f: " + tt.annotation)
			require.NoError(t, err)
			f := prop(t, schema, "f")
			assert.Equal(t, tt.kinds, f.Types)
			assert.Equal(t, tt.format, f.Format)
		})
	}
}

func TestParse_Inheritance(t *testing.T) {
	input := "class Base(BaseModel):\n    id: int\n\nclass Admin(Base):\n    level: int\n\nclass Other(object):\n    x: int"

	schema, err := (&Handler{}).Parse(input)
	require.NoError(t, err)
	assert.Equal(t, []string{"Base", "Admin"}, schema.Definitions.Keys())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  error
	}{
		{"empty", "  \n", translate.ErrEmptyInput},
		{"plain class", "class User:\n    name: str", translate.ErrNoDeclaration},
		{"enum only", "class Role(str, Enum):\n    A = \"a\"", translate.ErrNoDeclaration},
		{"no fields", "class User(BaseModel):\n    pass", translate.ErrNoFields},
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
	created := jschema.Of(jschema.KindString)
	created.Format = "date-time"

	schema := jschema.Object()
	schema.Title = "User"
	schema.Properties.Set("name", jschema.Of(jschema.KindString))
	schema.Properties.Set("age", jschema.Of(jschema.KindInteger))
	schema.Properties.Set("active", jschema.Of(jschema.KindBoolean))
	schema.Properties.Set("tags", jschema.ArrayOf(jschema.Of(jschema.KindString)))
	schema.Properties.Set("created-at", created)
	schema.Properties.Set("role", jschema.StringEnum("admin", "user"))
	schema.Required = []string{"name", "age", "created-at"}

	out, err := (&Handler{}).Generate(schema)
	require.NoError(t, err)

	want := `from datetime import datetime
from typing import List, Literal, Optional

from pydantic import BaseModel, Field


class User(BaseModel):
    name: str
    age: int
    active: Optional[bool] = None
    tags: Optional[List[str]] = None
    created_at: datetime = Field(alias="created-at")
    role: Optional[Literal["admin", "user"]] = None`
	assert.Equal(t, want, out)
}

func TestGenerate_NeverDoubleOptional(t *testing.T) {
	schema := jschema.Object()
	schema.Title = "User"
	schema.Properties.Set("nickname", jschema.Nullable(jschema.Of(jschema.KindString)))
	schema.Properties.Set("anything", jschema.Any())
	schema.Properties.Set("count", &jschema.Schema{Types: []string{"integer"}, Default: jschema.Raw(3)})

	out, err := (&Handler{}).Generate(schema)
	require.NoError(t, err)

	assert.Contains(t, out, "    nickname: Optional[str] = None\n")
	assert.Contains(t, out, "    anything: Any = None\n")
	assert.Contains(t, out, "    count: Optional[int] = 3")
	assert.NotContains(t, out, "Optional[Optional")
	assert.Contains(t, out, "from typing import Any, Optional\n")
}

func TestGenerate_DefinitionsAndNested(t *testing.T) {
	address := jschema.Object()
	address.Properties.Set("city", jschema.Of(jschema.KindString))

	user := jschema.Object()
	user.Properties.Set("role", jschema.RefTo("Role"))
	user.Properties.Set("address", address)
	user.Required = []string{"role"}

	schema := jschema.Object()
	schema.Title = jschema.RootTitle
	schema.Definitions = jschema.NewMap()
	schema.Definitions.Set("Role", jschema.StringEnum("ADMIN", "in-progress"))
	schema.Definitions.Set("User", user)

	out, err := (&Handler{}).Generate(schema)
	require.NoError(t, err)

	want := `from enum import Enum
from typing import Optional

from pydantic import BaseModel


class Role(str, Enum):
    ADMIN = "ADMIN"
    IN_PROGRESS = "in-progress"


class Address(BaseModel):
    city: Optional[str] = None


class User(BaseModel):
    role: Role
    address: Optional[Address] = None`
	assert.Equal(t, want, out)
	assert.NotContains(t, out, "__future__")
}

func TestGenerate_DependenciesFirst(t *testing.T) {
	input := `{
  "title": "Order",
  "type": "object",
  "properties": {
    "customer": { "$ref": "#/definitions/Customer" },
    "lines": { "type": "array", "items": { "$ref": "#/definitions/Line" } }
  },
  "definitions": {
    "Line": {
      "type": "object",
      "properties": { "product": { "$ref": "#/definitions/Product" } }
    },
    "Customer": { "type": "object", "properties": { "name": { "type": "string" } } },
    "Product": { "type": "object", "properties": { "sku": { "type": "string" } } }
  }
}`
	schema, err := jschema.Decode([]byte(input))
	require.NoError(t, err)

	out, err := (&Handler{}).Generate(schema)
	require.NoError(t, err)

	order := []string{"class Product(", "class Line(", "class Customer(", "class Order("}
	last := -1
	for _, header := range order {
		at := strings.Index(out, header)
		require.GreaterOrEqual(t, at, 0, header)
		assert.Greater(t, at, last, header)
		last = at
	}
	assert.NotContains(t, out, "__future__")
}

func TestGenerate_RecursivePostponesAnnotations(t *testing.T) {
	node := jschema.Object()
	node.Properties.Set("children", jschema.ArrayOf(jschema.RefTo("Node")))

	schema := jschema.Object()
	schema.Title = jschema.RootTitle
	schema.Definitions = jschema.NewMap()
	schema.Definitions.Set("Node", node)

	out, err := (&Handler{}).Generate(schema)
	require.NoError(t, err)

	want := `from __future__ import annotations

from typing import List, Optional

from pydantic import BaseModel


class Node(BaseModel):
    children: Optional[List[Node]] = None`
	assert.Equal(t, want, out)
}

func TestGenerate_EmptyModel(t *testing.T) {
	schema := jschema.Object()
	schema.Title = "Empty"

	out, err := (&Handler{}).Generate(schema)
	require.NoError(t, err)
	assert.Equal(t, "from pydantic import BaseModel\n\n\nclass Empty(BaseModel):\n    pass", out)
}

func TestRoundTrip(t *testing.T) {
	h := &Handler{}
	first, err := h.Parse(userSource)
	require.NoError(t, err)

	out, err := h.Generate(first)
	require.NoError(t, err)
	assert.Contains(t, out, userSource)

	second, err := h.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, first.Properties.Keys(), second.Properties.Keys())
	assert.Equal(t, first.Required, second.Required)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		valid   bool
		message string
	}{
		{"model", userSource, true, ""},
		{"empty", "", false, "Empty input"},
		{"garbage", "this is not valid input!@#$%", false, `No Pydantic BaseModel class found (expected "class Name(BaseModel):")`},
		{"nested only", "    class User(BaseModel):\n        name: str", false, "Could not parse model body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := (&Handler{}).Validate(tt.input)
			assert.Equal(t, tt.valid, v.Valid)
			assert.Equal(t, tt.message, v.Error)
		})
	}
}
