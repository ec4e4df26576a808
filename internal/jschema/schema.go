// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package jschema defines the canonical schema model every conversion passes
// through, together with its order-preserving JSON codec and traversal helpers.
package jschema

import (
	"encoding/json"
	"slices"
	"strings"
)

// Kind names used in Types.
const (
	KindString  = "string"
	KindInteger = "integer"
	KindNumber  = "number"
	KindBoolean = "boolean"
	KindNull    = "null"
	KindArray   = "array"
	KindObject  = "object"
)

// RootTitle is the title of the synthetic root produced when a source text
// holds more than one named type.
const RootTitle = "Root"

// Schema is a JSON-Schema-shaped node.
//
// Nullability is expressed only through Types, as the pair {kind, "null"}.
// A boolean schema (true/false) has Bool set and nothing else.
type Schema struct {
	Bool *bool

	SchemaURI   string
	ID          string
	Ref         string
	Title       string
	Description string

	Types  []string
	Format string
	Enum   []any
	// Const and Default hold raw JSON so that a JSON null is representable.
	Const   json.RawMessage
	Default json.RawMessage

	Minimum   *float64
	Maximum   *float64
	MinLength *int
	MaxLength *int
	MinItems  *int
	MaxItems  *int
	Pattern   string

	Items                *Schema
	Properties           *Map
	Required             []string
	AdditionalProperties *Schema

	OneOf []*Schema
	AnyOf []*Schema
	AllOf []*Schema

	Definitions *Map
	Defs        *Map

	// Extra holds keywords this model does not interpret, in source order.
	Extra []Keyword

	// keyOrder records keyword order as decoded, so passthrough output keeps it.
	keyOrder []string
}

// Keyword is an uninterpreted keyword/value pair.
type Keyword struct {
	Name  string
	Value json.RawMessage
}

// Of returns a schema of a single kind.
func Of(kind string) *Schema {
	return &Schema{Types: []string{kind}}
}

// Object returns an object schema with an empty, non-nil property map.
func Object() *Schema {
	return &Schema{Types: []string{KindObject}, Properties: NewMap()}
}

// ArrayOf returns an array schema with the given element schema.
func ArrayOf(items *Schema) *Schema {
	return &Schema{Types: []string{KindArray}, Items: items}
}

// Any returns the empty schema, which accepts every value.
func Any() *Schema {
	return &Schema{}
}

// True returns the boolean schema true.
func True() *Schema {
	b := true
	return &Schema{Bool: &b}
}

// False returns the boolean schema false.
func False() *Schema {
	b := false
	return &Schema{Bool: &b}
}

// MapOf returns a generic map schema. A nil value schema means any value.
func MapOf(value *Schema) *Schema {
	s := Of(KindObject)
	if value == nil || value.IsAny() {
		s.AdditionalProperties = True()
	} else {
		s.AdditionalProperties = value
	}
	return s
}

// StringEnum returns a string schema restricted to the given values.
func StringEnum(values ...string) *Schema {
	s := Of(KindString)
	s.Enum = make([]any, len(values))
	for i, v := range values {
		s.Enum[i] = v
	}
	return s
}

// RefTo returns a reference to a named definition.
func RefTo(name string) *Schema {
	return &Schema{Ref: "#/definitions/" + name}
}

// Nullable returns a copy of s whose kind is paired with "null".
// A schema without a kind is treated as a string, matching the lossy default.
func Nullable(s *Schema) *Schema {
	c := s.Clone()
	if c.IsNullable() {
		return c
	}
	kind := c.PrimaryKind()
	if kind == "" {
		kind = KindString
	}
	c.Types = []string{kind, KindNull}
	return c
}

// OrNull returns a schema that also admits null. Kinded schemas get the
// {kind, "null"} pair; references and unions are widened with a null member.
func OrNull(s *Schema) *Schema {
	switch {
	case s == nil || s.IsAny():
		return Any()
	case s.Ref != "":
		return &Schema{AnyOf: []*Schema{s, Of(KindNull)}}
	case len(s.OneOf) > 0 && len(s.Types) == 0:
		c := s.Clone()
		c.OneOf = append(c.OneOf, Of(KindNull))
		return c
	case len(s.AnyOf) > 0 && len(s.Types) == 0:
		c := s.Clone()
		c.AnyOf = append(c.AnyOf, Of(KindNull))
		return c
	}
	return Nullable(s)
}

// NullableMember returns X when s is a two-member oneOf/anyOf of X and null.
func (s *Schema) NullableMember() (*Schema, bool) {
	if s == nil {
		return nil, false
	}
	for _, members := range [][]*Schema{s.AnyOf, s.OneOf} {
		if len(members) != 2 {
			continue
		}
		for i, m := range members {
			if m.isNullOnly() {
				return members[1-i], true
			}
		}
	}
	return nil, false
}

func (s *Schema) isNullOnly() bool {
	return s != nil && len(s.Types) == 1 && s.Types[0] == KindNull && s.Ref == ""
}

// Clone returns a shallow copy of s. Slices are copied; nested schemas are shared.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	c := *s
	c.Types = slices.Clone(s.Types)
	c.Enum = slices.Clone(s.Enum)
	c.Required = slices.Clone(s.Required)
	c.OneOf = slices.Clone(s.OneOf)
	c.AnyOf = slices.Clone(s.AnyOf)
	c.AllOf = slices.Clone(s.AllOf)
	c.Extra = slices.Clone(s.Extra)
	c.keyOrder = slices.Clone(s.keyOrder)
	return &c
}

// PrimaryKind returns the first non-null kind, or "" when none is set.
func (s *Schema) PrimaryKind() string {
	if s == nil {
		return ""
	}
	for _, t := range s.Types {
		if t != KindNull {
			return t
		}
	}
	return ""
}

// IsNullable reports whether the kind list includes "null".
func (s *Schema) IsNullable() bool {
	return s != nil && slices.Contains(s.Types, KindNull)
}

// IsRequired reports whether name is listed in Required.
func (s *Schema) IsRequired(name string) bool {
	return s != nil && slices.Contains(s.Required, name)
}

// IsAny reports whether s places no constraint on its value.
func (s *Schema) IsAny() bool {
	if s == nil {
		return true
	}
	if s.Bool != nil {
		return *s.Bool
	}
	return len(s.Types) == 0 && s.Ref == "" && len(s.Enum) == 0 && s.Const == nil &&
		s.Items == nil && s.Properties == nil && s.AdditionalProperties == nil &&
		len(s.OneOf) == 0 && len(s.AnyOf) == 0 && len(s.AllOf) == 0 && s.Format == ""
}

// IsFalse reports whether s is the boolean schema false.
func (s *Schema) IsFalse() bool {
	return s != nil && s.Bool != nil && !*s.Bool
}

// AllowsAdditional reports whether additionalProperties marks s as a generic map.
func (s *Schema) AllowsAdditional() bool {
	return s != nil && s.AdditionalProperties != nil && !s.AdditionalProperties.IsFalse()
}

// HasProperties reports whether s declares at least one property.
func (s *Schema) HasProperties() bool {
	return s != nil && s.Properties.Len() > 0
}

// IsStringEnum reports whether s is a string-kinded enumeration.
func (s *Schema) IsStringEnum() bool {
	if s == nil || len(s.Enum) == 0 {
		return false
	}
	if k := s.PrimaryKind(); k != "" && k != KindString {
		return false
	}
	for _, v := range s.Enum {
		if _, ok := v.(string); !ok {
			return false
		}
	}
	return true
}

// EnumStrings returns the enum values rendered as strings.
func (s *Schema) EnumStrings() []string {
	out := make([]string, 0, len(s.Enum))
	for _, v := range s.Enum {
		out = append(out, valueString(v))
	}
	return out
}

// RefName returns the last path segment of Ref, or "" without a reference.
func (s *Schema) RefName() string {
	if s == nil {
		return ""
	}
	return RefBase(s.Ref)
}

// RefBase returns the last path segment of a reference string.
func RefBase(ref string) string {
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

// IsFileRef returns true if ref is an external file reference.
// File refs do not start with "#/".
func IsFileRef(ref string) bool {
	return ref != "" && !strings.HasPrefix(ref, "#")
}

// AllDefinitions returns definitions followed by $defs without duplicates.
func (s *Schema) AllDefinitions() *Map {
	if s == nil {
		return nil
	}
	switch {
	case s.Defs.Len() == 0:
		return s.Definitions
	case s.Definitions.Len() == 0:
		return s.Defs
	}
	merged := NewMap()
	for name, def := range s.Definitions.All() {
		merged.Set(name, def)
	}
	for name, def := range s.Defs.All() {
		if _, ok := merged.Get(name); !ok {
			merged.Set(name, def)
		}
	}
	return merged
}

// HasDefault reports whether a default value is present.
func (s *Schema) HasDefault() bool {
	return s != nil && s.Default != nil
}

// DefaultValue decodes the default value.
func (s *Schema) DefaultValue() (any, bool) {
	if !s.HasDefault() {
		return nil, false
	}
	v, err := decodeValue(s.Default)
	if err != nil {
		return nil, false
	}
	return v, true
}

// Raw encodes v as a raw JSON value for Const or Default.
func Raw(v any) json.RawMessage {
	b, err := marshalNoEscape(v)
	if err != nil {
		return json.RawMessage("null")
	}
	return b
}
