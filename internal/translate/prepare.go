// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"bytes"
	"strconv"
	"strings"
	"text/template"

	"github.com/dacolabs/schemamap/internal/jschema"
)

// prepareContext holds mutable state during schema preparation.
type prepareContext struct {
	resolver  TypeResolver
	taken     map[string]bool // formatted type names already in use
	extracted []TypeDef       // inline objects extracted as named types
}

// Prepare converts a canonical schema into a SchemaData ready for template execution.
// It walks the schema in property order, resolves types using the provided TypeResolver,
// and returns definitions in declaration order followed by the root.
// Inline nested objects the resolver does not render inline are extracted as
// named type definitions, named after the field that holds them.
func Prepare(schema *jschema.Schema, fallbackName string, resolver TypeResolver) (*SchemaData, error) {
	if schema == nil {
		return nil, Fail(ErrGeneration, "No schema to generate from")
	}

	ctx := &prepareContext{
		resolver: resolver,
		taken:    make(map[string]bool),
	}

	defs, root := Plan(schema, fallbackName)
	for _, d := range defs {
		ctx.taken[resolver.FormatDefName(d.Name)] = true
	}
	if root != nil {
		ctx.taken[resolver.FormatDefName(root.Name)] = true
	}

	data := &SchemaData{Extra: make(map[string]any)}
	for _, d := range defs {
		data.Defs = append(data.Defs, ctx.typeDef(d))
	}
	if root != nil {
		def := ctx.typeDef(*root)
		data.Root = &def
	}

	// Append inline objects extracted during resolution
	data.Defs = append(data.Defs, ctx.extracted...)

	return data, nil
}

// Render executes a generator template and trims surrounding blank space.
func Render(tmpl *template.Template, name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", Failf(ErrGeneration, "failed to execute template: %v", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func (c *prepareContext) typeDef(d Decl) TypeDef {
	def := TypeDef{
		Name:        c.resolver.FormatDefName(d.Name),
		Description: d.Schema.Description,
		Schema:      d.Schema,
	}
	if d.Schema.IsStringEnum() && !d.Schema.HasProperties() {
		def.Enum = d.Schema.Enum
		return def
	}
	if aliased(d.Schema) {
		if w, ok := c.resolver.(ValueWrapper); ok {
			wrapper := jschema.Object()
			wrapper.Properties.Set(w.ValueField(), d.Schema)
			wrapper.Required = []string{w.ValueField()}
			def.Fields = c.resolveFields(wrapper)
			return def
		}
		def.Alias = c.resolveType(d.Schema, d.Name)
		return def
	}
	def.Fields = c.resolveFields(d.Schema)
	return def
}

// aliased reports whether a declaration stands for another type rather than
// a record: a primitive, array, reference, union or non-string enumeration
// without properties.
func aliased(s *jschema.Schema) bool {
	if s.HasProperties() || s.Bool != nil {
		return false
	}
	if k := s.PrimaryKind(); k != "" {
		return k != jschema.KindObject
	}
	return s.Ref != "" || len(s.Enum) > 0 || len(s.OneOf) > 0 || len(s.AnyOf) > 0 || len(s.AllOf) > 0
}

func (c *prepareContext) resolveFields(schema *jschema.Schema) []Field {
	fields := make([]Field, 0, schema.Properties.Len())
	for key, prop := range schema.Properties.All() {
		f := Field{
			Name:        key,
			Key:         key,
			Type:        c.resolveType(prop, key),
			Optional:    !schema.IsRequired(key),
			Nullable:    isNullable(prop),
			Description: prop.Description,
			Schema:      prop,
		}
		c.resolver.EnrichField(&f)
		fields = append(fields, f)
	}
	uniqueFieldNames(fields)
	return fields
}

// uniqueFieldNames suffixes a counter to field names that an earlier field of
// the same type already uses, e.g. when "user_id" and "userId" both become
// UserID.
func uniqueFieldNames(fields []Field) {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		seen[f.Name] = true
	}
	used := make(map[string]bool, len(fields))
	for i := range fields {
		name := fields[i].Name
		if used[name] {
			for n := 2; ; n++ {
				candidate := name + strconv.Itoa(n)
				if !seen[candidate] && !used[candidate] {
					name = candidate
					break
				}
			}
		}
		used[name] = true
		fields[i].Name = name
	}
}

func (c *prepareContext) resolveType(schema *jschema.Schema, fieldName string) string {
	if schema == nil || schema.Bool != nil {
		return c.resolver.PrimitiveType("", "")
	}

	if member, ok := schema.NullableMember(); ok {
		return c.resolver.NullableType(c.resolveType(member, fieldName))
	}

	var t string
	switch {
	case schema.Ref != "":
		t = c.resolver.RefType(schema.RefName())
	case len(schema.Enum) > 0:
		t = c.resolver.EnumType(schema.Enum)
	case len(schema.OneOf) > 0:
		t = c.unionType(schema.OneOf, fieldName)
	case len(schema.AnyOf) > 0:
		t = c.unionType(schema.AnyOf, fieldName)
	case len(schema.AllOf) == 1 && schema.PrimaryKind() == "":
		t = c.resolveType(schema.AllOf[0], fieldName)
	default:
		t = c.kindType(schema, fieldName)
	}

	if schema.IsNullable() && schema.PrimaryKind() != "" {
		t = c.resolver.NullableType(t)
	}
	return t
}

func isNullable(schema *jschema.Schema) bool {
	if schema.IsNullable() {
		return true
	}
	_, ok := schema.NullableMember()
	return ok
}

func (c *prepareContext) unionType(members []*jschema.Schema, fieldName string) string {
	types := make([]string, 0, len(members))
	for _, m := range members {
		types = append(types, c.resolveType(m, fieldName))
	}
	return c.resolver.UnionType(types)
}

func (c *prepareContext) kindType(schema *jschema.Schema, fieldName string) string {
	kind := schema.PrimaryKind()
	switch {
	case kind == jschema.KindArray:
		if schema.Items == nil {
			return c.resolver.ArrayType(c.resolver.PrimitiveType("", ""))
		}
		return c.resolver.ArrayType(c.resolveType(schema.Items, fieldName))

	case (kind == jschema.KindObject || kind == "") && schema.HasProperties():
		return c.inlineObject(schema, fieldName)

	case kind == jschema.KindObject && schema.AllowsAdditional():
		value := schema.AdditionalProperties
		if value.IsAny() {
			return c.resolver.MapType(c.resolver.PrimitiveType("", ""))
		}
		return c.resolver.MapType(c.resolveType(value, fieldName))
	}

	switch {
	case kind == jschema.KindString:
		return c.resolver.PrimitiveType(kind, schema.Format)
	case kind == "" && schema.IsNullable():
		return c.resolver.PrimitiveType(jschema.KindNull, "")
	}
	return c.resolver.PrimitiveType(kind, "")
}

// inlineObject renders a nested object inline or extracts it as a named type.
func (c *prepareContext) inlineObject(schema *jschema.Schema, fieldName string) string {
	fields := c.resolveFields(schema)
	if t := c.resolver.ObjectType(fields); t != "" {
		return t
	}

	base := ToPascalCase(fieldName)
	if schema.Title != "" {
		base = schema.Title
	}
	name := c.uniqueName(base)
	c.extracted = append(c.extracted, TypeDef{
		Name:        name,
		Fields:      fields,
		Description: schema.Description,
		Schema:      schema,
	})
	return c.resolver.RefType(name)
}

// uniqueName formats base as a type name, suffixing a counter on collision.
func (c *prepareContext) uniqueName(base string) string {
	if base == "" {
		base = "Nested"
	}
	name := c.resolver.FormatDefName(base)
	for i := 2; c.taken[name]; i++ {
		name = c.resolver.FormatDefName(base + strconv.Itoa(i))
	}
	c.taken[name] = true
	return name
}
