// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package zod

import (
	"strconv"
	"strings"

	"github.com/dacolabs/schemamap/internal/jschema"
	"github.com/dacolabs/schemamap/internal/translate"
)

const indentUnit = "  "

// emitter renders canonical schemas as builder expressions. References to
// constants not yet emitted are wrapped in z.lazy; references to unknown
// definitions become z.any().
type emitter struct {
	defined map[string]bool
	emitted map[string]bool
}

func newEmitter(defs []translate.Decl) *emitter {
	e := &emitter{defined: make(map[string]bool), emitted: make(map[string]bool)}
	for _, d := range defs {
		e.defined[d.Name] = true
	}
	return e
}

func (e *emitter) expr(s *jschema.Schema, depth int) string {
	var sb strings.Builder
	e.write(&sb, s, depth)
	return sb.String()
}

func (e *emitter) write(sb *strings.Builder, s *jschema.Schema, depth int) {
	switch {
	case s == nil || s.IsAny():
		sb.WriteString("z.any()")
		return
	case s.IsFalse():
		sb.WriteString("z.never()")
		return
	}

	if member, ok := s.NullableMember(); ok {
		e.write(sb, member, depth)
		sb.WriteString(".nullable()")
		e.annotate(sb, s)
		return
	}

	switch {
	case s.Ref != "":
		e.ref(sb, s.RefName())
	case len(s.Enum) > 0:
		e.enum(sb, s)
	case len(s.Const) > 0:
		sb.WriteString("z.literal(" + string(s.Const) + ")")
	case len(s.OneOf) > 0:
		e.union(sb, s.OneOf, depth)
	case len(s.AnyOf) > 0:
		e.union(sb, s.AnyOf, depth)
	case len(s.AllOf) > 0:
		e.write(sb, s.AllOf[0], depth)
		for _, m := range s.AllOf[1:] {
			sb.WriteString(".and(")
			e.write(sb, m, depth)
			sb.WriteString(")")
		}
	default:
		e.kinds(sb, s, depth)
	}

	if s.IsNullable() {
		sb.WriteString(".nullable()")
	}
	e.annotate(sb, s)
}

// annotate appends the default and description of s.
func (e *emitter) annotate(sb *strings.Builder, s *jschema.Schema) {
	if s.HasDefault() {
		sb.WriteString(".default(" + string(s.Default) + ")")
	}
	if s.Description != "" {
		sb.WriteString(".describe(" + translate.QuoteDouble(s.Description) + ")")
	}
}

func (e *emitter) ref(sb *strings.Builder, name string) {
	switch {
	case !e.defined[name]:
		sb.WriteString("z.any()")
	case e.emitted[name]:
		sb.WriteString(constName(name))
	default:
		sb.WriteString("z.lazy(() => " + constName(name) + ")")
	}
}

func (e *emitter) enum(sb *strings.Builder, s *jschema.Schema) {
	if s.IsStringEnum() {
		values := s.EnumStrings()
		if len(values) == 1 {
			sb.WriteString("z.literal(" + translate.QuoteDouble(values[0]) + ")")
			return
		}
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = translate.QuoteDouble(v)
		}
		sb.WriteString("z.enum([" + strings.Join(quoted, ", ") + "])")
		return
	}

	literals := make([]string, len(s.Enum))
	for i, v := range s.Enum {
		literals[i] = "z.literal(" + string(jschema.Raw(v)) + ")"
	}
	if len(literals) == 1 {
		sb.WriteString(literals[0])
		return
	}
	sb.WriteString("z.union([" + strings.Join(literals, ", ") + "])")
}

func (e *emitter) union(sb *strings.Builder, members []*jschema.Schema, depth int) {
	if len(members) == 1 {
		e.write(sb, members[0], depth)
		return
	}
	sb.WriteString("z.union([")
	for i, m := range members {
		if i > 0 {
			sb.WriteString(", ")
		}
		e.write(sb, m, depth)
	}
	sb.WriteString("])")
}

// kinds renders a schema by its type keyword. Several non-null kinds become
// a union of single-kind schemas.
func (e *emitter) kinds(sb *strings.Builder, s *jschema.Schema, depth int) {
	var kinds []string
	for _, t := range s.Types {
		if t != jschema.KindNull {
			kinds = append(kinds, t)
		}
	}
	if len(kinds) > 1 {
		sb.WriteString("z.union([")
		for i, k := range kinds {
			if i > 0 {
				sb.WriteString(", ")
			}
			single := s.Clone()
			single.Types = []string{k}
			single.Description, single.Default = "", nil
			e.kind(sb, single, k, depth)
		}
		sb.WriteString("])")
		return
	}

	kind := s.PrimaryKind()
	if kind == "" {
		switch {
		case s.HasProperties():
			kind = jschema.KindObject
		case len(s.Types) > 0:
			kind = jschema.KindNull
		}
	}
	e.kind(sb, s, kind, depth)
}

func (e *emitter) kind(sb *strings.Builder, s *jschema.Schema, kind string, depth int) {
	switch kind {
	case jschema.KindString:
		sb.WriteString("z.string()")
		if method, ok := formatMethods[s.Format]; ok {
			sb.WriteString("." + method + "()")
		}
		writeBound(sb, "min", s.MinLength)
		writeBound(sb, "max", s.MaxLength)
		if s.Pattern != "" {
			sb.WriteString(".regex(/" + strings.ReplaceAll(s.Pattern, "/", `\/`) + "/)")
		}
	case jschema.KindInteger, jschema.KindNumber:
		sb.WriteString("z.number()")
		if kind == jschema.KindInteger {
			sb.WriteString(".int()")
		}
		writeNumber(sb, "min", s.Minimum)
		writeNumber(sb, "max", s.Maximum)
	case jschema.KindBoolean:
		sb.WriteString("z.boolean()")
	case jschema.KindNull:
		sb.WriteString("z.null()")
	case jschema.KindArray:
		sb.WriteString("z.array(")
		e.write(sb, s.Items, depth)
		sb.WriteString(")")
		writeBound(sb, "min", s.MinItems)
		writeBound(sb, "max", s.MaxItems)
	case jschema.KindObject:
		e.object(sb, s, depth)
	default:
		sb.WriteString("z.any()")
	}
}

var formatMethods = map[string]string{
	"email":     "email",
	"uuid":      "uuid",
	"uri":       "url",
	"url":       "url",
	"date-time": "datetime",
	"date":      "date",
	"time":      "time",
}

func (e *emitter) object(sb *strings.Builder, s *jschema.Schema, depth int) {
	if !s.HasProperties() {
		sb.WriteString("z.record(z.string(), ")
		if s.AdditionalProperties != nil && !s.AdditionalProperties.IsAny() && !s.AdditionalProperties.IsFalse() {
			e.write(sb, s.AdditionalProperties, depth)
		} else {
			sb.WriteString("z.any()")
		}
		sb.WriteString(")")
		return
	}

	inner := strings.Repeat(indentUnit, depth+1)
	sb.WriteString("z.object({\n")
	for key, prop := range s.Properties.All() {
		sb.WriteString(inner + propertyKey(key) + ": ")
		e.write(sb, prop, depth+1)
		if !s.IsRequired(key) {
			sb.WriteString(".optional()")
		}
		sb.WriteString(",\n")
	}
	sb.WriteString(strings.Repeat(indentUnit, depth) + "})")

	switch {
	case s.AdditionalProperties == nil:
	case s.AdditionalProperties.IsFalse():
		sb.WriteString(".strict()")
	case s.AdditionalProperties.IsAny():
		sb.WriteString(".passthrough()")
	}
}

func propertyKey(key string) string {
	if translate.IsIdentifier(key) {
		return key
	}
	return translate.QuoteDouble(key)
}

func constName(name string) string {
	return translate.TypeName(name)
}

func writeBound(sb *strings.Builder, method string, n *int) {
	if n != nil {
		sb.WriteString("." + method + "(" + strconv.Itoa(*n) + ")")
	}
}

func writeNumber(sb *strings.Builder, method string, f *float64) {
	if f != nil {
		sb.WriteString("." + method + "(" + strconv.FormatFloat(*f, 'f', -1, 64) + ")")
	}
}
