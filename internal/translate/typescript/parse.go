// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package typescript

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"github.com/dacolabs/schemamap/internal/blocks"
	"github.com/dacolabs/schemamap/internal/jschema"
	"github.com/dacolabs/schemamap/internal/translate"
)

var (
	declPattern      = regexp.MustCompile(`(?:export\s+)?(?:interface|type)\s+(\w+)`)
	interfacePattern = regexp.MustCompile(`(?:export\s+)?interface\s+(\w+)(?:\s+extends\s+\w+(?:\s*,\s*\w+)*)?\s*\{`)
	typePattern      = regexp.MustCompile(`(?:export\s+)?type\s+(\w+)\s*=\s*\{`)
	aliasPattern     = regexp.MustCompile(`(?:export\s+)?type\s+(\w+)\s*=\s*\|?\s*((?:'[^'\n]*'|"[^"\n]*")(?:\s*\|\s*(?:'[^'\n]*'|"[^"\n]*"))*)`)
	memberPattern    = regexp.MustCompile(`(?s)^(?:readonly\s+)?(\w+|'[^']*'|"[^"]*")(\?)?\s*:\s*(.+)$`)
	indexPattern     = regexp.MustCompile(`(?s)^(?:readonly\s+)?\[\s*\w+\s*:\s*string\s*\]\s*:\s*(.+)$`)
)

// source is one top-level declaration: an object body or a literal union.
type source struct {
	name   string
	start  int
	body   string
	values []string
}

// extract finds declarations in source order.
func extract(text string) []source {
	var out []source
	for _, pattern := range []*regexp.Regexp{interfacePattern, typePattern} {
		for b := range blocks.Extract(text, pattern) {
			out = append(out, source{name: b.Name, start: b.Start, body: b.Body})
		}
	}
	for _, m := range aliasPattern.FindAllStringSubmatchIndex(text, -1) {
		var values []string
		for _, part := range translate.SplitTopLevel(text[m[4]:m[5]], "|") {
			if v, ok := translate.Unquote(part); ok {
				values = append(values, v)
			}
		}
		out = append(out, source{name: text[m[2]:m[3]], start: m[0], values: values})
	}
	slices.SortStableFunc(out, func(a, b source) int {
		return cmp.Compare(a.start, b.start)
	})
	return out
}

type parser struct {
	declared map[string]bool
}

func (p *parser) declaration(src source) *jschema.Schema {
	if src.values != nil {
		return jschema.StringEnum(src.values...)
	}
	return p.object(src.body)
}

// object reads the members of an interface or object literal type body.
func (p *parser) object(body string) *jschema.Schema {
	s := jschema.Object()
	for _, member := range translate.SplitTopLevel(translate.StripComments(body), "\n;,") {
		if m := indexPattern.FindStringSubmatch(member); m != nil {
			s.AdditionalProperties = mapValue(p.typeOf(m[1]))
			continue
		}
		m := memberPattern.FindStringSubmatch(member)
		if m == nil {
			continue
		}
		name := m[1]
		if unquoted, ok := translate.Unquote(name); ok {
			name = unquoted
		}
		s.Properties.Set(name, p.typeOf(m[3]))
		if m[2] == "" && !slices.Contains(s.Required, name) {
			s.Required = append(s.Required, name)
		}
	}
	return s
}

// typeOf maps a type expression to a schema. Unknown names become strings.
func (p *parser) typeOf(expr string) *jschema.Schema {
	t := strings.TrimSpace(expr)
	if parts := translate.SplitTopLevel(t, "|"); len(parts) > 1 {
		return p.union(parts)
	}
	if inner, ok := translate.Parenthesized(t); ok {
		return p.typeOf(inner)
	}
	if elem, ok := strings.CutSuffix(t, "[]"); ok {
		return jschema.ArrayOf(p.typeOf(elem))
	}
	for _, prefix := range []string{"Array", "ReadonlyArray", "Set"} {
		if inner, ok := translate.Unwrap(t, prefix, '<', '>'); ok {
			return jschema.ArrayOf(p.typeOf(inner))
		}
	}
	for _, prefix := range []string{"Record", "Map"} {
		if inner, ok := translate.Unwrap(t, prefix, '<', '>'); ok {
			if kv := translate.SplitTopLevel(inner, ","); len(kv) == 2 {
				return jschema.MapOf(p.typeOf(kv[1]))
			}
			return jschema.MapOf(nil)
		}
	}
	if strings.HasPrefix(t, "{") && strings.HasSuffix(t, "}") {
		return p.object(t[1 : len(t)-1])
	}
	if v, ok := translate.Unquote(t); ok {
		return jschema.StringEnum(v)
	}

	switch t {
	case "string":
		return jschema.Of(jschema.KindString)
	case "number":
		return jschema.Of(jschema.KindNumber)
	case "bigint":
		return jschema.Of(jschema.KindInteger)
	case "boolean", "true", "false":
		return jschema.Of(jschema.KindBoolean)
	case "null":
		return jschema.Of(jschema.KindNull)
	case "any", "unknown":
		return jschema.Any()
	case "object", "Object":
		return jschema.MapOf(nil)
	case "Date":
		s := jschema.Of(jschema.KindString)
		s.Format = "date-time"
		return s
	}
	if p.declared[t] {
		return jschema.RefTo(t)
	}
	return jschema.Of(jschema.KindString)
}

// union maps "A | B | null". A single non-null member becomes nullable, an
// all-literal union becomes a string enum, anything else a oneOf.
// undefined members only mark optionality and are dropped.
func (p *parser) union(parts []string) *jschema.Schema {
	nullable := false
	var members []string
	for _, part := range parts {
		switch part {
		case "null":
			nullable = true
		case "undefined":
		default:
			members = append(members, part)
		}
	}

	var s *jschema.Schema
	switch {
	case len(members) == 0:
		return jschema.Of(jschema.KindNull)
	case len(members) == 1:
		s = p.typeOf(members[0])
	default:
		if values, ok := literalValues(members); ok {
			s = jschema.StringEnum(values...)
		} else {
			s = &jschema.Schema{}
			for _, m := range members {
				s.OneOf = append(s.OneOf, p.typeOf(m))
			}
		}
	}
	if nullable {
		s = jschema.OrNull(s)
	}
	return s
}

func literalValues(members []string) ([]string, bool) {
	values := make([]string, 0, len(members))
	for _, m := range members {
		v, ok := translate.Unquote(m)
		if !ok {
			return nil, false
		}
		values = append(values, v)
	}
	return values, true
}

func mapValue(s *jschema.Schema) *jschema.Schema {
	if s.IsAny() {
		return jschema.True()
	}
	return s
}
