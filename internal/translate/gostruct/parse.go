// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package gostruct

import (
	"cmp"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/dacolabs/schemamap/internal/blocks"
	"github.com/dacolabs/schemamap/internal/jschema"
	"github.com/dacolabs/schemamap/internal/translate"
)

var (
	structPattern   = regexp.MustCompile(`type\s+(\w+)\s+struct\s*\{`)
	stringPattern   = regexp.MustCompile(`(?m)^\s*type\s+(\w+)\s+string\s*$`)
	fieldPattern    = regexp.MustCompile("^(\\w+(?:\\s*,\\s*\\w+)*)\\s+([^\\s`]+)\\s*(`[^`]*`)?$")
	arrayLenPattern = regexp.MustCompile(`^\[\d*\]`)
)

// source is a struct body or a string type with its const values.
type source struct {
	name   string
	start  int
	body   string
	values []string
	isEnum bool
}

func extract(text string) []source {
	var out []source
	for b := range blocks.Extract(text, structPattern) {
		out = append(out, source{name: b.Name, start: b.Start, body: b.Body})
	}
	for _, m := range stringPattern.FindAllStringSubmatchIndex(text, -1) {
		name := text[m[2]:m[3]]
		if values := constValues(text, name); len(values) > 0 {
			out = append(out, source{name: name, start: m[0], values: values, isEnum: true})
		}
	}
	slices.SortStableFunc(out, func(a, b source) int {
		return cmp.Compare(a.start, b.start)
	})
	return out
}

func hasStruct(sources []source) bool {
	return slices.ContainsFunc(sources, func(s source) bool { return !s.isEnum })
}

// constValues collects the string constants declared with type name.
func constValues(text, name string) []string {
	pattern := regexp.MustCompile(`(?m)^\s*(?:const\s+)?\w+\s+` + regexp.QuoteMeta(name) + `\s*=\s*("(?:[^"\\]|\\.)*")`)
	var values []string
	for _, m := range pattern.FindAllStringSubmatch(text, -1) {
		if v, ok := translate.Unquote(m[1]); ok {
			values = append(values, v)
		}
	}
	return values
}

type parser struct {
	declared map[string]bool
}

func (p *parser) declaration(src source) *jschema.Schema {
	if src.isEnum {
		return jschema.StringEnum(src.values...)
	}
	return p.object(src.body)
}

// object reads one field per line. Embedded fields and nested struct
// literals are not parsed.
func (p *parser) object(body string) *jschema.Schema {
	s := jschema.Object()
	for _, line := range strings.Split(translate.StripComments(body), "\n") {
		m := fieldPattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		idents, goType, rawTag := m[1], m[2], strings.Trim(m[3], "`")

		name, required, skip := jsonName(reflect.StructTag(rawTag))
		if skip {
			continue
		}
		fieldSchema := p.typeOf(goType)
		for _, ident := range strings.Split(idents, ",") {
			ident = strings.TrimSpace(ident)
			if !isExported(ident) {
				continue
			}
			key := cmp.Or(name, translate.LowerFirst(ident))
			s.Properties.Set(key, fieldSchema)
			if required && !slices.Contains(s.Required, key) {
				s.Required = append(s.Required, key)
			}
		}
	}
	return s
}

// jsonName reads the json struct tag: the wire name, whether the field is
// always present, and whether it is skipped.
func jsonName(tag reflect.StructTag) (name string, required, skip bool) {
	value, ok := tag.Lookup("json")
	if !ok {
		return "", true, false
	}
	if value == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(value, ",")
	for _, opt := range strings.Split(opts, ",") {
		if opt == "omitempty" || opt == "omitzero" {
			return name, false, false
		}
	}
	return name, true, false
}

func isExported(ident string) bool {
	return ident != "" && ident[0] >= 'A' && ident[0] <= 'Z'
}

// typeOf maps a Go type expression. Unknown types become strings.
func (p *parser) typeOf(goType string) *jschema.Schema {
	t := strings.TrimSpace(goType)
	switch {
	case strings.HasPrefix(t, "*"):
		return jschema.OrNull(p.typeOf(t[1:]))
	case t == "[]byte":
		return jschema.Of(jschema.KindString)
	case arrayLenPattern.MatchString(t):
		return jschema.ArrayOf(p.typeOf(arrayLenPattern.ReplaceAllString(t, "")))
	case strings.HasPrefix(t, "map["):
		if end := closingBracket(t, len("map[")); end > 0 {
			return jschema.MapOf(p.typeOf(t[end+1:]))
		}
		return jschema.MapOf(nil)
	}

	switch t {
	case "string":
		return jschema.Of(jschema.KindString)
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
		"byte", "rune", "time.Duration":
		return jschema.Of(jschema.KindInteger)
	case "float32", "float64":
		return jschema.Of(jschema.KindNumber)
	case "bool":
		return jschema.Of(jschema.KindBoolean)
	case "time.Time":
		return formatted("date-time")
	case "uuid.UUID":
		return formatted("uuid")
	case "interface{}", "any", "json.RawMessage":
		return jschema.Any()
	}
	if p.declared[t] {
		return jschema.RefTo(t)
	}
	return jschema.Of(jschema.KindString)
}

func formatted(format string) *jschema.Schema {
	s := jschema.Of(jschema.KindString)
	s.Format = format
	return s
}

// closingBracket returns the index of the "]" matching an already opened
// bracket, scanning from from.
func closingBracket(s string, from int) int {
	depth := 1
	for i := from; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
