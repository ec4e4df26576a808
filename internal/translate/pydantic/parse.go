// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package pydantic

import (
	"encoding/json"
	"regexp"
	"slices"
	"strings"

	"github.com/dacolabs/schemamap/internal/jschema"
	"github.com/dacolabs/schemamap/internal/translate"
)

var (
	declPattern   = regexp.MustCompile(`class\s+(\w+)\s*\(\s*BaseModel\s*\)\s*:`)
	classPattern  = regexp.MustCompile(`^class\s+(\w+)\s*\(([^)]*)\)\s*:`)
	fieldPattern  = regexp.MustCompile(`^(\w+)\s*:\s*(.+)$`)
	memberPattern = regexp.MustCompile(`^(\w+)\s*=\s*(.+)$`)
	kwargPattern  = regexp.MustCompile(`^(\w+)\s*=\s*(.+)$`)
	numberPattern = regexp.MustCompile(`^-?\d+(?:\.\d+)?$`)
)

// source is one top-level class: a BaseModel or an Enum.
type source struct {
	name   string
	lines  []string
	isEnum bool
}

// extract finds top-level classes. A class body runs until the next line
// that is neither blank nor indented. Only BaseModel subclasses, subclasses
// of an earlier model and Enum subclasses are kept.
func extract(text string) []source {
	var out []source
	models := make(map[string]bool)
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i := 0; i < len(lines); i++ {
		m := classPattern.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		src := source{name: m[1]}
		for _, base := range strings.Split(m[2], ",") {
			base = strings.TrimSpace(base)
			switch {
			case base == "BaseModel" || strings.HasSuffix(base, ".BaseModel") || models[base]:
				models[src.name] = true
			case base == "Enum" || base == "StrEnum" || strings.HasSuffix(base, ".Enum"):
				src.isEnum = true
			}
		}
		for i+1 < len(lines) && (strings.TrimSpace(lines[i+1]) == "" || indented(lines[i+1])) {
			i++
			src.lines = append(src.lines, lines[i])
		}
		if models[src.name] || src.isEnum {
			out = append(out, src)
		}
	}
	return out
}

func hasModel(sources []source) bool {
	for _, s := range sources {
		if !s.isEnum {
			return true
		}
	}
	return false
}

func indented(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}

// statements returns the body lines at the base indentation with comments
// removed, plus the class docstring when one opens the body. Deeper lines
// belong to methods or nested classes and are dropped.
func statements(lines []string) (stmts []string, doc string) {
	base := -1
	inDoc := false
	var docLines []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if inDoc {
			text, closed := strings.CutSuffix(trimmed, `"""`)
			docLines = append(docLines, text)
			inDoc = !closed
			continue
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if base < 0 {
			base = indent
			if text, ok := strings.CutPrefix(trimmed, `"""`); ok {
				text, closed := strings.CutSuffix(text, `"""`)
				docLines = append(docLines, text)
				inDoc = !closed
				continue
			}
		}
		if indent != base {
			continue
		}
		stmts = append(stmts, stripComment(trimmed))
	}
	return stmts, strings.TrimSpace(strings.Join(docLines, " "))
}

// stripComment removes a trailing # comment outside string literals.
func stripComment(line string) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		switch ch := line[i]; {
		case quote != 0 && ch == '\\':
			i++
		case quote != 0 && ch == quote:
			quote = 0
		case quote == 0 && (ch == '\'' || ch == '"'):
			quote = ch
		case quote == 0 && ch == '#':
			return strings.TrimSpace(line[:i])
		}
	}
	return line
}

type parser struct {
	declared map[string]bool
}

func (p *parser) declaration(src source) *jschema.Schema {
	stmts, doc := statements(src.lines)
	var s *jschema.Schema
	if src.isEnum {
		s = enum(stmts)
	} else {
		s = p.model(stmts)
	}
	s.Description = doc
	return s
}

// enum reads NAME = value members. A quoted value is the canonical value,
// anything else (auto(), numbers) falls back to the member name.
func enum(stmts []string) *jschema.Schema {
	var values []string
	for _, stmt := range stmts {
		m := memberPattern.FindStringSubmatch(stmt)
		if m == nil {
			continue
		}
		value := m[1]
		if v, ok := translate.Unquote(strings.TrimSpace(m[2])); ok {
			value = v
		}
		values = append(values, value)
	}
	return jschema.StringEnum(values...)
}

// model reads annotated field statements. A field is required unless its type
// admits None or it has a default; Field(...) keeps it required.
func (p *parser) model(stmts []string) *jschema.Schema {
	s := jschema.Object()
	for _, stmt := range stmts {
		if strings.HasPrefix(stmt, "def ") || strings.HasPrefix(stmt, "@") || strings.HasPrefix(stmt, "class ") {
			continue
		}
		m := fieldPattern.FindStringSubmatch(stmt)
		if m == nil {
			continue
		}
		name := m[1]
		pyType, value, hasDefault := cutTopLevel(m[2], '=')
		if strings.HasPrefix(pyType, "ClassVar") || name == "model_config" {
			continue
		}

		prop := p.typeOf(pyType)
		key := name
		required := !hasDefault
		if hasDefault {
			d := defaultOf(value)
			required = d.required
			if d.alias != "" {
				key = d.alias
			}
			if d.description != "" {
				prop.Description = d.description
			}
			if d.value != nil {
				prop.Default = d.value
			}
		}
		if admitsNone(pyType) {
			required = false
		}

		s.Properties.Set(key, prop)
		if required {
			s.Required = append(s.Required, key)
		}
	}
	return s
}

// cutTopLevel splits s at the first sep outside brackets and quotes.
func cutTopLevel(s string, sep byte) (before, after string, found bool) {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case quote != 0:
			if ch == '\\' {
				i++
			} else if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"':
			quote = ch
		case strings.IndexByte("([{", ch) >= 0:
			depth++
		case strings.IndexByte(")]}", ch) >= 0:
			depth--
		case depth == 0 && ch == sep:
			return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:]), true
		}
	}
	return strings.TrimSpace(s), "", false
}

type fieldDefault struct {
	required    bool
	value       json.RawMessage
	alias       string
	description string
}

// defaultOf interprets the right-hand side of a field statement.
func defaultOf(expr string) fieldDefault {
	args, ok := translate.Unwrap(expr, "Field", '(', ')')
	if !ok {
		return fieldDefault{value: literal(expr)}
	}

	d := fieldDefault{required: true}
	for i, arg := range translate.SplitTopLevel(args, ",") {
		if m := kwargPattern.FindStringSubmatch(arg); m != nil {
			switch m[1] {
			case "default":
				d.required = false
				d.value = literal(m[2])
			case "default_factory":
				d.required = false
			case "alias":
				d.alias, _ = translate.Unquote(m[2])
			case "description":
				d.description, _ = translate.Unquote(m[2])
			}
			continue
		}
		if i == 0 && arg != "..." {
			d.required = false
			d.value = literal(arg)
		}
	}
	return d
}

// literal converts a simple Python literal to JSON. None and anything that is
// not a string, number or boolean literal yield nil.
func literal(expr string) json.RawMessage {
	expr = strings.TrimSpace(expr)
	switch {
	case expr == "True":
		return jschema.Raw(true)
	case expr == "False":
		return jschema.Raw(false)
	case numberPattern.MatchString(expr):
		return json.RawMessage(expr)
	}
	if v, ok := translate.Unquote(expr); ok && !strings.HasPrefix(expr, "`") {
		return jschema.Raw(v)
	}
	return nil
}

// typeOf maps a Python annotation. Unknown names become strings.
func (p *parser) typeOf(pyType string) *jschema.Schema {
	t := strings.TrimSpace(pyType)

	if members := translate.SplitTopLevel(t, "|"); len(members) > 1 {
		return p.union(members)
	}
	if inner, ok := unwrap(t, "Optional", "typing.Optional"); ok {
		return jschema.OrNull(p.typeOf(inner))
	}
	if inner, ok := unwrap(t, "Union", "typing.Union"); ok {
		return p.union(translate.SplitTopLevel(inner, ","))
	}
	if inner, ok := unwrap(t, "Annotated", "typing.Annotated"); ok {
		if args := translate.SplitTopLevel(inner, ","); len(args) > 0 {
			return p.typeOf(args[0])
		}
	}
	if inner, ok := unwrap(t, "Literal", "typing.Literal"); ok {
		return literalEnum(inner)
	}
	if inner, ok := unwrap(t, "List", "list", "Set", "set", "FrozenSet", "frozenset", "Sequence"); ok {
		return jschema.ArrayOf(p.typeOf(inner))
	}
	if inner, ok := unwrap(t, "Tuple", "tuple"); ok {
		if args := translate.SplitTopLevel(inner, ","); len(args) > 0 {
			return jschema.ArrayOf(p.typeOf(args[0]))
		}
	}
	if inner, ok := unwrap(t, "Dict", "dict", "Mapping"); ok {
		if kv := translate.SplitTopLevel(inner, ","); len(kv) == 2 {
			return jschema.MapOf(p.typeOf(kv[1]))
		}
		return jschema.MapOf(nil)
	}

	switch t {
	case "str", "bytes", "constr":
		return jschema.Of(jschema.KindString)
	case "EmailStr":
		return formatted("email")
	case "HttpUrl", "AnyUrl", "AnyHttpUrl":
		return formatted("uri")
	case "int", "conint":
		return jschema.Of(jschema.KindInteger)
	case "float", "Decimal", "confloat":
		return jschema.Of(jschema.KindNumber)
	case "bool":
		return jschema.Of(jschema.KindBoolean)
	case "None":
		return jschema.Of(jschema.KindNull)
	case "Any", "any", "object", "typing.Any":
		return jschema.Any()
	case "datetime", "datetime.datetime":
		return formatted("date-time")
	case "date", "datetime.date":
		return formatted("date")
	case "UUID", "uuid.UUID", "UUID4":
		return formatted("uuid")
	case "list", "List", "set", "Set":
		return jschema.Of(jschema.KindArray)
	case "dict", "Dict":
		return jschema.MapOf(nil)
	}

	name := t
	if unquoted, ok := translate.Unquote(t); ok {
		name = unquoted
	}
	if p.declared[name] {
		return jschema.RefTo(name)
	}
	return jschema.Of(jschema.KindString)
}

// admitsNone reports whether an annotation is Optional or a union with None.
func admitsNone(t string) bool {
	if _, ok := unwrap(t, "Optional", "typing.Optional"); ok {
		return true
	}
	members := translate.SplitTopLevel(t, "|")
	if inner, ok := unwrap(t, "Union", "typing.Union"); ok {
		members = translate.SplitTopLevel(inner, ",")
	}
	return slices.Contains(members, "None")
}

// union maps T | U members. None makes the rest nullable.
func (p *parser) union(members []string) *jschema.Schema {
	var rest []*jschema.Schema
	nullable := false
	for _, m := range members {
		if m == "None" {
			nullable = true
			continue
		}
		rest = append(rest, p.typeOf(m))
	}

	var s *jschema.Schema
	switch len(rest) {
	case 0:
		return jschema.Of(jschema.KindNull)
	case 1:
		s = rest[0]
	default:
		s = &jschema.Schema{OneOf: rest}
	}
	if nullable {
		return jschema.OrNull(s)
	}
	return s
}

func literalEnum(inner string) *jschema.Schema {
	var values []string
	for _, part := range translate.SplitTopLevel(inner, ",") {
		v, ok := translate.Unquote(part)
		if !ok {
			return jschema.Of(jschema.KindString)
		}
		values = append(values, v)
	}
	return jschema.StringEnum(values...)
}

func unwrap(t string, prefixes ...string) (string, bool) {
	for _, prefix := range prefixes {
		if inner, ok := translate.Unwrap(t, prefix, '[', ']'); ok {
			return inner, true
		}
	}
	return "", false
}

func formatted(format string) *jschema.Schema {
	s := jschema.Of(jschema.KindString)
	s.Format = format
	return s
}
