// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package javalombok

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
	declPattern       = regexp.MustCompile(`@Data[\s\S]*?class\s+(\w+)`)
	classPattern      = regexp.MustCompile(`@Data[\s\S]*?(?:public\s+)?class\s+(\w+)(?:\s+extends\s+\w+)?(?:\s+implements\s+[\w,\s]+)?\s*\{`)
	enumPattern       = regexp.MustCompile(`(?:public\s+)?enum\s+(\w+)\s*\{`)
	annotationPattern = regexp.MustCompile(`^@(\w+)(?:\s*\(([^)]*)\))?\s*`)
	modifierPattern   = regexp.MustCompile(`^(private|protected|public|static|final|transient|volatile)\s+`)
	declaratorPattern = regexp.MustCompile(`^(.+?)\s+(\w+)$`)
	quotedPattern     = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"`)
	constantPattern   = regexp.MustCompile(`^(@\w+(?:\s*\([^)]*\))?\s*)*(\w+)`)
)

// source is a class body or an enum with its constants.
type source struct {
	name   string
	start  int
	body   string
	values []string
	isEnum bool
}

func extract(text string) []source {
	var out []source
	for b := range blocks.Extract(text, classPattern) {
		out = append(out, source{name: b.Name, start: b.Start, body: b.Body})
	}
	for b := range blocks.Extract(text, enumPattern) {
		out = append(out, source{name: b.Name, start: b.Start, values: enumValues(b.Body), isEnum: true})
	}
	slices.SortStableFunc(out, func(a, b source) int {
		return cmp.Compare(a.start, b.start)
	})
	return out
}

func hasClass(sources []source) bool {
	return slices.ContainsFunc(sources, func(s source) bool { return !s.isEnum })
}

// enumValues lists enum constants up to the first ";". A @JsonProperty on a
// constant supplies its value.
func enumValues(body string) []string {
	constantsPart, _, _ := strings.Cut(translate.StripComments(body), ";")
	var values []string
	for _, item := range translate.SplitTopLevel(constantsPart, ",") {
		m := constantPattern.FindStringSubmatch(item)
		if m == nil {
			continue
		}
		value := m[2]
		if ann := annotationPattern.FindStringSubmatch(item); ann != nil && ann[1] == "JsonProperty" {
			if q := quotedPattern.FindStringSubmatch(ann[2]); q != nil {
				value = q[1]
			}
		}
		values = append(values, value)
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

// object reads the field declarations of a class body. Method bodies,
// initializer blocks and nested types are skipped, as are static members.
// Every field is required unless annotated @Nullable.
func (p *parser) object(body string) *jschema.Schema {
	s := jschema.Object()
	for _, stmt := range strings.Split(flatten(translate.StripComments(body)), ";") {
		stmt = strings.TrimSpace(stmt)

		name, nullable := "", false
		for {
			m := annotationPattern.FindStringSubmatch(stmt)
			if m == nil {
				break
			}
			switch m[1] {
			case "Nullable":
				nullable = true
			case "JsonProperty":
				if q := quotedPattern.FindStringSubmatch(m[2]); q != nil {
					name = q[1]
				}
			}
			stmt = stmt[len(m[0]):]
		}

		static := false
		for {
			m := modifierPattern.FindStringSubmatch(stmt)
			if m == nil {
				break
			}
			static = static || m[1] == "static"
			stmt = stmt[len(m[0]):]
		}
		decl, _, _ := strings.Cut(stmt, "=")
		decl = strings.TrimSpace(decl)
		if static || decl == "" || strings.Contains(decl, "(") {
			continue
		}

		m := declaratorPattern.FindStringSubmatch(decl)
		if m == nil {
			continue
		}
		javaType, ident := m[1], m[2]
		key := cmp.Or(name, ident)

		prop := p.typeOf(javaType)
		if nullable {
			prop = jschema.OrNull(prop)
		}
		s.Properties.Set(key, prop)
		if !nullable && !strings.HasPrefix(javaType, "Optional<") && !slices.Contains(s.Required, key) {
			s.Required = append(s.Required, key)
		}
	}
	return s
}

// flatten replaces every brace-delimited group with a statement break,
// leaving only the top-level declarations of a class body.
func flatten(body string) string {
	var sb strings.Builder
	depth := 0
	for i := 0; i < len(body); i++ {
		switch ch := body[i]; {
		case ch == '{':
			if depth == 0 {
				sb.WriteByte(';')
			}
			depth++
		case ch == '}':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			sb.WriteByte(ch)
		}
	}
	return sb.String()
}

// typeOf maps a Java type. Unknown types become strings.
func (p *parser) typeOf(javaType string) *jschema.Schema {
	t := strings.TrimSpace(javaType)
	if t == "byte[]" {
		return jschema.Of(jschema.KindString)
	}
	if elem, ok := strings.CutSuffix(t, "[]"); ok {
		return jschema.ArrayOf(p.typeOf(elem))
	}
	for _, prefix := range []string{"List", "Set", "Collection", "ArrayList", "LinkedList", "HashSet", "Iterable"} {
		if inner, ok := translate.Unwrap(t, prefix, '<', '>'); ok {
			return jschema.ArrayOf(p.typeOf(inner))
		}
	}
	for _, prefix := range []string{"Map", "HashMap", "LinkedHashMap", "TreeMap"} {
		if inner, ok := translate.Unwrap(t, prefix, '<', '>'); ok {
			if kv := translate.SplitTopLevel(inner, ","); len(kv) == 2 {
				return jschema.MapOf(p.typeOf(kv[1]))
			}
			return jschema.MapOf(nil)
		}
	}
	if inner, ok := translate.Unwrap(t, "Optional", '<', '>'); ok {
		return jschema.OrNull(p.typeOf(inner))
	}

	switch t {
	case "String", "char", "Character", "CharSequence":
		return jschema.Of(jschema.KindString)
	case "int", "Integer", "long", "Long", "short", "Short", "byte", "Byte", "BigInteger":
		return jschema.Of(jschema.KindInteger)
	case "float", "Float", "double", "Double", "BigDecimal":
		return jschema.Of(jschema.KindNumber)
	case "boolean", "Boolean":
		return jschema.Of(jschema.KindBoolean)
	case "Date", "LocalDateTime", "ZonedDateTime", "OffsetDateTime", "Instant":
		return formatted("date-time")
	case "LocalDate":
		return formatted("date")
	case "UUID":
		return formatted("uuid")
	case "Object", "JsonNode":
		return jschema.Any()
	case "Map":
		return jschema.MapOf(nil)
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
