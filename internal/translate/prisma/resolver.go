// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prisma

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/dacolabs/schemamap/internal/jschema"
	"github.com/dacolabs/schemamap/internal/translate"
)

var identPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

type resolver struct {
	// enums maps the joined values of every enum definition to its name, so
	// inline enum properties can reference the matching block.
	enums map[string]string
}

func newResolver(schema *jschema.Schema) *resolver {
	r := &resolver{enums: make(map[string]string)}
	for name, def := range schema.AllDefinitions().All() {
		if def.IsStringEnum() && !def.HasProperties() {
			key := enumKey(def.EnumStrings())
			if _, taken := r.enums[key]; !taken {
				r.enums[key] = translate.TypeName(name)
			}
		}
	}
	return r
}

func enumKey(values []string) string {
	return strings.Join(values, "\x00")
}

func (r *resolver) PrimitiveType(kind, format string) string {
	switch kind {
	case jschema.KindString:
		if format == "date-time" || format == "date" {
			return "DateTime"
		}
		return "String"
	case jschema.KindInteger:
		return "Int"
	case jschema.KindNumber:
		return "Float"
	case jschema.KindBoolean:
		return "Boolean"
	default:
		return "Json"
	}
}

// ArrayType returns a list type. Prisma has no nested lists, so those
// degrade to Json.
func (r *resolver) ArrayType(elemType string) string {
	if strings.HasSuffix(elemType, "[]") || strings.HasSuffix(elemType, "?") {
		return "Json"
	}
	return elemType + "[]"
}

func (r *resolver) MapType(_ string) string {
	return "Json"
}

func (r *resolver) RefType(defName string) string {
	return translate.TypeName(defName)
}

func (r *resolver) EnumType(values []any) string {
	s := &jschema.Schema{Enum: values}
	if name, ok := r.enums[enumKey(s.EnumStrings())]; ok && s.IsStringEnum() {
		return name
	}
	return "String"
}

func (r *resolver) UnionType(_ []string) string {
	return "Json"
}

// NullableType leaves the type alone; EnrichField adds the "?" marker.
func (r *resolver) NullableType(t string) string {
	return t
}

func (r *resolver) ObjectType(_ []translate.Field) string {
	return "Json"
}

// ValueField names the field that carries a non-model declaration, since
// Prisma has no type aliases.
func (r *resolver) ValueField() string {
	return "value"
}

func (r *resolver) FormatDefName(defName string) string {
	return translate.TypeName(defName)
}

func (r *resolver) EnrichField(f *translate.Field) {
	if (f.Optional || f.Nullable) && !strings.HasSuffix(f.Type, "[]") {
		f.Type += "?"
	}
	if !identPattern.MatchString(f.Key) {
		f.Name = translate.ToCamelCase(f.Key)
		if f.Name == "" || !identPattern.MatchString(f.Name) {
			f.Name = "field" + translate.ToPascalCase(f.Name)
		}
		f.Tag = `@map(` + translate.QuoteDouble(f.Key) + `)`
	}
	if v, ok := f.Schema.DefaultValue(); ok {
		if lit := defaultLiteral(v); lit != "" {
			f.Tag = strings.TrimSpace(`@default(` + lit + `) ` + f.Tag)
		}
	}
}

func defaultLiteral(v any) string {
	switch x := v.(type) {
	case string:
		return translate.QuoteDouble(x)
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return x.String()
	}
	return ""
}
