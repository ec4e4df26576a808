// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package javalombok

import (
	"unicode"

	"github.com/dacolabs/schemamap/internal/jschema"
	"github.com/dacolabs/schemamap/internal/translate"
)

var keywords = map[string]bool{
	"abstract": true, "boolean": true, "byte": true, "case": true, "catch": true,
	"char": true, "class": true, "default": true, "do": true, "double": true,
	"else": true, "enum": true, "extends": true, "final": true, "float": true,
	"for": true, "if": true, "import": true, "int": true, "interface": true,
	"long": true, "new": true, "package": true, "private": true, "protected": true,
	"public": true, "return": true, "short": true, "static": true, "switch": true,
	"this": true, "throw": true, "try": true, "void": true, "while": true,
}

func isJavaIdentifier(s string) bool {
	return translate.IsIdentifier(s) && !keywords[s]
}

type resolver struct{}

func (r *resolver) PrimitiveType(kind, format string) string {
	switch kind {
	case jschema.KindString:
		switch format {
		case "date-time":
			return "LocalDateTime"
		case "date":
			return "LocalDate"
		case "uuid":
			return "UUID"
		}
		return "String"
	case jschema.KindInteger:
		return "Long"
	case jschema.KindNumber:
		return "Double"
	case jschema.KindBoolean:
		return "Boolean"
	case jschema.KindObject:
		return "Map<String, Object>"
	default:
		return "Object"
	}
}

func (r *resolver) ArrayType(elemType string) string {
	return "List<" + elemType + ">"
}

func (r *resolver) MapType(valueType string) string {
	return "Map<String, " + valueType + ">"
}

func (r *resolver) RefType(defName string) string {
	return translate.TypeName(defName)
}

func (r *resolver) EnumType(values []any) string {
	if (&jschema.Schema{Enum: values}).IsStringEnum() {
		return "String"
	}
	return "Object"
}

func (r *resolver) UnionType(_ []string) string {
	return "Object"
}

// NullableType leaves boxed types alone; every reference type admits null.
func (r *resolver) NullableType(t string) string {
	return t
}

func (r *resolver) ObjectType(_ []translate.Field) string {
	return ""
}

// ValueField names the field of the wrapper class generated for a
// declaration that is not a record.
func (r *resolver) ValueField() string {
	return "value"
}

func (r *resolver) FormatDefName(defName string) string {
	return translate.TypeName(defName)
}

func (r *resolver) EnrichField(f *translate.Field) {
	if isJavaIdentifier(f.Key) {
		return
	}
	name := translate.ToCamelCase(f.Key)
	if name == "" || unicode.IsDigit(rune(name[0])) || keywords[name] {
		name = "field" + translate.ToPascalCase(f.Key)
	}
	f.Name = name
	f.Annotation = "@JsonProperty(" + translate.QuoteDouble(f.Key) + ")"
}
