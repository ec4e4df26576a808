// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package typescript

import (
	"strings"

	"github.com/dacolabs/schemamap/internal/jschema"
	"github.com/dacolabs/schemamap/internal/translate"
)

type resolver struct{}

func (r *resolver) PrimitiveType(kind, format string) string {
	switch kind {
	case jschema.KindString:
		if format == "date-time" {
			return "Date"
		}
		return "string"
	case jschema.KindInteger, jschema.KindNumber:
		return "number"
	case jschema.KindBoolean:
		return "boolean"
	case jschema.KindNull:
		return "null"
	case jschema.KindObject:
		return "Record<string, unknown>"
	default:
		return "unknown"
	}
}

func (r *resolver) ArrayType(elemType string) string {
	if len(translate.SplitTopLevel(elemType, "|")) > 1 {
		return "(" + elemType + ")[]"
	}
	return elemType + "[]"
}

func (r *resolver) MapType(valueType string) string {
	return "Record<string, " + valueType + ">"
}

func (r *resolver) RefType(defName string) string {
	return translate.TypeName(defName)
}

func (r *resolver) EnumType(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = literal(v)
	}
	return strings.Join(parts, " | ")
}

func (r *resolver) UnionType(members []string) string {
	return strings.Join(members, " | ")
}

func (r *resolver) NullableType(t string) string {
	return t + " | null"
}

func (r *resolver) ObjectType(fields []translate.Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = member(f)
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

func (r *resolver) FormatDefName(defName string) string {
	return translate.TypeName(defName)
}

func (r *resolver) EnrichField(f *translate.Field) {
	if !translate.IsIdentifier(f.Key) {
		f.Name = translate.QuoteSingle(f.Key)
	}
}

func member(f translate.Field) string {
	if f.Optional {
		return f.Name + "?: " + f.Type
	}
	return f.Name + ": " + f.Type
}

func literal(v any) string {
	if s, ok := v.(string); ok {
		return translate.QuoteSingle(s)
	}
	return (&jschema.Schema{Enum: []any{v}}).EnumStrings()[0]
}
