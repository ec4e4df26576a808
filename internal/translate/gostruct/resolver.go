// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package gostruct

import (
	"encoding/json"
	"strings"

	"github.com/dacolabs/schemamap/internal/jschema"
	"github.com/dacolabs/schemamap/internal/translate"
)

const anyType = "interface{}"

type resolver struct{}

func (r *resolver) PrimitiveType(kind, format string) string {
	switch kind {
	case jschema.KindString:
		if format == "date-time" {
			return "time.Time"
		}
		return "string"
	case jschema.KindInteger:
		return "int"
	case jschema.KindNumber:
		return "float64"
	case jschema.KindBoolean:
		return "bool"
	case jschema.KindObject:
		return "map[string]" + anyType
	default:
		return anyType
	}
}

func (r *resolver) ArrayType(elemType string) string {
	return "[]" + elemType
}

func (r *resolver) MapType(valueType string) string {
	return "map[string]" + valueType
}

func (r *resolver) RefType(defName string) string {
	return translate.ToGoName(defName)
}

// EnumType returns the Go type shared by every value of an inline enum.
func (r *resolver) EnumType(values []any) string {
	kind := ""
	for _, v := range values {
		var k string
		switch n := v.(type) {
		case string:
			k = "string"
		case bool:
			k = "bool"
		case json.Number:
			k = "float64"
			if _, err := n.Int64(); err == nil {
				k = "int"
			}
		default:
			return anyType
		}
		if kind != "" && kind != k {
			return anyType
		}
		kind = k
	}
	return kind
}

func (r *resolver) UnionType(_ []string) string {
	return anyType
}

func (r *resolver) NullableType(t string) string {
	if t == anyType || strings.HasPrefix(t, "*") {
		return t
	}
	return "*" + t
}

func (r *resolver) ObjectType(_ []translate.Field) string {
	return ""
}

func (r *resolver) FormatDefName(defName string) string {
	return translate.ToGoName(defName)
}

func (r *resolver) EnrichField(f *translate.Field) {
	tag := f.Key
	if f.Optional {
		tag += ",omitempty"
	}
	f.Tag = "`json:" + translate.QuoteDouble(tag) + "`"
	f.Name = translate.ToGoName(f.Key)
}
