// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package pydantic

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/dacolabs/schemamap/internal/jschema"
	"github.com/dacolabs/schemamap/internal/translate"
)

const anyType = "Any"

var keywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
}

func isPythonIdentifier(s string) bool {
	return translate.IsIdentifier(s) && !strings.Contains(s, "$") && !keywords[s]
}

type resolver struct{}

func (r *resolver) PrimitiveType(kind, format string) string {
	switch kind {
	case jschema.KindString:
		switch format {
		case "date-time":
			return "datetime"
		case "date":
			return "date"
		case "uuid":
			return "UUID"
		}
		return "str"
	case jschema.KindInteger:
		return "int"
	case jschema.KindNumber:
		return "float"
	case jschema.KindBoolean:
		return "bool"
	case jschema.KindNull:
		return "None"
	case jschema.KindObject:
		return "Dict[str, Any]"
	default:
		return anyType
	}
}

func (r *resolver) ArrayType(elemType string) string {
	return "List[" + elemType + "]"
}

func (r *resolver) MapType(valueType string) string {
	return "Dict[str, " + valueType + "]"
}

func (r *resolver) RefType(defName string) string {
	return translate.TypeName(defName)
}

func (r *resolver) EnumType(values []any) string {
	s := &jschema.Schema{Enum: values}
	if !s.IsStringEnum() {
		return anyType
	}
	quoted := make([]string, len(values))
	for i, v := range s.EnumStrings() {
		quoted[i] = translate.QuoteDouble(v)
	}
	return "Literal[" + strings.Join(quoted, ", ") + "]"
}

func (r *resolver) UnionType(members []string) string {
	return "Union[" + strings.Join(members, ", ") + "]"
}

func (r *resolver) NullableType(t string) string {
	return optional(t)
}

func (r *resolver) ObjectType(_ []translate.Field) string {
	return ""
}

func (r *resolver) FormatDefName(defName string) string {
	return translate.TypeName(defName)
}

// EnrichField names the attribute, aliasing keys that are not Python
// identifiers, and renders the default: "= None" for fields that are not
// required, the schema default when it is a simple literal.
func (r *resolver) EnrichField(f *translate.Field) {
	var kwargs []string
	if !isPythonIdentifier(f.Key) {
		f.Name = attributeName(f.Key)
		kwargs = append(kwargs, "alias="+translate.QuoteDouble(f.Key))
	}

	value := ""
	if v, ok := f.Schema.DefaultValue(); ok {
		value = pythonLiteral(v)
	}
	if f.Optional {
		f.Type = optional(f.Type)
		if value == "" {
			value = "None"
		}
	}

	switch {
	case len(kwargs) > 0 && value != "":
		f.Tag = " = Field(" + strings.Join(append([]string{"default=" + value}, kwargs...), ", ") + ")"
	case len(kwargs) > 0:
		f.Tag = " = Field(" + strings.Join(kwargs, ", ") + ")"
	case value != "":
		f.Tag = " = " + value
	}
}

// optional wraps t in Optional once.
func optional(t string) string {
	if t == anyType || t == "None" || strings.HasPrefix(t, "Optional[") {
		return t
	}
	return "Optional[" + t + "]"
}

func attributeName(key string) string {
	name := translate.ToSnakeCase(key)
	switch {
	case name == "":
		return "field"
	case unicode.IsDigit(rune(name[0])):
		return "field_" + name
	case keywords[name]:
		return name + "_"
	}
	return name
}

func pythonLiteral(v any) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case string:
		return translate.QuoteDouble(x)
	case bool:
		if x {
			return "True"
		}
		return "False"
	case json.Number:
		return x.String()
	}
	return ""
}
