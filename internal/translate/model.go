// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"strings"

	"github.com/dacolabs/schemamap/internal/jschema"
)

// SchemaData is the complete input passed to a generator template.
type SchemaData struct {
	Defs  []TypeDef      // definitions in declaration order, then extracted inline objects
	Root  *TypeDef       // the root type; nil when definitions exist and the root has no properties
	Extra map[string]any // generator-specific template data
}

// Types returns the definitions followed by the root, in emission order.
func (d *SchemaData) Types() []TypeDef {
	out := append([]TypeDef(nil), d.Defs...)
	if d.Root != nil {
		out = append(out, *d.Root)
	}
	return out
}

// Fields returns every field of every type, in emission order.
func (d *SchemaData) Fields() []Field {
	var out []Field
	for _, t := range d.Types() {
		out = append(out, t.Fields...)
	}
	return out
}

// TypeDef represents a named type definition (a definition or the root schema).
type TypeDef struct {
	Name        string   // formatted name, e.g. "UserAddress"
	Fields      []Field  // ordered fields
	Enum        []any    // enumeration values when the type is a string enum
	Alias       string   // target type when the declaration is neither a record nor an enum
	Description string   // schema description, if any
	Schema      *jschema.Schema
}

// IsEnum reports whether the type is an enumeration rather than a record.
func (t TypeDef) IsEnum() bool {
	return len(t.Enum) > 0
}

// IsAlias reports whether the type names another type instead of declaring
// fields.
func (t TypeDef) IsAlias() bool {
	return t.Alias != ""
}

// EnumValues returns the enumeration values as strings.
func (t TypeDef) EnumValues() []string {
	return (&jschema.Schema{Enum: t.Enum}).EnumStrings()
}

// Field represents a single property within a type definition.
type Field struct {
	Name        string          // target identifier (may be mutated by EnrichField)
	Key         string          // canonical property name
	Type        string          // fully resolved target type string
	Optional    bool            // true if not in schema.Required
	Nullable    bool            // true if the kind list includes null
	Tag         string          // language-specific suffix, e.g. `json:"name,omitempty"` or " = None"
	Annotation  string          // language-specific prefix, e.g. @JsonProperty("name")
	Description string          // schema description, if any
	Schema      *jschema.Schema // the property schema
}

// Align pads field names and types to the widest in fields so that
// generated columns line up the way gofmt and prisma format lay them out.
func Align(fields []Field) {
	nameWidth, typeWidth := 0, 0
	for _, f := range fields {
		nameWidth = max(nameWidth, len(f.Name))
		typeWidth = max(typeWidth, len(f.Type))
	}
	for i := range fields {
		fields[i].Name = pad(fields[i].Name, nameWidth)
		if fields[i].Tag != "" {
			fields[i].Type = pad(fields[i].Type, typeWidth)
		}
	}
}

func pad(s string, width int) string {
	if n := width - len(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
