// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

// TypeResolver converts canonical types to target-language type strings and naming conventions.
// Each generator implements this interface to control how schemas map to its output format.
type TypeResolver interface {
	// PrimitiveType maps a kind and format to a target type string.
	// Format is checked first, allowing "date-time" to override "string".
	// The kind "object" means an object without properties or a value type,
	// and the empty kind means any value.
	PrimitiveType(kind, format string) string

	// ArrayType wraps an element type string in an array type.
	ArrayType(elemType string) string

	// MapType returns a string-keyed map of the given value type.
	MapType(valueType string) string

	// RefType returns the type string for a reference to a named definition.
	RefType(defName string) string

	// EnumType returns the type string for an inline enumeration.
	EnumType(values []any) string

	// UnionType returns the type string for a oneOf/anyOf of member types.
	UnionType(members []string) string

	// NullableType marks a type string as admitting null.
	NullableType(t string) string

	// ObjectType renders an inline object with properties. Returning ""
	// extracts the object as a named definition and references it instead.
	ObjectType(fields []Field) string

	// FormatDefName formats a definition name for the target language.
	FormatDefName(defName string) string

	// EnrichField applies language-specific post-processing to a resolved field.
	// It may mutate any combination of the field's properties:
	//   - Name: rename for target conventions (e.g. snake_case to PascalCase for Go)
	//   - Type: wrap for optionality (e.g. Optional[T] for Python)
	//   - Tag and Annotation: set language annotations (json struct tags, " = None")
	// Called once per field after type resolution, before template execution.
	EnrichField(f *Field)
}

// ValueWrapper is implemented by resolvers for languages without type
// aliases. A declaration that is neither a record nor an enumeration, such
// as a bare string root, becomes a record with one required field of that
// name instead of an alias.
type ValueWrapper interface {
	ValueField() string
}
