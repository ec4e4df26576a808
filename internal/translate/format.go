// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

// Format identifies one of the supported notations.
type Format int

// Supported formats. The zero value is not a valid format.
const (
	TypeScript Format = iota + 1
	Zod
	GoStruct
	Pydantic
	JavaLombok
	Prisma
	JSONSchema
)

// Formats returns every supported format in display order.
func Formats() []Format {
	return []Format{TypeScript, Zod, GoStruct, Pydantic, JavaLombok, Prisma, JSONSchema}
}

// String returns the format identifier, e.g. "go-struct".
func (f Format) String() string {
	switch f {
	case TypeScript:
		return "typescript"
	case Zod:
		return "zod"
	case GoStruct:
		return "go-struct"
	case Pydantic:
		return "pydantic"
	case JavaLombok:
		return "java-lombok"
	case Prisma:
		return "prisma"
	case JSONSchema:
		return "json-schema"
	}
	return "unknown"
}

// ParseFormat resolves a format identifier.
func ParseFormat(id string) (Format, error) {
	for _, f := range Formats() {
		if f.String() == id {
			return f, nil
		}
	}
	return 0, Failf(ErrUnsupportedFormat, "Unsupported format: %s", id)
}

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	return f >= TypeScript && f <= JSONSchema
}

// Label returns the human-readable format name.
func (f Format) Label() string {
	switch f {
	case TypeScript:
		return "TypeScript"
	case Zod:
		return "Zod"
	case GoStruct:
		return "Go Struct"
	case Pydantic:
		return "Pydantic"
	case JavaLombok:
		return "Java Lombok"
	case Prisma:
		return "Prisma"
	case JSONSchema:
		return "JSON Schema"
	}
	return ""
}

// Extension returns the canonical file extension, including the dot.
func (f Format) Extension() string {
	switch f {
	case TypeScript, Zod:
		return ".ts"
	case GoStruct:
		return ".go"
	case Pydantic:
		return ".py"
	case JavaLombok:
		return ".java"
	case Prisma:
		return ".prisma"
	case JSONSchema:
		return ".json"
	}
	return ""
}

// Notes describes what subset of the notation is understood.
func (f Format) Notes() string {
	switch f {
	case JSONSchema:
		return "Full JSON Schema support. Used as the canonical intermediate for all conversions."
	case TypeScript:
		return "Supports interfaces and type aliases with basic types, arrays, optional fields, and union types. Generics and mapped types are not supported."
	case Zod:
		return "Input must be a Zod expression (e.g. z.object(...)) or a series of const declarations. Complex transforms and refinements may not round-trip."
	case GoStruct:
		return "Supports struct field types, pointers (*T → nullable), slices ([]T → array), and json tags. Nested struct definitions are not parsed."
	case Pydantic:
		return "Supports BaseModel classes with type annotations. Optional[], List[], Dict[] and Literal[] recognized. Complex validators are ignored."
	case JavaLombok:
		return "Supports @Data annotated classes. Recognizes Java primitives, boxed types, List<T>, Set<T>, Map<K,V>, and date types."
	case Prisma:
		return "Supports model and enum blocks only. datasource, generator, and other blocks are ignored. Relations (@relation) are treated as string fields."
	}
	return ""
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, Failf(ErrUnsupportedFormat, "Unsupported format: %d", int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
