// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package javalombok provides the handler for Java classes annotated with
// Lombok's @Data.
package javalombok

import (
	"embed"
	"maps"
	"regexp"
	"slices"
	"strings"
	"text/template"

	"github.com/dacolabs/schemamap/internal/jschema"
	"github.com/dacolabs/schemamap/internal/translate"
)

//go:embed javalombok.go.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.New("").Funcs(template.FuncMap{
	"constants": constants,
}).ParseFS(tmplFS, "javalombok.go.tmpl"))

// Handler converts between Lombok @Data classes and canonical schemas.
type Handler struct{}

var _ translate.Handler = (*Handler)(nil)

// Parse extracts every @Data class from text, plus the enums they may
// reference.
func (h *Handler) Parse(text string) (*jschema.Schema, error) {
	if err := translate.RequireText(text); err != nil {
		return nil, err
	}
	sources := extract(text)
	if !hasClass(sources) {
		return nil, translate.Fail(translate.ErrNoDeclaration, "No Java Lombok @Data classes found")
	}

	names := make([]string, len(sources))
	for i, src := range sources {
		names[i] = src.name
	}
	p := &parser{declared: translate.Declared(names...)}

	decls := make([]translate.Decl, 0, len(sources))
	for _, src := range sources {
		decls = append(decls, translate.Decl{Name: src.name, Schema: p.declaration(src)})
	}
	return translate.Assemble(decls, "Java Lombok")
}

// Generate renders schema as @Data classes and enums with computed imports.
func (h *Handler) Generate(schema *jschema.Schema) (string, error) {
	data, err := translate.Prepare(schema, "MyClass", &resolver{})
	if err != nil {
		return "", err
	}
	data.Extra["Imports"] = imports(data)
	return translate.Render(tmpl, "javalombok", data)
}

// Validate checks for an @Data class with a closed body.
func (h *Handler) Validate(text string) translate.Validation {
	if err := translate.RequireText(text); err != nil {
		return translate.InvalidErr(err)
	}
	if !declPattern.MatchString(text) {
		return translate.Invalid("No @Data class found (expected @Data annotation before class declaration)")
	}
	if !hasClass(extract(text)) {
		return translate.Invalid("Could not parse class body")
	}
	return translate.Valid()
}

const jsonProperty = "com.fasterxml.jackson.annotation.JsonProperty"

var typeImports = map[string]string{
	"List":          "java.util.List",
	"Map":           "java.util.Map",
	"UUID":          "java.util.UUID",
	"LocalDate":     "java.time.LocalDate",
	"LocalDateTime": "java.time.LocalDateTime",
}

var wordPattern = regexp.MustCompile(`\w+`)

// imports lists what the generated classes need, lombok.Data first.
func imports(data *translate.SchemaData) []string {
	set := make(map[string]bool)
	for _, f := range data.Fields() {
		for _, w := range wordPattern.FindAllString(f.Type, -1) {
			if imp, ok := typeImports[w]; ok {
				set[imp] = true
			}
		}
		if f.Annotation != "" {
			set[jsonProperty] = true
		}
	}
	for _, def := range data.Types() {
		for _, c := range constants(def.EnumValues()) {
			if c.Annotation != "" {
				set[jsonProperty] = true
			}
		}
	}
	return append([]string{"lombok.Data"}, slices.Sorted(maps.Keys(set))...)
}

type enumConstant struct {
	Annotation string
	Name       string
	Last       bool
}

// constants names the constants of a generated enum. Values that are not
// Java identifiers get an upper snake case name and a @JsonProperty.
func constants(values []string) []enumConstant {
	out := make([]enumConstant, len(values))
	for i, v := range values {
		c := enumConstant{Name: v, Last: i == len(values)-1}
		if !isJavaIdentifier(v) {
			c.Name = strings.ToUpper(translate.ToSnakeCase(v))
			if c.Name == "" || !isJavaIdentifier(c.Name) {
				c.Name = "VALUE_" + c.Name
			}
			c.Annotation = "@JsonProperty(" + translate.QuoteDouble(v) + ")"
		}
		out[i] = c
	}
	return out
}
