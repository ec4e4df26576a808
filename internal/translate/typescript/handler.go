// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package typescript provides the TypeScript interface and type alias handler.
package typescript

import (
	"embed"
	"strings"
	"text/template"

	"github.com/dacolabs/schemamap/internal/jschema"
	"github.com/dacolabs/schemamap/internal/translate"
)

//go:embed typescript.go.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.New("").Funcs(template.FuncMap{
	"literals": literals,
}).ParseFS(tmplFS, "typescript.go.tmpl"))

// Handler converts between TypeScript declarations and canonical schemas.
type Handler struct{}

var _ translate.Handler = (*Handler)(nil)

// Parse extracts every interface, object type alias and string-literal union
// alias from text.
func (h *Handler) Parse(text string) (*jschema.Schema, error) {
	if err := translate.RequireText(text); err != nil {
		return nil, err
	}
	sources := extract(text)
	if len(sources) == 0 {
		return nil, translate.Fail(translate.ErrNoDeclaration, "No TypeScript interface or type definitions found")
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
	return translate.Assemble(decls, "TypeScript")
}

// Generate renders schema as exported interfaces and type aliases.
func (h *Handler) Generate(schema *jschema.Schema) (string, error) {
	data, err := translate.Prepare(schema, "MyType", &resolver{})
	if err != nil {
		return "", err
	}
	return translate.Render(tmpl, "typescript", data)
}

// Validate checks for a declaration keyword and at least one extractable type.
func (h *Handler) Validate(text string) translate.Validation {
	if err := translate.RequireText(text); err != nil {
		return translate.InvalidErr(err)
	}
	trimmed := strings.TrimSpace(text)
	if !declPattern.MatchString(trimmed) {
		return translate.Invalid("No TypeScript interface or type declaration found")
	}
	if len(extract(trimmed)) == 0 {
		return translate.Invalid("Could not parse any type definitions")
	}
	return translate.Valid()
}

func literals(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = translate.QuoteSingle(v)
	}
	return strings.Join(quoted, " | ")
}
