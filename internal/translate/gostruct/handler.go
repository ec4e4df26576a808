// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package gostruct provides the Go struct handler.
package gostruct

import (
	"embed"
	"strings"
	"text/template"

	"github.com/dacolabs/schemamap/internal/jschema"
	"github.com/dacolabs/schemamap/internal/translate"
)

//go:embed gostruct.go.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.New("").Funcs(template.FuncMap{
	"comment": comment,
	"consts":  consts,
}).ParseFS(tmplFS, "gostruct.go.tmpl"))

// Handler converts between Go struct declarations and canonical schemas.
type Handler struct{}

var _ translate.Handler = (*Handler)(nil)

// Parse extracts every struct declaration from text, together with string
// types whose values are listed in const declarations.
func (h *Handler) Parse(text string) (*jschema.Schema, error) {
	if err := translate.RequireText(text); err != nil {
		return nil, err
	}
	sources := extract(text)
	if !hasStruct(sources) {
		return nil, translate.Fail(translate.ErrNoDeclaration, "No Go struct definitions found")
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
	return translate.Assemble(decls, "Go struct")
}

// Generate renders schema as struct declarations. Enumerations become named
// string types with a const block.
func (h *Handler) Generate(schema *jschema.Schema) (string, error) {
	data, err := translate.Prepare(schema, "MyStruct", &resolver{})
	if err != nil {
		return "", err
	}
	for i := range data.Defs {
		translate.Align(data.Defs[i].Fields)
	}
	if data.Root != nil {
		translate.Align(data.Root.Fields)
	}
	return translate.Render(tmpl, "gostruct", data)
}

// Validate checks for a struct declaration with a closed body.
func (h *Handler) Validate(text string) translate.Validation {
	if err := translate.RequireText(text); err != nil {
		return translate.InvalidErr(err)
	}
	if !structPattern.MatchString(text) {
		return translate.Invalid(`No Go struct definition found (expected "type Name struct {")`)
	}
	if !hasStruct(extract(text)) {
		return translate.Invalid("Could not parse struct body")
	}
	return translate.Valid()
}

func comment(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight("// "+l, " ")
	}
	return strings.Join(lines, "\n")
}

type enumConst struct {
	Name  string
	Value string
}

// consts lists the const block of an enumeration type, names padded.
func consts(typeName string, values []string) []enumConst {
	out := make([]enumConst, len(values))
	width := 0
	for i, v := range values {
		word := v
		if strings.ToUpper(word) == word {
			word = strings.ToLower(word)
		}
		out[i] = enumConst{Name: typeName + translate.ToGoName(word), Value: translate.QuoteDouble(v)}
		width = max(width, len(out[i].Name))
	}
	for i := range out {
		out[i].Name += strings.Repeat(" ", width-len(out[i].Name))
	}
	return out
}
