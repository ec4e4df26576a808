// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package prisma provides the Prisma schema handler. Only model and enum
// blocks are read; datasource, generator and other blocks are ignored.
package prisma

import (
	"embed"
	"strings"
	"text/template"

	"github.com/dacolabs/schemamap/internal/jschema"
	"github.com/dacolabs/schemamap/internal/translate"
)

//go:embed prisma.go.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.ParseFS(tmplFS, "prisma.go.tmpl"))

// Handler converts between Prisma models and canonical schemas.
type Handler struct{}

var _ translate.Handler = (*Handler)(nil)

// Parse reads model and enum blocks. A lone model or a lone enum becomes the
// titled root; otherwise enums and then models become definitions.
func (h *Handler) Parse(text string) (*jschema.Schema, error) {
	if err := translate.RequireText(text); err != nil {
		return nil, err
	}
	models, enums := extract(text)
	if len(models) == 0 && len(enums) == 0 {
		return nil, translate.Fail(translate.ErrNoDeclaration, "No Prisma model or enum definitions found")
	}

	values := make(map[string][]string, len(enums))
	for _, e := range enums {
		values[e.name] = e.values
	}

	decls := make([]translate.Decl, 0, len(models)+len(enums))
	for _, e := range enums {
		decls = append(decls, translate.Decl{Name: e.name, Schema: jschema.StringEnum(e.values...)})
	}
	for _, m := range models {
		decls = append(decls, translate.Decl{Name: m.name, Schema: parseModel(m.body, values)})
	}
	return translate.Assemble(decls, "Prisma model or enum")
}

// Generate renders schema as model and enum blocks.
func (h *Handler) Generate(schema *jschema.Schema) (string, error) {
	r := newResolver(schema)
	data, err := translate.Prepare(schema, "MyModel", r)
	if err != nil {
		return "", err
	}
	for i := range data.Defs {
		translate.Align(data.Defs[i].Fields)
	}
	if data.Root != nil {
		translate.Align(data.Root.Fields)
	}
	return translate.Render(tmpl, "prisma", data)
}

// Validate checks for a model or enum block with a closed body.
func (h *Handler) Validate(text string) translate.Validation {
	if err := translate.RequireText(text); err != nil {
		return translate.InvalidErr(err)
	}
	if !blockPattern.MatchString(text) {
		return translate.Invalid("No Prisma model or enum definition found")
	}
	models, enums := extract(text)
	if len(models) == 0 && len(enums) == 0 {
		return translate.Invalid("Could not parse any model or enum blocks")
	}
	return translate.Valid()
}

// fieldLines returns the trimmed, non-empty lines of a block body without
// comments and block attributes.
func fieldLines(body string) []string {
	var out []string
	for _, line := range strings.Split(translate.StripComments(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "@@") {
			continue
		}
		out = append(out, line)
	}
	return out
}
