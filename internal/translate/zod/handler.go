// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package zod provides the Zod builder expression handler. Sources are read by
// a dedicated parser for the builder-call subset; nothing is evaluated.
package zod

import (
	"embed"
	"text/template"

	"github.com/dacolabs/schemamap/internal/jschema"
	"github.com/dacolabs/schemamap/internal/translate"
)

//go:embed zod.go.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.ParseFS(tmplFS, "zod.go.tmpl"))

// Handler converts between Zod builder expressions and canonical schemas.
type Handler struct{}

var _ translate.Handler = (*Handler)(nil)

// Parse reads a single builder expression, or a program of const
// declarations optionally followed by one bare expression.
func (h *Handler) Parse(text string) (*jschema.Schema, error) {
	if err := translate.RequireText(text); err != nil {
		return nil, err
	}
	prog, err := parseProgram(text)
	if err != nil {
		return nil, err
	}

	expr := prog.expr
	if expr != nil && expr.schema.Ref != "" && !expr.optional {
		// A trailing reference to a constant adds nothing to the constants.
		expr = nil
	}
	if expr == nil {
		if len(prog.consts) == 0 {
			return nil, translate.Fail(translate.ErrExternalBridge, noSchema)
		}
		return translate.Assemble(prog.consts, "Zod")
	}

	root := expr.schema
	if len(prog.consts) > 0 {
		root = root.Clone()
		root.Definitions = jschema.NewMap()
		for _, c := range prog.consts {
			root.Definitions.Set(c.Name, c.Schema)
		}
	}
	return root, nil
}

const noSchema = "Expression does not evaluate to a Zod schema"

type constant struct {
	Name string
	Expr string
}

// Generate renders definitions as const declarations in order, then the root.
// An untitled root without definitions is emitted as a bare expression.
func (h *Handler) Generate(schema *jschema.Schema) (string, error) {
	if schema == nil {
		return "", translate.Fail(translate.ErrGeneration, "No schema to generate from")
	}
	defs, root := translate.Plan(schema, "")
	e := newEmitter(defs)

	var consts []constant
	for _, d := range defs {
		consts = append(consts, constant{Name: constName(d.Name), Expr: e.expr(d.Schema, 0)})
		e.emitted[d.Name] = true
	}
	if root != nil {
		c := constant{Expr: e.expr(root.Schema, 0)}
		if root.Name != "" {
			c.Name = constName(root.Name)
		}
		consts = append(consts, c)
	}
	return translate.Render(tmpl, "zod", consts)
}

// Validate reports whether text parses as a builder expression or program.
func (h *Handler) Validate(text string) translate.Validation {
	if err := translate.RequireText(text); err != nil {
		return translate.InvalidErr(err)
	}
	prog, err := parseProgram(text)
	if err != nil {
		return translate.InvalidErr(err)
	}
	if prog.expr == nil && len(prog.consts) == 0 {
		return translate.Invalid(noSchema)
	}
	return translate.Valid()
}
