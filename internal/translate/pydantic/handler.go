// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package pydantic provides the Pydantic BaseModel handler.
package pydantic

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

//go:embed pydantic.go.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.New("").Funcs(template.FuncMap{
	"members": members,
}).ParseFS(tmplFS, "pydantic.go.tmpl"))

// Handler converts between Pydantic models and canonical schemas.
type Handler struct{}

var _ translate.Handler = (*Handler)(nil)

// Parse reads every BaseModel class in text, plus the Enum classes they may
// reference.
func (h *Handler) Parse(text string) (*jschema.Schema, error) {
	if err := translate.RequireText(text); err != nil {
		return nil, err
	}
	sources := extract(text)
	if !hasModel(sources) {
		return nil, translate.Fail(translate.ErrNoDeclaration, "No Pydantic BaseModel classes found")
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
	return translate.Assemble(decls, "Pydantic")
}

// Generate renders schema as BaseModel classes with the imports they use.
func (h *Handler) Generate(schema *jschema.Schema) (string, error) {
	data, err := translate.Prepare(schema, "MyModel", &resolver{})
	if err != nil {
		return "", err
	}
	types, forward := dependencyOrder(data.Types())
	data.Defs, data.Root = types, nil
	data.Extra["Imports"] = imports(data, forward)
	return translate.Render(tmpl, "pydantic", data)
}

// Validate checks for a BaseModel class header followed by a body.
func (h *Handler) Validate(text string) translate.Validation {
	if err := translate.RequireText(text); err != nil {
		return translate.InvalidErr(err)
	}
	if !declPattern.MatchString(text) {
		return translate.Invalid(`No Pydantic BaseModel class found (expected "class Name(BaseModel):")`)
	}
	if !hasModel(extract(text)) {
		return translate.Invalid("Could not parse model body")
	}
	return translate.Valid()
}

var wordPattern = regexp.MustCompile(`\w+`)

// importFrom maps names a generated module may use to their modules.
var importFrom = map[string]string{
	"Any":      "typing",
	"Dict":     "typing",
	"List":     "typing",
	"Literal":  "typing",
	"Optional": "typing",
	"Union":    "typing",
	"date":     "datetime",
	"datetime": "datetime",
	"UUID":     "uuid",
	"Field":    "pydantic",
}

// dependencyOrder moves every class after the classes its annotations name,
// keeping the given order otherwise. Python evaluates annotations when the
// class body runs, so a class that refers to itself or to a later class
// needs postponed annotations; forward reports that case.
func dependencyOrder(types []translate.TypeDef) (ordered []translate.TypeDef, forward bool) {
	index := make(map[string]int, len(types))
	for i, t := range types {
		index[t.Name] = i
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(types))
	var visit func(i int)
	visit = func(i int) {
		state[i] = visiting
		for _, annotation := range annotations(types[i]) {
			for _, w := range wordPattern.FindAllString(annotation, -1) {
				j, ok := index[w]
				if !ok {
					continue
				}
				switch state[j] {
				case unvisited:
					visit(j)
				case visiting:
					forward = true
				}
			}
		}
		state[i] = done
		ordered = append(ordered, types[i])
	}
	for i := range types {
		if state[i] == unvisited {
			visit(i)
		}
	}
	return ordered, forward
}

// annotations returns the type expressions a class body evaluates.
func annotations(t translate.TypeDef) []string {
	if t.IsAlias() {
		return []string{t.Alias}
	}
	out := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		out[i] = f.Type
	}
	return out
}

// imports renders the from-import lines: postponed annotations when forward
// is set, standard library modules sorted, then pydantic.
func imports(data *translate.SchemaData, forward bool) []string {
	used := map[string]map[string]bool{
		"pydantic": {"BaseModel": true},
	}
	add := func(module, name string) {
		if used[module] == nil {
			used[module] = make(map[string]bool)
		}
		used[module][name] = true
	}
	for _, def := range data.Types() {
		if def.IsEnum() {
			add("enum", "Enum")
		}
		for _, w := range wordPattern.FindAllString(def.Alias, -1) {
			if module, ok := importFrom[w]; ok {
				add(module, w)
			}
		}
	}
	for _, f := range data.Fields() {
		for _, w := range wordPattern.FindAllString(f.Type+" "+f.Tag, -1) {
			if module, ok := importFrom[w]; ok {
				add(module, w)
			}
		}
	}

	var lines []string
	if forward {
		lines = append(lines, "from __future__ import annotations", "")
	}
	std := 0
	for _, module := range slices.Sorted(maps.Keys(used)) {
		if module == "pydantic" {
			continue
		}
		lines = append(lines, importLine(module, used[module]))
		std++
	}
	if std > 0 {
		lines = append(lines, "")
	}
	return append(lines, importLine("pydantic", used["pydantic"]))
}

func importLine(module string, names map[string]bool) string {
	return "from " + module + " import " + strings.Join(slices.Sorted(maps.Keys(names)), ", ")
}

type member struct {
	Name  string
	Value string
}

// members names the members of a generated Enum class after their values.
func members(values []string) []member {
	out := make([]member, len(values))
	for i, v := range values {
		name := v
		if !isPythonIdentifier(name) {
			name = strings.ToUpper(attributeName(v))
		}
		out[i] = member{Name: name, Value: translate.QuoteDouble(v)}
	}
	return out
}
