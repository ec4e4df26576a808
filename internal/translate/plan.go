// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"cmp"

	"github.com/dacolabs/schemamap/internal/jschema"
)

// Decl is one named top-level type.
type Decl struct {
	Name   string
	Schema *jschema.Schema
}

// Assemble builds the canonical result of a parse. A single declaration
// becomes the titled root; several become definitions of a synthetic root.
// It fails with ErrNoDeclaration when decls is empty and with ErrNoFields when
// no declaration carries a field or an enumeration value.
func Assemble(decls []Decl, noun string) (*jschema.Schema, error) {
	if len(decls) == 0 {
		return nil, Failf(ErrNoDeclaration, "No %s definitions found", noun)
	}

	usable := false
	for _, d := range decls {
		if d.Schema.HasProperties() || len(d.Schema.Enum) > 0 {
			usable = true
			break
		}
	}
	if !usable {
		return nil, Failf(ErrNoFields, "No fields could be extracted from %s definitions", noun)
	}

	if len(decls) == 1 {
		root := decls[0].Schema.Clone()
		root.Title = decls[0].Name
		return root, nil
	}

	root := jschema.Object()
	root.Title = jschema.RootTitle
	root.Definitions = jschema.NewMap()
	for _, d := range decls {
		root.Definitions.Set(d.Name, d.Schema)
	}
	return root, nil
}

// Plan lists the named constructs a generator emits for schema: every
// definition in declaration order, then the root. With definitions present the
// root is emitted only when it carries properties, named by its title or
// "Root"; without definitions it is always emitted, named by its title or
// fallbackName.
func Plan(schema *jschema.Schema, fallbackName string) (defs []Decl, root *Decl) {
	for name, def := range schema.AllDefinitions().All() {
		defs = append(defs, Decl{Name: name, Schema: def})
	}
	if len(defs) == 0 {
		return nil, &Decl{Name: cmp.Or(schema.Title, fallbackName), Schema: schema}
	}
	if schema.HasProperties() {
		root = &Decl{Name: cmp.Or(schema.Title, jschema.RootTitle), Schema: schema}
	}
	return defs, root
}

// Declared returns a set of declared type names. Parsers use it to turn type
// tokens that name a sibling declaration into references.
func Declared(names ...string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}
