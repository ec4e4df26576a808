// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import "iter"

// RefResolver resolves $ref strings to schemas.
// Return nil if the ref cannot be resolved.
type RefResolver func(ref string) *Schema

// Traverse returns an iterator over all schemas in the tree.
// It handles cycles by tracking visited schemas.
// If resolver is provided, it follows $ref links to their targets.
func Traverse(schema *Schema, resolver RefResolver) iter.Seq[*Schema] {
	return func(yield func(*Schema) bool) {
		visited := make(map[*Schema]struct{})
		traverseWithVisited(schema, resolver, yield, visited)
	}
}

// DefinitionResolver resolves local references against the definitions of root.
func DefinitionResolver(root *Schema) RefResolver {
	defs := root.AllDefinitions()
	return func(ref string) *Schema {
		if IsFileRef(ref) {
			return nil
		}
		s, _ := defs.Get(RefBase(ref))
		return s
	}
}

func traverseWithVisited(schema *Schema, resolver RefResolver, yield func(*Schema) bool, visited map[*Schema]struct{}) bool {
	if schema == nil {
		return true
	}
	if _, ok := visited[schema]; ok {
		return true
	}
	visited[schema] = struct{}{}

	if !yield(schema) {
		return false
	}

	if schema.Ref != "" && resolver != nil {
		if resolved := resolver(schema.Ref); resolved != nil {
			if !traverseWithVisited(resolved, resolver, yield, visited) {
				return false
			}
		}
	}

	walkMap := func(m *Map) bool {
		for _, s := range m.All() {
			if !traverseWithVisited(s, resolver, yield, visited) {
				return false
			}
		}
		return true
	}
	walkList := func(list []*Schema) bool {
		for _, s := range list {
			if !traverseWithVisited(s, resolver, yield, visited) {
				return false
			}
		}
		return true
	}

	// Objects
	if !walkMap(schema.Properties) {
		return false
	}
	if !traverseWithVisited(schema.AdditionalProperties, resolver, yield, visited) {
		return false
	}

	// Arrays
	if !traverseWithVisited(schema.Items, resolver, yield, visited) {
		return false
	}

	// Logic
	if !walkList(schema.AllOf) || !walkList(schema.AnyOf) || !walkList(schema.OneOf) {
		return false
	}

	// Named types
	return walkMap(schema.Definitions) && walkMap(schema.Defs)
}
