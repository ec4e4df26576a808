// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"iter"
	"slices"
)

// Map is an insertion-ordered mapping from name to schema.
// The zero value is empty and ready to use; a nil *Map reads as empty.
type Map struct {
	keys   []string
	values map[string]*Schema
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{values: make(map[string]*Schema)}
}

// Set stores s under name. Re-setting an existing name keeps its position.
func (m *Map) Set(name string, s *Schema) {
	if m.values == nil {
		m.values = make(map[string]*Schema)
	}
	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.values[name] = s
}

// Get returns the schema stored under name.
func (m *Map) Get(name string) (*Schema, bool) {
	if m == nil {
		return nil, false
	}
	s, ok := m.values[name]
	return s, ok
}

// Clone returns a map with the same entries that can be extended without
// affecting m. The schemas themselves are shared.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	c := NewMap()
	for k, v := range m.All() {
		c.Set(k, v)
	}
	return c
}

// Keys returns names in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// All iterates entries in insertion order.
func (m *Map) All() iter.Seq2[string, *Schema] {
	return func(yield func(string, *Schema) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}
