// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema_test

import (
	"encoding/json"
	"testing"

	"github.com/dacolabs/schemamap/internal/jschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_InsertionOrder(t *testing.T) {
	m := jschema.NewMap()
	m.Set("b", jschema.Of(jschema.KindString))
	m.Set("a", jschema.Of(jschema.KindInteger))
	m.Set("b", jschema.Of(jschema.KindBoolean))

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	assert.Equal(t, 2, m.Len())

	got, ok := m.Get("b")
	require.True(t, ok)
	assert.Equal(t, jschema.KindBoolean, got.PrimaryKind())
}

func TestMap_NilIsEmpty(t *testing.T) {
	var m *jschema.Map
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
	_, ok := m.Get("x")
	assert.False(t, ok)
	for range m.All() {
		t.Fatal("nil map yielded an entry")
	}
}

func TestMap_ZeroValueSet(t *testing.T) {
	var m jschema.Map
	m.Set("x", jschema.Any())
	assert.Equal(t, []string{"x"}, m.Keys())
}

func TestMap_AllStopsEarly(t *testing.T) {
	m := jschema.NewMap()
	for _, k := range []string{"a", "b", "c"} {
		m.Set(k, jschema.Any())
	}

	var seen []string
	for k := range m.All() {
		seen = append(seen, k)
		if k == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestMap_KeysIsACopy(t *testing.T) {
	m := jschema.NewMap()
	m.Set("a", jschema.Any())
	keys := m.Keys()
	keys[0] = "z"
	assert.Equal(t, []string{"a"}, m.Keys())
}

func TestMap_Clone(t *testing.T) {
	m := jschema.NewMap()
	m.Set("a", jschema.Of(jschema.KindString))

	c := m.Clone()
	c.Set("b", jschema.Any())

	assert.Equal(t, []string{"a"}, m.Keys())
	assert.Equal(t, []string{"a", "b"}, c.Keys())
	aOrig, _ := m.Get("a")
	aCopy, _ := c.Get("a")
	assert.Same(t, aOrig, aCopy)
	assert.Nil(t, (*jschema.Map)(nil).Clone())
}

func TestMap_JSON(t *testing.T) {
	var m jschema.Map
	require.NoError(t, json.Unmarshal([]byte(`{"y":{"type":"string"},"x":true}`), &m))
	assert.Equal(t, []string{"y", "x"}, m.Keys())

	out, err := json.Marshal(&m)
	require.NoError(t, err)
	assert.Equal(t, `{"y":{"type":"string"},"x":true}`, string(out))
}
