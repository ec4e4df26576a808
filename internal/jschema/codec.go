// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// canonicalOrder is the keyword order used for schemas that were constructed
// rather than decoded; decoded schemas replay their source order first.
var canonicalOrder = []string{
	"$schema", "$id", "title", "description", "type", "format", "enum", "const", "default",
	"minimum", "maximum", "minLength", "maxLength", "pattern",
	"items", "minItems", "maxItems",
	"properties", "required", "additionalProperties",
	"oneOf", "anyOf", "allOf", "$ref", "definitions", "$defs",
}

var errNotObject = errors.New("expected a JSON object")

// Encode renders s as a two-space indented JSON document without HTML escaping.
func Encode(s *Schema) ([]byte, error) {
	compact, err := marshalNoEscape(s)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Decode parses a JSON document into a schema, preserving key order.
func Decode(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// MarshalJSON implements json.Marshaler.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s.Bool != nil {
		return []byte(strconv.FormatBool(*s.Bool)), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	written := make(map[string]bool)
	first := true
	emit := func(name string) error {
		if written[name] {
			return nil
		}
		written[name] = true
		raw, ok, err := s.keyword(name)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if !ok {
			return nil
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, _ := marshalNoEscape(name)
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(raw)
		return nil
	}

	for _, name := range s.keyOrder {
		if err := emit(name); err != nil {
			return nil, err
		}
	}
	for _, name := range canonicalOrder {
		if err := emit(name); err != nil {
			return nil, err
		}
	}
	for _, kw := range s.Extra {
		if err := emit(kw.Name); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// keyword returns the encoded value of a keyword and whether it is present.
func (s *Schema) keyword(name string) (json.RawMessage, bool, error) {
	raw, ok, err := s.knownKeyword(name)
	if ok || err != nil {
		return raw, ok, err
	}
	for _, kw := range s.Extra {
		if kw.Name == name {
			return kw.Value, true, nil
		}
	}
	return nil, false, nil
}

func (s *Schema) knownKeyword(name string) (json.RawMessage, bool, error) {
	str := func(v string) (json.RawMessage, bool, error) {
		if v == "" {
			return nil, false, nil
		}
		b, err := marshalNoEscape(v)
		return b, true, err
	}
	val := func(present bool, v any) (json.RawMessage, bool, error) {
		if !present {
			return nil, false, nil
		}
		b, err := marshalNoEscape(v)
		return b, true, err
	}

	switch name {
	case "$schema":
		return str(s.SchemaURI)
	case "$id":
		return str(s.ID)
	case "$ref":
		return str(s.Ref)
	case "title":
		return str(s.Title)
	case "description":
		return str(s.Description)
	case "format":
		return str(s.Format)
	case "pattern":
		return str(s.Pattern)
	case "type":
		switch len(s.Types) {
		case 0:
			return nil, false, nil
		case 1:
			return val(true, s.Types[0])
		default:
			return val(true, s.Types)
		}
	case "enum":
		return val(s.Enum != nil, s.Enum)
	case "const":
		return s.Const, s.Const != nil, nil
	case "default":
		return s.Default, s.Default != nil, nil
	case "minimum":
		return val(s.Minimum != nil, s.Minimum)
	case "maximum":
		return val(s.Maximum != nil, s.Maximum)
	case "minLength":
		return val(s.MinLength != nil, s.MinLength)
	case "maxLength":
		return val(s.MaxLength != nil, s.MaxLength)
	case "minItems":
		return val(s.MinItems != nil, s.MinItems)
	case "maxItems":
		return val(s.MaxItems != nil, s.MaxItems)
	case "items":
		return val(s.Items != nil, s.Items)
	case "properties":
		return val(s.Properties != nil, s.Properties)
	case "required":
		return val(s.Required != nil, s.Required)
	case "additionalProperties":
		return val(s.AdditionalProperties != nil, s.AdditionalProperties)
	case "oneOf":
		return val(s.OneOf != nil, s.OneOf)
	case "anyOf":
		return val(s.AnyOf != nil, s.AnyOf)
	case "allOf":
		return val(s.AllOf != nil, s.AllOf)
	case "definitions":
		return val(s.Definitions != nil, s.Definitions)
	case "$defs":
		return val(s.Defs != nil, s.Defs)
	}
	return nil, false, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Schema) UnmarshalJSON(data []byte) error {
	*s = Schema{}
	trimmed := bytes.TrimSpace(data)
	switch string(trimmed) {
	case "true", "false":
		b := string(trimmed) == "true"
		s.Bool = &b
		return nil
	}

	keywords, err := decodeObject(trimmed)
	if err != nil {
		return err
	}
	for _, kw := range keywords {
		s.keyOrder = append(s.keyOrder, kw.Name)
		known, err := s.setKeyword(kw.Name, kw.Value)
		if err != nil {
			return fmt.Errorf("%s: %w", kw.Name, err)
		}
		if !known {
			s.Extra = append(s.Extra, kw)
		}
	}
	return nil
}

// setKeyword decodes a known keyword. It reports false when the keyword is
// unknown or its value has an unexpected shape, leaving it for Extra.
func (s *Schema) setKeyword(name string, raw json.RawMessage) (bool, error) {
	lenient := func(dst any) bool {
		return json.Unmarshal(raw, dst) == nil
	}

	switch name {
	case "$schema":
		return lenient(&s.SchemaURI), nil
	case "$id":
		return lenient(&s.ID), nil
	case "$ref":
		return lenient(&s.Ref), nil
	case "title":
		return lenient(&s.Title), nil
	case "description":
		return lenient(&s.Description), nil
	case "format":
		return lenient(&s.Format), nil
	case "pattern":
		return lenient(&s.Pattern), nil
	case "type":
		var one string
		if json.Unmarshal(raw, &one) == nil {
			s.Types = []string{one}
			return true, nil
		}
		return lenient(&s.Types), nil
	case "enum":
		v, err := decodeValue(raw)
		if err != nil {
			return false, err
		}
		list, ok := v.([]any)
		if ok {
			s.Enum = list
		}
		return ok, nil
	case "const":
		s.Const = append(json.RawMessage(nil), raw...)
		return true, nil
	case "default":
		s.Default = append(json.RawMessage(nil), raw...)
		return true, nil
	case "minimum":
		return lenient(&s.Minimum), nil
	case "maximum":
		return lenient(&s.Maximum), nil
	case "minLength":
		return lenient(&s.MinLength), nil
	case "maxLength":
		return lenient(&s.MaxLength), nil
	case "minItems":
		return lenient(&s.MinItems), nil
	case "maxItems":
		return lenient(&s.MaxItems), nil
	case "required":
		return lenient(&s.Required), nil
	case "items":
		if isArray(raw) {
			return false, nil
		}
		return true, json.Unmarshal(raw, &s.Items)
	case "additionalProperties":
		return true, json.Unmarshal(raw, &s.AdditionalProperties)
	case "properties":
		return true, json.Unmarshal(raw, &s.Properties)
	case "definitions":
		return true, json.Unmarshal(raw, &s.Definitions)
	case "$defs":
		return true, json.Unmarshal(raw, &s.Defs)
	case "oneOf":
		return true, json.Unmarshal(raw, &s.OneOf)
	case "anyOf":
		return true, json.Unmarshal(raw, &s.AnyOf)
	case "allOf":
		return true, json.Unmarshal(raw, &s.AllOf)
	}
	return false, nil
}

// MarshalJSON implements json.Marshaler, writing entries in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(name)
		if err != nil {
			return nil, err
		}
		value, err := marshalNoEscape(m.values[name])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler, preserving source key order.
func (m *Map) UnmarshalJSON(data []byte) error {
	entries, err := decodeObject(bytes.TrimSpace(data))
	if err != nil {
		return err
	}
	*m = Map{values: make(map[string]*Schema, len(entries))}
	for _, e := range entries {
		var child Schema
		if err := json.Unmarshal(e.Value, &child); err != nil {
			return fmt.Errorf("%s: %w", e.Name, err)
		}
		m.Set(e.Name, &child)
	}
	return nil
}

// decodeObject reads the members of a JSON object in source order.
func decodeObject(data []byte) ([]Keyword, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errNotObject
	}

	var out []Keyword
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errNotObject
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		out = append(out, Keyword{Name: key, Value: raw})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeValue decodes an arbitrary JSON value, keeping numbers as json.Number.
func decodeValue(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// valueString renders an enum or default value the way a source literal reads.
func valueString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(x)
	}
	b, err := marshalNoEscape(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
