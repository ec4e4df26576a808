// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prisma

import (
	"encoding/json"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/dacolabs/schemamap/internal/blocks"
	"github.com/dacolabs/schemamap/internal/jschema"
)

var (
	blockPattern   = regexp.MustCompile(`(?:model|enum)\s+\w+\s*\{`)
	modelPattern   = regexp.MustCompile(`model\s+(\w+)\s*\{`)
	enumPattern    = regexp.MustCompile(`enum\s+(\w+)\s*\{`)
	mapPattern     = regexp.MustCompile(`@map\(\s*"([^"]*)"\s*\)`)
	defaultPattern = regexp.MustCompile(`@default\(\s*("(?:[^"\\]|\\.)*"|-?\d+(?:\.\d+)?|true|false)\s*\)`)
)

type model struct {
	name string
	body string
}

type enum struct {
	name   string
	values []string
}

func extract(text string) ([]model, []enum) {
	var models []model
	for b := range blocks.Extract(text, modelPattern) {
		models = append(models, model{name: b.Name, body: b.Body})
	}
	var enums []enum
	for b := range blocks.Extract(text, enumPattern) {
		e := enum{name: b.Name}
		for _, line := range fieldLines(b.Body) {
			e.values = append(e.values, enumValues(line)...)
		}
		enums = append(enums, e)
	}
	return models, enums
}

// enumValues returns the values on one enum body line. Several values may
// share a line; attributes such as @map end the value list.
func enumValues(line string) []string {
	var values []string
	for _, tok := range strings.Fields(line) {
		if strings.HasPrefix(tok, "@") {
			break
		}
		values = append(values, tok)
	}
	return values
}

// parseModel reads "name Type? @attrs" lines. Fields typed with a known enum
// inline its values; other unknown types, relations included, become strings.
func parseModel(body string, enums map[string][]string) *jschema.Schema {
	s := jschema.Object()
	for _, line := range fieldLines(body) {
		parts := strings.Fields(line)
		if len(parts) < 2 || strings.HasPrefix(parts[0], "@") {
			continue
		}
		name, rawType := parts[0], parts[1]
		optional := strings.HasSuffix(rawType, "?")
		list := strings.HasSuffix(rawType, "[]")
		base := strings.NewReplacer("?", "", "[]", "").Replace(rawType)

		prop := scalar(base, enums)
		if attrs := strings.Join(parts[2:], " "); attrs != "" {
			if m := mapPattern.FindStringSubmatch(attrs); m != nil {
				name = m[1]
			}
			if m := defaultPattern.FindStringSubmatch(attrs); m != nil && !list {
				prop.Default = defaultValue(m[1])
			}
		}
		if list {
			prop = jschema.ArrayOf(prop)
		}
		if optional {
			prop = jschema.Nullable(prop)
		}

		s.Properties.Set(name, prop)
		if !optional && !slices.Contains(s.Required, name) {
			s.Required = append(s.Required, name)
		}
	}
	return s
}

func scalar(prismaType string, enums map[string][]string) *jschema.Schema {
	if values, ok := enums[prismaType]; ok {
		return jschema.StringEnum(values...)
	}
	switch prismaType {
	case "Int", "BigInt":
		return jschema.Of(jschema.KindInteger)
	case "Float", "Decimal":
		return jschema.Of(jschema.KindNumber)
	case "Boolean":
		return jschema.Of(jschema.KindBoolean)
	case "DateTime":
		s := jschema.Of(jschema.KindString)
		s.Format = "date-time"
		return s
	case "Json":
		return jschema.MapOf(nil)
	default:
		return jschema.Of(jschema.KindString)
	}
}

func defaultValue(literal string) json.RawMessage {
	if unquoted, err := strconv.Unquote(literal); err == nil {
		return jschema.Raw(unquoted)
	}
	return json.RawMessage(literal)
}
