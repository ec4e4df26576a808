// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"strings"
	"unicode"
)

// Common Go acronyms that should be fully uppercased.
var acronyms = map[string]string{
	"id":   "ID",
	"url":  "URL",
	"http": "HTTP",
	"api":  "API",
	"json": "JSON",
	"xml":  "XML",
	"sql":  "SQL",
	"html": "HTML",
	"ip":   "IP",
	"tcp":  "TCP",
	"udp":  "UDP",
	"tls":  "TLS",
	"ssl":  "SSL",
	"ssh":  "SSH",
	"cpu":  "CPU",
	"uri":  "URI",
	"uuid": "UUID",
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// ToSnakeCase converts a string to a valid snake_case identifier.
// It splits on non-alphanumeric characters and case changes, lowercases each
// part, and prefixes with underscore if the result starts with a digit.
func ToSnakeCase(s string) string {
	parts := Words(s)
	for i, part := range parts {
		parts[i] = strings.ToLower(part)
	}

	result := strings.Join(parts, "_")
	if result != "" && result[0] >= '0' && result[0] <= '9' {
		result = "_" + result
	}
	return result
}

// ToPascalCase converts a snake_case or kebab-case string to PascalCase,
// keeping the case of everything but each part's first letter.
func ToPascalCase(s string) string {
	parts := strings.FieldsFunc(s, isSeparator)

	var sb strings.Builder
	for _, part := range parts {
		sb.WriteString(upperFirst(part))
	}
	return sb.String()
}

// ToCamelCase converts a string to camelCase.
func ToCamelCase(s string) string {
	return LowerFirst(ToPascalCase(s))
}

// ToGoName converts a property name to an exported Go identifier.
// It handles common Go acronyms (ID, URL, HTTP, API, JSON, XML, SQL, HTML).
func ToGoName(s string) string {
	var sb strings.Builder
	for _, part := range Words(s) {
		if acronym, ok := acronyms[strings.ToLower(part)]; ok {
			sb.WriteString(acronym)
		} else {
			sb.WriteString(upperFirst(part))
		}
	}

	name := sb.String()
	if name == "" {
		return "Field"
	}
	if unicode.IsDigit(rune(name[0])) {
		name = "X" + name
	}
	return name
}

// LowerFirst lowercases the leading uppercase run of an identifier, leaving
// the last letter of the run when it starts the next word: "ID" becomes "id"
// and "URLPath" becomes "urlPath".
func LowerFirst(s string) string {
	runes := []rune(s)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	switch {
	case n == 0:
		return s
	case n == 1 || n == len(runes):
	default:
		if unicode.IsLower(runes[n]) {
			n--
		}
	}
	for i := range n {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// Words splits an identifier into words on separators and case changes,
// keeping acronym runs together: "userHTTPServer_id" yields
// [user HTTP Server id].
func Words(s string) []string {
	var words []string
	for _, field := range strings.FieldsFunc(s, isSeparator) {
		runes := []rune(field)
		start := 0
		for i := 1; i < len(runes); i++ {
			prev, cur := runes[i-1], runes[i]
			next := rune(0)
			if i+1 < len(runes) {
				next = runes[i+1]
			}
			boundary := (unicode.IsLower(prev) || unicode.IsDigit(prev)) && unicode.IsUpper(cur) ||
				unicode.IsUpper(prev) && unicode.IsUpper(cur) && unicode.IsLower(next)
			if boundary {
				words = append(words, string(runes[start:i]))
				start = i
			}
		}
		words = append(words, string(runes[start:]))
	}
	return words
}

// IsIdentifier reports whether s is usable as a bare identifier in the
// C-family notations: a letter, "_" or "$" followed by letters, digits, "_" or "$".
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// TypeName returns name when it is already an identifier, or its PascalCase form.
func TypeName(name string) string {
	if IsIdentifier(name) {
		return name
	}
	pascal := ToPascalCase(name)
	if pascal == "" {
		return "Type"
	}
	if unicode.IsDigit(rune(pascal[0])) {
		pascal = "T" + pascal
	}
	return pascal
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
