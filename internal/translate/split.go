// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import "strings"

// SplitTopLevel splits s at any separator byte in seps that is not nested
// inside (), [], {} or <> and not inside a quoted string. Parts are trimmed
// and empty parts dropped.
func SplitTopLevel(s, seps string) []string {
	var parts []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if quote != 0 {
			switch ch {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch {
		case ch == '\'' || ch == '"' || ch == '`':
			quote = ch
		case strings.IndexByte("([{<", ch) >= 0:
			depth++
		case strings.IndexByte(")]}>", ch) >= 0:
			// "=>" in an arrow function is not a closing bracket
			if ch == '>' && i > 0 && s[i-1] == '=' {
				continue
			}
			if depth > 0 {
				depth--
			}
		case depth == 0 && strings.IndexByte(seps, ch) >= 0:
			parts = appendTrimmed(parts, s[start:i])
			start = i + 1
		}
	}
	return appendTrimmed(parts, s[start:])
}

func appendTrimmed(parts []string, p string) []string {
	if p = strings.TrimSpace(p); p != "" {
		parts = append(parts, p)
	}
	return parts
}

// Unwrap returns the text between the outer open and close delimiters of s
// when s has the form prefix + open + inner + close, e.g. Unwrap("List[str]",
// "List", '[', ']') returns "str".
func Unwrap(s, prefix string, open, close byte) (string, bool) {
	rest, ok := strings.CutPrefix(s, prefix)
	if !ok {
		return "", false
	}
	rest = strings.TrimSpace(rest)
	if len(rest) < 2 || rest[0] != open || rest[len(rest)-1] != close {
		return "", false
	}
	return strings.TrimSpace(rest[1 : len(rest)-1]), true
}

// QuoteSingle renders s as a single-quoted string literal.
func QuoteSingle(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)
	return "'" + r.Replace(s) + "'"
}

// QuoteDouble renders s as a double-quoted string literal.
func QuoteDouble(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}

// Unquote strips matching single, double or backtick quotes from s and
// resolves backslash escapes of the quote and backslash characters.
func Unquote(s string) (string, bool) {
	if len(s) < 2 {
		return s, false
	}
	q := s[0]
	if (q != '\'' && q != '"' && q != '`') || s[len(s)-1] != q {
		return s, false
	}
	inner := s[1 : len(s)-1]
	if q == '`' {
		return inner, true
	}
	var sb strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
			switch inner[i] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(inner[i])
			}
			continue
		}
		sb.WriteByte(inner[i])
	}
	return sb.String(), true
}

// StripComments removes // line comments and /* */ block comments from s,
// leaving quoted strings intact. Line breaks are kept so that line-oriented
// scanning still works.
func StripComments(s string) string {
	var sb strings.Builder
	var quote byte
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if quote != 0 {
			sb.WriteByte(ch)
			switch ch {
			case '\\':
				if i+1 < len(s) {
					i++
					sb.WriteByte(s[i])
				}
			case quote:
				quote = 0
			}
			continue
		}
		switch {
		case ch == '\'' || ch == '"' || ch == '`':
			quote = ch
			sb.WriteByte(ch)
		case ch == '/' && i+1 < len(s) && s[i+1] == '/':
			for i < len(s) && s[i] != '\n' {
				i++
			}
			if i < len(s) {
				sb.WriteByte('\n')
			}
		case ch == '/' && i+1 < len(s) && s[i+1] == '*':
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				return sb.String()
			}
			sb.WriteString(strings.Repeat("\n", strings.Count(s[i:i+2+end], "\n")))
			sb.WriteByte(' ')
			i += end + 3
		default:
			sb.WriteByte(ch)
		}
	}
	return sb.String()
}

// Parenthesized returns the inside of s when one pair of parentheses wraps
// all of it.
func Parenthesized(s string) (string, bool) {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return "", false
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return "", false
			}
		}
	}
	return strings.TrimSpace(s[1 : len(s)-1]), true
}
