// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package zod

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dacolabs/schemamap/internal/translate"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokNumber
	tokRegex
	tokPunct
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "identifier"
	case tokString:
		return "string"
	case tokNumber:
		return "number"
	case tokRegex:
		return "regular expression"
	default:
		return "punctuation"
	}
}

// token is one lexeme. For strings text holds the unescaped value, for
// regular expressions the pattern between the slashes.
type token struct {
	kind    tokenKind
	text    string
	offset  int
	newline bool // a line break precedes the token
}

func (t token) is(text string) bool {
	return (t.kind == tokPunct || t.kind == tokIdent) && t.text == text
}

// lex splits src into tokens, dropping whitespace and comments.
func lex(src string) ([]token, error) {
	l := &lexer{src: src}
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, tok)
		if tok.kind == tokEOF {
			return l.tokens, nil
		}
	}
}

type lexer struct {
	src    string
	pos    int
	tokens []token
}

func (l *lexer) next() (token, error) {
	newline := l.skipSpace()
	start := l.pos
	tok := token{offset: start, newline: newline}
	if l.pos >= len(l.src) {
		tok.kind = tokEOF
		return tok, nil
	}

	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	switch {
	case r == '_' || r == '$' || unicode.IsLetter(r):
		for l.pos < len(l.src) {
			r, size = utf8.DecodeRuneInString(l.src[l.pos:])
			if r != '_' && r != '$' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				break
			}
			l.pos += size
		}
		tok.kind, tok.text = tokIdent, l.src[start:l.pos]

	case unicode.IsDigit(r) || (r == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1])):
		for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || strings.IndexByte("._eExXabcdefABCDEF", l.src[l.pos]) >= 0 ||
			(strings.IndexByte("+-", l.src[l.pos]) >= 0 && strings.IndexByte("eE", l.src[l.pos-1]) >= 0)) {
			l.pos++
		}
		tok.kind, tok.text = tokNumber, strings.ReplaceAll(l.src[start:l.pos], "_", "")

	case r == '"' || r == '\'' || r == '`':
		end, err := l.closing(byte(r))
		if err != nil {
			return tok, err
		}
		value, _ := translate.Unquote(l.src[start:end])
		tok.kind, tok.text = tokString, value

	case r == '/' && l.regexAllowed():
		end, err := l.closing('/')
		if err != nil {
			return tok, err
		}
		for l.pos < len(l.src) && isFlag(l.src[l.pos]) {
			l.pos++
		}
		tok.kind, tok.text = tokRegex, strings.ReplaceAll(l.src[start+1:end-1], `\/`, "/")

	default:
		tok.kind = tokPunct
		for _, op := range []string{"...", "=>", "?.", "??"} {
			if strings.HasPrefix(l.src[l.pos:], op) {
				tok.text = op
				l.pos += len(op)
				return tok, nil
			}
		}
		tok.text = string(r)
		l.pos += size
	}
	return tok, nil
}

// skipSpace advances past whitespace and comments and reports whether a
// line break was crossed.
func (l *lexer) skipSpace() bool {
	newline := false
	for l.pos < len(l.src) {
		rest := l.src[l.pos:]
		switch {
		case strings.HasPrefix(rest, "//"):
			end := strings.IndexByte(rest, '\n')
			if end < 0 {
				l.pos = len(l.src)
				return newline
			}
			l.pos += end
		case strings.HasPrefix(rest, "/*"):
			end := strings.Index(rest[2:], "*/")
			if end < 0 {
				l.pos = len(l.src)
				return newline
			}
			newline = newline || strings.Contains(rest[:end+2], "\n")
			l.pos += end + 4
		default:
			r, size := utf8.DecodeRuneInString(rest)
			if !unicode.IsSpace(r) {
				return newline
			}
			newline = newline || r == '\n'
			l.pos += size
		}
	}
	return newline
}

// closing scans a quoted run that opened at l.pos and returns the offset just
// past its closing delimiter.
func (l *lexer) closing(delim byte) (int, error) {
	start := l.pos
	for i := l.pos + 1; i < len(l.src); i++ {
		switch l.src[i] {
		case '\\':
			i++
		case '\n':
			if delim != '`' {
				return 0, translate.Failf(translate.ErrExternalBridge, "Unterminated literal at offset %d", start)
			}
		case delim:
			l.pos = i + 1
			return l.pos, nil
		}
	}
	return 0, translate.Failf(translate.ErrExternalBridge, "Unterminated literal at offset %d", start)
}

// regexAllowed reports whether a slash at this point starts a regular
// expression literal rather than a division.
func (l *lexer) regexAllowed() bool {
	if len(l.tokens) == 0 {
		return true
	}
	prev := l.tokens[len(l.tokens)-1]
	return prev.kind == tokPunct && strings.Contains("([,=:!&|?{};", prev.text)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isFlag(b byte) bool {
	return b >= 'a' && b <= 'z'
}
