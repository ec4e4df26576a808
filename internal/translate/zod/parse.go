// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package zod

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dacolabs/schemamap/internal/jschema"
	"github.com/dacolabs/schemamap/internal/translate"
)

// maxDepth bounds expression nesting.
const maxDepth = 200

// node is a parsed builder expression. Optionality belongs to the property
// that holds the schema, not to the schema itself.
type node struct {
	schema   *jschema.Schema
	optional bool
}

// program is the result of reading a source text: named constants in source
// order and at most one bare expression.
type program struct {
	consts []translate.Decl
	expr   *node
}

type parser struct {
	tokens []token
	pos    int
	depth  int
	names  map[string]bool // every constant declared in the text
	bound  map[string]bool // constants declared before the current position
	values map[string]*jschema.Schema
	inLazy int
}

func parseProgram(src string) (*program, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{
		tokens: tokens,
		names:  declaredConsts(tokens),
		bound:  make(map[string]bool),
		values: make(map[string]*jschema.Schema),
	}
	prog := &program{}
	for p.peek().kind != tokEOF {
		if p.peek().is(";") {
			p.advance()
			continue
		}
		if err := p.statement(prog); err != nil {
			return nil, err
		}
	}
	return prog, nil
}

// declaredConsts collects the names bound by const, let and var statements
// so that lazy references may point forward.
func declaredConsts(tokens []token) map[string]bool {
	names := make(map[string]bool)
	for i := 0; i+1 < len(tokens); i++ {
		t := tokens[i]
		if t.kind == tokIdent && (t.text == "const" || t.text == "let" || t.text == "var") && tokens[i+1].kind == tokIdent {
			names[tokens[i+1].text] = true
		}
	}
	return names
}

func (p *parser) statement(prog *program) error {
	tok := p.peek()
	if tok.is("export") {
		p.advance()
		if p.peek().is("default") {
			p.advance()
		}
		tok = p.peek()
	}

	switch {
	case tok.is("import") || tok.is("type") || tok.is("interface"):
		p.skipStatement()
		return nil

	case tok.is("const") || tok.is("let") || tok.is("var"):
		p.advance()
		name, err := p.expect(tokIdent, "")
		if err != nil {
			return err
		}
		if p.peek().is(":") {
			p.skipUntil("=")
		}
		if _, err := p.expect(tokPunct, "="); err != nil {
			return err
		}
		n, err := p.expression()
		if err != nil {
			return err
		}
		p.bound[name.text] = true
		p.values[name.text] = n.schema
		prog.consts = append(prog.consts, translate.Decl{Name: name.text, Schema: n.schema})
		return p.endStatement()
	}

	if prog.expr != nil {
		return p.errorf(tok, "Unexpected second expression")
	}
	n, err := p.expression()
	if err != nil {
		return err
	}
	prog.expr = n
	return p.endStatement()
}

func (p *parser) endStatement() error {
	tok := p.peek()
	switch {
	case tok.is(";"):
		p.advance()
	case tok.kind == tokEOF || tok.newline:
	default:
		return p.errorf(tok, "Unexpected %s %q", tok.kind, tok.text)
	}
	return nil
}

// skipStatement drops tokens up to a top-level ";" or line break.
func (p *parser) skipStatement() {
	depth := 0
	p.advance()
	for {
		tok := p.peek()
		switch {
		case tok.kind == tokEOF:
			return
		case depth == 0 && tok.is(";"):
			p.advance()
			return
		case depth == 0 && tok.newline:
			return
		case tok.is("(") || tok.is("[") || tok.is("{") || tok.is("<"):
			depth++
		case tok.is(")") || tok.is("]") || tok.is("}") || tok.is(">"):
			depth--
		}
		p.advance()
	}
}

// skipUntil drops tokens up to text outside brackets. Angle brackets are not
// counted since comparisons may appear in refinement callbacks.
func (p *parser) skipUntil(text string) {
	depth := 0
	for tok := p.peek(); tok.kind != tokEOF; tok = p.peek() {
		switch {
		case depth == 0 && tok.is(text):
			return
		case tok.is("(") || tok.is("[") || tok.is("{"):
			depth++
		case tok.is(")") || tok.is("]") || tok.is("}"):
			depth--
		}
		p.advance()
	}
}

func (p *parser) expression() (*node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		return nil, p.errorf(p.peek(), "Expression nested too deeply")
	}

	n, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.peek().is(".") {
		p.advance()
		method, err := p.expect(tokIdent, "")
		if err != nil {
			return nil, err
		}
		if !p.peek().is("(") {
			if method.text != "shape" {
				return nil, p.errorf(method, "Unsupported property .%s", method.text)
			}
			continue
		}
		if n, err = p.method(n, method); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (p *parser) primary() (*node, error) {
	tok := p.peek()
	switch {
	case tok.is("("):
		p.advance()
		n, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokPunct, ")"); err != nil {
			return nil, err
		}
		return n, nil

	case tok.is("z"):
		p.advance()
		if _, err := p.expect(tokPunct, "."); err != nil {
			return nil, err
		}
		builder, err := p.expect(tokIdent, "")
		if err != nil {
			return nil, err
		}
		if builder.text == "coerce" {
			if _, err := p.expect(tokPunct, "."); err != nil {
				return nil, err
			}
			if builder, err = p.expect(tokIdent, ""); err != nil {
				return nil, err
			}
		}
		return p.builder(builder)

	case tok.kind == tokIdent:
		p.advance()
		if p.bound[tok.text] || (p.inLazy > 0 && p.names[tok.text]) {
			return &node{schema: jschema.RefTo(tok.text)}, nil
		}
		if p.names[tok.text] {
			return nil, p.errorf(tok, "Cannot access %q before initialization; wrap it in z.lazy", tok.text)
		}
		return nil, p.errorf(tok, "%s is not defined", tok.text)
	}
	return nil, p.errorf(tok, "Expected a Zod expression, found %s %q", tok.kind, tok.text)
}

// builder parses the arguments of z.<name>(...).
func (p *parser) builder(name token) (*node, error) {
	if _, err := p.expect(tokPunct, "("); err != nil {
		return nil, err
	}

	var s *jschema.Schema
	switch name.text {
	case "object", "strictObject", "looseObject":
		obj, err := p.shape()
		if err != nil {
			return nil, err
		}
		switch name.text {
		case "strictObject":
			obj.AdditionalProperties = jschema.False()
		case "looseObject":
			obj.AdditionalProperties = jschema.True()
		}
		s = obj
	case "string":
		s = jschema.Of(jschema.KindString)
	case "number":
		s = jschema.Of(jschema.KindNumber)
	case "int", "bigint":
		s = jschema.Of(jschema.KindInteger)
	case "boolean":
		s = jschema.Of(jschema.KindBoolean)
	case "date":
		s = formatted("date-time")
	case "email", "uuid", "url":
		s = formatted(stringFormats[name.text])
	case "null":
		s = jschema.Of(jschema.KindNull)
	case "any", "unknown":
		s = jschema.Any()
	case "never":
		s = jschema.False()
	case "array", "set":
		item, err := p.expression()
		if err != nil {
			return nil, err
		}
		s = jschema.ArrayOf(item.schema)
	case "optional":
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		inner.optional = true
		return inner, p.closeCall()
	case "nullable":
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		inner.schema = jschema.OrNull(inner.schema)
		return inner, p.closeCall()
	case "record", "map":
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		if p.peek().is(",") {
			p.advance()
			if !p.peek().is(")") {
				if value, err = p.expression(); err != nil {
					return nil, err
				}
			}
		}
		s = jschema.MapOf(value.schema)
	case "enum":
		values, err := p.stringList()
		if err != nil {
			return nil, err
		}
		s = jschema.StringEnum(values...)
	case "literal":
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		s = literalSchema(v)
	case "union", "discriminatedUnion":
		if name.text == "discriminatedUnion" {
			if _, err := p.expect(tokString, ""); err != nil {
				return nil, err
			}
			if _, err := p.expect(tokPunct, ","); err != nil {
				return nil, err
			}
		}
		members, err := p.expressionList()
		if err != nil {
			return nil, err
		}
		s = union(members)
	case "intersection":
		left, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokPunct, ","); err != nil {
			return nil, err
		}
		right, err := p.expression()
		if err != nil {
			return nil, err
		}
		s = &jschema.Schema{AllOf: []*jschema.Schema{left.schema, right.schema}}
	case "lazy":
		return p.lazy()
	default:
		return nil, p.errorf(name, "Unsupported Zod builder z.%s", name.text)
	}

	// Trailing arguments such as error maps are ignored.
	p.skipUntil(")")
	return &node{schema: s}, p.closeCall()
}

var stringFormats = map[string]string{
	"email":    "email",
	"uuid":     "uuid",
	"url":      "uri",
	"datetime": "date-time",
	"date":     "date",
	"time":     "time",
}

// lazy parses z.lazy(() => expr) and z.lazy(() => { return expr; }).
func (p *parser) lazy() (*node, error) {
	if _, err := p.expect(tokPunct, "("); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokPunct, ")"); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokPunct, "=>"); err != nil {
		return nil, err
	}
	block := p.peek().is("{")
	if block {
		p.advance()
		if _, err := p.expect(tokIdent, "return"); err != nil {
			return nil, err
		}
	}

	p.inLazy++
	n, err := p.expression()
	p.inLazy--
	if err != nil {
		return nil, err
	}

	if block {
		if p.peek().is(";") {
			p.advance()
		}
		if _, err := p.expect(tokPunct, "}"); err != nil {
			return nil, err
		}
	}
	return n, p.closeCall()
}

// shape parses the object literal of z.object({...}).
func (p *parser) shape() (*jschema.Schema, error) {
	s := jschema.Object()
	if _, err := p.expect(tokPunct, "{"); err != nil {
		return nil, err
	}
	for !p.peek().is("}") {
		key := p.peek()
		switch key.kind {
		case tokIdent, tokString, tokNumber:
			p.advance()
		default:
			return nil, p.errorf(key, "Expected a property name, found %s %q", key.kind, key.text)
		}
		if _, err := p.expect(tokPunct, ":"); err != nil {
			return nil, err
		}
		n, err := p.expression()
		if err != nil {
			return nil, err
		}
		s.Properties.Set(key.text, n.schema)
		if !n.optional {
			s.Required = append(s.Required, key.text)
		}
		if !p.peek().is(",") {
			break
		}
		p.advance()
	}
	if _, err := p.expect(tokPunct, "}"); err != nil {
		return nil, err
	}
	return s, nil
}

// expressionList parses an array literal of expressions.
func (p *parser) expressionList() ([]*jschema.Schema, error) {
	if _, err := p.expect(tokPunct, "["); err != nil {
		return nil, err
	}
	var out []*jschema.Schema
	for !p.peek().is("]") {
		n, err := p.expression()
		if err != nil {
			return nil, err
		}
		out = append(out, n.schema)
		if !p.peek().is(",") {
			break
		}
		p.advance()
	}
	_, err := p.expect(tokPunct, "]")
	return out, err
}

// stringList parses an array literal of strings, optionally "as const".
func (p *parser) stringList() ([]string, error) {
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	items, ok := v.([]any)
	if !ok {
		return nil, p.errorf(p.peek(), "z.enum expects an array of strings")
	}
	values := make([]string, 0, len(items))
	for _, item := range items {
		str, ok := item.(string)
		if !ok {
			return nil, p.errorf(p.peek(), "z.enum expects an array of strings")
		}
		values = append(values, str)
	}
	if p.peek().is("as") {
		p.advance()
		p.advance()
	}
	return values, nil
}

// value parses a literal: string, number, boolean, null, array or object.
func (p *parser) value() (any, error) {
	tok := p.advance()
	switch {
	case tok.kind == tokString:
		return tok.text, nil
	case tok.kind == tokNumber:
		return json.Number(tok.text), nil
	case tok.is("-"):
		num, err := p.expect(tokNumber, "")
		if err != nil {
			return nil, err
		}
		return json.Number("-" + num.text), nil
	case tok.is("true"):
		return true, nil
	case tok.is("false"):
		return false, nil
	case tok.is("null") || tok.is("undefined"):
		return nil, nil
	case tok.is("["):
		items := []any{}
		for !p.peek().is("]") {
			v, err := p.value()
			if err != nil {
				return nil, err
			}
			items = append(items, v)
			if !p.peek().is(",") {
				break
			}
			p.advance()
		}
		_, err := p.expect(tokPunct, "]")
		return items, err
	case tok.is("{"):
		obj := make(map[string]any)
		for !p.peek().is("}") {
			key := p.advance()
			if key.kind != tokIdent && key.kind != tokString {
				return nil, p.errorf(key, "Expected a property name, found %s %q", key.kind, key.text)
			}
			if _, err := p.expect(tokPunct, ":"); err != nil {
				return nil, err
			}
			v, err := p.value()
			if err != nil {
				return nil, err
			}
			obj[key.text] = v
			if !p.peek().is(",") {
				break
			}
			p.advance()
		}
		_, err := p.expect(tokPunct, "}")
		return obj, err
	}
	return nil, p.errorf(tok, "Expected a literal value, found %s %q", tok.kind, tok.text)
}

// method applies a chained call to n.
func (p *parser) method(n *node, name token) (*node, error) {
	if _, err := p.expect(tokPunct, "("); err != nil {
		return nil, err
	}
	s := n.schema
	switch name.text {
	case "optional":
		n.optional = true
	case "nullable":
		n.schema = jschema.OrNull(s)
	case "nullish":
		n.schema = jschema.OrNull(s)
		n.optional = true
	case "array":
		n = &node{schema: jschema.ArrayOf(s)}
	case "int":
		s.Types = replaceKind(s.Types, jschema.KindNumber, jschema.KindInteger)
	case "email", "uuid", "url", "datetime", "date", "time":
		s.Format = stringFormats[name.text]
	case "min", "max", "length", "gte", "lte", "gt", "lt":
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		num, ok := v.(json.Number)
		if !ok {
			return nil, p.errorf(name, "%s expects a number", name.text)
		}
		f, err := num.Float64()
		if err != nil {
			return nil, p.errorf(name, "Invalid number %q", num)
		}
		bound(s, name.text, f)
	case "nonempty":
		bound(s, "min", 1)
	case "positive":
		bound(s, "gt", 0)
	case "nonnegative":
		bound(s, "min", 0)
	case "regex":
		re, err := p.expect(tokRegex, "")
		if err != nil {
			return nil, err
		}
		s.Pattern = re.text
	case "describe":
		str, err := p.expect(tokString, "")
		if err != nil {
			return nil, err
		}
		s.Description = str.text
	case "default":
		if p.literalAhead() {
			v, err := p.value()
			if err != nil {
				return nil, err
			}
			s.Default = jschema.Raw(v)
		}
		n.optional = true
	case "extend", "merge":
		if def, ok := p.values[s.RefName()]; ok && s.Ref != "" {
			s = def.Clone()
			s.Properties = def.Properties.Clone()
			n.schema = s
		}
		if err := p.extend(s); err != nil {
			return nil, err
		}
	case "strict":
		s.AdditionalProperties = jschema.False()
	case "passthrough", "loose":
		s.AdditionalProperties = jschema.True()
	case "or":
		other, err := p.expression()
		if err != nil {
			return nil, err
		}
		n = &node{schema: union([]*jschema.Schema{s, other.schema}), optional: n.optional}
	case "and":
		other, err := p.expression()
		if err != nil {
			return nil, err
		}
		n = &node{schema: &jschema.Schema{AllOf: []*jschema.Schema{s, other.schema}}, optional: n.optional}
	}

	// Arguments of refinements and transforms are not interpreted.
	p.skipUntil(")")
	return n, p.closeCall()
}

// extend merges the properties of an object literal or another object
// expression into s.
func (p *parser) extend(s *jschema.Schema) error {
	var other *jschema.Schema
	if p.peek().is("{") {
		obj, err := p.shape()
		if err != nil {
			return err
		}
		other = obj
	} else {
		n, err := p.expression()
		if err != nil {
			return err
		}
		other = n.schema
	}
	if s.Properties == nil {
		return nil
	}
	for key, prop := range other.Properties.All() {
		s.Properties.Set(key, prop)
		if other.IsRequired(key) && !s.IsRequired(key) {
			s.Required = append(s.Required, key)
		}
	}
	return nil
}

// literalAhead reports whether the next token starts a literal value.
func (p *parser) literalAhead() bool {
	tok := p.peek()
	switch tok.kind {
	case tokString, tokNumber:
		return true
	}
	for _, text := range []string{"-", "true", "false", "null", "undefined", "[", "{"} {
		if tok.is(text) {
			return true
		}
	}
	return false
}

func (p *parser) closeCall() error {
	_, err := p.expect(tokPunct, ")")
	return err
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

// expect consumes a token of the given kind, and text when text is not empty.
func (p *parser) expect(kind tokenKind, text string) (token, error) {
	tok := p.peek()
	if tok.kind != kind || (text != "" && tok.text != text) {
		want := kind.String()
		if text != "" {
			want = strconv.Quote(text)
		}
		found := tok.kind.String()
		if tok.kind != tokEOF {
			found += " " + strconv.Quote(tok.text)
		}
		return tok, p.errorf(tok, "Expected %s, found %s", want, found)
	}
	return p.advance(), nil
}

func (p *parser) errorf(tok token, format string, args ...any) error {
	return translate.Failf(translate.ErrExternalBridge, "Invalid Zod expression: %s at offset %d", fmt.Sprintf(format, args...), tok.offset)
}

// union combines member schemas. Null members make the rest nullable and
// string literal members collapse into one enumeration.
func union(members []*jschema.Schema) *jschema.Schema {
	var rest []*jschema.Schema
	nullable := false
	for _, m := range members {
		if len(m.Types) == 1 && m.Types[0] == jschema.KindNull && len(m.Enum) == 0 {
			nullable = true
			continue
		}
		rest = append(rest, m)
	}

	var s *jschema.Schema
	switch {
	case len(rest) == 0:
		return jschema.Of(jschema.KindNull)
	case len(rest) == 1:
		s = rest[0]
	case allStringLiterals(rest):
		var values []string
		for _, m := range rest {
			values = append(values, m.EnumStrings()...)
		}
		s = jschema.StringEnum(values...)
	default:
		s = &jschema.Schema{AnyOf: rest}
	}
	if nullable {
		return jschema.OrNull(s)
	}
	return s
}

func allStringLiterals(members []*jschema.Schema) bool {
	for _, m := range members {
		if !m.IsStringEnum() {
			return false
		}
	}
	return true
}

func literalSchema(v any) *jschema.Schema {
	switch x := v.(type) {
	case string:
		return jschema.StringEnum(x)
	case bool:
		return &jschema.Schema{Types: []string{jschema.KindBoolean}, Enum: []any{x}}
	case json.Number:
		kind := jschema.KindNumber
		if _, err := x.Int64(); err == nil {
			kind = jschema.KindInteger
		}
		return &jschema.Schema{Types: []string{kind}, Enum: []any{x}}
	case nil:
		return jschema.Of(jschema.KindNull)
	}
	return jschema.Any()
}

// bound records a size or value constraint according to the schema kind.
func bound(s *jschema.Schema, method string, v float64) {
	n := int(v)
	switch s.PrimaryKind() {
	case jschema.KindString:
		switch method {
		case "min", "gte":
			s.MinLength = &n
		case "max", "lte":
			s.MaxLength = &n
		case "length":
			s.MinLength, s.MaxLength = &n, &n
		}
	case jschema.KindArray:
		switch method {
		case "min", "gte":
			s.MinItems = &n
		case "max", "lte":
			s.MaxItems = &n
		case "length":
			s.MinItems, s.MaxItems = &n, &n
		}
	case jschema.KindNumber, jschema.KindInteger:
		switch method {
		case "min", "gte", "gt":
			s.Minimum = &v
		case "max", "lte", "lt":
			s.Maximum = &v
		}
	}
}

func replaceKind(types []string, from, to string) []string {
	out := make([]string, len(types))
	for i, t := range types {
		if t == from {
			t = to
		}
		out[i] = t
	}
	return out
}

func formatted(format string) *jschema.Schema {
	s := jschema.Of(jschema.KindString)
	s.Format = format
	return s
}
