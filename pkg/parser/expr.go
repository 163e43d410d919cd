package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/krizos/scss-go/pkg/ast"
	"github.com/krizos/scss-go/pkg/scanner"
)

var (
	reOperator = scanner.Pattern(`(<=>|[!=]=|[<>]=?|=|[*/%+-]|and\b|or\b)`)
	reNot      = scanner.Pattern(`not`)
	reUnit     = scanner.Pattern(`([0-9]*(\.)?[0-9]+)([%a-zA-Z]+)?`)
	reColor    = scanner.Pattern(`(#([0-9a-f]{6})|#([0-9a-f]{3}))`)
	reKeyword  = scanner.Pattern(`(([\w_\-*!"']|\\.|[^\x00-\x7f])([\w\-*!"']|\\.|[^\x00-\x7f])*)`)
	reURL      = scanner.Pattern(`url\(\s*("[^"]*"|'[^']*'|[^)]*?)\s*\)`)

	reCalcFunc = regexp.MustCompile(`^(-[a-z]+-)?calc$`)
)

// Operator precedence for the expression climb. `-` additionally obeys
// the unary-sign rule in expHelper.
var opPrecedence = map[string]int{
	"=":   0,
	"or":  1,
	"and": 2,
	"==":  3, "!=": 3, "<=>": 3,
	"<=": 4, ">=": 4, "<": 4, ">": 4,
	"+": 5, "-": 5,
	"*": 6, "/": 6, "%": 6,
}

// valueList is a comma-separated list of space lists.
func (p *Parser) valueList(out *ast.Value) bool {
	return p.genericList(out, p.spaceList, ",", true)
}

// spaceList is a space-separated list of expressions.
func (p *Parser) spaceList(out *ast.Value) bool {
	return p.genericList(out, p.expression, " ", true)
}

// genericList repeats item with an optional delimiter. A space or
// empty delimiter relies on whitespace eating between items. With
// flatten set, a single-element list collapses to that element.
func (p *Parser) genericList(out *ast.Value, item func(*ast.Value) bool, delim string, flatten bool) bool {
	s := p.save()

	var items []ast.Value
	for {
		var v ast.Value
		if !item(&v) {
			break
		}
		items = append(items, v)
		if delim != "" && delim != " " {
			if !p.cur.Literal(delim) {
				break
			}
		}
	}

	if len(items) == 0 {
		p.restore(s)
		return false
	}
	if flatten && len(items) == 1 {
		*out = items[0]
	} else {
		*out = &ast.List{Sep: delim, Items: items}
	}
	return true
}

// expression parses one expression. A leading paren dispatches between
// the empty list, a parenthesized multi-value list, and a map literal;
// a parenthesized single value is left to parenValue so the in-parens
// flag lands on its expression nodes.
func (p *Parser) expression(out *ast.Value) bool {
	s := p.save()

	if p.cur.Literal("(") {
		if p.cur.Literal(")") {
			*out = &ast.List{}
			return true
		}

		var v ast.Value
		if p.valueList(&v) && p.cur.Literal(")") {
			if list, ok := v.(*ast.List); ok {
				*out = list
				return true
			}
		}
		p.restore(s)

		if p.mapLiteral(out) {
			return true
		}
		p.restore(s)
	}

	var lhs ast.Value
	if p.value(&lhs) {
		*out = p.expHelper(lhs, 0)
		return true
	}
	return false
}

// expHelper climbs operators of precedence >= minP, recursing right
// when the look-ahead operator after the right operand binds tighter.
func (p *Parser) expHelper(lhs ast.Value, minP int) ast.Value {
	ss := p.save()
	whiteBefore := p.cur.PrecededBySpace()

	for {
		m, ok := p.cur.MatchRaw(reOperator)
		if !ok {
			break
		}
		op := m[1]
		if strings.EqualFold(op, "and") || strings.EqualFold(op, "or") {
			op = strings.ToLower(op)
		}
		if opPrecedence[op] < minP {
			break
		}

		whiteAfter := p.cur.FollowedBySpace()
		varAfter := p.cur.Next() == '$'
		p.cur.Whitespace()

		// `1 -2` is a space list, not a subtraction: a minus with
		// space before but not after is a sign on the right operand,
		// unless that operand is a variable.
		if op == "-" && whiteBefore && !whiteAfter && !varAfter {
			break
		}

		var rhs ast.Value
		if !p.value(&rhs) {
			break
		}

		if next, ok := p.cur.Peek(reOperator); ok {
			nextOp := strings.ToLower(next[1])
			if opPrecedence[nextOp] > opPrecedence[op] {
				rhs = p.expHelper(rhs, opPrecedence[nextOp])
			}
		}

		lhs = &ast.InfixExpression{
			Op:          op,
			Left:        lhs,
			Right:       rhs,
			InParens:    p.inParens,
			SpaceBefore: whiteBefore,
			SpaceAfter:  whiteAfter,
		}
		ss = p.save()
		whiteBefore = p.cur.PrecededBySpace()
	}

	p.restore(ss)
	return lhs
}

// value parses a single operand.
func (p *Parser) value(out *ast.Value) bool {
	s := p.save()

	// not <value>
	if _, ok := p.cur.MatchRaw(reNot); ok && p.cur.Whitespace() {
		var inner ast.Value
		if p.value(&inner) {
			*out = &ast.PrefixExpression{Op: "not", Operand: inner, InParens: p.inParens}
			return true
		}
	}
	p.restore(s)

	// not(<value>)
	if _, ok := p.cur.MatchRaw(reNot); ok {
		var inner ast.Value
		if p.parenValue(&inner) {
			*out = &ast.PrefixExpression{Op: "not", Operand: inner, InParens: p.inParens}
			return true
		}
	}
	p.restore(s)

	if p.cur.Literal("+") {
		var inner ast.Value
		if p.value(&inner) {
			*out = &ast.PrefixExpression{Op: "+", Operand: inner, InParens: p.inParens}
			return true
		}
	}
	p.restore(s)

	// Negation binds only to an immediately following variable,
	// number, or parenthesized value, so `-5px` stays one token.
	if p.cur.LiteralRaw("-") {
		var inner ast.Value
		if p.variable(&inner) || p.unit(&inner) || p.parenValue(&inner) {
			*out = &ast.PrefixExpression{Op: "-", Operand: inner, InParens: p.inParens}
			return true
		}
	}
	p.restore(s)

	if p.parenValue(out) {
		return true
	}
	if p.interpolation(out, true) {
		return true
	}
	if p.variable(out) {
		return true
	}
	if p.color(out) {
		return true
	}
	if p.unit(out) {
		return true
	}
	if p.stringLiteral(out) {
		return true
	}
	if p.fnCall(out) {
		return true
	}
	if p.progid(out) {
		return true
	}

	var word string
	if p.keyword(&word) {
		if word == "null" {
			*out = &ast.Null{}
		} else {
			*out = &ast.Keyword{Name: word}
		}
		return true
	}
	return false
}

// parenValue parses a parenthesized value, marking expressions built
// inside it as in-parens.
func (p *Parser) parenValue(out *ast.Value) bool {
	s := p.save()

	p.inParens = true
	if p.cur.Literal("(") {
		var exp ast.Value
		if p.expression(&exp) && p.cur.Literal(")") {
			*out = exp
			p.inParens = s.inParens
			return true
		}
	}
	p.restore(s)
	return false
}

// mapLiteral parses `(key: value, ...)`.
func (p *Parser) mapLiteral(out *ast.Value) bool {
	s := p.save()
	if !p.cur.Literal("(") {
		return false
	}

	var keys, values []ast.Value
	for {
		var k, v ast.Value
		if !p.genericList(&k, p.expression, " ", true) ||
			!p.cur.Literal(":") ||
			!p.genericList(&v, p.expression, " ", true) {
			break
		}
		keys = append(keys, k)
		values = append(values, v)
		if !p.cur.Literal(",") {
			break
		}
	}

	if len(keys) == 0 || !p.cur.Literal(")") {
		p.restore(s)
		return false
	}
	*out = &ast.Map{Keys: keys, Values: values}
	return true
}

// fnCall parses `name(...)`. alpha keeps the Microsoft filter k=v
// syntax raw; calc, vendor calc, and expression keep their whole
// argument raw so CSS arithmetic is not re-interpreted; everything
// else gets a parsed argument list with a raw-text fallback.
func (p *Parser) fnCall(out *ast.Value) bool {
	s := p.save()

	var name string
	if !p.keywordRaw(&name) || !p.cur.Literal("(") {
		p.restore(s)
		return false
	}
	lower := strings.ToLower(name)

	if lower == "alpha" {
		var raw *ast.String
		if p.alphaArgs(&raw) {
			*out = &ast.RawFunction{Name: name, Raw: raw}
			return true
		}
	}

	rawOnly := lower == "expression" || reCalcFunc.MatchString(lower)
	if !rawOnly {
		ss := p.save()
		var args []ast.CallArg
		if p.argValues(&args) && p.cur.Literal(")") {
			*out = &ast.FunctionCall{Name: name, Args: args}
			return true
		}
		p.restore(ss)
	}

	var raw *ast.String
	p.openString(")", &raw, "(")
	if p.cur.Literal(")") {
		if rawOnly {
			if raw == nil {
				raw = &ast.String{}
			}
			*out = &ast.RawFunction{Name: name, Raw: raw}
		} else {
			var args []ast.CallArg
			if raw != nil && len(raw.Parts) > 0 {
				args = append(args, ast.CallArg{Value: raw})
			}
			*out = &ast.FunctionCall{Name: name, Args: args}
		}
		return true
	}

	p.restore(s)
	return false
}

// alphaArgs parses the `key=value, ...` body of alpha(), keeping the
// keys and separators as literal text. Consumes the closing paren.
func (p *Parser) alphaArgs(out **ast.String) bool {
	s := p.save()

	var parts []ast.Value
	for {
		var word string
		if !p.keyword(&word) {
			break
		}
		var exp ast.Value
		if !p.cur.Literal("=") || !p.expression(&exp) {
			p.restore(s)
			return false
		}
		parts = append(parts, ast.Text(word+"="), exp)
		if p.cur.Literal(",") {
			parts = append(parts, ast.Text(", "))
		}
	}

	if len(parts) == 0 || !p.cur.Literal(")") {
		p.restore(s)
		return false
	}
	*out = &ast.String{Parts: parts}
	return true
}

// argValues parses a comma-separated call argument list.
func (p *Parser) argValues(out *[]ast.CallArg) bool {
	s := p.save()

	var args []ast.CallArg
	for {
		var arg ast.CallArg
		if !p.argValue(&arg) {
			break
		}
		args = append(args, arg)
		if !p.cur.Literal(",") {
			break
		}
	}

	if len(args) == 0 {
		p.restore(s)
		return false
	}
	*out = args
	return true
}

// argValue parses `[$name:]? expression [...]`.
func (p *Parser) argValue(out *ast.CallArg) bool {
	s := p.save()

	name := ""
	var v ast.Value
	if p.variable(&v) && p.cur.Literal(":") {
		name = v.(*ast.Variable).Name
	} else {
		p.restore(s)
	}

	var value ast.Value
	if !p.genericList(&value, p.expression, " ", true) {
		p.restore(s)
		return false
	}

	*out = ast.CallArg{Name: name, Value: value}
	ss := p.save()
	if p.cur.Literal("...") {
		out.Splat = true
	} else {
		p.restore(ss)
	}
	return true
}

// progid parses a `progid:Name(args)` Microsoft filter expression,
// keeping name and arguments as raw text.
func (p *Parser) progid(out *ast.Value) bool {
	s := p.save()

	if p.cur.LiteralRaw("progid:") {
		var fn, args *ast.String
		if p.openString("(", &fn, "") && p.cur.Literal("(") {
			p.openString(")", &args, "(")
			if p.cur.Literal(")") {
				parts := []ast.Value{ast.Text("progid:")}
				parts = append(parts, fn.Parts...)
				parts = append(parts, ast.Text("("))
				if args != nil {
					parts = append(parts, args.Parts...)
				}
				parts = append(parts, ast.Text(")"))
				*out = &ast.String{Parts: parts}
				return true
			}
		}
	}
	p.restore(s)
	return false
}

// interpolation parses `#{value}`. With lookWhite set, the flags
// record whether the bytes adjacent to the delimiters were whitespace.
func (p *Parser) interpolation(out *ast.Value, lookWhite bool) bool {
	s := p.save()
	p.cur.EatWS = true

	if p.cur.Literal("#{") {
		var value ast.Value
		if p.valueList(&value) && p.cur.LiteralRaw("}") {
			leftWS, rightWS := false, false
			if lookWhite {
				leftWS = s.pos > 0 && isSpace(p.cur.ByteAt(s.pos-1))
				rightWS = isSpace(p.cur.ByteAt(p.cur.Pos()))
			}
			*out = &ast.Interpolation{Value: value, LeftWS: leftWS, RightWS: rightWS}

			p.cur.EatWS = s.eatWS
			if p.cur.EatWS {
				p.cur.Whitespace()
			}
			return true
		}
	}

	p.restore(s)
	return false
}

// stringLiteral parses a quoted string, handling escapes and embedded
// interpolations.
func (p *Parser) stringLiteral(out *ast.Value) bool {
	s := p.save()

	delim := ""
	if p.cur.LiteralRaw(`"`) {
		delim = `"`
	} else if p.cur.LiteralRaw(`'`) {
		delim = `'`
	} else {
		return false
	}

	p.cur.EatWS = false
	var parts []ast.Value
	closed := false
	for !closed {
		text, tok, ok := p.cur.ScanAhead("#{", `\`, delim)
		if !ok {
			break
		}
		if text != "" {
			parts = append(parts, ast.Text(text))
		}
		switch tok {
		case "#{":
			var inter ast.Value
			if p.interpolation(&inter, false) {
				parts = append(parts, inter)
			} else {
				p.cur.Advance(2)
				parts = append(parts, ast.Text("#{"))
			}
		case `\`:
			p.cur.Advance(1)
			parts = append(parts, ast.Text(`\`))
			if p.cur.LiteralRaw(delim) {
				parts = append(parts, ast.Text(delim))
			}
		default:
			closed = true
		}
	}

	p.cur.EatWS = s.eatWS
	if closed && p.cur.Literal(delim) {
		*out = &ast.String{Quote: delim, Parts: parts}
		return true
	}
	p.restore(s)
	return false
}

// openString reads an unbounded token stream up to end at nesting
// level zero, recognizing nested strings and interpolations along the
// way. The terminator is left unconsumed.
func (p *Parser) openString(end string, out **ast.String, nestingOpen string) bool {
	oldWS := p.cur.EatWS
	p.cur.EatWS = false

	var parts []ast.Value
	nesting := 0
	for {
		text, tok, ok := p.cur.ScanAhead(`'`, `"`, "#{", end)
		if !ok {
			break
		}
		if text != "" {
			parts = append(parts, ast.Text(text))
			if nestingOpen != "" {
				nesting += strings.Count(text, nestingOpen)
			}
		}

		if tok == end {
			if nesting == 0 {
				break
			}
			nesting--
			parts = append(parts, ast.Text(tok))
			p.cur.Advance(len(tok))
			continue
		}

		if tok == `'` || tok == `"` {
			var str ast.Value
			if p.stringLiteral(&str) {
				parts = append(parts, str)
				continue
			}
		}
		if tok == "#{" {
			var inter ast.Value
			if p.interpolation(&inter, true) {
				parts = append(parts, inter)
				continue
			}
		}

		parts = append(parts, ast.Text(tok))
		p.cur.Advance(len(tok))
	}

	p.cur.EatWS = oldWS

	// drop trailing whitespace from the final literal run
	if n := len(parts); n > 0 {
		if t, ok := parts[n-1].(ast.Text); ok {
			trimmed := strings.TrimRight(string(t), " \t\r\n")
			if trimmed == "" {
				parts = parts[:n-1]
			} else {
				parts[n-1] = ast.Text(trimmed)
			}
		}
	}
	if len(parts) == 0 {
		return false
	}
	*out = &ast.String{Parts: parts}
	return true
}

// url matches a bare `url(...)` token and keeps it as literal text.
func (p *Parser) url(out *ast.Value) bool {
	if m, ok := p.cur.Match(reURL); ok {
		*out = &ast.String{Parts: []ast.Value{ast.Text("url(" + m[1] + ")")}}
		return true
	}
	return false
}

func (p *Parser) variable(out *ast.Value) bool {
	s := p.save()
	if p.cur.LiteralRaw("$") {
		var name string
		if p.keyword(&name) {
			*out = &ast.Variable{Name: name}
			return true
		}
	}
	p.restore(s)
	return false
}

func (p *Parser) color(out *ast.Value) bool {
	m, ok := p.cur.Match(reColor)
	if !ok {
		return false
	}

	hex := m[1][1:]
	c := &ast.Color{}
	if len(hex) == 6 {
		c.R = hexByte(hex[0], hex[1])
		c.G = hexByte(hex[2], hex[3])
		c.B = hexByte(hex[4], hex[5])
	} else {
		c.R = hexByte(hex[0], hex[0])
		c.G = hexByte(hex[1], hex[1])
		c.B = hexByte(hex[2], hex[2])
	}
	*out = c
	return true
}

func hexByte(hi, lo byte) uint8 {
	return uint8(hexNibble(hi)<<4 | hexNibble(lo))
}

func hexNibble(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	}
	return 0
}

func (p *Parser) unit(out *ast.Value) bool {
	m, ok := p.cur.Match(reUnit)
	if !ok {
		return false
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return false
	}
	*out = &ast.Number{Value: f, Unit: m[3]}
	return true
}

func (p *Parser) keyword(out *string) bool {
	if m, ok := p.cur.Match(reKeyword); ok {
		*out = m[1]
		return true
	}
	return false
}

func (p *Parser) keywordRaw(out *string) bool {
	if m, ok := p.cur.MatchRaw(reKeyword); ok {
		*out = m[1]
		return true
	}
	return false
}

// stripAssignmentFlag walks the right-most chain of lists in value and
// removes a trailing !default or !global keyword, returning the flag
// name without the bang.
func stripAssignmentFlag(value *ast.Value) string {
	node := value
	for {
		list, ok := (*node).(*ast.List)
		if !ok || len(list.Items) == 0 {
			return ""
		}
		last := &list.Items[len(list.Items)-1]
		if kw, ok := (*last).(*ast.Keyword); ok {
			if kw.Name == "!default" || kw.Name == "!global" {
				list.Items = list.Items[:len(list.Items)-1]
				*node = flattenList(list)
				return kw.Name[1:]
			}
		}
		node = last
	}
}

// flattenList collapses a single-element list to its element.
func flattenList(v ast.Value) ast.Value {
	if list, ok := v.(*ast.List); ok && len(list.Items) == 1 {
		return list.Items[0]
	}
	return v
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
