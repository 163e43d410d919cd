package parser

import (
	"github.com/krizos/scss-go/pkg/ast"
	"github.com/krizos/scss-go/pkg/scanner"
)

var rePropertyStart = scanner.Pattern(`[:.#]`)

// parseChunk recognizes one top-level step: a directive, a statement,
// a block open, or a block close. It returns false only when nothing
// matches at the cursor, which is the end of the document when the
// buffer is exhausted and a parse error otherwise.
func (p *Parser) parseChunk() bool {
	s := p.save()

	if p.cur.Next() == '@' && p.directive(s) {
		return true
	}

	// Property shortcut: catches the common `prop: value` before the
	// more expensive selector parse. The literal colon-space is what
	// separates a property from a pseudo-class selector like a:hover.
	var shortName string
	if p.keywordRaw(&shortName) && p.cur.Literal(": ") {
		var value ast.Value
		if p.valueList(&value) && p.end() {
			name := &ast.String{Parts: []ast.Value{ast.Text(shortName)}}
			p.appendStatement(&ast.AssignStatement{SourceTag: p.tag(s.pos), Name: name, Value: value})
			return true
		}
	}
	p.restore(s)

	// Variable assignment.
	var target ast.Value
	if p.variable(&target) && p.cur.Literal(":") {
		var value ast.Value
		if p.valueList(&value) && p.end() {
			flag := stripAssignmentFlag(&value)
			p.appendStatement(&ast.AssignStatement{SourceTag: p.tag(s.pos), Name: target, Value: value, Flag: flag})
			return true
		}
	}
	p.restore(s)

	// Closing half of an HTML comment wrapper.
	if p.cur.Literal("-->") {
		return true
	}

	// Selector list opening a rule block.
	var sels []ast.Selector
	if p.selectors(&sels) && p.cur.Literal("{") {
		p.pushBlock(sels, s.pos)
		return true
	}
	p.restore(s)

	// Property assignment, nested properties, or both.
	var propName *ast.String
	if p.propertyName(&propName) && p.cur.Literal(":") {
		found := false
		var assign *ast.AssignStatement
		var value ast.Value
		if p.valueList(&value) {
			assign = &ast.AssignStatement{SourceTag: p.tag(s.pos), Name: propName, Value: value}
			found = true
		}
		opened := p.cur.Literal("{")
		if opened {
			found = true
		} else if found {
			found = p.end()
		}
		if found {
			if assign != nil {
				p.appendStatement(assign)
			}
			if opened {
				b := p.pushSpecialBlock(ast.BlockNestedProperty, s.pos)
				b.Prefix = propName
			}
			return true
		}
	}
	p.restore(s)

	// Block close.
	if p.cur.Literal("}") {
		b := p.popBlock()
		switch {
		case b.Kind == ast.BlockInclude && b.Child != nil:
			inc := b.Child
			b.Child = nil
			inc.Content = b
			p.appendStatement(inc)
		case b.DontAppend:
			// already linked into the owning if block's cases
		default:
			p.appendStatement(b)
		}
		return true
	}

	if p.cur.Literal(";") {
		return true
	}
	if p.cur.Literal("<!--") {
		return true
	}

	return false
}

// directive dispatches the `@` productions. The first directive whose
// full pattern matches is committed; anything unrecognized falls
// through to the generic directive form.
func (p *Parser) directive(s snapshot) bool {
	start := s.pos

	if p.cur.Literal("@at-root") {
		var sels []ast.Selector
		var with ast.Value
		p.selectors(&sels)
		p.mapLiteral(&with)
		if p.cur.Literal("{") {
			b := p.pushSpecialBlock(ast.BlockAtRoot, start)
			b.Selectors = sels
			b.With = with
			return true
		}
	}
	p.restore(s)

	if p.cur.Literal("@media") {
		var query ast.Value
		if p.mediaQueryList(&query) && p.cur.Literal("{") {
			b := p.pushSpecialBlock(ast.BlockMedia, start)
			b.Value = query
			return true
		}
	}
	p.restore(s)

	if p.cur.Literal("@mixin") {
		var name string
		if p.keyword(&name) {
			var args []ast.ArgDef
			p.argumentDef(&args)
			if p.cur.Literal("{") {
				b := p.pushSpecialBlock(ast.BlockMixin, start)
				b.Name = name
				b.Args = args
				return true
			}
		}
	}
	p.restore(s)

	if p.cur.Literal("@include") {
		var name string
		if p.keyword(&name) {
			var args []ast.CallArg
			ss := p.save()
			if p.cur.Literal("(") {
				p.argValues(&args)
				if !p.cur.Literal(")") {
					p.restore(ss)
					args = nil
				}
			}
			child := &ast.IncludeStatement{SourceTag: p.tag(start), Name: name, Args: args}
			if p.end() {
				p.appendStatement(child)
				return true
			}
			if p.cur.Literal("{") {
				b := p.pushSpecialBlock(ast.BlockInclude, start)
				b.Child = child
				return true
			}
		}
	}
	p.restore(s)

	if p.cur.Literal("@scssphp-import-once") {
		var path ast.Value
		if p.valueList(&path) && p.end() {
			p.appendStatement(&ast.ImportOnceStatement{SourceTag: p.tag(start), Path: path})
			return true
		}
	}
	p.restore(s)

	if p.cur.Literal("@import") {
		var path ast.Value
		if p.valueList(&path) && p.end() {
			p.appendStatement(&ast.ImportStatement{SourceTag: p.tag(start), Path: path})
			return true
		}
	}
	p.restore(s)

	// Bare url(...) import, for paths the value parser chokes on.
	if p.cur.Literal("@import") {
		var path ast.Value
		if p.url(&path) && p.end() {
			p.appendStatement(&ast.ImportStatement{SourceTag: p.tag(start), Path: path})
			return true
		}
	}
	p.restore(s)

	if p.cur.Literal("@extend") {
		var sels []ast.Selector
		if p.selectors(&sels) && p.end() {
			opt := stripOptionalFlag(sels)
			p.appendStatement(&ast.ExtendStatement{SourceTag: p.tag(start), Selectors: sels, Optional: opt})
			return true
		}
	}
	p.restore(s)

	if p.cur.Literal("@function") {
		var name string
		if p.keyword(&name) {
			var args []ast.ArgDef
			p.argumentDef(&args)
			if p.cur.Literal("{") {
				b := p.pushSpecialBlock(ast.BlockFunction, start)
				b.Name = name
				b.Args = args
				return true
			}
		}
	}
	p.restore(s)

	if p.cur.Literal("@break") && p.end() {
		p.appendStatement(&ast.BreakStatement{SourceTag: p.tag(start)})
		return true
	}
	p.restore(s)

	if p.cur.Literal("@continue") && p.end() {
		p.appendStatement(&ast.ContinueStatement{SourceTag: p.tag(start)})
		return true
	}
	p.restore(s)

	if p.cur.Literal("@return") {
		var value ast.Value
		if p.valueList(&value) && p.end() {
			p.appendStatement(&ast.ReturnStatement{SourceTag: p.tag(start), Value: value})
			return true
		}
	}
	p.restore(s)

	if p.cur.Literal("@each") {
		var vars ast.Value
		if p.genericList(&vars, p.variable, ",", false) && p.cur.Literal("in") {
			var list ast.Value
			if p.valueList(&list) && p.cur.Literal("{") {
				b := p.pushSpecialBlock(ast.BlockEach, start)
				for _, item := range vars.(*ast.List).Items {
					b.Vars = append(b.Vars, item.(*ast.Variable).Name)
				}
				b.List = list
				return true
			}
		}
	}
	p.restore(s)

	if p.cur.Literal("@while") {
		var cond ast.Value
		if p.expression(&cond) && p.cur.Literal("{") {
			b := p.pushSpecialBlock(ast.BlockWhile, start)
			b.Cond = cond
			return true
		}
	}
	p.restore(s)

	if p.cur.Literal("@for") {
		var loopVar ast.Value
		if p.variable(&loopVar) && p.cur.Literal("from") {
			var from ast.Value
			if p.expression(&from) {
				until := false
				ok := p.cur.Literal("through")
				if !ok && p.cur.Literal("to") {
					ok = true
					until = true
				}
				var to ast.Value
				if ok && p.expression(&to) && p.cur.Literal("{") {
					b := p.pushSpecialBlock(ast.BlockFor, start)
					b.ForVar = loopVar.(*ast.Variable).Name
					b.Start = from
					b.End = to
					b.Until = until
					return true
				}
			}
		}
	}
	p.restore(s)

	if p.cur.Literal("@if") {
		var cond ast.Value
		if p.valueList(&cond) && p.cur.Literal("{") {
			b := p.pushSpecialBlock(ast.BlockIf, start)
			b.Cond = cond
			return true
		}
	}
	p.restore(s)

	if p.cur.Literal("@debug") {
		var value ast.Value
		if p.valueList(&value) && p.end() {
			p.appendStatement(&ast.DebugStatement{SourceTag: p.tag(start), Value: value})
			return true
		}
	}
	p.restore(s)

	if p.cur.Literal("@warn") {
		var value ast.Value
		if p.valueList(&value) && p.end() {
			p.appendStatement(&ast.WarnStatement{SourceTag: p.tag(start), Value: value})
			return true
		}
	}
	p.restore(s)

	if p.cur.Literal("@error") {
		var value ast.Value
		if p.valueList(&value) && p.end() {
			p.appendStatement(&ast.ErrorStatement{SourceTag: p.tag(start), Value: value})
			return true
		}
	}
	p.restore(s)

	if p.cur.Literal("@content") && p.end() {
		p.appendStatement(&ast.ContentStatement{SourceTag: p.tag(start)})
		return true
	}
	p.restore(s)

	if p.cur.Literal("@else") {
		var b *ast.Block
		if p.cur.Literal("{") {
			b = p.pushSpecialBlock(ast.BlockElse, start)
		} else if p.cur.Literal("if") {
			var cond ast.Value
			if p.valueList(&cond) && p.cur.Literal("{") {
				b = p.pushSpecialBlock(ast.BlockElseIf, start)
				b.Cond = cond
			}
		}
		if b != nil {
			b.DontAppend = true
			p.linkElse(b, start)
			return true
		}
	}
	p.restore(s)

	if p.cur.Literal("@charset") {
		var value ast.Value
		if p.valueList(&value) && p.end() {
			// only the first @charset survives
			if p.charset == nil {
				p.charset = &ast.CharsetStatement{SourceTag: p.tag(start), Value: value}
			}
			return true
		}
	}
	p.restore(s)

	// Generic directive: any other @name, optionally followed by a
	// value, opening a block.
	if p.cur.LiteralRaw("@") {
		var name string
		if p.keyword(&name) {
			var value ast.Value
			if !p.variable(&value) {
				var str *ast.String
				if p.openString("{", &str, "") {
					value = str
				}
			}
			if p.cur.Literal("{") {
				b := p.pushSpecialBlock(ast.BlockDirective, start)
				b.Name = name
				b.Value = value
				return true
			}
		}
	}
	p.restore(s)

	return false
}

// linkElse attaches an @else / @else if block to the @if that must sit
// at the tail of the enclosing block.
func (p *Parser) linkElse(b *ast.Block, pos int) {
	parent := b.Parent
	if n := len(parent.Children); n > 0 {
		if ifBlock, ok := parent.Children[n-1].(*ast.Block); ok && ifBlock.Kind == ast.BlockIf {
			ifBlock.Cases = append(ifBlock.Cases, b)
			return
		}
	}
	p.failAt("unexpected @else", pos)
}

// propertyName parses a property made of keywords and interpolations,
// plus the leading [:.#] browser-hack characters.
func (p *Parser) propertyName(out **ast.String) bool {
	oldWS := p.cur.EatWS
	p.cur.EatWS = false

	var parts []ast.Value
	for {
		var inter ast.Value
		if p.interpolation(&inter, true) {
			parts = append(parts, inter)
			continue
		}
		var word string
		if p.keyword(&word) {
			parts = append(parts, ast.Text(word))
			continue
		}
		if len(parts) == 0 {
			if m, ok := p.cur.MatchRaw(rePropertyStart); ok {
				parts = append(parts, ast.Text(m[0]))
				continue
			}
		}
		break
	}

	p.cur.EatWS = oldWS
	if len(parts) == 0 {
		return false
	}

	p.cur.Whitespace()
	*out = &ast.String{Parts: parts}
	return true
}

// mediaQueryList parses the comma-separated queries of an @media rule.
func (p *Parser) mediaQueryList(out *ast.Value) bool {
	return p.genericList(out, p.mediaQuery, ",", false)
}

func (p *Parser) mediaQuery(out *ast.Value) bool {
	var parts []ast.Value

	ss := p.save()
	prefix := ""
	if p.cur.Literal("only") {
		prefix = "only"
	} else if p.cur.Literal("not") {
		prefix = "not"
	}
	var typeParts []ast.Value
	if p.mixedKeyword(&typeParts) {
		p.cur.Whitespace()
		mt := &ast.MediaType{}
		if prefix != "" {
			mt.Parts = append(mt.Parts, ast.Text(prefix))
		}
		mt.Parts = append(mt.Parts, typeParts...)
		parts = append(parts, mt)
	} else {
		p.restore(ss)
	}

	if len(parts) == 0 || p.cur.Literal("and") {
		var exprs ast.Value
		if p.genericList(&exprs, p.mediaExpression, "and", false) {
			parts = append(parts, exprs.(*ast.List).Items...)
		}
	}

	*out = &ast.List{Items: parts}
	return true
}

func (p *Parser) mediaExpression(out *ast.Value) bool {
	s := p.save()
	if p.cur.Literal("(") {
		var feature ast.Value
		if p.expression(&feature) {
			var value ast.Value
			ss := p.save()
			if !(p.cur.Literal(":") && p.expression(&value)) {
				p.restore(ss)
				value = nil
			}
			if p.cur.Literal(")") {
				*out = &ast.MediaExpression{Feature: feature, Value: value}
				return true
			}
		}
	}
	p.restore(s)
	return false
}

// argumentDef parses a parenthesized mixin or function parameter list.
// A `...` splat anywhere but the final parameter is fatal.
func (p *Parser) argumentDef(out *[]ast.ArgDef) bool {
	s := p.save()
	if !p.cur.Literal("(") {
		return false
	}

	var args []ast.ArgDef
	for {
		var v ast.Value
		if !p.variable(&v) {
			break
		}
		arg := ast.ArgDef{Name: v.(*ast.Variable).Name}

		ss := p.save()
		if p.cur.Literal(":") {
			var def ast.Value
			if p.genericList(&def, p.expression, " ", true) {
				arg.Default = def
			} else {
				p.restore(ss)
			}
		}

		ss = p.save()
		if p.cur.Literal("...") {
			sss := p.save()
			if !p.cur.Literal(")") {
				p.failAt("... has to be after the final argument", ss.pos)
			}
			p.restore(sss)
			arg.Splat = true
		} else {
			p.restore(ss)
		}

		args = append(args, arg)
		if !p.cur.Literal(",") {
			break
		}
	}

	if !p.cur.Literal(")") {
		p.restore(s)
		return false
	}
	*out = args
	return true
}

// stripOptionalFlag removes a trailing !optional from an @extend
// selector list, reporting whether it was present.
func stripOptionalFlag(sels []ast.Selector) bool {
	if len(sels) == 0 {
		return false
	}
	sel := sels[len(sels)-1]
	n := len(sel)
	if n == 0 {
		return false
	}
	if t, ok := sel[n-1].(ast.Text); !ok || string(t) != "!optional" {
		return false
	}
	sel = sel[:n-1]
	if n := len(sel); n > 0 {
		if t, ok := sel[n-1].(ast.Text); ok && string(t) == " " {
			sel = sel[:n-1]
		}
	}
	sels[len(sels)-1] = sel
	return true
}
