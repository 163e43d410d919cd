package parser

import (
	"github.com/krizos/scss-go/pkg/ast"
	"github.com/krizos/scss-go/pkg/scanner"
)

var (
	reSelectorStop = scanner.Pattern(`\s*[{,]`)
	reCombinator   = scanner.Pattern(`[>+~]+`)
	reReference    = scanner.Pattern(`/[^/]+/`)
	reEscape       = scanner.Pattern(`\\\S`)
	rePseudo       = scanner.Pattern(`::?`)
	reSpaceRun     = scanner.Pattern(`\s+`)
	reAttrOp       = scanner.Pattern(`[|~$*^=-]+`)
	rePlaceholder  = scanner.Pattern(`([\w\-_]+)`)
)

// selectors parses a comma-separated selector list.
func (p *Parser) selectors(out *[]ast.Selector) bool {
	s := p.save()

	var sels []ast.Selector
	for {
		var sel ast.Selector
		if !p.selector(&sel) {
			break
		}
		sels = append(sels, sel)
		if !p.cur.Literal(",") {
			break
		}
		for p.cur.Literal(",") {
			// tolerate duplicated commas
		}
	}

	if len(sels) == 0 {
		p.restore(s)
		return false
	}
	*out = sels
	return true
}

// selector parses compound parts interleaved with combinators. Each
// compound is followed by a descendant marker; the trailing one is
// dropped, so explicit combinators sit between markers.
func (p *Parser) selector(out *ast.Selector) bool {
	var sel ast.Selector
	for {
		if m, ok := p.cur.Match(reCombinator); ok {
			sel = append(sel, ast.Text(m[0]))
			continue
		}
		var parts []ast.Value
		if p.selectorSingle(&parts) {
			sel = append(sel, parts...)
			sel = append(sel, ast.Text(" "))
			p.cur.Whitespace()
			continue
		}
		if m, ok := p.cur.Match(reReference); ok {
			sel = append(sel, ast.Text(m[0]))
			continue
		}
		break
	}

	if n := len(sel); n > 0 {
		if t, ok := sel[n-1].(ast.Text); ok && t == " " {
			sel = sel[:n-1]
		}
	}
	if len(sel) == 0 {
		return false
	}
	*out = sel
	return true
}

// selectorSingle parses one compound selector: the parts of something
// like div[a=b]#id.cls:nth-child(2n+1)%placeholder. Selectors are
// whitespace-sensitive, so whitespace eating is off throughout.
func (p *Parser) selectorSingle(out *[]ast.Value) bool {
	oldWS := p.cur.EatWS
	p.cur.EatWS = false

	var parts []ast.Value
	if p.cur.LiteralRaw("*") {
		parts = append(parts, ast.Text("*"))
	}

	for {
		// a following block or alternative ends the compound
		if _, ok := p.cur.Peek(reSelectorStop); ok {
			break
		}

		s := p.save()

		if p.cur.LiteralRaw("&") {
			parts = append(parts, ast.Text("&"))
			continue
		}
		if p.cur.LiteralRaw(".") {
			parts = append(parts, ast.Text("."))
			continue
		}
		if p.cur.LiteralRaw("|") {
			parts = append(parts, ast.Text("|"))
			continue
		}
		if m, ok := p.cur.MatchRaw(reEscape); ok {
			parts = append(parts, ast.Text(m[0]))
			continue
		}

		// keyframes selectors like 100%
		var num ast.Value
		if p.unit(&num) {
			parts = append(parts, num)
			continue
		}

		var word string
		if p.keyword(&word) {
			parts = append(parts, ast.Text(word))
			continue
		}

		var inter ast.Value
		if p.interpolation(&inter, true) {
			parts = append(parts, inter)
			continue
		}

		if p.cur.LiteralRaw("%") {
			var ph ast.Value
			if p.placeholder(&ph) {
				parts = append(parts, ast.Text("%"), ph)
				continue
			}
			p.restore(s)
			break
		}

		if p.cur.LiteralRaw("#") {
			parts = append(parts, ast.Text("#"))
			continue
		}

		// pseudo class or element, with an optional raw argument list
		if m, ok := p.cur.MatchRaw(rePseudo); ok {
			var nameParts []ast.Value
			if p.mixedKeyword(&nameParts) {
				parts = append(parts, ast.Text(m[0]))
				parts = append(parts, nameParts...)

				ss := p.save()
				if p.cur.LiteralRaw("(") {
					var str *ast.String
					p.openString(")", &str, "(")
					if p.cur.LiteralRaw(")") {
						parts = append(parts, ast.Text("("))
						if str != nil {
							parts = append(parts, str)
						}
						parts = append(parts, ast.Text(")"))
					} else {
						p.restore(ss)
					}
				}
				continue
			}
			p.restore(s)
		}

		// attribute selector
		if p.cur.LiteralRaw("[") {
			attr := []ast.Value{ast.Text("[")}
			for {
				if p.cur.Next() == ']' {
					break
				}
				if _, ok := p.cur.MatchRaw(reSpaceRun); ok {
					attr = append(attr, ast.Text(" "))
					continue
				}
				var str ast.Value
				if p.stringLiteral(&str) {
					attr = append(attr, str)
					continue
				}
				var word string
				if p.keyword(&word) {
					attr = append(attr, ast.Text(word))
					continue
				}
				var inter ast.Value
				if p.interpolation(&inter, false) {
					attr = append(attr, inter)
					continue
				}
				// operator runs, which also cover attribute namespaces
				if m, ok := p.cur.MatchRaw(reAttrOp); ok {
					attr = append(attr, ast.Text(m[0]))
					continue
				}
				break
			}
			if p.cur.LiteralRaw("]") {
				attr = append(attr, ast.Text("]"))
				parts = append(parts, attr...)
				continue
			}
			p.restore(s)
		}

		break
	}

	p.cur.EatWS = oldWS
	if len(parts) == 0 {
		return false
	}
	*out = parts
	return true
}

// mixedKeyword parses a run of keywords and interpolations, as found
// in pseudo-class names and media types. The run is whitespace
// sensitive: it stops at the first space, so `screen and` yields only
// `screen`.
func (p *Parser) mixedKeyword(out *[]ast.Value) bool {
	oldWS := p.cur.EatWS
	p.cur.EatWS = false
	defer func() { p.cur.EatWS = oldWS }()

	var parts []ast.Value
	for {
		var word string
		if p.keyword(&word) {
			parts = append(parts, ast.Text(word))
			continue
		}
		var inter ast.Value
		if p.interpolation(&inter, true) {
			parts = append(parts, inter)
			continue
		}
		break
	}
	if len(parts) == 0 {
		return false
	}
	*out = parts
	return true
}

// placeholder parses the name of a %placeholder: a word or an
// interpolation.
func (p *Parser) placeholder(out *ast.Value) bool {
	if m, ok := p.cur.Match(rePlaceholder); ok {
		*out = ast.Text(m[1])
		return true
	}
	return p.interpolation(out, true)
}
