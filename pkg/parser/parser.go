package parser

// Package parser implements the SCSS front end. Scanning is fused with
// recursive-descent recognition: productions probe the buffer with
// anchored regular expressions through a scanner.Cursor, and every
// failed alternative rewinds to a snapshot taken before the attempt.

import (
	"strings"

	"github.com/krizos/scss-go/pkg/ast"
	"github.com/krizos/scss-go/pkg/scanner"
)

// Parser parses one source buffer. A Parser is not safe for concurrent
// use; parse each file with its own instance tagged with its own
// source index.
type Parser struct {
	sourceName  string
	sourceIndex int

	cur      *scanner.Cursor
	env      *ast.Block
	inParens bool
	charset  *ast.CharsetStatement
}

// New creates a parser. sourceName is the display name used in error
// messages, defaulting to "(stdin)" when empty. sourceIndex is an
// opaque integer stamped on every statement's source tag so that
// downstream error reporting can map statements back to files.
func New(sourceName string, sourceIndex int) *Parser {
	if sourceName == "" {
		sourceName = "(stdin)"
	}
	return &Parser{sourceName: sourceName, sourceIndex: sourceIndex}
}

// Parse parses a whole stylesheet and returns the root block. The
// buffer must be fully consumed; anything the grammar cannot account
// for is a *ParseError.
func (p *Parser) Parse(buffer string) (root *ast.Block, err error) {
	defer p.recoverParseError(&err)

	p.init(buffer)
	p.pushBlock(nil, 0)
	p.cur.Whitespace()

	// Comments ahead of the first statement would otherwise sit in the
	// root's pending buffer and flush after that statement; a throwaway
	// push moves them into the root's children first.
	p.pushBlock(nil, p.cur.Pos())
	p.popBlock()

	for p.parseChunk() {
	}

	if !p.cur.AtEnd() {
		p.fail("parse error")
	}
	if p.env.Parent != nil {
		p.fail("unclosed block")
	}

	if p.charset != nil {
		p.env.Children = append([]ast.Statement{p.charset}, p.env.Children...)
	}
	if len(p.env.Comments) > 0 {
		p.env.Children = append(p.env.Children, p.env.Comments...)
		p.env.Comments = nil
	}
	p.env.IsRoot = true

	root = p.env
	p.env = nil
	p.cur = nil
	return root, nil
}

// ParseValue parses a standalone value list, as used for variable
// values handed in by the caller.
func (p *Parser) ParseValue(buffer string) (v ast.Value, err error) {
	defer p.recoverParseError(&err)

	p.init(buffer)
	p.cur.Whitespace()
	if !p.valueList(&v) {
		p.fail("parse error")
	}
	return v, nil
}

// ParseSelector parses a standalone selector list.
func (p *Parser) ParseSelector(buffer string) (sels []ast.Selector, err error) {
	defer p.recoverParseError(&err)

	p.init(buffer)
	p.cur.Whitespace()
	if !p.selectors(&sels) {
		p.fail("parse error")
	}
	return sels, nil
}

func (p *Parser) init(buffer string) {
	// Trailing control bytes confuse the end-of-buffer checks and
	// carry no syntax; strip them up front.
	buffer = strings.TrimRightFunc(buffer, func(r rune) bool { return r < 0x20 })

	p.cur = scanner.New(buffer)
	p.cur.OnComment = p.appendComment
	p.env = nil
	p.inParens = false
	p.charset = nil
}

// snapshot captures everything a failed trial must put back: the
// cursor position plus the whitespace-eating and parenthesis flags,
// which string bodies and paren values flip mid-trial.
type snapshot struct {
	pos      int
	eatWS    bool
	inParens bool
}

func (p *Parser) save() snapshot {
	return snapshot{pos: p.cur.Pos(), eatWS: p.cur.EatWS, inParens: p.inParens}
}

func (p *Parser) restore(s snapshot) {
	p.cur.Seek(s.pos)
	p.cur.EatWS = s.eatWS
	p.inParens = s.inParens
}

func (p *Parser) tag(pos int) ast.SourceTag {
	return ast.SourceTag{SourceIndex: p.sourceIndex, SourcePos: pos}
}

// pushBlock opens a new block at pos and makes it current. Pending
// comments on the parent move with the push: ahead of the parent's
// first child they become the parent's children, otherwise they seed
// the new block's children so a comment right before an opening brace
// lands inside the block it introduces.
func (p *Parser) pushBlock(selectors []ast.Selector, pos int) *ast.Block {
	b := &ast.Block{SourceTag: p.tag(pos), Parent: p.env, Selectors: selectors}

	switch {
	case p.env == nil:
	case len(p.env.Children) == 0:
		p.env.Children = p.env.Comments
		p.env.Comments = nil
	default:
		b.Children = p.env.Comments
		p.env.Comments = nil
	}

	p.env = b
	return b
}

// pushSpecialBlock opens a block and stamps its kind.
func (p *Parser) pushSpecialBlock(kind ast.BlockKind, pos int) *ast.Block {
	b := p.pushBlock(nil, pos)
	b.Kind = kind
	return b
}

// popBlock closes the current block and returns it. The parent pointer
// is cleared so the finished tree has no cycles; comments still
// pending on the popped block migrate to the parent's pending buffer.
func (p *Parser) popBlock() *ast.Block {
	b := p.env
	if b.Parent == nil {
		p.fail("unexpected }")
	}

	p.env = b.Parent
	b.Parent = nil

	if len(b.Comments) > 0 {
		p.env.Comments = append(p.env.Comments, b.Comments...)
		b.Comments = nil
	}
	return b
}

// appendStatement adds a statement to the current block, then flushes
// any comments seen since the previous statement in right after it.
func (p *Parser) appendStatement(stmt ast.Statement) {
	p.env.Children = append(p.env.Children, stmt)
	if len(p.env.Comments) > 0 {
		p.env.Children = append(p.env.Children, p.env.Comments...)
		p.env.Comments = nil
	}
}

func (p *Parser) appendComment(pos int, text string) {
	if p.env == nil {
		return
	}
	p.env.Comments = append(p.env.Comments, &ast.Comment{SourceTag: p.tag(pos), Text: text})
}

// end terminates a statement: a semicolon, the end of the buffer, or
// a closing brace left for the block close to consume.
func (p *Parser) end() bool {
	if p.cur.Literal(";") {
		return true
	}
	return p.cur.AtEnd() || p.cur.Next() == '}'
}
