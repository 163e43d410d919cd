package scanner

// Package scanner implements the cursor the SCSS parser scans with.
// There is no token stream: the grammar is recognized directly off the
// buffer with anchored regular-expression probes, and failed
// productions rewind the cursor to an integer snapshot.

import (
	"regexp"
)

// Cursor holds the source buffer and the scan position. EatWS is the
// default whitespace-eating behavior applied after successful matches;
// productions that are whitespace-sensitive (string bodies, selectors)
// turn it off and restore it.
type Cursor struct {
	buf string
	pos int

	// EatWS controls whether Match and Literal skip trailing
	// whitespace and comments.
	EatWS bool

	// OnComment receives every block comment consumed by Whitespace,
	// de-duplicated by start position. May be nil.
	OnComment func(pos int, text string)

	seen map[int]bool // comment start positions already emitted
}

// New returns a cursor over buf with whitespace eating enabled.
func New(buf string) *Cursor {
	return &Cursor{buf: buf, EatWS: true, seen: make(map[int]bool)}
}

// Buffer returns the underlying source buffer.
func (c *Cursor) Buffer() string { return c.buf }

// Len returns the buffer length.
func (c *Cursor) Len() int { return len(c.buf) }

// Pos returns the current position. Positions are snapshots: restore
// one with Seek to rewind a failed production.
func (c *Cursor) Pos() int { return c.pos }

// Seek moves the cursor to p.
func (c *Cursor) Seek(p int) { c.pos = p }

// AtEnd reports whether the whole buffer has been consumed.
func (c *Cursor) AtEnd() bool { return c.pos >= len(c.buf) }

// ByteAt returns the byte at offset i, or 0 when out of range.
func (c *Cursor) ByteAt(i int) byte {
	if i < 0 || i >= len(c.buf) {
		return 0
	}
	return c.buf[i]
}

// Next returns the byte at the cursor, or 0 at end of buffer.
func (c *Cursor) Next() byte { return c.ByteAt(c.pos) }

// Advance moves the cursor forward n bytes.
func (c *Cursor) Advance(n int) { c.pos += n }

// PrecededBySpace reports whether the byte before the cursor is
// whitespace.
func (c *Cursor) PrecededBySpace() bool { return isSpace(c.ByteAt(c.pos - 1)) }

// FollowedBySpace reports whether the byte at the cursor is
// whitespace.
func (c *Cursor) FollowedBySpace() bool { return isSpace(c.ByteAt(c.pos)) }

// Match probes re at the cursor. On success the cursor advances past
// the match, trailing whitespace is skipped when EatWS is set, and the
// submatches are returned.
func (c *Cursor) Match(re *regexp.Regexp) ([]string, bool) {
	return c.match(re, c.EatWS)
}

// MatchRaw is Match without the trailing whitespace skip.
func (c *Cursor) MatchRaw(re *regexp.Regexp) ([]string, bool) {
	return c.match(re, false)
}

func (c *Cursor) match(re *regexp.Regexp, eatWS bool) ([]string, bool) {
	m := re.FindStringSubmatch(c.buf[c.pos:])
	if m == nil {
		return nil, false
	}
	c.pos += len(m[0])
	if eatWS {
		c.Whitespace()
	}
	return m, true
}

// Peek probes re at the cursor without advancing.
func (c *Cursor) Peek(re *regexp.Regexp) ([]string, bool) {
	return c.PeekAt(re, c.pos)
}

// PeekAt probes re at an arbitrary position without advancing.
func (c *Cursor) PeekAt(re *regexp.Regexp, from int) ([]string, bool) {
	if from < 0 || from > len(c.buf) {
		return nil, false
	}
	m := re.FindStringSubmatch(c.buf[from:])
	if m == nil {
		return nil, false
	}
	return m, true
}

// Literal matches the exact text at the cursor, skipping trailing
// whitespace when EatWS is set.
func (c *Cursor) Literal(what string) bool {
	return c.literal(what, c.EatWS)
}

// LiteralRaw matches the exact text at the cursor without the
// whitespace skip.
func (c *Cursor) LiteralRaw(what string) bool {
	return c.literal(what, false)
}

func (c *Cursor) literal(what string, eatWS bool) bool {
	end := c.pos + len(what)
	if end > len(c.buf) || c.buf[c.pos:end] != what {
		return false
	}
	c.pos = end
	if eatWS {
		c.Whitespace()
	}
	return true
}

// Whitespace consumes whitespace runs, line comments, and block
// comments. Block comments are reported through OnComment exactly
// once per start position: backtracking re-scans the same bytes, and
// the de-duplication keeps a twice-scanned comment from being emitted
// twice. Reports whether anything was consumed.
func (c *Cursor) Whitespace() bool {
	got := false
	for {
		m := whitePattern.FindStringSubmatch(c.buf[c.pos:])
		if m == nil {
			break
		}
		if m[1] != "" && !c.seen[c.pos] {
			c.seen[c.pos] = true
			if c.OnComment != nil {
				c.OnComment(c.pos, m[1])
			}
		}
		c.pos += len(m[0])
		got = true
	}
	return got
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
