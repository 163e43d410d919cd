package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reWord = Pattern(`([a-z]+)`)

func TestMatchAdvances(t *testing.T) {
	c := New("hello world")

	m, ok := c.Match(reWord)
	require.True(t, ok)
	assert.Equal(t, "hello", m[1])
	// trailing whitespace is eaten by default
	assert.Equal(t, 6, c.Pos())

	m, ok = c.Match(reWord)
	require.True(t, ok)
	assert.Equal(t, "world", m[1])
	assert.True(t, c.AtEnd())
}

func TestMatchRawKeepsWhitespace(t *testing.T) {
	c := New("hello world")

	_, ok := c.MatchRaw(reWord)
	require.True(t, ok)
	assert.Equal(t, 5, c.Pos())
}

func TestMatchFailureDoesNotAdvance(t *testing.T) {
	c := New("123")

	_, ok := c.Match(reWord)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Pos())
}

func TestMatchRespectsEatWSFlag(t *testing.T) {
	c := New("hello   world")
	c.EatWS = false

	_, ok := c.Match(reWord)
	require.True(t, ok)
	assert.Equal(t, 5, c.Pos())
}

func TestPeekDoesNotAdvance(t *testing.T) {
	c := New("hello")

	m, ok := c.Peek(reWord)
	require.True(t, ok)
	assert.Equal(t, "hello", m[1])
	assert.Equal(t, 0, c.Pos())

	m, ok = c.PeekAt(reWord, 2)
	require.True(t, ok)
	assert.Equal(t, "llo", m[1])
	assert.Equal(t, 0, c.Pos())
}

func TestLiteral(t *testing.T) {
	c := New("foo: bar")

	assert.False(t, c.Literal("bar"))
	assert.True(t, c.Literal("foo"))
	assert.True(t, c.Literal(":"))
	// the whitespace after the colon was eaten
	assert.True(t, c.Literal("bar"))
	assert.True(t, c.AtEnd())
}

func TestLiteralIsCaseSensitive(t *testing.T) {
	c := New("FOO")
	assert.False(t, c.Literal("foo"))
	assert.Equal(t, 0, c.Pos())
}

func TestSeekRestores(t *testing.T) {
	c := New("one two three")

	c.Match(reWord)
	mark := c.Pos()
	c.Match(reWord)
	require.NotEqual(t, mark, c.Pos())

	c.Seek(mark)
	m, ok := c.Match(reWord)
	require.True(t, ok)
	assert.Equal(t, "two", m[1])
}

func TestWhitespaceConsumesCommentsAndSpace(t *testing.T) {
	c := New("  /* block */ // line\n  x")

	var captured []string
	c.OnComment = func(pos int, text string) {
		captured = append(captured, text)
	}

	assert.True(t, c.Whitespace())
	assert.Equal(t, byte('x'), c.Next())
	// only the block comment is reported
	require.Len(t, captured, 1)
	assert.Equal(t, "/* block */", captured[0])
}

func TestWhitespaceCommentDedup(t *testing.T) {
	c := New("/* c */ x")

	count := 0
	c.OnComment = func(pos int, text string) { count++ }

	c.Whitespace()
	c.Seek(0)
	c.Whitespace()

	assert.Equal(t, 1, count, "a rescanned comment must be reported once")
}

func TestUnterminatedBlockCommentNotConsumed(t *testing.T) {
	c := New("/* never closed")
	assert.False(t, c.Whitespace())
	assert.Equal(t, 0, c.Pos())
}

func TestByteHelpers(t *testing.T) {
	c := New("a b")

	assert.Equal(t, byte('a'), c.ByteAt(0))
	assert.Equal(t, byte(0), c.ByteAt(99))
	assert.Equal(t, byte(0), c.ByteAt(-1))

	c.Advance(1)
	assert.True(t, c.FollowedBySpace())
	assert.False(t, c.PrecededBySpace())
	c.Advance(1)
	assert.True(t, c.PrecededBySpace())
}
