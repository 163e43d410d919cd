package ast

// Package ast defines the tree produced by the SCSS parser: blocks,
// statements, and typed value expressions. The tree is not evaluated
// here; it is consumed by downstream compilation stages.

// Node is implemented by every AST node.
type Node interface {
	node()
}

// Statement is a single parsed operation inside a block.
type Statement interface {
	Node
	// Tag returns the source tag recorded when the statement's
	// production began.
	Tag() SourceTag
	stmtNode()
}

// Value is a typed value expression.
type Value interface {
	Node
	String() string
	valueNode()
}

// SourceTag identifies where a statement began: SourceIndex is the
// parser's identifier for the source file, SourcePos the byte offset.
type SourceTag struct {
	SourceIndex int
	SourcePos   int
}

// Tag returns the tag itself so that embedding SourceTag satisfies
// the Statement interface's accessor.
func (t SourceTag) Tag() SourceTag { return t }

// BlockKind is the semantic role of a block. The kind determines
// which extra Block fields are meaningful.
type BlockKind int

const (
	BlockRule BlockKind = iota // plain rule block with selectors
	BlockAtRoot
	BlockMedia
	BlockMixin
	BlockInclude
	BlockFunction
	BlockEach
	BlockWhile
	BlockFor
	BlockIf
	BlockElse
	BlockElseIf
	BlockNestedProperty
	BlockDirective
)

// String returns the name of the block kind.
func (k BlockKind) String() string {
	switch k {
	case BlockRule:
		return "block"
	case BlockAtRoot:
		return "at-root"
	case BlockMedia:
		return "media"
	case BlockMixin:
		return "mixin"
	case BlockInclude:
		return "include"
	case BlockFunction:
		return "function"
	case BlockEach:
		return "each"
	case BlockWhile:
		return "while"
	case BlockFor:
		return "for"
	case BlockIf:
		return "if"
	case BlockElse:
		return "else"
	case BlockElseIf:
		return "elseif"
	case BlockNestedProperty:
		return "nestedprop"
	case BlockDirective:
		return "directive"
	default:
		return "unknown"
	}
}

// Block is a brace-delimited scope. A closed block is appended to its
// parent's children as a statement. The Parent pointer exists only
// while the block is open on the parse stack; it is cleared when the
// block is popped, so the finished tree is a pure tree.
type Block struct {
	SourceTag
	Kind   BlockKind
	Parent *Block `json:"-"`
	IsRoot bool

	// Selectors is set for plain rule blocks, and for @at-root blocks
	// carrying a selector.
	Selectors []Selector
	Children  []Statement

	// Comments buffers comment statements seen in this block that have
	// not been flushed into Children yet. It is parse-time state; the
	// parser drains it before the block reaches the final tree.
	Comments []Statement `json:"-"`

	// DontAppend marks @else/@else-if blocks, which are linked into the
	// owning if block's Cases rather than appended as siblings.
	DontAppend bool `json:"-"`

	Name string   // mixin, function, or directive name
	Args []ArgDef // mixin and function parameter lists

	// Child is the pending include statement of an `@include name { }`
	// block; it is patched with the block body on close.
	Child *IncludeStatement

	Vars []string // @each loop variables
	List Value    // @each subject list

	Cond  Value    // @while, @if, @else if condition
	Cases []*Block // @else / @else if blocks linked to an @if

	ForVar string // @for loop variable
	Start  Value  // @for range start
	End    Value  // @for range end
	Until  bool   // true for `to` (exclusive), false for `through`

	Prefix *String // nested property prefix

	Value Value // directive value or media query list
	With  Value // @at-root (with: ...) map
}

// AssignStatement assigns a value to a variable or property. Name is a
// Variable for `$x: ...` and a String for property assignments. Flag
// is "", "default", or "global".
type AssignStatement struct {
	SourceTag
	Name  Value
	Value Value
	Flag  string
}

// ImportStatement records an `@import` path expression; resolution and
// I/O happen downstream.
type ImportStatement struct {
	SourceTag
	Path Value
}

// ImportOnceStatement records an `@scssphp-import-once` path.
type ImportOnceStatement struct {
	SourceTag
	Path Value
}

// ExtendStatement records an `@extend` target selector list.
type ExtendStatement struct {
	SourceTag
	Selectors []Selector
	Optional  bool
}

// IncludeStatement invokes a mixin. Content is non-nil when the
// include carried a `{ ... }` content block.
type IncludeStatement struct {
	SourceTag
	Name    string
	Args    []CallArg
	Content *Block
}

// BreakStatement is `@break`.
type BreakStatement struct {
	SourceTag
}

// ContinueStatement is `@continue`.
type ContinueStatement struct {
	SourceTag
}

// ReturnStatement is `@return value`.
type ReturnStatement struct {
	SourceTag
	Value Value
}

// DebugStatement is `@debug value`.
type DebugStatement struct {
	SourceTag
	Value Value
}

// WarnStatement is `@warn value`.
type WarnStatement struct {
	SourceTag
	Value Value
}

// ErrorStatement is `@error value`.
type ErrorStatement struct {
	SourceTag
	Value Value
}

// ContentStatement is `@content` inside a mixin body.
type ContentStatement struct {
	SourceTag
}

// CharsetStatement is the first `@charset` of the document, hoisted to
// the root block's first child.
type CharsetStatement struct {
	SourceTag
	Value Value
}

// Comment is a preserved block comment, including its delimiters.
type Comment struct {
	SourceTag
	Text string
}

func (*Block) node()               {}
func (*AssignStatement) node()     {}
func (*ImportStatement) node()     {}
func (*ImportOnceStatement) node() {}
func (*ExtendStatement) node()     {}
func (*IncludeStatement) node()    {}
func (*BreakStatement) node()      {}
func (*ContinueStatement) node()   {}
func (*ReturnStatement) node()     {}
func (*DebugStatement) node()      {}
func (*WarnStatement) node()       {}
func (*ErrorStatement) node()      {}
func (*ContentStatement) node()    {}
func (*CharsetStatement) node()    {}
func (*Comment) node()             {}

func (*Block) stmtNode()               {}
func (*AssignStatement) stmtNode()     {}
func (*ImportStatement) stmtNode()     {}
func (*ImportOnceStatement) stmtNode() {}
func (*ExtendStatement) stmtNode()     {}
func (*IncludeStatement) stmtNode()    {}
func (*BreakStatement) stmtNode()      {}
func (*ContinueStatement) stmtNode()   {}
func (*ReturnStatement) stmtNode()     {}
func (*DebugStatement) stmtNode()      {}
func (*WarnStatement) stmtNode()       {}
func (*ErrorStatement) stmtNode()      {}
func (*ContentStatement) stmtNode()    {}
func (*CharsetStatement) stmtNode()    {}
func (*Comment) stmtNode()             {}
