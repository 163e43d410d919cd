package ast

// Visitor is an interface for traversing the AST using the visitor
// pattern. Each Visit method receives a node and returns a boolean
// indicating whether to continue traversing child nodes (true) or
// skip them (false).
type Visitor interface {
	// Statement visitors
	VisitBlock(node *Block) bool
	VisitAssignStatement(node *AssignStatement) bool
	VisitImportStatement(node *ImportStatement) bool
	VisitImportOnceStatement(node *ImportOnceStatement) bool
	VisitExtendStatement(node *ExtendStatement) bool
	VisitIncludeStatement(node *IncludeStatement) bool
	VisitBreakStatement(node *BreakStatement) bool
	VisitContinueStatement(node *ContinueStatement) bool
	VisitReturnStatement(node *ReturnStatement) bool
	VisitDebugStatement(node *DebugStatement) bool
	VisitWarnStatement(node *WarnStatement) bool
	VisitErrorStatement(node *ErrorStatement) bool
	VisitContentStatement(node *ContentStatement) bool
	VisitCharsetStatement(node *CharsetStatement) bool
	VisitComment(node *Comment) bool

	// Value visitors
	VisitNull(node *Null) bool
	VisitKeyword(node *Keyword) bool
	VisitVariable(node *Variable) bool
	VisitNumber(node *Number) bool
	VisitColor(node *Color) bool
	VisitText(node Text) bool
	VisitString(node *String) bool
	VisitInterpolation(node *Interpolation) bool
	VisitList(node *List) bool
	VisitMap(node *Map) bool
	VisitInfixExpression(node *InfixExpression) bool
	VisitPrefixExpression(node *PrefixExpression) bool
	VisitFunctionCall(node *FunctionCall) bool
	VisitRawFunction(node *RawFunction) bool
	VisitMediaType(node *MediaType) bool
	VisitMediaExpression(node *MediaExpression) bool
}

// Walk traverses the AST starting from the given node using the
// visitor pattern.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	// Statements
	case *Block:
		if v.VisitBlock(n) {
			for _, sel := range n.Selectors {
				for _, part := range sel {
					Walk(v, part)
				}
			}
			Walk(v, n.Cond)
			Walk(v, n.List)
			Walk(v, n.Start)
			Walk(v, n.End)
			Walk(v, n.Value)
			Walk(v, n.With)
			if n.Prefix != nil {
				Walk(v, n.Prefix)
			}
			for _, arg := range n.Args {
				Walk(v, arg.Default)
			}
			for _, stmt := range n.Children {
				Walk(v, stmt)
			}
			for _, c := range n.Cases {
				Walk(v, c)
			}
		}
	case *AssignStatement:
		if v.VisitAssignStatement(n) {
			Walk(v, n.Name)
			Walk(v, n.Value)
		}
	case *ImportStatement:
		if v.VisitImportStatement(n) {
			Walk(v, n.Path)
		}
	case *ImportOnceStatement:
		if v.VisitImportOnceStatement(n) {
			Walk(v, n.Path)
		}
	case *ExtendStatement:
		if v.VisitExtendStatement(n) {
			for _, sel := range n.Selectors {
				for _, part := range sel {
					Walk(v, part)
				}
			}
		}
	case *IncludeStatement:
		if v.VisitIncludeStatement(n) {
			for _, arg := range n.Args {
				Walk(v, arg.Value)
			}
			if n.Content != nil {
				Walk(v, n.Content)
			}
		}
	case *BreakStatement:
		v.VisitBreakStatement(n)
	case *ContinueStatement:
		v.VisitContinueStatement(n)
	case *ReturnStatement:
		if v.VisitReturnStatement(n) {
			Walk(v, n.Value)
		}
	case *DebugStatement:
		if v.VisitDebugStatement(n) {
			Walk(v, n.Value)
		}
	case *WarnStatement:
		if v.VisitWarnStatement(n) {
			Walk(v, n.Value)
		}
	case *ErrorStatement:
		if v.VisitErrorStatement(n) {
			Walk(v, n.Value)
		}
	case *ContentStatement:
		v.VisitContentStatement(n)
	case *CharsetStatement:
		if v.VisitCharsetStatement(n) {
			Walk(v, n.Value)
		}
	case *Comment:
		v.VisitComment(n)

	// Values
	case *Null:
		v.VisitNull(n)
	case *Keyword:
		v.VisitKeyword(n)
	case *Variable:
		v.VisitVariable(n)
	case *Number:
		v.VisitNumber(n)
	case *Color:
		v.VisitColor(n)
	case Text:
		v.VisitText(n)
	case *String:
		if v.VisitString(n) {
			for _, part := range n.Parts {
				Walk(v, part)
			}
		}
	case *Interpolation:
		if v.VisitInterpolation(n) {
			Walk(v, n.Value)
		}
	case *List:
		if v.VisitList(n) {
			for _, item := range n.Items {
				Walk(v, item)
			}
		}
	case *Map:
		if v.VisitMap(n) {
			for i := range n.Keys {
				Walk(v, n.Keys[i])
				Walk(v, n.Values[i])
			}
		}
	case *InfixExpression:
		if v.VisitInfixExpression(n) {
			Walk(v, n.Left)
			Walk(v, n.Right)
		}
	case *PrefixExpression:
		if v.VisitPrefixExpression(n) {
			Walk(v, n.Operand)
		}
	case *FunctionCall:
		if v.VisitFunctionCall(n) {
			for _, arg := range n.Args {
				Walk(v, arg.Value)
			}
		}
	case *RawFunction:
		if v.VisitRawFunction(n) {
			Walk(v, n.Raw)
		}
	case *MediaType:
		if v.VisitMediaType(n) {
			for _, part := range n.Parts {
				Walk(v, part)
			}
		}
	case *MediaExpression:
		if v.VisitMediaExpression(n) {
			Walk(v, n.Feature)
			Walk(v, n.Value)
		}
	}
}

// BaseVisitor is a Visitor that descends into every node. Embed it to
// override only the methods you care about.
type BaseVisitor struct{}

func (BaseVisitor) VisitBlock(*Block) bool                             { return true }
func (BaseVisitor) VisitAssignStatement(*AssignStatement) bool         { return true }
func (BaseVisitor) VisitImportStatement(*ImportStatement) bool         { return true }
func (BaseVisitor) VisitImportOnceStatement(*ImportOnceStatement) bool { return true }
func (BaseVisitor) VisitExtendStatement(*ExtendStatement) bool         { return true }
func (BaseVisitor) VisitIncludeStatement(*IncludeStatement) bool       { return true }
func (BaseVisitor) VisitBreakStatement(*BreakStatement) bool           { return true }
func (BaseVisitor) VisitContinueStatement(*ContinueStatement) bool     { return true }
func (BaseVisitor) VisitReturnStatement(*ReturnStatement) bool         { return true }
func (BaseVisitor) VisitDebugStatement(*DebugStatement) bool           { return true }
func (BaseVisitor) VisitWarnStatement(*WarnStatement) bool             { return true }
func (BaseVisitor) VisitErrorStatement(*ErrorStatement) bool           { return true }
func (BaseVisitor) VisitContentStatement(*ContentStatement) bool       { return true }
func (BaseVisitor) VisitCharsetStatement(*CharsetStatement) bool       { return true }
func (BaseVisitor) VisitComment(*Comment) bool                         { return true }
func (BaseVisitor) VisitNull(*Null) bool                               { return true }
func (BaseVisitor) VisitKeyword(*Keyword) bool                         { return true }
func (BaseVisitor) VisitVariable(*Variable) bool                       { return true }
func (BaseVisitor) VisitNumber(*Number) bool                           { return true }
func (BaseVisitor) VisitColor(*Color) bool                             { return true }
func (BaseVisitor) VisitText(Text) bool                                { return true }
func (BaseVisitor) VisitString(*String) bool                           { return true }
func (BaseVisitor) VisitInterpolation(*Interpolation) bool             { return true }
func (BaseVisitor) VisitList(*List) bool                               { return true }
func (BaseVisitor) VisitMap(*Map) bool                                 { return true }
func (BaseVisitor) VisitInfixExpression(*InfixExpression) bool         { return true }
func (BaseVisitor) VisitPrefixExpression(*PrefixExpression) bool       { return true }
func (BaseVisitor) VisitFunctionCall(*FunctionCall) bool               { return true }
func (BaseVisitor) VisitRawFunction(*RawFunction) bool                 { return true }
func (BaseVisitor) VisitMediaType(*MediaType) bool                     { return true }
func (BaseVisitor) VisitMediaExpression(*MediaExpression) bool         { return true }
