package ast

import "rill/internal/source"

// SpanOf returns the native source span of any statement or expression.
func SpanOf(n any) source.Span {
	switch n := n.(type) {
	case *Block:
		return n.Span
	case *VariableDeclaration:
		return n.Span
	case *Assignment:
		return n.Span
	case *ExpressionStatement:
		return n.Span
	case *If:
		return n.Span
	case *Switch:
		return n.Span
	case *Case:
		return n.Span
	case *FunctionDefinition:
		return n.Span
	case *ForLoop:
		return n.Span
	case *Break:
		return n.Span
	case *Continue:
		return n.Span
	case *Leave:
		return n.Span
	case *Literal:
		return n.Span
	case *Identifier:
		return n.Span
	case *FunctionCall:
		return n.Span
	case *TypedName:
		return n.Span
	}
	return source.Span{}
}

// DebugOf returns the shared DebugData handle of any node, or nil.
func DebugOf(n any) *DebugData {
	switch n := n.(type) {
	case *Block:
		return n.Debug
	case *VariableDeclaration:
		return n.Debug
	case *Assignment:
		return n.Debug
	case *ExpressionStatement:
		return n.Debug
	case *If:
		return n.Debug
	case *Switch:
		return n.Debug
	case *Case:
		return n.Debug
	case *FunctionDefinition:
		return n.Debug
	case *ForLoop:
		return n.Debug
	case *Break:
		return n.Debug
	case *Continue:
		return n.Debug
	case *Leave:
		return n.Debug
	case *Literal:
		return n.Debug
	case *Identifier:
		return n.Debug
	case *FunctionCall:
		return n.Debug
	case *TypedName:
		return n.Debug
	}
	return nil
}
