package ast

import "rill/internal/source"

// Expr is the closed set of expression kinds: *Literal, *Identifier,
// *FunctionCall.
type Expr interface {
	exprNode()
}

// LiteralKind classifies literal values.
type LiteralKind uint8

const (
	LiteralNumber LiteralKind = iota
	LiteralBool
	LiteralString
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralNumber:
		return "number"
	case LiteralBool:
		return "bool"
	case LiteralString:
		return "string"
	}
	return "unknown"
}

// Literal is a number, boolean, or string constant. Type holds the written
// :Type suffix, or the dialect default materialized by the analyzer; empty
// means untyped.
type Literal struct {
	Span  source.Span
	Debug *DebugData
	Kind  LiteralKind
	Value string
	Type  string
}

// Identifier is a variable reference.
type Identifier struct {
	Span  source.Span
	Debug *DebugData
	Name  string
}

// FunctionCall applies a builtin or user-defined function to arguments.
type FunctionCall struct {
	Span  source.Span
	Debug *DebugData
	Func  *Identifier
	Args  []Expr
}

func (*Literal) exprNode()      {}
func (*Identifier) exprNode()   {}
func (*FunctionCall) exprNode() {}
