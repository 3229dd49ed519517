package ast

import "rill/internal/source"

// Stmt is the closed set of statement kinds: *Block, *VariableDeclaration,
// *Assignment, *ExpressionStatement, *If, *Switch, *FunctionDefinition,
// *ForLoop, *Break, *Continue, *Leave.
type Stmt interface {
	stmtNode()
}

// Block is an ordered sequence of statements between braces.
type Block struct {
	Span       source.Span
	Debug      *DebugData
	Statements []Stmt
}

// TypedName is one declared name with an optional type annotation, used by
// variable declarations and function parameter/return lists.
type TypedName struct {
	Span  source.Span
	Debug *DebugData
	Name  string
	Type  string
}

// VariableDeclaration is `let a, b := expr` or `let a, b` (zero values).
type VariableDeclaration struct {
	Span      source.Span
	Debug     *DebugData
	Variables []TypedName
	Value     Expr // nil when declaring zero-valued variables
}

// Assignment is `a, b := expr` for previously declared variables.
type Assignment struct {
	Span    source.Span
	Debug   *DebugData
	Targets []*Identifier
	Value   Expr
}

// ExpressionStatement is a bare expression in statement position.
type ExpressionStatement struct {
	Span       source.Span
	Debug      *DebugData
	Expression Expr
}

// If executes the body when the condition is non-zero. There is no else
// branch; lowering uses switch instead.
type If struct {
	Span      source.Span
	Debug     *DebugData
	Condition Expr
	Body      *Block
}

// Case is one `case literal { }` arm, or the default arm when Value is nil.
type Case struct {
	Span  source.Span
	Debug *DebugData
	Value *Literal // nil for default
	Body  *Block
}

// Switch dispatches on the scrutinee over literal-valued cases.
type Switch struct {
	Span       source.Span
	Debug      *DebugData
	Expression Expr
	Cases      []Case
}

// FunctionDefinition declares a named function with typed parameters and
// named return variables.
type FunctionDefinition struct {
	Span       source.Span
	Debug      *DebugData
	Name       string
	Parameters []TypedName
	Returns    []TypedName
	Body       *Block
}

// ForLoop is `for {pre} cond {post} {body}`.
type ForLoop struct {
	Span      source.Span
	Debug     *DebugData
	Pre       *Block
	Condition Expr
	Post      *Block
	Body      *Block
}

// Break exits the innermost for loop.
type Break struct {
	Span  source.Span
	Debug *DebugData
}

// Continue skips to the post block of the innermost for loop.
type Continue struct {
	Span  source.Span
	Debug *DebugData
}

// Leave returns from the enclosing function.
type Leave struct {
	Span  source.Span
	Debug *DebugData
}

func (*Block) stmtNode()               {}
func (*VariableDeclaration) stmtNode() {}
func (*Assignment) stmtNode()          {}
func (*ExpressionStatement) stmtNode() {}
func (*If) stmtNode()                  {}
func (*Switch) stmtNode()              {}
func (*FunctionDefinition) stmtNode()  {}
func (*ForLoop) stmtNode()             {}
func (*Break) stmtNode()               {}
func (*Continue) stmtNode()            {}
func (*Leave) stmtNode()               {}
