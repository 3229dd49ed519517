// Package format renders an AST back to canonical source text. The output is
// deterministic: four-space indentation, one statement per line, and `{ }`
// for empty blocks.
//
// Rendering is dialect-aware. With a dialect, a type annotation equal to the
// dialect's default for that position is omitted; with no dialect every
// annotation present in the AST is rendered explicitly.
package format

import (
	"rill/internal/ast"
	"rill/internal/dialect"
)

type Options struct {
	IndentWidth int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	return o
}

// Print renders block. A nil dialect makes every type annotation explicit.
func Print(block *ast.Block, d dialect.Dialect, opt Options) []byte {
	w := NewWriter(opt)
	pr := printer{writer: w, d: d}
	pr.printBlock(block)
	w.Newline()
	return w.Bytes()
}

type printer struct {
	writer *Writer
	d      dialect.Dialect
}

func (p *printer) printBlock(b *ast.Block) {
	if len(b.Statements) == 0 {
		p.writer.WriteString("{ }")
		return
	}
	p.writer.WriteString("{")
	p.writer.Newline()
	p.writer.IndentPush()
	for _, st := range b.Statements {
		p.printStmt(st)
		p.writer.Newline()
	}
	p.writer.IndentPop()
	p.writer.WriteString("}")
}

func (p *printer) printStmt(st ast.Stmt) {
	switch st := st.(type) {
	case *ast.Block:
		p.printBlock(st)
	case *ast.VariableDeclaration:
		p.writer.WriteString("let ")
		for i := range st.Variables {
			if i > 0 {
				p.writer.WriteString(", ")
			}
			p.printTypedName(st.Variables[i])
		}
		if st.Value != nil {
			p.writer.WriteString(" := ")
			p.printExpr(st.Value)
		}
	case *ast.Assignment:
		for i, t := range st.Targets {
			if i > 0 {
				p.writer.WriteString(", ")
			}
			p.writer.WriteString(t.Name)
		}
		p.writer.WriteString(" := ")
		p.printExpr(st.Value)
	case *ast.ExpressionStatement:
		p.printExpr(st.Expression)
	case *ast.If:
		p.writer.WriteString("if ")
		p.printExpr(st.Condition)
		p.writer.Space()
		p.printBlock(st.Body)
	case *ast.Switch:
		p.writer.WriteString("switch ")
		p.printExpr(st.Expression)
		for i := range st.Cases {
			p.writer.Newline()
			p.printCase(st.Cases[i])
		}
	case *ast.FunctionDefinition:
		p.printFunction(st)
	case *ast.ForLoop:
		p.writer.WriteString("for ")
		p.printBlock(st.Pre)
		p.writer.Space()
		p.printExpr(st.Condition)
		p.writer.Space()
		p.printBlock(st.Post)
		p.writer.Space()
		p.printBlock(st.Body)
	case *ast.Break:
		p.writer.WriteString("break")
	case *ast.Continue:
		p.writer.WriteString("continue")
	case *ast.Leave:
		p.writer.WriteString("leave")
	}
}

func (p *printer) printCase(c ast.Case) {
	if c.Value == nil {
		p.writer.WriteString("default ")
	} else {
		p.writer.WriteString("case ")
		p.printLiteral(c.Value)
		p.writer.Space()
	}
	p.printBlock(c.Body)
}

func (p *printer) printFunction(fn *ast.FunctionDefinition) {
	p.writer.WriteString("function ")
	p.writer.WriteString(fn.Name)
	p.writer.WriteString("(")
	for i := range fn.Parameters {
		if i > 0 {
			p.writer.WriteString(", ")
		}
		p.printTypedName(fn.Parameters[i])
	}
	p.writer.WriteString(")")
	if len(fn.Returns) > 0 {
		p.writer.WriteString(" -> ")
		for i := range fn.Returns {
			if i > 0 {
				p.writer.WriteString(", ")
			}
			p.printTypedName(fn.Returns[i])
		}
	}
	p.writer.Space()
	p.printBlock(fn.Body)
}

func (p *printer) printExpr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.Literal:
		p.printLiteral(e)
	case *ast.Identifier:
		p.writer.WriteString(e.Name)
	case *ast.FunctionCall:
		p.writer.WriteString(e.Func.Name)
		p.writer.WriteString("(")
		for i, arg := range e.Args {
			if i > 0 {
				p.writer.WriteString(", ")
			}
			p.printExpr(arg)
		}
		p.writer.WriteString(")")
	}
}

func (p *printer) printLiteral(lit *ast.Literal) {
	if lit.Kind == ast.LiteralString {
		p.writer.WriteString("\"" + lit.Value + "\"")
	} else {
		p.writer.WriteString(lit.Value)
	}
	if p.keepType(lit.Type, lit.Kind) {
		p.writer.WriteString(":" + lit.Type)
	}
}

// printTypedName renders a declared name; the variable default is the
// dialect's numeric default type.
func (p *printer) printTypedName(tn ast.TypedName) {
	p.writer.WriteString(tn.Name)
	if p.keepType(tn.Type, ast.LiteralNumber) {
		p.writer.WriteString(":" + tn.Type)
	}
}

// keepType decides whether a type annotation is rendered: never when empty,
// always with no dialect, and otherwise only when it differs from the
// dialect's default for the position.
func (p *printer) keepType(name string, kind ast.LiteralKind) bool {
	if name == "" {
		return false
	}
	if p.d == nil {
		return true
	}
	def, ok := p.d.DefaultType(kind)
	if !ok {
		return true
	}
	return name != p.d.TypeName(def)
}
