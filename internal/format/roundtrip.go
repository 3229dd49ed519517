package format

import (
	"rill/internal/ast"
	"rill/internal/diag"
	"rill/internal/dialect"
	"rill/internal/lexer"
	"rill/internal/parser"
	"rill/internal/source"
)

// CheckRoundTrip renders block, re-parses the output, and verifies that the
// statement structure survived. Used by `rill fmt --check` and as a printer
// self-test; debug locations are not expected to survive since annotations
// are not re-emitted.
func CheckRoundTrip(block *ast.Block, d dialect.Dialect, opt Options) (ok bool, msg string) {
	rendered := Print(block, d, opt)

	fs := source.NewFileSet()
	id := fs.AddVirtual("fmt-check.rl", rendered)
	bag := &diag.Bag{}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	reparsed, err := parser.ParseBlock(lx, d, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if err != nil {
		return false, "fmt-check: reparse fault: " + err.Error()
	}
	if reparsed == nil || bag.HasErrors() {
		return false, "fmt-check: rendered output does not parse"
	}
	if !sameShape(block, reparsed) {
		return false, "fmt-check: statement structure differs after round-trip"
	}
	return true, "fmt-check: OK"
}

// sameShape compares two blocks by statement kind and nesting, ignoring
// spans, debug data, and type annotations.
func sameShape(a, b *ast.Block) bool {
	if len(a.Statements) != len(b.Statements) {
		return false
	}
	for i := range a.Statements {
		if !sameStmtShape(a.Statements[i], b.Statements[i]) {
			return false
		}
	}
	return true
}

func sameStmtShape(a, b ast.Stmt) bool {
	switch a := a.(type) {
	case *ast.Block:
		b, ok := b.(*ast.Block)
		return ok && sameShape(a, b)
	case *ast.VariableDeclaration:
		b, ok := b.(*ast.VariableDeclaration)
		return ok && len(a.Variables) == len(b.Variables) && (a.Value == nil) == (b.Value == nil)
	case *ast.Assignment:
		b, ok := b.(*ast.Assignment)
		return ok && len(a.Targets) == len(b.Targets)
	case *ast.ExpressionStatement:
		_, ok := b.(*ast.ExpressionStatement)
		return ok
	case *ast.If:
		b, ok := b.(*ast.If)
		return ok && sameShape(a.Body, b.Body)
	case *ast.Switch:
		b, ok := b.(*ast.Switch)
		if !ok || len(a.Cases) != len(b.Cases) {
			return false
		}
		for i := range a.Cases {
			if (a.Cases[i].Value == nil) != (b.Cases[i].Value == nil) {
				return false
			}
			if !sameShape(a.Cases[i].Body, b.Cases[i].Body) {
				return false
			}
		}
		return true
	case *ast.FunctionDefinition:
		b, ok := b.(*ast.FunctionDefinition)
		return ok && a.Name == b.Name &&
			len(a.Parameters) == len(b.Parameters) &&
			len(a.Returns) == len(b.Returns) &&
			sameShape(a.Body, b.Body)
	case *ast.ForLoop:
		b, ok := b.(*ast.ForLoop)
		return ok && sameShape(a.Pre, b.Pre) && sameShape(a.Post, b.Post) && sameShape(a.Body, b.Body)
	case *ast.Break:
		_, ok := b.(*ast.Break)
		return ok
	case *ast.Continue:
		_, ok := b.(*ast.Continue)
		return ok
	case *ast.Leave:
		_, ok := b.(*ast.Leave)
		return ok
	}
	return false
}
