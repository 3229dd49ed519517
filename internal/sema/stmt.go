package sema

import (
	"fmt"
	"math/big"
	"strings"

	"rill/internal/ast"
	"rill/internal/diag"
	"rill/internal/dialect"
)

// analyzeBlock hoists the block's function definitions into s, then analyzes
// its statements left to right. The caller owns the scope.
func (a *analyzer) analyzeBlock(b *ast.Block, s *scope) {
	a.hoistFunctions(b.Statements, s)
	for _, st := range b.Statements {
		a.analyzeStmt(st, s)
	}
}

// hoistFunctions registers function signatures before statement analysis so
// calls may precede definitions. Parameter and return types are resolved
// here, once.
func (a *analyzer) hoistFunctions(stmts []ast.Stmt, s *scope) {
	for _, st := range stmts {
		fn, ok := st.(*ast.FunctionDefinition)
		if !ok {
			continue
		}
		sig := &signature{}
		for i := range fn.Parameters {
			sig.params = append(sig.params, a.resolveDeclaredType(&fn.Parameters[i]))
		}
		for i := range fn.Returns {
			sig.returns = append(sig.returns, a.resolveDeclaredType(&fn.Returns[i]))
		}
		if !s.defineFunc(fn.Name, sig) {
			a.errorf(diag.DeclFunctionRedefined, fn.Span,
				"Function %q already defined.", fn.Name)
		}
	}
}

func (a *analyzer) analyzeStmt(st ast.Stmt, s *scope) {
	switch st := st.(type) {
	case *ast.Block:
		a.analyzeBlock(st, newScope(s, false))
	case *ast.VariableDeclaration:
		a.analyzeVariableDeclaration(st, s)
	case *ast.Assignment:
		a.analyzeAssignment(st, s)
	case *ast.ExpressionStatement:
		a.analyzeExpressionStatement(st, s)
	case *ast.If:
		a.analyzeCondition(st.Condition, s)
		a.analyzeBlock(st.Body, newScope(s, false))
	case *ast.Switch:
		a.analyzeSwitch(st, s)
	case *ast.FunctionDefinition:
		a.analyzeFunctionDefinition(st, s)
	case *ast.ForLoop:
		a.analyzeForLoop(st, s)
	case *ast.Break, *ast.Continue, *ast.Leave:
		// Placement is enforced during parsing.
	default:
		panic(fmt.Sprintf("sema: unhandled statement %T", st))
	}
}

func (a *analyzer) analyzeVariableDeclaration(decl *ast.VariableDeclaration, s *scope) {
	declared := make([]dialect.Type, len(decl.Variables))
	for i := range decl.Variables {
		declared[i] = a.resolveDeclaredType(&decl.Variables[i])
	}

	if decl.Value != nil {
		// The initializer cannot see the variables being declared.
		if vals, ok := a.analyzeExpr(decl.Value, s); ok {
			if len(vals) != len(decl.Variables) {
				names := make([]string, len(decl.Variables))
				for i, v := range decl.Variables {
					names[i] = v.Name
				}
				a.errorf(diag.DeclVarCountMismatch, decl.Span,
					"Variable count mismatch for declaration of %q: %d variables and %d values.",
					strings.Join(names, ", "), len(decl.Variables), len(vals))
			} else {
				for i, v := range vals {
					a.typeMismatch(ast.SpanOf(decl.Value), declared[i], v)
				}
			}
		}
	}

	for i, v := range decl.Variables {
		if !s.defineVar(v.Name, declared[i]) {
			a.errorf(diag.DeclVariableRedeclared, v.Span,
				"Variable %q already declared in this scope.", v.Name)
		}
	}
}

func (a *analyzer) analyzeAssignment(assign *ast.Assignment, s *scope) {
	targets := make([]dialect.Type, len(assign.Targets))
	for i, t := range assign.Targets {
		ty, ok := s.lookupVar(t.Name)
		if !ok {
			a.errorf(diag.DeclIdentifierNotFound, t.Span, "Identifier %q not found.", t.Name)
			continue
		}
		targets[i] = ty
	}

	vals, ok := a.analyzeExpr(assign.Value, s)
	if !ok {
		return
	}
	if len(vals) != len(assign.Targets) {
		a.errorf(diag.DeclVarCountMismatch, assign.Span,
			"Variable count does not match number of values (%d vs. %d)",
			len(assign.Targets), len(vals))
		return
	}
	for i, v := range vals {
		a.typeMismatch(assign.Targets[i].Span, targets[i], v)
	}
}

func (a *analyzer) analyzeExpressionStatement(st *ast.ExpressionStatement, s *scope) {
	vals, ok := a.analyzeExpr(st.Expression, s)
	if ok && len(vals) > 0 {
		a.errorf(diag.TypeUnexpectedValues, st.Span,
			"Top-level expressions are not supposed to return values (this expression returns %d value%s). Use \"pop()\" or assign them.",
			len(vals), plural(len(vals)))
	}
}

// analyzeCondition requires a single value and, under a typed dialect, the
// boolean type.
func (a *analyzer) analyzeCondition(e ast.Expr, s *scope) {
	vals, ok := a.analyzeExpr(e, s)
	if !ok {
		return
	}
	if len(vals) != 1 {
		a.errorf(diag.TypeExpectedSingleValue, ast.SpanOf(e),
			"Expected expression to evaluate to one value, but got %d values instead.", len(vals))
		return
	}
	a.typeMismatch(ast.SpanOf(e), a.boolType, vals[0])
}

func (a *analyzer) analyzeSwitch(sw *ast.Switch, s *scope) {
	scrutinee := dialect.NoType
	if vals, ok := a.analyzeExpr(sw.Expression, s); ok {
		if len(vals) != 1 {
			a.errorf(diag.TypeExpectedSingleValue, ast.SpanOf(sw.Expression),
				"Expected expression to evaluate to one value, but got %d values instead.", len(vals))
		} else {
			scrutinee = vals[0]
		}
	}

	seen := make(map[string]bool)
	for i := range sw.Cases {
		c := &sw.Cases[i]
		if c.Value != nil {
			ty := a.analyzeLiteral(c.Value)
			a.typeMismatch(c.Value.Span, scrutinee, ty)
			key := caseKey(c.Value, ty)
			if seen[key] {
				a.errorf(diag.TypeDuplicateCase, c.Span, "Duplicate case defined.")
			}
			seen[key] = true
		}
		a.analyzeBlock(c.Body, newScope(s, false))
	}
}

func (a *analyzer) analyzeFunctionDefinition(fn *ast.FunctionDefinition, s *scope) {
	// The signature was resolved during hoisting; redefinition was reported
	// there too, so an absent entry means the first definition won.
	sig, ok := s.lookupFunc(fn.Name)
	if !ok {
		return
	}

	body := newScope(s, true)
	for i, p := range fn.Parameters {
		ty := dialect.NoType
		if i < len(sig.params) {
			ty = sig.params[i]
		}
		if !body.defineVar(p.Name, ty) {
			a.errorf(diag.DeclVariableRedeclared, p.Span,
				"Variable %q already declared in this scope.", p.Name)
		}
	}
	for i, r := range fn.Returns {
		ty := dialect.NoType
		if i < len(sig.returns) {
			ty = sig.returns[i]
		}
		if !body.defineVar(r.Name, ty) {
			a.errorf(diag.DeclVariableRedeclared, r.Span,
				"Variable %q already declared in this scope.", r.Name)
		}
	}
	a.analyzeBlock(fn.Body, body)
}

// analyzeForLoop gives the init block's declarations loop-wide visibility:
// the condition, post block, and body all run in the init scope's shadow.
func (a *analyzer) analyzeForLoop(loop *ast.ForLoop, s *scope) {
	loopScope := newScope(s, false)
	a.hoistFunctions(loop.Pre.Statements, loopScope)
	for _, st := range loop.Pre.Statements {
		a.analyzeStmt(st, loopScope)
	}
	a.analyzeCondition(loop.Condition, loopScope)
	a.analyzeBlock(loop.Post, newScope(loopScope, false))
	a.analyzeBlock(loop.Body, newScope(loopScope, false))
}

// caseKey canonicalizes a case label for duplicate detection; numeric labels
// compare by value so 0x10 and 16 collide.
func caseKey(lit *ast.Literal, ty dialect.Type) string {
	val := lit.Value
	if lit.Kind == ast.LiteralNumber {
		if n, ok := new(big.Int).SetString(lit.Value, 0); ok {
			val = n.String()
		}
	}
	return fmt.Sprintf("%d/%d/%s", ty, lit.Kind, val)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
