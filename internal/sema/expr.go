package sema

import (
	"rill/internal/ast"
	"rill/internal/diag"
	"rill/internal/dialect"
)

// analyzeExpr resolves an expression to its value types. ok is false when
// resolution failed outright (unknown identifier or function); the caller
// then skips checks that would cascade from the failure.
func (a *analyzer) analyzeExpr(e ast.Expr, s *scope) (vals []dialect.Type, ok bool) {
	switch e := e.(type) {
	case *ast.Literal:
		ty := a.analyzeLiteral(e)
		vals = []dialect.Type{ty}
	case *ast.Identifier:
		ty, found := s.lookupVar(e.Name)
		if !found {
			a.errorf(diag.DeclIdentifierNotFound, e.Span, "Identifier %q not found.", e.Name)
			return nil, false
		}
		vals = []dialect.Type{ty}
	case *ast.FunctionCall:
		return a.analyzeCall(e, s)
	default:
		return nil, false
	}
	a.info.exprTypes[e] = vals
	return vals, true
}

// analyzeLiteral resolves a literal's type: the explicit suffix when present,
// otherwise the dialect default for its kind, written back into the AST.
func (a *analyzer) analyzeLiteral(lit *ast.Literal) dialect.Type {
	if lit.Type != "" {
		if a.opaque {
			return dialect.NoType
		}
		ty, ok := a.d.LookupType(lit.Type)
		if !ok {
			a.errorf(diag.TypeInvalidTypeName, lit.Span, "%q is not a valid type name.", lit.Type)
			return dialect.NoType
		}
		return ty
	}
	if ty, ok := a.d.DefaultType(lit.Kind); ok {
		lit.Type = a.d.TypeName(ty)
		return ty
	}
	return dialect.NoType
}

// analyzeCall resolves the callee against the dialect's builtins first, then
// against user-defined functions in scope, and checks arity and argument
// types. On an arity mismatch the declared return types still stand, so the
// surrounding statement is not double-reported.
func (a *analyzer) analyzeCall(call *ast.FunctionCall, s *scope) ([]dialect.Type, bool) {
	var params, returns []dialect.Type
	if b, ok := a.d.Builtin(call.Func.Name); ok {
		params, returns = b.Params, b.Returns
	} else if sig, ok := s.lookupFunc(call.Func.Name); ok {
		params, returns = sig.params, sig.returns
	} else {
		a.errorf(diag.DeclFunctionNotFound, call.Func.Span,
			"Function %q not found.", call.Func.Name)
		for _, arg := range call.Args {
			a.analyzeExpr(arg, s)
		}
		return nil, false
	}

	if len(call.Args) != len(params) {
		a.errorf(diag.TypeArityMismatch, call.Span,
			"Function %q expects %d arguments but got %d",
			call.Func.Name, len(params), len(call.Args))
	}
	for i, arg := range call.Args {
		vals, ok := a.analyzeExpr(arg, s)
		if !ok {
			continue
		}
		if len(vals) != 1 {
			a.errorf(diag.TypeExpectedSingleValue, ast.SpanOf(arg),
				"Expected expression to evaluate to one value, but got %d values instead.", len(vals))
			continue
		}
		if i < len(params) {
			a.typeMismatch(ast.SpanOf(arg), params[i], vals[0])
		}
	}

	a.info.exprTypes[call] = returns
	return returns, true
}
