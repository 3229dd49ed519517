// Package sema is the static analyzer: it walks a parsed block depth-first,
// resolves calls against the active dialect, checks arities and declaration
// counts, and assigns default types to unannotated literals and variables.
//
// Analysis is best-effort: a diagnostic on one statement does not stop the
// walk, so one run reports everything it can find. Analyze returns false
// exactly when at least one error-severity diagnostic was emitted.
package sema

import (
	"fmt"

	"rill/internal/ast"
	"rill/internal/diag"
	"rill/internal/dialect"
	"rill/internal/source"
)

// Options configure one analysis run.
type Options struct {
	Reporter diag.Reporter
}

// AnalysisInfo records the value types resolved for expression nodes, keyed
// by node identity. Read-only to consumers.
type AnalysisInfo struct {
	exprTypes map[ast.Expr][]dialect.Type
}

// TypesOf returns the value types analysis resolved for e, or nil when the
// expression was not (successfully) analyzed.
func (info *AnalysisInfo) TypesOf(e ast.Expr) []dialect.Type {
	if info == nil {
		return nil
	}
	return info.exprTypes[e]
}

// Analyze checks block against d and reports diagnostics to opts.Reporter.
// It mutates the AST in one sanctioned way: unannotated literals and
// variables receive the dialect's default type, so a later dialect-less
// print shows every annotation explicitly.
func Analyze(block *ast.Block, d dialect.Dialect, opts Options) (bool, *AnalysisInfo) {
	a := &analyzer{
		d:      d,
		rep:    opts.Reporter,
		info:   &AnalysisInfo{exprTypes: make(map[ast.Expr][]dialect.Type)},
		opaque: len(d.Types()) == 0,
	}
	if ty, ok := d.DefaultType(ast.LiteralBool); ok {
		a.boolType = ty
	}
	if ty, ok := d.DefaultType(ast.LiteralNumber); ok {
		a.wordType = ty
	}

	a.analyzeBlock(block, newScope(nil, false))
	return a.errCount == 0, a.info
}

type analyzer struct {
	d    dialect.Dialect
	rep  diag.Reporter
	info *AnalysisInfo

	// Cached dialect defaults; NoType under an untyped dialect.
	boolType dialect.Type
	wordType dialect.Type

	// opaque marks a dialect with an empty type domain: written annotations
	// pass through as text instead of resolving against the domain.
	opaque bool

	errCount int
}

func (a *analyzer) errorf(code diag.Code, sp source.Span, format string, args ...any) {
	a.errCount++
	if a.rep != nil {
		a.rep.Report(code, diag.SevError, sp, fmt.Sprintf(format, args...), nil)
	}
}

// resolveDeclaredType resolves a variable's written type, falling back to the
// dialect default and writing the chosen spelling back into the AST.
func (a *analyzer) resolveDeclaredType(tn *ast.TypedName) dialect.Type {
	if tn.Type != "" {
		if a.opaque {
			return dialect.NoType
		}
		ty, ok := a.d.LookupType(tn.Type)
		if !ok {
			a.errorf(diag.TypeInvalidTypeName, tn.Span, "%q is not a valid type name.", tn.Type)
			return dialect.NoType
		}
		return ty
	}
	if a.wordType != dialect.NoType {
		tn.Type = a.d.TypeName(a.wordType)
		return a.wordType
	}
	return dialect.NoType
}

// typeMismatch reports a value of the wrong type when both sides are known.
func (a *analyzer) typeMismatch(sp source.Span, want, got dialect.Type) bool {
	if want == dialect.NoType || got == dialect.NoType || want == got {
		return false
	}
	a.errorf(diag.TypeMismatch, sp, "Expected a value of type %s but got %s",
		a.d.TypeName(want), a.d.TypeName(got))
	return true
}
