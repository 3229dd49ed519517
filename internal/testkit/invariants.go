// Package testkit holds structural invariant checks shared by parser and
// analyzer tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"rill/internal/ast"
	"rill/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed block:
// 1) the root span is within file content bounds
// 2) every statement span is non-empty and fully contained in the root span
// 3) child statements never escape the span of their enclosing block
func CheckSpanInvariants(root *ast.Block, sf *source.File) error {
	if root == nil || sf == nil {
		return fmt.Errorf("nil block or file")
	}
	if root.Span.End < root.Span.Start {
		return fmt.Errorf("inverted root span: %v", root.Span)
	}
	if root.Span.File != sf.ID {
		return fmt.Errorf("root span points to different file id: got=%d want=%d", root.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if root.Span.End > lenContent {
		return fmt.Errorf("root span end beyond content: %d > %d", root.Span.End, lenContent)
	}
	return checkBlock(root, sf.ID)
}

func checkBlock(b *ast.Block, id source.FileID) error {
	for _, st := range b.Statements {
		sp := ast.SpanOf(st)
		if sp.End <= sp.Start {
			return fmt.Errorf("empty statement span: %v", sp)
		}
		if sp.File != id {
			return fmt.Errorf("statement span file mismatch: got=%d want=%d", sp.File, id)
		}
		if sp.Start < b.Span.Start || sp.End > b.Span.End {
			return fmt.Errorf("statement span %v is outside block span %v", sp, b.Span)
		}
		if err := checkChildren(st, id); err != nil {
			return err
		}
	}
	return nil
}

func checkChildren(st ast.Stmt, id source.FileID) error {
	switch st := st.(type) {
	case *ast.Block:
		return checkBlock(st, id)
	case *ast.If:
		return checkBlock(st.Body, id)
	case *ast.Switch:
		for i := range st.Cases {
			if err := checkBlock(st.Cases[i].Body, id); err != nil {
				return err
			}
		}
	case *ast.FunctionDefinition:
		return checkBlock(st.Body, id)
	case *ast.ForLoop:
		for _, b := range []*ast.Block{st.Pre, st.Post, st.Body} {
			if err := checkBlock(b, id); err != nil {
				return err
			}
		}
	}
	return nil
}
