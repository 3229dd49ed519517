// Package parser builds a rill AST from the token stream by recursive
// descent, threading /// @src debug annotations onto nodes as it goes.
//
// The first syntax error aborts the parse: exactly one SyntaxError-kind
// diagnostic reaches the reporter and no AST is returned. Internal invariant
// violations never escape as panics; ParseBlock converts them into an error
// return so the embedding application can treat them as defects.
package parser

import (
	"fmt"

	"rill/internal/ast"
	"rill/internal/diag"
	"rill/internal/dialect"
	"rill/internal/lexer"
	"rill/internal/source"
	"rill/internal/token"
)

// DefaultMaxDepth bounds construct nesting so hostile input degrades into a
// diagnostic instead of exhausting the stack.
const DefaultMaxDepth = 1024

// Options configure one parse.
type Options struct {
	Reporter diag.Reporter
	// MaxDepth overrides DefaultMaxDepth when positive.
	MaxDepth int
}

// abortParse is the sentinel panic used to unwind after the one permitted
// syntax diagnostic has been reported.
type abortParse struct{}

// Parser holds the state for parsing a single source unit.
type Parser struct {
	lx   *lexer.Lexer
	opts Options

	// pending holds the DebugData from the most recent unconsumed @src
	// annotation; the next constructed node takes it and clears the slot.
	pending *ast.DebugData
	// enclosing is the DebugData of the innermost enclosing construct,
	// inherited by nodes with no annotation of their own.
	enclosing *ast.DebugData

	depth    int
	maxDepth int
	lastSpan source.Span

	// forComponent tracks which part of a for loop is being parsed so that
	// break/continue are only accepted directly inside a loop body.
	forComponent   forComponent
	insideFunction bool
}

type forComponent uint8

const (
	forNone forComponent = iota
	forPre
	forPost
	forBody
)

// ParseBlock parses a whole source unit: one top-level block followed by end
// of input. Diagnostics go to opts.Reporter; a nil AST with a nil error means
// the input was rejected. A non-nil error reports an internal fault, never a
// problem with user input.
func ParseBlock(lx *lexer.Lexer, d dialect.Dialect, opts Options) (block *ast.Block, err error) {
	p := &Parser{
		lx:       lx,
		opts:     opts,
		maxDepth: opts.MaxDepth,
		lastSpan: lx.EmptySpan(),
	}
	if p.maxDepth <= 0 {
		p.maxDepth = DefaultMaxDepth
	}

	defer func() {
		if r := recover(); r != nil {
			block = nil
			if _, ok := r.(abortParse); ok {
				err = nil
				return
			}
			err = fmt.Errorf("internal parser fault: %v", r)
		}
	}()

	block = p.parseBlock()

	if !p.at(token.EOF) {
		p.errSyntax(diag.SynUnexpectedToken, p.lx.Peek().Span,
			"expected end of input, got "+p.lx.Peek().Kind.String())
	}
	return block, nil
}

// noteAnnotation samples the upcoming token's leading trivia and loads the
// pending slot when an @src annotation precedes it.
func (p *Parser) noteAnnotation() {
	if ann, ok := p.lx.Peek().SrcAnnotation(); ok {
		p.pending = ast.NewDebugData(ast.SourceLocation{
			Source: ann.Source,
			Start:  ann.Start,
			End:    ann.End,
		})
	}
}

// takeDebug consumes the pending annotation for the node being constructed,
// falling back to the enclosing construct's shared handle.
func (p *Parser) takeDebug() *ast.DebugData {
	if p.pending != nil {
		d := p.pending
		p.pending = nil
		return d
	}
	return p.enclosing
}

// swapEnclosing installs a construct's DebugData handle for the duration of
// parsing its children; the caller restores the returned previous handle.
func (p *Parser) swapEnclosing(d *ast.DebugData) *ast.DebugData {
	saved := p.enclosing
	p.enclosing = d
	return saved
}

func (p *Parser) enter() {
	p.depth++
	if p.depth > p.maxDepth {
		p.errSyntax(diag.SynNestingTooDeep, p.lx.Peek().Span,
			fmt.Sprintf("nesting too deep, limit is %d levels", p.maxDepth))
	}
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	p.lastSpan = tok.Span
	return tok
}

// expect consumes a token of kind k or aborts with a syntax diagnostic.
func (p *Parser) expect(k token.Kind) token.Token {
	if !p.at(k) {
		got := p.lx.Peek()
		p.errSyntax(diag.SynUnexpectedToken, got.Span,
			"expected "+k.String()+", got "+describe(got))
	}
	return p.advance()
}

// errSyntax reports the single permitted syntax diagnostic and unwinds.
func (p *Parser) errSyntax(code diag.Code, sp source.Span, msg string) {
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
	panic(abortParse{})
}

func (p *Parser) warn(code diag.Code, sp source.Span, msg string) {
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevWarning, sp, msg, nil)
	}
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.Ident, token.IntLit, token.Invalid:
		return fmt.Sprintf("%q", tok.Text)
	default:
		return tok.Kind.String()
	}
}
