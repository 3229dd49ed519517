package parser

import (
	"rill/internal/ast"
	"rill/internal/diag"
	"rill/internal/token"
)

// parseExpression parses a literal, an identifier, or a function call.
func (p *Parser) parseExpression() ast.Expr {
	p.enter()
	defer p.leave()

	if lit, ok := p.parseLiteral(); ok {
		return lit
	}

	tok := p.lx.Peek()
	if tok.Kind != token.Ident {
		p.errSyntax(diag.SynExpectExpression, tok.Span,
			"expected expression, got "+describe(tok))
	}
	p.advance()
	ident := &ast.Identifier{Span: tok.Span, Debug: p.enclosing, Name: tok.Text}
	if p.at(token.LParen) {
		return p.parseCallTail(ident)
	}
	return ident
}

// parseCallTail parses '(' (Expr (',' Expr)*)? ')' after the callee
// identifier has been consumed.
func (p *Parser) parseCallTail(fn *ast.Identifier) *ast.FunctionCall {
	p.enter()
	defer p.leave()

	call := &ast.FunctionCall{
		Span:  fn.Span,
		Debug: p.enclosing,
		Func:  fn,
	}
	p.expect(token.LParen)
	if !p.at(token.RParen) {
		for {
			call.Args = append(call.Args, p.parseExpression())
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	closing := p.expect(token.RParen)
	call.Span = call.Span.Cover(closing.Span)
	return call
}

// parseLiteral parses a number, string, or boolean literal with an optional
// ':' type suffix. It reports (nil, false) without consuming anything when
// the next token cannot start a literal.
func (p *Parser) parseLiteral() (*ast.Literal, bool) {
	var kind ast.LiteralKind
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit:
		kind = ast.LiteralNumber
	case token.StringLit:
		kind = ast.LiteralString
	case token.KwTrue, token.KwFalse:
		kind = ast.LiteralBool
	default:
		return nil, false
	}
	p.advance()

	value := tok.Text
	if kind == ast.LiteralString && len(value) >= 2 {
		value = value[1 : len(value)-1] // drop the surrounding quotes
	}
	lit := &ast.Literal{
		Span:  tok.Span,
		Debug: p.takeDebug(),
		Kind:  kind,
		Value: value,
	}
	if p.at(token.Colon) {
		p.advance()
		ty := p.expectIdent("type name")
		lit.Type = ty.Text
		lit.Span = lit.Span.Cover(ty.Span)
	}
	return lit, true
}
