package parser

import (
	"rill/internal/ast"
	"rill/internal/diag"
	"rill/internal/token"
)

// parseBlock parses '{' Statement* '}'.
func (p *Parser) parseBlock() *ast.Block {
	p.enter()
	defer p.leave()

	p.noteAnnotation()
	open := p.expect(token.LBrace)
	block := &ast.Block{
		Span:  open.Span,
		Debug: p.takeDebug(),
	}

	saved := p.swapEnclosing(block.Debug)
	for {
		p.noteAnnotation()
		if p.at(token.RBrace) || p.at(token.EOF) {
			break
		}
		block.Statements = append(block.Statements, p.parseStatement())
	}
	p.enclosing = saved

	closing := p.expect(token.RBrace)
	block.Span = block.Span.Cover(closing.Span)
	return block
}

// parseStatement dispatches on the first token. Annotations have already
// been sampled by the block loop.
func (p *Parser) parseStatement() ast.Stmt {
	p.enter()
	defer p.leave()

	switch tok := p.lx.Peek(); tok.Kind {
	case token.KwLet:
		return p.parseVariableDeclaration()
	case token.KwIf:
		return p.parseIf()
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwFunction:
		return p.parseFunctionDefinition()
	case token.KwFor:
		return p.parseForLoop()
	case token.KwBreak:
		p.checkLoopKeyword(tok, "break")
		p.advance()
		return &ast.Break{Span: tok.Span, Debug: p.takeDebug()}
	case token.KwContinue:
		p.checkLoopKeyword(tok, "continue")
		p.advance()
		return &ast.Continue{Span: tok.Span, Debug: p.takeDebug()}
	case token.KwLeave:
		if !p.insideFunction {
			p.errSyntax(diag.SynMisplacedKeyword, tok.Span,
				`Keyword "leave" can only be used inside a function.`)
		}
		p.advance()
		return &ast.Leave{Span: tok.Span, Debug: p.takeDebug()}
	case token.LBrace:
		return p.parseBlock()
	case token.Ident:
		return p.parseAssignmentOrExpression()
	case token.IntLit, token.StringLit, token.KwTrue, token.KwFalse:
		debug := p.takeDebug()
		saved := p.swapEnclosing(debug)
		expr := p.parseExpression()
		p.enclosing = saved
		return &ast.ExpressionStatement{
			Span:       ast.SpanOf(expr),
			Debug:      debug,
			Expression: expr,
		}
	default:
		p.errSyntax(diag.SynExpectExpression, tok.Span,
			"expected statement, got "+describe(tok))
		return nil // unreachable
	}
}

// parseVariableDeclaration parses
// 'let' Ident (':' Type)? (',' Ident (':' Type)?)* (':=' Expr)?.
// A declaration without ':=' introduces zero-valued variables.
func (p *Parser) parseVariableDeclaration() ast.Stmt {
	kw := p.expect(token.KwLet)
	decl := &ast.VariableDeclaration{
		Span:  kw.Span,
		Debug: p.takeDebug(),
	}

	saved := p.swapEnclosing(decl.Debug)
	for {
		decl.Variables = append(decl.Variables, p.parseTypedName())
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if p.at(token.ColonAssign) {
		p.advance()
		decl.Value = p.parseExpression()
	}
	p.enclosing = saved

	decl.Span = decl.Span.Cover(p.lastSpan)
	return decl
}

// parseTypedName parses Ident (':' Type)?.
func (p *Parser) parseTypedName() ast.TypedName {
	name := p.expectIdent("variable name")
	tn := ast.TypedName{
		Span:  name.Span,
		Debug: p.takeDebug(),
		Name:  name.Text,
	}
	if p.at(token.Colon) {
		p.advance()
		ty := p.expectIdent("type name")
		tn.Type = ty.Text
		tn.Span = tn.Span.Cover(ty.Span)
	}
	return tn
}

// parseAssignmentOrExpression disambiguates after the leading identifier:
// '(' starts a call expression statement, ',' or ':=' an assignment, and
// anything else a bare identifier expression.
func (p *Parser) parseAssignmentOrExpression() ast.Stmt {
	debug := p.takeDebug()
	saved := p.swapEnclosing(debug)
	defer func() { p.enclosing = saved }()

	name := p.advance()
	first := &ast.Identifier{Span: name.Span, Debug: p.enclosing, Name: name.Text}

	switch p.lx.Peek().Kind {
	case token.LParen:
		call := p.parseCallTail(first)
		return &ast.ExpressionStatement{
			Span:       ast.SpanOf(call),
			Debug:      debug,
			Expression: call,
		}
	case token.Comma, token.ColonAssign:
		assign := &ast.Assignment{
			Span:    name.Span,
			Debug:   debug,
			Targets: []*ast.Identifier{first},
		}
		for p.at(token.Comma) {
			p.advance()
			target := p.expectIdent("variable name")
			assign.Targets = append(assign.Targets,
				&ast.Identifier{Span: target.Span, Debug: p.enclosing, Name: target.Text})
		}
		p.expect(token.ColonAssign)
		assign.Value = p.parseExpression()
		assign.Span = assign.Span.Cover(p.lastSpan)
		return assign
	default:
		return &ast.ExpressionStatement{
			Span:       name.Span,
			Debug:      debug,
			Expression: first,
		}
	}
}

// parseIf parses 'if' Expr Block.
func (p *Parser) parseIf() ast.Stmt {
	kw := p.expect(token.KwIf)
	stmt := &ast.If{
		Span:  kw.Span,
		Debug: p.takeDebug(),
	}

	saved := p.swapEnclosing(stmt.Debug)
	stmt.Condition = p.parseExpression()
	stmt.Body = p.parseBlock()
	p.enclosing = saved

	stmt.Span = stmt.Span.Cover(stmt.Body.Span)
	return stmt
}

// parseSwitch parses 'switch' Expr Case* ('default' Block)?.
func (p *Parser) parseSwitch() ast.Stmt {
	kw := p.expect(token.KwSwitch)
	sw := &ast.Switch{
		Span:  kw.Span,
		Debug: p.takeDebug(),
	}

	saved := p.swapEnclosing(sw.Debug)
	sw.Expression = p.parseExpression()

	sawDefault := false
loop:
	for {
		p.noteAnnotation()
		switch next := p.lx.Peek(); next.Kind {
		case token.KwCase:
			if sawDefault {
				p.errSyntax(diag.SynCaseAfterDefault, next.Span, "Case not allowed after default case.")
			}
			sw.Cases = append(sw.Cases, p.parseCase())
		case token.KwDefault:
			if sawDefault {
				p.errSyntax(diag.SynDuplicateDefault, next.Span, "Only one default case allowed.")
			}
			sawDefault = true
			sw.Cases = append(sw.Cases, p.parseCase())
		default:
			break loop
		}
	}
	p.enclosing = saved

	if len(sw.Cases) == 0 {
		p.warn(diag.SynSwitchNoCases, kw.Span, "\"switch\" statement has no cases.")
	}

	sw.Span = sw.Span.Cover(p.lastSpan)
	return sw
}

// parseCase parses 'case' Literal Block or 'default' Block. The switch loop
// has already sampled any annotation preceding the keyword.
func (p *Parser) parseCase() ast.Case {
	kw := p.advance() // 'case' or 'default'
	c := ast.Case{
		Span:  kw.Span,
		Debug: p.takeDebug(),
	}

	saved := p.swapEnclosing(c.Debug)
	if kw.Kind == token.KwCase {
		lit, ok := p.parseLiteral()
		if !ok {
			p.errSyntax(diag.SynExpectLiteral, p.lx.Peek().Span,
				"expected literal case value, got "+describe(p.lx.Peek()))
		}
		c.Value = lit
	}
	c.Body = p.parseBlock()
	p.enclosing = saved

	c.Span = c.Span.Cover(c.Body.Span)
	return c
}

// parseFunctionDefinition parses
// 'function' Ident '(' params ')' ('->' returns)? Block.
func (p *Parser) parseFunctionDefinition() ast.Stmt {
	kw := p.expect(token.KwFunction)
	name := p.expectIdent("function name")
	fn := &ast.FunctionDefinition{
		Span:  kw.Span,
		Debug: p.takeDebug(),
		Name:  name.Text,
	}

	saved := p.swapEnclosing(fn.Debug)
	p.expect(token.LParen)
	if !p.at(token.RParen) {
		for {
			fn.Parameters = append(fn.Parameters, p.parseTypedName())
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	p.expect(token.RParen)

	if p.at(token.Arrow) {
		p.advance()
		for {
			fn.Returns = append(fn.Returns, p.parseTypedName())
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	outerFor, outerFn := p.forComponent, p.insideFunction
	p.forComponent, p.insideFunction = forNone, true
	fn.Body = p.parseBlock()
	p.forComponent, p.insideFunction = outerFor, outerFn
	p.enclosing = saved

	fn.Span = fn.Span.Cover(fn.Body.Span)
	return fn
}

// parseForLoop parses 'for' Block Expr Block Block.
func (p *Parser) parseForLoop() ast.Stmt {
	kw := p.expect(token.KwFor)
	loop := &ast.ForLoop{
		Span:  kw.Span,
		Debug: p.takeDebug(),
	}

	saved := p.swapEnclosing(loop.Debug)
	outer := p.forComponent

	p.forComponent = forPre
	loop.Pre = p.parseBlock()
	p.forComponent = outer
	loop.Condition = p.parseExpression()
	p.forComponent = forPost
	loop.Post = p.parseBlock()
	p.forComponent = forBody
	loop.Body = p.parseBlock()

	p.forComponent = outer
	p.enclosing = saved

	loop.Span = loop.Span.Cover(loop.Body.Span)
	return loop
}

// checkLoopKeyword rejects break/continue outside a for-loop body, including
// inside the init and post blocks.
func (p *Parser) checkLoopKeyword(tok token.Token, kw string) {
	switch p.forComponent {
	case forBody:
		return
	case forPre:
		p.errSyntax(diag.SynMisplacedKeyword, tok.Span,
			`Keyword "`+kw+`" in for-loop init block is not allowed.`)
	case forPost:
		p.errSyntax(diag.SynMisplacedKeyword, tok.Span,
			`Keyword "`+kw+`" in for-loop post block is not allowed.`)
	default:
		p.errSyntax(diag.SynMisplacedKeyword, tok.Span,
			`Keyword "`+kw+`" needs to be inside a for-loop body.`)
	}
}

func (p *Parser) expectIdent(what string) token.Token {
	if !p.at(token.Ident) {
		got := p.lx.Peek()
		p.errSyntax(diag.SynExpectIdentifier, got.Span,
			"expected "+what+", got "+describe(got))
	}
	return p.advance()
}
