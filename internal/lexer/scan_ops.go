package lexer

import (
	"fmt"

	"rill/internal/diag"
	"rill/internal/token"
)

// scanOperatorOrPunct scans punctuation, longest match first.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	if b0, b1, ok := lx.cursor.Peek2(); ok {
		switch {
		case b0 == ':' && b1 == '=':
			lx.cursor.Bump()
			lx.cursor.Bump()
			return emit(token.ColonAssign)
		case b0 == '-' && b1 == '>':
			lx.cursor.Bump()
			lx.cursor.Bump()
			return emit(token.Arrow)
		}
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case ',':
		return emit(token.Comma)
	case ':':
		return emit(token.Colon)
	default:
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unexpected character %q", ch))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
}
