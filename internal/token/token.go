package token

import (
	"rill/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token starts a literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwLet, KwIf, KwSwitch, KwCase, KwDefault, KwFunction,
		KwFor, KwBreak, KwContinue, KwLeave, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// SrcAnnotation returns the last /// @src annotation in the token's leading
// trivia, if any. Later annotations win over earlier ones on the same token.
func (t Token) SrcAnnotation() (Annotation, bool) {
	for i := len(t.Leading) - 1; i >= 0; i-- {
		if t.Leading[i].Src != nil {
			return *t.Leading[i].Src, true
		}
	}
	return Annotation{}, false
}
