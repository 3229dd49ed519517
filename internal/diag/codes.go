package diag

import (
	"fmt"
)

// Code is a stable numeric diagnostic code. Ranges:
//
//	1000-1999 lexical
//	2000-2999 syntax
//	3000-3499 type checking
//	3500-3999 declarations
type Code uint16

const (
	UnknownCode Code = 0

	// Informational
	InfoTimings Code = 901

	// Lexical
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexBadSrcAnnotation         Code = 1005

	// Syntax
	SynUnexpectedToken  Code = 2001
	SynExpectIdentifier Code = 2002
	SynExpectExpression Code = 2003
	SynExpectLiteral    Code = 2004
	SynCaseAfterDefault Code = 2005
	SynDuplicateDefault Code = 2006
	SynSwitchNoCases    Code = 2007
	SynNestingTooDeep   Code = 2008
	SynMisplacedKeyword Code = 2009

	// Types
	TypeArityMismatch       Code = 3001
	TypeInvalidTypeName     Code = 3002
	TypeMismatch            Code = 3003
	TypeDuplicateCase       Code = 3004
	TypeUnexpectedValues    Code = 3005
	TypeExpectedSingleValue Code = 3006

	// Declarations
	DeclVarCountMismatch   Code = 3501
	DeclFunctionNotFound   Code = 3502
	DeclIdentifierNotFound Code = 3503
	DeclFunctionRedefined  Code = 3504
	DeclVariableRedeclared Code = 3505
)

const (
	lexBase  Code = 1000
	synBase  Code = 2000
	typeBase Code = 3000
	declBase Code = 3500
	codeEnd  Code = 4000
)

// ID returns a short stable textual identifier, e.g. "RILL3001".
func (c Code) ID() string {
	return fmt.Sprintf("RILL%04d", uint16(c))
}

func (c Code) String() string {
	return c.ID()
}

// Kind is the user-facing classification of a diagnostic.
type Kind uint8

const (
	KindSyntaxError Kind = iota
	KindTypeError
	KindDeclarationError
	KindWarning
	KindInfo
)

func (k Kind) String() string {
	switch k {
	case KindSyntaxError:
		return "SyntaxError"
	case KindTypeError:
		return "TypeError"
	case KindDeclarationError:
		return "DeclarationError"
	case KindWarning:
		return "Warning"
	case KindInfo:
		return "Info"
	}
	return "Unknown"
}

// kind maps a code range to a Kind; warning severity overrides it.
func (c Code) kind() Kind {
	switch {
	case c >= declBase && c < codeEnd:
		return KindDeclarationError
	case c >= typeBase:
		return KindTypeError
	default:
		return KindSyntaxError
	}
}
