package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwSwitch represents the 'switch' keyword.
	KwSwitch // switch
	// KwCase represents the 'case' keyword.
	KwCase // case
	// KwDefault represents the 'default' keyword.
	KwDefault // default
	// KwFunction represents the 'function' keyword.
	KwFunction // function
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwLeave represents the 'leave' keyword.
	KwLeave // leave
	// KwTrue represents the 'true' literal keyword.
	KwTrue // true
	// KwFalse represents the 'false' literal keyword.
	KwFalse // false

	// IntLit represents a decimal or hexadecimal number literal.
	IntLit
	// StringLit represents a string literal.
	StringLit

	// LBrace represents '{'.
	LBrace // {
	// RBrace represents '}'.
	RBrace // }
	// LParen represents '('.
	LParen // (
	// RParen represents ')'.
	RParen // )
	// Comma represents ','.
	Comma // ,
	// Colon represents ':'.
	Colon // :
	// ColonAssign represents ':='.
	ColonAssign // :=
	// Arrow represents '->'.
	Arrow // ->
)

var kindNames = [...]string{
	Invalid:     "invalid",
	EOF:         "end of file",
	Ident:       "identifier",
	KwLet:       "let",
	KwIf:        "if",
	KwSwitch:    "switch",
	KwCase:      "case",
	KwDefault:   "default",
	KwFunction:  "function",
	KwFor:       "for",
	KwBreak:     "break",
	KwContinue:  "continue",
	KwLeave:     "leave",
	KwTrue:      "true",
	KwFalse:     "false",
	IntLit:      "number",
	StringLit:   "string",
	LBrace:      "'{'",
	RBrace:      "'}'",
	LParen:      "'('",
	RParen:      "')'",
	Comma:       "','",
	Colon:       "':'",
	ColonAssign: "':='",
	Arrow:       "'->'",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}
