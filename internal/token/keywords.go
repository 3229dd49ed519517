package token

var keywords = map[string]Kind{
	"let":      KwLet,
	"if":       KwIf,
	"switch":   KwSwitch,
	"case":     KwCase,
	"default":  KwDefault,
	"function": KwFunction,
	"for":      KwFor,
	"break":    KwBreak,
	"continue": KwContinue,
	"leave":    KwLeave,
	"true":     KwTrue,
	"false":    KwFalse,
}

// LookupKeyword returns the keyword kind for ident, if it is one.
// Keywords are case-sensitive; only lowercase spellings are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
