package lexer

import (
	"rill/internal/diag"
	"rill/internal/source"
)

// Options configure a Lexer. A nil Reporter silently drops lexical
// diagnostics; lexing continues either way.
type Options struct {
	Reporter diag.Reporter
}

func (lx *Lexer) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, sev, sp, msg, nil)
	}
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	lx.report(code, diag.SevError, sp, msg)
}
