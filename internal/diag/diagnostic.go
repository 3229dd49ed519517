package diag

import (
	"rill/internal/source"
)

// Note attaches secondary context to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one classified message produced by a front-end phase.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// Kind returns the user-facing classification. Warning and info severities
// classify as KindWarning/KindInfo regardless of the code range.
func (d Diagnostic) Kind() Kind {
	switch d.Severity {
	case SevWarning:
		return KindWarning
	case SevInfo:
		return KindInfo
	}
	return d.Code.kind()
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
