package diag

import (
	"testing"

	"rill/internal/source"
)

func TestBagAddAndCap(t *testing.T) {
	b := NewBag(2)
	sp := source.Span{File: 0, Start: 0, End: 1}

	if !b.Add(NewError(SynUnexpectedToken, sp, "one")) {
		t.Fatalf("first add rejected")
	}
	if !b.Add(NewError(SynUnexpectedToken, sp, "two")) {
		t.Fatalf("second add rejected")
	}
	if b.Add(NewError(SynUnexpectedToken, sp, "three")) {
		t.Fatalf("cap not enforced")
	}
	if b.Len() != 2 {
		t.Errorf("Len: got %d, want 2", b.Len())
	}
}

func TestBagHasErrorsAndWarnings(t *testing.T) {
	b := NewBag(8)
	sp := source.Span{}

	b.Add(New(SevWarning, SynSwitchNoCases, sp, "warn"))
	if b.HasErrors() {
		t.Errorf("warning must not count as error")
	}
	if !b.HasWarnings() {
		t.Errorf("expected HasWarnings")
	}

	b.Add(NewError(TypeArityMismatch, sp, "err"))
	if !b.HasErrors() {
		t.Errorf("expected HasErrors")
	}
	if b.ErrorCount() != 1 {
		t.Errorf("ErrorCount: got %d, want 1", b.ErrorCount())
	}
}

func TestDiagnosticKind(t *testing.T) {
	tests := []struct {
		name string
		d    Diagnostic
		want Kind
	}{
		{"lex code is syntax", NewError(LexUnknownChar, source.Span{}, ""), KindSyntaxError},
		{"syn code is syntax", NewError(SynUnexpectedToken, source.Span{}, ""), KindSyntaxError},
		{"type code", NewError(TypeArityMismatch, source.Span{}, ""), KindTypeError},
		{"decl code", NewError(DeclVarCountMismatch, source.Span{}, ""), KindDeclarationError},
		{"warning severity wins", New(SevWarning, TypeArityMismatch, source.Span{}, ""), KindWarning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.Kind(); got != tt.want {
				t.Errorf("Kind: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBagSortDeterministic(t *testing.T) {
	b := NewBag(8)
	b.Add(NewError(TypeMismatch, source.Span{File: 1, Start: 5, End: 6}, "b"))
	b.Add(NewError(SynUnexpectedToken, source.Span{File: 0, Start: 9, End: 10}, "a"))
	b.Add(New(SevWarning, SynSwitchNoCases, source.Span{File: 0, Start: 2, End: 3}, "w"))
	b.Sort()

	items := b.Items()
	if items[0].Message != "w" || items[1].Message != "a" || items[2].Message != "b" {
		t.Errorf("unexpected order: %q %q %q", items[0].Message, items[1].Message, items[2].Message)
	}
}
