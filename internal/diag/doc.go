// Package diag defines the diagnostic model shared by the lexer, parser and
// analyzer: severities, stable numeric codes, the four user-facing kinds
// (syntax, type, declaration, warning), and the append-only Bag that one
// front-end run accumulates diagnostics into.
//
// A Bag is exclusively owned by one in-flight parse/check; phases report
// through the Reporter interface so independent runs stay isolated.
package diag
