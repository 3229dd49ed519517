// Package token defines the lexical vocabulary of the rill intermediate
// language: token kinds, source-anchored tokens, and the trivia channel
// (whitespace, comments, and /// @src debug annotations) collected by the
// lexer ahead of every significant token.
package token
