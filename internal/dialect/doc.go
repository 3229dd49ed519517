// Package dialect describes what a rill flavor provides to the front end:
// which builtin functions exist with which parameter and return types, which
// type names form the type domain, and which defaults untyped literals take.
//
// A Dialect is a pure lookup surface. Instances are immutable after
// construction and safe to share across any number of concurrent parses and
// analyses.
package dialect
