// Package ast defines the rill syntax tree: a closed set of statement and
// expression kinds consumed with exhaustive type switches by the analyzer
// and the printer.
//
// Every node carries the native span of the tokens it was parsed from and an
// optional *DebugData with the location named by the nearest preceding
// /// @src annotation. DebugData values are immutable and deliberately shared:
// all nodes created between two annotations hold the same pointer.
package ast
