package ast

import "fmt"

// SourceLocation is the debug location written by an @src annotation.
// Source indexes one registered source unit of a multi-source program;
// Start and End are byte offsets into that unit.
type SourceLocation struct {
	Source uint32
	Start  uint32
	End    uint32
}

func (l SourceLocation) String() string {
	return fmt.Sprintf("%d:%d:%d", l.Source, l.Start, l.End)
}

// DebugData wraps a SourceLocation. Instances are created once, never
// mutated, and shared by pointer among all nodes parsed under the same
// annotation.
type DebugData struct {
	Location SourceLocation
}

// NewDebugData creates an immutable DebugData handle.
func NewDebugData(loc SourceLocation) *DebugData {
	return &DebugData{Location: loc}
}
