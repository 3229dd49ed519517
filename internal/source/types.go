package source

import "path/filepath"

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about how a source file was loaded.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// FormatPath renders the file path for display. Mode is one of "absolute",
// "relative", "basename", or "auto"; base is only consulted for "relative".
// Virtual files always display their given name.
func (f *File) FormatPath(mode, base string) string {
	if f.Flags&FileVirtual != 0 {
		return f.Path
	}
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return abs
		}
	case "relative":
		if base != "" {
			if rel, err := filepath.Rel(base, f.Path); err == nil {
				return rel
			}
		}
	case "basename":
		return filepath.Base(f.Path)
	}
	return f.Path
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
