package source

import (
	"testing"
)

func TestFileSetAddVirtual(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.rl", []byte("{ }\n"))

	f := fs.Get(id)
	if f == nil {
		t.Fatalf("expected file for id %d", id)
	}
	if f.Flags&FileVirtual == 0 {
		t.Errorf("expected FileVirtual flag")
	}
	if string(f.Content) != "{ }\n" {
		t.Errorf("content mismatch: %q", f.Content)
	}

	got, ok := fs.Lookup("test.rl")
	if !ok || got != id {
		t.Errorf("Lookup: got (%d, %v), want (%d, true)", got, ok, id)
	}
}

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("pos.rl", []byte("let x\nlet yy\n{ }"))

	tests := []struct {
		name string
		off  uint32
		want LineCol
	}{
		{"start of file", 0, LineCol{Line: 1, Col: 1}},
		{"middle of first line", 4, LineCol{Line: 1, Col: 5}},
		{"first newline", 5, LineCol{Line: 1, Col: 6}},
		{"start of second line", 6, LineCol{Line: 2, Col: 1}},
		{"start of third line", 13, LineCol{Line: 3, Col: 1}},
		{"last byte", 15, LineCol{Line: 3, Col: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
			if start != tt.want {
				t.Errorf("Resolve(%d): got %+v, want %+v", tt.off, start, tt.want)
			}
		})
	}
}

func TestNormalizeCRLF(t *testing.T) {
	got, changed := normalizeCRLF([]byte("a\r\nb\rc\n"))
	if !changed {
		t.Fatalf("expected change")
	}
	if string(got) != "a\nb\rc\n" {
		t.Errorf("got %q", got)
	}

	same, changed := normalizeCRLF([]byte("plain\n"))
	if changed || string(same) != "plain\n" {
		t.Errorf("expected pass-through, got %q (changed=%v)", same, changed)
	}
}
