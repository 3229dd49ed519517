package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"rill/internal/diag"
	"rill/internal/source"
)

func testBag(t *testing.T, src string) (*diag.Bag, *source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.rl", []byte(src))
	return &diag.Bag{}, fs, id
}

func TestPrettyBasicLayout(t *testing.T) {
	bag, fs, id := testBag(t, "{ let x := f() }\n")
	bag.Add(diag.NewError(diag.DeclFunctionNotFound,
		source.Span{File: id, Start: 11, End: 12}, `Function "f" not found.`))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	got := buf.String()
	want := "demo.rl:1:12: ERROR RILL3502: Function \"f\" not found.\n" +
		"    { let x := f() }\n" +
		"    " + strings.Repeat(" ", 11) + "^\n"
	if got != want {
		t.Errorf("pretty:\n got %q\nwant %q", got, want)
	}
}

func TestPrettyMultiLineAndUnderline(t *testing.T) {
	bag, fs, id := testBag(t, "{\nlet value := missing(1)\n}\n")
	// Underline the callee name on line 2.
	bag.Add(diag.NewError(diag.DeclFunctionNotFound,
		source.Span{File: id, Start: 15, End: 22}, `Function "missing" not found.`))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	got := buf.String()
	if !strings.Contains(got, "demo.rl:2:14:") {
		t.Errorf("position missing: %q", got)
	}
	marker := "    " + strings.Repeat(" ", 13) + "^~~~~~~"
	if !strings.Contains(got, "    let value := missing(1)\n"+marker+"\n") {
		t.Errorf("underline misaligned:\n%q", got)
	}
}

func TestPrettyContextLines(t *testing.T) {
	bag, fs, id := testBag(t, "{\nlet a := 1\nlet b := c\n}\n")
	bag.Add(diag.NewError(diag.DeclIdentifierNotFound,
		source.Span{File: id, Start: 22, End: 23}, `Identifier "c" not found.`))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1})
	got := buf.String()
	if !strings.Contains(got, "    let a := 1\n    let b := c\n") {
		t.Errorf("context line missing:\n%q", got)
	}
}

func TestPrettyNotes(t *testing.T) {
	bag, fs, id := testBag(t, "{ }\n")
	d := diag.NewError(diag.DeclFunctionRedefined,
		source.Span{File: id, Start: 0, End: 1}, `Function "f" already defined.`)
	d = d.WithNote(source.Span{File: id, Start: 2, End: 3}, "first definition here")
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	if !strings.Contains(buf.String(), "  note: demo.rl:1:3: first definition here\n") {
		t.Errorf("note missing:\n%q", buf.String())
	}
}

func TestJSONOutput(t *testing.T) {
	bag, fs, id := testBag(t, "{ let x := f() }\n")
	bag.Add(diag.NewError(diag.DeclFunctionNotFound,
		source.Span{File: id, Start: 11, End: 12}, `Function "f" not found.`))
	bag.Add(diag.New(diag.SevWarning, diag.SynSwitchNoCases,
		source.Span{File: id, Start: 0, End: 1}, `"switch" statement has no cases.`))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("count: got %d", out.Count)
	}
	first := out.Diagnostics[0]
	if first.Code != "RILL3502" || first.Kind != "DeclarationError" || first.Severity != "ERROR" {
		t.Errorf("first diagnostic: %+v", first)
	}
	if first.Location.File != "demo.rl" || first.Location.StartLine != 1 || first.Location.StartCol != 12 {
		t.Errorf("location: %+v", first.Location)
	}
	if out.Diagnostics[1].Kind != "Warning" {
		t.Errorf("second kind: %q", out.Diagnostics[1].Kind)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	bag, fs, id := testBag(t, "{ }\n")
	for range 5 {
		bag.Add(diag.NewError(diag.SynUnexpectedToken,
			source.Span{File: id, Start: 0, End: 1}, "x"))
	}
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Errorf("truncation: got %d diagnostics", len(out.Diagnostics))
	}
}
