package format

import (
	"testing"

	"rill/internal/ast"
	"rill/internal/diag"
	"rill/internal/dialect"
	"rill/internal/lexer"
	"rill/internal/parser"
	"rill/internal/sema"
	"rill/internal/source"
)

func parseAndAnalyze(t *testing.T, src string, d dialect.Dialect) *ast.Block {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rl", []byte(src))
	bag := &diag.Bag{}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	block, err := parser.ParseBlock(lx, d, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if err != nil || block == nil {
		t.Fatalf("parse failed: %v %v", err, bag.Items())
	}
	if ok, _ := sema.Analyze(block, d, sema.Options{Reporter: diag.BagReporter{Bag: bag}}); !ok {
		t.Fatalf("analysis failed: %v", bag.Items())
	}
	return block
}

func TestPrintDefaultTypesExplicitWithoutDialect(t *testing.T) {
	block := parseAndAnalyze(t,
		"{ let x:bool := true let z:bool := true let y := add(1, 2) }",
		dialect.Typed())

	// No dialect: every materialized annotation is rendered.
	got := string(Print(block, nil, Options{}))
	want := `{
    let x:bool := true:bool
    let z:bool := true:bool
    let y:u256 := add(1:u256, 2:u256)
}
`
	if got != want {
		t.Errorf("dialect-less print:\n got %q\nwant %q", got, want)
	}

	// Same dialect: every annotation equal to the default disappears again.
	got = string(Print(block, dialect.Typed(), Options{}))
	want = `{
    let x:bool := true
    let z:bool := true
    let y := add(1, 2)
}
`
	if got != want {
		t.Errorf("typed print:\n got %q\nwant %q", got, want)
	}
}

func TestPrintSwitch(t *testing.T) {
	block := parseAndAnalyze(t,
		"{ let y := 0 switch y case 0 { } default { } }",
		dialect.Typed())

	got := string(Print(block, nil, Options{}))
	want := `{
    let y:u256 := 0:u256
    switch y
    case 0:u256 { }
    default { }
}
`
	if got != want {
		t.Errorf("print:\n got %q\nwant %q", got, want)
	}
}

func TestPrintStatements(t *testing.T) {
	src := `{
    let x := 7
    x := add(x, 1)
    if lt(x, 10) {
        pop(x)
    }
    function f(a, b) -> r {
        r := add(a, b)
        leave
    }
    for {
        let i := 0
    } lt(i, x) {
        i := add(i, 1)
    } {
        break
    }
    { }
}
`
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rl", []byte(src))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	block, err := parser.ParseBlock(lx, dialect.Typed(), parser.Options{})
	if err != nil || block == nil {
		t.Fatalf("parse failed: %v", err)
	}

	// Without analysis no types are materialized, so the typed and the
	// dialect-less rendering agree and reproduce the canonical layout.
	if got := string(Print(block, nil, Options{})); got != src {
		t.Errorf("print:\n got %q\nwant %q", got, src)
	}
}

func TestPrintUsesTabsWhenAsked(t *testing.T) {
	block := parseAndAnalyze(t, "{ let x := 1 }", dialect.Untyped())
	got := string(Print(block, nil, Options{UseTabs: true}))
	if got != "{\n\tlet x := 1\n}\n" {
		t.Errorf("tab print: got %q", got)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"statements", "{ let x := 1 x := add(x, 1) pop(x) }"},
		{"nested", "{ { let a := 1 { let b := a } } }"},
		{"switch", `{ let x := 1 switch x case 0 { } case "s" { pop(x) } default { } }`},
		{"function", "{ function f(a:u256) -> r:bool { r := lt(a, 2) } pop(a_caller(1)) function a_caller(v) -> w { w := v } }"},
		{"loop", "{ for { let i := 0 } lt(i, 3) { i := add(i, 1) } { if eq(i, 1) { continue } break } }"},
		{"strings", `{ let s := "he\"llo" }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := parseAndAnalyze(t, tt.src, dialect.Typed())
			if ok, msg := CheckRoundTrip(block, dialect.Typed(), Options{}); !ok {
				t.Errorf("round-trip failed: %s", msg)
			}
			if ok, msg := CheckRoundTrip(block, nil, Options{}); !ok {
				t.Errorf("dialect-less round-trip failed: %s", msg)
			}
		})
	}
}
