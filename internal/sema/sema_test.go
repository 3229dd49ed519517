package sema

import (
	"testing"

	"rill/internal/ast"
	"rill/internal/diag"
	"rill/internal/dialect"
	"rill/internal/lexer"
	"rill/internal/parser"
	"rill/internal/source"
)

// multiReturn declares builtin(u256, u256) -> (u256, u256, u256) for the
// count-mismatch scenarios.
var multiReturn = dialect.MustDefine(dialect.Definition{
	Name:     "multi-return",
	Types:    []string{"u256"},
	Defaults: map[string]string{"number": "u256"},
	Builtins: []dialect.BuiltinDef{
		{
			Name:    "builtin",
			Params:  []string{"u256", "u256"},
			Returns: []string{"u256", "u256", "u256"},
		},
	},
})

func mustParseBlock(t *testing.T, src string, d dialect.Dialect) *ast.Block {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rl", []byte(src))
	bag := &diag.Bag{}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	block, err := parser.ParseBlock(lx, d, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if err != nil {
		t.Fatalf("internal fault: %v", err)
	}
	if block == nil {
		t.Fatalf("parse failed: %v", bag.Items())
	}
	return block
}

func analyzeSrc(t *testing.T, src string, d dialect.Dialect) (bool, *diag.Bag, *ast.Block) {
	t.Helper()
	block := mustParseBlock(t, src, d)
	bag := &diag.Bag{}
	ok, _ := Analyze(block, d, Options{Reporter: diag.BagReporter{Bag: bag}})
	return ok, bag, block
}

func TestAnalyzeValidPrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"arithmetic", "{ let x := add(1, 2) let y := mul(x, sub(x, 1)) }"},
		{"bool flow", "{ let x := 7 if lt(x, 10) { x := add(x, 1) } }"},
		{"explicit types", "{ let x:bool := true:bool let y:u256 := 1:u256 }"},
		{"discard", "{ pop(add(1, 2)) }"},
		{"switch", `{ let x := 1 switch x case 0 { } case 1 { } default { x := 0 } }`},
		{"function", "{ let r := double(2) function double(v) -> w { w := add(v, v) } }"},
		{"leave", "{ function f() -> r { r := 1 leave } pop(f()) }"},
		{"for loop", "{ for { let i := 0 } lt(i, 10) { i := add(i, 1) } { pop(i) } }"},
		{"nested scopes", "{ let x := 1 { let y := x } let z := x }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, bag, _ := analyzeSrc(t, tt.src, dialect.Typed())
			if !ok || bag.Len() != 0 {
				t.Errorf("expected clean analysis, got %v", bag.Items())
			}
		})
	}
}

func TestAnalyzeArityMismatch(t *testing.T) {
	ok, bag, _ := analyzeSrc(t, "{ let a, b, c := builtin(1) }", multiReturn)
	if ok {
		t.Fatalf("analysis must fail")
	}
	if bag.Len() != 1 {
		t.Fatalf("diagnostic count: got %d, want 1: %v", bag.Len(), bag.Items())
	}
	got := bag.Items()[0]
	if got.Kind() != diag.KindTypeError {
		t.Errorf("kind: got %v, want TypeError", got.Kind())
	}
	if want := `Function "builtin" expects 2 arguments but got 1`; got.Message != want {
		t.Errorf("message:\n got %q\nwant %q", got.Message, want)
	}
}

func TestAnalyzeDeclarationCountMismatch(t *testing.T) {
	ok, bag, _ := analyzeSrc(t, "{ let a, b := builtin(1, 2) }", multiReturn)
	if ok {
		t.Fatalf("analysis must fail")
	}
	if bag.Len() != 1 {
		t.Fatalf("diagnostic count: got %d, want 1: %v", bag.Len(), bag.Items())
	}
	got := bag.Items()[0]
	if got.Kind() != diag.KindDeclarationError {
		t.Errorf("kind: got %v, want DeclarationError", got.Kind())
	}
	if want := `Variable count mismatch for declaration of "a, b": 2 variables and 3 values.`; got.Message != want {
		t.Errorf("message:\n got %q\nwant %q", got.Message, want)
	}
}

func TestAnalyzeMessages(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind diag.Kind
		want string
	}{
		{
			name: "function not found",
			src:  "{ let x := keccak(1) }",
			kind: diag.KindDeclarationError,
			want: `Function "keccak" not found.`,
		},
		{
			name: "identifier not found",
			src:  "{ let x := add(y, 1) }",
			kind: diag.KindDeclarationError,
			want: `Identifier "y" not found.`,
		},
		{
			name: "invalid type name",
			src:  "{ let x:word := 1 }",
			kind: diag.KindTypeError,
			want: `"word" is not a valid type name.`,
		},
		{
			name: "condition type",
			src:  "{ let x := 1 if x { } }",
			kind: diag.KindTypeError,
			want: "Expected a value of type bool but got u256",
		},
		{
			name: "assignment count",
			src:  "{ let a := 1 a := f() function f() -> x, y { } }",
			kind: diag.KindDeclarationError,
			want: "Variable count does not match number of values (1 vs. 2)",
		},
		{
			name: "top-level value",
			src:  "{ add(1, 2) }",
			kind: diag.KindTypeError,
			want: `Top-level expressions are not supposed to return values (this expression returns 1 value). Use "pop()" or assign them.`,
		},
		{
			name: "duplicate case",
			src:  "{ let x := 1 switch x case 0 { } case 0 { } }",
			kind: diag.KindTypeError,
			want: "Duplicate case defined.",
		},
		{
			name: "duplicate case by value",
			src:  "{ let x := 1 switch x case 0x10 { } case 16 { } }",
			kind: diag.KindTypeError,
			want: "Duplicate case defined.",
		},
		{
			name: "variable redeclared",
			src:  "{ let x := 1 let x := 2 }",
			kind: diag.KindDeclarationError,
			want: `Variable "x" already declared in this scope.`,
		},
		{
			name: "function redefined",
			src:  "{ function f() { } function f() { } }",
			kind: diag.KindDeclarationError,
			want: `Function "f" already defined.`,
		},
		{
			name: "assignment type",
			src:  "{ let x := 1 x := true }",
			kind: diag.KindTypeError,
			want: "Expected a value of type u256 but got bool",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, bag, _ := analyzeSrc(t, tt.src, dialect.Typed())
			if ok {
				t.Fatalf("analysis must fail")
			}
			if bag.Len() != 1 {
				t.Fatalf("diagnostic count: got %d, want 1: %v", bag.Len(), bag.Items())
			}
			got := bag.Items()[0]
			if got.Kind() != tt.kind {
				t.Errorf("kind: got %v, want %v", got.Kind(), tt.kind)
			}
			if got.Message != tt.want {
				t.Errorf("message:\n got %q\nwant %q", got.Message, tt.want)
			}
		})
	}
}

func TestAnalyzeContinuesPastStatementErrors(t *testing.T) {
	// One failing statement does not mask diagnostics on its siblings.
	ok, bag, _ := analyzeSrc(t, "{ let x := f() let y := g() }", dialect.Typed())
	if ok {
		t.Fatalf("analysis must fail")
	}
	if bag.ErrorCount() != 2 {
		t.Fatalf("error count: got %d, want 2: %v", bag.ErrorCount(), bag.Items())
	}
}

func TestAnalyzeMaterializesDefaultTypes(t *testing.T) {
	ok, bag, block := analyzeSrc(t, "{ let x:bool := true let y := add(1, 2) }", dialect.Typed())
	if !ok {
		t.Fatalf("analysis failed: %v", bag.Items())
	}

	d0 := block.Statements[0].(*ast.VariableDeclaration)
	if d0.Variables[0].Type != "bool" {
		t.Errorf("x type: got %q, want bool", d0.Variables[0].Type)
	}
	if lit := d0.Value.(*ast.Literal); lit.Type != "bool" {
		t.Errorf("true literal type: got %q, want bool", lit.Type)
	}

	d1 := block.Statements[1].(*ast.VariableDeclaration)
	if d1.Variables[0].Type != "u256" {
		t.Errorf("y type: got %q, want u256", d1.Variables[0].Type)
	}
	call := d1.Value.(*ast.FunctionCall)
	for _, arg := range call.Args {
		if lit := arg.(*ast.Literal); lit.Type != "u256" {
			t.Errorf("argument literal type: got %q, want u256", lit.Type)
		}
	}
}

func TestAnalyzeUntypedLeavesTypesEmpty(t *testing.T) {
	ok, bag, block := analyzeSrc(t, "{ let x := 1 }", dialect.Untyped())
	if !ok || bag.Len() != 0 {
		t.Fatalf("expected clean analysis, got %v", bag.Items())
	}
	decl := block.Statements[0].(*ast.VariableDeclaration)
	if decl.Variables[0].Type != "" {
		t.Errorf("untyped dialect must not materialize types, got %q", decl.Variables[0].Type)
	}
	if lit := decl.Value.(*ast.Literal); lit.Type != "" {
		t.Errorf("untyped literal type: got %q", lit.Type)
	}
}

func TestAnalyzeUntypedKeepsWrittenAnnotations(t *testing.T) {
	// With an empty type domain any written annotation is opaque text, not a
	// name to resolve.
	ok, bag, block := analyzeSrc(t, "{ let x:foo := 1:bar }", dialect.Untyped())
	if !ok || bag.Len() != 0 {
		t.Fatalf("expected clean analysis, got %v", bag.Items())
	}
	decl := block.Statements[0].(*ast.VariableDeclaration)
	if got := decl.Variables[0].Type; got != "foo" {
		t.Errorf("declared annotation: got %q, want %q", got, "foo")
	}
	if got := decl.Value.(*ast.Literal).Type; got != "bar" {
		t.Errorf("literal annotation: got %q, want %q", got, "bar")
	}
}

func TestAnalyzeFunctionScoping(t *testing.T) {
	// Outer locals are invisible inside a function body.
	ok, bag, _ := analyzeSrc(t, "{ let x := 1 function f() -> r { r := x } }", dialect.Typed())
	if ok {
		t.Fatalf("analysis must fail")
	}
	if got := bag.Items()[0].Message; got != `Identifier "x" not found.` {
		t.Errorf("message: got %q", got)
	}

	// Functions remain callable across the boundary.
	ok, bag, _ = analyzeSrc(t, `{
		function outer() -> r { r := 1 }
		function caller() -> r { r := outer() }
		pop(caller())
	}`, dialect.Typed())
	if !ok {
		t.Fatalf("cross-function call failed: %v", bag.Items())
	}
}

func TestAnalyzeForLoopScoping(t *testing.T) {
	// Init declarations are visible in the condition, post, and body.
	ok, bag, _ := analyzeSrc(t,
		"{ for { let i := 0 } lt(i, 3) { i := add(i, 1) } { pop(i) } pop(i) }",
		dialect.Typed())
	if ok {
		t.Fatalf("analysis must fail: init scope must not leak past the loop")
	}
	if got := bag.Items()[0].Message; got != `Identifier "i" not found.` {
		t.Errorf("message: got %q", got)
	}
}

func TestAnalysisInfoRecordsCallTypes(t *testing.T) {
	block := mustParseBlock(t, "{ let x := add(1, 2) }", dialect.Typed())
	ok, info := Analyze(block, dialect.Typed(), Options{})
	if !ok {
		t.Fatalf("analysis failed")
	}
	call := block.Statements[0].(*ast.VariableDeclaration).Value.(*ast.FunctionCall)
	types := info.TypesOf(call)
	if len(types) != 1 || dialect.Typed().TypeName(types[0]) != "u256" {
		t.Errorf("call types: got %v", types)
	}
}
