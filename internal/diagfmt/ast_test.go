package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"rill/internal/diag"
	"rill/internal/dialect"
	"rill/internal/lexer"
	"rill/internal/parser"
	"rill/internal/source"
)

func TestDumpAST(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.rl", []byte("/// @src 0:10:20\n{ let x := add(1, 2) if lt(x, 3) { pop(x) } }"))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	block, err := parser.ParseBlock(lx, dialect.Typed(), parser.Options{Reporter: diag.NopReporter{}})
	if err != nil || block == nil {
		t.Fatalf("parse failed: %v", err)
	}

	var buf bytes.Buffer
	DumpAST(&buf, block)
	want := `Block @src 0:10:20
  VariableDeclaration x @src 0:10:20
    FunctionCall add @src 0:10:20
      Literal 1 @src 0:10:20
      Literal 2 @src 0:10:20
  If @src 0:10:20
    FunctionCall lt @src 0:10:20
      Identifier x @src 0:10:20
      Literal 3 @src 0:10:20
    Block @src 0:10:20
      ExpressionStatement @src 0:10:20
        FunctionCall pop @src 0:10:20
          Identifier x @src 0:10:20
`
	if buf.String() != want {
		t.Errorf("dump:\n got %q\nwant %q", buf.String(), want)
	}
}

func TestASTJSON(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.rl", []byte("{ let x := 1 }"))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	block, err := parser.ParseBlock(lx, dialect.Untyped(), parser.Options{})
	if err != nil || block == nil {
		t.Fatalf("parse failed: %v", err)
	}

	var buf bytes.Buffer
	if err := ASTJSON(&buf, block); err != nil {
		t.Fatalf("ASTJSON: %v", err)
	}
	var root ASTNodeJSON
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if root.Kind != "Block" || len(root.Children) != 1 {
		t.Fatalf("root: %+v", root)
	}
	decl := root.Children[0]
	if decl.Kind != "VariableDeclaration" || decl.Name != "x" {
		t.Errorf("decl: %+v", decl)
	}
	if len(decl.Children) != 1 || decl.Children[0].Kind != "Literal" || decl.Children[0].Value != "1" {
		t.Errorf("literal: %+v", decl.Children)
	}
}
