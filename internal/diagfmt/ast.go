package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"rill/internal/ast"
)

// DumpAST renders a parsed block as an indented tree, one node per line.
// Debug locations are shown as @src s:start:end where present.
func DumpAST(w io.Writer, block *ast.Block) {
	d := astDumper{w: w}
	d.block(block, 0)
}

type astDumper struct {
	w io.Writer
}

func (d *astDumper) line(depth int, format string, args ...any) {
	fmt.Fprintf(d.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (d *astDumper) block(b *ast.Block, depth int) {
	d.line(depth, "Block%s", debugSuffix(b.Debug))
	for _, st := range b.Statements {
		d.stmt(st, depth+1)
	}
}

func (d *astDumper) stmt(st ast.Stmt, depth int) {
	switch st := st.(type) {
	case *ast.Block:
		d.block(st, depth)
	case *ast.VariableDeclaration:
		names := make([]string, len(st.Variables))
		for i, v := range st.Variables {
			names[i] = typedName(v)
		}
		d.line(depth, "VariableDeclaration %s%s", strings.Join(names, ", "), debugSuffix(st.Debug))
		if st.Value != nil {
			d.expr(st.Value, depth+1)
		}
	case *ast.Assignment:
		names := make([]string, len(st.Targets))
		for i, t := range st.Targets {
			names[i] = t.Name
		}
		d.line(depth, "Assignment %s%s", strings.Join(names, ", "), debugSuffix(st.Debug))
		d.expr(st.Value, depth+1)
	case *ast.ExpressionStatement:
		d.line(depth, "ExpressionStatement%s", debugSuffix(st.Debug))
		d.expr(st.Expression, depth+1)
	case *ast.If:
		d.line(depth, "If%s", debugSuffix(st.Debug))
		d.expr(st.Condition, depth+1)
		d.block(st.Body, depth+1)
	case *ast.Switch:
		d.line(depth, "Switch%s", debugSuffix(st.Debug))
		d.expr(st.Expression, depth+1)
		for i := range st.Cases {
			c := st.Cases[i]
			if c.Value == nil {
				d.line(depth+1, "Default%s", debugSuffix(c.Debug))
			} else {
				d.line(depth+1, "Case %s%s", literalString(c.Value), debugSuffix(c.Debug))
			}
			d.block(c.Body, depth+2)
		}
	case *ast.FunctionDefinition:
		params := make([]string, len(st.Parameters))
		for i, p := range st.Parameters {
			params[i] = typedName(p)
		}
		rets := make([]string, len(st.Returns))
		for i, r := range st.Returns {
			rets[i] = typedName(r)
		}
		sig := st.Name + "(" + strings.Join(params, ", ") + ")"
		if len(rets) > 0 {
			sig += " -> " + strings.Join(rets, ", ")
		}
		d.line(depth, "FunctionDefinition %s%s", sig, debugSuffix(st.Debug))
		d.block(st.Body, depth+1)
	case *ast.ForLoop:
		d.line(depth, "ForLoop%s", debugSuffix(st.Debug))
		d.block(st.Pre, depth+1)
		d.expr(st.Condition, depth+1)
		d.block(st.Post, depth+1)
		d.block(st.Body, depth+1)
	case *ast.Break:
		d.line(depth, "Break%s", debugSuffix(st.Debug))
	case *ast.Continue:
		d.line(depth, "Continue%s", debugSuffix(st.Debug))
	case *ast.Leave:
		d.line(depth, "Leave%s", debugSuffix(st.Debug))
	}
}

func (d *astDumper) expr(e ast.Expr, depth int) {
	switch e := e.(type) {
	case *ast.Literal:
		d.line(depth, "Literal %s%s", literalString(e), debugSuffix(e.Debug))
	case *ast.Identifier:
		d.line(depth, "Identifier %s%s", e.Name, debugSuffix(e.Debug))
	case *ast.FunctionCall:
		d.line(depth, "FunctionCall %s%s", e.Func.Name, debugSuffix(e.Debug))
		for _, arg := range e.Args {
			d.expr(arg, depth+1)
		}
	}
}

func typedName(tn ast.TypedName) string {
	if tn.Type == "" {
		return tn.Name
	}
	return tn.Name + ":" + tn.Type
}

func literalString(lit *ast.Literal) string {
	v := lit.Value
	if lit.Kind == ast.LiteralString {
		v = "\"" + v + "\""
	}
	if lit.Type != "" {
		v += ":" + lit.Type
	}
	return v
}

func debugSuffix(d *ast.DebugData) string {
	if d == nil {
		return ""
	}
	return fmt.Sprintf(" @src %d:%d:%d", d.Location.Source, d.Location.Start, d.Location.End)
}

// ASTNodeJSON is one AST node in JSON output; the structure mirrors the tree
// dump.
type ASTNodeJSON struct {
	Kind     string        `json:"kind"`
	Name     string        `json:"name,omitempty"`
	Value    string        `json:"value,omitempty"`
	Type     string        `json:"type,omitempty"`
	Debug    string        `json:"debug,omitempty"`
	Children []ASTNodeJSON `json:"children,omitempty"`
}

// ASTJSON serializes a parsed block as a JSON tree.
func ASTJSON(w io.Writer, block *ast.Block) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(astNodeJSON(block))
}

func astNodeJSON(n any) ASTNodeJSON {
	out := ASTNodeJSON{}
	if d := ast.DebugOf(n); d != nil {
		out.Debug = fmt.Sprintf("%d:%d:%d", d.Location.Source, d.Location.Start, d.Location.End)
	}
	switch n := n.(type) {
	case *ast.Block:
		out.Kind = "Block"
		for _, st := range n.Statements {
			out.Children = append(out.Children, astNodeJSON(st))
		}
	case *ast.VariableDeclaration:
		out.Kind = "VariableDeclaration"
		names := make([]string, len(n.Variables))
		for i, v := range n.Variables {
			names[i] = typedName(v)
		}
		out.Name = strings.Join(names, ", ")
		if n.Value != nil {
			out.Children = append(out.Children, astNodeJSON(n.Value))
		}
	case *ast.Assignment:
		out.Kind = "Assignment"
		names := make([]string, len(n.Targets))
		for i, t := range n.Targets {
			names[i] = t.Name
		}
		out.Name = strings.Join(names, ", ")
		out.Children = append(out.Children, astNodeJSON(n.Value))
	case *ast.ExpressionStatement:
		out.Kind = "ExpressionStatement"
		out.Children = append(out.Children, astNodeJSON(n.Expression))
	case *ast.If:
		out.Kind = "If"
		out.Children = append(out.Children, astNodeJSON(n.Condition), astNodeJSON(n.Body))
	case *ast.Switch:
		out.Kind = "Switch"
		out.Children = append(out.Children, astNodeJSON(n.Expression))
		for i := range n.Cases {
			c := n.Cases[i]
			child := ASTNodeJSON{Kind: "Case"}
			if c.Value == nil {
				child.Kind = "Default"
			} else {
				child.Value = c.Value.Value
				child.Type = c.Value.Type
			}
			if d := c.Debug; d != nil {
				child.Debug = fmt.Sprintf("%d:%d:%d", d.Location.Source, d.Location.Start, d.Location.End)
			}
			child.Children = append(child.Children, astNodeJSON(c.Body))
			out.Children = append(out.Children, child)
		}
	case *ast.FunctionDefinition:
		out.Kind = "FunctionDefinition"
		out.Name = n.Name
		out.Children = append(out.Children, astNodeJSON(n.Body))
	case *ast.ForLoop:
		out.Kind = "ForLoop"
		out.Children = append(out.Children,
			astNodeJSON(n.Pre), astNodeJSON(n.Condition), astNodeJSON(n.Post), astNodeJSON(n.Body))
	case *ast.Break:
		out.Kind = "Break"
	case *ast.Continue:
		out.Kind = "Continue"
	case *ast.Leave:
		out.Kind = "Leave"
	case *ast.Literal:
		out.Kind = "Literal"
		out.Value = n.Value
		out.Type = n.Type
	case *ast.Identifier:
		out.Kind = "Identifier"
		out.Name = n.Name
	case *ast.FunctionCall:
		out.Kind = "FunctionCall"
		out.Name = n.Func.Name
		for _, arg := range n.Args {
			out.Children = append(out.Children, astNodeJSON(arg))
		}
	}
	return out
}
