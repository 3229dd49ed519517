package dialect

import (
	"fmt"

	"rill/internal/ast"
)

// Type is an opaque identifier interned in one dialect's type domain.
// The zero value means "no type".
type Type uint32

// NoType is the absent type.
const NoType Type = 0

// BuiltinFunction describes one primitive operation. Identity is by name
// within a single dialect.
type BuiltinFunction struct {
	Name    string
	Params  []Type
	Returns []Type
}

// Dialect is the capability the parser and analyzer consult. All methods are
// pure lookups.
type Dialect interface {
	// Name identifies the dialect in CLI output and cache keys.
	Name() string
	// Builtin resolves a builtin function by name.
	Builtin(name string) (*BuiltinFunction, bool)
	// DefaultType returns the type assigned to an unannotated literal of the
	// given kind, if the dialect declares one.
	DefaultType(kind ast.LiteralKind) (Type, bool)
	// LookupType resolves a written type name against the type domain.
	LookupType(name string) (Type, bool)
	// TypeName renders a domain type back to its source spelling.
	TypeName(t Type) string
	// Types lists the type domain in declaration order; empty for untyped
	// dialects.
	Types() []string
}

// Definition is the declarative form a dialect is built from, either in code
// or decoded from a TOML file.
type Definition struct {
	Name     string            `toml:"name"`
	Types    []string          `toml:"types"`
	Defaults map[string]string `toml:"defaults"` // literal kind -> type name
	Builtins []BuiltinDef      `toml:"builtin"`
}

// BuiltinDef declares one builtin with type names instead of interned ids.
type BuiltinDef struct {
	Name    string   `toml:"name"`
	Params  []string `toml:"params"`
	Returns []string `toml:"returns"`
}

// table is the single Dialect implementation; every variant is a frozen table.
type table struct {
	name     string
	typeList []string
	types    map[string]Type
	defaults map[ast.LiteralKind]Type
	builtins map[string]*BuiltinFunction
}

var literalKinds = map[string]ast.LiteralKind{
	"number": ast.LiteralNumber,
	"bool":   ast.LiteralBool,
	"string": ast.LiteralString,
}

// Define validates a Definition and freezes it into a Dialect.
func Define(def Definition) (Dialect, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("dialect: missing name")
	}
	t := &table{
		name:     def.Name,
		typeList: make([]string, 0, len(def.Types)),
		types:    make(map[string]Type, len(def.Types)),
		defaults: make(map[ast.LiteralKind]Type, len(def.Defaults)),
		builtins: make(map[string]*BuiltinFunction, len(def.Builtins)),
	}

	for _, name := range def.Types {
		if name == "" {
			return nil, fmt.Errorf("dialect %q: empty type name", def.Name)
		}
		if _, dup := t.types[name]; dup {
			return nil, fmt.Errorf("dialect %q: duplicate type %q", def.Name, name)
		}
		t.typeList = append(t.typeList, name)
		t.types[name] = Type(len(t.typeList)) // ids start at 1; 0 is NoType
	}

	for kindName, typeName := range def.Defaults {
		kind, ok := literalKinds[kindName]
		if !ok {
			return nil, fmt.Errorf("dialect %q: unknown literal kind %q", def.Name, kindName)
		}
		ty, ok := t.types[typeName]
		if !ok {
			return nil, fmt.Errorf("dialect %q: default for %q names unknown type %q", def.Name, kindName, typeName)
		}
		t.defaults[kind] = ty
	}

	for _, b := range def.Builtins {
		if b.Name == "" {
			return nil, fmt.Errorf("dialect %q: builtin with empty name", def.Name)
		}
		if _, dup := t.builtins[b.Name]; dup {
			return nil, fmt.Errorf("dialect %q: duplicate builtin %q", def.Name, b.Name)
		}
		fn := &BuiltinFunction{Name: b.Name}
		var err error
		if fn.Params, err = t.resolveAll(b.Params); err != nil {
			return nil, fmt.Errorf("dialect %q: builtin %q: %w", def.Name, b.Name, err)
		}
		if fn.Returns, err = t.resolveAll(b.Returns); err != nil {
			return nil, fmt.Errorf("dialect %q: builtin %q: %w", def.Name, b.Name, err)
		}
		t.builtins[b.Name] = fn
	}
	return t, nil
}

// MustDefine is Define for static, known-good definitions.
func MustDefine(def Definition) Dialect {
	d, err := Define(def)
	if err != nil {
		panic(err)
	}
	return d
}

func (t *table) resolveAll(names []string) ([]Type, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := make([]Type, len(names))
	for i, name := range names {
		ty, ok := t.types[name]
		if !ok {
			return nil, fmt.Errorf("unknown type %q", name)
		}
		out[i] = ty
	}
	return out, nil
}

func (t *table) Name() string { return t.name }

func (t *table) Builtin(name string) (*BuiltinFunction, bool) {
	fn, ok := t.builtins[name]
	return fn, ok
}

func (t *table) DefaultType(kind ast.LiteralKind) (Type, bool) {
	ty, ok := t.defaults[kind]
	return ty, ok
}

func (t *table) LookupType(name string) (Type, bool) {
	ty, ok := t.types[name]
	return ty, ok
}

func (t *table) TypeName(ty Type) string {
	if ty == NoType || int(ty) > len(t.typeList) {
		return ""
	}
	return t.typeList[ty-1]
}

func (t *table) Types() []string {
	return t.typeList
}
