package dialect

// typedInstance is the EVM-flavored typed dialect: a u256 word type (the
// default for numbers and strings) and a distinct bool produced by
// comparisons and consumed by conditions.
var typedInstance = MustDefine(Definition{
	Name:  "typed",
	Types: []string{"u256", "bool"},
	Defaults: map[string]string{
		"number": "u256",
		"bool":   "bool",
		"string": "u256",
	},
	Builtins: []BuiltinDef{
		{Name: "add", Params: []string{"u256", "u256"}, Returns: []string{"u256"}},
		{Name: "sub", Params: []string{"u256", "u256"}, Returns: []string{"u256"}},
		{Name: "mul", Params: []string{"u256", "u256"}, Returns: []string{"u256"}},
		{Name: "div", Params: []string{"u256", "u256"}, Returns: []string{"u256"}},
		{Name: "mod", Params: []string{"u256", "u256"}, Returns: []string{"u256"}},
		{Name: "lt", Params: []string{"u256", "u256"}, Returns: []string{"bool"}},
		{Name: "gt", Params: []string{"u256", "u256"}, Returns: []string{"bool"}},
		{Name: "eq", Params: []string{"u256", "u256"}, Returns: []string{"bool"}},
		{Name: "and", Params: []string{"bool", "bool"}, Returns: []string{"bool"}},
		{Name: "or", Params: []string{"bool", "bool"}, Returns: []string{"bool"}},
		{Name: "not", Params: []string{"bool"}, Returns: []string{"bool"}},
		{Name: "pop", Params: []string{"u256"}},
	},
})

// Typed returns the shared typed dialect.
func Typed() Dialect {
	return typedInstance
}
