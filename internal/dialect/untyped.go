package dialect

// untypedInstance has an empty type domain and no builtins: every call must
// resolve to a user-defined function and no annotation is ever required.
var untypedInstance = MustDefine(Definition{Name: "untyped"})

// Untyped returns the shared untyped dialect.
func Untyped() Dialect {
	return untypedInstance
}
