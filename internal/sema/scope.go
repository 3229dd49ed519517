package sema

import "rill/internal/dialect"

// signature is a resolved function signature, shared between the hoisting
// pass and call-site checking.
type signature struct {
	params  []dialect.Type
	returns []dialect.Type
}

// scope is one lexical nesting level. Variable lookups stop at a function
// boundary; function lookups cross it, so inner functions may call outer ones.
type scope struct {
	parent     *scope
	vars       map[string]dialect.Type
	funcs      map[string]*signature
	fnBoundary bool
}

func newScope(parent *scope, fnBoundary bool) *scope {
	return &scope{
		parent:     parent,
		vars:       make(map[string]dialect.Type),
		funcs:      make(map[string]*signature),
		fnBoundary: fnBoundary,
	}
}

// defineVar registers a variable; false means the name is already taken in
// this scope.
func (s *scope) defineVar(name string, ty dialect.Type) bool {
	if _, dup := s.vars[name]; dup {
		return false
	}
	s.vars[name] = ty
	return true
}

// lookupVar resolves a variable through enclosing scopes without crossing a
// function boundary.
func (s *scope) lookupVar(name string) (dialect.Type, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if ty, ok := cur.vars[name]; ok {
			return ty, true
		}
		if cur.fnBoundary {
			break
		}
	}
	return dialect.NoType, false
}

func (s *scope) defineFunc(name string, sig *signature) bool {
	if _, dup := s.funcs[name]; dup {
		return false
	}
	s.funcs[name] = sig
	return true
}

// lookupFunc resolves a user-defined function through all enclosing scopes.
func (s *scope) lookupFunc(name string) (*signature, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if sig, ok := cur.funcs[name]; ok {
			return sig, true
		}
	}
	return nil, false
}
