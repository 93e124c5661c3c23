// Package checker implements the Seal structural type-checking
// pipeline: the satisfies assignability relation, flow-sensitive
// narrowing, and the scoped TopLevelChecker/FunctionChecker/
// ClassChecker/BaseChecker family that walks a parsed program and
// produces diagnostics.
package checker

import (
	"github.com/funvibe/sealcheck/internal/symbols"
	"github.com/funvibe/sealcheck/internal/types"
)

// Binding is one declared name's checker-visible state: its declared
// type, its currently narrowed type (initially equal to Declared, and
// re-set by the Narrower inside an `if`'s then/else branches), whether
// it was declared const, and whether it has been assigned yet (for
// UsedBeforeAssigned).
type Binding struct {
	Symbol   symbols.Symbol
	Declared types.Ty
	Current  types.Ty
	Const    bool
	Assigned bool
}

// Scope is the checker's own nested lexical scope chain, pushed and
// popped in lockstep with the AST shapes that open a new scope (block,
// function body, class body, catch clause). It is keyed by plain name
// rather than the full (name, ast scope id) Symbol pair: the AST scope
// id only needs to be unique enough to keep two declarations of the
// same name in sibling scopes from colliding in a Symbol-keyed map
// elsewhere (e.g. the Narrower's guard subject); ordinary identifier
// resolution still walks outward through enclosing scopes by name,
// same as in the source language.
type Scope struct {
	id       symbols.Scope
	parent   *Scope
	bindings map[string]*Binding
}

// NewScope opens a fresh, empty scope with the given parent (nil for
// the top-level program scope).
func NewScope(id symbols.Scope, parent *Scope) *Scope {
	return &Scope{id: id, parent: parent, bindings: make(map[string]*Binding)}
}

// Declare binds name in this scope, shadowing any outer binding of the
// same name for the rest of this scope's lifetime.
func (s *Scope) Declare(name string, b *Binding) {
	s.bindings[name] = b
}

// Resolve walks outward from this scope looking for name, returning the
// nearest enclosing Binding.
func (s *Scope) Resolve(name string) (*Binding, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if b, ok := sc.bindings[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// Clone deep-copies this scope's own bindings (each Binding value, not
// just the map) while keeping the same parent pointer, so that
// checking one branch of an `if`/loop can narrow or reassign bindings
// without those changes leaking into a sibling branch checked from the
// same starting scope. This is the "scope-cloning checker model":
// branches never share Binding pointers once cloned.
func (s *Scope) Clone() *Scope {
	nb := make(map[string]*Binding, len(s.bindings))
	for k, v := range s.bindings {
		cp := *v
		nb[k] = &cp
	}
	return &Scope{id: s.id, parent: s.parent, bindings: nb}
}

// Child opens a new scope nested directly inside s.
func (s *Scope) Child(id symbols.Scope) *Scope {
	return NewScope(id, s)
}
