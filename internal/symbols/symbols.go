// Package symbols implements binding identity: a Symbol pairs a name
// atom with the lexical scope it was declared in, and Def/DefId gives
// function and class declarations a dense, process-wide identity.
package symbols

import "github.com/google/uuid"

// Scope is the lexical scope identifier half of a Symbol. The parser
// mints one uuid.UUID per block, function body, class body, and catch
// clause it opens.
type Scope = uuid.UUID

// NewScope mints a fresh, collision-free lexical scope identity.
func NewScope() Scope {
	return uuid.New()
}

// Symbol pairs a name with the lexical scope that was open where the
// identifier appeared. The checker does not look bindings up by Symbol:
// it resolves names through its own scope chain (internal/checker.Scope)
// and keeps a Symbol on each binding as a label.
type Symbol struct {
	Name  string
	Scope Scope
}

// Reserved synthetic symbol names that never collide with user source,
// used internally by the checker to thread state through scopes without
// a real declaration (e.g. the enclosing function's return type).
const (
	MainName = "@main"
	RetName  = "@ret"
)

// NewMain returns the top-level program's synthetic @main symbol.
func NewMain(scope Scope) Symbol {
	return Symbol{Name: MainName, Scope: scope}
}

// NewRet returns the synthetic @ret symbol carrying a function's
// declared return type within its body's scope.
func NewRet(scope Scope) Symbol {
	return Symbol{Name: RetName, Scope: scope}
}

// DefId is a dense, process-wide integer identity for a function or
// class declaration, distinct from the lexical Symbol used to look the
// declaration up by name. Kept as a plain int per the data model: defs
// are registered once and never renamed or garbage collected within a
// single check run.
type DefId int

// DefKind distinguishes what a Def describes.
type DefKind int

const (
	DefFunction DefKind = iota
	DefClass
)

// Def is the registered payload behind a DefId: enough to recover which
// declaration produced it when a diagnostic needs to point back at it.
type Def struct {
	ID   DefId
	Kind DefKind
	Name string
}

// Registry hands out dense DefIds and stores their Def records. It is
// owned by a single check run (see internal/types.Context) and is never
// shared across concurrent runs.
type Registry struct {
	defs []Def
}

// NewRegistry returns an empty def registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers a new def and returns its fresh DefId.
func (r *Registry) Add(kind DefKind, name string) DefId {
	id := DefId(len(r.defs))
	r.defs = append(r.defs, Def{ID: id, Kind: kind, Name: name})
	return id
}

// Get looks up a previously registered Def by id. It panics if id is out
// of range: a DefId that doesn't resolve is an invariant violation, not
// a recoverable diagnostic.
func (r *Registry) Get(id DefId) Def {
	if int(id) < 0 || int(id) >= len(r.defs) {
		panic("symbols: DefId out of range")
	}
	return r.defs[id]
}

// Len reports how many defs have been registered so far.
func (r *Registry) Len() int {
	return len(r.defs)
}
