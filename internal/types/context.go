package types

import "github.com/funvibe/sealcheck/internal/symbols"

// Context owns the single Interner and def Registry for one check run.
// It is the one piece of interior-mutable state the whole checker
// pipeline shares at this level; bindings are owned per scope, and
// diagnostics by the checker run, in internal/checker.
type Context struct {
	Interner  *Interner
	Defs      *symbols.Registry
	Constants *Constants

	defTypes map[symbols.DefId]Ty
}

// NewContext builds a fresh, empty Context with its own Interner and
// def Registry, then seeds Constants against it.
func NewContext() *Context {
	ctx := &Context{
		Interner: NewInterner(),
		Defs:     symbols.NewRegistry(),
		defTypes: make(map[symbols.DefId]Ty),
	}
	ctx.Constants = newConstants(ctx)
	return ctx
}

// AddDef registers a function or class declaration and records its
// resolved Ty, returning the fresh DefId assigned to it.
func (c *Context) AddDef(kind symbols.DefKind, name string, ty Ty) symbols.DefId {
	id := c.Defs.Add(kind, name)
	c.defTypes[id] = ty
	return id
}

// SetDefType updates the Ty recorded for an already-registered DefId,
// used once the declaration's type has been built.
func (c *Context) SetDefType(id symbols.DefId, ty Ty) {
	c.defTypes[id] = ty
}

// GetDefType returns the Ty registered for a DefId. It panics if the id
// was never registered: every DefId in circulation must have been
// produced by AddDef on this same Context.
func (c *Context) GetDefType(id symbols.DefId) Ty {
	ty, ok := c.defTypes[id]
	if !ok {
		panic("types: unregistered DefId")
	}
	return ty
}

// Resolve follows Lazy placeholders until it reaches a non-Lazy kind.
// Any other checker-facing accessor that reads a Ty's Kind should go
// through Resolve first, since a binding's recorded Ty may still be a
// Lazy left over from a forward reference that has since completed.
func Resolve(ty Ty) Ty {
	for {
		lazy, ok := ty.kind.(Lazy)
		if !ok {
			return ty
		}
		ty = lazy.Resolve()
	}
}
