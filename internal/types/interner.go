package types

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/funvibe/sealcheck/internal/symbols"
)

// Interner hash-conses TyKind values into canonical Ty handles: asking
// for the same structural kind twice returns the exact same Ty, so the
// checker can compare types by pointer-cheap equality (Ty.ID()) rather
// than deep structural recursion. Guarded by a mutex even though
// spec.md's concurrency model is single-threaded per check run (§5),
// matching the teacher's own defensive locking on its type tables.
type Interner struct {
	mu     sync.Mutex
	table  map[string]Ty
	nextID int
}

// NewInterner returns an empty interner, pre-seeded with nothing:
// singleton kinds like Void/Never/Unknown/Err are interned lazily on
// first request, same as every other kind.
func NewInterner() *Interner {
	return &Interner{table: make(map[string]Ty)}
}

// intern looks up key in the table, inserting a freshly numbered Ty for
// kind if it isn't already present.
func (in *Interner) intern(key string, kind Kind) Ty {
	in.mu.Lock()
	defer in.mu.Unlock()
	if ty, ok := in.table[key]; ok {
		return ty
	}
	ty := Ty{kind: kind, id: in.nextID}
	in.nextID++
	in.table[key] = ty
	return ty
}

func fieldsKey(fields []Field) string {
	sorted := make([]Field, len(fields))
	copy(sorted, fields)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	var b strings.Builder
	for _, f := range sorted {
		fmt.Fprintf(&b, "%s:%d,", f.Name, f.Ty.id)
	}
	return b.String()
}

// NewVoid returns the canonical Void type.
func (in *Interner) NewVoid() Ty {
	return in.intern("void", Void{})
}

// NewNever returns the canonical Never (bottom) type.
func (in *Interner) NewNever() Ty {
	return in.intern("never", Never{})
}

// NewUnknown returns the canonical Unknown (top) type.
func (in *Interner) NewUnknown() Ty {
	return in.intern("unknown", Unknown{})
}

// NewErr returns the canonical poison type.
func (in *Interner) NewErr() Ty {
	return in.intern("error", Err{})
}

// NewNull returns the canonical Null type.
func (in *Interner) NewNull() Ty {
	return in.intern("null", Null{})
}

// NewBoolean returns the unlit boolean type.
func (in *Interner) NewBoolean() Ty {
	return in.intern("boolean", Boolean{})
}

// NewBooleanLiteral returns the narrow literal type for a specific bool.
func (in *Interner) NewBooleanLiteral(lit bool) Ty {
	return in.intern(fmt.Sprintf("boolean:%v", lit), Boolean{Literal: lit, HasLiteral: true})
}

// NewNumber returns the unlit number type.
func (in *Interner) NewNumber() Ty {
	return in.intern("number", Number{})
}

// NewNumberLiteral returns the narrow literal type for a specific float.
func (in *Interner) NewNumberLiteral(lit float64) Ty {
	return in.intern(fmt.Sprintf("number:%v", lit), Number{Literal: lit, HasLiteral: true})
}

// NewString returns the unlit string type.
func (in *Interner) NewString() Ty {
	return in.intern("string", String{})
}

// NewStringLiteral returns the narrow literal type for a specific string.
func (in *Interner) NewStringLiteral(lit string) Ty {
	return in.intern(fmt.Sprintf("string:%q", lit), String{Literal: lit, HasLiteral: true})
}

// NewObject returns the canonical structural object type for fields.
// Field order does not affect identity: `{a,b}` and `{b,a}` intern to
// the same Ty.
func (in *Interner) NewObject(fields []Field) Ty {
	return in.intern("object:"+fieldsKey(fields), Object{Fields: fields})
}

// NewFunction returns the canonical function type for the given
// parameter types and return type.
func (in *Interner) NewFunction(params []Ty, ret Ty) Ty {
	var b strings.Builder
	b.WriteString("function:")
	for _, p := range params {
		fmt.Fprintf(&b, "%d,", p.id)
	}
	fmt.Fprintf(&b, "->%d", ret.id)
	return in.intern(b.String(), Function{Params: params, Ret: ret})
}

// NewInterface returns the canonical type for an `interface` declaration.
// Interfaces are interned by Name: a later call with a name already
// interned returns the first Ty, and its own fields are ignored. The
// checker does not report a redeclared name.
func (in *Interner) NewInterface(name string, fields []Field) Ty {
	return in.intern("interface:"+name, Interface{Name: name, Fields: fields})
}

// NewClass returns the canonical type for a `class` declaration. Classes
// are interned by Def, not by Name or structure: two classes can share
// a name in different scopes and must remain distinct nominal types.
func (in *Interner) NewClass(name string, def symbols.DefId, constructor, instance Ty, parent *Ty) Ty {
	key := fmt.Sprintf("class:%d", def)
	return in.intern(key, Class{Name: name, Def: def, Constructor: constructor, Instance: instance, Parent: parent})
}

// NewArray returns the canonical array type for an element type.
func (in *Interner) NewArray(element Ty) Ty {
	return in.intern(fmt.Sprintf("array:%d", element.id), Array{Element: element})
}

// NewTuple returns the canonical tuple type for an ordered element list.
func (in *Interner) NewTuple(elements []Ty) Ty {
	var b strings.Builder
	b.WriteString("tuple:")
	for _, e := range elements {
		fmt.Fprintf(&b, "%d,", e.id)
	}
	return in.intern(b.String(), Tuple{Elements: elements})
}

// NewGuard returns the canonical internal Guard kind for subject and
// narrowed. The checker does not call it (see Guard); interning keeps it
// uniform with every other NewX call.
func (in *Interner) NewGuard(subject symbols.Symbol, narrowed Ty) Ty {
	key := fmt.Sprintf("guard:%s:%s:%d", subject.Name, subject.Scope, narrowed.id)
	return in.intern(key, Guard{Subject: subject, Narrowed: narrowed})
}

// NewLazy returns a fresh, never-deduplicated placeholder type for a
// declaration still being resolved. Unlike every other NewX, each call
// returns a distinct Ty — two in-flight recursive references must not
// collapse onto one placeholder before resolution completes.
func (in *Interner) NewLazy(resolve func() Ty) Ty {
	in.mu.Lock()
	id := in.nextID
	in.nextID++
	in.mu.Unlock()
	return Ty{kind: Lazy{Resolve: resolve}, id: id}
}

// NewUnion returns the normal-form union of arms: nested unions are
// flattened, duplicate arms (by Ty identity) are removed, a single
// remaining arm collapses to that arm, and zero arms collapses to
// Never. The result is keyed by its set of arms, so arm order is the
// first-seen order (after flattening) of the first call that interned
// that set; a later call with the same arms in another order gets the
// same Ty back.
func (in *Interner) NewUnion(arms []Ty) Ty {
	flat := make([]Ty, 0, len(arms))
	var flatten func([]Ty)
	flatten = func(ts []Ty) {
		for _, t := range ts {
			if u, ok := t.kind.(Union); ok {
				flatten(u.Arms)
				continue
			}
			flat = append(flat, t)
		}
	}
	flatten(arms)

	seen := make(map[int]bool, len(flat))
	deduped := make([]Ty, 0, len(flat))
	for _, t := range flat {
		if seen[t.id] {
			continue
		}
		seen[t.id] = true
		deduped = append(deduped, t)
	}

	switch len(deduped) {
	case 0:
		return in.NewNever()
	case 1:
		return deduped[0]
	}

	var b strings.Builder
	b.WriteString("union:")
	ids := make([]int, len(deduped))
	for i, t := range deduped {
		ids[i] = t.id
	}
	sortedIDs := append([]int(nil), ids...)
	sort.Ints(sortedIDs)
	for _, id := range sortedIDs {
		fmt.Fprintf(&b, "%d,", id)
	}
	return in.intern(b.String(), Union{Arms: deduped})
}
