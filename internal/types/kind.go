package types

import "github.com/funvibe/sealcheck/internal/symbols"

// Kind is the sealed set of shapes a Ty's payload can take. Every
// concrete kind implements kind() as a marker so only types declared in
// this package can satisfy the interface, mirroring the small-sealed-
// interface idiom the teacher uses for its own Type/Kind trees.
type Kind interface {
	kind()
	String() string
}

// Void is the type of a statement or function with nothing to express
// (no return value), and of the `undefined` literal.
type Void struct{}

func (Void) kind()          {}
func (Void) String() string { return "void" }

// Boolean is either the unlit `boolean` or a narrow literal type (the
// literal produced by `true`/`false` before widening).
type Boolean struct {
	Literal    bool
	HasLiteral bool
}

func (Boolean) kind() {}
func (b Boolean) String() string {
	if b.HasLiteral {
		if b.Literal {
			return "true"
		}
		return "false"
	}
	return "boolean"
}

// Number is either the unlit `number` or a narrow numeric literal type.
type Number struct {
	Literal    float64
	HasLiteral bool
}

func (Number) kind() {}
func (n Number) String() string {
	if n.HasLiteral {
		return formatNumberLiteral(n.Literal)
	}
	return "number"
}

// String is either the unlit `string` or a narrow string literal type.
type String struct {
	Literal    string
	HasLiteral bool
}

func (String) kind() {}
func (s String) String() string {
	if s.HasLiteral {
		return "\"" + s.Literal + "\""
	}
	return "string"
}

// Null is the type of the `null` literal.
type Null struct{}

func (Null) kind()          {}
func (Null) String() string { return "null" }

// Object is a structural object type: an unordered, exact set of named
// fields. Field order here is insignificant to equality (canonicalized
// by the Interner) but is kept as a slice to give diagnostics stable
// rendering order.
type Object struct {
	Fields []Field
}

// Field is one named member of a structural Object or Interface type.
type Field struct {
	Name string
	Ty   Ty
}

func (Object) kind() {}
func (o Object) String() string {
	return renderFields(o.Fields)
}

// Function is a structural function type: ordered parameter types plus
// a return type. Parameter subtyping is checked invariantly (see
// internal/checker/satisfies.go) per spec's acknowledged simplification.
type Function struct {
	Params []Ty
	Ret    Ty
}

func (Function) kind() {}
func (f Function) String() string {
	s := "("
	for i, p := range f.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ") => " + f.Ret.String()
}

// Interface is a named, structural-at-its-boundary type produced by an
// `interface` declaration. Two Interface kinds with the same Name are
// the same declaration (interned by name, not by field structure),
// matching spec's nominal/structural split: satisfies compares an
// Interface target structurally against its Fields.
type Interface struct {
	Name   string
	Fields []Field
}

func (Interface) kind() {}
func (i Interface) String() string { return i.Name }

// Class is a nominal type produced by a `class` declaration. Unlike
// Interface, two Class kinds are only the same type if they come from
// the same declaration (compared by DefId, not by name or structure);
// assignability to a Class target requires the source be that class or
// a subclass of it.
type Class struct {
	Name        string
	Def         symbols.DefId
	Constructor Ty // Function kind; zero parameters if no explicit constructor
	Instance    Ty // Interface kind describing the instance's members
	Parent      *Ty
}

func (Class) kind()          {}
func (c Class) String() string { return c.Name }

// Array is a homogeneous, dynamically sized sequence type.
type Array struct {
	Element Ty
}

func (Array) kind() {}
func (a Array) String() string { return a.Element.String() + "[]" }

// Tuple is a fixed-length, heterogeneous sequence type.
type Tuple struct {
	Elements []Ty
}

func (Tuple) kind() {}
func (t Tuple) String() string {
	s := "["
	for i, e := range t.Elements {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + "]"
}

// Union is the normal-form union of two or more distinct member types.
// The Interner guarantees every interned Union has at least two Arms,
// is fully flattened (no Arm is itself a Union), and is deduplicated —
// a literal union of one collapses to its element, and of zero to Never.
type Union struct {
	Arms []Ty
}

func (Union) kind() {}
func (u Union) String() string {
	s := ""
	for i, a := range u.Arms {
		if i > 0 {
			s += " | "
		}
		s += a.String()
	}
	return s
}

// Err is the poison type: produced whenever a diagnostic has already
// been raised for an expression, so that checking its use-sites does
// not cascade the same failure into further diagnostics. Err satisfies
// and is satisfied by everything.
type Err struct{}

func (Err) kind()          {}
func (Err) String() string { return "error" }

// Lazy stands in for a type that is not known yet: a forward reference
// to a top-level interface, type alias, or class, or the declared type
// of a `let` with neither annotation nor initializer. Such placeholders
// stay in place after their target is known; readers follow them with
// Resolve.
type Lazy struct {
	Resolve func() Ty
}

func (Lazy) kind()          {}
func (Lazy) String() string { return "<lazy>" }

// Never is the empty type: the bottom of the subtyping lattice, and the
// resolved element type of an empty array literal (see DESIGN.md's Open
// Question resolution).
type Never struct{}

func (Never) kind()          {}
func (Never) String() string { return "never" }

// Unknown is the top of the subtyping lattice: every type satisfies it,
// but it satisfies only Unknown and Err.
type Unknown struct{}

func (Unknown) kind()          {}
func (Unknown) String() string { return "unknown" }

// Guard is an internal-only kind pairing a narrowed binding's Subject
// with its Narrowed type. The checker does not build Guard types: `if`
// narrowing works from internal/checker's Guard struct, returned by
// MatchGuard, and no expression is ever given a Guard type.
type Guard struct {
	Subject  symbols.Symbol
	Narrowed Ty
}

func (Guard) kind()          {}
func (Guard) String() string { return "<guard>" }
