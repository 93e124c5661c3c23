package ast

// TypeRef is a bare name in type position: a primitive (`number`,
// `string`, `boolean`, `void`, `unknown`, `null`), or a reference to a
// declared interface/class/type-alias name, resolved by the checker
// against the declaration table rather than the lexical scope chain.
type TypeRef struct {
	Base
	Name string
}

func (*TypeRef) typeExprNode() {}

// LiteralTypeKind distinguishes which literal kind a LiteralType wraps.
type LiteralTypeKind int

const (
	LiteralTypeString LiteralTypeKind = iota
	LiteralTypeNumber
	LiteralTypeBoolean
)

// LiteralType is a literal used in type position, e.g. `"a" | "b"` or
// `42`.
type LiteralType struct {
	Base
	Kind         LiteralTypeKind
	StringValue  string
	NumberValue  float64
	BooleanValue bool
}

func (*LiteralType) typeExprNode() {}

// ArrayType is `<elem>[]`.
type ArrayType struct {
	Base
	Element TypeExpr
}

func (*ArrayType) typeExprNode() {}

// TupleType is `[T1, T2, ...]`.
type TupleType struct {
	Base
	Elements []TypeExpr
}

func (*TupleType) typeExprNode() {}

// UnionType is `T1 | T2 | ...`.
type UnionType struct {
	Base
	Members []TypeExpr
}

func (*UnionType) typeExprNode() {}

// FunctionTypeParam is one parameter of a FunctionType.
type FunctionTypeParam struct {
	Name    string
	TypeAnn TypeExpr
}

// FunctionType is `(p1: T1, p2: T2) => Ret`.
type FunctionType struct {
	Base
	Params []FunctionTypeParam
	Ret    TypeExpr
}

func (*FunctionType) typeExprNode() {}

// ObjectTypeField is one `name: Type` member of an ObjectType literal.
type ObjectTypeField struct {
	Name    string
	TypeAnn TypeExpr
}

// ObjectType is an inline `{ a: number; b: string }` type literal.
type ObjectType struct {
	Base
	Fields []ObjectTypeField
}

func (*ObjectType) typeExprNode() {}
