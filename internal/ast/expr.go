package ast

import (
	"github.com/funvibe/sealcheck/internal/symbols"
	"github.com/funvibe/sealcheck/internal/token"
)

// Identifier is a name reference. Scope is filled in by the parser at
// the point of use (the innermost open lexical scope). The checker
// resolves the name through its own scope chain.
type Identifier struct {
	Base
	Name  string
	Scope symbols.Scope
}

func (*Identifier) exprNode() {}

// Symbol returns the (name, scope) pair the checker records on the
// binding a declaration creates.
func (id *Identifier) Symbol() symbols.Symbol {
	return symbols.Symbol{Name: id.Name, Scope: id.Scope}
}

// NumberLiteral is a numeric literal expression.
type NumberLiteral struct {
	Base
	Value float64
	Raw   string // original lexeme
}

func (*NumberLiteral) exprNode() {}

// StringLiteral is a string literal expression (no interpolation).
type StringLiteral struct {
	Base
	Value string
}

func (*StringLiteral) exprNode() {}

// TemplateLiteral is a template-string expression: literal chunks
// interleaved with `${expr}` interpolations. Checking it always
// produces the unlit string type, regardless of the parts' types.
type TemplateLiteral struct {
	Base
	Parts []Expression // NumberLiteral/StringLiteral chunks are folded in by the parser as StringLiteral
}

func (*TemplateLiteral) exprNode() {}

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Base
	Value bool
}

func (*BooleanLiteral) exprNode() {}

// NullLiteral is the `null` literal.
type NullLiteral struct {
	Base
}

func (*NullLiteral) exprNode() {}

// UndefinedLiteral is the `undefined` literal, typed as Void.
type UndefinedLiteral struct {
	Base
}

func (*UndefinedLiteral) exprNode() {}

// UnaryOp enumerates the supported prefix operators.
type UnaryOp int

const (
	UnaryNot UnaryOp = iota
	UnaryNeg
	UnaryTypeof
)

// UnaryExpr is a prefix unary expression: `!x`, `-x`, `typeof x`.
type UnaryExpr struct {
	Base
	Op      UnaryOp
	Operand Expression
}

func (*UnaryExpr) exprNode() {}

// BinaryOp enumerates the supported infix operators.
type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinLt
	BinLtEq
	BinGt
	BinGtEq
	BinEqEq
	BinNotEq
	BinAndAnd
	BinOrOr
)

// BinaryExpr is an infix binary expression.
type BinaryExpr struct {
	Base
	Op    BinaryOp
	Left  Expression
	Right Expression
}

func (*BinaryExpr) exprNode() {}

// AssignExpr is `<target> = <value>`. Target is always either an
// Identifier or a MemberExpr.
type AssignExpr struct {
	Base
	Target Expression
	Value  Expression
}

func (*AssignExpr) exprNode() {}

// SatisfiesExpr is `<expr> satisfies <type>`: checks assignability
// without widening the expression's own static type, unlike a type
// annotation on a declaration.
type SatisfiesExpr struct {
	Base
	Value Expression
	Type  TypeExpr
}

func (*SatisfiesExpr) exprNode() {}

// AsConstExpr is `<expr> as const`: suppresses literal widening for the
// wrapped expression.
type AsConstExpr struct {
	Base
	Value Expression
}

func (*AsConstExpr) exprNode() {}

// MemberExpr is property access: `obj.name` (Computed == false) or
// `obj[expr]` (Computed == true, Key holds the index expression).
type MemberExpr struct {
	Base
	Object   Expression
	Name     string     // set when !Computed
	Key      Expression // set when Computed
	Computed bool
}

func (*MemberExpr) exprNode() {}

// ObjectProperty is one `name: value` pair of an ObjectLiteral.
type ObjectProperty struct {
	Name  string
	Value Expression
	Span  token.Span
}

// ObjectLiteral is an `{ a: 1, b: 2 }` expression.
type ObjectLiteral struct {
	Base
	Properties []ObjectProperty
}

func (*ObjectLiteral) exprNode() {}

// ArrayLiteral is a `[1, 2, 3]` expression.
type ArrayLiteral struct {
	Base
	Elements []Expression
}

func (*ArrayLiteral) exprNode() {}

// ArrowFunction is a `(params) => expr` or `(params) => { ... }`
// expression. BodyBlock holds the block form's body; BodyExpr holds the
// concise form's single expression, whose type is the function's return
// type. Exactly one of the two is non-nil.
type ArrowFunction struct {
	Base
	Params     []Param
	ReturnType TypeExpr // nil if omitted
	BodyBlock  *BlockStmt
	BodyExpr   Expression // non-nil only for the concise `=> expr` form
	Scope      symbols.Scope
}

func (*ArrowFunction) exprNode() {}

// NewExpr is a `new Name(args...)` expression.
type NewExpr struct {
	Base
	Callee *Identifier
	Args   []Expression
}

func (*NewExpr) exprNode() {}

// CallExpr is a `callee(args...)` expression.
type CallExpr struct {
	Base
	Callee Expression
	Args   []Expression
}

func (*CallExpr) exprNode() {}

// SequenceExpr is a parenthesized comma expression `(a, b, c)`,
// evaluating to the type of its last element.
type SequenceExpr struct {
	Base
	Exprs []Expression
}

func (*SequenceExpr) exprNode() {}
