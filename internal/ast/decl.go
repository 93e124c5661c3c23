package ast

import "github.com/funvibe/sealcheck/internal/token"

// DeclKind distinguishes var/let/const for a VarDecl.
type DeclKind int

const (
	DeclVar DeclKind = iota
	DeclLet
	DeclConst
)

// VarDecl is a `var`/`let`/`const` declaration statement.
type VarDecl struct {
	Base
	Kind     DeclKind
	Name     *Identifier
	TypeAnn  TypeExpr // nil if omitted
	Init     Expression // nil if omitted (only legal for var/let)
}

func (*VarDecl) stmtNode() {}

// Param is one function or method parameter.
type Param struct {
	Name    *Identifier
	TypeAnn TypeExpr
	Span    token.Span
}

// FunctionDecl is a top-level or nested named function declaration.
type FunctionDecl struct {
	Base
	Name       *Identifier
	Params     []Param
	ReturnType TypeExpr // nil if omitted (the checker then uses Void)
	Body       *BlockStmt
}

func (*FunctionDecl) stmtNode() {}

// ClassMemberKind distinguishes the three kinds of class member.
type ClassMemberKind int

const (
	MemberProperty ClassMemberKind = iota
	MemberMethod
	MemberConstructor
)

// ClassMember is one property, method, or constructor inside a class
// body.
type ClassMember struct {
	Kind       ClassMemberKind
	Name       string // empty for the constructor
	TypeAnn    TypeExpr
	Init       Expression // property initializer, if any
	Params     []Param    // method/constructor parameters
	ReturnType TypeExpr   // method return type
	Body       *BlockStmt // method/constructor body
	Span       token.Span
}

// ClassDecl is a `class` declaration, with an optional `extends` clause.
type ClassDecl struct {
	Base
	Name    *Identifier
	Extends *Identifier // nil if no superclass
	Members []ClassMember
}

func (*ClassDecl) stmtNode() {}

// InterfaceDecl is an `interface` declaration: a named structural shape.
type InterfaceDecl struct {
	Base
	Name   *Identifier
	Fields []InterfaceField
}

func (*InterfaceDecl) stmtNode() {}

// InterfaceField is one named member of an interface declaration.
type InterfaceField struct {
	Name    string
	TypeAnn TypeExpr
	Span    token.Span
}

// TypeAliasDecl is a `type Name = <type>` declaration.
type TypeAliasDecl struct {
	Base
	Name *Identifier
	Type TypeExpr
}

func (*TypeAliasDecl) stmtNode() {}
