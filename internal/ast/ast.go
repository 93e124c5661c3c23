// Package ast defines the surface syntax tree produced by
// internal/parser and consumed by internal/checker. Unlike the
// teacher's Visitor/Accept double-dispatch tree, every node here is
// walked by a plain Go type switch — the checker's pipeline dispatches
// on concrete node type the same way the rest of the language's own
// checker implementations in this family do it for structural, non-
// generic trees.
package ast

import "github.com/funvibe/sealcheck/internal/token"

// Node is the Base interface every AST node implements.
type Node interface {
	Span() token.Span
}

// Statement is a Node that can appear in a statement position.
type Statement interface {
	Node
	stmtNode()
}

// Expression is a Node that can appear in an expression position.
type Expression interface {
	Node
	exprNode()
}

// TypeExpr is a Node appearing in a type annotation position.
type TypeExpr interface {
	Node
	typeExprNode()
}

// Base embeds into every concrete node to give it a Span() for free.
type Base struct {
	Sp token.Span
}

func (b Base) Span() token.Span { return b.Sp }

// Program is the root of a parsed file: either a Script (a flat list of
// statements with no import/export surface) or a Module (statements
// plus top-level declarations, matching spec.md §6's two program
// shapes).
type Program struct {
	Base
	IsModule   bool
	Statements []Statement
}
