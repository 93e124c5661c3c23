package checker

import (
	"github.com/funvibe/sealcheck/internal/ast"
	"github.com/funvibe/sealcheck/internal/symbols"
	"github.com/funvibe/sealcheck/internal/types"
)

// typeofClass classifies a resolved Ty into the string typeof would
// produce for a value of that type, or "" if the kind has no fixed
// typeof class (Union, Unknown, Err, Never, Guard, Lazy).
func typeofClass(t types.Ty) string {
	switch t.Kind().(type) {
	case types.Boolean:
		return "boolean"
	case types.Number:
		return "number"
	case types.String:
		return "string"
	case types.Void:
		return "undefined"
	case types.Null, types.Object, types.Interface, types.Class, types.Array, types.Tuple:
		return "object"
	case types.Function:
		return "function"
	default:
		return ""
	}
}

// splitUnionByPredicate partitions declared's arms (flattening declared
// itself if it is a single non-union type) into the arms matching
// keep and the arms that don't, re-interning each half as a union (or
// Never if a half is empty).
func splitUnionByPredicate(ctx *types.Context, declared types.Ty, keep func(types.Ty) bool) (matched, rest types.Ty) {
	var arms []types.Ty
	if u, ok := declared.Kind().(types.Union); ok {
		arms = u.Arms
	} else {
		arms = []types.Ty{declared}
	}
	var matchedArms, restArms []types.Ty
	for _, a := range arms {
		if keep(a) {
			matchedArms = append(matchedArms, a)
		} else {
			restArms = append(restArms, a)
		}
	}
	return ctx.Interner.NewUnion(matchedArms), ctx.Interner.NewUnion(restArms)
}

// Guard is the result of recognizing a narrowable condition: Subject
// is the identifier being narrowed, TrueTy is its type within the
// branch taken when the condition evaluated true, FalseTy is its type
// in the branch taken when it evaluated false.
type Guard struct {
	Subject symbols.Symbol
	TrueTy  types.Ty
	FalseTy types.Ty
}

// MatchGuard recognizes the two narrowing patterns the Narrower
// supports: `typeof x === "<lit>"` and `x.k === <lit>`, in either
// `===`/`!==` form (a `!==` condition simply swaps which branch gets
// which half). It returns ok == false for every other expression shape
// — narrowing is best-effort, not exhaustive.
func MatchGuard(ctx *types.Context, scope *Scope, expr ast.Expression) (Guard, bool) {
	bin, ok := expr.(*ast.BinaryExpr)
	if !ok || (bin.Op != ast.BinEqEq && bin.Op != ast.BinNotEq) {
		return Guard{}, false
	}

	g, ok := matchTypeofGuard(ctx, scope, bin.Left, bin.Right)
	if !ok {
		g, ok = matchTypeofGuard(ctx, scope, bin.Right, bin.Left)
	}
	if !ok {
		g, ok = matchPropertyGuard(ctx, scope, bin.Left, bin.Right)
	}
	if !ok {
		g, ok = matchPropertyGuard(ctx, scope, bin.Right, bin.Left)
	}
	if !ok {
		return Guard{}, false
	}
	if bin.Op == ast.BinNotEq {
		g.TrueTy, g.FalseTy = g.FalseTy, g.TrueTy
	}
	return g, true
}

func matchTypeofGuard(ctx *types.Context, scope *Scope, maybeTypeof, maybeLit ast.Expression) (Guard, bool) {
	un, ok := maybeTypeof.(*ast.UnaryExpr)
	if !ok || un.Op != ast.UnaryTypeof {
		return Guard{}, false
	}
	ident, ok := un.Operand.(*ast.Identifier)
	if !ok {
		return Guard{}, false
	}
	lit, ok := maybeLit.(*ast.StringLiteral)
	if !ok {
		return Guard{}, false
	}
	b, ok := scope.Resolve(ident.Name)
	if !ok {
		return Guard{}, false
	}
	trueTy, falseTy := splitUnionByPredicate(ctx, b.Current, func(a types.Ty) bool {
		return typeofClass(types.Resolve(a)) == lit.Value
	})
	return Guard{Subject: b.Symbol, TrueTy: trueTy, FalseTy: falseTy}, true
}

func matchPropertyGuard(ctx *types.Context, scope *Scope, maybeMember, maybeLit ast.Expression) (Guard, bool) {
	member, ok := maybeMember.(*ast.MemberExpr)
	if !ok || member.Computed {
		return Guard{}, false
	}
	ident, ok := member.Object.(*ast.Identifier)
	if !ok {
		return Guard{}, false
	}
	b, ok := scope.Resolve(ident.Name)
	if !ok {
		return Guard{}, false
	}
	matches := func(a types.Ty) bool {
		fields, ok := fieldsOf(types.Resolve(a))
		if !ok {
			return false
		}
		fv, ok := types.FieldByName(fields, member.Name)
		if !ok {
			return false
		}
		return literalEquals(types.Resolve(fv), maybeLit)
	}
	trueTy, falseTy := splitUnionByPredicate(ctx, b.Current, matches)
	return Guard{Subject: b.Symbol, TrueTy: trueTy, FalseTy: falseTy}, true
}

// literalEquals reports whether fieldTy is a literal kind equal to the
// literal value lit expresses, used to pick the matching arm of a
// discriminated union on `x.k === <lit>`.
func literalEquals(fieldTy types.Ty, lit ast.Expression) bool {
	switch l := lit.(type) {
	case *ast.StringLiteral:
		s, ok := fieldTy.Kind().(types.String)
		return ok && s.HasLiteral && s.Literal == l.Value
	case *ast.NumberLiteral:
		n, ok := fieldTy.Kind().(types.Number)
		return ok && n.HasLiteral && n.Literal == l.Value
	case *ast.BooleanLiteral:
		b, ok := fieldTy.Kind().(types.Boolean)
		return ok && b.HasLiteral && b.Literal == l.Value
	default:
		return false
	}
}

// ApplyGuard declares, in scope itself, a copy of g.Subject's binding
// whose Current type is ty. The binding it was copied from (in scope or
// in an enclosing scope) is left unchanged; the caller is responsible
// for first cloning scope if the rebinding must not be visible outside
// the branch being checked.
func ApplyGuard(scope *Scope, g Guard, ty types.Ty) {
	if b, ok := scope.Resolve(g.Subject.Name); ok {
		narrowed := *b
		narrowed.Current = ty
		scope.Declare(g.Subject.Name, &narrowed)
	}
}
