package checker

import (
	"testing"

	"github.com/funvibe/sealcheck/internal/ast"
	"github.com/funvibe/sealcheck/internal/symbols"
	"github.com/funvibe/sealcheck/internal/types"
)

func identExpr(name string) *ast.Identifier {
	return &ast.Identifier{Name: name}
}

func TestMatchGuardTypeof(t *testing.T) {
	ctx := types.NewContext()
	in := ctx.Interner
	numOrStr := in.NewUnion([]types.Ty{ctx.Constants.Number, ctx.Constants.String})

	scope := NewScope(symbols.NewScope(), nil)
	sym := symbols.Symbol{Name: "x", Scope: symbols.NewScope()}
	scope.Declare("x", &Binding{Symbol: sym, Declared: numOrStr, Current: numOrStr, Assigned: true})

	cond := &ast.BinaryExpr{
		Op:   ast.BinEqEq,
		Left: &ast.UnaryExpr{Op: ast.UnaryTypeof, Operand: identExpr("x")},
		Right: &ast.StringLiteral{Value: "string"},
	}

	g, ok := MatchGuard(ctx, scope, cond)
	if !ok {
		t.Fatal("expected typeof guard to match")
	}
	if g.Subject != sym {
		t.Errorf("guard subject = %+v, want %+v", g.Subject, sym)
	}
	if g.TrueTy.ID() != ctx.Constants.String.ID() {
		t.Errorf("true branch should narrow to string, got %s", g.TrueTy)
	}
	if g.FalseTy.ID() != ctx.Constants.Number.ID() {
		t.Errorf("false branch should narrow to number, got %s", g.FalseTy)
	}
}

func TestMatchGuardTypeofNotEqSwapsBranches(t *testing.T) {
	ctx := types.NewContext()
	in := ctx.Interner
	numOrStr := in.NewUnion([]types.Ty{ctx.Constants.Number, ctx.Constants.String})

	scope := NewScope(symbols.NewScope(), nil)
	sym := symbols.Symbol{Name: "x", Scope: symbols.NewScope()}
	scope.Declare("x", &Binding{Symbol: sym, Declared: numOrStr, Current: numOrStr, Assigned: true})

	cond := &ast.BinaryExpr{
		Op:   ast.BinNotEq,
		Left: &ast.UnaryExpr{Op: ast.UnaryTypeof, Operand: identExpr("x")},
		Right: &ast.StringLiteral{Value: "string"},
	}

	g, ok := MatchGuard(ctx, scope, cond)
	if !ok {
		t.Fatal("expected typeof guard to match on !==")
	}
	if g.TrueTy.ID() != ctx.Constants.Number.ID() {
		t.Errorf("!== true branch should narrow to the non-matching arm (number), got %s", g.TrueTy)
	}
	if g.FalseTy.ID() != ctx.Constants.String.ID() {
		t.Errorf("!== false branch should narrow to the matching arm (string), got %s", g.FalseTy)
	}
}

func TestMatchGuardTypeofReverseOperandOrder(t *testing.T) {
	ctx := types.NewContext()
	in := ctx.Interner
	numOrStr := in.NewUnion([]types.Ty{ctx.Constants.Number, ctx.Constants.String})

	scope := NewScope(symbols.NewScope(), nil)
	sym := symbols.Symbol{Name: "x", Scope: symbols.NewScope()}
	scope.Declare("x", &Binding{Symbol: sym, Declared: numOrStr, Current: numOrStr, Assigned: true})

	// "string" === typeof x
	cond := &ast.BinaryExpr{
		Op:    ast.BinEqEq,
		Left:  &ast.StringLiteral{Value: "string"},
		Right: &ast.UnaryExpr{Op: ast.UnaryTypeof, Operand: identExpr("x")},
	}

	g, ok := MatchGuard(ctx, scope, cond)
	if !ok {
		t.Fatal("expected typeof guard to match regardless of operand order")
	}
	if g.TrueTy.ID() != ctx.Constants.String.ID() {
		t.Errorf("true branch should narrow to string, got %s", g.TrueTy)
	}
}

func TestMatchGuardPropertyDiscriminant(t *testing.T) {
	ctx := types.NewContext()
	in := ctx.Interner

	circle := in.NewObject([]types.Field{
		{Name: "kind", Ty: in.NewStringLiteral("circle")},
		{Name: "radius", Ty: ctx.Constants.Number},
	})
	square := in.NewObject([]types.Field{
		{Name: "kind", Ty: in.NewStringLiteral("square")},
		{Name: "side", Ty: ctx.Constants.Number},
	})
	shape := in.NewUnion([]types.Ty{circle, square})

	scope := NewScope(symbols.NewScope(), nil)
	sym := symbols.Symbol{Name: "s", Scope: symbols.NewScope()}
	scope.Declare("s", &Binding{Symbol: sym, Declared: shape, Current: shape, Assigned: true})

	cond := &ast.BinaryExpr{
		Op:   ast.BinEqEq,
		Left: &ast.MemberExpr{Object: identExpr("s"), Name: "kind"},
		Right: &ast.StringLiteral{Value: "circle"},
	}

	g, ok := MatchGuard(ctx, scope, cond)
	if !ok {
		t.Fatal("expected property discriminant guard to match")
	}
	if g.TrueTy.ID() != circle.ID() {
		t.Errorf("true branch should narrow to circle, got %s", g.TrueTy)
	}
	if g.FalseTy.ID() != square.ID() {
		t.Errorf("false branch should narrow to square, got %s", g.FalseTy)
	}
}

func TestMatchGuardRejectsUnrecognizedShape(t *testing.T) {
	ctx := types.NewContext()
	scope := NewScope(symbols.NewScope(), nil)

	cond := &ast.BinaryExpr{
		Op:    ast.BinLt,
		Left:  identExpr("x"),
		Right: &ast.NumberLiteral{Value: 1},
	}
	if _, ok := MatchGuard(ctx, scope, cond); ok {
		t.Error("a non-equality comparison should never match as a guard")
	}
}

func TestApplyGuardRebindsCurrentOnly(t *testing.T) {
	ctx := types.NewContext()
	scope := NewScope(symbols.NewScope(), nil)
	sym := symbols.Symbol{Name: "x", Scope: symbols.NewScope()}
	scope.Declare("x", &Binding{Symbol: sym, Declared: ctx.Constants.Unknown, Current: ctx.Constants.Unknown, Assigned: true})

	ApplyGuard(scope, Guard{Subject: sym}, ctx.Constants.String)

	b, _ := scope.Resolve("x")
	if b.Current.ID() != ctx.Constants.String.ID() {
		t.Errorf("Current should be rebound to string, got %s", b.Current)
	}
	if b.Declared.ID() != ctx.Constants.Unknown.ID() {
		t.Errorf("Declared should stay unchanged, got %s", b.Declared)
	}
}
