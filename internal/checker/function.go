package checker

import (
	"github.com/funvibe/sealcheck/internal/ast"
	"github.com/funvibe/sealcheck/internal/diagnostics"
	"github.com/funvibe/sealcheck/internal/symbols"
	"github.com/funvibe/sealcheck/internal/token"
	"github.com/funvibe/sealcheck/internal/types"
)

// FunctionChecker checks one function/method/constructor body: it adds
// the declared return type and constructor-specific rules on top of
// BaseChecker's statement/expression walking, by installing itself as
// the enclosing BaseChecker's returnSink. Seal never infers a return
// type across a function boundary: a missing annotation means Void,
// exactly as if it had been written out.
type FunctionChecker struct {
	*BaseChecker
	Expected      types.Ty
	IsConstructor bool
}

// CheckFunctionLike checks one function-shaped body — a FunctionDecl, a
// method, a constructor, or an ArrowFunction — against its params and
// an optional declared return type, returning the function's Function
// Ty and recording any diagnostics found along the way. A missing
// return-type annotation on a block body means Void, never an inferred
// type: Seal does not infer return types across a function boundary.
func (c *BaseChecker) CheckFunctionLike(scopeID symbols.Scope, params []ast.Param, returnType ast.TypeExpr, bodyBlock *ast.BlockStmt, bodyExpr ast.Expression, isConstructor bool) types.Ty {
	fnScope := c.Scope.Child(scopeID)
	paramTys := make([]types.Ty, len(params))
	for i, p := range params {
		if p.TypeAnn == nil {
			c.addDiag(diagnostics.ParamMissingTypeAnn{Name: p.Name.Name}, p.Span)
			paramTys[i] = c.Ctx.Constants.Err
		} else {
			paramTys[i] = c.resolveTypeExpr(p.TypeAnn)
		}
		fnScope.Declare(p.Name.Name, &Binding{
			Symbol:   p.Name.Symbol(),
			Declared: paramTys[i],
			Current:  paramTys[i],
			Assigned: true,
		})
	}

	if bodyExpr != nil {
		// Concise arrow form: `(x) => expr` has no `return` statement to
		// drive inference from, so this isn't the cross-boundary return
		// inference Seal disallows elsewhere — the function's return type
		// is simply the checked type of its one expression. A declared
		// return type, if present, is only checked against it.
		body := c.sub(fnScope)
		exprTy := body.checkExpr(bodyExpr)
		if returnType != nil {
			expected := c.resolveTypeExpr(returnType)
			if !Satisfies(expected, exprTy) {
				body.addDiag(diagnostics.NotAssignable{Expected: expected, Actual: exprTy}, bodyExpr.Span())
			}
		}
		return c.Ctx.Interner.NewFunction(paramTys, exprTy)
	}

	fc := &FunctionChecker{BaseChecker: c.sub(fnScope), IsConstructor: isConstructor}
	fc.BaseChecker.Returns = fc
	if returnType != nil {
		fc.Expected = c.resolveTypeExpr(returnType)
	} else {
		fc.Expected = c.Ctx.Constants.Void
	}

	if bodyBlock != nil {
		for _, stmt := range bodyBlock.Statements {
			fc.checkStmt(stmt)
		}
	}

	return c.Ctx.Interner.NewFunction(paramTys, fc.Expected)
}

// handleReturn implements returnSink for ReturnStmt nodes reached while
// checking this function's body.
func (fc *FunctionChecker) handleReturn(ret *ast.ReturnStmt) {
	if fc.IsConstructor && ret.Value != nil {
		fc.addDiag(diagnostics.ClassCtorWithReturn{}, ret.Span())
		fc.checkExpr(ret.Value)
		return
	}
	var actual types.Ty
	if ret.Value != nil {
		actual = fc.checkExpr(ret.Value)
	} else {
		actual = fc.Ctx.Constants.Void
	}
	fc.recordReturn(actual, ret.Span())
}

func (fc *FunctionChecker) recordReturn(actual types.Ty, span token.Span) {
	if !Satisfies(fc.Expected, actual) {
		fc.addDiag(diagnostics.NotAssignable{Expected: fc.Expected, Actual: actual}, span)
	}
}
