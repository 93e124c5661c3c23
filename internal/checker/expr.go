package checker

import (
	"github.com/funvibe/sealcheck/internal/ast"
	"github.com/funvibe/sealcheck/internal/diagnostics"
	"github.com/funvibe/sealcheck/internal/types"
)

// checkExpr computes the static type of an expression, recording any
// diagnostics raised along the way. Literal nodes always produce their
// narrow literal type; it is the caller's responsibility (VarDecl
// checking, for `let`/`var` without an `as const` initializer) to widen
// that result when Seal's widening rule applies.
func (c *BaseChecker) checkExpr(e ast.Expression) types.Ty {
	switch n := e.(type) {
	case *ast.NumberLiteral:
		return c.Ctx.Interner.NewNumberLiteral(n.Value)
	case *ast.StringLiteral:
		return c.Ctx.Interner.NewStringLiteral(n.Value)
	case *ast.BooleanLiteral:
		return c.Ctx.Interner.NewBooleanLiteral(n.Value)
	case *ast.NullLiteral:
		return c.Ctx.Constants.Null
	case *ast.UndefinedLiteral:
		return c.Ctx.Constants.Void
	case *ast.TemplateLiteral:
		for _, part := range n.Parts {
			c.checkExpr(part)
		}
		return c.Ctx.Constants.String
	case *ast.Identifier:
		return c.checkIdentifier(n)
	case *ast.UnaryExpr:
		return c.checkUnary(n)
	case *ast.BinaryExpr:
		return c.checkBinary(n)
	case *ast.AssignExpr:
		return c.checkAssign(n)
	case *ast.SatisfiesExpr:
		return c.checkSatisfiesExpr(n)
	case *ast.AsConstExpr:
		if arr, ok := n.Value.(*ast.ArrayLiteral); ok {
			// An array literal under `as const` keeps each element's
			// literal type, as a tuple, instead of widening to an array.
			elems := make([]types.Ty, len(arr.Elements))
			for i, el := range arr.Elements {
				elems[i] = c.checkExpr(el)
			}
			return c.Ctx.Interner.NewTuple(elems)
		}
		return c.checkExpr(n.Value)
	case *ast.MemberExpr:
		return c.checkMember(n)
	case *ast.ObjectLiteral:
		return c.checkObjectLiteral(n)
	case *ast.ArrayLiteral:
		return c.checkArrayLiteral(n)
	case *ast.NewExpr:
		return c.checkNew(n)
	case *ast.CallExpr:
		return c.checkCall(n)
	case *ast.SequenceExpr:
		var last types.Ty = c.Ctx.Constants.Void
		for _, sub := range n.Exprs {
			last = c.checkExpr(sub)
		}
		return last
	case *ast.ArrowFunction:
		return c.CheckFunctionLike(n.Scope, n.Params, n.ReturnType, n.BodyBlock, n.BodyExpr, false)
	default:
		return c.Ctx.Constants.Err
	}
}

func (c *BaseChecker) checkIdentifier(n *ast.Identifier) types.Ty {
	b, ok := c.Scope.Resolve(n.Name)
	if !ok {
		c.addDiag(diagnostics.CannotFindName{Name: n.Name}, n.Span())
		return c.Ctx.Constants.Err
	}
	if !b.Assigned {
		c.addDiag(diagnostics.UsedBeforeAssigned{Name: n.Name}, n.Span())
		return c.Ctx.Constants.Err
	}
	return b.Current
}

func (c *BaseChecker) checkUnary(n *ast.UnaryExpr) types.Ty {
	operandTy := c.checkExpr(n.Operand)
	switch n.Op {
	case ast.UnaryNot:
		return c.Ctx.Constants.Boolean
	case ast.UnaryTypeof:
		return c.Ctx.Constants.TypeOf
	case ast.UnaryNeg:
		if !Satisfies(c.Ctx.Constants.Number, operandTy) {
			c.addDiag(diagnostics.NotAssignable{Expected: c.Ctx.Constants.Number, Actual: operandTy}, n.Operand.Span())
			return c.Ctx.Constants.Err
		}
		return c.Ctx.Constants.Number
	default:
		return c.Ctx.Constants.Err
	}
}

func (c *BaseChecker) checkBinary(n *ast.BinaryExpr) types.Ty {
	leftTy := c.checkExpr(n.Left)
	rightTy := c.checkExpr(n.Right)

	switch n.Op {
	case ast.BinAdd:
		leftIsString := Satisfies(c.Ctx.Constants.String, leftTy)
		rightIsString := Satisfies(c.Ctx.Constants.String, rightTy)
		if leftIsString || rightIsString {
			if !Satisfies(c.Ctx.Constants.String, leftTy) && !Satisfies(c.Ctx.Constants.Number, leftTy) {
				c.addDiag(diagnostics.BinaryOperatorTypeMismatch{Op: "+", L: leftTy, R: rightTy}, n.Span())
				return c.Ctx.Constants.Err
			}
			if !Satisfies(c.Ctx.Constants.String, rightTy) && !Satisfies(c.Ctx.Constants.Number, rightTy) {
				c.addDiag(diagnostics.BinaryOperatorTypeMismatch{Op: "+", L: leftTy, R: rightTy}, n.Span())
				return c.Ctx.Constants.Err
			}
			return c.Ctx.Constants.String
		}
		if !Satisfies(c.Ctx.Constants.Number, leftTy) || !Satisfies(c.Ctx.Constants.Number, rightTy) {
			c.addDiag(diagnostics.BinaryOperatorTypeMismatch{Op: "+", L: leftTy, R: rightTy}, n.Span())
			return c.Ctx.Constants.Err
		}
		return c.Ctx.Constants.Number

	case ast.BinSub, ast.BinMul, ast.BinDiv:
		if !Satisfies(c.Ctx.Constants.Number, leftTy) || !Satisfies(c.Ctx.Constants.Number, rightTy) {
			c.addDiag(diagnostics.BinaryOperatorTypeMismatch{Op: binOpSymbol(n.Op), L: leftTy, R: rightTy}, n.Span())
			return c.Ctx.Constants.Err
		}
		return c.Ctx.Constants.Number

	case ast.BinLt, ast.BinLtEq, ast.BinGt, ast.BinGtEq:
		if !Satisfies(c.Ctx.Constants.Number, leftTy) || !Satisfies(c.Ctx.Constants.Number, rightTy) {
			c.addDiag(diagnostics.BinaryOperatorTypeMismatch{Op: binOpSymbol(n.Op), L: leftTy, R: rightTy}, n.Span())
		}
		return c.Ctx.Constants.Boolean

	case ast.BinEqEq, ast.BinNotEq:
		if !Overlaps(leftTy, rightTy) {
			c.addDiag(diagnostics.NoOverlap{A: leftTy, B: rightTy}, n.Span())
		}
		return c.Ctx.Constants.Boolean

	case ast.BinAndAnd, ast.BinOrOr:
		return c.Ctx.Constants.Boolean

	default:
		return c.Ctx.Constants.Err
	}
}

func binOpSymbol(op ast.BinaryOp) string {
	switch op {
	case ast.BinAdd:
		return "+"
	case ast.BinSub:
		return "-"
	case ast.BinMul:
		return "*"
	case ast.BinDiv:
		return "/"
	case ast.BinLt:
		return "<"
	case ast.BinLtEq:
		return "<="
	case ast.BinGt:
		return ">"
	case ast.BinGtEq:
		return ">="
	case ast.BinEqEq:
		return "==="
	case ast.BinNotEq:
		return "!=="
	case ast.BinAndAnd:
		return "&&"
	case ast.BinOrOr:
		return "||"
	default:
		return "?"
	}
}

func (c *BaseChecker) checkAssign(n *ast.AssignExpr) types.Ty {
	valueTy := c.checkExpr(n.Value)

	switch target := n.Target.(type) {
	case *ast.Identifier:
		b, ok := c.Scope.Resolve(target.Name)
		if !ok {
			c.addDiag(diagnostics.CannotFindName{Name: target.Name}, target.Span())
			return c.Ctx.Constants.Err
		}
		if b.Const {
			c.addDiag(diagnostics.CannotAssignToConst{Name: target.Name}, n.Span())
			return valueTy
		}
		if _, isLazy := b.Declared.Kind().(types.Lazy); isLazy && !b.Assigned && isUnknown(types.Resolve(b.Declared)) {
			// First real assignment to an annotation-less, initializer-less
			// `let` resolves its declared type once and for all: widened,
			// same as a `let` with an initializer would be. Unreachable for
			// a const binding, since const always requires an initializer.
			resolved := Widen(c.Ctx, valueTy)
			b.Declared = resolved
			b.Current = resolved
			b.Assigned = true
			return valueTy
		}
		if !Satisfies(b.Declared, valueTy) {
			c.addDiag(diagnostics.NotAssignable{Expected: b.Declared, Actual: valueTy}, n.Span())
			return valueTy
		}
		b.Current = valueTy
		b.Assigned = true
		return valueTy
	case *ast.MemberExpr:
		objTy := c.checkMemberObject(target)
		fieldTy, ok := c.resolveMemberField(objTy, target)
		if !ok {
			return valueTy
		}
		if !Satisfies(fieldTy, valueTy) {
			c.addDiag(diagnostics.NotAssignable{Expected: fieldTy, Actual: valueTy}, n.Span())
		}
		return valueTy
	default:
		return valueTy
	}
}

func (c *BaseChecker) checkSatisfiesExpr(n *ast.SatisfiesExpr) types.Ty {
	valueTy := c.checkExpr(n.Value)
	wantTy := c.resolveTypeExpr(n.Type)
	if !Satisfies(wantTy, valueTy) {
		c.addDiag(diagnostics.NotAssignable{Expected: wantTy, Actual: valueTy}, n.Span())
	}
	return valueTy
}

// checkMemberObject computes the type of a MemberExpr's Object operand,
// separated out so assignment-target handling can reuse it without
// re-deriving the field lookup.
func (c *BaseChecker) checkMemberObject(n *ast.MemberExpr) types.Ty {
	return c.checkExpr(n.Object)
}

func (c *BaseChecker) checkMember(n *ast.MemberExpr) types.Ty {
	objTy := c.checkExpr(n.Object)
	if n.Computed {
		c.checkExpr(n.Key)
		if arr, ok := types.Resolve(objTy).Kind().(types.Array); ok {
			return arr.Element
		}
		return c.Ctx.Constants.Unknown
	}
	ty, ok := c.resolveMemberField(objTy, n)
	if !ok {
		return c.Ctx.Constants.Err
	}
	return ty
}

// resolveMemberField looks up n.Name on objTy, checking struct fields,
// prototype methods for Number/String, and Array's synthetic `length`.
func (c *BaseChecker) resolveMemberField(objTy types.Ty, n *ast.MemberExpr) (types.Ty, bool) {
	resolved := types.Resolve(objTy)
	if isErr(resolved) {
		return c.Ctx.Constants.Err, true
	}
	if fields, ok := fieldsOf(resolved); ok {
		if fv, ok := types.FieldByName(fields, n.Name); ok {
			return fv, true
		}
	}
	switch resolved.Kind().(type) {
	case types.Number:
		if fields, ok := fieldsOf(c.Ctx.Constants.ProtoNumber); ok {
			if fv, ok := types.FieldByName(fields, n.Name); ok {
				return fv, true
			}
		}
	case types.String:
		if fields, ok := fieldsOf(c.Ctx.Constants.ProtoString); ok {
			if fv, ok := types.FieldByName(fields, n.Name); ok {
				return fv, true
			}
		}
	case types.Array:
		if n.Name == "length" {
			return c.Ctx.Constants.Number, true
		}
	}
	c.addDiag(diagnostics.PropertyDoesNotExist{Ty: resolved, Key: n.Name}, n.Span())
	return c.Ctx.Constants.Err, false
}

func (c *BaseChecker) checkObjectLiteral(n *ast.ObjectLiteral) types.Ty {
	fields := make([]types.Field, len(n.Properties))
	for i, p := range n.Properties {
		fields[i] = types.Field{Name: p.Name, Ty: c.checkExpr(p.Value)}
	}
	return c.Ctx.Interner.NewObject(fields)
}

func (c *BaseChecker) checkArrayLiteral(n *ast.ArrayLiteral) types.Ty {
	if len(n.Elements) == 0 {
		return c.Ctx.Interner.NewArray(c.Ctx.Constants.Never)
	}
	elemTys := make([]types.Ty, len(n.Elements))
	for i, el := range n.Elements {
		elemTys[i] = Widen(c.Ctx, c.checkExpr(el))
	}
	return c.Ctx.Interner.NewArray(c.Ctx.Interner.NewUnion(elemTys))
}

func (c *BaseChecker) checkNew(n *ast.NewExpr) types.Ty {
	calleeTy, ok := c.Scope.Resolve(n.Callee.Name)
	argTys := make([]types.Ty, len(n.Args))
	for i, a := range n.Args {
		argTys[i] = c.checkExpr(a)
	}
	if !ok {
		c.addDiag(diagnostics.CannotFindName{Name: n.Callee.Name}, n.Callee.Span())
		return c.Ctx.Constants.Err
	}
	resolved := types.Resolve(calleeTy.Current)
	cls, ok := resolved.Kind().(types.Class)
	if !ok {
		c.addDiag(diagnostics.NotConstructable{Ty: resolved}, n.Span())
		return c.Ctx.Constants.Err
	}
	ctorFn, ok := types.Resolve(cls.Constructor).Kind().(types.Function)
	if !ok {
		if len(n.Args) != 0 {
			c.addDiag(diagnostics.NewOpMissingArgs{Name: n.Callee.Name}, n.Span())
		}
		return cls.Instance
	}
	if len(argTys) != len(ctorFn.Params) {
		c.addDiag(diagnostics.WrongNumArgs{Expected: len(ctorFn.Params), Actual: len(argTys)}, n.Span())
		return cls.Instance
	}
	for i, p := range ctorFn.Params {
		if !Satisfies(p, argTys[i]) {
			c.addDiag(diagnostics.NotAssignable{Expected: p, Actual: argTys[i]}, n.Args[i].Span())
		}
	}
	return cls.Instance
}

func (c *BaseChecker) checkCall(n *ast.CallExpr) types.Ty {
	calleeTy := c.checkExpr(n.Callee)
	argTys := make([]types.Ty, len(n.Args))
	for i, a := range n.Args {
		argTys[i] = c.checkExpr(a)
	}
	resolved := types.Resolve(calleeTy)
	if isErr(resolved) {
		return c.Ctx.Constants.Err
	}
	fn, ok := resolved.Kind().(types.Function)
	if !ok {
		c.addDiag(diagnostics.NotCallable{Ty: resolved}, n.Callee.Span())
		return c.Ctx.Constants.Err
	}
	if len(argTys) != len(fn.Params) {
		c.addDiag(diagnostics.WrongNumArgs{Expected: len(fn.Params), Actual: len(argTys)}, n.Span())
		return fn.Ret
	}
	for i, p := range fn.Params {
		if !Satisfies(p, argTys[i]) {
			c.addDiag(diagnostics.NotAssignable{Expected: p, Actual: argTys[i]}, n.Args[i].Span())
		}
	}
	return fn.Ret
}
