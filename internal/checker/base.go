package checker

import (
	"github.com/funvibe/sealcheck/internal/ast"
	"github.com/funvibe/sealcheck/internal/diagnostics"
	"github.com/funvibe/sealcheck/internal/token"
	"github.com/funvibe/sealcheck/internal/types"
)

// BaseChecker walks declarations, statements, and expressions against
// one lexical Scope chain, accumulating diagnostics. FunctionChecker
// and ClassChecker both embed it to add the extra state a function
// body or class body needs (expected return type, constructor rules)
// without duplicating the statement/expression walking logic.
type BaseChecker struct {
	Ctx   *types.Context
	Scope *Scope
	Diags *[]diagnostics.Diagnostic

	// Named declares every interface, class, and type alias visible from
	// this point in the program, resolved by name rather than by lexical
	// scope — Seal's declaration namespace is flat and forward-
	// referenceable within a file, unlike its variable namespace.
	Named map[string]types.Ty

	// Returns receives ReturnStmt nodes seen while walking statements.
	// nil at top level, where a return is always UnexpectedReturn;
	// FunctionChecker installs itself here before checking a body.
	Returns returnSink
}

// returnSink lets FunctionChecker intercept ReturnStmt handling. When the
// sink is a FunctionChecker, checkStmt hands the return to a copy of it
// built on the checker that reached the statement, so the returned value
// is checked in that checker's scope.
type returnSink interface {
	handleReturn(ret *ast.ReturnStmt)
}

// NewBaseChecker returns a checker rooted at scope, sharing ctx, a
// diagnostics sink, and the named-declaration table with every other
// checker in the same program.
func NewBaseChecker(ctx *types.Context, scope *Scope, diags *[]diagnostics.Diagnostic, named map[string]types.Ty) *BaseChecker {
	return &BaseChecker{Ctx: ctx, Scope: scope, Diags: diags, Named: named}
}

// sub returns a new BaseChecker sharing all state except Scope, for
// checking a nested construct (branch, loop body, function body) whose
// scope must differ from the parent's.
func (c *BaseChecker) sub(scope *Scope) *BaseChecker {
	return &BaseChecker{Ctx: c.Ctx, Scope: scope, Diags: c.Diags, Named: c.Named, Returns: c.Returns}
}

func (c *BaseChecker) addDiag(kind diagnostics.Kind, span token.Span) {
	*c.Diags = append(*c.Diags, diagnostics.New(kind, span))
}

// resolveTypeExpr turns a parsed type annotation into an interned Ty,
// looking up bare names first against the small set of built-in
// primitive names and then against Named declarations.
func (c *BaseChecker) resolveTypeExpr(te ast.TypeExpr) types.Ty {
	if te == nil {
		return c.Ctx.Constants.Unknown
	}
	switch t := te.(type) {
	case *ast.TypeRef:
		return c.resolveTypeName(t)
	case *ast.LiteralType:
		switch t.Kind {
		case ast.LiteralTypeString:
			return c.Ctx.Interner.NewStringLiteral(t.StringValue)
		case ast.LiteralTypeNumber:
			return c.Ctx.Interner.NewNumberLiteral(t.NumberValue)
		case ast.LiteralTypeBoolean:
			return c.Ctx.Interner.NewBooleanLiteral(t.BooleanValue)
		}
		return c.Ctx.Constants.Unknown
	case *ast.ArrayType:
		return c.Ctx.Interner.NewArray(c.resolveTypeExpr(t.Element))
	case *ast.TupleType:
		elems := make([]types.Ty, len(t.Elements))
		for i, e := range t.Elements {
			elems[i] = c.resolveTypeExpr(e)
		}
		return c.Ctx.Interner.NewTuple(elems)
	case *ast.UnionType:
		arms := make([]types.Ty, len(t.Members))
		for i, m := range t.Members {
			arms[i] = c.resolveTypeExpr(m)
		}
		return c.Ctx.Interner.NewUnion(arms)
	case *ast.FunctionType:
		params := make([]types.Ty, len(t.Params))
		for i, p := range t.Params {
			params[i] = c.resolveTypeExpr(p.TypeAnn)
		}
		return c.Ctx.Interner.NewFunction(params, c.resolveTypeExpr(t.Ret))
	case *ast.ObjectType:
		fields := make([]types.Field, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = types.Field{Name: f.Name, Ty: c.resolveTypeExpr(f.TypeAnn)}
		}
		return c.Ctx.Interner.NewObject(fields)
	default:
		return c.Ctx.Constants.Unknown
	}
}

func (c *BaseChecker) resolveTypeName(t *ast.TypeRef) types.Ty {
	switch t.Name {
	case "number":
		return c.Ctx.Constants.Number
	case "string":
		return c.Ctx.Constants.String
	case "boolean":
		return c.Ctx.Constants.Boolean
	case "void":
		return c.Ctx.Constants.Void
	case "unknown":
		return c.Ctx.Constants.Unknown
	case "null":
		return c.Ctx.Constants.Null
	case "object":
		return c.Ctx.Constants.Object
	}
	if ty, ok := c.Named[t.Name]; ok {
		// A class name in type position denotes the class's instances: the
		// same Instance interface that `new` produces.
		if cls, ok := types.Resolve(ty).Kind().(types.Class); ok {
			return cls.Instance
		}
		return ty
	}
	c.addDiag(diagnostics.CannotFindName{Name: t.Name}, t.Span())
	return c.Ctx.Constants.Err
}
