package checker

import (
	"github.com/funvibe/sealcheck/internal/ast"
	"github.com/funvibe/sealcheck/internal/diagnostics"
	"github.com/funvibe/sealcheck/internal/symbols"
	"github.com/funvibe/sealcheck/internal/types"
)

// TopLevelChecker is the entry point for checking one parsed program:
// it runs a forward-reference pre-pass over interface, type alias,
// class, and function declarations before walking every statement in
// source order, so declarations can refer to each other regardless of
// which one appears first in the file.
type TopLevelChecker struct {
	*BaseChecker
}

// NewTopLevelChecker returns a checker rooted at a fresh top-level
// scope, ready to check one program.
func NewTopLevelChecker(ctx *types.Context) *TopLevelChecker {
	scope := NewScope(symbols.NewScope(), nil)
	diags := &[]diagnostics.Diagnostic{}
	named := make(map[string]types.Ty)
	return &TopLevelChecker{BaseChecker: NewBaseChecker(ctx, scope, diags, named)}
}

// CheckProgram checks prog end to end and returns every diagnostic
// raised, in the order they were found.
func (tc *TopLevelChecker) CheckProgram(prog *ast.Program) []diagnostics.Diagnostic {
	placeholders := make(map[string]*types.Ty)

	for _, stmt := range prog.Statements {
		switch s := stmt.(type) {
		case *ast.InterfaceDecl:
			ptr := new(types.Ty)
			placeholders[s.Name.Name] = ptr
			tc.Named[s.Name.Name] = tc.Ctx.Interner.NewLazy(func() types.Ty { return *ptr })
		case *ast.TypeAliasDecl:
			ptr := new(types.Ty)
			placeholders[s.Name.Name] = ptr
			tc.Named[s.Name.Name] = tc.Ctx.Interner.NewLazy(func() types.Ty { return *ptr })
		case *ast.ClassDecl:
			ptr := new(types.Ty)
			placeholders[s.Name.Name] = ptr
			tc.Named[s.Name.Name] = tc.Ctx.Interner.NewLazy(func() types.Ty { return *ptr })
		}
	}

	// Second pass: resolve the placeholders for real. Interfaces and type
	// aliases may reference one another (and classes) in any order since
	// resolveTypeExpr only ever looks up the Lazy stand-in in tc.Named.
	// Class `extends` is resolved eagerly against tc.Named, so a class
	// that extends another class declared later in the file sees an
	// unresolved placeholder — classes should be declared before their
	// subclasses within a file.
	for _, stmt := range prog.Statements {
		switch s := stmt.(type) {
		case *ast.InterfaceDecl:
			fields := make([]types.Field, len(s.Fields))
			for i, f := range s.Fields {
				fields[i] = types.Field{Name: f.Name, Ty: tc.resolveTypeExpr(f.TypeAnn)}
			}
			*placeholders[s.Name.Name] = tc.Ctx.Interner.NewInterface(s.Name.Name, fields)
		case *ast.TypeAliasDecl:
			*placeholders[s.Name.Name] = tc.resolveTypeExpr(s.Type)
		case *ast.ClassDecl:
			classTy := tc.declareClassShape(s)
			*placeholders[s.Name.Name] = classTy
			// A class name is also a value: `new X(...)` resolves X through
			// the ordinary binding chain, the same way a function's
			// pre-declared signature is looked up in the final pass.
			tc.Scope.Declare(s.Name.Name, &Binding{
				Symbol:   s.Name.Symbol(),
				Declared: classTy,
				Current:  classTy,
				Const:    true,
				Assigned: true,
			})
		}
	}

	// Third pass: pre-declare function signatures so mutually recursive
	// top-level functions can call each other regardless of order.
	for _, stmt := range prog.Statements {
		fd, ok := stmt.(*ast.FunctionDecl)
		if !ok {
			continue
		}
		params := make([]types.Ty, len(fd.Params))
		for i, p := range fd.Params {
			if p.TypeAnn == nil {
				params[i] = tc.Ctx.Constants.Err
			} else {
				params[i] = tc.resolveTypeExpr(p.TypeAnn)
			}
		}
		var ret types.Ty
		if fd.ReturnType != nil {
			ret = tc.resolveTypeExpr(fd.ReturnType)
		} else {
			// Matches CheckFunctionLike's own default: no inference across
			// a function boundary, a missing annotation means Void.
			ret = tc.Ctx.Constants.Void
		}
		sig := tc.Ctx.Interner.NewFunction(params, ret)
		tc.Scope.Declare(fd.Name.Name, &Binding{
			Symbol:   fd.Name.Symbol(),
			Declared: sig,
			Current:  sig,
			Const:    true,
			Assigned: true,
		})
	}

	// Final pass: check every statement body in source order. Classes
	// and functions, already registered above, are checked in place by
	// checkClassDecl/checkFunctionDecl finding their existing entry
	// rather than re-declaring it.
	for _, stmt := range prog.Statements {
		tc.checkStmt(stmt)
	}

	return *tc.Diags
}
