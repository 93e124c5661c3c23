package checker

import (
	"github.com/funvibe/sealcheck/internal/ast"
	"github.com/funvibe/sealcheck/internal/diagnostics"
	"github.com/funvibe/sealcheck/internal/symbols"
	"github.com/funvibe/sealcheck/internal/types"
)

// ClassChecker builds a class's Class Ty from its declaration (instance
// shape, constructor signature, parent link) and then checks every
// member body against that shape.
type ClassChecker struct {
	*BaseChecker
}

// declareClassShape registers decl's name against a fresh DefId and
// its Instance/Constructor Tys, without yet checking any member
// bodies — the pre-pass a TopLevelChecker runs so classes can refer to
// each other regardless of declaration order.
func (c *BaseChecker) declareClassShape(decl *ast.ClassDecl) types.Ty {
	defID := c.Ctx.Defs.Add(symbols.DefClass, decl.Name.Name)

	var parent *types.Ty
	if decl.Extends != nil {
		if parentTy, ok := c.Named[decl.Extends.Name]; ok {
			if _, ok := types.Resolve(parentTy).Kind().(types.Class); ok {
				p := parentTy
				parent = &p
			} else {
				c.addDiag(diagnostics.ExtendsNonClass{Ty: types.Resolve(parentTy)}, decl.Extends.Span())
			}
		} else {
			c.addDiag(diagnostics.CannotFindName{Name: decl.Extends.Name}, decl.Extends.Span())
		}
	}

	var instanceFields []types.Field
	var ctorParams []types.Ty
	for _, m := range decl.Members {
		switch m.Kind {
		case ast.MemberProperty:
			if m.TypeAnn != nil {
				annTy := c.resolveTypeExpr(m.TypeAnn)
				if m.Init != nil {
					if initTy := c.checkExpr(m.Init); !Satisfies(annTy, initTy) {
						c.addDiag(diagnostics.NotAssignable{Expected: annTy, Actual: initTy}, m.Span)
					}
				}
				instanceFields = append(instanceFields, types.Field{Name: m.Name, Ty: annTy})
			} else if m.Init != nil {
				instanceFields = append(instanceFields, types.Field{Name: m.Name, Ty: c.checkExpr(m.Init)})
			} else {
				c.addDiag(diagnostics.ClassPropMissingTypeAnnOrInit{Name: m.Name}, m.Span)
				instanceFields = append(instanceFields, types.Field{Name: m.Name, Ty: c.Ctx.Constants.Err})
			}
		case ast.MemberMethod:
			params := make([]types.Ty, len(m.Params))
			for i, p := range m.Params {
				if p.TypeAnn == nil {
					params[i] = c.Ctx.Constants.Err
				} else {
					params[i] = c.resolveTypeExpr(p.TypeAnn)
				}
			}
			var ret types.Ty = c.Ctx.Constants.Void
			if m.ReturnType != nil {
				ret = c.resolveTypeExpr(m.ReturnType)
			}
			instanceFields = append(instanceFields, types.Field{Name: m.Name, Ty: c.Ctx.Interner.NewFunction(params, ret)})
		case ast.MemberConstructor:
			for _, p := range m.Params {
				if p.TypeAnn == nil {
					ctorParams = append(ctorParams, c.Ctx.Constants.Err)
				} else {
					ctorParams = append(ctorParams, c.resolveTypeExpr(p.TypeAnn))
				}
			}
		}
	}

	if parent != nil {
		if parentInstFields, ok := fieldsOf(types.Resolve(*parent)); ok {
			instanceFields = append(append([]types.Field{}, parentInstFields...), instanceFields...)
		}
	}

	instance := c.Ctx.Interner.NewInterface(decl.Name.Name, instanceFields)
	ctor := c.Ctx.Interner.NewFunction(ctorParams, c.Ctx.Constants.Void)
	classTy := c.Ctx.Interner.NewClass(decl.Name.Name, defID, ctor, instance, parent)
	c.Ctx.SetDefType(defID, classTy)
	return classTy
}

// checkClassDecl checks every member body of a class already present
// in c.Named (registered by a prior declareClassShape pass), binding
// `this` to the class's instance type while checking methods and the
// constructor.
func (c *BaseChecker) checkClassDecl(decl *ast.ClassDecl) {
	classTy, ok := c.Named[decl.Name.Name]
	if !ok {
		classTy = c.declareClassShape(decl)
		c.Named[decl.Name.Name] = classTy
	}

	if b, ok := c.Scope.Resolve(decl.Name.Name); ok {
		b.Current = classTy
	} else {
		// Not pre-registered by a TopLevelChecker pass (e.g. a class
		// declared inside a nested block) — bind it here instead.
		c.Scope.Declare(decl.Name.Name, &Binding{
			Symbol:   decl.Name.Symbol(),
			Declared: classTy,
			Current:  classTy,
			Const:    true,
			Assigned: true,
		})
	}

	cls, ok := types.Resolve(classTy).Kind().(types.Class)
	if !ok {
		return
	}

	thisScope := c.Scope.Clone()
	thisScope.Declare("this", &Binding{
		Symbol:   symbols.NewMain(symbols.NewScope()),
		Declared: cls.Instance,
		Current:  cls.Instance,
		Const:    true,
		Assigned: true,
	})
	cc := &ClassChecker{BaseChecker: c.sub(thisScope)}

	for _, m := range decl.Members {
		switch m.Kind {
		case ast.MemberMethod:
			cc.CheckFunctionLike(symbols.NewScope(), m.Params, m.ReturnType, m.Body, nil, false)
		case ast.MemberConstructor:
			cc.CheckFunctionLike(symbols.NewScope(), m.Params, nil, m.Body, nil, true)
		case ast.MemberProperty:
			// Initializer was already checked once by declareClassShape
			// (to infer its type, or against the property's annotation);
			// re-checking it here with `this` bound would
			// only duplicate diagnostics, since field initializers run
			// before the instance exists and can't reference `this`.
		}
	}
}
