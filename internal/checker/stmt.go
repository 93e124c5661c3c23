package checker

import (
	"github.com/funvibe/sealcheck/internal/ast"
	"github.com/funvibe/sealcheck/internal/diagnostics"
	"github.com/funvibe/sealcheck/internal/symbols"
	"github.com/funvibe/sealcheck/internal/types"
)

// checkStmt dispatches one statement, mutating c.Scope's bindings in
// place for declarations and assignments reached directly in this
// scope. Constructs that open a new lexical scope (blocks, loop
// bodies, if/else arms, switch cases, catch clauses) check their
// contents through a child *BaseChecker built with Scope.Child or
// Scope.Clone, so mutations inside them don't leak where they
// shouldn't.
func (c *BaseChecker) checkStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		c.checkExpr(s.Expr)
	case *ast.BlockStmt:
		child := c.sub(c.Scope.Clone())
		child.checkBlockContents(s)
	case *ast.VarDecl:
		c.checkVarDecl(s)
	case *ast.FunctionDecl:
		c.checkFunctionDecl(s)
	case *ast.ClassDecl:
		c.checkClassDecl(s)
	case *ast.InterfaceDecl, *ast.TypeAliasDecl:
		// Registered up front by the TopLevelChecker pre-pass; nothing
		// further to check at the statement level.
	case *ast.ReturnStmt:
		if fc, ok := c.Returns.(*FunctionChecker); ok {
			// Check the returned value in this checker's scope (a narrowed
			// branch, a nested block), not the function body's outermost one.
			(&FunctionChecker{BaseChecker: c, Expected: fc.Expected, IsConstructor: fc.IsConstructor}).handleReturn(s)
		} else if c.Returns != nil {
			c.Returns.handleReturn(s)
		} else {
			c.addDiag(diagnostics.UnexpectedReturn{}, s.Span())
			if s.Value != nil {
				c.checkExpr(s.Value)
			}
		}
	case *ast.IfStmt:
		c.checkIf(s)
	case *ast.WhileStmt:
		c.checkExpr(s.Cond)
		body := c.sub(c.Scope.Clone())
		body.checkStmt(s.Body)
	case *ast.DoWhileStmt:
		body := c.sub(c.Scope.Clone())
		body.checkStmt(s.Body)
		c.checkExpr(s.Cond)
	case *ast.ForStmt:
		c.checkFor(s)
	case *ast.BreakStmt, *ast.ContinueStmt:
		// No-op: break/continue carry no type information and are never
		// rejected for appearing outside a loop.
	case *ast.SwitchStmt:
		c.checkSwitch(s)
	case *ast.ThrowStmt:
		c.checkExpr(s.Value)
	case *ast.TryStmt:
		c.checkTry(s)
	}
}

// checkBlockContents checks block's statements directly in c's own
// scope, without cloning — callers that already hold the right scope
// for the block (a freshly cloned branch/loop/catch scope) use this
// instead of routing back through checkStmt's BlockStmt case, which
// would clone a second time.
func (c *BaseChecker) checkBlockContents(block *ast.BlockStmt) {
	for _, inner := range block.Statements {
		c.checkStmt(inner)
	}
}

func (c *BaseChecker) checkVarDecl(s *ast.VarDecl) {
	if s.Kind == ast.DeclVar {
		c.addDiag(diagnostics.Var{}, s.Span())
	}
	if s.Kind == ast.DeclConst && s.Init == nil {
		c.addDiag(diagnostics.ConstMissingInit{Name: s.Name.Name}, s.Span())
	}

	var declaredTy types.Ty
	if s.Init == nil {
		if s.TypeAnn != nil {
			declaredTy = c.resolveTypeExpr(s.TypeAnn)
		} else {
			// No annotation and no initializer: the declared type is a
			// placeholder until the first real assignment resolves it
			// (checkAssign's Lazy-binding branch).
			declaredTy = c.Ctx.Interner.NewLazy(func() types.Ty { return c.Ctx.Constants.Unknown })
		}
		c.Scope.Declare(s.Name.Name, &Binding{
			Symbol:   s.Name.Symbol(),
			Declared: declaredTy,
			Current:  declaredTy,
			Const:    s.Kind == ast.DeclConst,
			Assigned: false,
		})
		return
	}

	initTy := c.checkExpr(s.Init)
	if s.TypeAnn != nil {
		declaredTy = c.resolveTypeExpr(s.TypeAnn)
		if !Satisfies(declaredTy, initTy) {
			c.addDiag(diagnostics.NotAssignable{Expected: declaredTy, Actual: initTy}, s.Span())
		}
	} else if s.Kind == ast.DeclConst {
		declaredTy = initTy
	} else if _, isAsConst := s.Init.(*ast.AsConstExpr); isAsConst {
		declaredTy = initTy
	} else {
		declaredTy = Widen(c.Ctx, initTy)
	}

	c.Scope.Declare(s.Name.Name, &Binding{
		Symbol:   s.Name.Symbol(),
		Declared: declaredTy,
		Current:  declaredTy,
		Const:    s.Kind == ast.DeclConst,
		Assigned: true,
	})
}

func (c *BaseChecker) checkFunctionDecl(s *ast.FunctionDecl) {
	b, ok := c.Scope.Resolve(s.Name.Name)
	if !ok {
		// Not pre-registered by a TopLevelChecker pass (e.g. a function
		// declared inside a nested block) — check it in place.
		fnTy := c.CheckFunctionLike(symbols.NewScope(), s.Params, s.ReturnType, s.Body, nil, false)
		c.Scope.Declare(s.Name.Name, &Binding{Symbol: s.Name.Symbol(), Declared: fnTy, Current: fnTy, Const: true, Assigned: true})
		return
	}
	fnTy := c.CheckFunctionLike(symbols.NewScope(), s.Params, s.ReturnType, s.Body, nil, false)
	b.Current = fnTy
}

func (c *BaseChecker) checkIf(s *ast.IfStmt) {
	c.checkExpr(s.Cond)
	guard, ok := MatchGuard(c.Ctx, c.Scope, s.Cond)

	thenScope := c.Scope.Clone()
	elseScope := c.Scope.Clone()
	if ok {
		ApplyGuard(thenScope, guard, guard.TrueTy)
		ApplyGuard(elseScope, guard, guard.FalseTy)
	}

	thenChecker := c.sub(thenScope)
	thenChecker.checkStmt(s.Then)
	if s.Else != nil {
		elseChecker := c.sub(elseScope)
		elseChecker.checkStmt(s.Else)
	}
}

func (c *BaseChecker) checkFor(s *ast.ForStmt) {
	loopScope := c.sub(c.Scope.Clone())
	if s.Init != nil {
		loopScope.checkStmt(s.Init)
	}
	if s.Cond != nil {
		loopScope.checkExpr(s.Cond)
	}
	if s.Post != nil {
		loopScope.checkExpr(s.Post)
	}
	loopScope.checkStmt(s.Body)
}

func (c *BaseChecker) checkSwitch(s *ast.SwitchStmt) {
	subjectTy := c.checkExpr(s.Subject)
	for _, kase := range s.Cases {
		caseScope := c.sub(c.Scope.Clone())
		if kase.Test != nil {
			testTy := caseScope.checkExpr(kase.Test)
			if !Overlaps(subjectTy, testTy) {
				caseScope.addDiag(diagnostics.NoOverlap{A: subjectTy, B: testTy}, kase.Test.Span())
			}
		}
		for _, inner := range kase.Statements {
			caseScope.checkStmt(inner)
		}
	}
}

func (c *BaseChecker) checkTry(s *ast.TryStmt) {
	blockChecker := c.sub(c.Scope.Clone())
	blockChecker.checkBlockContents(s.Block)

	if s.Catch != nil {
		catchScope := c.Scope.Clone()
		if s.Catch.Param != nil {
			catchScope.Declare(s.Catch.Param.Name, &Binding{
				Symbol:   s.Catch.Param.Symbol(),
				Declared: c.Ctx.Constants.Unknown,
				Current:  c.Ctx.Constants.Unknown,
				Assigned: true,
			})
		}
		catchChecker := c.sub(catchScope)
		catchChecker.checkBlockContents(s.Catch.Body)
	}
	if s.Finally != nil {
		finallyChecker := c.sub(c.Scope.Clone())
		finallyChecker.checkBlockContents(s.Finally)
	}
}
