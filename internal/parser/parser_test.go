package parser

import (
	"testing"

	"github.com/funvibe/sealcheck/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, errs := ParseFile(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	return prog
}

func TestParseVarDecl(t *testing.T) {
	prog := mustParse(t, `let x: number = 1;`)
	if len(prog.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Statements))
	}
	decl, ok := prog.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("got %T, want *ast.VarDecl", prog.Statements[0])
	}
	if decl.Kind != ast.DeclLet || decl.Name.Name != "x" {
		t.Errorf("got %+v", decl)
	}
}

func TestParseFunctionDecl(t *testing.T) {
	prog := mustParse(t, `function add(a: number, b: number): number { return a + b; }`)
	fn, ok := prog.Statements[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("got %T, want *ast.FunctionDecl", prog.Statements[0])
	}
	if fn.Name.Name != "add" || len(fn.Params) != 2 {
		t.Errorf("got %+v", fn)
	}
	if len(fn.Body.Statements) != 1 {
		t.Errorf("got %d body statements, want 1", len(fn.Body.Statements))
	}
}

func TestParseIfElse(t *testing.T) {
	prog := mustParse(t, `if (x === 1) { y = 2; } else { y = 3; }`)
	ifStmt, ok := prog.Statements[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.IfStmt", prog.Statements[0])
	}
	if ifStmt.Else == nil {
		t.Errorf("expected an else clause")
	}
}

func TestParseClassDecl(t *testing.T) {
	prog := mustParse(t, `
		class Point {
			x: number;
			constructor(x: number) { this.x = x; }
			getX(): number { return this.x; }
		}
	`)
	cls, ok := prog.Statements[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("got %T, want *ast.ClassDecl", prog.Statements[0])
	}
	if len(cls.Members) != 3 {
		t.Fatalf("got %d members, want 3", len(cls.Members))
	}
}

func TestParseArrowFunctionVsParenExpr(t *testing.T) {
	prog := mustParse(t, `let f = (a: number) => a + 1;`)
	decl := prog.Statements[0].(*ast.VarDecl)
	if _, ok := decl.Init.(*ast.ArrowFunction); !ok {
		t.Fatalf("got %T, want *ast.ArrowFunction", decl.Init)
	}

	prog2 := mustParse(t, `let g = (1 + 2);`)
	decl2 := prog2.Statements[0].(*ast.VarDecl)
	if _, ok := decl2.Init.(*ast.BinaryExpr); !ok {
		t.Fatalf("got %T, want *ast.BinaryExpr", decl2.Init)
	}
}

func TestParseUnionAndArrayTypes(t *testing.T) {
	prog := mustParse(t, `let x: number[] | string;`)
	decl := prog.Statements[0].(*ast.VarDecl)
	union, ok := decl.TypeAnn.(*ast.UnionType)
	if !ok {
		t.Fatalf("got %T, want *ast.UnionType", decl.TypeAnn)
	}
	if len(union.Members) != 2 {
		t.Fatalf("got %d union members, want 2", len(union.Members))
	}
	if _, ok := union.Members[0].(*ast.ArrayType); !ok {
		t.Errorf("first member = %T, want *ast.ArrayType", union.Members[0])
	}
}

func TestParseTryCatchRejectsTypedCatchParam(t *testing.T) {
	_, errs := ParseFile(`try { f(); } catch (e: number) { }`)
	if len(errs) == 0 {
		t.Fatalf("expected a parse error for a typed catch parameter")
	}
}

func TestParseTemplateLiteralInterpolation(t *testing.T) {
	prog := mustParse(t, "let s = `a ${1 + 2} b`;")
	decl := prog.Statements[0].(*ast.VarDecl)
	tmpl, ok := decl.Init.(*ast.TemplateLiteral)
	if !ok {
		t.Fatalf("got %T, want *ast.TemplateLiteral", decl.Init)
	}
	if len(tmpl.Parts) != 3 {
		t.Fatalf("got %d parts, want 3 (lit, expr, lit)", len(tmpl.Parts))
	}
	if _, ok := tmpl.Parts[1].(*ast.BinaryExpr); !ok {
		t.Errorf("middle part = %T, want *ast.BinaryExpr", tmpl.Parts[1])
	}
}
