package checker

import (
	"strings"
	"testing"

	"github.com/funvibe/sealcheck/internal/diagnostics"
	"github.com/funvibe/sealcheck/internal/parser"
	"github.com/funvibe/sealcheck/internal/types"
)

// check parses and checks src end to end, failing the test immediately
// on a parse error (these scenarios are all meant to be syntactically
// valid Seal, parse failure is always a test bug).
func check(t *testing.T, src string) []diagnostics.Diagnostic {
	t.Helper()
	prog, errs := parser.ParseFile(src)
	if len(errs) != 0 {
		var msgs []string
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		t.Fatalf("unexpected parse errors:\n%s\nsrc: %s", strings.Join(msgs, "\n"), src)
	}
	ctx := types.NewContext()
	return NewTopLevelChecker(ctx).CheckProgram(prog)
}

func expectNoDiags(t *testing.T, src string) {
	t.Helper()
	diags := check(t, src)
	if len(diags) > 0 {
		var msgs []string
		for _, d := range diags {
			msgs = append(msgs, string(d.Kind.Code())+": "+d.Kind.Message())
		}
		t.Fatalf("expected no diagnostics, got:\n%s\nsrc: %s", strings.Join(msgs, "\n"), src)
	}
}

func expectDiagCode(t *testing.T, src string, code diagnostics.Code) {
	t.Helper()
	diags := check(t, src)
	for _, d := range diags {
		if d.Kind.Code() == code {
			return
		}
	}
	var msgs []string
	for _, d := range diags {
		msgs = append(msgs, string(d.Kind.Code())+": "+d.Kind.Message())
	}
	t.Fatalf("expected a %s diagnostic, got:\n%s\nsrc: %s", code, strings.Join(msgs, "\n"), src)
}

func TestVarDeclAssignabilityOK(t *testing.T) {
	expectNoDiags(t, `let x: number = 1;`)
}

func TestVarDeclAssignabilityMismatch(t *testing.T) {
	expectDiagCode(t, `let x: number = "a";`, diagnostics.CodeNotAssignable)
}

func TestVarNotAllowed(t *testing.T) {
	expectDiagCode(t, `var x = 1;`, diagnostics.CodeVarNotAllowed)
}

func TestConstRequiresInit(t *testing.T) {
	expectDiagCode(t, `const x: number;`, diagnostics.CodeConstMissingInit)
}

func TestConstNarrowLiteralType(t *testing.T) {
	// const keeps x at its initializer's literal type `1`, and a later
	// `let` annotated `string` rejects it.
	expectDiagCode(t, `
		const x = 1;
		let y: string = x;
	`, diagnostics.CodeNotAssignable)
}

func TestLetWithNoAnnotationOrInitLocksTypeOnFirstAssignment(t *testing.T) {
	// `let x;` has no annotation and no initializer, so its declared
	// type is a placeholder that only resolves on the first real
	// assignment — after that it behaves exactly like an annotated
	// `let`, rejecting a later assignment of an incompatible type.
	expectDiagCode(t, `
		let x;
		x = 5;
		x = "oops";
	`, diagnostics.CodeNotAssignable)
}

func TestLetWithNoAnnotationOrInitAcceptsSameTypeLater(t *testing.T) {
	expectNoDiags(t, `
		let x;
		x = 5;
		x = 6;
	`)
}

func TestLetWidensLiteral(t *testing.T) {
	// `let` widens the literal 1 to `number`, so reassigning any other
	// number must be allowed.
	expectNoDiags(t, `
		let x = 1;
		x = 2;
	`)
}

func TestCannotAssignToConst(t *testing.T) {
	expectDiagCode(t, `
		const x = 1;
		x = 2;
	`, diagnostics.CodeCannotAssignToConst)
}

func TestCannotFindName(t *testing.T) {
	expectDiagCode(t, `let x = y;`, diagnostics.CodeCannotFindName)
}

func TestUsedBeforeAssigned(t *testing.T) {
	expectDiagCode(t, `
		let x: number;
		let y = x;
	`, diagnostics.CodeUsedBeforeAssigned)
}

func TestFunctionDeclReturnTypeChecked(t *testing.T) {
	expectNoDiags(t, `function add(a: number, b: number): number { return a + b; }`)
}

func TestFunctionReturnMismatch(t *testing.T) {
	expectDiagCode(t, `function f(): number { return "nope"; }`, diagnostics.CodeNotAssignable)
}

func TestFunctionMissingReturnAnnotationDefaultsToVoid(t *testing.T) {
	// no return-type annotation means Void, not an inferred type: a
	// `return 1;` inside still has to satisfy Void and fails, and the
	// call site sees `f`'s return type as Void regardless.
	expectDiagCode(t, `
		function f() { return 1; }
		let x: number = f();
	`, diagnostics.CodeNotAssignable)
}

func TestFunctionParamMissingTypeAnn(t *testing.T) {
	expectDiagCode(t, `function f(a) { return a; }`, diagnostics.CodeParamMissingTypeAnn)
}

func TestArrowFunctionConciseBody(t *testing.T) {
	expectNoDiags(t, `let f = (a: number) => a + 1;`)
}

func TestMutualRecursionAcrossTopLevelFunctions(t *testing.T) {
	expectNoDiags(t, `
		function isEven(n: number): boolean {
			if (n === 0) { return true; }
			return isOdd(n - 1);
		}
		function isOdd(n: number): boolean {
			if (n === 0) { return false; }
			return isEven(n - 1);
		}
	`)
}

func TestCallWrongArgCount(t *testing.T) {
	expectDiagCode(t, `
		function f(a: number): number { return a; }
		f(1, 2);
	`, diagnostics.CodeWrongNumArgs)
}

func TestCallNotCallable(t *testing.T) {
	expectDiagCode(t, `
		let x = 1;
		x(1);
	`, diagnostics.CodeNotCallable)
}

func TestIfTypeofNarrowingNoDiagnosticInEitherBranch(t *testing.T) {
	expectNoDiags(t, `
		function f(x: number | string): string {
			if (typeof x === "string") {
				return x;
			} else {
				return x.toString();
			}
		}
	`)
}

func TestSwitchNoOverlapRaised(t *testing.T) {
	expectDiagCode(t, `
		let x: number = 1;
		switch (x) {
			case "a": break;
		}
	`, diagnostics.CodeNoOverlap)
}

func TestBreakIsANoOpEvenOutsideALoop(t *testing.T) {
	// spec: break/continue carry no type information and are never
	// rejected for structural position, even at the top level.
	expectNoDiags(t, `break;`)
}

func TestContinueInsideLoopOK(t *testing.T) {
	expectNoDiags(t, `
		for (let i = 0; i < 10; i = i + 1) {
			if (i === 5) { continue; }
		}
	`)
}

func TestReturnOutsideFunction(t *testing.T) {
	expectDiagCode(t, `return 1;`, diagnostics.CodeUnexpectedReturn)
}

func TestClassPropertyAndConstructor(t *testing.T) {
	expectNoDiags(t, `
		class Point {
			x: number;
			constructor(x: number) { this.x = x; }
			getX(): number { return this.x; }
		}
		let p = new Point(1);
		let n: number = p.getX();
	`)
}

func TestClassMissingPropTypeOrInit(t *testing.T) {
	expectDiagCode(t, `
		class Broken {
			x;
			constructor() {}
		}
	`, diagnostics.CodeClassPropMissingTypeOrInit)
}

func TestClassConstructorCannotReturnValue(t *testing.T) {
	expectDiagCode(t, `
		class Broken {
			x: number;
			constructor(x: number) { this.x = x; return x; }
		}
	`, diagnostics.CodeClassCtorWithReturn)
}

func TestClassInheritanceNominalAssignability(t *testing.T) {
	expectNoDiags(t, `
		class Animal {
			name: string;
			constructor(name: string) { this.name = name; }
		}
		class Dog extends Animal {
			constructor(name: string) { this.name = name; }
		}
		function feed(a: Animal): void {}
		let d = new Dog("Rex");
		feed(d);
	`)
}

func TestExtendsNonClassRejected(t *testing.T) {
	expectDiagCode(t, `
		interface NotAClass { x: number; }
		class Bad extends NotAClass {
			constructor() {}
		}
	`, diagnostics.CodeExtendsNonClass)
}

func TestInterfaceForwardReferenceEitherOrder(t *testing.T) {
	expectNoDiags(t, `
		interface A { b: B; }
		interface B { n: number; }
	`)
}

func TestTypeAliasResolved(t *testing.T) {
	expectNoDiags(t, `
		type ID = number;
		let id: ID = 1;
	`)
}

func TestExcessPropertyRejected(t *testing.T) {
	expectDiagCode(t, `
		interface Point { x: number; y: number; }
		let p: Point = { x: 1, y: 2, z: 3 };
	`, diagnostics.CodeNotAssignable)
}

func TestArrayLiteralEmptyIsNeverElement(t *testing.T) {
	expectNoDiags(t, `let xs: number[] = [];`)
}

func TestArrayElementAssignabilityViaAnnotation(t *testing.T) {
	expectNoDiags(t, `let xs: number[] = [1, 2, 3];`)
}

func TestTryCatchParamUntyped(t *testing.T) {
	expectNoDiags(t, `
		function f(): void {
			try {
				let x = 1;
			} catch (e) {
				let y = e;
			}
		}
	`)
}

func TestTemplateLiteralProducesString(t *testing.T) {
	expectNoDiags(t, "let s: string = `a ${1 + 2} b`;")
}

func TestPropertyDoesNotExist(t *testing.T) {
	expectDiagCode(t, `
		interface Point { x: number; }
		let p: Point = { x: 1 };
		let y = p.z;
	`, diagnostics.CodePropertyDoesNotExist)
}

func TestStringPrototypeMethod(t *testing.T) {
	expectNoDiags(t, `let n: number = "hello".length;`)
}
