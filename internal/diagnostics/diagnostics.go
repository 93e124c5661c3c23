// Package diagnostics defines the checker's diagnostic model: a closed
// set of diagnostic kinds, each carrying exactly the data spec.md §6
// says it needs, plus the message templates used to render them.
package diagnostics

import (
	"fmt"

	"github.com/funvibe/sealcheck/internal/token"
	"github.com/funvibe/sealcheck/internal/types"
)

// Code is the stable, TS-style identifier for a diagnostic kind,
// independent of its rendered message.
type Code string

const (
	CodeVarNotAllowed             Code = "SEAL1001"
	CodeConstMissingInit          Code = "SEAL1002"
	CodeCatchParamTypeAnnotation  Code = "SEAL1003"
	CodeCannotFindName            Code = "SEAL2001"
	CodeNotAssignable             Code = "SEAL2002"
	CodePropertyDoesNotExist      Code = "SEAL2003"
	CodeNotConstructable          Code = "SEAL2004"
	CodeUnexpectedVoid            Code = "SEAL2005"
	CodeNoOverlap                 Code = "SEAL2006"
	CodeUsedBeforeAssigned        Code = "SEAL2007"
	CodeWrongNumArgs              Code = "SEAL2008"
	CodeCannotAssignToConst       Code = "SEAL2009"
	CodeNotCallable                Code = "SEAL2010"
	CodeUnexpectedReturn          Code = "SEAL2011"
	CodeClassPropMissingTypeOrInit Code = "SEAL3001"
	CodeClassCtorWithReturn       Code = "SEAL3002"
	CodeParamMissingTypeAnn       Code = "SEAL1004"
	CodeMissingBody               Code = "SEAL1005"
	CodeNewOpMissingArgs          Code = "SEAL2012"
	CodeBinaryOperatorTypeMismatch Code = "SEAL2013"
	CodeExtendsNonClass           Code = "SEAL3003"
	CodeInvalidNumberLiteral      Code = "SEAL1006"
)

// Kind is one of the closed set of diagnostic kinds the checker can
// raise. Each concrete kind carries exactly the fields its message
// needs — no kind carries a free-form string, so every diagnostic the
// checker ever produces is structured data, not pre-rendered text.
type Kind interface {
	Code() Code
	Message() string
}

type Var struct{}

func (Var) Code() Code      { return CodeVarNotAllowed }
func (Var) Message() string { return "'var' declarations are not allowed; use 'let' or 'const'" }

type ConstMissingInit struct{ Name string }

func (k ConstMissingInit) Code() Code { return CodeConstMissingInit }
func (k ConstMissingInit) Message() string {
	return fmt.Sprintf("'%s' is declared as const but has no initializer", k.Name)
}

type CatchParameterCannotHaveTypeAnnotation struct{ Name string }

func (k CatchParameterCannotHaveTypeAnnotation) Code() Code { return CodeCatchParamTypeAnnotation }
func (k CatchParameterCannotHaveTypeAnnotation) Message() string {
	return fmt.Sprintf("catch clause variable '%s' cannot have a type annotation", k.Name)
}

type CannotFindName struct{ Name string }

func (k CannotFindName) Code() Code { return CodeCannotFindName }
func (k CannotFindName) Message() string {
	return fmt.Sprintf("cannot find name '%s'", k.Name)
}

type NotAssignable struct{ Expected, Actual types.Ty }

func (k NotAssignable) Code() Code { return CodeNotAssignable }
func (k NotAssignable) Message() string {
	return fmt.Sprintf("type '%s' is not assignable to type '%s'", k.Actual, k.Expected)
}

type PropertyDoesNotExist struct {
	Ty  types.Ty
	Key string
}

func (k PropertyDoesNotExist) Code() Code { return CodePropertyDoesNotExist }
func (k PropertyDoesNotExist) Message() string {
	return fmt.Sprintf("property '%s' does not exist on type '%s'", k.Key, k.Ty)
}

type NotConstructable struct{ Ty types.Ty }

func (k NotConstructable) Code() Code { return CodeNotConstructable }
func (k NotConstructable) Message() string {
	return fmt.Sprintf("'%s' is not constructable", k.Ty)
}

type UnexpectedVoid struct{}

func (UnexpectedVoid) Code() Code { return CodeUnexpectedVoid }
func (UnexpectedVoid) Message() string {
	return "unexpected use of 'void' in a value position"
}

type NoOverlap struct{ A, B types.Ty }

func (k NoOverlap) Code() Code { return CodeNoOverlap }
func (k NoOverlap) Message() string {
	return fmt.Sprintf("this comparison appears to be unintentional because the types '%s' and '%s' have no overlap", k.A, k.B)
}

type UsedBeforeAssigned struct{ Name string }

func (k UsedBeforeAssigned) Code() Code { return CodeUsedBeforeAssigned }
func (k UsedBeforeAssigned) Message() string {
	return fmt.Sprintf("variable '%s' is used before being assigned", k.Name)
}

type WrongNumArgs struct{ Expected, Actual int }

func (k WrongNumArgs) Code() Code { return CodeWrongNumArgs }
func (k WrongNumArgs) Message() string {
	return fmt.Sprintf("expected %d arguments, but got %d", k.Expected, k.Actual)
}

type CannotAssignToConst struct{ Name string }

func (k CannotAssignToConst) Code() Code { return CodeCannotAssignToConst }
func (k CannotAssignToConst) Message() string {
	return fmt.Sprintf("cannot assign to '%s' because it is a constant", k.Name)
}

type NotCallable struct{ Ty types.Ty }

func (k NotCallable) Code() Code { return CodeNotCallable }
func (k NotCallable) Message() string {
	return fmt.Sprintf("type '%s' is not callable", k.Ty)
}

type UnexpectedReturn struct{}

func (UnexpectedReturn) Code() Code { return CodeUnexpectedReturn }
func (UnexpectedReturn) Message() string {
	return "a 'return' statement can only be used within a function body"
}

type ClassPropMissingTypeAnnOrInit struct{ Name string }

func (k ClassPropMissingTypeAnnOrInit) Code() Code { return CodeClassPropMissingTypeOrInit }
func (k ClassPropMissingTypeAnnOrInit) Message() string {
	return fmt.Sprintf("property '%s' must either have a type annotation or an initializer", k.Name)
}

type ClassCtorWithReturn struct{}

func (ClassCtorWithReturn) Code() Code { return CodeClassCtorWithReturn }
func (ClassCtorWithReturn) Message() string {
	return "a constructor cannot have a 'return' statement with a value"
}

type ParamMissingTypeAnn struct{ Name string }

func (k ParamMissingTypeAnn) Code() Code { return CodeParamMissingTypeAnn }
func (k ParamMissingTypeAnn) Message() string {
	return fmt.Sprintf("parameter '%s' must have a type annotation", k.Name)
}

type MissingBody struct{ Name string }

func (k MissingBody) Code() Code { return CodeMissingBody }
func (k MissingBody) Message() string {
	return fmt.Sprintf("'%s' is declared but has no body", k.Name)
}

type NewOpMissingArgs struct{ Name string }

func (k NewOpMissingArgs) Code() Code { return CodeNewOpMissingArgs }
func (k NewOpMissingArgs) Message() string {
	return fmt.Sprintf("constructor of '%s' expects arguments that were not provided", k.Name)
}

type BinaryOperatorTypeMismatch struct {
	Op     string
	L, R   types.Ty
}

func (k BinaryOperatorTypeMismatch) Code() Code { return CodeBinaryOperatorTypeMismatch }
func (k BinaryOperatorTypeMismatch) Message() string {
	return fmt.Sprintf("operator '%s' cannot be applied to types '%s' and '%s'", k.Op, k.L, k.R)
}

type ExtendsNonClass struct{ Ty types.Ty }

func (k ExtendsNonClass) Code() Code { return CodeExtendsNonClass }
func (k ExtendsNonClass) Message() string {
	return fmt.Sprintf("class can only extend a class, but '%s' is not one", k.Ty)
}

type InvalidNumberLiteral struct{ Literal string }

func (k InvalidNumberLiteral) Code() Code { return CodeInvalidNumberLiteral }
func (k InvalidNumberLiteral) Message() string {
	return fmt.Sprintf("'%s' is not a valid number literal", k.Literal)
}

// Diagnostic pairs a Kind with the source span it applies to.
type Diagnostic struct {
	Kind Kind
	Span token.Span
}

// New builds a Diagnostic from a Kind and the span it applies to.
func New(kind Kind, span token.Span) Diagnostic {
	return Diagnostic{Kind: kind, Span: span}
}

// Render formats a diagnostic the way the CLI prints it: position
// resolved through sm, code bracketed after the message, matching the
// "line:col: message [CODE]" convention.
func (d Diagnostic) Render(sm *token.SourceMap) string {
	pos := sm.Resolve(d.Span.Lo)
	return fmt.Sprintf("%d:%d: %s [%s]", pos.Line, pos.Column, d.Kind.Message(), d.Kind.Code())
}
