package diagnostics

import (
	"fmt"

	"github.com/funvibe/sealcheck/internal/token"
)

// Phase distinguishes which front-end stage produced a ParseError, kept
// distinct from a checker Diagnostic per spec.md's "surface parser is
// an external collaborator" framing: a failure to lex or parse never
// becomes a Diagnostic value. The lexer and parser record it and carry
// on; a file with any ParseError is then not type-checked.
type Phase string

const (
	PhaseLexer  Phase = "lexer"
	PhaseParser Phase = "parser"
)

// ParseError is a lexer- or parser-phase failure, reported before any
// checker runs at all. File is optional context for Error(); the lexer
// and parser leave it empty, and the CLI prefixes the path itself when
// it prints a Render()ed error.
type ParseError struct {
	Phase   Phase
	Span    token.Span
	Message string
	File    string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: [%s] %s", e.File, e.Phase, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Phase, e.Message)
}

// Render formats a ParseError the same "line:col: message" shape a
// Diagnostic renders in, so the CLI can print both phases uniformly.
func (e *ParseError) Render(sm *token.SourceMap) string {
	pos := sm.Resolve(e.Span.Lo)
	return fmt.Sprintf("%d:%d: %s", pos.Line, pos.Column, e.Message)
}

// NewLexError builds a ParseError for a lexer-phase failure.
func NewLexError(span token.Span, format string, args ...interface{}) *ParseError {
	return &ParseError{Phase: PhaseLexer, Span: span, Message: fmt.Sprintf(format, args...)}
}

// NewParseError builds a ParseError for a parser-phase failure.
func NewParseError(span token.Span, format string, args ...interface{}) *ParseError {
	return &ParseError{Phase: PhaseParser, Span: span, Message: fmt.Sprintf(format, args...)}
}

// Unimplemented reports a surface construct recognized by the grammar
// but intentionally out of scope for this checker, per spec.md §7's
// fast-fail-without-being-a-diagnostic rule for unimplemented constructs.
func Unimplemented(span token.Span, construct string) *ParseError {
	return &ParseError{Phase: PhaseParser, Span: span, Message: fmt.Sprintf("unimplemented surface feature: %s", construct)}
}
