package parser

import (
	"github.com/funvibe/sealcheck/internal/ast"
	"github.com/funvibe/sealcheck/internal/diagnostics"
	"github.com/funvibe/sealcheck/internal/lexer"
)

// ParseFile lexes and parses src in one step, the shape cmd/sealcheck
// and most tests call into. Lex errors and parse errors are returned
// together since both are ParseError values from the same front-end
// phase grouping (spec.md §7's "surface parser is external").
func ParseFile(src string) (*ast.Program, []*diagnostics.ParseError) {
	toks, lexErrs := lexer.New(src).Lex()
	prog, parseErrs := New(toks).Parse()
	errs := make([]*diagnostics.ParseError, 0, len(lexErrs)+len(parseErrs))
	errs = append(errs, lexErrs...)
	errs = append(errs, parseErrs...)
	return prog, errs
}
