package lexer

import (
	"testing"

	"github.com/funvibe/sealcheck/internal/token"
)

func TestLexBasicTokens(t *testing.T) {
	src := `let x: number = 42;`
	toks, errs := New(src).Lex()
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	want := []token.Kind{
		token.LET, token.IDENT, token.COLON, token.IDENT,
		token.ASSIGN, token.NUMBER, token.SEMI, token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: kind = %v, want %v (%q)", i, toks[i].Kind, k, toks[i].Lexeme)
		}
	}
}

func TestLexOperators(t *testing.T) {
	src := `=== !== <= >= && || =>`
	toks, errs := New(src).Lex()
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	want := []token.Kind{
		token.EQ, token.NOT_EQ, token.LT_EQ, token.GT_EQ,
		token.AND_AND, token.OR_OR, token.ARROW, token.EOF,
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: kind = %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestLexStringEscapes(t *testing.T) {
	src := `"a\nb"`
	toks, errs := New(src).Lex()
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	if toks[0].Kind != token.STRING || toks[0].Lexeme != "a\nb" {
		t.Errorf("got %+v, want STRING \"a\\nb\"", toks[0])
	}
}

func TestLexIllegalCharacterReported(t *testing.T) {
	src := `let x = @;`
	_, errs := New(src).Lex()
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
}

func TestLexNumberLiteralForms(t *testing.T) {
	for _, src := range []string{"42", "3.14", "1e10", "1.5e-3"} {
		toks, errs := New(src).Lex()
		if len(errs) != 0 {
			t.Fatalf("%q: unexpected errors: %v", src, errs)
		}
		if toks[0].Kind != token.NUMBER || toks[0].Lexeme != src {
			t.Errorf("%q: got %+v", src, toks[0])
		}
	}
}
