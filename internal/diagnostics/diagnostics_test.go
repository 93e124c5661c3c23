package diagnostics

import (
	"strings"
	"testing"

	"github.com/funvibe/sealcheck/internal/token"
	"github.com/funvibe/sealcheck/internal/types"
)

func TestRenderIncludesPositionAndCode(t *testing.T) {
	sm := token.NewSourceMap("t.seal", "let x = 1\nx()\n")
	d := New(CannotFindName{Name: "y"}, token.Span{Lo: 10, Hi: 11})

	got := d.Render(sm)
	if !strings.Contains(got, "2:1") {
		t.Errorf("Render() = %q, want to contain line:col 2:1", got)
	}
	if !strings.Contains(got, string(CodeCannotFindName)) {
		t.Errorf("Render() = %q, want to contain code %s", got, CodeCannotFindName)
	}
	if !strings.Contains(got, "cannot find name 'y'") {
		t.Errorf("Render() = %q, want to contain message text", got)
	}
}

func TestNotAssignableMessageFormatsBothTypes(t *testing.T) {
	ctx := types.NewContext()
	k := NotAssignable{Expected: ctx.Constants.String, Actual: ctx.Constants.Number}
	want := "type 'number' is not assignable to type 'string'"
	if got := k.Message(); got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}

func TestParseErrorRenderMatchesDiagnosticShape(t *testing.T) {
	sm := token.NewSourceMap("t.seal", "let x = \n")
	err := NewParseError(token.Span{Lo: 8, Hi: 9}, "unexpected end of input")
	got := err.Render(sm)
	if !strings.Contains(got, "1:9") {
		t.Errorf("Render() = %q, want to contain 1:9", got)
	}
}
