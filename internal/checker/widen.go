package checker

import "github.com/funvibe/sealcheck/internal/types"

// Widen returns the base (non-literal) type for a literal Number,
// String, or Boolean kind, and returns every other type unchanged. A
// `let`/`var` declaration with no type annotation widens its inferred
// type through this function; `const` and `as const` skip it entirely
// so the narrow literal type is kept.
func Widen(ctx *types.Context, t types.Ty) types.Ty {
	switch t.Kind().(type) {
	case types.Number:
		return ctx.Constants.Number
	case types.String:
		return ctx.Constants.String
	case types.Boolean:
		return ctx.Constants.Boolean
	default:
		return t
	}
}
