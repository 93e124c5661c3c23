package types

// Constants holds the small set of well-known Ty handles the checker
// needs by name rather than by constructing them fresh at every use
// site: the base primitive kinds, the built-in method tables attached
// to number/string values, the `typeof` result union, and the builtin
// Object/RegExp interfaces a few expression forms reference.
type Constants struct {
	Void    Ty
	Never   Ty
	Unknown Ty
	Err     Ty
	Null    Ty
	Boolean Ty
	Number  Ty
	String  Ty

	// ProtoNumber and ProtoString are Interface-kinded types describing
	// the methods available on a bare number/string value (`(1).toFixed(2)`,
	// `"a".length`, `"a".toUpperCase()`) — looked up by the checker's
	// property-access handling when the base expression's type is a
	// Number or String kind rather than an Object/Interface/Class.
	ProtoNumber Ty
	ProtoString Ty

	// TypeOf is the union of string literal types `typeof` can produce:
	// the type the checker gives every `typeof x` expression.
	TypeOf Ty

	// Object is the builtin top-level structural object type (no
	// declared fields) that a bare `object` type annotation resolves to.
	Object Ty

	// RegExp is the builtin interface describing the result of a regex
	// literal: `{ test: (s: string) => boolean; source: string }`.
	RegExp Ty
}

func newConstants(ctx *Context) *Constants {
	in := ctx.Interner

	c := &Constants{
		Void:    in.NewVoid(),
		Never:   in.NewNever(),
		Unknown: in.NewUnknown(),
		Err:     in.NewErr(),
		Null:    in.NewNull(),
		Boolean: in.NewBoolean(),
		Number:  in.NewNumber(),
		String:  in.NewString(),
	}

	numStr := in.NewFunction(nil, c.String)
	numToFixed := in.NewFunction([]Ty{c.Number}, c.String)
	c.ProtoNumber = in.NewInterface("Number", []Field{
		{Name: "toString", Ty: numStr},
		{Name: "toFixed", Ty: numToFixed},
	})

	strLen := c.Number
	strUpper := in.NewFunction(nil, c.String)
	strLower := in.NewFunction(nil, c.String)
	strCharAt := in.NewFunction([]Ty{c.Number}, c.String)
	strIncludes := in.NewFunction([]Ty{c.String}, c.Boolean)
	strSlice := in.NewFunction([]Ty{c.Number, c.Number}, c.String)
	c.ProtoString = in.NewInterface("String", []Field{
		{Name: "length", Ty: strLen},
		{Name: "toUpperCase", Ty: strUpper},
		{Name: "toLowerCase", Ty: strLower},
		{Name: "charAt", Ty: strCharAt},
		{Name: "includes", Ty: strIncludes},
		{Name: "slice", Ty: strSlice},
	})

	c.TypeOf = in.NewUnion([]Ty{
		in.NewStringLiteral("string"),
		in.NewStringLiteral("number"),
		in.NewStringLiteral("boolean"),
		in.NewStringLiteral("object"),
		in.NewStringLiteral("function"),
		in.NewStringLiteral("undefined"),
	})

	c.Object = in.NewObject(nil)

	regexTest := in.NewFunction([]Ty{c.String}, c.Boolean)
	c.RegExp = in.NewInterface("RegExp", []Field{
		{Name: "test", Ty: regexTest},
		{Name: "source", Ty: c.String},
	})

	return c
}
