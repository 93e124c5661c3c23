package checker

import (
	"testing"

	"github.com/funvibe/sealcheck/internal/symbols"
	"github.com/funvibe/sealcheck/internal/types"
)

func TestSatisfiesPrimitives(t *testing.T) {
	ctx := types.NewContext()
	in := ctx.Interner

	cases := []struct {
		name        string
		target, src types.Ty
		want        bool
	}{
		{"number accepts number", ctx.Constants.Number, ctx.Constants.Number, true},
		{"number accepts number literal", ctx.Constants.Number, in.NewNumberLiteral(1), true},
		{"number literal rejects wider number", in.NewNumberLiteral(1), ctx.Constants.Number, false},
		{"number literal accepts equal literal", in.NewNumberLiteral(1), in.NewNumberLiteral(1), true},
		{"number literal rejects different literal", in.NewNumberLiteral(1), in.NewNumberLiteral(2), false},
		{"string rejects number", ctx.Constants.String, ctx.Constants.Number, false},
		{"unknown accepts anything", ctx.Constants.Unknown, ctx.Constants.String, true},
		{"never accepted everywhere", ctx.Constants.String, ctx.Constants.Never, true},
		{"nothing satisfies never but never", ctx.Constants.Never, ctx.Constants.String, false},
		{"err poisons target", ctx.Constants.Err, ctx.Constants.String, true},
		{"err poisons source", ctx.Constants.String, ctx.Constants.Err, true},
		{"unknown as source satisfies nothing but unknown/err", ctx.Constants.String, ctx.Constants.Unknown, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Satisfies(c.target, c.src); got != c.want {
				t.Errorf("Satisfies(%s, %s) = %v, want %v", c.target, c.src, got, c.want)
			}
		})
	}
}

func TestSatisfiesUnion(t *testing.T) {
	ctx := types.NewContext()
	in := ctx.Interner

	numOrStr := in.NewUnion([]types.Ty{ctx.Constants.Number, ctx.Constants.String})

	if !Satisfies(numOrStr, ctx.Constants.Number) {
		t.Error("number | string should accept number")
	}
	if !Satisfies(numOrStr, ctx.Constants.String) {
		t.Error("number | string should accept string")
	}
	if Satisfies(numOrStr, ctx.Constants.Boolean) {
		t.Error("number | string should reject boolean")
	}
	if !Satisfies(ctx.Constants.Unknown, numOrStr) {
		t.Error("unknown should accept a union source")
	}
	if Satisfies(ctx.Constants.Number, numOrStr) {
		t.Error("a single-arm target should not accept a wider union source")
	}
}

func TestSatisfiesArrayCovariance(t *testing.T) {
	ctx := types.NewContext()
	in := ctx.Interner

	numArr := in.NewArray(ctx.Constants.Number)
	litArr := in.NewArray(in.NewNumberLiteral(1))

	if !Satisfies(numArr, litArr) {
		t.Error("number[] should accept a [1][] (covariant element)")
	}
	if Satisfies(litArr, numArr) {
		t.Error("[1][] should not accept number[]")
	}
}

func TestSatisfiesFunctionParamsInvariant(t *testing.T) {
	ctx := types.NewContext()
	in := ctx.Interner

	wide := in.NewFunction([]types.Ty{ctx.Constants.Number}, ctx.Constants.Void)
	narrow := in.NewFunction([]types.Ty{in.NewNumberLiteral(1)}, ctx.Constants.Void)

	if Satisfies(wide, narrow) {
		t.Error("parameter types are checked invariantly, a narrower param should not satisfy a wider one")
	}
	if Satisfies(narrow, wide) {
		t.Error("parameter types are checked invariantly, a wider param should not satisfy a narrower one")
	}
}

func TestSatisfiesFunctionReturnCovariant(t *testing.T) {
	ctx := types.NewContext()
	in := ctx.Interner

	wideRet := in.NewFunction(nil, ctx.Constants.Number)
	narrowRet := in.NewFunction(nil, in.NewNumberLiteral(1))

	if !Satisfies(wideRet, narrowRet) {
		t.Error("a function returning a literal should satisfy one expecting the wider type back")
	}
	if Satisfies(narrowRet, wideRet) {
		t.Error("a function returning a wide type should not satisfy one expecting a literal back")
	}
}

func TestSatisfiesExcessPropertyRejected(t *testing.T) {
	ctx := types.NewContext()
	in := ctx.Interner

	target := in.NewObject([]types.Field{{Name: "x", Ty: ctx.Constants.Number}})
	exact := in.NewObject([]types.Field{{Name: "x", Ty: ctx.Constants.Number}})
	excess := in.NewObject([]types.Field{
		{Name: "x", Ty: ctx.Constants.Number},
		{Name: "y", Ty: ctx.Constants.String},
	})

	if !Satisfies(target, exact) {
		t.Error("an object with exactly the same fields should satisfy the target")
	}
	if Satisfies(target, excess) {
		t.Error("an object with an extra field should be rejected by strict excess-property checking")
	}
}

func TestSatisfiesClassNominalInheritance(t *testing.T) {
	ctx := types.NewContext()
	in := ctx.Interner

	animalDef := ctx.Defs.Add(symbols.DefClass, "Animal")
	animalInst := in.NewInterface("Animal", []types.Field{{Name: "name", Ty: ctx.Constants.String}})
	animalCtor := in.NewFunction(nil, ctx.Constants.Void)
	animal := in.NewClass("Animal", animalDef, animalCtor, animalInst, nil)
	ctx.SetDefType(animalDef, animal)

	dogDef := ctx.Defs.Add(symbols.DefClass, "Dog")
	dogInst := in.NewInterface("Dog", []types.Field{{Name: "name", Ty: ctx.Constants.String}})
	dogCtor := in.NewFunction(nil, ctx.Constants.Void)
	dog := in.NewClass("Dog", dogDef, dogCtor, dogInst, &animal)
	ctx.SetDefType(dogDef, dog)

	if !Satisfies(animal, dog) {
		t.Error("a Dog should satisfy an Animal-typed target (nominal upcast)")
	}
	if Satisfies(dog, animal) {
		t.Error("an Animal should not satisfy a Dog-typed target (no downcast)")
	}
}
