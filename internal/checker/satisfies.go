package checker

import "github.com/funvibe/sealcheck/internal/types"

// Satisfies reports whether a value of type src may be used where a
// value of type target is expected — the core assignability relation
// every declaration, assignment, call, and return checks against.
//
// Rules are tried in order; the first that applies decides the
// result. Order matters: poison and top/bottom handling must run
// before any structural comparison, and union handling must run before
// any other kind-specific rule since either side may be a Union.
func Satisfies(target, src types.Ty) bool {
	target = types.Resolve(target)
	src = types.Resolve(src)

	// 1. Identical interned types are always compatible.
	if target.ID() == src.ID() {
		return true
	}
	// 2. Err poisons both directions: never cascade a diagnostic already
	//    raised for one of these types into a new one.
	if isErr(target) || isErr(src) {
		return true
	}
	// 3. Unknown accepts everything.
	if isUnknown(target) {
		return true
	}
	// 4. Never is assignable to anything (the bottom of the lattice).
	if isNever(src) {
		return true
	}
	// 5. Nothing but Never itself (caught by rule 1) satisfies Never.
	if isNever(target) {
		return false
	}
	// 6. Only Unknown and Err (both already handled above) satisfy
	//    Unknown as a source; nothing else does, since Unknown carries
	//    no structural guarantees a caller could rely on.
	if isUnknown(src) {
		return false
	}
	// 7. If the source is a union, every arm must independently satisfy
	//    the target.
	if u, ok := src.Kind().(types.Union); ok {
		for _, arm := range u.Arms {
			if !Satisfies(target, arm) {
				return false
			}
		}
		return true
	}
	// 8. If the target is a union, the source need only satisfy one arm.
	if u, ok := target.Kind().(types.Union); ok {
		for _, arm := range u.Arms {
			if Satisfies(arm, src) {
				return true
			}
		}
		return false
	}
	// 9. Void only accepts Void.
	if _, ok := target.Kind().(types.Void); ok {
		_, ok := src.Kind().(types.Void)
		return ok
	}
	if _, ok := src.Kind().(types.Void); ok {
		return false
	}
	// 10. Null only accepts Null.
	if _, ok := target.Kind().(types.Null); ok {
		_, ok := src.Kind().(types.Null)
		return ok
	}
	if _, ok := src.Kind().(types.Null); ok {
		return false
	}
	// 11. Number: an unlit target accepts any Number (literal or not); a
	//     literal target requires an exactly equal literal source.
	if tn, ok := target.Kind().(types.Number); ok {
		sn, ok := src.Kind().(types.Number)
		if !ok {
			return false
		}
		if !tn.HasLiteral {
			return true
		}
		return sn.HasLiteral && sn.Literal == tn.Literal
	}
	// 12. String: same widening rule as Number.
	if ts, ok := target.Kind().(types.String); ok {
		ss, ok := src.Kind().(types.String)
		if !ok {
			return false
		}
		if !ts.HasLiteral {
			return true
		}
		return ss.HasLiteral && ss.Literal == ts.Literal
	}
	// 13. Boolean: same widening rule as Number/String.
	if tb, ok := target.Kind().(types.Boolean); ok {
		sb, ok := src.Kind().(types.Boolean)
		if !ok {
			return false
		}
		if !tb.HasLiteral {
			return true
		}
		return sb.HasLiteral && sb.Literal == tb.Literal
	}
	// 14. Array: covariant in its element type.
	if ta, ok := target.Kind().(types.Array); ok {
		sa, ok := src.Kind().(types.Array)
		if !ok {
			return false
		}
		return Satisfies(ta.Element, sa.Element)
	}
	// 15. Tuple: same arity, each element covariant positionally.
	if tt, ok := target.Kind().(types.Tuple); ok {
		st, ok := src.Kind().(types.Tuple)
		if !ok || len(st.Elements) != len(tt.Elements) {
			return false
		}
		for i := range tt.Elements {
			if !Satisfies(tt.Elements[i], st.Elements[i]) {
				return false
			}
		}
		return true
	}
	// 16. Function: same parameter count; each parameter is checked
	//     invariantly (both directions must hold) rather than
	//     contravariantly — an acknowledged simplification, not a bug.
	//     Return type is covariant.
	if tf, ok := target.Kind().(types.Function); ok {
		sf, ok := src.Kind().(types.Function)
		if !ok || len(sf.Params) != len(tf.Params) {
			return false
		}
		for i := range tf.Params {
			if !Satisfies(tf.Params[i], sf.Params[i]) || !Satisfies(sf.Params[i], tf.Params[i]) {
				return false
			}
		}
		return Satisfies(tf.Ret, sf.Ret)
	}
	// 17. Class: nominal — src must be the same class or a descendant of
	//     it, walked through Parent links by Def identity.
	if tc, ok := target.Kind().(types.Class); ok {
		sc, ok := src.Kind().(types.Class)
		if !ok {
			return false
		}
		for {
			if sc.Def == tc.Def {
				return true
			}
			if sc.Parent == nil {
				return false
			}
			parentKind, ok := types.Resolve(*sc.Parent).Kind().(types.Class)
			if !ok {
				return false
			}
			sc = parentKind
		}
	}
	// 18. Interface and Object targets are both checked the same
	//     structural way: the source's fields (whether it is itself an
	//     Object, an Interface, or a Class's instance shape) must match
	//     the target's fields exactly — same field count, every target
	//     field present with a satisfying type. Excess fields on the
	//     source are rejected (strict excess-property checking).
	if fields, ok := fieldsOf(target); ok {
		srcFields, ok := fieldsOf(src)
		if !ok {
			return false
		}
		if len(srcFields) != len(fields) {
			return false
		}
		for _, f := range fields {
			sv, ok := types.FieldByName(srcFields, f.Name)
			if !ok {
				return false
			}
			if !Satisfies(f.Ty, sv) {
				return false
			}
		}
		return true
	}
	// 19. Guard and Lazy must never reach here: the checker never builds
	//     a Guard type (narrowing uses MatchGuard's Guard struct), and
	//     Lazy is always unwrapped by types.Resolve above. Anything else falling
	//     through every rule above is not assignable.
	if _, ok := target.Kind().(types.Guard); ok {
		panic("checker: Guard type reached Satisfies")
	}
	if _, ok := src.Kind().(types.Guard); ok {
		panic("checker: Guard type reached Satisfies")
	}
	return false
}

func isErr(t types.Ty) bool {
	_, ok := t.Kind().(types.Err)
	return ok
}

func isUnknown(t types.Ty) bool {
	_, ok := t.Kind().(types.Unknown)
	return ok
}

func isNever(t types.Ty) bool {
	_, ok := t.Kind().(types.Never)
	return ok
}

// fieldsOf returns the field list backing an Object, Interface, or
// Class (via its Instance interface) kind, so structural matching can
// treat all three target shapes uniformly.
func fieldsOf(t types.Ty) ([]types.Field, bool) {
	switch k := t.Kind().(type) {
	case types.Object:
		return k.Fields, true
	case types.Interface:
		return k.Fields, true
	case types.Class:
		if inst, ok := types.Resolve(k.Instance).Kind().(types.Interface); ok {
			return inst.Fields, true
		}
		return nil, false
	default:
		return nil, false
	}
}

// Overlaps reports whether two types could possibly describe the same
// value, used by equality-expression checking to raise NoOverlap when
// comparing two provably disjoint types (e.g. `"a" === 1`). It is
// deliberately more permissive than Satisfies in both directions: any
// structural or nominal relationship in either direction counts as an
// overlap, and two primitives overlap only when they share a base kind
// and are not two different literal values of it.
func Overlaps(a, b types.Ty) bool {
	a = types.Resolve(a)
	b = types.Resolve(b)

	if isErr(a) || isErr(b) || isUnknown(a) || isUnknown(b) || isNever(a) || isNever(b) {
		return true
	}
	if au, ok := a.Kind().(types.Union); ok {
		for _, arm := range au.Arms {
			if Overlaps(arm, b) {
				return true
			}
		}
		return false
	}
	if bu, ok := b.Kind().(types.Union); ok {
		for _, arm := range bu.Arms {
			if Overlaps(a, arm) {
				return true
			}
		}
		return false
	}
	if Satisfies(a, b) || Satisfies(b, a) {
		return true
	}
	switch ak := a.Kind().(type) {
	case types.Number:
		bk, ok := b.Kind().(types.Number)
		return ok && (!ak.HasLiteral || !bk.HasLiteral)
	case types.String:
		bk, ok := b.Kind().(types.String)
		return ok && (!ak.HasLiteral || !bk.HasLiteral)
	case types.Boolean:
		bk, ok := b.Kind().(types.Boolean)
		return ok && (!ak.HasLiteral || !bk.HasLiteral)
	}
	_, aFields := fieldsOf(a)
	_, bFields := fieldsOf(b)
	if aFields && bFields {
		return true
	}
	return false
}
