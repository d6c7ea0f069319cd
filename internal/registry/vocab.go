package registry

import (
	"derive-generator/internal/common"
	"derive-generator/internal/expr"
	"derive-generator/internal/typemodel"
)

// Builder vocabulary: constructors for the items a generator definition is
// made of. Each returns an unconditional Item; wrap with WithCapabilities
// to gate one on optional capabilities.

// exact builds a primitive item that returns impl unchanged. The registered
// expression already is the complete implementation for the type.
func exact(ref typemodel.TypeRef, impl expr.Expr) Item {
	return Item{resolver: &Primitive{
		Ref: ref,
		Fn: func(_ []typemodel.Type, _ []expr.Expr) (expr.Expr, bool) {
			return impl, true
		},
	}}
}

// Bool registers the implementation for Basics.Bool.
func Bool(impl expr.Expr) Item { return exact(typemodel.RefBool, impl) }

// Int registers the implementation for Basics.Int.
func Int(impl expr.Expr) Item { return exact(typemodel.RefInt, impl) }

// Float registers the implementation for Basics.Float.
func Float(impl expr.Expr) Item { return exact(typemodel.RefFloat, impl) }

// Text registers the implementation for String.String.
func Text(impl expr.Expr) Item { return exact(typemodel.RefString, impl) }

// Char registers the implementation for Char.Char.
func Char(impl expr.Expr) Item { return exact(typemodel.RefChar, impl) }

// Unit registers the implementation for the zero-argument unit type, which
// zero-arity tuples are redirected to.
func Unit(impl expr.Expr) Item { return exact(typemodel.RefUnit, impl) }

// Container1 registers a single-argument parametric container: fn receives
// the generated child expression.
func Container1(ref typemodel.TypeRef, fn func(child expr.Expr) expr.Expr) Item {
	return Item{resolver: &Primitive{
		Ref: ref,
		Fn: func(_ []typemodel.Type, children []expr.Expr) (expr.Expr, bool) {
			if len(children) != 1 {
				return nil, false
			}

			return fn(children[0]), true
		},
	}}
}

// Container2 registers a two-argument parametric container.
func Container2(ref typemodel.TypeRef, fn func(a, b expr.Expr) expr.Expr) Item {
	return Item{resolver: &Primitive{
		Ref: ref,
		Fn: func(_ []typemodel.Type, children []expr.Expr) (expr.Expr, bool) {
			if len(children) != 2 {
				return nil, false
			}

			return fn(children[0], children[1]), true
		},
	}}
}

// List registers the implementation for List.List.
func List(fn func(child expr.Expr) expr.Expr) Item {
	return Container1(typemodel.RefList, fn)
}

// Maybe registers the implementation for Maybe.Maybe.
func Maybe(fn func(child expr.Expr) expr.Expr) Item {
	return Container1(typemodel.RefMaybe, fn)
}

// Set registers the implementation for Set.Set.
func Set(fn func(child expr.Expr) expr.Expr) Item {
	return Container1(typemodel.RefSet, fn)
}

// Array registers the implementation for Array.Array.
func Array(fn func(child expr.Expr) expr.Expr) Item {
	return Container1(typemodel.RefArray, fn)
}

// Dict registers the implementation for Dict.Dict.
func Dict(fn func(key, value expr.Expr) expr.Expr) Item {
	return Container2(typemodel.RefDict, fn)
}

// Result registers the implementation for Result.Result.
func Result(fn func(err, ok expr.Expr) expr.Expr) Item {
	return Container2(typemodel.RefResult, fn)
}

// Succeed registers a direct-wrap combiner: it accepts constructors with no
// children and wraps the bare constructor expression.
func Succeed(fn func(ctor expr.Expr) expr.Expr) Item {
	return Item{resolver: &Combiner{
		Fn: func(_ typemodel.Type, ctor expr.Expr, children []expr.Expr) (expr.Expr, bool) {
			if !common.IsEmpty(children) {
				return nil, false
			}

			return fn(ctor), true
		},
	}}
}

// Map registers a single-argument map combiner.
func Map(fn func(ctor, child expr.Expr) expr.Expr) Item {
	return Item{resolver: &Combiner{
		Fn: func(_ typemodel.Type, ctor expr.Expr, children []expr.Expr) (expr.Expr, bool) {
			if !common.IsSingle(children) {
				return nil, false
			}

			return fn(ctor, children[0]), true
		},
	}}
}

// MapN registers a bounded N-ary map combiner. name yields the mapping
// function for a given child count (e.g. Codec.map2, Codec.map3, ...); the
// produced expression applies it to the constructor and the children.
// Declines outside 1..maxN children.
func MapN(maxN int, name func(n int) expr.Expr) Item {
	return Item{resolver: &Combiner{
		Fn: func(_ typemodel.Type, ctor expr.Expr, children []expr.Expr) (expr.Expr, bool) {
			n := len(children)
			if n < 1 || n > maxN {
				return nil, false
			}

			args := make([]expr.Expr, 0, n+1)
			args = append(args, ctor)
			args = append(args, children...)

			return expr.Call(name(n), args...), true
		},
	}}
}

// Pipeline registers a free-form pipeline-style combiner: start lifts the
// constructor, step folds each child into the accumulator in order.
func Pipeline(start func(ctor expr.Expr) expr.Expr, step func(acc, child expr.Expr) expr.Expr) Item {
	return Item{resolver: &Combiner{
		Fn: func(_ typemodel.Type, ctor expr.Expr, children []expr.Expr) (expr.Expr, bool) {
			acc := start(ctor)
			for _, child := range children {
				acc = step(acc, child)
			}

			return acc, true
		},
	}}
}

// Combine registers a fully free-form combiner.
func Combine(fn func(t typemodel.Type, ctor expr.Expr, children []expr.Expr) (expr.Expr, bool)) Item {
	return Item{resolver: &Combiner{Fn: fn}}
}

// Tuple2 registers a combiner accepting only 2-tuples.
func Tuple2(fn func(a, b expr.Expr) expr.Expr) Item {
	return Item{resolver: &Combiner{
		Fn: func(t typemodel.Type, _ expr.Expr, children []expr.Expr) (expr.Expr, bool) {
			tup, ok := t.(*typemodel.Tuple)
			if !ok || len(tup.Items) != 2 || len(children) != 2 {
				return nil, false
			}

			return fn(children[0], children[1]), true
		},
	}}
}

// Tuple3 registers a combiner accepting only 3-tuples.
func Tuple3(fn func(a, b, c expr.Expr) expr.Expr) Item {
	return Item{resolver: &Combiner{
		Fn: func(t typemodel.Type, _ expr.Expr, children []expr.Expr) (expr.Expr, bool) {
			tup, ok := t.(*typemodel.Tuple)
			if !ok || len(tup.Items) != 3 || len(children) != 3 {
				return nil, false
			}

			return fn(children[0], children[1], children[2]), true
		},
	}}
}

// Custom registers the custom-type resolver combining per-constructor
// branches into one expression. It cannot decline.
func Custom(fn func(ctors []typemodel.Constructor, branches []VariantExpr) expr.Expr) Item {
	return Item{resolver: &CustomType{Fn: fn}}
}

// FreeForm registers a universal resolver, the escape hatch bypassing
// normal composition. Tried before every kind-specific resolver.
func FreeForm(fn func(t typemodel.Type) (expr.Expr, bool)) Item {
	return Item{resolver: &Universal{Fn: fn}}
}

// LambdaBreaker registers the deferral transform applied to
// self-referential auxiliary declarations.
func LambdaBreaker(fn func(body expr.Expr) expr.Expr) Item {
	return Item{breaker: fn}
}

// WithCapabilities gates an item on optional capabilities: it is inert
// unless every named capability is present in the activation context.
func WithCapabilities(item Item, caps ...string) Item {
	item.cond = item.cond.and(Requires(caps...))
	return item
}
