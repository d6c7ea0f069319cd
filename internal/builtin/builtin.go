// Package builtin ships ready-made generator definitions: a binary codec
// generator and a random value generator. They exercise the whole builder
// vocabulary and back the CLI; hosts embedding the engine typically define
// their own.
package builtin

import (
	"strconv"

	"derive-generator/internal/common"
	"derive-generator/internal/expr"
	"derive-generator/internal/pattern"
	"derive-generator/internal/registry"
	"derive-generator/internal/typemodel"
)

// CapabilityRandomExtra enables the Random.Extra-backed resolvers of the
// random generator.
const CapabilityRandomExtra = "random-extra"

// Definitions returns every builtin generator definition and amendment in
// declaration order.
func Definitions() []registry.Definition {
	return []registry.Definition{
		Codec(),
		Random(),
		RandomExtras(),
	}
}

// Codec defines the "codec" generator: Codec.Codec implementations for a
// type, composed in the miniBill/elm-codec manner (succeed/mapN pipeline,
// tagged custom variants, lazy for recursion).
func Codec() *registry.Generic {
	ref := func(name string) *expr.Ref { return expr.NewRef("Codec", name) }

	return &registry.Generic{
		ID:       "codec",
		Pattern:  pattern.Wrap(typemodel.TypeRef{Module: "Codec", Name: "Codec"}),
		MakeName: func(typeName string) string { return common.LowerFirst(typeName) + "Codec" },
		Items: []registry.Item{
			registry.Bool(ref("bool")),
			registry.Int(ref("int")),
			registry.Float(ref("float")),
			registry.Text(ref("string")),
			registry.Char(ref("char")),
			registry.Unit(ref("unit")),
			registry.List(func(child expr.Expr) expr.Expr {
				return expr.Call(ref("list"), child)
			}),
			registry.Maybe(func(child expr.Expr) expr.Expr {
				return expr.Call(ref("maybe"), child)
			}),
			registry.Set(func(child expr.Expr) expr.Expr {
				return expr.Call(ref("set"), child)
			}),
			registry.Array(func(child expr.Expr) expr.Expr {
				return expr.Call(ref("array"), child)
			}),
			registry.Dict(func(key, value expr.Expr) expr.Expr {
				return expr.Call(ref("dict"), key, value)
			}),
			registry.Result(func(errChild, okChild expr.Expr) expr.Expr {
				return expr.Call(ref("result"), errChild, okChild)
			}),
			registry.Succeed(func(ctor expr.Expr) expr.Expr {
				return expr.Call(ref("succeed"), ctor)
			}),
			// Listed ahead of mapN so they win for tuple shapes.
			registry.Tuple2(func(a, b expr.Expr) expr.Expr {
				return expr.Call(ref("tuple"), a, b)
			}),
			registry.Tuple3(func(a, b, c expr.Expr) expr.Expr {
				return expr.Call(ref("triple"), a, b, c)
			}),
			registry.MapN(8, func(n int) expr.Expr {
				if n == 1 {
					return ref("map")
				}

				return ref("map" + strconv.Itoa(n))
			}),
			registry.Custom(taggedVariants(ref("custom"))),
			registry.LambdaBreaker(lazyThunk(ref("lazy"))),
		},
	}
}

// Random defines the "random" generator: Random.Generator implementations
// composed pipeline-style with constant/andMap.
func Random() *registry.Generic {
	ref := func(name string) *expr.Ref { return expr.NewRef("Random", name) }

	return &registry.Generic{
		ID:       "random",
		Pattern:  pattern.Wrap(typemodel.TypeRef{Module: "Random", Name: "Generator"}),
		MakeName: func(typeName string) string { return common.LowerFirst(typeName) + "Generator" },
		Items: []registry.Item{
			registry.Bool(ref("bool")),
			registry.Int(expr.Call(ref("int"), &expr.IntLit{Value: 0}, &expr.IntLit{Value: 100})),
			registry.Float(expr.Call(ref("float"), &expr.FloatLit{Value: 0}, &expr.FloatLit{Value: 1})),
			registry.Text(ref("string")),
			registry.Unit(expr.Call(ref("constant"), &expr.TupleLit{})),
			registry.List(func(child expr.Expr) expr.Expr {
				return expr.Call(ref("list"), child)
			}),
			registry.Maybe(func(child expr.Expr) expr.Expr {
				return expr.Call(ref("maybe"), child)
			}),
			registry.Succeed(func(ctor expr.Expr) expr.Expr {
				return expr.Call(ref("constant"), ctor)
			}),
			registry.Pipeline(
				func(ctor expr.Expr) expr.Expr {
					return expr.Call(ref("constant"), ctor)
				},
				func(acc, child expr.Expr) expr.Expr {
					return expr.Call(ref("andMap"), child, acc)
				},
			),
			registry.Custom(func(_ []typemodel.Constructor, branches []registry.VariantExpr) expr.Expr {
				items := make([]expr.Expr, len(branches))
				for i, b := range branches {
					items[i] = b.Expr
				}

				return expr.Call(ref("oneOf"), &expr.ListLit{Items: items})
			}),
			registry.LambdaBreaker(lazyThunk(ref("lazy"))),
		},
	}
}

// RandomExtras amends the random generator with Random.Extra-backed
// resolvers, active only under the random-extra capability. They take
// precedence over the base definition's resolvers.
func RandomExtras() *registry.Amendment {
	ref := func(name string) *expr.Ref { return expr.NewRef("Random.Extra", name) }

	return &registry.Amendment{
		ID: "random",
		Items: []registry.Item{
			registry.WithCapabilities(registry.Char(ref("char")), CapabilityRandomExtra),
			registry.WithCapabilities(registry.Set(func(child expr.Expr) expr.Expr {
				return expr.Call(ref("set"), child)
			}), CapabilityRandomExtra),
			registry.WithCapabilities(registry.Dict(func(key, value expr.Expr) expr.Expr {
				return expr.Call(ref("dict"), key, value)
			}), CapabilityRandomExtra),
			registry.WithCapabilities(registry.Array(func(child expr.Expr) expr.Expr {
				return expr.Call(ref("array"), child)
			}), CapabilityRandomExtra),
		},
	}
}

// taggedVariants combines custom-type branches as a list of
// (constructor name, branch) pairs handed to the given combinator.
func taggedVariants(combinator expr.Expr) func([]typemodel.Constructor, []registry.VariantExpr) expr.Expr {
	return func(_ []typemodel.Constructor, branches []registry.VariantExpr) expr.Expr {
		items := make([]expr.Expr, len(branches))

		for i, b := range branches {
			items[i] = &expr.TupleLit{Items: []expr.Expr{
				&expr.StringLit{Value: b.Name},
				b.Expr,
			}}
		}

		return expr.Call(combinator, &expr.ListLit{Items: items})
	}
}

// lazyThunk defers a self-referential body behind a unit lambda handed to
// the given deferral combinator.
func lazyThunk(deferral expr.Expr) func(expr.Expr) expr.Expr {
	return func(body expr.Expr) expr.Expr {
		thunk := &expr.Lambda{Params: []expr.Pattern{&expr.PAny{}}, Body: body}
		return expr.Call(deferral, thunk)
	}
}
