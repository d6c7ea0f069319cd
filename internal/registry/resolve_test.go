package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"derive-generator/internal/expr"
	"derive-generator/internal/pattern"
	"derive-generator/internal/typemodel"
)

func primAt(module, name string) Item {
	ref := typemodel.TypeRef{Module: module, Name: name}
	return exact(ref, expr.NewRef(module, name))
}

func codecDef(id string, items ...Item) *Generic {
	return &Generic{
		ID:       id,
		Pattern:  pattern.Wrap(typemodel.TypeRef{Module: "Codec", Name: "Codec"}),
		MakeName: func(typeName string) string { return typeName + "Impl" },
		Items:    items,
	}
}

func TestResolveAmendmentPrecedesBaseItems(t *testing.T) {
	defs := []Definition{
		codecDef("codec", primAt("A", "a"), primAt("B", "b")),
		&Amendment{ID: "codec", Items: []Item{primAt("C", "c")}},
	}

	gens := Resolve(NewActivationContext(), defs)

	require.Len(t, gens, 1)
	assert.Equal(t, []string{"C.c", "A.a", "B.b"}, gens[0].PrimitiveRefs())
}

func TestResolveLaterAmendmentBatchWinsOverEarlier(t *testing.T) {
	defs := []Definition{
		codecDef("codec", primAt("A", "a")),
		&Amendment{ID: "codec", Items: []Item{primAt("B", "b"), primAt("C", "c")}},
		&Amendment{ID: "codec", Items: []Item{primAt("D", "d")}},
	}

	gens := Resolve(NewActivationContext(), defs)

	require.Len(t, gens, 1)
	// Later batch first, each batch in declared order, base items last.
	assert.Equal(t, []string{"D.d", "B.b", "C.c", "A.a"}, gens[0].PrimitiveRefs())
}

func TestResolveDeadAmendmentIsDropped(t *testing.T) {
	defs := []Definition{
		codecDef("codec", primAt("A", "a")),
		&Amendment{ID: "nonexistent", Items: []Item{primAt("X", "x")}},
	}

	gens := Resolve(NewActivationContext(), defs)

	require.Len(t, gens, 1)
	assert.Equal(t, "codec", gens[0].ID)
	assert.Equal(t, []string{"A.a"}, gens[0].PrimitiveRefs())
}

func TestResolveCapabilityGatedItemExcluded(t *testing.T) {
	defs := []Definition{
		codecDef("codec",
			primAt("A", "a"),
			WithCapabilities(primAt("X", "extra"), "extras"),
		),
	}

	plain := Resolve(NewActivationContext(), defs)
	withCap := Resolve(NewActivationContext("extras"), defs)

	require.Len(t, plain, 1)
	assert.Equal(t, []string{"A.a"}, plain[0].PrimitiveRefs())

	require.Len(t, withCap, 1)
	assert.Equal(t, []string{"A.a", "X.extra"}, withCap[0].PrimitiveRefs())
}

func TestResolveInactiveGeneratorExcluded(t *testing.T) {
	gated := codecDef("gated", primAt("A", "a"))
	gated.Cond = Requires("experimental")

	defs := []Definition{
		gated,
		codecDef("codec", primAt("B", "b")),
	}

	gens := Resolve(NewActivationContext(), defs)

	require.Len(t, gens, 1)
	assert.Equal(t, "codec", gens[0].ID)
}

func TestResolveGeneratorOrderPreserved(t *testing.T) {
	defs := []Definition{
		codecDef("first", primAt("A", "a")),
		codecDef("second", primAt("B", "b")),
		&Amendment{ID: "first", Items: []Item{primAt("C", "c")}},
	}

	gens := Resolve(NewActivationContext(), defs)

	require.Len(t, gens, 2)
	assert.Equal(t, "first", gens[0].ID)
	assert.Equal(t, "second", gens[1].ID)
}

func TestResolveFirstBreakerWins(t *testing.T) {
	base := func(body expr.Expr) expr.Expr { return expr.Call(expr.NewRef("M", "lazyBase"), body) }
	override := func(body expr.Expr) expr.Expr { return expr.Call(expr.NewRef("M", "lazyAmend"), body) }

	defs := []Definition{
		codecDef("codec", LambdaBreaker(base)),
		&Amendment{ID: "codec", Items: []Item{LambdaBreaker(override)}},
	}

	gens := Resolve(NewActivationContext(), defs)

	require.Len(t, gens, 1)
	require.NotNil(t, gens[0].Breaker)

	wrapped := gens[0].Breaker(expr.NewRef("M", "body"))
	assert.Equal(t, "M.lazyAmend M.body", wrapped.String())
}

func TestResolveCarriesBlessedRefs(t *testing.T) {
	def := codecDef("codec", primAt("A", "a"))
	def.Blessed = []expr.Ref{{Module: "Shared", Name: "intCodec"}}

	gens := Resolve(NewActivationContext(), []Definition{def})

	require.Len(t, gens, 1)
	assert.Equal(t, def.Blessed, gens[0].Blessed)
}

func TestResolveNoBreakerLeavesNil(t *testing.T) {
	gens := Resolve(NewActivationContext(), []Definition{codecDef("codec", primAt("A", "a"))})

	require.Len(t, gens, 1)
	assert.Nil(t, gens[0].Breaker)
}

func TestFindGeneratorMatchesPatternAndExtractsChild(t *testing.T) {
	gens := Resolve(NewActivationContext(), []Definition{codecDef("codec", primAt("A", "a"))})

	annotation := &typemodel.Opaque{
		Ref:  typemodel.TypeRef{Module: "Codec", Name: "Codec"},
		Args: []typemodel.Type{&typemodel.Opaque{Ref: typemodel.RefInt}},
	}

	gen, child, ok := FindGenerator(gens, annotation)
	require.True(t, ok)
	assert.Equal(t, "codec", gen.ID)
	assert.True(t, typemodel.Equal(child, &typemodel.Opaque{Ref: typemodel.RefInt}))

	_, _, ok = FindGenerator(gens, &typemodel.Opaque{Ref: typemodel.RefInt})
	assert.False(t, ok)
}
