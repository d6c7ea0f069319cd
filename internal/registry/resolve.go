package registry

// Resolve builds the per-run registry from declarations and the activation
// context. Definitions are walked in reverse so that amendments, which may
// only appear after their target, are pending by the time the target is
// reached. Pending amendment items are consumed in front of the
// generator's own items, a later amendment batch ahead of an earlier one;
// each batch keeps its declared order. The contract, in full: for a
// generator with items [A, B] amended first by [C, D] and then by [E],
// the resolved order is E, C, D, A, B. "Later registered wins" applies
// across definitions, never by reversing one definition's own list.
// Amendments whose target id never
// materializes, and generators whose own condition fails, are dropped
// without error. The output preserves the generators' original
// declaration order.
func Resolve(ctx ActivationContext, defs []Definition) []ResolvedGenerator {
	pending := make(map[string][]Item)

	var reversed []ResolvedGenerator

	for i := len(defs) - 1; i >= 0; i-- {
		switch d := defs[i].(type) {
		case *Amendment:
			pending[d.ID] = append(pending[d.ID], activeItems(d.Items, ctx)...)

		case *Generic:
			amended := pending[d.ID]
			delete(pending, d.ID)

			if !d.Cond.ActiveIn(ctx) {
				continue
			}

			items := append(amended, activeItems(d.Items, ctx)...)
			reversed = append(reversed, build(d, items))
		}
	}

	// Walked in reverse; flip back to declaration order.
	out := make([]ResolvedGenerator, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		out = append(out, reversed[i])
	}

	return out
}

// activeItems filters items by condition, preserving their declared order.
func activeItems(items []Item, ctx ActivationContext) []Item {
	out := make([]Item, 0, len(items))

	for _, item := range items {
		if item.cond.ActiveIn(ctx) {
			out = append(out, item)
		}
	}

	return out
}

func build(d *Generic, items []Item) ResolvedGenerator {
	gen := ResolvedGenerator{
		ID:       d.ID,
		Pattern:  d.Pattern,
		MakeName: d.MakeName,
		Blessed:  d.Blessed,
	}

	for _, item := range items {
		if item.resolver != nil {
			gen.Resolvers = append(gen.Resolvers, item.resolver)
		}

		if item.breaker != nil && gen.Breaker == nil {
			gen.Breaker = item.breaker
		}
	}

	return gen
}
