package registry

import (
	"derive-generator/internal/expr"
	"derive-generator/internal/pattern"
	"derive-generator/internal/typemodel"
)

// ActivationContext is the set of optional capability names enabled for a
// run. It is immutable for the duration of a run and shared read-only
// across concurrent generate calls.
type ActivationContext map[string]struct{}

// NewActivationContext builds an activation context from capability names.
func NewActivationContext(caps ...string) ActivationContext {
	ctx := make(ActivationContext, len(caps))
	for _, c := range caps {
		ctx[c] = struct{}{}
	}

	return ctx
}

// Has returns true if the capability is enabled.
func (c ActivationContext) Has(name string) bool {
	_, ok := c[name]
	return ok
}

// Condition gates a definition, resolver or lambda-breaker on optional
// capabilities. The zero value is always active.
type Condition struct {
	requires []string
}

// Always returns the unconditional condition.
func Always() Condition {
	return Condition{}
}

// Requires returns a condition active only when every named capability is
// present in the activation context.
func Requires(caps ...string) Condition {
	return Condition{requires: caps}
}

// ActiveIn reports whether the condition holds under the given context.
func (c Condition) ActiveIn(ctx ActivationContext) bool {
	for _, name := range c.requires {
		if !ctx.Has(name) {
			return false
		}
	}

	return true
}

// and returns the conjunction of two conditions.
func (c Condition) and(other Condition) Condition {
	if len(other.requires) == 0 {
		return c
	}

	merged := make([]string, 0, len(c.requires)+len(other.requires))
	merged = append(merged, c.requires...)
	merged = append(merged, other.requires...)

	return Condition{requires: merged}
}

// Resolver is the closed sum of resolver capability kinds.
type Resolver interface {
	resolverNode()
}

// Primitive matches an exact qualified type name. Given the opaque type's
// original argument types and the already-generated child expressions, it
// produces an expression or declines.
type Primitive struct {
	Ref typemodel.TypeRef
	Fn  func(args []typemodel.Type, children []expr.Expr) (expr.Expr, bool)
}

// Universal is the escape hatch: an arbitrary function from resolved type
// to an optional expression, bypassing normal composition. Universal
// resolvers are tried first, ahead of every kind-specific resolver.
type Universal struct {
	Fn func(t typemodel.Type) (expr.Expr, bool)
}

// Combiner merges a constructor expression and already-generated child
// expressions into one expression, or declines.
type Combiner struct {
	Fn func(t typemodel.Type, ctor expr.Expr, children []expr.Expr) (expr.Expr, bool)
}

// VariantExpr pairs a constructor name with its generated branch expression.
type VariantExpr struct {
	Name string
	Expr expr.Expr
}

// CustomType combines per-constructor branch expressions into one
// expression for a sum type. It cannot decline.
type CustomType struct {
	Fn func(ctors []typemodel.Constructor, branches []VariantExpr) expr.Expr
}

func (*Primitive) resolverNode()  {}
func (*Universal) resolverNode()  {}
func (*Combiner) resolverNode()   {}
func (*CustomType) resolverNode() {}

// Item is one entry of a definition's ordered list: a conditioned resolver
// or a conditioned lambda-breaker.
type Item struct {
	cond     Condition
	resolver Resolver
	breaker  func(expr.Expr) expr.Expr
}

// Definition is a generator definition or an amendment to one.
type Definition interface {
	definitionID() string
}

// Generic defines a generator: a unique id, an activation gate, the search
// pattern governing which annotations it handles, a name-maker for
// auxiliary declarations, and an ordered list of items.
type Generic struct {
	ID       string
	Cond     Condition
	Pattern  pattern.Pattern
	MakeName func(typeName string) string
	Items    []Item
	// Blessed lists pre-existing external implementations the provider
	// lookup collaborator may rank; the core only carries them through.
	Blessed []expr.Ref
}

// Amendment prepends items to a generator with the same id. Amendments
// targeting an absent id are silently dropped at build time.
type Amendment struct {
	ID    string
	Items []Item
}

func (g *Generic) definitionID() string   { return g.ID }
func (a *Amendment) definitionID() string { return a.ID }

// ResolvedGenerator is the immutable per-run view of one generator:
// resolvers flattened into final priority order, the first active
// lambda-breaker, and the definition's pattern and name-maker.
type ResolvedGenerator struct {
	ID        string
	Pattern   pattern.Pattern
	MakeName  func(typeName string) string
	Resolvers []Resolver
	Breaker   func(expr.Expr) expr.Expr // nil when no active breaker exists
	Blessed   []expr.Ref
}

// PrimitiveRefs returns the qualified names of every primitive resolver in
// priority order. Used for diagnostics suggestions.
func (g *ResolvedGenerator) PrimitiveRefs() []string {
	var refs []string

	for _, r := range g.Resolvers {
		if p, ok := r.(*Primitive); ok {
			refs = append(refs, p.Ref.String())
		}
	}

	return refs
}

// FindGenerator locates the resolved generator whose pattern matches the
// annotation and returns it with the extracted child type.
func FindGenerator(gens []ResolvedGenerator, t typemodel.Type) (*ResolvedGenerator, typemodel.Type, bool) {
	for i := range gens {
		if child, ok := gens[i].Pattern.Match(t); ok {
			return &gens[i], child, true
		}
	}

	return nil, nil, false
}
