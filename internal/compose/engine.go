package compose

import (
	"go.uber.org/zap"

	"derive-generator/internal/diagnostic"
	"derive-generator/internal/expr"
	"derive-generator/internal/registry"
	"derive-generator/internal/simplify"
	"derive-generator/internal/typemodel"
)

// Provider is a pre-existing implementation usable instead of synthesizing
// new code. Providers are supplied ranked and deduplicated by the host's
// lookup collaborator.
type Provider struct {
	GeneratorID  string
	Location     expr.Ref
	DeclaredType typemodel.Type
}

// Engine drives composition. It holds no per-call state.
type Engine struct {
	log *zap.SugaredLogger
}

// NewEngine builds an engine. A nil logger disables tracing.
func NewEngine(log *zap.SugaredLogger) *Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Engine{log: log}
}

// pairCtor is the canonical pair-construction function used as the
// constructor for 2-tuple composition.
var pairCtor = expr.Ref{Module: "Tuple", Name: "pair"}

// Generate composes the expression implementing gen for the target type,
// together with the auxiliary top-level declarations supporting recursion
// and reuse. The primary expression and all declarations are simplified;
// declarations are ordered so references point backwards wherever the
// reference graph is acyclic.
func (e *Engine) Generate(
	gen *registry.ResolvedGenerator,
	ctx registry.ActivationContext,
	providers []Provider,
	target typemodel.Type,
) (expr.Expr, []expr.Declaration, error) {
	e.log.Debugw("generate", "generator", gen.ID, "type", target.String(), "capabilities", len(ctx))

	r := &run{
		eng:       e,
		gen:       gen,
		providers: providers,
		names:     newStem(),
		declared:  make(map[typemodel.TypeRef]string),
	}

	out, err := r.generate(true, target)
	if err != nil {
		return nil, nil, err
	}

	return simplify.Simplify(out), orderDeclarations(r.decls), nil
}

// run is the mutable state of a single Generate call.
type run struct {
	eng       *Engine
	gen       *registry.ResolvedGenerator
	providers []Provider

	names    *stem
	declared map[typemodel.TypeRef]string // named type -> auxiliary declaration name
	decls    []expr.Declaration
}

// generate resolves one type node. Resolution order: provider lookup,
// universal resolvers, then dispatch on shape.
func (r *run) generate(topLevel bool, t typemodel.Type) (expr.Expr, error) {
	if ref, ok := r.providerFor(t); ok {
		r.eng.log.Debugw("provider hit", "type", t.String(), "provider", ref.String())
		return ref, nil
	}

	if out, ok := r.universal(t); ok {
		return out, nil
	}

	switch tt := t.(type) {
	case *typemodel.GenericVar:
		return nil, diagnostic.GenericUnsupported(tt.Name)

	case *typemodel.Function:
		return nil, diagnostic.FunctionUnsupported(tt.String())

	case *typemodel.Opaque:
		return r.opaque(tt)

	case *typemodel.Tuple:
		return r.tuple(topLevel, tt)

	case *typemodel.Record:
		return r.record(tt)

	case *typemodel.Alias:
		return r.alias(topLevel, tt)

	case *typemodel.Custom:
		return r.custom(topLevel, tt)

	default:
		return nil, diagnostic.NoResolver(t.String(), r.gen.PrimitiveRefs())
	}
}

// providerFor returns a reference to a known provider whose declared type
// matches the target, short-circuiting all further resolution.
func (r *run) providerFor(t typemodel.Type) (expr.Expr, bool) {
	for _, p := range r.providers {
		if p.GeneratorID != "" && p.GeneratorID != r.gen.ID {
			continue
		}

		if p.DeclaredType == nil {
			continue
		}

		if typemodel.EqualUpToApplication(p.DeclaredType, t) {
			loc := p.Location
			return &loc, true
		}
	}

	return nil, false
}

// universal scans for the first universal resolver accepting the type.
// Universal results are final: no children are generated for them.
func (r *run) universal(t typemodel.Type) (expr.Expr, bool) {
	for _, res := range r.gen.Resolvers {
		u, ok := res.(*registry.Universal)
		if !ok {
			continue
		}

		if out, ok := u.Fn(t); ok {
			return out, true
		}
	}

	return nil, false
}

// opaque generates every type argument, then invokes the first primitive
// resolver registered for the opaque's qualified name.
func (r *run) opaque(t *typemodel.Opaque) (expr.Expr, error) {
	children := make([]expr.Expr, 0, len(t.Args))

	for _, arg := range t.Args {
		child, err := r.generate(false, arg)
		if err != nil {
			return nil, err
		}

		children = append(children, child)
	}

	for _, res := range r.gen.Resolvers {
		p, ok := res.(*registry.Primitive)
		if !ok || p.Ref != t.Ref {
			continue
		}

		if out, ok := p.Fn(t.Args, children); ok {
			return out, nil
		}

		// Only the first resolver registered for this name is consulted;
		// a decline means the type cannot be implemented.
		break
	}

	return nil, diagnostic.NoResolver(t.String(), r.gen.PrimitiveRefs())
}

func (r *run) tuple(topLevel bool, t *typemodel.Tuple) (expr.Expr, error) {
	switch len(t.Items) {
	case 0:
		return r.generate(topLevel, typemodel.Unit())

	case 2:
		ctor := pairCtor
		return r.viaCombiner(t, &ctor, t.Items)

	case 3:
		a := r.names.claim("a")
		b := r.names.claim("b")
		c := r.names.claim("c")
		ctor := &expr.Lambda{
			Params: []expr.Pattern{&expr.PVar{Name: a}, &expr.PVar{Name: b}, &expr.PVar{Name: c}},
			Body:   &expr.TupleLit{Items: []expr.Expr{&expr.Var{Name: a}, &expr.Var{Name: b}, &expr.Var{Name: c}}},
		}

		return r.viaCombiner(t, ctor, t.Items)

	default:
		return nil, diagnostic.IllegalTupleArity(len(t.Items))
	}
}

// record synthesizes a constructor lambda taking one argument per field and
// returning a record literal, then composes via the combiner procedure.
func (r *run) record(t *typemodel.Record) (expr.Expr, error) {
	params := make([]expr.Pattern, len(t.Fields))
	fields := make([]expr.RecordField, len(t.Fields))
	childTypes := make([]typemodel.Type, len(t.Fields))

	for i, f := range t.Fields {
		name := r.names.claim(f.Name)
		params[i] = &expr.PVar{Name: name}
		fields[i] = expr.RecordField{Name: f.Name, Value: &expr.Var{Name: name}}
		childTypes[i] = f.Type
	}

	ctor := &expr.Lambda{Params: params, Body: &expr.Record{Fields: fields}}

	return r.viaCombiner(t, ctor, childTypes)
}

func (r *run) alias(topLevel bool, t *typemodel.Alias) (expr.Expr, error) {
	if len(t.Params) > 0 {
		return nil, diagnostic.AliasWithGenerics(t.Ref.String())
	}

	if rec, ok := t.Underlying.(*typemodel.Record); ok {
		return r.named(topLevel, t.Ref, func() (expr.Expr, error) {
			return r.record(rec)
		})
	}

	// Non-record aliases unwrap transparently.
	return r.generate(topLevel, t.Underlying)
}

func (r *run) custom(topLevel bool, t *typemodel.Custom) (expr.Expr, error) {
	if len(t.Params) > 0 {
		return nil, diagnostic.CustomWithGenerics(t.Ref.String())
	}

	return r.named(topLevel, t.Ref, func() (expr.Expr, error) {
		return r.customBody(t)
	})
}

// customBody composes each constructor branch via the combiner procedure,
// then hands all branches to the first custom-type resolver.
func (r *run) customBody(t *typemodel.Custom) (expr.Expr, error) {
	branches := make([]registry.VariantExpr, 0, len(t.Constructors))

	for _, c := range t.Constructors {
		ctor := &expr.Ref{Module: c.Ref.Module, Name: c.Ref.Name}

		branch, err := r.viaCombiner(t, ctor, c.Args)
		if err != nil {
			return nil, err
		}

		branches = append(branches, registry.VariantExpr{Name: c.Ref.Name, Expr: branch})
	}

	for _, res := range r.gen.Resolvers {
		ct, ok := res.(*registry.CustomType)
		if !ok {
			continue
		}

		return ct.Fn(t.Constructors, branches), nil
	}

	return nil, diagnostic.NoResolver(t.Ref.String(), r.gen.PrimitiveRefs())
}

// viaCombiner generates every child type (all-or-nothing, order preserved)
// and scans for the first combiner accepting the constructor and children.
func (r *run) viaCombiner(t typemodel.Type, ctor expr.Expr, childTypes []typemodel.Type) (expr.Expr, error) {
	children := make([]expr.Expr, 0, len(childTypes))

	for _, ct := range childTypes {
		child, err := r.generate(false, ct)
		if err != nil {
			return nil, err
		}

		children = append(children, child)
	}

	for _, res := range r.gen.Resolvers {
		c, ok := res.(*registry.Combiner)
		if !ok {
			continue
		}

		if out, ok := c.Fn(t, ctor, children); ok {
			return out, nil
		}
	}

	return nil, diagnostic.NoResolver("constructor "+ctor.String(), r.gen.PrimitiveRefs())
}

// named wraps the composition of a named type (record alias or custom type)
// as an auxiliary top-level declaration unless the call is the top-level
// request. Repeated and recursive occurrences of the same type resolve to
// the declaration's name, so each named type is declared at most once per
// run. A declaration whose body references its own name is deferred through
// the generator's lambda-breaker; without one, composition fails.
func (r *run) named(topLevel bool, ref typemodel.TypeRef, build func() (expr.Expr, error)) (expr.Expr, error) {
	if topLevel {
		return build()
	}

	if name, ok := r.declared[ref]; ok {
		return &expr.Ref{Name: name}, nil
	}

	base := ref.Name
	if r.gen.MakeName != nil {
		base = r.gen.MakeName(ref.Name)
	}

	name := r.names.claim(base)
	r.declared[ref] = name

	body, err := build()
	if err != nil {
		return nil, err
	}

	body = simplify.Simplify(body)

	if expr.ReferencesName(body, name) {
		if r.gen.Breaker == nil {
			return nil, diagnostic.MissingLambdaBreaker(name)
		}

		body = simplify.Simplify(r.gen.Breaker(body))
		r.eng.log.Debugw("lambda breaker applied", "declaration", name)
	}

	var declType typemodel.Type = &typemodel.Opaque{Ref: ref}
	declType = r.gen.Pattern.Rebuild(declType)

	r.decls = append(r.decls, expr.Declaration{Name: name, Type: declType, Body: body})

	return &expr.Ref{Name: name}, nil
}
