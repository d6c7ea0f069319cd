// Package simplify post-processes synthesized expression trees with two
// rewrite rules, beta-reduction of immediately-applied lambdas and
// eta-reduction of pass-through lambdas, and normalizes final top-level
// declarations by hoisting redundant wrapping lambdas into the formal
// parameter list.
//
// Both rules rely on the composer's guarantee that every synthesized
// lambda uses fresh, unique parameter names: substitution is a plain
// name-indexed rewrite with no alpha-renaming.
package simplify

import "derive-generator/internal/expr"

// Simplify rewrites the tree bottom-up to a fixed point: sub-expressions
// are simplified before their parent is examined, and a successful rewrite
// is re-examined, so applying Simplify twice equals applying it once.
func Simplify(e expr.Expr) expr.Expr {
	switch ex := e.(type) {
	case *expr.Lambda:
		lam := &expr.Lambda{Params: ex.Params, Body: Simplify(ex.Body)}

		if out, ok := eta(lam); ok {
			return Simplify(out)
		}

		return lam

	case *expr.Apply:
		args := make([]expr.Expr, len(ex.Args))
		for i, arg := range ex.Args {
			args[i] = Simplify(arg)
		}

		app := &expr.Apply{Fn: Simplify(ex.Fn), Args: args}

		if out, ok := beta(app); ok {
			return Simplify(out)
		}

		return app

	case *expr.Record:
		fields := make([]expr.RecordField, len(ex.Fields))
		for i, f := range ex.Fields {
			fields[i] = expr.RecordField{Name: f.Name, Value: Simplify(f.Value)}
		}

		return &expr.Record{Fields: fields}

	case *expr.TupleLit:
		items := make([]expr.Expr, len(ex.Items))
		for i, item := range ex.Items {
			items[i] = Simplify(item)
		}

		return &expr.TupleLit{Items: items}

	case *expr.ListLit:
		items := make([]expr.Expr, len(ex.Items))
		for i, item := range ex.Items {
			items[i] = Simplify(item)
		}

		return &expr.ListLit{Items: items}

	default:
		return e
	}
}

// beta reduces the application of a lambda whose parameter count equals the
// argument count and whose parameters are all simple binds, substituting
// every bound occurrence by the corresponding argument.
func beta(app *expr.Apply) (expr.Expr, bool) {
	lam, ok := app.Fn.(*expr.Lambda)
	if !ok || len(lam.Params) != len(app.Args) {
		return nil, false
	}

	bindings := make(map[string]expr.Expr, len(lam.Params))

	for i, p := range lam.Params {
		pv, ok := p.(*expr.PVar)
		if !ok {
			return nil, false
		}

		bindings[pv.Name] = app.Args[i]
	}

	return expr.Substitute(lam.Body, bindings), true
}

// eta drops trailing lambda parameters that are passed through unchanged as
// the trailing arguments of the body's application. The rewrite is
// all-or-nothing over the matched suffix: when any matched name occurs free
// in the applied expression or the surviving arguments, the lambda is left
// alone. Eliminating every parameter and argument leaves the applied
// expression.
func eta(lam *expr.Lambda) (expr.Expr, bool) {
	app, ok := lam.Body.(*expr.Apply)
	if !ok {
		return nil, false
	}

	k := passThroughSuffix(lam.Params, app.Args)
	if k == 0 || !etaSafe(lam.Params, app, k) {
		return nil, false
	}

	params := lam.Params[:len(lam.Params)-k]
	args := app.Args[:len(app.Args)-k]

	var body expr.Expr = app.Fn
	if len(args) > 0 {
		body = &expr.Apply{Fn: app.Fn, Args: args}
	}

	if len(params) == 0 {
		return body, true
	}

	return &expr.Lambda{Params: params, Body: body}, true
}

// passThroughSuffix counts how many trailing arguments are plain variables
// naming the trailing parameters, aligned at the tails.
func passThroughSuffix(params []expr.Pattern, args []expr.Expr) int {
	k := 0

	for k < len(params) && k < len(args) {
		pv, ok := params[len(params)-1-k].(*expr.PVar)
		if !ok {
			break
		}

		v, ok := args[len(args)-1-k].(*expr.Var)
		if !ok || v.Name != pv.Name {
			break
		}

		k++
	}

	return k
}

// etaSafe reports whether dropping the k trailing pass-through positions
// preserves meaning: none of the dropped names may occur free in the
// applied expression or in the surviving arguments.
func etaSafe(params []expr.Pattern, app *expr.Apply, k int) bool {
	free := expr.FreeVars(app.Fn)
	for _, arg := range app.Args[:len(app.Args)-k] {
		for name := range expr.FreeVars(arg) {
			free[name] = struct{}{}
		}
	}

	for i := 0; i < k; i++ {
		pv := params[len(params)-1-i].(*expr.PVar)
		if _, clash := free[pv.Name]; clash {
			return false
		}
	}

	return true
}
