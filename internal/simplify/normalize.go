package simplify

import "derive-generator/internal/expr"

// NormalizeDeclaration finalizes a top-level binding whose simplified body
// is itself a lambda. With no declared parameters, the lambda's parameters
// are hoisted into the formal parameter list. With a matching count of
// simple binds on both sides, the lambda's parameter names are renamed to
// the declared ones and the wrapping lambda dropped. Anything else is left
// unchanged.
func NormalizeDeclaration(d expr.Declaration) expr.Declaration {
	d.Body = Simplify(d.Body)

	lam, ok := d.Body.(*expr.Lambda)
	if !ok {
		return d
	}

	if len(d.Params) == 0 {
		d.Params = lam.Params
		d.Body = lam.Body

		return d
	}

	if len(d.Params) != len(lam.Params) {
		return d
	}

	renames := make(map[string]string, len(lam.Params))

	for i := range lam.Params {
		from, okFrom := lam.Params[i].(*expr.PVar)
		to, okTo := d.Params[i].(*expr.PVar)

		if !okFrom || !okTo {
			return d
		}

		renames[from.Name] = to.Name
	}

	d.Body = expr.RenameVars(lam.Body, renames)

	return d
}
