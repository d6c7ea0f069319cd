package expr

// Substitute returns a copy of e with every Var whose name is bound in
// bindings replaced by the corresponding expression. The replacement is a
// plain name-indexed rewrite with no alpha-renaming; callers must guarantee
// no shadowing exists, which holds for composer-synthesized trees because
// every lambda uses fresh parameter names.
func Substitute(e Expr, bindings map[string]Expr) Expr {
	if len(bindings) == 0 {
		return e
	}

	switch ex := e.(type) {
	case *Var:
		if repl, ok := bindings[ex.Name]; ok {
			return repl
		}

		return ex

	case *Lambda:
		return &Lambda{Params: ex.Params, Body: Substitute(ex.Body, bindings)}

	case *Apply:
		args := make([]Expr, len(ex.Args))
		for i, arg := range ex.Args {
			args[i] = Substitute(arg, bindings)
		}

		return &Apply{Fn: Substitute(ex.Fn, bindings), Args: args}

	case *Record:
		fields := make([]RecordField, len(ex.Fields))
		for i, f := range ex.Fields {
			fields[i] = RecordField{Name: f.Name, Value: Substitute(f.Value, bindings)}
		}

		return &Record{Fields: fields}

	case *TupleLit:
		items := make([]Expr, len(ex.Items))
		for i, item := range ex.Items {
			items[i] = Substitute(item, bindings)
		}

		return &TupleLit{Items: items}

	case *ListLit:
		items := make([]Expr, len(ex.Items))
		for i, item := range ex.Items {
			items[i] = Substitute(item, bindings)
		}

		return &ListLit{Items: items}

	default:
		// Ref and literals contain no variables.
		return e
	}
}

// RenameVars returns a copy of e with variables renamed per the given map.
func RenameVars(e Expr, renames map[string]string) Expr {
	bindings := make(map[string]Expr, len(renames))
	for from, to := range renames {
		bindings[from] = &Var{Name: to}
	}

	return Substitute(e, bindings)
}

// FreeVars collects the names of variables that occur free in e.
func FreeVars(e Expr) map[string]struct{} {
	free := make(map[string]struct{})
	collectFree(e, make(map[string]int), free)

	return free
}

func collectFree(e Expr, bound map[string]int, free map[string]struct{}) {
	switch ex := e.(type) {
	case *Var:
		if bound[ex.Name] == 0 {
			free[ex.Name] = struct{}{}
		}

	case *Lambda:
		for _, p := range ex.Params {
			if pv, ok := p.(*PVar); ok {
				bound[pv.Name]++
			}
		}

		collectFree(ex.Body, bound, free)

		for _, p := range ex.Params {
			if pv, ok := p.(*PVar); ok {
				bound[pv.Name]--
			}
		}

	case *Apply:
		collectFree(ex.Fn, bound, free)
		for _, arg := range ex.Args {
			collectFree(arg, bound, free)
		}

	case *Record:
		for _, f := range ex.Fields {
			collectFree(f.Value, bound, free)
		}

	case *TupleLit:
		for _, item := range ex.Items {
			collectFree(item, bound, free)
		}

	case *ListLit:
		for _, item := range ex.Items {
			collectFree(item, bound, free)
		}
	}
}

// ReferencesName reports whether e contains a module-local reference to the
// given top-level name. Used to detect self-referential declarations.
func ReferencesName(e Expr, name string) bool {
	switch ex := e.(type) {
	case *Ref:
		return ex.Module == "" && ex.Name == name

	case *Lambda:
		return ReferencesName(ex.Body, name)

	case *Apply:
		if ReferencesName(ex.Fn, name) {
			return true
		}

		for _, arg := range ex.Args {
			if ReferencesName(arg, name) {
				return true
			}
		}

	case *Record:
		for _, f := range ex.Fields {
			if ReferencesName(f.Value, name) {
				return true
			}
		}

	case *TupleLit:
		for _, item := range ex.Items {
			if ReferencesName(item, name) {
				return true
			}
		}

	case *ListLit:
		for _, item := range ex.Items {
			if ReferencesName(item, name) {
				return true
			}
		}
	}

	return false
}
