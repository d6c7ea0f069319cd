package typemodel

// Equal reports whether two types are structurally identical.
func Equal(a, b Type) bool {
	switch at := a.(type) {
	case *Opaque:
		bt, ok := b.(*Opaque)
		return ok && at.Ref == bt.Ref && equalSlices(at.Args, bt.Args)

	case *GenericVar:
		bt, ok := b.(*GenericVar)
		return ok && at.Name == bt.Name

	case *Function:
		bt, ok := b.(*Function)
		return ok && Equal(at.Param, bt.Param) && Equal(at.Result, bt.Result)

	case *Tuple:
		bt, ok := b.(*Tuple)
		return ok && equalSlices(at.Items, bt.Items)

	case *Record:
		bt, ok := b.(*Record)
		if !ok || len(at.Fields) != len(bt.Fields) {
			return false
		}

		for i := range at.Fields {
			if at.Fields[i].Name != bt.Fields[i].Name ||
				!Equal(at.Fields[i].Type, bt.Fields[i].Type) {
				return false
			}
		}

		return true

	case *Alias:
		bt, ok := b.(*Alias)
		return ok && at.Ref == bt.Ref && len(at.Params) == len(bt.Params)

	case *Custom:
		bt, ok := b.(*Custom)
		return ok && at.Ref == bt.Ref && len(at.Params) == len(bt.Params)

	default:
		return false
	}
}

// EqualUpToApplication reports whether two types denote the same named type
// even when one side is a bare opaque reference and the other a resolved
// alias or custom type. Used for provider matching, where a provider's
// declared type often carries the bare name while the target is resolved.
func EqualUpToApplication(a, b Type) bool {
	if Equal(a, b) {
		return true
	}

	ra, oka := bareRef(a)
	rb, okb := bareRef(b)

	return oka && okb && ra == rb
}

// bareRef returns the named reference of a type when it can stand in for a
// bare (unapplied) name: opaque with no arguments, alias, or custom type.
func bareRef(t Type) (TypeRef, bool) {
	switch tt := t.(type) {
	case *Opaque:
		if len(tt.Args) == 0 {
			return tt.Ref, true
		}
	case *Alias:
		return tt.Ref, true
	case *Custom:
		return tt.Ref, true
	}

	return TypeRef{}, false
}

func equalSlices(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}

	return true
}
