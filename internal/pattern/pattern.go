// Package pattern implements the structural search pattern a generator
// definition registers: a predicate that matches a candidate annotation and
// extracts the child type of interest, plus a builder that re-wraps an
// arbitrary type back into the pattern's outer shape. Rebuild is how the
// composer derives annotations for auxiliary helper declarations.
package pattern

import "derive-generator/internal/typemodel"

// Pattern matches a structural annotation and extracts the child type.
// Patterns are pure: Match never fails with an error and consults no state.
type Pattern struct {
	match   func(typemodel.Type) (typemodel.Type, bool)
	rebuild func(typemodel.Type) typemodel.Type
}

// New builds a free-form pattern from a matcher and a rebuilder.
func New(
	match func(typemodel.Type) (typemodel.Type, bool),
	rebuild func(typemodel.Type) typemodel.Type,
) Pattern {
	return Pattern{match: match, rebuild: rebuild}
}

// Wrap builds the common single-argument wrapper pattern: it matches
// `Ref child` and extracts child; Rebuild wraps a type back as `Ref type`.
func Wrap(ref typemodel.TypeRef) Pattern {
	return Pattern{
		match: func(t typemodel.Type) (typemodel.Type, bool) {
			op, ok := t.(*typemodel.Opaque)
			if !ok || op.Ref != ref || len(op.Args) != 1 {
				return nil, false
			}

			return op.Args[0], true
		},
		rebuild: func(child typemodel.Type) typemodel.Type {
			return &typemodel.Opaque{Ref: ref, Args: []typemodel.Type{child}}
		},
	}
}

// Match returns the child type of interest when the annotation has the
// pattern's shape.
func (p Pattern) Match(t typemodel.Type) (typemodel.Type, bool) {
	if p.match == nil {
		return nil, false
	}

	return p.match(t)
}

// Rebuild wraps a child type back into the pattern's outer shape. Used to
// produce the declared type of synthesized helper declarations.
func (p Pattern) Rebuild(child typemodel.Type) typemodel.Type {
	if p.rebuild == nil {
		return child
	}

	return p.rebuild(child)
}
