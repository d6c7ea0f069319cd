package typemodel

import "strings"

// TypeRef uniquely identifies a named type by its module path and name.
type TypeRef struct {
	Module string // e.g., "Data.Shape"
	Name   string // e.g., "Shape"
}

// String returns a human-readable representation of the TypeRef.
func (r TypeRef) String() string {
	if r.Module == "" {
		return r.Name
	}

	return r.Module + "." + r.Name
}

// IsZero returns true if the reference is empty.
func (r TypeRef) IsZero() bool {
	return r.Module == "" && r.Name == ""
}

// Type is the closed sum of structural type shapes the engine understands.
type Type interface {
	typeNode()
	String() string
}

// Opaque is a primitive or opaque named type applied to zero or more
// type arguments, e.g. Basics.Int or List.List Basics.Int.
type Opaque struct {
	Ref  TypeRef
	Args []Type
}

// GenericVar is an unresolved generic type variable. The composer rejects
// these with a diagnostic; they exist so callers can describe them.
type GenericVar struct {
	Name string
}

// Function is a single-parameter function type. Unsupported by the
// composer, but part of the structural vocabulary.
type Function struct {
	Param  Type
	Result Type
}

// Tuple is a product of items. Only arities 0, 2 and 3 are legal for
// generation; other arities are rejected downstream.
type Tuple struct {
	Items []Type
}

// Field is a single named record field.
type Field struct {
	Name string
	Type Type
}

// Record is an anonymous record with ordered fields.
type Record struct {
	Fields []Field
}

// Alias is a named type alias wrapping an underlying type.
type Alias struct {
	Ref        TypeRef
	Params     []string // generic parameters; non-empty aliases are rejected downstream
	Underlying Type
}

// Constructor is a single variant of a custom type: a fully qualified
// constructor reference plus its ordered argument types.
type Constructor struct {
	Ref  TypeRef
	Args []Type
}

// Custom is a named sum type with ordered constructors.
type Custom struct {
	Ref          TypeRef
	Params       []string // generic parameters; non-empty customs are rejected downstream
	Constructors []Constructor
}

func (*Opaque) typeNode()     {}
func (*GenericVar) typeNode() {}
func (*Function) typeNode()   {}
func (*Tuple) typeNode()      {}
func (*Record) typeNode()     {}
func (*Alias) typeNode()      {}
func (*Custom) typeNode()     {}

// String renders the type in target-language surface syntax. The rendering
// is used in diagnostics, so it favors readability over round-tripping.
func (t *Opaque) String() string {
	if len(t.Args) == 0 {
		return t.Ref.String()
	}

	parts := make([]string, 0, len(t.Args)+1)
	parts = append(parts, t.Ref.String())

	for _, arg := range t.Args {
		parts = append(parts, argString(arg))
	}

	return strings.Join(parts, " ")
}

func (t *GenericVar) String() string { return t.Name }

func (t *Function) String() string {
	param := t.Param.String()
	if _, ok := t.Param.(*Function); ok {
		param = "(" + param + ")"
	}

	return param + " -> " + t.Result.String()
}

func (t *Tuple) String() string {
	if len(t.Items) == 0 {
		return "()"
	}

	parts := make([]string, len(t.Items))
	for i, item := range t.Items {
		parts[i] = item.String()
	}

	return "( " + strings.Join(parts, ", ") + " )"
}

func (t *Record) String() string {
	if len(t.Fields) == 0 {
		return "{}"
	}

	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = f.Name + " : " + f.Type.String()
	}

	return "{ " + strings.Join(parts, ", ") + " }"
}

func (t *Alias) String() string  { return t.Ref.String() }
func (t *Custom) String() string { return t.Ref.String() }

// argString parenthesizes type arguments that would otherwise be ambiguous
// in application position.
func argString(t Type) string {
	switch tt := t.(type) {
	case *Opaque:
		if len(tt.Args) > 0 {
			return "(" + tt.String() + ")"
		}
	case *Function:
		return "(" + tt.String() + ")"
	}

	return t.String()
}

// RefOf returns the reference of a named type (opaque, alias or custom)
// and true, or a zero reference and false for structural shapes.
func RefOf(t Type) (TypeRef, bool) {
	switch tt := t.(type) {
	case *Opaque:
		return tt.Ref, true
	case *Alias:
		return tt.Ref, true
	case *Custom:
		return tt.Ref, true
	default:
		return TypeRef{}, false
	}
}
