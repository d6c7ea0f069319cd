package typemodel

// Well-known references of the target language's standard modules. The
// resolver vocabulary registers primitive resolvers against these.
var (
	RefBool   = TypeRef{Module: "Basics", Name: "Bool"}
	RefInt    = TypeRef{Module: "Basics", Name: "Int"}
	RefFloat  = TypeRef{Module: "Basics", Name: "Float"}
	RefUnit   = TypeRef{Module: "Basics", Name: "Unit"}
	RefString = TypeRef{Module: "String", Name: "String"}
	RefChar   = TypeRef{Module: "Char", Name: "Char"}
	RefList   = TypeRef{Module: "List", Name: "List"}
	RefMaybe  = TypeRef{Module: "Maybe", Name: "Maybe"}
	RefSet    = TypeRef{Module: "Set", Name: "Set"}
	RefArray  = TypeRef{Module: "Array", Name: "Array"}
	RefDict   = TypeRef{Module: "Dict", Name: "Dict"}
	RefResult = TypeRef{Module: "Result", Name: "Result"}
)

// Unit returns the zero-argument unit type. Zero-arity tuples are
// redirected here by the composer.
func Unit() Type {
	return &Opaque{Ref: RefUnit}
}
