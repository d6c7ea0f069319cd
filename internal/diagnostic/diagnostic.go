package diagnostic

import (
	"strings"

	"github.com/cockroachdb/errors"

	"derive-generator/internal/match"
)

// Failure categories. Composition aborts on the first of these it hits;
// there is no accumulation and no retry.
var (
	ErrGenericUnsupported   = errors.New("generic type variables are unsupported")
	ErrFunctionUnsupported  = errors.New("function types are unsupported")
	ErrAliasWithGenerics    = errors.New("type aliases with generic parameters are unsupported")
	ErrCustomWithGenerics   = errors.New("custom types with generic parameters are unsupported")
	ErrIllegalTupleArity    = errors.New("only tuples of arity 0, 2 or 3 are supported")
	ErrNoResolver           = errors.New("no matching resolver")
	ErrMissingLambdaBreaker = errors.New("recursive definition requires a lambda breaker")
)

// GenericUnsupported names the generic type variable that blocked generation.
func GenericUnsupported(name string) error {
	return errors.Wrapf(ErrGenericUnsupported, "cannot implement for type variable %q", name)
}

// FunctionUnsupported names the function type that blocked generation.
func FunctionUnsupported(rendered string) error {
	return errors.Wrapf(ErrFunctionUnsupported, "cannot implement for %s", rendered)
}

// AliasWithGenerics names the generic alias that blocked generation.
func AliasWithGenerics(name string) error {
	return errors.Wrapf(ErrAliasWithGenerics, "cannot implement for %s", name)
}

// CustomWithGenerics names the generic custom type that blocked generation.
func CustomWithGenerics(name string) error {
	return errors.Wrapf(ErrCustomWithGenerics, "cannot implement for %s", name)
}

// IllegalTupleArity names the arity that blocked generation.
func IllegalTupleArity(arity int) error {
	return errors.Wrapf(ErrIllegalTupleArity, "cannot implement for a tuple of arity %d", arity)
}

// NoResolver reports that nothing in the resolver list could implement the
// given type or rendered constructor. When the registry's known primitive
// names are supplied, near misses are suggested. A request no resolved
// generator governs at all reports through here too; it is not a distinct
// category.
func NoResolver(what string, known []string) error {
	err := errors.Wrapf(ErrNoResolver, "don't know how to implement %s", what)

	if suggestions := match.Closest(what, known, 3); len(suggestions) > 0 {
		err = errors.WithHintf(err, "closest registered: %s", strings.Join(suggestions, ", "))
	}

	return err
}

// MissingLambdaBreaker reports a self-referential declaration whose
// generator declares no deferral transform. Emitting it eagerly could
// recurse forever at load time in the target runtime, so we fail instead.
func MissingLambdaBreaker(name string) error {
	return errors.Wrapf(ErrMissingLambdaBreaker, "%s references itself", name)
}
