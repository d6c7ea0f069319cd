package simplify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"derive-generator/internal/expr"
)

func TestNormalizeHoistsLambdaParams(t *testing.T) {
	d := expr.Declaration{
		Name: "personCodec",
		Body: lam(app(ref("object"), v("value"), v("value")), "value"),
	}

	got := NormalizeDeclaration(d)

	require.Len(t, got.Params, 1)
	pv, ok := got.Params[0].(*expr.PVar)
	require.True(t, ok)
	assert.Equal(t, "value", pv.Name)
	assert.Equal(t, "M.object value value", got.Body.String())
}

func TestNormalizeRenamesMatchingArity(t *testing.T) {
	d := expr.Declaration{
		Name:   "idCodec",
		Params: []expr.Pattern{&expr.PVar{Name: "inner"}},
		Body:   lam(app(ref("wrap"), v("x"), v("x")), "x"),
	}

	got := NormalizeDeclaration(d)

	require.Len(t, got.Params, 1)
	assert.Equal(t, "M.wrap inner inner", got.Body.String())
}

func TestNormalizeLeavesArityMismatch(t *testing.T) {
	body := lam(app(ref("f"), v("y"), v("x")), "x", "y")
	d := expr.Declaration{
		Name:   "mismatch",
		Params: []expr.Pattern{&expr.PVar{Name: "a"}},
		Body:   body,
	}

	got := NormalizeDeclaration(d)

	require.Len(t, got.Params, 1)
	assert.Equal(t, body.String(), got.Body.String())
}

func TestNormalizeLeavesNonLambdaBody(t *testing.T) {
	d := expr.Declaration{
		Name: "intCodec",
		Body: ref("int"),
	}

	got := NormalizeDeclaration(d)

	assert.Empty(t, got.Params)
	assert.Equal(t, "M.int", got.Body.String())
}

func TestNormalizeLeavesNonVarPatterns(t *testing.T) {
	d := expr.Declaration{
		Name:   "anyParam",
		Params: []expr.Pattern{&expr.PVar{Name: "a"}},
		Body:   &expr.Lambda{Params: []expr.Pattern{&expr.PAny{}}, Body: ref("unit")},
	}

	got := NormalizeDeclaration(d)

	// The wrapping lambda survives because its bind is not a plain variable.
	_, ok := got.Body.(*expr.Lambda)
	assert.True(t, ok)
}

func TestNormalizeSimplifiesBeforeHoisting(t *testing.T) {
	// A redex in front of the lambda still ends up hoisted after reduction.
	d := expr.Declaration{
		Name: "pairCodec",
		Body: app(lam(v("f"), "f"), lam(app(ref("pair"), v("x"), v("x")), "x")),
	}

	got := NormalizeDeclaration(d)

	require.Len(t, got.Params, 1)
	assert.Equal(t, "M.pair x x", got.Body.String())
}
