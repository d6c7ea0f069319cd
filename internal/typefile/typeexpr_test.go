package typefile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"derive-generator/internal/typemodel"
)

func parse(t *testing.T, src string) typemodel.Type {
	t.Helper()

	out, err := ParseTypeExpr(src, nil)
	require.NoError(t, err, "parsing %q", src)

	return out
}

func TestParseTypeExprShapes(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"Basics.Int", "Basics.Int"},
		{"List.List Basics.Int", "List.List Basics.Int"},
		{"Dict.Dict String.String Basics.Int", "Dict.Dict String.String Basics.Int"},
		{"List.List (Maybe.Maybe Basics.Int)", "List.List (Maybe.Maybe Basics.Int)"},
		{"a", "a"},
		{"List.List a", "List.List a"},
		{"Basics.Int -> String.String", "Basics.Int -> String.String"},
		{"Basics.Int -> Basics.Int -> Basics.Bool", "Basics.Int -> Basics.Int -> Basics.Bool"},
		{"(Basics.Int -> Basics.Int) -> Basics.Bool", "(Basics.Int -> Basics.Int) -> Basics.Bool"},
		{"()", "()"},
		{"( Basics.Int, String.String )", "( Basics.Int, String.String )"},
		{"(Basics.Int)", "Basics.Int"},
		{"{ name : String.String, age : Basics.Int }", "{ name : String.String, age : Basics.Int }"},
		{"{}", "{}"},
		{"{ items : List.List Basics.Int }", "{ items : List.List Basics.Int }"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, parse(t, tc.src).String())
	}
}

func TestParseTypeExprGenericVarIsLowercaseBareName(t *testing.T) {
	_, ok := parse(t, "value").(*typemodel.GenericVar)
	assert.True(t, ok)

	// Uppercase bare names are opaque references without a module.
	op, ok := parse(t, "User").(*typemodel.Opaque)
	require.True(t, ok)
	assert.Equal(t, typemodel.TypeRef{Name: "User"}, op.Ref)
}

func TestParseTypeExprResolvesDeclaredNames(t *testing.T) {
	userRef := typemodel.TypeRef{Module: "Model", Name: "User"}
	user := &typemodel.Custom{Ref: userRef}

	lookup := func(ref typemodel.TypeRef) (typemodel.Type, bool) {
		if ref == userRef {
			return user, true
		}

		return nil, false
	}

	out, err := ParseTypeExpr("List.List Model.User", lookup)
	require.NoError(t, err)

	list, ok := out.(*typemodel.Opaque)
	require.True(t, ok)
	require.Len(t, list.Args, 1)
	assert.Same(t, typemodel.Type(user), list.Args[0])
}

func TestParseTypeExprErrors(t *testing.T) {
	bad := []string{
		"",
		"List.List Basics.Int extra)",
		"( Basics.Int",
		"{ name String.String }",
		"{ name : }",
		"a Basics.Int", // generic var in application head
		"?",
	}

	for _, src := range bad {
		_, err := ParseTypeExpr(src, nil)
		assert.Error(t, err, "parsing %q", src)
	}
}

func TestSplitRefKeepsNestedModulePath(t *testing.T) {
	assert.Equal(t, typemodel.TypeRef{Module: "Json.Decode", Name: "Value"}, splitRef("Json.Decode.Value"))
	assert.Equal(t, typemodel.TypeRef{Name: "User"}, splitRef("User"))
}
