package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"derive-generator/internal/compose"
	"derive-generator/internal/diagnostic"
	"derive-generator/internal/registry"
	"derive-generator/internal/typefile"
	"derive-generator/internal/typemodel"
)

// generateFor resolves the builtin definitions under the given capabilities,
// dispatches the annotation to its generator, and composes the result.
func generateFor(t *testing.T, annotation string, caps ...string) (string, []string) {
	t.Helper()

	target, err := typefile.ParseTypeExpr(annotation, nil)
	require.NoError(t, err)

	return generateType(t, target, caps...)
}

func generateType(t *testing.T, target typemodel.Type, caps ...string) (string, []string) {
	t.Helper()

	ctx := registry.NewActivationContext(caps...)
	gens := registry.Resolve(ctx, Definitions())

	gen, child, ok := registry.FindGenerator(gens, target)
	require.True(t, ok, "no generator matches %s", target.String())

	out, decls, err := compose.NewEngine(nil).Generate(gen, ctx, nil, child)
	require.NoError(t, err)

	rendered := make([]string, len(decls))
	for i, d := range decls {
		rendered[i] = d.String()
	}

	return out.String(), rendered
}

func TestDefinitionsResolve(t *testing.T) {
	gens := registry.Resolve(registry.NewActivationContext(), Definitions())

	require.Len(t, gens, 2)
	assert.Equal(t, "codec", gens[0].ID)
	assert.Equal(t, "random", gens[1].ID)

	for _, g := range gens {
		assert.NotNil(t, g.Breaker, "generator %s has no lambda breaker", g.ID)
	}
}

func TestCodecPrimitives(t *testing.T) {
	cases := []struct {
		annotation string
		want       string
	}{
		{"Codec.Codec Basics.Bool", "Codec.bool"},
		{"Codec.Codec Basics.Int", "Codec.int"},
		{"Codec.Codec Basics.Float", "Codec.float"},
		{"Codec.Codec String.String", "Codec.string"},
		{"Codec.Codec Char.Char", "Codec.char"},
		{"Codec.Codec ()", "Codec.unit"},
		{"Codec.Codec (List.List Basics.Int)", "Codec.list Codec.int"},
		{"Codec.Codec (Maybe.Maybe String.String)", "Codec.maybe Codec.string"},
		{"Codec.Codec (Dict.Dict String.String Basics.Int)", "Codec.dict Codec.string Codec.int"},
		{"Codec.Codec (Result.Result String.String Basics.Int)", "Codec.result Codec.string Codec.int"},
		{"Codec.Codec ( Basics.Int, String.String )", "Codec.tuple Codec.int Codec.string"},
		{"Codec.Codec ( Basics.Int, String.String, Basics.Bool )", "Codec.triple Codec.int Codec.string Codec.bool"},
	}

	for _, tc := range cases {
		out, decls := generateFor(t, tc.annotation)
		assert.Equal(t, tc.want, out, tc.annotation)
		assert.Empty(t, decls, tc.annotation)
	}
}

func TestCodecRecord(t *testing.T) {
	target, err := typefile.ParseTypeExpr("{ name : String.String, age : Basics.Int }", nil)
	require.NoError(t, err)

	annotation := &typemodel.Opaque{
		Ref:  typemodel.TypeRef{Module: "Codec", Name: "Codec"},
		Args: []typemodel.Type{target},
	}

	out, decls := generateType(t, annotation)

	assert.Equal(t,
		"Codec.map2 (\\name age -> { name = name, age = age }) Codec.string Codec.int",
		out)
	assert.Empty(t, decls)
}

func TestCodecRecursiveCustomType(t *testing.T) {
	doc, err := typefile.Parse([]byte(`
generator: codec
types:
  - module: Model
    name: Tree
    custom:
      - name: Leaf
        args: ["Basics.Int"]
      - name: Node
        args: ["Model.Tree"]
targets:
  - "Codec.Codec Model.Tree"
`))
	require.NoError(t, err)
	require.Len(t, doc.Targets, 1)

	out, decls := generateType(t, doc.Targets[0])

	assert.Equal(t,
		`Codec.custom [ ( "Leaf", Codec.map Model.Leaf Codec.int ), ( "Node", Codec.map Model.Node treeCodec ) ]`,
		out)

	require.Len(t, decls, 1)
	assert.Equal(t,
		"treeCodec : Codec.Codec Model.Tree\n"+
			`treeCodec = Codec.lazy (\_ -> Codec.custom [ ( "Leaf", Codec.map Model.Leaf Codec.int ), ( "Node", Codec.map Model.Node treeCodec ) ])`,
		decls[0])
}

func TestCodecEnumUsesSucceedBranches(t *testing.T) {
	doc, err := typefile.Parse([]byte(`
types:
  - module: Model
    name: Color
    custom:
      - name: Red
      - name: Green
targets:
  - "Codec.Codec Model.Color"
`))
	require.NoError(t, err)

	out, decls := generateType(t, doc.Targets[0])

	assert.Equal(t,
		`Codec.custom [ ( "Red", Codec.succeed Model.Red ), ( "Green", Codec.succeed Model.Green ) ]`,
		out)
	assert.Empty(t, decls)
}

func TestRandomPipelineForRecord(t *testing.T) {
	target, err := typefile.ParseTypeExpr("{ name : String.String, age : Basics.Int }", nil)
	require.NoError(t, err)

	annotation := &typemodel.Opaque{
		Ref:  typemodel.TypeRef{Module: "Random", Name: "Generator"},
		Args: []typemodel.Type{target},
	}

	out, decls := generateType(t, annotation)

	assert.Equal(t,
		"Random.andMap (Random.int 0 100) "+
			"(Random.andMap Random.string "+
			"(Random.constant (\\name age -> { name = name, age = age })))",
		out)
	assert.Empty(t, decls)
}

func TestRandomExtrasRequireCapability(t *testing.T) {
	_, _, err := generateErr(t, "Random.Generator Char.Char")
	assert.ErrorIs(t, err, diagnostic.ErrNoResolver)

	out, _ := generateFor(t, "Random.Generator Char.Char", CapabilityRandomExtra)
	assert.Equal(t, "Random.Extra.char", out)

	out, _ = generateFor(t, "Random.Generator (Set.Set Basics.Int)", CapabilityRandomExtra)
	assert.Equal(t, "Random.Extra.set (Random.int 0 100)", out)
}

func generateErr(t *testing.T, annotation string, caps ...string) (string, []string, error) {
	t.Helper()

	target, err := typefile.ParseTypeExpr(annotation, nil)
	require.NoError(t, err)

	ctx := registry.NewActivationContext(caps...)
	gens := registry.Resolve(ctx, Definitions())

	gen, child, ok := registry.FindGenerator(gens, target)
	require.True(t, ok)

	out, decls, genErr := compose.NewEngine(nil).Generate(gen, ctx, nil, child)
	if genErr != nil {
		return "", nil, genErr
	}

	rendered := make([]string, len(decls))
	for i, d := range decls {
		rendered[i] = d.String()
	}

	return out.String(), rendered, nil
}
