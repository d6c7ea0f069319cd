package typefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"derive-generator/internal/typemodel"
)

const sampleFile = `
generator: codec
capabilities:
  - random-extra
types:
  - module: Model
    name: User
    alias: "{ name : String.String, age : Basics.Int }"
  - module: Model
    name: Tree
    custom:
      - name: Leaf
        args: ["Basics.Int"]
      - name: Node
        args: ["Model.Tree", "Model.Tree"]
targets:
  - "Codec.Codec Model.User"
  - "Codec.Codec (List.List Model.Tree)"
providers:
  - generator: codec
    module: Shared
    name: userCodec
    type: "Model.User"
`

func TestParseResolvesDocument(t *testing.T) {
	doc, err := Parse([]byte(sampleFile))
	require.NoError(t, err)

	assert.Equal(t, "codec", doc.Generator)
	assert.Equal(t, []string{"random-extra"}, doc.Capabilities)
	assert.Len(t, doc.Named, 2)
	assert.Len(t, doc.Targets, 2)

	userRef := typemodel.TypeRef{Module: "Model", Name: "User"}
	user, ok := doc.Named[userRef].(*typemodel.Alias)
	require.True(t, ok)
	assert.Equal(t, "{ name : String.String, age : Basics.Int }", user.Underlying.String())

	// Targets resolve declared names to their nodes.
	target, ok := doc.Targets[0].(*typemodel.Opaque)
	require.True(t, ok)
	require.Len(t, target.Args, 1)
	assert.Same(t, doc.Named[userRef], target.Args[0])

	require.Len(t, doc.Providers, 1)
	assert.Equal(t, "codec", doc.Providers[0].GeneratorID)
	assert.Equal(t, "Shared.userCodec", doc.Providers[0].Location.String())
	assert.True(t, typemodel.EqualUpToApplication(doc.Providers[0].DeclaredType, doc.Named[userRef]))
}

func TestParseResolvesRecursiveCustomType(t *testing.T) {
	doc, err := Parse([]byte(sampleFile))
	require.NoError(t, err)

	tree, ok := doc.Named[typemodel.TypeRef{Module: "Model", Name: "Tree"}].(*typemodel.Custom)
	require.True(t, ok)
	require.Len(t, tree.Constructors, 2)

	leaf := tree.Constructors[0]
	assert.Equal(t, "Model.Leaf", leaf.Ref.String())
	require.Len(t, leaf.Args, 1)
	assert.Equal(t, "Basics.Int", leaf.Args[0].String())

	node := tree.Constructors[1]
	require.Len(t, node.Args, 2)
	// Recursive references point back at the same node.
	assert.Same(t, typemodel.Type(tree), node.Args[0])
	assert.Same(t, typemodel.Type(tree), node.Args[1])
}

func TestParseRejectsMalformedDeclarations(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"duplicate", `
types:
  - {module: M, name: A, alias: "Basics.Int"}
  - {module: M, name: A, alias: "Basics.Bool"}
`},
		{"both alias and custom", `
types:
  - module: M
    name: A
    alias: "Basics.Int"
    custom:
      - name: C
`},
		{"neither alias nor custom", `
types:
  - {module: M, name: A}
`},
		{"bad alias expression", `
types:
  - {module: M, name: A, alias: "List.List ("}
`},
		{"bad target", `
targets: ["( Basics.Int"]
`},
		{"not yaml", "\t{"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.src))
			assert.Error(t, err)
		})
	}
}

func TestLoadFileReadsFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "types.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleFile), 0o644))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "codec", doc.Generator)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
