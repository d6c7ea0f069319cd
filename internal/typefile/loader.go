package typefile

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"derive-generator/internal/compose"
	"derive-generator/internal/expr"
	"derive-generator/internal/typemodel"
)

// Document is a fully resolved type-description file.
type Document struct {
	Generator    string
	Capabilities []string
	// Named holds every declared type by reference.
	Named map[typemodel.TypeRef]typemodel.Type
	// Targets are the resolved types to generate for, in file order.
	Targets []typemodel.Type
	// Providers are the declared pre-existing implementations.
	Providers []compose.Provider
}

// LoadFile loads and resolves a YAML type-description file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read type file %s", path)
	}

	return Parse(data)
}

// Parse parses YAML data and resolves every declared type and target.
// Named types may reference each other, including recursively; resolution
// allocates every named node first and fills bodies in a second pass.
func Parse(data []byte) (*Document, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "failed to parse type file")
	}

	doc := &Document{
		Generator:    file.Generator,
		Capabilities: file.Capabilities,
		Named:        make(map[typemodel.TypeRef]typemodel.Type, len(file.Types)),
	}

	// First pass: allocate named nodes so recursive references resolve.
	aliases := make(map[typemodel.TypeRef]*typemodel.Alias)
	customs := make(map[typemodel.TypeRef]*typemodel.Custom)

	for _, decl := range file.Types {
		ref := typemodel.TypeRef{Module: decl.Module, Name: decl.Name}

		if _, dup := doc.Named[ref]; dup {
			return nil, errors.Newf("duplicate type declaration %s", ref)
		}

		switch {
		case decl.Alias != "" && len(decl.Custom) > 0:
			return nil, errors.Newf("type %s declares both alias and custom", ref)

		case decl.Alias != "":
			node := &typemodel.Alias{Ref: ref}
			aliases[ref] = node
			doc.Named[ref] = node

		case len(decl.Custom) > 0:
			node := &typemodel.Custom{Ref: ref}
			customs[ref] = node
			doc.Named[ref] = node

		default:
			return nil, errors.Newf("type %s declares neither alias nor custom", ref)
		}
	}

	lookup := func(ref typemodel.TypeRef) (typemodel.Type, bool) {
		named, ok := doc.Named[ref]
		return named, ok
	}

	// Second pass: fill bodies.
	for _, decl := range file.Types {
		ref := typemodel.TypeRef{Module: decl.Module, Name: decl.Name}

		if node, ok := aliases[ref]; ok {
			underlying, err := ParseTypeExpr(decl.Alias, lookup)
			if err != nil {
				return nil, errors.Wrapf(err, "type %s", ref)
			}

			node.Underlying = underlying
			continue
		}

		node := customs[ref]

		for _, ctor := range decl.Custom {
			args := make([]typemodel.Type, 0, len(ctor.Args))

			for _, argSrc := range ctor.Args {
				arg, err := ParseTypeExpr(argSrc, lookup)
				if err != nil {
					return nil, errors.Wrapf(err, "constructor %s.%s", ref, ctor.Name)
				}

				args = append(args, arg)
			}

			node.Constructors = append(node.Constructors, typemodel.Constructor{
				Ref:  typemodel.TypeRef{Module: decl.Module, Name: ctor.Name},
				Args: args,
			})
		}
	}

	for _, target := range file.Targets {
		t, err := ParseTypeExpr(target, lookup)
		if err != nil {
			return nil, errors.Wrapf(err, "target %q", target)
		}

		doc.Targets = append(doc.Targets, t)
	}

	for _, p := range file.Providers {
		declared, err := ParseTypeExpr(p.Type, lookup)
		if err != nil {
			return nil, errors.Wrapf(err, "provider %s.%s", p.Module, p.Name)
		}

		doc.Providers = append(doc.Providers, compose.Provider{
			GeneratorID:  p.Generator,
			Location:     expr.Ref{Module: p.Module, Name: p.Name},
			DeclaredType: declared,
		})
	}

	return doc, nil
}
