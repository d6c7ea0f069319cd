package main

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"derive-generator/internal/builtin"
	"derive-generator/internal/compose"
	"derive-generator/internal/diagnostic"
	"derive-generator/internal/expr"
	"derive-generator/internal/registry"
	"derive-generator/internal/simplify"
	"derive-generator/internal/typefile"
	"derive-generator/internal/typemodel"
)

var (
	genTypesPath string
	genGenerator string
	genWith      []string
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate implementations for the targets of a type file",
	Long: `Generate composes an implementation expression for every target type
listed in the given type file, using the builtin generator definitions.

Examples:
  derive-generator gen --types types.yaml
  derive-generator gen --types types.yaml --generator random --with random-extra`,
	RunE: runGen,
}

func init() {
	genCmd.Flags().StringVarP(&genTypesPath, "types", "t", "", "path to the YAML type file (required)")
	genCmd.Flags().StringVarP(&genGenerator, "generator", "g", "", "generator id (default: the type file's generator)")
	genCmd.Flags().StringSliceVarP(&genWith, "with", "w", nil, "capability to activate (repeatable)")
	_ = genCmd.MarkFlagRequired("types")
}

func runGen(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	doc, err := typefile.LoadFile(genTypesPath)
	if err != nil {
		return err
	}

	generatorID := genGenerator
	if generatorID == "" {
		generatorID = doc.Generator
	}

	caps := append([]string{}, doc.Capabilities...)
	caps = append(caps, genWith...)
	ctx := registry.NewActivationContext(caps...)

	gens := registry.Resolve(ctx, builtin.Definitions())

	// An explicit generator id pins every target to one generator;
	// otherwise each target dispatches on the registered patterns.
	var forced *registry.ResolvedGenerator
	if generatorID != "" {
		forced = findByID(gens, generatorID)
		if forced == nil {
			return errors.Newf("unknown generator %q", generatorID)
		}
	}

	engine := compose.NewEngine(log)

	// Printed declaration names must be unique across the whole file:
	// two container targets would otherwise both derive e.g. "listCodec".
	taken := make(map[string]struct{})

	for _, target := range doc.Targets {
		gen := forced

		var child typemodel.Type

		if gen != nil {
			c, ok := gen.Pattern.Match(target)
			if !ok {
				return errors.Newf("target %s does not match generator %q", target.String(), gen.ID)
			}

			child = c
		} else {
			g, c, ok := registry.FindGenerator(gens, target)
			if !ok {
				return diagnostic.NoResolver(target.String(), nil)
			}

			gen, child = g, c
		}

		out, decls, err := engine.Generate(gen, ctx, doc.Providers, child)
		if err != nil {
			return errors.Wrapf(err, "target %s", target.String())
		}

		for _, d := range decls {
			taken[d.Name] = struct{}{}

			fmt.Fprintln(cmd.OutOrStdout(), d.String())
			fmt.Fprintln(cmd.OutOrStdout())
		}

		name := "derived"
		if ref, ok := typemodel.RefOf(child); ok && gen.MakeName != nil {
			name = gen.MakeName(ref.Name)
		}

		primary := simplify.NormalizeDeclaration(expr.Declaration{
			Name: claimName(taken, name),
			Type: target,
			Body: out,
		})

		fmt.Fprintln(cmd.OutOrStdout(), primary.String())
		fmt.Fprintln(cmd.OutOrStdout())
	}

	return nil
}

// claimName returns base if no printed declaration uses it yet, otherwise
// base with the smallest numeric suffix that frees it.
func claimName(taken map[string]struct{}, base string) string {
	if _, ok := taken[base]; !ok {
		taken[base] = struct{}{}
		return base
	}

	for i := 1; ; i++ {
		name := base + strconv.Itoa(i)
		if _, ok := taken[name]; !ok {
			taken[name] = struct{}{}
			return name
		}
	}
}

func findByID(gens []registry.ResolvedGenerator, id string) *registry.ResolvedGenerator {
	for i := range gens {
		if gens[i].ID == id {
			return &gens[i]
		}
	}

	return nil
}
