package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"derive-generator/internal/builtin"
	"derive-generator/internal/registry"
)

var (
	registryWith []string
	registryDump bool
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Show the resolved builtin registry under an activation context",
	RunE:  runRegistry,
}

func init() {
	registryCmd.Flags().StringSliceVarP(&registryWith, "with", "w", nil, "capability to activate (repeatable)")
	registryCmd.Flags().BoolVar(&registryDump, "dump", false, "dump resolver structures")
}

func runRegistry(cmd *cobra.Command, args []string) error {
	ctx := registry.NewActivationContext(registryWith...)
	gens := registry.Resolve(ctx, builtin.Definitions())

	for _, gen := range gens {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d resolvers", gen.ID, len(gen.Resolvers))

		if gen.Breaker != nil {
			fmt.Fprint(cmd.OutOrStdout(), ", lambda breaker")
		}

		fmt.Fprintln(cmd.OutOrStdout())

		for _, ref := range gen.PrimitiveRefs() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", ref)
		}

		if registryDump {
			spew.Fdump(cmd.OutOrStdout(), gen.Resolvers)
		}
	}

	return nil
}
