// Package main provides the CLI entrypoint for derive-generator.
//
// derive-generator is a rule-driven code synthesis tool that:
//   - Loads structural type descriptions from a YAML file
//   - Resolves a registry of generator definitions under an activation context
//   - Composes an implementation expression per requested type
//   - Prints the resulting declarations for review
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "derive-generator",
	Short:         "Synthesize derived implementations from type structure",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug tracing")
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(registryCmd)
}

// newLogger builds the run logger; tracing is off unless --verbose is set.
func newLogger() (*zap.SugaredLogger, error) {
	if !verbose {
		return zap.NewNop().Sugar(), nil
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}

	return logger.Sugar(), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
