// Command funmeta computes array and nested container types, probes Go
// expressions, and generates swap and builder code from funmeta.yaml.
//
// A package with a funmeta.yaml usually runs it from a directive:
//
//	go:generate go run github.com/funvibe/funmeta/cmd/funmeta gen
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "funmeta",
	Short: "Type-level helpers for fixed arrays, nested containers and swaps",
	Long: `funmeta resolves multidimensional array types, nested container types
and the swap strategy of element types, and generates the Go code for them.

Types are named by Go type expressions resolved in an optional package,
e.g. --pkg example.com/game --elem Cell.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(genCmd, probeCmd, typeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
