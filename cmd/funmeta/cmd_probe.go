package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/funvibe/funmeta/internal/gen"
	"github.com/funvibe/funmeta/internal/meta"
)

var probePkg string

var probeCmd = &cobra.Command{
	Use:   "probe [flags] EXPR...",
	Short: "Report whether Go expressions are well-formed",
	Long: `Type-checks each expression in the scope of --pkg (or the universe
scope) and prints "valid" or "invalid". Function literal bodies are checked,
so capabilities can be probed:

  funmeta probe --pkg example.com/game 'func(x, y *Cell) { x.Swap(y) }'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		scope, err := gen.NewInspector(cwd, gen.ModulePath).Scope(probePkg)
		if err != nil {
			return err
		}
		runProbe(cmd.OutOrStdout(), newPalette(cmd.OutOrStdout()), scope, args)
		return nil
	},
}

func init() {
	probeCmd.Flags().StringVarP(&probePkg, "pkg", "p", "", "import path of the package to probe in")
}

func runProbe(w io.Writer, p palette, scope meta.Scope, exprs []string) {
	for _, expr := range exprs {
		_, ok := meta.Probe(scope, expr, nil)
		logger.Debug("probed", zap.String("expr", expr), zap.Bool("valid", ok))
		if ok {
			fmt.Fprintf(w, "%s\t%s\n", p.green("valid"), expr)
		} else {
			fmt.Fprintf(w, "%s\t%s\n", p.red("invalid"), expr)
		}
	}
}
