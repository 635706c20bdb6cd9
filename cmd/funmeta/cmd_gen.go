package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/funvibe/funmeta/internal/gen"
)

var genConfig string

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate array and nested container code from funmeta.yaml",
	Long: `Reads funmeta.yaml (or the file given by --config), resolves every
declared type and writes the generated Go file next to the config.

Without --config, funmeta.yaml is searched for from the current directory
upwards.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := genConfig
		if path == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			if path, err = gen.FindConfig(cwd); err != nil {
				return err
			}
			if path == "" {
				return fmt.Errorf("no funmeta.yaml found in %s or its parents", cwd)
			}
		}

		g := &gen.Generator{Logger: logger}
		res, err := g.Run(path)
		if err != nil {
			return err
		}
		if res.Written {
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", res.Path)
		}
		return nil
	},
}

func init() {
	genCmd.Flags().StringVarP(&genConfig, "config", "c", "", "path to funmeta.yaml")
}
