package main

import (
	"errors"
	"fmt"
	"go/types"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/funvibe/funmeta/internal/gen"
	"github.com/funvibe/funmeta/internal/meta"
)

var (
	typeElem   string
	typePkg    string
	typeDims   []int64
	typeDepth  int
	typeFamily string
)

var typeCmd = &cobra.Command{
	Use:   "type",
	Short: "Print a computed array or nested container type",
	Long: `With --dims, prints the fixed-size array of --elem with those
dimensions (outermost first) and the swap strategy its elements get.
With --depth, prints --elem nested in --family that many times.

  funmeta type --elem int --dims 2,3        # [2][3]int
  funmeta type --elem string --depth 2      # [][]string`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		ins := gen.NewInspector(cwd, gen.ModulePath)
		return runType(cmd.OutOrStdout(), ins, typeRequest{
			Elem:   typeElem,
			Pkg:    typePkg,
			Dims:   typeDims,
			Depth:  typeDepth,
			Family: typeFamily,
		})
	},
}

func init() {
	f := typeCmd.Flags()
	f.StringVarP(&typeElem, "elem", "e", "", "element type expression")
	f.StringVarP(&typePkg, "pkg", "p", "", "import path the element type is resolved in")
	f.Int64SliceVar(&typeDims, "dims", nil, "array dimensions, outermost first")
	f.IntVar(&typeDepth, "depth", 0, "nesting depth")
	f.StringVar(&typeFamily, "family", gen.FamilySlice, "container family: slice or vec")
	_ = typeCmd.MarkFlagRequired("elem")
	typeCmd.MarkFlagsMutuallyExclusive("dims", "depth")
	typeCmd.MarkFlagsOneRequired("dims", "depth")
}

type typeRequest struct {
	Elem   string
	Pkg    string
	Dims   []int64
	Depth  int
	Family string
}

func runType(w io.Writer, ins *gen.Inspector, req typeRequest) error {
	scope, err := ins.Scope(req.Pkg)
	if err != nil {
		return err
	}
	elem, err := meta.TypeOf(scope, req.Elem)
	if err != nil {
		return err
	}
	qual := types.RelativeTo(scope.Pkg)

	if len(req.Dims) > 0 {
		arr, err := meta.ArrayType(elem, req.Dims...)
		if err != nil {
			return err
		}
		plan := gen.ResolveSwap(ins.Fset(), elem)
		fmt.Fprintln(w, types.TypeString(arr, qual))
		fmt.Fprintf(w, "swap: %s %s", plan.Strategy, types.TypeString(plan.Leaf, qual))
		if len(plan.Dims) > 0 {
			fmt.Fprintf(w, " (elements peeled %v)", plan.Dims)
		}
		fmt.Fprintln(w)
		return nil
	}

	if req.Depth == 0 {
		return errors.New("one of --dims or --depth is required")
	}
	family, err := ins.Family(req.Family)
	if err != nil {
		return err
	}
	t, err := meta.NestedType(family, elem, req.Depth)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, types.TypeString(t, qual))
	return nil
}
