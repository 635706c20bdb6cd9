package gen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const coreSrc = `package core

type Cell struct{ v int }

func (c *Cell) Swap(o *Cell) { c.v, o.v = o.v, c.v }

type Box[T any] struct{ v T }

func (b *Box[T]) Swap(o *Box[T]) { b.v, o.v = o.v, b.v }

type Chip struct{ n int }

func Swap(x, y *Chip) { *x, *y = *y, *x }
`

const gameSrc = `package game

import "example.com/game/core"

type Cell struct{ v int }

func (c *Cell) Swap(o *Cell) { c.v, o.v = o.v, c.v }

type Token struct{ s string }

func Swap(x, y *Token) { *x, *y = *y, *x }

// Pair has no exchange of its own; its cells do.
type Pair [2]Cell

type Row [2]Cell

func (r *Row) Swap(o *Row) { *r, *o = *o, *r }

type Score int

// Aliases exchange like the types they denote.
type (
	CoreCell = core.Cell
	Boxed    = core.Box[Cell]
	Chip     = core.Chip
	Cells    = [2]CoreCell
)
`

type importerFunc func(path string) (*types.Package, error)

func (f importerFunc) Import(path string) (*types.Package, error) { return f(path) }

func checkSource(t *testing.T, fset *token.FileSet, path string, imp types.Importer, srcs ...string) *types.Package {
	t.Helper()
	var files []*ast.File
	for i, src := range srcs {
		f, err := parser.ParseFile(fset, fmt.Sprintf("%s_%d.go", filepath.Base(path), i), src, parser.ParseComments)
		if err != nil {
			t.Fatalf("parse %s: %v", path, err)
		}
		files = append(files, f)
	}
	pkg, err := (&types.Config{Importer: imp}).Check(path, fset, files, nil)
	if err != nil {
		t.Fatalf("check %s: %v", path, err)
	}
	return pkg
}

// newGameInspector returns an inspector that already knows example.com/game
// and example.com/game/core.
func newGameInspector(t *testing.T) (*Inspector, *types.Package) {
	t.Helper()
	ins := NewInspector(t.TempDir(), ModulePath)
	core := checkSource(t, ins.Fset(), "example.com/game/core", nil, coreSrc)
	imp := importerFunc(func(path string) (*types.Package, error) {
		if path == core.Path() {
			return core, nil
		}
		return nil, fmt.Errorf("unexpected import %q", path)
	})
	game := checkSource(t, ins.Fset(), "example.com/game", imp, gameSrc)
	ins.AddPackage(core)
	ins.AddPackage(game)
	return ins, game
}

// multiPackage type-checks the real pkg/multi sources.
func multiPackage(t *testing.T, fset *token.FileSet) *types.Package {
	t.Helper()
	paths, err := filepath.Glob(filepath.Join("..", "..", "pkg", "multi", "*.go"))
	if err != nil {
		t.Fatal(err)
	}
	var srcs []string
	for _, p := range paths {
		if strings.HasSuffix(p, "_test.go") {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatal(err)
		}
		srcs = append(srcs, string(data))
	}
	if len(srcs) == 0 {
		t.Fatal("no pkg/multi sources found")
	}
	return checkSource(t, fset, ModulePath+"/pkg/multi", nil, srcs...)
}
