package gen

import (
	"fmt"
	"go/token"
	"go/types"
	"os"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/funvibe/funmeta/internal/meta"
)

// InspectResult holds the resolved types for code generation.
type InspectResult struct {
	Arrays []*ResolvedArray
	Nested []*ResolvedNested
}

// ResolvedArray is an ArraySpec with its types computed.
type ResolvedArray struct {
	Spec ArraySpec

	// Elem is the resolved element type.
	Elem types.Type

	// Type is ArrayType(Elem, Spec.Dims...).
	Type *types.Array

	// Swap is the statically chosen exchange for the elements.
	Swap SwapPlan
}

// ResolvedNested is a NestedSpec with its types computed.
type ResolvedNested struct {
	Spec NestedSpec

	// Levels holds the container type of each level, outermost first,
	// followed by the element type. len(Levels) == Spec.Depth+1.
	Levels []types.Type
}

// Type returns the outermost container type.
func (n *ResolvedNested) Type() types.Type { return n.Levels[0] }

// Elem returns the element type.
func (n *ResolvedNested) Elem() types.Type { return n.Levels[len(n.Levels)-1] }

// Inspector loads Go packages and resolves the types named in a Config.
type Inspector struct {
	// dir is the directory packages are loaded from, normally the one
	// holding funmeta.yaml, so its go.mod decides versions.
	dir string

	fset *token.FileSet

	// loaded caches type-checked packages by import path.
	loaded map[string]*types.Package

	// modulePath is the import path of the funmeta module, used to declare
	// the vec family.
	modulePath string
}

// NewInspector creates an Inspector that loads packages from dir.
func NewInspector(dir, modulePath string) *Inspector {
	return &Inspector{
		dir:        dir,
		fset:       token.NewFileSet(),
		loaded:     make(map[string]*types.Package),
		modulePath: modulePath,
	}
}

// Fset returns the file set shared by all loaded packages.
func (ins *Inspector) Fset() *token.FileSet { return ins.fset }

// AddPackage registers an already type-checked package, bypassing the loader.
func (ins *Inspector) AddPackage(pkg *types.Package) {
	ins.loaded[pkg.Path()] = pkg
}

// Scope returns the probe scope of a package, loading it if needed.
// An empty path is the universe scope.
func (ins *Inspector) Scope(pkgPath string) (meta.Scope, error) {
	if pkgPath == "" {
		return meta.Scope{Fset: ins.fset}, nil
	}
	if err := ins.loadPackages([]string{pkgPath}); err != nil {
		return meta.Scope{}, err
	}
	return meta.Scope{Fset: ins.fset, Pkg: ins.loaded[pkgPath]}, nil
}

// Inspect resolves every type in cfg.
func (ins *Inspector) Inspect(cfg *Config) (*InspectResult, error) {
	if err := ins.loadPackages(cfg.PackagePaths()); err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}

	result := &InspectResult{}
	for _, spec := range cfg.Arrays {
		resolved, err := ins.resolveArray(spec)
		if err != nil {
			return nil, fmt.Errorf("resolving array %s: %w", spec.Name, err)
		}
		result.Arrays = append(result.Arrays, resolved)
	}
	for _, spec := range cfg.Nested {
		resolved, err := ins.resolveNested(spec)
		if err != nil {
			return nil, fmt.Errorf("resolving nested %s: %w", spec.Name, err)
		}
		result.Nested = append(result.Nested, resolved)
	}
	return result, nil
}

// loadPackages loads the packages not yet cached using go/packages.
func (ins *Inspector) loadPackages(pkgPaths []string) error {
	var missing []string
	for _, p := range pkgPaths {
		if _, ok := ins.loaded[p]; !ok {
			missing = append(missing, p)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedTypes |
			packages.NeedImports |
			packages.NeedDeps,
		Dir:  ins.dir,
		Fset: ins.fset,
		Env:  append(os.Environ(), "GOWORK=off"),
	}

	pkgs, err := packages.Load(cfg, missing...)
	if err != nil {
		return fmt.Errorf("loading packages: %w", err)
	}

	var errs []string
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, fmt.Sprintf("%s: %s", pkg.PkgPath, e.Msg))
		}
		if pkg.Types != nil {
			ins.loaded[pkg.PkgPath] = pkg.Types
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("package errors:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func (ins *Inspector) elemType(pkgPath, expr string) (types.Type, error) {
	scope, err := ins.Scope(pkgPath)
	if err != nil {
		return nil, err
	}
	return meta.TypeOf(scope, expr)
}

func (ins *Inspector) resolveArray(spec ArraySpec) (*ResolvedArray, error) {
	elem, err := ins.elemType(spec.Pkg, spec.Elem)
	if err != nil {
		return nil, err
	}
	arr, err := meta.ArrayType(elem, spec.Dims...)
	if err != nil {
		return nil, err
	}
	return &ResolvedArray{
		Spec: spec,
		Elem: elem,
		Type: arr,
		Swap: ResolveSwap(ins.fset, elem),
	}, nil
}

func (ins *Inspector) resolveNested(spec NestedSpec) (*ResolvedNested, error) {
	elem, err := ins.elemType(spec.Pkg, spec.Elem)
	if err != nil {
		return nil, err
	}
	family, err := ins.Family(spec.Family)
	if err != nil {
		return nil, err
	}
	levels, err := meta.LevelTypes(family, elem, spec.Depth)
	if err != nil {
		return nil, err
	}
	return &ResolvedNested{Spec: spec, Levels: levels}, nil
}

// Family returns the meta.Family for a config family name.
func (ins *Inspector) Family(name string) (meta.Family, error) {
	switch name {
	case "", FamilySlice:
		return meta.SliceFamily(), nil
	case FamilyVec:
		return meta.DeclareFamily(ins.modulePath+"/pkg/multi", "multi", "Vec")
	default:
		return nil, fmt.Errorf("unknown family %q", name)
	}
}
