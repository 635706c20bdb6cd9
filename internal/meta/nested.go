package meta

import (
	"fmt"
	"go/token"
	"go/types"
)

// Family is a single-parameter container type constructor.
type Family interface {
	Name() string
	Of(elem types.Type) (types.Type, error)
}

// FamilyKindError reports a type that cannot serve as a Family.
type FamilyKindError struct {
	Name string
	Kind Kind
}

func (e *FamilyKindError) Error() string {
	return fmt.Sprintf("%s has kind %s, want %s", e.Name, e.Kind, ContainerKind)
}

type sliceFamily struct{}

// SliceFamily returns the family of built-in slices.
func SliceFamily() Family { return sliceFamily{} }

func (sliceFamily) Name() string { return "slice" }

func (sliceFamily) Of(elem types.Type) (types.Type, error) {
	return types.NewSlice(elem), nil
}

type genericFamily struct {
	origin *types.Named
	ctxt   *types.Context
}

// GenericFamily returns the family of instances of a generic named type.
// The type must have kind ContainerKind, i.e. exactly one type parameter.
func GenericFamily(named *types.Named) (Family, error) {
	origin := named.Origin()
	if k := KindOfParams(origin.TypeParams().Len()); !k.Equal(ContainerKind) {
		return nil, &FamilyKindError{Name: origin.Obj().Name(), Kind: k}
	}
	return genericFamily{origin: origin, ctxt: types.NewContext()}, nil
}

func (f genericFamily) Name() string { return f.origin.Obj().Name() }

// Of instantiates the family, checking elem against the parameter's constraint.
func (f genericFamily) Of(elem types.Type) (types.Type, error) {
	t, err := types.Instantiate(f.ctxt, f.origin, []types.Type{elem}, true)
	if err != nil {
		return nil, fmt.Errorf("instantiating %s[%s]: %w", f.Name(), elem, err)
	}
	return t, nil
}

// DeclareFamily declares a generic type pkgName.typeName[T any] in a package
// that is not loaded and returns its family. Instances print as
// pkgName.typeName[...] under a package-name qualifier.
func DeclareFamily(pkgPath, pkgName, typeName string) (Family, error) {
	pkg := types.NewPackage(pkgPath, pkgName)
	obj := types.NewTypeName(token.NoPos, pkg, typeName, nil)
	named := types.NewNamed(obj, types.NewStruct(nil, nil), nil)

	anyType := types.NewInterfaceType(nil, nil)
	anyType.Complete()
	tparam := types.NewTypeParam(types.NewTypeName(token.NoPos, pkg, "T", nil), anyType)
	named.SetTypeParams([]*types.TypeParam{tparam})
	pkg.Scope().Insert(obj)

	return GenericFamily(named)
}

// NestedType wraps elem in f depth times: depth 1 is f[elem], depth 2 is
// f[f[elem]], and so on.
func NestedType(f Family, elem types.Type, depth int) (types.Type, error) {
	if depth < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrNoDepth, depth)
	}
	t := elem
	for range depth {
		var err error
		if t, err = f.Of(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// LevelTypes returns the container type at each nesting level, outermost
// first, followed by elem. For depth 2 over slices of int it returns
// [][]int, []int, int.
func LevelTypes(f Family, elem types.Type, depth int) ([]types.Type, error) {
	if depth < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrNoDepth, depth)
	}
	levels := make([]types.Type, depth+1)
	levels[depth] = elem
	for i := depth - 1; i >= 0; i-- {
		t, err := f.Of(levels[i+1])
		if err != nil {
			return nil, err
		}
		levels[i] = t
	}
	return levels, nil
}
