// Package meta computes types over go/types.
//
// It provides the type-level half of funmeta:
//   - Probe: is a Go expression well-formed in a given scope?
//   - Select: pick the first candidate whose probes all pass
//   - ArrayType: the n-dimensional fixed-size array of a base type
//   - NestedType: a single-parameter container family nested to a depth
//
// Everything here runs at generation time. Nothing in this package is
// linked into programs that use the generated code.
package meta

import (
	"fmt"
	"go/token"
	"go/types"
)

// Scope is where probe expressions are resolved.
// A nil Pkg resolves in the universe scope.
type Scope struct {
	Fset *token.FileSet
	Pkg  *types.Package
}

// Unit is the default probe result, the empty struct.
var Unit types.Type = types.NewStruct(nil, nil)

func (s Scope) eval(expr string) (types.TypeAndValue, error) {
	fset := s.Fset
	if fset == nil {
		fset = token.NewFileSet()
	}
	pkg := s.Pkg
	if pkg == nil {
		// An empty package sees only the universe scope.
		pkg = types.NewPackage("universe", "universe")
	}
	return types.Eval(fset, pkg, token.NoPos, expr)
}

// Probe reports whether expr type-checks in s. Function literal bodies are
// checked too, so "func(x, y *T) { x.Swap(y) }" probes for a Swap method.
// On success it returns result, or Unit when result is nil.
func Probe(s Scope, expr string, result types.Type) (types.Type, bool) {
	if _, err := s.eval(expr); err != nil {
		return nil, false
	}
	if result == nil {
		result = Unit
	}
	return result, true
}

// Subject returns a scratch scope in which name denotes t, however t was
// spelled and wherever it was declared. Probes over Subject scopes never
// need to qualify t. Each of extra (nil entries are skipped) is also visible
// unqualified, so functions declared next to t can be called by name.
func Subject(fset *token.FileSet, name string, t types.Type, extra ...types.Object) Scope {
	pkg := types.NewPackage("funmeta/subject", "subject")
	pkg.Scope().Insert(types.NewTypeName(token.NoPos, pkg, name, t))
	for _, obj := range extra {
		if obj != nil && obj.Name() != name {
			pkg.Scope().Insert(obj)
		}
	}
	return Scope{Fset: fset, Pkg: pkg}
}

// TypeOf evaluates a type expression in s.
func TypeOf(s Scope, expr string) (types.Type, error) {
	tv, err := s.eval(expr)
	if err != nil {
		return nil, fmt.Errorf("evaluating %q: %w", expr, err)
	}
	if !tv.IsType() {
		return nil, fmt.Errorf("%q is not a type", expr)
	}
	return tv.Type, nil
}

// Candidate is one alternative in a selection set. It is enabled only when
// every expression in Requires probes valid.
type Candidate[V any] struct {
	Name     string
	Value    V
	Requires []string
}

// Enabled reports whether all requirements of c probe valid in s.
func (c Candidate[V]) Enabled(s Scope) bool {
	for _, expr := range c.Requires {
		if _, ok := Probe(s, expr, nil); !ok {
			return false
		}
	}
	return true
}

// Select returns the first enabled candidate. Disabled candidates are
// skipped; only an empty result is reported, as false.
func Select[V any](s Scope, cands ...Candidate[V]) (Candidate[V], bool) {
	for _, c := range cands {
		if c.Enabled(s) {
			return c, true
		}
	}
	return Candidate[V]{}, false
}
