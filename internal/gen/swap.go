package gen

import (
	"go/token"
	"go/types"

	"github.com/funvibe/funmeta/internal/meta"
)

// Strategy is the exchange chosen for the leaves of an array.
type Strategy int

const (
	// StrategySelf calls the leaf's own method: x.Swap(y).
	StrategySelf Strategy = iota
	// StrategyScoped calls a Swap function declared next to the leaf type:
	// pkg.Swap(x, y).
	StrategyScoped
	// StrategyMove exchanges the leaves with plain assignments.
	StrategyMove
)

func (s Strategy) String() string {
	switch s {
	case StrategySelf:
		return "self"
	case StrategyScoped:
		return "scoped"
	case StrategyMove:
		return "move"
	default:
		return "unknown"
	}
}

// SwapPlan describes how the generated Swap function exchanges elements.
type SwapPlan struct {
	Strategy Strategy

	// Leaf is the type the strategy applies to.
	Leaf types.Type

	// Dims are array levels of the element type that are exchanged
	// elementwise because the element itself has no exchange of its own.
	Dims []int64
}

// ResolveSwap picks the exchange for values of type t, in order of preference:
// t's own Swap method, a Swap function in t's defining package, elementwise
// exchange when t is an array, and plain assignment otherwise. Aliases are
// resolved first, so an alias exchanges like the type it denotes.
func ResolveSwap(fset *token.FileSet, t types.Type) SwapPlan {
	var dims []int64
	for {
		t = types.Unalias(t)
		if s, ok := ownExchange(fset, t); ok {
			return SwapPlan{Strategy: s, Leaf: t, Dims: dims}
		}
		elem, n, ok := meta.Peel(t)
		if !ok {
			return SwapPlan{Strategy: StrategyMove, Leaf: t, Dims: dims}
		}
		dims = append(dims, n)
		t = elem
	}
}

// ownExchange probes t for an exchange it provides itself. The probes see t
// as T together with the Swap function of t's defining package, if any.
func ownExchange(fset *token.FileSet, t types.Type) (Strategy, bool) {
	var scoped types.Object
	if pkg := definingPackage(t); pkg != nil {
		if fn, ok := pkg.Scope().Lookup("Swap").(*types.Func); ok {
			scoped = fn
		}
	}
	scope := meta.Subject(fset, "T", t, scoped)

	c, ok := meta.Select(scope,
		meta.Candidate[Strategy]{
			Name:     "self",
			Value:    StrategySelf,
			Requires: []string{"func(x, y *T) { x.Swap(y) }"},
		},
		meta.Candidate[Strategy]{
			Name:     "scoped",
			Value:    StrategyScoped,
			Requires: []string{"func(x, y *T) { Swap(x, y) }"},
		},
	)
	return c.Value, ok
}

// definingPackage returns the package declaring a named type, or nil.
func definingPackage(t types.Type) *types.Package {
	if named, ok := types.Unalias(t).(*types.Named); ok {
		return named.Obj().Pkg()
	}
	return nil
}
