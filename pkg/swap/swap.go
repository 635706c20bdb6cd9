// Package swap exchanges values in place.
//
// The exchange is chosen by capability: a type that declares its own
// Swap(*T) method is exchanged through it (Self), every other type falls back
// to a three-move exchange (Values). The choice is made by the caller's type
// arguments, so a mismatch is a compile error rather than a runtime branch.
//
// Fixed-size arrays are exchanged element by element with Elems and Each,
// which recurse through nested arrays one level per call. For arbitrary fixed
// nesting the funmeta generator emits the loops directly.
//
// A Swap function declared next to a type (func Swap(x, y *T) in T's package)
// is only discovered by the generator, and only for the leaves of generated
// array types. For a single non-array value nothing here looks for it: the
// caller picks Self, Values, or that package's Swap explicitly.
package swap

// Func exchanges the values behind x and y.
type Func[T any] = func(x, y *T)

// Swapper is satisfied by *T when T can trade contents with another T in place.
type Swapper[T any] interface {
	*T
	Swap(other *T)
}

// Self exchanges x and y through their own Swap method.
func Self[T any, P Swapper[T]](x, y P) {
	x.Swap(y)
}

// Values exchanges x and y with three moves.
func Values[T any](x, y *T) {
	tmp := *x
	*x = *y
	*y = tmp
}

// SelfFunc returns Self as a Func.
func SelfFunc[T any, P Swapper[T]]() Func[T] {
	return func(x, y *T) {
		P(x).Swap(y)
	}
}

// ValuesFunc returns Values as a Func.
func ValuesFunc[T any]() Func[T] {
	return Values[T]
}

// Elems exchanges x[i] and y[i] with f for every index of x.
// y must be at least as long as x.
func Elems[E any](x, y []E, f Func[E]) {
	for i := range x {
		f(&x[i], &y[i])
	}
}

// Each lifts an element exchange to slices of the same length.
func Each[E any](f Func[E]) Func[[]E] {
	return func(x, y *[]E) {
		Elems(*x, *y, f)
	}
}
