// Package multi builds uniformly nested containers.
//
// A nested container is described by a fill value and a list of per-level
// sizes, outermost level first: Make3(v, 1, 2, 3) is one slice holding two
// slices each holding three copies of v. Every level is built from fresh
// element values, so no two sibling subtrees share backing storage.
//
// Containers other than slices plug in through Family. Nest composes one
// level at a time and works for any mix of families:
//
//	grid := multi.Nest(multi.VecOf[[]int], 4,
//		multi.Nest(multi.Slice[int], 8, multi.Leaf(0)))()
package multi

// Family constructs a container of n elements, calling elem once per index
// in increasing order.
type Family[C, E any] = func(n int, elem func(i int) E) C

// Gen produces a fresh value on every call.
type Gen[T any] = func() T

// Leaf returns a Gen yielding v.
func Leaf[T any](v T) Gen[T] {
	return func() T {
		return v
	}
}

// Nest returns a Gen for containers of n elements, each a fresh inner().
func Nest[C, E any](family Family[C, E], n int, inner Gen[E]) Gen[C] {
	return func() C {
		return family(n, func(int) E {
			return inner()
		})
	}
}

// Slice is the family of built-in slices.
func Slice[E any](n int, elem func(i int) E) []E {
	s := make([]E, n)
	for i := range s {
		s[i] = elem(i)
	}
	return s
}

// Make1 returns d1 copies of v.
func Make1[T any](v T, d1 int) Slices1[T] {
	return Nest(Slice[T], d1, Leaf(v))()
}

// Make2 returns a d1 x d2 nesting of v.
func Make2[T any](v T, d1, d2 int) Slices2[T] {
	return Nest(Slice[[]T], d1,
		Nest(Slice[T], d2, Leaf(v)))()
}

// Make3 returns a d1 x d2 x d3 nesting of v.
func Make3[T any](v T, d1, d2, d3 int) Slices3[T] {
	return Nest(Slice[[][]T], d1,
		Nest(Slice[[]T], d2,
			Nest(Slice[T], d3, Leaf(v))))()
}

// Make4 returns a d1 x d2 x d3 x d4 nesting of v.
func Make4[T any](v T, d1, d2, d3, d4 int) Slices4[T] {
	return Nest(Slice[[][][]T], d1,
		Nest(Slice[[][]T], d2,
			Nest(Slice[[]T], d3,
				Nest(Slice[T], d4, Leaf(v)))))()
}
