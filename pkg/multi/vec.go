package multi

// Vec is a dynamically sized container with value elements.
type Vec[T any] struct {
	elems []T
}

// NewVec returns a Vec of n elements, each equal to fill.
func NewVec[T any](n int, fill T) Vec[T] {
	return VecOf(n, func(int) T { return fill })
}

// VecOf is the Vec family.
func VecOf[T any](n int, elem func(i int) T) Vec[T] {
	return Vec[T]{elems: Slice(n, elem)}
}

// Len returns the number of elements.
func (v Vec[T]) Len() int { return len(v.elems) }

// At returns element i. It panics if i is out of range.
func (v Vec[T]) At(i int) T { return v.elems[i] }

// Set replaces element i.
func (v Vec[T]) Set(i int, x T) { v.elems[i] = x }

// Slice returns the elements. The result aliases v.
func (v Vec[T]) Slice() []T { return v.elems }

// Swap exchanges the contents of v and other without touching elements.
func (v *Vec[T]) Swap(other *Vec[T]) {
	v.elems, other.elems = other.elems, v.elems
}

// MakeVec1 returns a Vec of d1 copies of v.
func MakeVec1[T any](v T, d1 int) Vecs1[T] {
	return Nest(VecOf[T], d1, Leaf(v))()
}

// MakeVec2 returns a d1 x d2 nesting of Vecs.
func MakeVec2[T any](v T, d1, d2 int) Vecs2[T] {
	return Nest(VecOf[Vec[T]], d1,
		Nest(VecOf[T], d2, Leaf(v)))()
}

// MakeVec3 returns a d1 x d2 x d3 nesting of Vecs.
func MakeVec3[T any](v T, d1, d2, d3 int) Vecs3[T] {
	return Nest(VecOf[Vec[Vec[T]]], d1,
		Nest(VecOf[Vec[T]], d2,
			Nest(VecOf[T], d3, Leaf(v))))()
}
