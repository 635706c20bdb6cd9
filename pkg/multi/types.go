package multi

// Nested slice types, outermost level first.
type (
	Slices1[T any] = []T
	Slices2[T any] = []Slices1[T]
	Slices3[T any] = []Slices2[T]
	Slices4[T any] = []Slices3[T]
)

// Nested Vec types.
type (
	Vecs1[T any] = Vec[T]
	Vecs2[T any] = Vec[Vecs1[T]]
	Vecs3[T any] = Vec[Vecs2[T]]
	Vecs4[T any] = Vec[Vecs3[T]]
)
