package swap

import (
	"slices"
	"testing"
)

// ring trades buffers but keeps its own exchange count, so a three-move
// exchange is distinguishable from its Swap method.
type ring struct {
	buf   []int
	swaps int
}

func (r *ring) Swap(other *ring) {
	r.buf, other.buf = other.buf, r.buf
	r.swaps++
	other.swaps++
}

func TestSelf_MatchesOwnSwap(t *testing.T) {
	a, b := ring{buf: []int{1, 2}}, ring{buf: []int{3}}
	wantA, wantB := ring{buf: []int{1, 2}}, ring{buf: []int{3}}
	wantA.Swap(&wantB)

	Self(&a, &b)

	if !slices.Equal(a.buf, wantA.buf) || a.swaps != wantA.swaps {
		t.Errorf("a = %+v; want %+v", a, wantA)
	}
	if !slices.Equal(b.buf, wantB.buf) || b.swaps != wantB.swaps {
		t.Errorf("b = %+v; want %+v", b, wantB)
	}
}

func TestSelfFunc_UsesOwnSwap(t *testing.T) {
	x := [3]ring{{buf: []int{1}}, {buf: []int{2}}, {buf: []int{3}}}
	y := [3]ring{{buf: []int{4}}, {buf: []int{5}}, {buf: []int{6}}}
	Elems(x[:], y[:], SelfFunc[ring]())

	// A three-move exchange would leave both counts at zero.
	for i := range x {
		if x[i].buf[0] != i+4 || y[i].buf[0] != i+1 {
			t.Errorf("index %d: x=%v y=%v", i, x[i].buf, y[i].buf)
		}
		if x[i].swaps != 1 || y[i].swaps != 1 {
			t.Errorf("index %d: swaps = %d/%d; want 1/1", i, x[i].swaps, y[i].swaps)
		}
	}
}

func TestValues_ThreeMove(t *testing.T) {
	tests := []struct {
		name string
		x, y ring
	}{
		{"distinct", ring{buf: []int{1}, swaps: 7}, ring{buf: []int{2, 3}, swaps: 9}},
		{"empty", ring{}, ring{buf: []int{4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.x, tt.y
			Values(&x, &y)

			// Plain moves carry every field, including the count.
			if !slices.Equal(x.buf, tt.y.buf) || x.swaps != tt.y.swaps {
				t.Errorf("x = %+v; want %+v", x, tt.y)
			}
			if !slices.Equal(y.buf, tt.x.buf) || y.swaps != tt.x.swaps {
				t.Errorf("y = %+v; want %+v", y, tt.x)
			}
		})
	}
}

func TestValuesFunc_Scalars(t *testing.T) {
	f := ValuesFunc[string]()
	a, b := "left", "right"
	f(&a, &b)
	if a != "right" || b != "left" {
		t.Errorf("got (%q, %q); want (\"right\", \"left\")", a, b)
	}
}

func TestElems_EveryIndex(t *testing.T) {
	x := [4]int{1, 2, 3, 4}
	y := [4]int{5, 6, 7, 8}
	Elems(x[:], y[:], Values[int])

	if x != [4]int{5, 6, 7, 8} {
		t.Errorf("x = %v", x)
	}
	if y != [4]int{1, 2, 3, 4} {
		t.Errorf("y = %v", y)
	}
}

func TestElems_Nested2x2(t *testing.T) {
	x := [2][2]int{{1, 2}, {3, 4}}
	y := [2][2]int{{5, 6}, {7, 8}}

	leaves := 0
	leaf := func(a, b *int) {
		leaves++
		Values(a, b)
	}
	Elems(x[:], y[:], func(a, b *[2]int) {
		Elems(a[:], b[:], leaf)
	})

	if leaves != 4 {
		t.Errorf("swapped %d leaves; want 4", leaves)
	}
	if x != [2][2]int{{5, 6}, {7, 8}} || y != [2][2]int{{1, 2}, {3, 4}} {
		t.Errorf("x = %v, y = %v", x, y)
	}
}

func TestEach_Rows(t *testing.T) {
	x := [][]ring{{{buf: []int{1}}}, {{buf: []int{2}}}}
	y := [][]ring{{{buf: []int{3}}}, {{buf: []int{4}}}}

	Elems(x, y, Each(SelfFunc[ring]()))

	for i := range x {
		if x[i][0].buf[0] != i+3 || y[i][0].buf[0] != i+1 {
			t.Errorf("row %d: x=%v y=%v", i, x[i][0].buf, y[i][0].buf)
		}
		if x[i][0].swaps != 1 {
			t.Errorf("row %d: swaps = %d; want 1", i, x[i][0].swaps)
		}
	}
}
