package meta

import "fmt"

// Kind represents the "type of a type".
// * (Star) is the kind of proper types (int, []string, Vec[int]).
// * -> * is the kind of single-parameter type constructors (Vec).
type Kind interface {
	String() string
	Equal(Kind) bool
}

// KStar represents the kind of a value type (*).
type KStar struct{}

func (k KStar) String() string { return "*" }
func (k KStar) Equal(other Kind) bool {
	_, ok := other.(KStar)
	return ok
}

// KArrow represents a type constructor (k1 -> k2).
type KArrow struct {
	Left  Kind
	Right Kind
}

func (k KArrow) String() string {
	return fmt.Sprintf("(%s -> %s)", k.Left.String(), k.Right.String())
}

func (k KArrow) Equal(other Kind) bool {
	o, ok := other.(KArrow)
	if !ok {
		return false
	}
	return k.Left.Equal(o.Left) && k.Right.Equal(o.Right)
}

var Star Kind = KStar{}

// ContainerKind is the kind every Family must have.
var ContainerKind Kind = MakeArrow(Star, Star)

// MakeArrow builds a right-associative arrow: MakeArrow(a, b, c) is a -> (b -> c).
func MakeArrow(kinds ...Kind) Kind {
	if len(kinds) == 0 {
		return Star
	}
	if len(kinds) == 1 {
		return kinds[0]
	}
	return KArrow{Left: kinds[0], Right: MakeArrow(kinds[1:]...)}
}

// KindOfParams returns the kind of a constructor taking n proper types.
func KindOfParams(n int) Kind {
	kinds := make([]Kind, n+1)
	for i := range kinds {
		kinds[i] = Star
	}
	return MakeArrow(kinds...)
}
