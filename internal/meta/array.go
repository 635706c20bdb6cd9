package meta

import (
	"errors"
	"fmt"
	"go/types"
)

var (
	ErrNoDims      = errors.New("no dimensions")
	ErrNegativeDim = errors.New("negative dimension")
	ErrNoDepth     = errors.New("depth must be at least 1")
)

// ArrayType returns [dims[0]][dims[1]]...elem.
func ArrayType(elem types.Type, dims ...int64) (*types.Array, error) {
	if len(dims) == 0 {
		return nil, ErrNoDims
	}
	if dims[0] < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeDim, dims[0])
	}
	if len(dims) == 1 {
		return types.NewArray(elem, dims[0]), nil
	}
	inner, err := ArrayType(elem, dims[1:]...)
	if err != nil {
		return nil, err
	}
	return types.NewArray(inner, dims[0]), nil
}

// Peel removes one array level from t, looking through names and aliases.
// It returns the element type and length, or ok == false when t is not an
// array.
func Peel(t types.Type) (elem types.Type, n int64, ok bool) {
	arr, ok := t.Underlying().(*types.Array)
	if !ok {
		return t, 0, false
	}
	return arr.Elem(), arr.Len(), true
}
