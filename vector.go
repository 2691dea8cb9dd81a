package smartdoc

import (
	"errors"
	"fmt"
)

type Vector []float32

var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// Average combines vectors into a single vector by taking the element-wise
// arithmetic mean. An empty input yields an empty vector and a single vector
// is returned unchanged. The first vector's length is authoritative; a vector
// of a different length is an error.
func Average(vectors []Vector) (Vector, error) {
	if len(vectors) == 0 {
		return Vector{}, nil
	}
	if len(vectors) == 1 {
		return vectors[0], nil
	}

	dim := len(vectors[0])
	sums := make([]float64, dim)
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector %d has %d dimensions, expected %d", ErrDimensionMismatch, i, len(v), dim)
		}
		for j, x := range v {
			sums[j] += float64(x)
		}
	}

	avg := make(Vector, dim)
	for j, sum := range sums {
		avg[j] = float32(sum / float64(len(vectors)))
	}

	return avg, nil
}
