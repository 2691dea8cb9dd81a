package smartdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		vectors  []Vector
		expected Vector
	}{
		{
			"no vectors yields an empty vector",
			nil,
			Vector{},
		},
		{
			"single vector is passed through unchanged",
			[]Vector{{0.5, -1.25, 3}},
			Vector{0.5, -1.25, 3},
		},
		{
			"element-wise mean of two vectors",
			[]Vector{{1, 2, 3}, {3, 4, 5}},
			Vector{2, 3, 4},
		},
		{
			"element-wise mean of four vectors",
			[]Vector{{1, 1}, {2, 2}, {3, 3}, {6, 10}},
			Vector{3, 4},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := Average(tc.vectors)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestAverage_OrderIndependent(t *testing.T) {
	t.Parallel()

	var (
		a = Vector{0.1, 0.2, 0.3}
		b = Vector{-0.4, 0.5, 0.6}
		c = Vector{0.7, -0.8, 0.9}
	)

	first, err := Average([]Vector{a, b, c})
	require.NoError(t, err)

	second, err := Average([]Vector{c, a, b})
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.InDelta(t, first[i], second[i], 1e-6)
	}
}

func TestAverage_DimensionMismatch(t *testing.T) {
	t.Parallel()

	_, err := Average([]Vector{{1, 2, 3}, {1, 2}})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = Average([]Vector{{1}, {1, 2, 3}})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
