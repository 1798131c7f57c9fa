package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMaxDrawdown(t *testing.T) {
	tests := []struct {
		name     string
		prices   []float64
		expected []float64
	}{
		{
			name:     "Reference case",
			prices:   []float64{10, 8, 12, 6},
			expected: []float64{0, -0.2, 0, -0.5},
		},
		{
			name:     "Increasing prices",
			prices:   []float64{1, 2, 3, 4},
			expected: []float64{0, 0, 0, 0},
		},
		{
			name:     "Zero peak",
			prices:   []float64{0, 0, 0},
			expected: []float64{0, 0, 0},
		},
		{
			name:     "Empty",
			prices:   []float64{},
			expected: []float64{},
		},
		{
			// A finite sentinel peak such as -1e9 would report a drawdown here.
			name:     "Very negative first value",
			prices:   []float64{-2e9, -2e9},
			expected: []float64{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateMaxDrawdown(tt.prices)
			require.Len(t, result, len(tt.expected))
			for i, want := range tt.expected {
				assert.InDelta(t, want, result[i], 1e-12, "drawdown mismatch at index %d", i)
			}
		})
	}
}

func TestMaxDrawdown_NonPositive(t *testing.T) {
	for _, dd := range CalculateMaxDrawdown(randomWalk(400, 21)) {
		assert.LessOrEqual(t, dd, 0.0)
	}
}

func TestMaxDrawdown(t *testing.T) {
	assert.Equal(t, -0.5, MaxDrawdown([]float64{10, 8, 12, 6}))
	assert.Equal(t, 0.0, MaxDrawdown([]float64{1, 2, 3}))
	assert.Equal(t, 0.0, MaxDrawdown(nil))
}

func TestMaxDrawdownInto(t *testing.T) {
	prices := randomWalk(40, 5)

	dst := make([]float64, len(prices))
	require.NoError(t, MaxDrawdownInto(dst, prices))
	assert.Equal(t, CalculateMaxDrawdown(prices), dst)

	short := []float64{7, 7}
	assert.ErrorIs(t, MaxDrawdownInto(short, prices), ErrOutputLength)
	assert.Equal(t, []float64{7, 7}, short)
}
