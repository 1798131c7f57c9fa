package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateStdDev(t *testing.T) {
	tests := []struct {
		name     string
		prices   []float64
		window   int
		expected []float64
	}{
		{
			name:     "Linear series",
			prices:   []float64{1, 2, 3, 4, 5},
			window:   3,
			expected: []float64{math.NaN(), math.NaN(), 1, 1, 1},
		},
		{
			// Population stddev of this series is 2; the sample estimate is larger.
			name:   "Sample divisor",
			prices: []float64{2, 4, 4, 4, 5, 5, 7, 9},
			window: 8,
			expected: []float64{
				math.NaN(), math.NaN(), math.NaN(), math.NaN(),
				math.NaN(), math.NaN(), math.NaN(), 2.138089935299395,
			},
		},
		{
			name:   "Rolling window of four",
			prices: []float64{2, 4, 4, 4, 5, 5, 7, 9},
			window: 4,
			expected: []float64{
				math.NaN(), math.NaN(), math.NaN(),
				1, 0.5, 0.5773502691896257, 1.2583057392117916, 1.9148542155126762,
			},
		},
		{
			name:     "Constant window",
			prices:   []float64{7, 7, 7, 7, 3},
			window:   4,
			expected: []float64{math.NaN(), math.NaN(), math.NaN(), 0, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CalculateStdDev(tt.prices, tt.window)
			require.NoError(t, err)
			require.Len(t, result, len(tt.expected))

			for i, want := range tt.expected {
				if math.IsNaN(want) {
					assert.True(t, math.IsNaN(result[i]), "Expected NaN at index %d", i)
					continue
				}
				assert.InDelta(t, want, result[i], 1e-9, "StdDev mismatch at index %d", i)
			}
		})
	}
}

func TestCalculateStdDev_WindowOne(t *testing.T) {
	result, err := CalculateStdDev([]float64{1, 2, 3}, 1)

	assert.ErrorIs(t, err, ErrDegenerateWindow)
	assert.Nil(t, result)
}

func TestStdDev_NonNegative(t *testing.T) {
	prices := randomWalk(200, 9)

	result, err := CalculateStdDev(prices, 10)
	require.NoError(t, err)

	for i := 9; i < len(result); i++ {
		assert.GreaterOrEqual(t, result[i], 0.0, "index %d", i)
	}
}
