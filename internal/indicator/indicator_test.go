package indicator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomWalk returns n positive prices starting at 100.
func randomWalk(n int, seed int64) []float64 {
	r := rand.New(rand.NewSource(seed))
	prices := make([]float64, n)
	price := 100.0
	for i := range prices {
		price *= 1 + r.NormFloat64()*0.01
		prices[i] = price
	}
	return prices
}

func countLeadingNaN(values []float64) int {
	n := 0
	for _, v := range values {
		if !math.IsNaN(v) {
			break
		}
		n++
	}
	return n
}

func assertNoNaNAfter(t *testing.T, values []float64, from int) {
	t.Helper()
	for i := from; i < len(values); i++ {
		assert.False(t, math.IsNaN(values[i]), "unexpected NaN at index %d", i)
	}
}

func TestSentinelCounts(t *testing.T) {
	prices := randomWalk(60, 1)

	for _, window := range []int{2, 3, 14, 59} {
		sma, err := CalculateSMA(prices, window)
		require.NoError(t, err)
		ema, err := CalculateEMA(prices, window)
		require.NoError(t, err)
		rsi, err := CalculateRSI(prices, window)
		require.NoError(t, err)
		std, err := CalculateStdDev(prices, window)
		require.NoError(t, err)

		assert.Equal(t, window-1, countLeadingNaN(sma), "SMA(%d)", window)
		assert.Equal(t, window-1, countLeadingNaN(ema), "EMA(%d)", window)
		assert.Equal(t, window, countLeadingNaN(rsi), "RSI(%d)", window)
		assert.Equal(t, window-1, countLeadingNaN(std), "StdDev(%d)", window)

		assertNoNaNAfter(t, sma, window-1)
		assertNoNaNAfter(t, ema, window-1)
		assertNoNaNAfter(t, rsi, window)
		assertNoNaNAfter(t, std, window-1)
	}

	assert.Equal(t, 0, countLeadingNaN(CalculateMaxDrawdown(prices)))
}

func TestLengthPreservation(t *testing.T) {
	prices := []float64{5, 3, 8, 1}
	window := len(prices)

	sma, err := CalculateSMA(prices, window)
	require.NoError(t, err)
	ema, err := CalculateEMA(prices, window)
	require.NoError(t, err)
	std, err := CalculateStdDev(prices, window)
	require.NoError(t, err)
	rsi, err := CalculateRSI(prices, window-1)
	require.NoError(t, err)

	for _, out := range [][]float64{sma, ema, std, rsi, CalculateMaxDrawdown(prices)} {
		assert.Len(t, out, len(prices))
	}
	assert.InDelta(t, 4.25, sma[3], 1e-12)
	assert.InDelta(t, 4.25, ema[3], 1e-12)
}

func TestDeterminism(t *testing.T) {
	prices := randomWalk(300, 3)

	type calc func() ([]float64, error)
	calcs := map[string]calc{
		"SMA":    func() ([]float64, error) { return CalculateSMA(prices, 20) },
		"EMA":    func() ([]float64, error) { return CalculateEMA(prices, 20) },
		"RSI":    func() ([]float64, error) { return CalculateRSI(prices, 14) },
		"StdDev": func() ([]float64, error) { return CalculateStdDev(prices, 20) },
		"DD":     func() ([]float64, error) { return CalculateMaxDrawdown(prices), nil },
	}

	for name, fn := range calcs {
		t.Run(name, func(t *testing.T) {
			first, err := fn()
			require.NoError(t, err)
			second, err := fn()
			require.NoError(t, err)

			require.Len(t, second, len(first))
			for i := range first {
				assert.Equal(t, math.Float64bits(first[i]), math.Float64bits(second[i]), "index %d", i)
			}
		})
	}
}

func TestInputNotModified(t *testing.T) {
	prices := randomWalk(40, 5)
	orig := append([]float64(nil), prices...)

	_, _ = CalculateSMA(prices, 5)
	_, _ = CalculateEMA(prices, 5)
	_, _ = CalculateRSI(prices, 5)
	_, _ = CalculateStdDev(prices, 5)
	_ = CalculateMaxDrawdown(prices)

	assert.Equal(t, orig, prices)
}

func TestIntoRejectsMismatchedOutput(t *testing.T) {
	prices := []float64{1, 2, 3, 4}
	dst := make([]float64, 3)

	assert.ErrorIs(t, SMAInto(dst, prices, 2), ErrOutputLength)
	assert.ErrorIs(t, EMAInto(dst, prices, 2), ErrOutputLength)
	assert.ErrorIs(t, RSIInto(dst, prices, 2), ErrOutputLength)
	assert.ErrorIs(t, StdDevInto(dst, prices, 2), ErrOutputLength)
	assert.ErrorIs(t, MaxDrawdownInto(dst, prices), ErrOutputLength)
	assert.Equal(t, []float64{0, 0, 0}, dst)
}

func TestWindowValidation(t *testing.T) {
	prices := []float64{1, 2, 3}

	tests := []struct {
		name   string
		window int
		err    error
	}{
		{name: "zero", window: 0, err: ErrInvalidWindow},
		{name: "negative", window: -2, err: ErrInvalidWindow},
		{name: "too large", window: 4, err: ErrWindowTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateSMA(prices, tt.window)
			assert.ErrorIs(t, err, tt.err)
			_, err = CalculateEMA(prices, tt.window)
			assert.ErrorIs(t, err, tt.err)
			_, err = CalculateRSI(prices, tt.window)
			assert.ErrorIs(t, err, tt.err)
			_, err = CalculateStdDev(prices, tt.window)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
