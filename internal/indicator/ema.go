package indicator

import "math"

// emaStep advances the EMA recurrence by one sample.
func emaStep(prev, price, multiplier float64) float64 {
	return (price-prev)*multiplier + prev
}

// CalculateEMA returns the exponential moving average of prices.
// The series is seeded at index window-1 with the SMA of the first window prices.
func CalculateEMA(prices []float64, window int) ([]float64, error) {
	out := make([]float64, len(prices))
	if err := EMAInto(out, prices, window); err != nil {
		return nil, err
	}
	return out, nil
}

// EMAInto writes the exponential moving average of prices into dst.
func EMAInto(dst, prices []float64, window int) error {
	if err := checkOutput(dst, prices); err != nil {
		return err
	}
	if err := checkWindow(len(prices), window); err != nil {
		return err
	}

	multiplier := 2.0 / float64(window+1)
	// same summation order as SMA so the seed matches it bit for bit
	seed := windowSum(prices, window-1, window) / float64(window)

	for i := 0; i < window-1; i++ {
		dst[i] = math.NaN()
	}
	dst[window-1] = seed

	prev := seed
	for i := window; i < len(prices); i++ {
		prev = emaStep(prev, prices[i], multiplier)
		dst[i] = prev
	}
	return nil
}
