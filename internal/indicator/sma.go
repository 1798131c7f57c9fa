package indicator

import "math"

// CalculateSMA returns the simple moving average of prices over window.
// The first window-1 values are NaN.
func CalculateSMA(prices []float64, window int) ([]float64, error) {
	out := make([]float64, len(prices))
	if err := SMAInto(out, prices, window); err != nil {
		return nil, err
	}
	return out, nil
}

// SMAInto writes the simple moving average of prices into dst.
// dst must have the same length as prices and is left untouched on error.
func SMAInto(dst, prices []float64, window int) error {
	if err := checkOutput(dst, prices); err != nil {
		return err
	}
	if err := checkWindow(len(prices), window); err != nil {
		return err
	}

	for i := range prices {
		if i < window-1 {
			dst[i] = math.NaN()
			continue
		}
		dst[i] = windowSum(prices, i, window) / float64(window)
	}
	return nil
}
