package indicator

import "math"

// CalculateMaxDrawdown returns the running drawdown of prices from their highest value so far,
// as a fraction of that peak. Every index has a value; a zero peak yields 0.
func CalculateMaxDrawdown(prices []float64) []float64 {
	out := make([]float64, len(prices))
	runningDrawdown(out, prices)
	return out
}

// MaxDrawdownInto writes the running drawdown of prices into dst.
func MaxDrawdownInto(dst, prices []float64) error {
	if err := checkOutput(dst, prices); err != nil {
		return err
	}
	runningDrawdown(dst, prices)
	return nil
}

// runningDrawdown assumes len(dst) == len(prices).
func runningDrawdown(dst, prices []float64) {
	peak := math.Inf(-1)
	for i, price := range prices {
		if price > peak {
			peak = price
		}
		if peak == 0 {
			dst[i] = 0
			continue
		}
		dst[i] = (price - peak) / peak
	}
}

// MaxDrawdown returns the deepest drawdown of prices, 0 for an empty or never-declining series.
func MaxDrawdown(prices []float64) float64 {
	worst := 0.0
	for _, dd := range CalculateMaxDrawdown(prices) {
		if dd < worst {
			worst = dd
		}
	}
	return worst
}
