package indicator

import (
	"fmt"
	"math"
)

// CalculateStdDev returns the rolling sample standard deviation (divisor window-1) of prices.
// The first window-1 values are NaN. A window of 1 is rejected.
func CalculateStdDev(prices []float64, window int) ([]float64, error) {
	out := make([]float64, len(prices))
	if err := StdDevInto(out, prices, window); err != nil {
		return nil, err
	}
	return out, nil
}

// StdDevInto writes the rolling sample standard deviation of prices into dst.
func StdDevInto(dst, prices []float64, window int) error {
	if err := checkOutput(dst, prices); err != nil {
		return err
	}
	if err := checkWindow(len(prices), window); err != nil {
		return err
	}
	if window == 1 {
		return fmt.Errorf("%w: sample standard deviation needs a window of at least 2", ErrDegenerateWindow)
	}

	for i := range prices {
		if i < window-1 {
			dst[i] = math.NaN()
			continue
		}
		mean := windowSum(prices, i, window) / float64(window)

		sqSum := 0.0
		for j := 0; j < window; j++ {
			diff := prices[i-j] - mean
			sqSum += diff * diff
		}
		dst[i] = math.Sqrt(sqSum / float64(window-1))
	}
	return nil
}
