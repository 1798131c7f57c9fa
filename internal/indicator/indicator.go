// Package indicator provides rolling-window technical indicators over price series.
//
// Every function returns (or fills) a slice with the same length as its input.
// Positions without enough trailing history hold math.NaN().
package indicator

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidWindow    = errors.New("window must be positive")
	ErrWindowTooLarge   = errors.New("window exceeds series length")
	ErrInsufficientData = errors.New("insufficient data")
	ErrDegenerateWindow = errors.New("degenerate window")
	ErrOutputLength     = errors.New("output length must equal input length")
)

// checkWindow validates 1 <= window <= n.
func checkWindow(n, window int) error {
	if window <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWindow, window)
	}
	if window > n {
		return fmt.Errorf("%w: window %d, length %d", ErrWindowTooLarge, window, n)
	}
	return nil
}

func checkOutput(dst, prices []float64) error {
	if len(dst) != len(prices) {
		return fmt.Errorf("%w: dst %d, prices %d", ErrOutputLength, len(dst), len(prices))
	}
	return nil
}

// windowSum adds prices[i-window+1..i], newest first.
func windowSum(prices []float64, i, window int) float64 {
	sum := 0.0
	for j := 0; j < window; j++ {
		sum += prices[i-j]
	}
	return sum
}
