package indicator

import (
	"fmt"
	"math"
)

// wilder holds the smoothed average gain and loss of an RSI series.
type wilder struct {
	avgGain float64
	avgLoss float64
}

// next applies Wilder's smoothing for one more price change.
func (w wilder) next(gain, loss float64, period int) wilder {
	p := float64(period)
	return wilder{
		avgGain: (w.avgGain*(p-1) + gain) / p,
		avgLoss: (w.avgLoss*(p-1) + loss) / p,
	}
}

func (w wilder) rsi() float64 {
	if w.avgLoss == 0 {
		return 100
	}
	rs := w.avgGain / w.avgLoss
	return 100 - (100 / (1 + rs))
}

// priceChanges splits consecutive differences into gains and losses.
// Index 0 has neither.
func priceChanges(prices []float64) (gains, losses []float64) {
	gains = make([]float64, len(prices))
	losses = make([]float64, len(prices))
	for i := 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}
	return gains, losses
}

// CalculateRSI returns the Relative Strength Index of prices using Wilder's smoothing.
// The first period values are NaN. At least period+1 prices are required.
func CalculateRSI(prices []float64, period int) ([]float64, error) {
	out := make([]float64, len(prices))
	if err := RSIInto(out, prices, period); err != nil {
		return nil, err
	}
	return out, nil
}

// RSIInto writes the Relative Strength Index of prices into dst.
// When len(prices) <= period nothing is written and ErrInsufficientData is returned.
func RSIInto(dst, prices []float64, period int) error {
	if err := checkOutput(dst, prices); err != nil {
		return err
	}
	if err := checkWindow(len(prices), period); err != nil {
		return err
	}
	if len(prices) <= period {
		return fmt.Errorf("%w: RSI(%d) needs at least %d prices, got %d",
			ErrInsufficientData, period, period+1, len(prices))
	}

	gains, losses := priceChanges(prices)

	var state wilder
	for i := 1; i <= period; i++ {
		state.avgGain += gains[i]
		state.avgLoss += losses[i]
	}
	state.avgGain /= float64(period)
	state.avgLoss /= float64(period)

	for i := 0; i < period; i++ {
		dst[i] = math.NaN()
	}
	dst[period] = state.rsi()

	for i := period + 1; i < len(prices); i++ {
		state = state.next(gains[i], losses[i], period)
		dst[i] = state.rsi()
	}
	return nil
}
