// Package strategy
package strategy

import (
	"errors"
	"fmt"
	"math"

	"github.com/NikitaBryndak/equity-backtest/internal/candle"
	"github.com/NikitaBryndak/equity-backtest/internal/indicator"
	"github.com/NikitaBryndak/equity-backtest/internal/utils"
)

var ErrMissingFeature = errors.New("missing feature")

// Frame is a candle series with named indicator columns and one signal per candle.
type Frame struct {
	Candles  []candle.Candle
	Features map[string][]float64
	Signals  []Position
}

// NewFrame copies candles into a fresh frame with every signal set to Hold.
func NewFrame(candles []candle.Candle) *Frame {
	c := make([]candle.Candle, len(candles))
	copy(c, candles)
	return &Frame{
		Candles:  c,
		Features: make(map[string][]float64),
		Signals:  make([]Position, len(candles)),
	}
}

func (f *Frame) Len() int { return len(f.Candles) }

func (f *Frame) Closes() []float64 { return candle.Closes(f.Candles) }

// Feature returns the named column.
func (f *Frame) Feature(name string) ([]float64, error) {
	values, ok := f.Features[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingFeature, name)
	}
	return values, nil
}

// SetFeature stores a column; it must be index-aligned with the candles.
func (f *Frame) SetFeature(name string, values []float64) error {
	if len(values) != f.Len() {
		return fmt.Errorf("feature %s has %d values, frame has %d candles", name, len(values), f.Len())
	}
	f.Features[name] = values
	return nil
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	out := NewFrame(f.Candles)
	for name, values := range f.Features {
		out.Features[name] = append([]float64(nil), values...)
	}
	copy(out.Signals, f.Signals)
	return out
}

// ResetSignals sets every signal back to Hold.
func (f *Frame) ResetSignals() {
	for i := range f.Signals {
		f.Signals[i] = Hold
	}
}

func nanSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// rolling runs a windowed indicator and falls back to an all-NaN column when the
// frame is too short for the window.
func rolling(name string, closes []float64, window int, calc func([]float64, int) ([]float64, error)) ([]float64, error) {
	values, err := calc(closes, window)
	if err == nil {
		return values, nil
	}
	if errors.Is(err, indicator.ErrWindowTooLarge) || errors.Is(err, indicator.ErrInsufficientData) {
		utils.GetLogger().Printf("Strategy | [%s] not enough candles for window %d (%d): %v", name, window, len(closes), err)
		return nanSeries(len(closes)), nil
	}
	return nil, fmt.Errorf("%s: %w", name, err)
}
