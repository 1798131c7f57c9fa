// Package candle
package candle

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
	Symbol    string    `json:"symbol"`
}

// Validate checks if a candle has valid data
func (c *Candle) Validate() error {
	if c.Timestamp.IsZero() {
		return errors.New("candle timestamp is zero")
	}
	for _, v := range []float64{c.Open, c.High, c.Low, c.Close, c.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("candle values must be finite")
		}
	}
	if c.Open <= 0 || c.High <= 0 || c.Low <= 0 || c.Close <= 0 {
		return errors.New("candle prices must be positive")
	}
	if c.High < c.Low {
		return errors.New("candle high cannot be less than low")
	}
	if c.Open < c.Low || c.Open > c.High {
		return errors.New("candle open price must be between high and low")
	}
	if c.Close < c.Low || c.Close > c.High {
		return errors.New("candle close price must be between high and low")
	}
	if c.Volume < 0 {
		return errors.New("candle volume cannot be negative")
	}
	if c.Symbol == "" {
		return errors.New("candle symbol cannot be empty")
	}
	return nil
}

// Closes extracts the close prices in order.
func Closes(candles []Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}

// SortByTime orders candles from oldest to newest in place.
func SortByTime(candles []Candle) {
	sort.SliceStable(candles, func(i, j int) bool {
		return candles[i].Timestamp.Before(candles[j].Timestamp)
	})
}

// ResampleDaily aggregates candles into UTC calendar days: first open, highest high,
// lowest low, last close and summed volume. The result is sorted by day and every
// aggregate must pass Validate.
func ResampleDaily(candles []Candle) ([]Candle, error) {
	if len(candles) == 0 {
		return nil, nil
	}

	sorted := make([]Candle, len(candles))
	copy(sorted, candles)
	SortByTime(sorted)

	var result []Candle
	for _, c := range sorted {
		day := c.Timestamp.UTC().Truncate(24 * time.Hour)

		if n := len(result); n > 0 && result[n-1].Timestamp.Equal(day) {
			agg := &result[n-1]
			agg.High = math.Max(agg.High, c.High)
			agg.Low = math.Min(agg.Low, c.Low)
			agg.Close = c.Close
			agg.Volume += c.Volume
			continue
		}

		result = append(result, Candle{
			Timestamp: day,
			Open:      c.Open,
			High:      c.High,
			Low:       c.Low,
			Close:     c.Close,
			Volume:    c.Volume,
			Symbol:    c.Symbol,
		})
	}

	for i := range result {
		if err := result[i].Validate(); err != nil {
			return nil, fmt.Errorf("daily candle %s: %w", result[i].Timestamp.Format("2006-01-02"), err)
		}
	}
	return result, nil
}
