package strategy

import (
	"fmt"

	"github.com/NikitaBryndak/equity-backtest/internal/indicator"
	"github.com/NikitaBryndak/equity-backtest/internal/utils"
)

func smaColumn(window int) string { return fmt.Sprintf("SMA_%d", window) }

// TrendFollowingStrategy is long while the short SMA is above the long SMA and short
// while it is below.
type TrendFollowingStrategy struct {
	ShortWindow int
	LongWindow  int
}

func NewTrendFollowingStrategy(shortWindow, longWindow int) *TrendFollowingStrategy {
	return &TrendFollowingStrategy{ShortWindow: shortWindow, LongWindow: longWindow}
}

func (s *TrendFollowingStrategy) Name() string {
	return fmt.Sprintf("TrendFollowing(%d,%d)", s.ShortWindow, s.LongWindow)
}

func (s *TrendFollowingStrategy) WarmupPeriod() int { return max(s.ShortWindow, s.LongWindow) }

func (s *TrendFollowingStrategy) GenerateFeatures(f *Frame) error {
	utils.GetLogger().Printf("Strategy | [%s] Creating features for %d candles", s.Name(), f.Len())
	return addSMAColumns(f, s.ShortWindow, s.LongWindow)
}

func (s *TrendFollowingStrategy) GenerateSignals(f *Frame) error {
	short, err := f.Feature(smaColumn(s.ShortWindow))
	if err != nil {
		return err
	}
	long, err := f.Feature(smaColumn(s.LongWindow))
	if err != nil {
		return err
	}

	f.ResetSignals()
	for i := range short {
		// NaN compares false both ways and stays Hold
		if short[i] > long[i] {
			f.Signals[i] = Long
		} else if short[i] < long[i] {
			f.Signals[i] = Short
		}
	}
	return nil
}

func addSMAColumns(f *Frame, windows ...int) error {
	closes := f.Closes()
	for _, w := range windows {
		name := smaColumn(w)
		if _, ok := f.Features[name]; ok {
			continue
		}
		values, err := rolling(name, closes, w, indicator.CalculateSMA)
		if err != nil {
			return err
		}
		if err := f.SetFeature(name, values); err != nil {
			return err
		}
	}
	return nil
}
