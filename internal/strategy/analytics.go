package strategy

import (
	"fmt"
	"math"

	"github.com/NikitaBryndak/equity-backtest/internal/indicator"
	"github.com/NikitaBryndak/equity-backtest/internal/utils"
)

// Feature columns written by AnalyticsStrategy.
const (
	FeatureSMA = "SMA"
	FeatureEMA = "EMA"
	FeatureRSI = "RSI"
	FeatureVol = "Vol"
	FeatureDD  = "DD"
)

// AnalyticsStrategy computes the full indicator set and trades RSI extremes:
// long below Oversold, short above Overbought.
type AnalyticsStrategy struct {
	RSIWindow  int
	MAWindow   int
	VolWindow  int
	Oversold   float64
	Overbought float64
}

func NewAnalyticsStrategy(rsiWindow, maWindow, volWindow int, oversold, overbought float64) *AnalyticsStrategy {
	return &AnalyticsStrategy{
		RSIWindow:  rsiWindow,
		MAWindow:   maWindow,
		VolWindow:  volWindow,
		Oversold:   oversold,
		Overbought: overbought,
	}
}

func (s *AnalyticsStrategy) Name() string {
	return fmt.Sprintf("Analytics(RSI=%d,MA=%d,Vol=%d)", s.RSIWindow, s.MAWindow, s.VolWindow)
}

func (s *AnalyticsStrategy) WarmupPeriod() int { return s.RSIWindow }

func (s *AnalyticsStrategy) GenerateFeatures(f *Frame) error {
	utils.GetLogger().Printf("Strategy | [%s] Creating features for %d candles", s.Name(), f.Len())
	closes := f.Closes()

	columns := []struct {
		name   string
		window int
		calc   func([]float64, int) ([]float64, error)
	}{
		{FeatureSMA, s.MAWindow, indicator.CalculateSMA},
		{FeatureEMA, s.MAWindow, indicator.CalculateEMA},
		{FeatureRSI, s.RSIWindow, indicator.CalculateRSI},
		{FeatureVol, s.VolWindow, indicator.CalculateStdDev},
	}
	for _, col := range columns {
		values, err := rolling(col.name, closes, col.window, col.calc)
		if err != nil {
			return err
		}
		if err := f.SetFeature(col.name, values); err != nil {
			return err
		}
	}

	return f.SetFeature(FeatureDD, indicator.CalculateMaxDrawdown(closes))
}

func (s *AnalyticsStrategy) GenerateSignals(f *Frame) error {
	rsi, err := f.Feature(FeatureRSI)
	if err != nil {
		return err
	}

	f.ResetSignals()
	for i, v := range rsi {
		switch {
		case math.IsNaN(v):
			continue
		case v < s.Oversold:
			f.Signals[i] = Long
		case v > s.Overbought:
			f.Signals[i] = Short
		}
	}
	return nil
}
