package strategy

import (
	"fmt"

	"github.com/NikitaBryndak/equity-backtest/internal/utils"
)

// MeanReversionStrategy goes long when the close drops below the long SMA and short
// when it rises above the short SMA. The short rule wins when both hold.
type MeanReversionStrategy struct {
	ShortWindow int
	LongWindow  int
}

func NewMeanReversionStrategy(shortWindow, longWindow int) *MeanReversionStrategy {
	return &MeanReversionStrategy{ShortWindow: shortWindow, LongWindow: longWindow}
}

func (s *MeanReversionStrategy) Name() string {
	return fmt.Sprintf("MeanReversion(%d,%d)", s.ShortWindow, s.LongWindow)
}

func (s *MeanReversionStrategy) WarmupPeriod() int { return max(s.ShortWindow, s.LongWindow) }

func (s *MeanReversionStrategy) GenerateFeatures(f *Frame) error {
	utils.GetLogger().Printf("Strategy | [%s] Creating features for %d candles", s.Name(), f.Len())
	return addSMAColumns(f, s.ShortWindow, s.LongWindow)
}

func (s *MeanReversionStrategy) GenerateSignals(f *Frame) error {
	short, err := f.Feature(smaColumn(s.ShortWindow))
	if err != nil {
		return err
	}
	long, err := f.Feature(smaColumn(s.LongWindow))
	if err != nil {
		return err
	}

	f.ResetSignals()
	for i, c := range f.Candles {
		if c.Close < long[i] {
			f.Signals[i] = Long
		}
		if c.Close > short[i] {
			f.Signals[i] = Short
		}
	}
	return nil
}

// BuyAndHoldStrategy is long on every candle.
type BuyAndHoldStrategy struct{}

func NewBuyAndHoldStrategy() *BuyAndHoldStrategy { return &BuyAndHoldStrategy{} }

func (s *BuyAndHoldStrategy) Name() string { return "BuyAndHold" }

func (s *BuyAndHoldStrategy) WarmupPeriod() int { return 0 }

func (s *BuyAndHoldStrategy) GenerateFeatures(f *Frame) error { return nil }

func (s *BuyAndHoldStrategy) GenerateSignals(f *Frame) error {
	for i := range f.Signals {
		f.Signals[i] = Long
	}
	return nil
}
