package strategy

import (
	"fmt"
	"strings"

	"github.com/NikitaBryndak/equity-backtest/internal/config"
)

// Strategy turns a price frame into a position per candle.
type Strategy interface {
	Name() string
	WarmupPeriod() int               // Number of candles before the first meaningful signal
	GenerateFeatures(f *Frame) error // Attaches indicator columns to the frame
	GenerateSignals(f *Frame) error  // Fills f.Signals from the features
}

type Position int8

const (
	Long  Position = 1
	Hold  Position = 0
	Short Position = -1
)

func (p Position) String() string {
	switch p {
	case Long:
		return "long"
	case Short:
		return "short"
	default:
		return "hold"
	}
}

// New builds the strategies listed in cfg.Strategies.
func New(cfg config.Config) ([]Strategy, error) {
	strats := make([]Strategy, 0, len(cfg.Strategies))

	for _, name := range cfg.Strategies {
		var strat Strategy

		switch strings.ToLower(strings.TrimSpace(name)) {
		case "analytics":
			strat = NewAnalyticsStrategy(
				cfg.Analytics.RSIWindow, cfg.Analytics.MAWindow, cfg.Analytics.VolWindow,
				cfg.Analytics.Oversold, cfg.Analytics.Overbought,
			)
		case "trend-following":
			strat = NewTrendFollowingStrategy(cfg.TrendFollowing.ShortWindow, cfg.TrendFollowing.LongWindow)
		case "mean-reversion":
			strat = NewMeanReversionStrategy(cfg.MeanReversion.ShortWindow, cfg.MeanReversion.LongWindow)
		case "buy-and-hold":
			strat = NewBuyAndHoldStrategy()
		default:
			return nil, fmt.Errorf("unknown strategy %q", name)
		}

		strats = append(strats, strat)
	}

	return strats, nil
}
