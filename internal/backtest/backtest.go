// Package backtest
package backtest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/NikitaBryndak/equity-backtest/internal/candle"
	"github.com/NikitaBryndak/equity-backtest/internal/strategy"
	"github.com/NikitaBryndak/equity-backtest/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoStrategies = errors.New("no strategies to backtest")
	ErrNoCandles    = errors.New("no candles to backtest")
)

// Backtester replays strategy signals over a close-price series. A signal takes
// effect on the following candle and every change of position pays Fee.
type Backtester struct {
	InitialCapital float64
	Fee            float64
}

func New(initialCapital, fee float64) *Backtester {
	return &Backtester{InitialCapital: initialCapital, Fee: fee}
}

// StrategyResult holds index-aligned series for one strategy.
type StrategyResult struct {
	Name            string    `json:"name"`
	Returns         []float64 `json:"returns"`
	Positions       []float64 `json:"positions"`
	Trades          []float64 `json:"trades"`
	StrategyReturns []float64 `json:"strategy_returns"`
	Equity          []float64 `json:"equity"`
	Activation      int       `json:"activation"` // first candle with an open position (or end of warmup), in input indexing
}

// Results are the strategies' series cut to their common start.
type Results struct {
	RunID          string           `json:"run_id"`
	Symbol         string           `json:"symbol"`
	InitialCapital float64          `json:"initial_capital"`
	Start          int              `json:"start"` // index of Timestamps[0] in the input candles
	Timestamps     []time.Time      `json:"timestamps"`
	Strategies     []StrategyResult `json:"strategies"`
}

// Run evaluates every strategy on its own copy of the candles concurrently, then aligns
// all equity curves to the latest activation point and rebases them to InitialCapital.
func (b *Backtester) Run(ctx context.Context, candles []candle.Candle, strats []strategy.Strategy) (*Results, error) {
	if len(strats) == 0 {
		return nil, ErrNoStrategies
	}
	if len(candles) == 0 {
		return nil, ErrNoCandles
	}

	logger := utils.GetLogger()
	runID := uuid.NewString()
	logger.Printf("Backtest | [%s] running %d strategies over %d candles", runID, len(strats), len(candles))

	base := strategy.NewFrame(candles)
	perStrategy := make([]StrategyResult, len(strats))

	g, gctx := errgroup.WithContext(ctx)
	for i, strat := range strats {
		i, strat := i, strat
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			logger.Printf("Backtest | [%s] strategy %d/%d: %s (warmup %d)", runID, i+1, len(strats), strat.Name(), strat.WarmupPeriod())

			frame := base.Clone()
			if err := strat.GenerateFeatures(frame); err != nil {
				return fmt.Errorf("%s features: %w", strat.Name(), err)
			}
			if err := strat.GenerateSignals(frame); err != nil {
				return fmt.Errorf("%s signals: %w", strat.Name(), err)
			}

			perStrategy[i] = b.simulate(strat.Name(), strat.WarmupPeriod(), frame)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	start := 0
	for _, r := range perStrategy {
		start = max(start, r.Activation)
	}

	results := &Results{
		RunID:          runID,
		Symbol:         candles[0].Symbol,
		InitialCapital: b.InitialCapital,
		Start:          start,
		Timestamps:     make([]time.Time, 0, len(candles)-start),
		Strategies:     make([]StrategyResult, len(perStrategy)),
	}
	for _, c := range base.Candles[start:] {
		results.Timestamps = append(results.Timestamps, c.Timestamp)
	}
	for i, r := range perStrategy {
		results.Strategies[i] = b.align(r, start)
	}

	logger.Printf("Backtest | [%s] aligned %d strategies from %s", runID, len(strats),
		results.Timestamps[0].Format(time.RFC3339))
	return results, nil
}

// simulate turns a frame's signals into return and equity series. A strategy that
// never opens a position activates once its warmup is over.
func (b *Backtester) simulate(name string, warmup int, f *strategy.Frame) StrategyResult {
	n := f.Len()
	closes := f.Closes()
	r := StrategyResult{
		Name:            name,
		Returns:         make([]float64, n),
		Positions:       make([]float64, n),
		Trades:          make([]float64, n),
		StrategyReturns: make([]float64, n),
		Equity:          make([]float64, n),
		Activation:      -1,
	}

	growth := 1.0
	for i := 0; i < n; i++ {
		if i > 0 {
			r.Returns[i] = closes[i]/closes[i-1] - 1
			r.Positions[i] = float64(f.Signals[i-1])
			r.Trades[i] = math.Abs(r.Positions[i] - r.Positions[i-1])
		}
		r.StrategyReturns[i] = r.Returns[i]*r.Positions[i] - b.Fee*r.Trades[i]
		growth *= 1 + r.StrategyReturns[i]
		r.Equity[i] = growth * b.InitialCapital

		if r.Activation < 0 && r.Positions[i] != 0 {
			r.Activation = i
		}
	}
	if r.Activation < 0 {
		r.Activation = min(max(warmup, 0), n-1)
	}
	return r
}

// align cuts r to start and rescales its equity so the first value is InitialCapital.
func (b *Backtester) align(r StrategyResult, start int) StrategyResult {
	out := StrategyResult{
		Name:            r.Name,
		Returns:         r.Returns[start:],
		Positions:       r.Positions[start:],
		Trades:          r.Trades[start:],
		StrategyReturns: r.StrategyReturns[start:],
		Equity:          make([]float64, len(r.Equity)-start),
		Activation:      r.Activation,
	}

	baseVal := r.Equity[start]
	for i, eq := range r.Equity[start:] {
		if baseVal == 0 || math.IsNaN(baseVal) {
			out.Equity[i] = b.InitialCapital
			continue
		}
		out.Equity[i] = eq / baseVal * b.InitialCapital
	}
	return out
}
