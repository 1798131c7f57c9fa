package backtest

import (
	"math"

	"github.com/NikitaBryndak/equity-backtest/internal/indicator"
)

const (
	daysPerYear    = 365.25
	tradingPerYear = 365.0
)

// Metrics summarises one strategy's aligned equity curve.
type Metrics struct {
	Strategy             string  `json:"strategy"`
	FinalEquity          Float64 `json:"final_equity"`
	TotalReturn          Float64 `json:"total_return"`
	AnnualizedReturn     Float64 `json:"annualized_return"`
	AnnualizedVolatility Float64 `json:"annualized_volatility"`
	MaxDrawdown          Float64 `json:"max_drawdown"`
	SharpeRatio          Float64 `json:"sharpe_ratio"`
	MeanReturn           Float64 `json:"mean_return"`
	Trades               Float64 `json:"trades"`
	Exposure             Float64 `json:"exposure"` // share of candles with an open position
}

// CalculateMetrics computes Metrics for every strategy in results.
//
// The first aligned return belongs to the period before the rebased start, so
// volatility and mean use the returns after it. Annualised return is 0 when the
// series spans no time, and the Sharpe ratio is 0 when volatility is 0.
func CalculateMetrics(results *Results) []Metrics {
	if results == nil || len(results.Timestamps) == 0 {
		return nil
	}

	first, last := results.Timestamps[0], results.Timestamps[len(results.Timestamps)-1]
	years := last.Sub(first).Hours() / 24 / daysPerYear

	out := make([]Metrics, 0, len(results.Strategies))
	for _, r := range results.Strategies {
		m := Metrics{Strategy: r.Name}
		n := len(r.Equity)

		m.FinalEquity = Float64(r.Equity[n-1])
		total := r.Equity[n-1]/r.Equity[0] - 1
		m.TotalReturn = Float64(total)
		if years > 0 {
			m.AnnualizedReturn = Float64(math.Pow(1+total, 1/years) - 1)
		}

		rets := r.StrategyReturns[1:]
		m.MeanReturn = Float64(mean(rets))
		if len(rets) >= 2 {
			if std, err := indicator.CalculateStdDev(rets, len(rets)); err == nil {
				m.AnnualizedVolatility = Float64(std[len(std)-1] * math.Sqrt(tradingPerYear))
			}
		}
		if m.AnnualizedVolatility > 0 {
			m.SharpeRatio = m.AnnualizedReturn / m.AnnualizedVolatility
		}

		m.MaxDrawdown = Float64(indicator.MaxDrawdown(r.Equity))
		m.Trades = Float64(sum(r.Trades[1:]))
		m.Exposure = Float64(float64(count(r.Positions, func(p float64) bool { return p != 0 })) / float64(n))

		out = append(out, m)
	}
	return out
}
