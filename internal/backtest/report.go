package backtest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/NikitaBryndak/equity-backtest/internal/utils"
	"github.com/shopspring/decimal"
)

type Float64 float64

func (f Float64) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
		return []byte(`0`), nil
	}
	return json.Marshal(float64(f))
}

// money renders an amount with two decimals.
func money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprint(v)
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

func percent(v Float64) string {
	return fmt.Sprintf("%.2f%%", float64(v)*100)
}

// PrintResults logs a summary line per strategy.
func PrintResults(results *Results, metrics []Metrics) {
	logger := utils.GetLogger()
	logger.Printf("Backtest Results [%s] %s, %d candles from %s, initial capital %s",
		results.RunID, results.Symbol, len(results.Timestamps),
		results.Timestamps[0].Format("2006-01-02"), money(results.InitialCapital))

	for _, m := range metrics {
		logger.Printf("  %-40s Equity=%s Return=%s Annualized=%s Volatility=%s MaxDD=%s Sharpe=%.2f Trades=%.0f Exposure=%s",
			m.Strategy, money(float64(m.FinalEquity)), percent(m.TotalReturn), percent(m.AnnualizedReturn),
			percent(m.AnnualizedVolatility), percent(m.MaxDrawdown), float64(m.SharpeRatio),
			float64(m.Trades), percent(m.Exposure))
	}
}

// SaveResults writes <run id>_equity.csv and <run id>_metrics.json into dir and
// returns their paths.
func SaveResults(dir string, results *Results, metrics []Metrics) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	header := []string{"Date"}
	for _, s := range results.Strategies {
		header = append(header, "Equity_"+s.Name)
	}
	rows := [][]string{header}
	for i, ts := range results.Timestamps {
		row := []string{ts.Format(time.RFC3339)}
		for _, s := range results.Strategies {
			row = append(row, money(s.Equity[i]))
		}
		rows = append(rows, row)
	}

	equityPath := filepath.Join(dir, results.RunID+"_equity.csv")
	if err := saveCSV(equityPath, rows); err != nil {
		return nil, err
	}

	report := struct {
		RunID          string    `json:"run_id"`
		Symbol         string    `json:"symbol"`
		InitialCapital Float64   `json:"initial_capital"`
		Start          int       `json:"start"`
		From           time.Time `json:"from"`
		To             time.Time `json:"to"`
		Metrics        []Metrics `json:"metrics"`
	}{
		RunID:          results.RunID,
		Symbol:         results.Symbol,
		InitialCapital: Float64(results.InitialCapital),
		Start:          results.Start,
		From:           results.Timestamps[0],
		To:             results.Timestamps[len(results.Timestamps)-1],
		Metrics:        metrics,
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode metrics: %w", err)
	}
	metricsPath := filepath.Join(dir, results.RunID+"_metrics.json")
	if err := os.WriteFile(metricsPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("write metrics: %w", err)
	}

	utils.GetLogger().Printf("Saved results to %s and %s", equityPath, metricsPath)
	return []string{equityPath, metricsPath}, nil
}

// saveCSV saves data to a CSV file
func saveCSV(filename string, rows [][]string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create %s: %w", filename, err)
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filename, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filename, err)
	}
	return nil
}
