// Package config
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

/*
YAML config example:
data_file: "data/BTC.csv"
symbol: "BTC"
resample_daily: true
initial_capital: 10000
fee: 0.001
strategies: ["analytics", "trend-following", "mean-reversion", "buy-and-hold"]
analytics:
  rsi_window: 14
  ma_window: 50
  vol_window: 20
  oversold: 30
  overbought: 70
trend_following: { short_window: 20, long_window: 50 }
mean_reversion: { short_window: 30, long_window: 100 }
output_dir: "results"
log_file: "equity-backtest.log"
*/

type Config struct {
	DataFile       string       `yaml:"data_file"`
	Symbol         string       `yaml:"symbol"`
	ResampleDaily  bool         `yaml:"resample_daily"`
	InitialCapital float64      `yaml:"initial_capital"`
	Fee            float64      `yaml:"fee"`
	Strategies     []string     `yaml:"strategies"`
	Analytics      AnalyticsCfg `yaml:"analytics"`
	TrendFollowing CrossoverCfg `yaml:"trend_following"`
	MeanReversion  CrossoverCfg `yaml:"mean_reversion"`
	OutputDir      string       `yaml:"output_dir"`
	LogFile        string       `yaml:"log_file"`
}

type AnalyticsCfg struct {
	RSIWindow  int     `yaml:"rsi_window"`
	MAWindow   int     `yaml:"ma_window"`
	VolWindow  int     `yaml:"vol_window"`
	Oversold   float64 `yaml:"oversold"`
	Overbought float64 `yaml:"overbought"`
}

type CrossoverCfg struct {
	ShortWindow int `yaml:"short_window"`
	LongWindow  int `yaml:"long_window"`
}

// Default returns the settings used when nothing else is given.
func Default() Config {
	return Config{
		Symbol:         "BTC",
		ResampleDaily:  true,
		InitialCapital: 10000.0,
		Fee:            0.001,
		Strategies:     []string{"analytics", "trend-following", "mean-reversion", "buy-and-hold"},
		Analytics: AnalyticsCfg{
			RSIWindow:  14,
			MAWindow:   50,
			VolWindow:  20,
			Oversold:   30,
			Overbought: 70,
		},
		TrendFollowing: CrossoverCfg{ShortWindow: 20, LongWindow: 50},
		MeanReversion:  CrossoverCfg{ShortWindow: 30, LongWindow: 100},
		OutputDir:      "results",
	}
}

// Load starts from Default, applies the YAML file at path (if any) and then
// BACKTEST_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("BACKTEST_DATA_FILE"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("BACKTEST_SYMBOL"); v != "" {
		cfg.Symbol = v
	}
	if v := os.Getenv("BACKTEST_STRATEGIES"); v != "" {
		cfg.Strategies = splitList(v)
	}
	if v := os.Getenv("BACKTEST_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("BACKTEST_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("BACKTEST_INITIAL_CAPITAL"); v != "" {
		capital, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("BACKTEST_INITIAL_CAPITAL: %w", err)
		}
		cfg.InitialCapital = capital
	}
	if v := os.Getenv("BACKTEST_FEE"); v != "" {
		fee, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("BACKTEST_FEE: %w", err)
		}
		cfg.Fee = fee
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks that all required fields are set.
func (c Config) Validate() error {
	if c.DataFile == "" {
		return errors.New("data_file is required")
	}
	if c.Symbol == "" {
		return errors.New("symbol is required")
	}
	if c.InitialCapital <= 0 {
		return errors.New("initial_capital must be positive")
	}
	if c.Fee < 0 || c.Fee >= 1 {
		return errors.New("fee must be in [0, 1)")
	}
	if len(c.Strategies) == 0 {
		return errors.New("at least one strategy is required")
	}
	windows := map[string]int{
		"analytics.rsi_window":         c.Analytics.RSIWindow,
		"analytics.ma_window":          c.Analytics.MAWindow,
		"analytics.vol_window":         c.Analytics.VolWindow,
		"trend_following.short_window": c.TrendFollowing.ShortWindow,
		"trend_following.long_window":  c.TrendFollowing.LongWindow,
		"mean_reversion.short_window":  c.MeanReversion.ShortWindow,
		"mean_reversion.long_window":   c.MeanReversion.LongWindow,
	}
	for name, w := range windows {
		if w <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	if c.Analytics.VolWindow < 2 {
		return errors.New("analytics.vol_window must be at least 2")
	}
	if c.Analytics.Oversold >= c.Analytics.Overbought {
		return errors.New("analytics.oversold must be below analytics.overbought")
	}
	return nil
}

// MustLoadConfig reads flags, an optional .env file, the optional YAML file and
// environment overrides. Flags given on the command line win.
func MustLoadConfig() Config {
	configFile := flag.String("config", "", "Path to YAML config file")
	dataFile := flag.String("data", "", "Path to OHLCV CSV file")
	symbol := flag.String("symbol", "", "Symbol name attached to loaded candles")
	strategies := flag.String("strategies", "", "Comma-separated strategies: analytics, trend-following, mean-reversion, buy-and-hold")
	capital := flag.Float64("capital", 0, "Initial capital")
	fee := flag.Float64("fee", -1, "Fee per unit of position change (e.g., 0.001 for 0.1%)")
	outputDir := flag.String("out", "", "Directory for result files")
	logFile := flag.String("log-file", "", "Log file path (default stderr)")
	noResample := flag.Bool("no-resample", false, "Keep the input candle frequency instead of resampling to 1d")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to load .env file: %v", err)
	}

	if *configFile == "" {
		*configFile = os.Getenv("BACKTEST_CONFIG")
	}
	cfg, err := Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}
	if *symbol != "" {
		cfg.Symbol = *symbol
	}
	if *strategies != "" {
		cfg.Strategies = splitList(*strategies)
	}
	if *capital > 0 {
		cfg.InitialCapital = *capital
	}
	if *fee >= 0 {
		cfg.Fee = *fee
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}
	if *noResample {
		cfg.ResampleDaily = false
	}
	if cfg.DataFile == "" && cfg.Symbol != "" {
		cfg.DataFile = fmt.Sprintf("data/%s.csv", cfg.Symbol)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	return cfg
}
