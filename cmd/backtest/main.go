package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NikitaBryndak/equity-backtest/internal/backtest"
	"github.com/NikitaBryndak/equity-backtest/internal/candle"
	"github.com/NikitaBryndak/equity-backtest/internal/config"
	"github.com/NikitaBryndak/equity-backtest/internal/strategy"
	"github.com/NikitaBryndak/equity-backtest/internal/utils"
)

func main() {
	// Load configuration
	cfg := config.MustLoadConfig()

	if err := utils.InitLogger(cfg.LogFile); err != nil {
		log.Printf("Failed to open log file, logging to stderr: %v", err)
	}
	logger := utils.GetLogger()
	logger.Printf("Starting backtest of %s from %s", cfg.Symbol, cfg.DataFile)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	candles, err := candle.LoadCSVFile(cfg.DataFile, cfg.Symbol)
	if err != nil {
		log.Fatalf("Failed to load candles: %v", err)
	}
	if cfg.ResampleDaily {
		candles, err = candle.ResampleDaily(candles)
		if err != nil {
			log.Fatalf("Failed to resample candles: %v", err)
		}
		logger.Printf("Resampled to %d daily candles", len(candles))
	}

	strats, err := strategy.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create strategies: %v", err)
	}

	results, err := backtest.New(cfg.InitialCapital, cfg.Fee).Run(ctx, candles, strats)
	if err != nil {
		log.Fatalf("Backtest failed: %v", err)
	}

	metrics := backtest.CalculateMetrics(results)
	backtest.PrintResults(results, metrics)

	if _, err := backtest.SaveResults(cfg.OutputDir, results, metrics); err != nil {
		log.Fatalf("Failed to save results: %v", err)
	}
	logger.Println("Backtest finished")
}
