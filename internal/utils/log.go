// Package utils
package utils

import (
	"fmt"
	"log"
	"os"
	"sync"
)

const logPrefix = "Equity Backtest: "

var (
	logger *log.Logger
	once   sync.Once
)

// InitLogger directs the shared logger to path. It must run before the first
// GetLogger call to take effect; an empty path keeps stderr.
func InitLogger(path string) error {
	var initErr error
	once.Do(func() {
		if path == "" {
			logger = log.New(os.Stderr, logPrefix, log.LstdFlags)
			return
		}
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			initErr = fmt.Errorf("open log file: %w", err)
			logger = log.New(os.Stderr, logPrefix, log.LstdFlags)
			return
		}
		logger = log.New(file, logPrefix, log.LstdFlags)
	})
	return initErr
}

func GetLogger() *log.Logger {
	once.Do(func() {
		logger = log.New(os.Stderr, logPrefix, log.LstdFlags)
	})
	return logger
}
