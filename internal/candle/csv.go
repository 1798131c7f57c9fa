package candle

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

var ErrNoCandles = errors.New("no candles")

var dateLayouts = []string{
	"2006-01-02 15:04:05-07:00",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// parseValue returns NaN for empty cells so the row can be dropped later.
func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// LoadCSVFile reads candles for symbol from a CSV file on disk.
func LoadCSVFile(path, symbol string) ([]Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	candles, err := LoadCSV(f, symbol)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return candles, nil
}

// LoadCSV reads OHLCV rows with a Date,Open,High,Low,Close[,Volume] header, in any column
// order and ignoring extra columns. Rows with a missing price are skipped; any other row
// must pass Validate. The result is sorted by time.
func LoadCSV(r io.Reader, symbol string) ([]Candle, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoCandles
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	dateCol, ok := cols["date"]
	if !ok {
		if dateCol, ok = cols["datetime"]; !ok {
			return nil, errors.New("missing date column")
		}
	}
	priceCols := make([]int, 4)
	for i, name := range []string{"open", "high", "low", "close"} {
		idx, ok := cols[name]
		if !ok {
			return nil, fmt.Errorf("missing %s column", name)
		}
		priceCols[i] = idx
	}
	volumeCol, hasVolume := cols["volume"]

	var candles []Candle
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(record) < len(header) {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", line, len(header), len(record))
		}

		ts, err := parseDate(strings.TrimSpace(record[dateCol]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		var ohlc [4]float64
		missing := false
		for i, idx := range priceCols {
			v, err := parseValue(record[idx])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if math.IsNaN(v) {
				missing = true
			}
			ohlc[i] = v
		}
		if missing {
			continue
		}

		volume := 0.0
		if hasVolume {
			v, err := parseValue(record[volumeCol])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if !math.IsNaN(v) {
				volume = v
			}
		}

		c := Candle{
			Timestamp: ts,
			Open:      ohlc[0],
			High:      ohlc[1],
			Low:       ohlc[2],
			Close:     ohlc[3],
			Volume:    volume,
			Symbol:    symbol,
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		candles = append(candles, c)
	}

	if len(candles) == 0 {
		return nil, ErrNoCandles
	}
	SortByTime(candles)
	return candles, nil
}
