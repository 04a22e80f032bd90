// Package data loads and validates daily bar series. The engine core never
// touches files; everything it consumes goes through this layer first.
package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	boterrors "github.com/quantbt/trend-follow-bot/internal/errors"
	"github.com/quantbt/trend-follow-bot/pkg/types"
)

// Date layouts accepted in the timestamp column, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// CSVProvider loads daily bars from CSV files with a
// date,open,high,low,close,volume header row.
type CSVProvider struct{}

// NewCSVProvider creates a CSV bar provider.
func NewCSVProvider() *CSVProvider {
	return &CSVProvider{}
}

// GetName identifies the provider in logs.
func (p *CSVProvider) GetName() string {
	return "CSV Provider"
}

// LoadBars reads the file, skipping malformed rows with a log line, and
// returns the bars. The rows must already be in ascending date order;
// order is validated, not repaired.
func (p *CSVProvider) LoadBars(filename string) ([]types.Bar, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, boterrors.Wrap(err, boterrors.CategoryData, "csv", "open data file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	if _, err := reader.Read(); err != nil {
		return nil, boterrors.Wrap(err, boterrors.CategoryData, "csv", "read header")
	}

	var bars []types.Bar
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, boterrors.Wrap(err, boterrors.CategoryData, "csv",
				fmt.Sprintf("read line %d", line+1))
		}
		line++

		if len(record) < 6 {
			log.Printf("⚠️ line %d: expected 6 columns, got %d, skipping", line, len(record))
			continue
		}

		date, ok := parseDate(record[0])
		if !ok {
			log.Printf("⚠️ line %d: invalid date %q, skipping", line, record[0])
			continue
		}

		values := make([]float64, 5)
		bad := false
		for i := 0; i < 5; i++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[i+1]), 64)
			if err != nil {
				log.Printf("⚠️ line %d: invalid number %q, skipping", line, record[i+1])
				bad = true
				break
			}
			values[i] = v
		}
		if bad {
			continue
		}

		bar := types.Bar{
			Date:   date,
			Open:   values[0],
			High:   values[1],
			Low:    values[2],
			Close:  values[3],
			Volume: values[4],
		}
		if err := validateBar(bar); err != nil {
			log.Printf("⚠️ line %d: %v, skipping", line, err)
			continue
		}
		bars = append(bars, bar)
	}

	if err := ValidateSequence(bars); err != nil {
		return nil, err
	}
	return bars, nil
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func validateBar(b types.Bar) error {
	if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
		return fmt.Errorf("non-positive price")
	}
	if b.High < b.Open || b.High < b.Close || b.High < b.Low {
		return fmt.Errorf("high below other prices")
	}
	if b.Low > b.Open || b.Low > b.Close {
		return fmt.Errorf("low above other prices")
	}
	return nil
}

// ValidateSequence checks that dates are strictly increasing.
func ValidateSequence(bars []types.Bar) error {
	for i := 1; i < len(bars); i++ {
		if !bars[i].Date.After(bars[i-1].Date) {
			return boterrors.NewDataError("csv",
				fmt.Sprintf("dates not strictly increasing at row %d (%s)",
					i, bars[i].Date.Format("2006-01-02")))
		}
	}
	return nil
}

// ListSymbolFiles maps symbol name → CSV path for every *.csv directly
// under root, keyed by the file's base name.
func ListSymbolFiles(root string) (map[string]string, error) {
	matches, err := filepath.Glob(filepath.Join(root, "*.csv"))
	if err != nil {
		return nil, boterrors.Wrap(err, boterrors.CategoryData, "csv", "scan data root")
	}
	files := make(map[string]string, len(matches))
	for _, m := range matches {
		symbol := strings.TrimSuffix(filepath.Base(m), filepath.Ext(m))
		files[strings.ToUpper(symbol)] = m
	}
	return files, nil
}

// SortedSymbols returns the map keys in alphabetical order, so batch runs
// submit work deterministically.
func SortedSymbols(files map[string]string) []string {
	symbols := make([]string, 0, len(files))
	for s := range files {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}
