package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	boterrors "github.com/quantbt/trend-follow-bot/internal/errors"
	"github.com/quantbt/trend-follow-bot/pkg/types"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadBars_WellFormedFile(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "aapl.csv",
		"date,open,high,low,close,volume\n"+
			"2024-01-02,100,102,99,101,5000\n"+
			"2024-01-03,101,103,100,102.5,6000\n")

	bars, err := NewCSVProvider().LoadBars(path)
	require.NoError(t, err)
	require.Len(t, bars, 2)

	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), bars[0].Date)
	assert.Equal(t, 100.0, bars[0].Open)
	assert.Equal(t, 102.5, bars[1].Close)
	assert.Equal(t, 6000.0, bars[1].Volume)
}

func TestLoadBars_AcceptsTimestampLayouts(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "x.csv",
		"date,open,high,low,close,volume\n"+
			"2024-01-02 00:00:00,100,102,99,101,5000\n"+
			"2024-01-03T00:00:00Z,101,103,100,102,6000\n")

	bars, err := NewCSVProvider().LoadBars(path)
	require.NoError(t, err)
	assert.Len(t, bars, 2)
}

func TestLoadBars_SkipsMalformedRows(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "x.csv",
		"date,open,high,low,close,volume\n"+
			"2024-01-02,100,102,99,101,5000\n"+
			"not-a-date,100,102,99,101,5000\n"+
			"2024-01-04,abc,102,99,101,5000\n"+
			"2024-01-05,100,102\n"+
			"2024-01-06,-5,102,99,101,5000\n"+
			"2024-01-07,100,99,99,101,5000\n"+ // high below close
			"2024-01-08,100,102,99,101,5000\n")

	bars, err := NewCSVProvider().LoadBars(path)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, 2, bars[0].Date.Day())
	assert.Equal(t, 8, bars[1].Date.Day())
}

func TestLoadBars_RejectsUnorderedDates(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "x.csv",
		"date,open,high,low,close,volume\n"+
			"2024-01-03,100,102,99,101,5000\n"+
			"2024-01-02,100,102,99,101,5000\n")

	_, err := NewCSVProvider().LoadBars(path)
	require.Error(t, err)
	assert.True(t, boterrors.IsData(err))
}

func TestLoadBars_MissingFile(t *testing.T) {
	_, err := NewCSVProvider().LoadBars(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, boterrors.IsData(err))
}

func TestListSymbolFiles(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "aapl.csv", "h\n")
	writeCSV(t, dir, "MSFT.csv", "h\n")
	writeCSV(t, dir, "notes.txt", "ignored")

	files, err := ListSymbolFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Contains(t, files, "AAPL")
	assert.Contains(t, files, "MSFT")

	assert.Equal(t, []string{"AAPL", "MSFT"}, SortedSymbols(files))
}

func seqBars(n int) []types.Bar {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]types.Bar, n)
	for i := range bars {
		bars[i] = types.Bar{Date: base.AddDate(0, 0, i), Open: 100, High: 101, Low: 99, Close: 100}
	}
	return bars
}

func TestFilterByDateRange(t *testing.T) {
	bars := seqBars(10)
	start := bars[3].Date
	end := bars[6].Date

	got := FilterByDateRange(bars, start, end)
	require.Len(t, got, 4)
	assert.Equal(t, start, got[0].Date)
	assert.Equal(t, end, got[3].Date)

	assert.Len(t, FilterByDateRange(bars, time.Time{}, end), 7)
	assert.Len(t, FilterByDateRange(bars, start, time.Time{}), 7)
	assert.Len(t, FilterByDateRange(bars, time.Time{}, time.Time{}), 10)
}

func TestLastN(t *testing.T) {
	bars := seqBars(10)

	got := LastN(bars, 3)
	require.Len(t, got, 3)
	assert.Equal(t, bars[7].Date, got[0].Date)

	assert.Len(t, LastN(bars, 0), 10)
	assert.Len(t, LastN(bars, 50), 10)
}
