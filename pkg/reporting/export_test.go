package reporting

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantbt/trend-follow-bot/internal/backtest"
)

func sampleResult() *backtest.Result {
	entry := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	return &backtest.Result{
		Strategy:   "trend_follow",
		FirstClose: 100,
		LastClose:  120,
		Bars:       250,
		Trades: []backtest.Trade{
			{
				EntryDate:   entry,
				EntryPrice:  100,
				ExitDate:    entry.AddDate(0, 0, 14),
				ExitPrice:   116,
				ReturnPct:   16,
				HoldingDays: 10,
				ExitReason:  backtest.ExitTrailingStop,
				InitialStop: 91,
			},
			{
				EntryDate:   entry.AddDate(0, 1, 0),
				EntryPrice:  110,
				ExitDate:    entry.AddDate(0, 1, 7),
				ExitPrice:   104.5,
				ReturnPct:   -5,
				HoldingDays: 5,
				ExitReason:  backtest.ExitSMA,
				InitialStop: 102,
			},
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteTradesCSV(t *testing.T) {
	res := sampleResult()
	path := filepath.Join(t.TempDir(), "out", "trades.csv")

	require.NoError(t, WriteTradesCSV(res, path))

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{
		"entry_date", "entry_price", "exit_date", "exit_price",
		"return_pct", "holding_days", "exit_reason", "initial_stop",
	}, rows[0])
	assert.Equal(t, "2024-02-01", rows[1][0])
	assert.Equal(t, "116.0000", rows[1][3])
	assert.Equal(t, "trailing_stop", rows[1][6])
	assert.Equal(t, "sma_exit", rows[2][6])
	assert.Equal(t, "-5.0000", rows[2][4])
}

func TestWriteRankingCSV(t *testing.T) {
	res := sampleResult()
	rows := []RankingRow{
		{Symbol: "AAPL", Summary: backtest.Summarize(res)},
		{Symbol: "BAD", Err: errors.New("file unreadable")},
	}
	path := filepath.Join(t.TempDir(), "ranking.csv")

	require.NoError(t, WriteRankingCSV(rows, path))

	got := readCSV(t, path)
	require.Len(t, got, 3)
	assert.Equal(t, "AAPL", got[1][0])
	assert.Equal(t, "2", got[1][1])
	assert.Equal(t, "50.0000", got[1][2])
	assert.Empty(t, got[1][7])
	assert.Equal(t, "BAD", got[2][0])
	assert.Equal(t, "file unreadable", got[2][7])
}

func TestWriteRunJSON_RoundTrips(t *testing.T) {
	res := sampleResult()
	report := NewRunReport("AAPL", res, backtest.Summarize(res))
	path := filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, WriteRunJSON(report, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got RunReport
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "AAPL", got.Symbol)
	assert.Equal(t, "trend_follow", got.Strategy)
	assert.Len(t, got.Trades, 2)
	assert.True(t, got.Summary.Valid)
	assert.Equal(t, backtest.ExitTrailingStop, got.Trades[0].ExitReason)
	require.NotEmpty(t, got.Metrics)
	assert.Equal(t, "trades", got.Metrics[0].Name)
}

func TestWriteReportXLSX(t *testing.T) {
	res := sampleResult()
	path := filepath.Join(t.TempDir(), "report.xlsx")

	require.NoError(t, WriteReportXLSX("AAPL", res, backtest.Summarize(res), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
