package reporting

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/quantbt/trend-follow-bot/internal/backtest"
)

// WriteTradesCSV writes the trade ledger to path, creating parent
// directories as needed.
func WriteTradesCSV(res *backtest.Result, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{
		"entry_date", "entry_price", "exit_date", "exit_price",
		"return_pct", "holding_days", "exit_reason", "initial_stop",
	}); err != nil {
		return err
	}

	for _, t := range res.Trades {
		record := []string{
			t.EntryDate.Format("2006-01-02"),
			formatFloat(t.EntryPrice),
			t.ExitDate.Format("2006-01-02"),
			formatFloat(t.ExitPrice),
			formatFloat(t.ReturnPct),
			strconv.Itoa(t.HoldingDays),
			string(t.ExitReason),
			formatFloat(t.InitialStop),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// WriteRankingCSV writes a screener ranking to path, one row per symbol.
func WriteRankingCSV(rows []RankingRow, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{
		"symbol", "trades", "win_ratio_pct", "avg_return_pct",
		"cumulative_result", "buy_hold_result", "open_at_end", "error",
	}); err != nil {
		return err
	}

	for _, row := range rows {
		if row.Err != nil {
			if err := w.Write([]string{row.Symbol, "", "", "", "", "", "", row.Err.Error()}); err != nil {
				return err
			}
			continue
		}
		s := row.Summary
		record := []string{
			row.Symbol,
			strconv.Itoa(s.Trades),
			formatFloat(s.WinRatioPct),
			formatFloat(s.AvgReturnPct),
			formatFloat(s.CumulativeResult),
			formatFloat(s.BuyHoldResult),
			strconv.FormatBool(s.OpenAtEnd),
			"",
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}
	return nil
}
