// Package reporting renders simulation results: console tables, CSV and
// JSON exports, and an Excel workbook. It only reads the result types.
package reporting

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/quantbt/trend-follow-bot/internal/backtest"
)

// PrintSummary renders the aggregate statistics of one run.
func PrintSummary(symbol string, s backtest.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.SetTitle(fmt.Sprintf("%s — backtest summary", symbol))

	if !s.Valid {
		t.AppendRow(table.Row{"trades", 0})
		t.AppendRow(table.Row{"buy & hold", formatRatio(s.BuyHoldResult)})
		if s.OpenAtEnd {
			t.AppendRow(table.Row{"open position at end of window", "yes"})
		}
		t.Render()
		fmt.Println("no closed trades in window; statistics undefined")
		return
	}

	t.AppendRows([]table.Row{
		{"trades", s.Trades},
		{"win ratio", fmt.Sprintf("%.1f%%", s.WinRatioPct)},
		{"avg return", fmt.Sprintf("%.2f%%", s.AvgReturnPct)},
		{"median return", fmt.Sprintf("%.2f%%", s.MedianReturnPct)},
		{"cumulative result", formatRatio(s.CumulativeResult)},
		{"avg holding days", fmt.Sprintf("%.1f", s.AvgHoldingDays)},
		{"max gain", fmt.Sprintf("%.2f%%", s.MaxGainPct)},
		{"max loss", fmt.Sprintf("%.2f%%", s.MaxLossPct)},
		{"buy & hold", formatRatio(s.BuyHoldResult)},
	})
	if s.OpenAtEnd {
		t.AppendRow(table.Row{"open position at end of window", "yes"})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	t.Render()
}

// PrintTrades renders the trade ledger.
func PrintTrades(res *backtest.Result) {
	if len(res.Trades) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "Entry", "Entry $", "Exit", "Exit $", "Return %", "Days", "Reason"})
	for i, tr := range res.Trades {
		t.AppendRow(table.Row{
			i + 1,
			tr.EntryDate.Format("2006-01-02"),
			fmt.Sprintf("%.2f", tr.EntryPrice),
			tr.ExitDate.Format("2006-01-02"),
			fmt.Sprintf("%.2f", tr.ExitPrice),
			fmt.Sprintf("%.2f", tr.ReturnPct),
			tr.HoldingDays,
			string(tr.ExitReason),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	t.Render()
}

// RankingRow is one screener line: a symbol and its summary.
type RankingRow struct {
	Symbol  string
	Summary backtest.Summary
	Err     error
}

// PrintRanking renders a screener batch, best first. Failed symbols show
// their error instead of statistics.
func PrintRanking(rows []RankingRow) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Symbol", "Trades", "Win %", "Avg %", "Cumulative", "B&H", "Note"})

	for _, row := range rows {
		if row.Err != nil {
			t.AppendRow(table.Row{row.Symbol, "-", "-", "-", "-", "-", row.Err.Error()})
			continue
		}
		s := row.Summary
		note := ""
		if s.OpenAtEnd {
			note = "open at end"
		}
		if !s.Valid {
			t.AppendRow(table.Row{row.Symbol, 0, "-", "-", "-", formatRatio(s.BuyHoldResult), note})
			continue
		}
		t.AppendRow(table.Row{
			row.Symbol,
			s.Trades,
			fmt.Sprintf("%.1f", s.WinRatioPct),
			fmt.Sprintf("%.2f", s.AvgReturnPct),
			formatRatio(s.CumulativeResult),
			formatRatio(s.BuyHoldResult),
			note,
		})
	}
	t.Render()
}

func formatRatio(v float64) string {
	return fmt.Sprintf("%.3fx", v)
}
