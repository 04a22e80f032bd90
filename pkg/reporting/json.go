package reporting

import (
	"encoding/json"
	"os"
	"time"

	"github.com/quantbt/trend-follow-bot/internal/backtest"
)

// RunReport is the JSON export of one simulation: the summary, the ledger
// and the bars whose entry evaluation was skipped.
type RunReport struct {
	Symbol      string            `json:"symbol"`
	Strategy    string            `json:"strategy"`
	Summary     backtest.Summary  `json:"summary"`
	Trades      []backtest.Trade  `json:"trades"`
	SkippedBars []time.Time       `json:"skipped_bars,omitempty"`
	Metrics     []backtest.Metric `json:"metrics"`
}

// NewRunReport assembles the export document for one result.
func NewRunReport(symbol string, res *backtest.Result, s backtest.Summary) RunReport {
	return RunReport{
		Symbol:      symbol,
		Strategy:    res.Strategy,
		Summary:     s,
		Trades:      res.Trades,
		SkippedBars: res.SkippedBars,
		Metrics:     s.Flat(),
	}
}

// WriteRunJSON writes the report document to path.
func WriteRunJSON(report RunReport, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
