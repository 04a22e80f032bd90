// The screener runs one strategy over every symbol in a data directory —
// an embarrassingly parallel batch of independent simulations — and ranks
// the results.
package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/joho/godotenv"

	"github.com/quantbt/trend-follow-bot/internal/backtest"
	"github.com/quantbt/trend-follow-bot/internal/monitoring"
	"github.com/quantbt/trend-follow-bot/internal/strategy"
	"github.com/quantbt/trend-follow-bot/pkg/data"
	"github.com/quantbt/trend-follow-bot/pkg/reporting"
)

func main() {
	dataRoot := flag.String("data-root", "data", "Directory of per-symbol CSV files")
	workers := flag.Int("workers", 0, "Worker count (0 = NumCPU)")
	metric := flag.String("rank-by", "cumulative", "Ranking metric: cumulative, win-ratio or avg-return")
	top := flag.Int("top", 0, "Show only the top N symbols (0 = all)")
	csvOut := flag.String("csv", "", "Write the ranking to this CSV file")
	metricsAddr := flag.String("metrics-addr", "", "Serve prometheus metrics on this address")
	stopCheck := flag.String("stop-check", "low", "Stop breach convention: low or close")
	closeAtEnd := flag.Bool("close-at-end", false, "Force-close open positions on the last bar")
	envFile := flag.String("env", ".env", "Environment file")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("⚠️  Could not load %s (%v)", *envFile, err)
	}

	if *metricsAddr != "" {
		monitoring.Serve(*metricsAddr)
		log.Printf("📡 Serving metrics on %s/metrics", *metricsAddr)
	}

	files, err := data.ListSymbolFiles(*dataRoot)
	if err != nil {
		log.Fatalf("❌ Data error: %v", err)
	}
	if len(files) == 0 {
		log.Fatalf("❌ No CSV files under %s", *dataRoot)
	}

	provider := data.NewCSVProvider()
	jobs := make([]backtest.Job, 0, len(files))
	for _, symbol := range data.SortedSymbols(files) {
		bars, err := provider.LoadBars(files[symbol])
		if err != nil {
			log.Printf("⚠️  %s: %v, skipping", symbol, err)
			continue
		}
		jobs = append(jobs, backtest.Job{Symbol: symbol, Bars: bars})
	}
	log.Printf("🔍 Screening %d symbols with %d workers", len(jobs), *workers)

	opts := backtest.Options{
		StopCheck:  backtest.StopCheck(*stopCheck),
		CloseAtEnd: *closeAtEnd,
	}
	factory := func() (strategy.Strategy, error) {
		return strategy.NewTrendFollow(strategy.DefaultTrendFollowConfig())
	}

	start := time.Now()
	results := backtest.RunBatch(jobs, *workers, factory, opts)
	monitoring.RecordBatch(len(jobs), time.Since(start))

	rows := make([]reporting.RankingRow, 0, len(results))
	for _, r := range results {
		monitoring.RecordSymbol(r.Err)
		if r.Err == nil {
			monitoring.RecordTrades(len(r.Result.Trades))
		}
		rows = append(rows, reporting.RankingRow{Symbol: r.Symbol, Summary: r.Summary, Err: r.Err})
	}

	sortRows(rows, *metric)
	if *top > 0 && *top < len(rows) {
		rows = rows[:*top]
	}
	reporting.PrintRanking(rows)

	if *csvOut != "" {
		if err := reporting.WriteRankingCSV(rows, *csvOut); err != nil {
			log.Printf("⚠️  CSV export failed: %v", err)
		} else {
			log.Printf("💾 Ranking written to %s", *csvOut)
		}
	}
	fmt.Printf("done in %s\n", time.Since(start).Round(time.Millisecond))
}

// sortRows orders by the chosen metric, best first. Failed symbols and
// empty ledgers sink to the bottom.
func sortRows(rows []reporting.RankingRow, metric string) {
	key := func(r reporting.RankingRow) float64 {
		if r.Err != nil || !r.Summary.Valid {
			return -1e18
		}
		switch metric {
		case "win-ratio":
			return r.Summary.WinRatioPct
		case "avg-return":
			return r.Summary.AvgReturnPct
		default:
			return r.Summary.CumulativeResult
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return key(rows[i]) > key(rows[j])
	})
}
