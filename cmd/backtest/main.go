package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/quantbt/trend-follow-bot/internal/backtest"
	"github.com/quantbt/trend-follow-bot/internal/frame"
	"github.com/quantbt/trend-follow-bot/internal/logger"
	"github.com/quantbt/trend-follow-bot/internal/strategy"
	"github.com/quantbt/trend-follow-bot/pkg/data"
	"github.com/quantbt/trend-follow-bot/pkg/reporting"
	"github.com/quantbt/trend-follow-bot/pkg/types"
)

const (
	appName    = "Trend Backtest"
	appVersion = "1.0.0"
)

func main() {
	flags := NewFlags()
	flag.Parse()

	if *flags.ShowVersion {
		fmt.Printf("%s v%s\n", appName, appVersion)
		return
	}

	if err := godotenv.Load(*flags.EnvFile); err != nil {
		log.Printf("⚠️  Could not load %s (%v)", *flags.EnvFile, err)
	}

	cfg, err := loadRunConfig(*flags.ConfigFile)
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}
	if *flags.DataFile != "" {
		cfg.DataFile = *flags.DataFile
	}
	if *flags.Symbol != "" {
		cfg.Symbol = *flags.Symbol
	}
	if *flags.StopCheck != "" {
		cfg.StopCheck = *flags.StopCheck
	}
	if *flags.CloseAtEnd {
		cfg.CloseAtEnd = true
	}
	flags.applyStrategyOverrides(&cfg)

	if cfg.DataFile == "" {
		log.Fatalf("❌ No data file: pass -data or set data_file in the config")
	}
	if cfg.Symbol == "" {
		cfg.Symbol = symbolFromPath(cfg.DataFile)
	}

	strat, err := strategy.NewTrendFollow(cfg.Strategy)
	if err != nil {
		log.Fatalf("❌ Strategy configuration error: %v", err)
	}

	bars, err := loadBars(cfg.DataFile, flags)
	if err != nil {
		log.Fatalf("❌ Data error: %v", err)
	}
	log.Printf("📊 Loaded %d bars for %s", len(bars), cfg.Symbol)

	f, err := frame.Build(bars, strat.Columns())
	if err != nil {
		log.Fatalf("❌ Frame error: %v", err)
	}

	engine, err := backtest.NewEngine(strat, cfg.engineOptions())
	if err != nil {
		log.Fatalf("❌ Engine configuration error: %v", err)
	}

	res, err := engine.Run(f)
	if err != nil {
		log.Fatalf("❌ Backtest failed: %v", err)
	}
	if len(res.SkippedBars) > 0 {
		log.Printf("⚠️  Entry evaluation skipped on %d bars (undefined indicator values)", len(res.SkippedBars))
	}

	summary := backtest.Summarize(res)

	if *flags.LogDir != "" {
		runLog, err := logger.NewLogger(*flags.LogDir, cfg.Symbol)
		if err != nil {
			log.Printf("⚠️  Could not open run log: %v", err)
		} else {
			runLog.LogRun(res, summary)
			if err := runLog.Close(); err != nil {
				log.Printf("⚠️  Could not close run log: %v", err)
			} else {
				log.Printf("📝 Run log written to %s", runLog.GetLogPath())
			}
		}
	}

	reporting.PrintTrades(res)
	reporting.PrintSummary(cfg.Symbol, summary)
	if res.OpenPosition != nil {
		p := res.OpenPosition
		fmt.Printf("open position at end of window: entered %s at %.2f, trailing stop %.2f\n",
			p.EntryDate.Format("2006-01-02"), p.EntryPrice, p.TrailingStop)
	}

	if *flags.ConsoleOnly {
		return
	}

	base := filepath.Join(*flags.OutputDir, strings.ToLower(cfg.Symbol))
	if err := reporting.WriteTradesCSV(res, base+"_trades.csv"); err != nil {
		log.Printf("⚠️  CSV export failed: %v", err)
	}
	report := reporting.NewRunReport(cfg.Symbol, res, summary)
	if err := reporting.WriteRunJSON(report, base+"_summary.json"); err != nil {
		log.Printf("⚠️  JSON export failed: %v", err)
	}
	if err := reporting.WriteReportXLSX(cfg.Symbol, res, summary, base+"_report.xlsx"); err != nil {
		log.Printf("⚠️  Excel export failed: %v", err)
	}
	log.Printf("💾 Reports written to %s", *flags.OutputDir)
}

// loadBars reads the CSV and applies the window selection flags.
func loadBars(path string, flags *Flags) ([]types.Bar, error) {
	provider := data.NewCSVProvider()
	bars, err := provider.LoadBars(path)
	if err != nil {
		return nil, err
	}

	var from, to time.Time
	if *flags.From != "" {
		from, err = time.Parse("2006-01-02", *flags.From)
		if err != nil {
			return nil, fmt.Errorf("invalid -from date: %w", err)
		}
	}
	if *flags.To != "" {
		to, err = time.Parse("2006-01-02", *flags.To)
		if err != nil {
			return nil, fmt.Errorf("invalid -to date: %w", err)
		}
	}
	bars = data.FilterByDateRange(bars, from, to)
	bars = data.LastN(bars, *flags.LastBars)
	return bars, nil
}

func symbolFromPath(path string) string {
	base := filepath.Base(path)
	return strings.ToUpper(strings.TrimSuffix(base, filepath.Ext(base)))
}
