// Command optimize searches the strategy parameter space with a genetic
// algorithm on the leading part of a bar series, then reports how the best
// candidate holds up on the untouched trailing window.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"

	"github.com/quantbt/trend-follow-bot/internal/backtest"
	"github.com/quantbt/trend-follow-bot/internal/strategy"
	"github.com/quantbt/trend-follow-bot/pkg/data"
	"github.com/quantbt/trend-follow-bot/pkg/optimization"
	"github.com/quantbt/trend-follow-bot/pkg/reporting"
	"github.com/quantbt/trend-follow-bot/pkg/validation"
)

func main() {
	dataFile := flag.String("data", "", "Path to daily OHLCV CSV file")
	envFile := flag.String("env", ".env", "Environment file")
	trainRatio := flag.Float64("train-ratio", 0.7, "Fraction of bars used for the search; the rest is holdout")
	population := flag.Int("population", 0, "Population size (0 = default)")
	generations := flag.Int("generations", 0, "Generations (0 = default)")
	workers := flag.Int("workers", 0, "Parallel evaluations (0 = default)")
	seed := flag.Int64("seed", 0, "Random seed (0 = time-based)")
	stopCheck := flag.String("stop-check", "", "Stop breach convention: low or close")
	closeAtEnd := flag.Bool("close-at-end", false, "Force-close an open position on the last bar")
	outFile := flag.String("out", "", "Write the best parameters as a run config JSON")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("⚠️  Could not load %s (%v)", *envFile, err)
	}
	if *dataFile == "" {
		log.Fatalf("❌ No data file: pass -data")
	}
	if *trainRatio <= 0 || *trainRatio >= 1 {
		log.Fatalf("❌ -train-ratio must be between 0 and 1")
	}

	bars, err := data.NewCSVProvider().LoadBars(*dataFile)
	if err != nil {
		log.Fatalf("❌ Data error: %v", err)
	}
	train, test := validation.SplitByRatio(bars, *trainRatio)
	log.Printf("📊 %d bars: %d train, %d holdout", len(bars), len(train), len(test))

	ga := optimization.DefaultGAConfig()
	if *population > 0 {
		ga.PopulationSize = *population
	}
	if *generations > 0 {
		ga.Generations = *generations
	}
	if *workers > 0 {
		ga.MaxWorkers = *workers
	}

	opts := backtest.Options{
		StopCheck:  backtest.StopCheck(*stopCheck),
		CloseAtEnd: *closeAtEnd,
	}

	seedValue := *seed
	if seedValue == 0 {
		seedValue = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seedValue))

	start := time.Now()
	best, err := optimization.Optimize(train, strategy.DefaultTrendFollowConfig(), optimization.DefaultRanges, ga, opts, rng)
	if err != nil {
		log.Fatalf("❌ Optimization failed: %v", err)
	}
	log.Printf("✅ GA → %.3fx on train in %s", best.Fitness, time.Since(start).Round(time.Second))

	printConfig(best.Config)
	reporting.PrintSummary("train window", best.Summary)

	if len(test) > 0 {
		factory := func() (strategy.Strategy, error) {
			return strategy.NewTrendFollow(best.Config)
		}
		report, err := validation.RunHoldout(bars, *trainRatio, factory, opts)
		if err != nil {
			log.Fatalf("❌ Holdout evaluation failed: %v", err)
		}
		reporting.PrintSummary("holdout window", report.Test)
		if report.Degraded() {
			log.Printf("⚠️  Train profit does not survive the holdout — parameters look overfit")
		}
	}

	if *outFile != "" {
		if err := writeRunConfig(best.Config, *stopCheck, *closeAtEnd, *dataFile, *outFile); err != nil {
			log.Fatalf("❌ Could not write config: %v", err)
		}
		log.Printf("💾 Best parameters written to %s", *outFile)
	}
}

func printConfig(cfg strategy.TrendFollowConfig) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.SetTitle("best parameters")
	t.AppendRows([]table.Row{
		{"rsi period", cfg.RSIPeriod},
		{"rsi threshold", cfg.RSIThreshold},
		{"slope period", cfg.SlopePeriod},
		{"breakout period", cfg.BreakoutPeriod},
		{"atr period", cfg.ATRPeriod},
		{"atr body mult", cfg.ATRMultBody},
		{"atr stop mult", cfg.ATRMultStop},
		{"atr trail mult", cfg.ATRMultTrail},
		{"max rise %", cfg.MaxRisePercent},
	})
	t.Render()
}

// writeRunConfig emits a JSON document the backtest binary accepts as -config.
func writeRunConfig(cfg strategy.TrendFollowConfig, stopCheck string, closeAtEnd bool, dataFile, path string) error {
	doc := struct {
		DataFile   string                     `json:"data_file"`
		StopCheck  string                     `json:"stop_check"`
		CloseAtEnd bool                       `json:"close_at_end"`
		Strategy   strategy.TrendFollowConfig `json:"strategy"`
	}{
		DataFile:   dataFile,
		StopCheck:  stopCheck,
		CloseAtEnd: closeAtEnd,
		Strategy:   cfg,
	}
	if doc.StopCheck == "" {
		doc.StopCheck = string(backtest.StopOnLow)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}
