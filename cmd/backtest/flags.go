package main

import (
	"flag"
)

// Flags holds the command line surface of the backtest binary. Strategy
// flags default to -1 / empty meaning "not set", so a config file value is
// only overridden when the flag was given explicitly.
type Flags struct {
	// Configuration
	ConfigFile *string
	DataFile   *string
	Symbol     *string
	EnvFile    *string

	// Window selection
	From     *string
	To       *string
	LastBars *int

	// Strategy overrides
	RSIPeriod      *int
	RSIThreshold   *float64
	SMALong        *int
	SMAShort       *int
	SlopePeriod    *int
	BreakoutPeriod *int
	ATRPeriod      *int
	ATRMultBody    *float64
	ATRMultStop    *float64
	ATRMultTrail   *float64
	MaxRisePeriod  *int
	MaxRisePercent *float64

	// Run conventions
	StopCheck  *string
	CloseAtEnd *bool

	// Output
	OutputDir   *string
	ConsoleOnly *bool
	LogDir      *string

	ShowVersion *bool
}

// NewFlags registers all flags.
func NewFlags() *Flags {
	return &Flags{
		ConfigFile: flag.String("config", "", "Path to JSON run configuration"),
		DataFile:   flag.String("data", "", "Path to daily OHLCV CSV file"),
		Symbol:     flag.String("symbol", "", "Instrument symbol for reports"),
		EnvFile:    flag.String("env", ".env", "Environment file"),

		From:     flag.String("from", "", "Start date (YYYY-MM-DD, inclusive)"),
		To:       flag.String("to", "", "End date (YYYY-MM-DD, inclusive)"),
		LastBars: flag.Int("last-bars", 0, "Keep only the trailing N bars (0 = all)"),

		RSIPeriod:      flag.Int("rsi-period", -1, "RSI period"),
		RSIThreshold:   flag.Float64("rsi-threshold", -1, "Maximum RSI for entry"),
		SMALong:        flag.Int("sma-long", -1, "Long SMA period (trend filter)"),
		SMAShort:       flag.Int("sma-short", -1, "Short SMA period (exit)"),
		SlopePeriod:    flag.Int("slope-period", -1, "Long SMA slope lookback"),
		BreakoutPeriod: flag.Int("breakout-period", -1, "Prior-high breakout period"),
		ATRPeriod:      flag.Int("atr-period", -1, "ATR period"),
		ATRMultBody:    flag.Float64("atr-body", -1, "Minimum candle body in ATR units"),
		ATRMultStop:    flag.Float64("atr-stop", -1, "Initial stop distance in ATR units"),
		ATRMultTrail:   flag.Float64("atr-trail", -1, "Trailing stop distance in ATR units"),
		MaxRisePeriod:  flag.Int("max-rise-period", -1, "Parabolic filter lookback"),
		MaxRisePercent: flag.Float64("max-rise-percent", -1, "Maximum rise % over the lookback"),

		StopCheck:  flag.String("stop-check", "", "Stop breach convention: low or close"),
		CloseAtEnd: flag.Bool("close-at-end", false, "Force-close an open position on the last bar"),

		OutputDir:   flag.String("output", "results", "Output directory for reports"),
		ConsoleOnly: flag.Bool("console-only", false, "Skip CSV/JSON/Excel exports"),
		LogDir:      flag.String("log-dir", "", "Write a per-run log file to this directory"),

		ShowVersion: flag.Bool("version", false, "Show version and exit"),
	}
}

// applyStrategyOverrides copies explicitly set strategy flags onto cfg.
func (f *Flags) applyStrategyOverrides(cfg *RunConfig) {
	if *f.RSIPeriod > 0 {
		cfg.Strategy.RSIPeriod = *f.RSIPeriod
	}
	if *f.RSIThreshold > 0 {
		cfg.Strategy.RSIThreshold = *f.RSIThreshold
	}
	if *f.SMALong > 0 {
		cfg.Strategy.SMALong = *f.SMALong
	}
	if *f.SMAShort > 0 {
		cfg.Strategy.SMAShort = *f.SMAShort
	}
	if *f.SlopePeriod > 0 {
		cfg.Strategy.SlopePeriod = *f.SlopePeriod
	}
	if *f.BreakoutPeriod > 0 {
		cfg.Strategy.BreakoutPeriod = *f.BreakoutPeriod
	}
	if *f.ATRPeriod > 0 {
		cfg.Strategy.ATRPeriod = *f.ATRPeriod
	}
	if *f.ATRMultBody > 0 {
		cfg.Strategy.ATRMultBody = *f.ATRMultBody
	}
	if *f.ATRMultStop > 0 {
		cfg.Strategy.ATRMultStop = *f.ATRMultStop
	}
	if *f.ATRMultTrail > 0 {
		cfg.Strategy.ATRMultTrail = *f.ATRMultTrail
	}
	if *f.MaxRisePeriod > 0 {
		cfg.Strategy.MaxRisePeriod = *f.MaxRisePeriod
	}
	if *f.MaxRisePercent > 0 {
		cfg.Strategy.MaxRisePercent = *f.MaxRisePercent
	}
}
