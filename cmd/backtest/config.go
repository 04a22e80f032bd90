package main

import (
	"encoding/json"
	"os"

	boterrors "github.com/quantbt/trend-follow-bot/internal/errors"
	"github.com/quantbt/trend-follow-bot/internal/backtest"
	"github.com/quantbt/trend-follow-bot/internal/strategy"
)

// RunConfig is the JSON run configuration: the instrument, the data file,
// the run conventions and the strategy parameters.
type RunConfig struct {
	Symbol     string                      `json:"symbol"`
	DataFile   string                      `json:"data_file"`
	StopCheck  string                      `json:"stop_check"`
	CloseAtEnd bool                        `json:"close_at_end"`
	Strategy   strategy.TrendFollowConfig  `json:"strategy"`
}

// defaultRunConfig starts from the documented strategy defaults.
func defaultRunConfig() RunConfig {
	return RunConfig{
		StopCheck: string(backtest.StopOnLow),
		Strategy:  strategy.DefaultTrendFollowConfig(),
	}
}

// loadRunConfig reads path over the defaults; fields absent from the file
// keep their default values.
func loadRunConfig(path string) (RunConfig, error) {
	cfg := defaultRunConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, boterrors.Wrap(err, boterrors.CategoryConfig, "config", "read config file")
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, boterrors.Wrap(err, boterrors.CategoryConfig, "config", "parse config file")
	}
	return cfg, nil
}

// engineOptions converts the run conventions for the engine.
func (c RunConfig) engineOptions() backtest.Options {
	return backtest.Options{
		StopCheck:  backtest.StopCheck(c.StopCheck),
		CloseAtEnd: c.CloseAtEnd,
	}
}
