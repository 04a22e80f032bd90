package validation

import (
	"github.com/quantbt/trend-follow-bot/internal/backtest"
	"github.com/quantbt/trend-follow-bot/internal/frame"
	"github.com/quantbt/trend-follow-bot/pkg/types"
)

// HoldoutReport compares one strategy on a train window and the untouched
// holdout that follows it.
type HoldoutReport struct {
	Train backtest.Summary
	Test  backtest.Summary

	TrainBars int
	TestBars  int
}

// Degraded reports whether the holdout result collapses relative to the
// train result: a profitable train window with a losing holdout. With
// either side invalid (no closed trades) nothing can be claimed.
func (r HoldoutReport) Degraded() bool {
	if !r.Train.Valid || !r.Test.Valid {
		return false
	}
	return r.Train.CumulativeResult > 1 && r.Test.CumulativeResult < 1
}

// RunHoldout splits bars by ratio and runs the strategy independently on
// both windows. Each window gets its own warmup, so results never leak
// across the split.
func RunHoldout(bars []types.Bar, ratio float64, factory backtest.StrategyFactory, opts backtest.Options) (*HoldoutReport, error) {
	train, test := SplitByRatio(bars, ratio)

	trainSummary, err := runWindow(train, factory, opts)
	if err != nil {
		return nil, err
	}
	testSummary, err := runWindow(test, factory, opts)
	if err != nil {
		return nil, err
	}

	return &HoldoutReport{
		Train:     trainSummary,
		Test:      testSummary,
		TrainBars: len(train),
		TestBars:  len(test),
	}, nil
}

func runWindow(bars []types.Bar, factory backtest.StrategyFactory, opts backtest.Options) (backtest.Summary, error) {
	strat, err := factory()
	if err != nil {
		return backtest.Summary{}, err
	}

	f, err := frame.Build(bars, strat.Columns())
	if err != nil {
		return backtest.Summary{}, err
	}

	engine, err := backtest.NewEngine(strat, opts)
	if err != nil {
		return backtest.Summary{}, err
	}

	res, err := engine.Run(f)
	if err != nil {
		return backtest.Summary{}, err
	}
	return backtest.Summarize(res), nil
}
