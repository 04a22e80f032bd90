package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantbt/trend-follow-bot/internal/backtest"
	"github.com/quantbt/trend-follow-bot/internal/strategy"
	"github.com/quantbt/trend-follow-bot/pkg/types"
)

func dailyBars(n int) []types.Bar {
	base := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]types.Bar, n)
	for i := range bars {
		bars[i] = types.Bar{Date: base.AddDate(0, 0, i), Open: 100, High: 101, Low: 99, Close: 100}
	}
	return bars
}

func TestSplitByRatio(t *testing.T) {
	bars := dailyBars(10)

	train, test := SplitByRatio(bars, 0.7)
	assert.Len(t, train, 7)
	assert.Len(t, test, 3)
	assert.Equal(t, bars[6].Date, train[6].Date)
	assert.Equal(t, bars[7].Date, test[0].Date)

	train, test = SplitByRatio(bars, 0)
	assert.Len(t, train, 10)
	assert.Nil(t, test)

	train, test = SplitByRatio(bars, 1)
	assert.Len(t, train, 10)
	assert.Nil(t, test)

	train, test = SplitByRatio(bars, 0.01)
	assert.Len(t, train, 10, "a split leaving no train bars falls back to train-only")
	assert.Nil(t, test)
}

func TestCreateRollingFolds(t *testing.T) {
	bars := dailyBars(300)

	folds := CreateRollingFolds(bars, 100, 30, 30, 50, 10)
	require.Len(t, folds, 7)

	first := folds[0]
	assert.Len(t, first.Train, 100)
	assert.Len(t, first.Test, 30)
	assert.Equal(t, bars[0].Date, first.TrainStart)
	assert.Equal(t, bars[99].Date, first.TrainEnd)
	assert.Equal(t, bars[100].Date, first.TestStart)

	for _, fold := range folds {
		assert.True(t, fold.TrainEnd.Before(fold.TestStart), "test follows train")
	}

	// successive folds roll forward by rollDays
	assert.Equal(t, bars[30].Date, folds[1].TrainStart)

	assert.Empty(t, CreateRollingFolds(dailyBars(20), 100, 30, 30, 50, 10))
	assert.Empty(t, CreateRollingFolds(nil, 100, 30, 30, 50, 10))
}

func TestRunHoldout_QuietSeries(t *testing.T) {
	cfg := strategy.DefaultTrendFollowConfig()
	cfg.SMALong = 5
	cfg.SMAShort = 3
	cfg.SlopePeriod = 2
	cfg.BreakoutPeriod = 3
	cfg.ATRPeriod = 3
	cfg.MaxRisePeriod = 4
	cfg.RSIPeriod = 3

	factory := func() (strategy.Strategy, error) {
		return strategy.NewTrendFollow(cfg)
	}

	report, err := RunHoldout(dailyBars(40), 0.7, factory, backtest.Options{})
	require.NoError(t, err)

	assert.Equal(t, 28, report.TrainBars)
	assert.Equal(t, 12, report.TestBars)
	assert.False(t, report.Train.Valid, "flat series never enters")
	assert.False(t, report.Test.Valid)
	assert.False(t, report.Degraded())
}

func TestDegraded(t *testing.T) {
	valid := func(cum float64) backtest.Summary {
		return backtest.Summary{Valid: true, CumulativeResult: cum}
	}

	assert.True(t, HoldoutReport{Train: valid(1.2), Test: valid(0.9)}.Degraded())
	assert.False(t, HoldoutReport{Train: valid(1.2), Test: valid(1.05)}.Degraded())
	assert.False(t, HoldoutReport{Train: valid(0.9), Test: valid(0.8)}.Degraded())
	assert.False(t, HoldoutReport{Train: valid(1.2), Test: backtest.Summary{}}.Degraded())
}
