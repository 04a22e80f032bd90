// Package validation splits a bar series into in-sample and out-of-sample
// windows and compares strategy performance across them.
package validation

import (
	"time"

	"github.com/quantbt/trend-follow-bot/pkg/types"
)

// WalkForwardFold is one train/test window pair of a rolling walk-forward
// schedule.
type WalkForwardFold struct {
	Train []types.Bar
	Test  []types.Bar

	TrainStart time.Time
	TrainEnd   time.Time
	TestStart  time.Time
	TestEnd    time.Time
}

// SplitByRatio splits bars into a leading train slice and trailing test
// slice. A ratio outside (0,1) or a split that would leave either side
// empty returns everything as train.
func SplitByRatio(bars []types.Bar, ratio float64) ([]types.Bar, []types.Bar) {
	if ratio <= 0 || ratio >= 1 {
		return bars, nil
	}
	n := int(float64(len(bars)) * ratio)
	if n < 1 || n >= len(bars) {
		return bars, nil
	}
	return bars[:n], bars[n:]
}

// CreateRollingFolds builds rolling walk-forward folds: trainDays of
// history followed by testDays of evaluation, advancing rollDays per fold.
// Folds with fewer than minTrain/minTest bars are dropped.
func CreateRollingFolds(bars []types.Bar, trainDays, testDays, rollDays, minTrain, minTest int) []WalkForwardFold {
	var folds []WalkForwardFold
	if len(bars) == 0 || trainDays <= 0 || testDays <= 0 || rollDays <= 0 {
		return folds
	}

	trainDur := time.Duration(trainDays) * 24 * time.Hour
	testDur := time.Duration(testDays) * 24 * time.Hour
	rollDur := time.Duration(rollDays) * 24 * time.Hour

	start := 0
	for {
		trainEndTs := bars[start].Date.Add(trainDur)
		trainEnd := start
		for trainEnd < len(bars) && bars[trainEnd].Date.Before(trainEndTs) {
			trainEnd++
		}

		testEndTs := trainEndTs.Add(testDur)
		testEnd := trainEnd
		for testEnd < len(bars) && bars[testEnd].Date.Before(testEndTs) {
			testEnd++
		}

		if trainEnd-start < minTrain || testEnd-trainEnd < minTest {
			break
		}

		folds = append(folds, WalkForwardFold{
			Train:      bars[start:trainEnd],
			Test:       bars[trainEnd:testEnd],
			TrainStart: bars[start].Date,
			TrainEnd:   bars[trainEnd-1].Date,
			TestStart:  bars[trainEnd].Date,
			TestEnd:    bars[testEnd-1].Date,
		})

		nextStartTs := bars[start].Date.Add(rollDur)
		nextStart := start
		for nextStart < len(bars) && bars[nextStart].Date.Before(nextStartTs) {
			nextStart++
		}
		if nextStart <= start {
			nextStart = start + 1
		}
		if nextStart >= len(bars) {
			break
		}
		start = nextStart
	}

	return folds
}
