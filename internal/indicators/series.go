// Package indicators computes technical indicator series over daily bars.
// Every function returns a slice aligned index-for-index with its input;
// positions inside the warmup window are NaN so downstream consumers can
// tell "not yet defined" from a real zero.
package indicators

import (
	"math"

	"github.com/quantbt/trend-follow-bot/pkg/types"
)

// Closes extracts the close series from a bar slice.
func Closes(bars []types.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// SMA computes a simple moving average of values over period.
func SMA(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// EMA computes an exponential moving average with the standard
// 2/(period+1) smoothing factor, seeded with the SMA of the first period.
func EMA(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	seed := 0.0
	for i := 0; i < period; i++ {
		seed += values[i]
	}
	prev := seed / float64(period)
	out[period-1] = prev

	alpha := 2.0 / float64(period+1)
	for i := period; i < len(values); i++ {
		prev = (values[i]-prev)*alpha + prev
		out[i] = prev
	}
	return out
}

// SMMA computes Wilder's smoothed moving average: an SMA seed followed by
// prev + (value-prev)/period. RSI and ATR build on this smoothing.
func SMMA(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	seed := 0.0
	for i := 0; i < period; i++ {
		seed += values[i]
	}
	prev := seed / float64(period)
	out[period-1] = prev

	for i := period; i < len(values); i++ {
		prev += (values[i] - prev) / float64(period)
		out[i] = prev
	}
	return out
}

// RSI computes the Relative Strength Index of closes using Wilder smoothing
// of gains and losses. Values are defined from index period onward.
func RSI(closes []float64, period int) []float64 {
	out := nanSeries(len(closes))
	if period <= 0 || len(closes) < period+1 {
		return out
	}

	gains := make([]float64, len(closes)-1)
	losses := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i-1] = change
		} else {
			losses[i-1] = -change
		}
	}

	avgGain := SMMA(gains, period)
	avgLoss := SMMA(losses, period)

	// gains[j] describes the move into closes[j+1]
	for j := period - 1; j < len(gains); j++ {
		i := j + 1
		if avgLoss[j] == 0 {
			out[i] = 100
			continue
		}
		rs := avgGain[j] / avgLoss[j]
		out[i] = 100 - 100/(1+rs)
	}
	return out
}

// ATR computes the Average True Range: Wilder smoothing of the true range
// series. The first bar's true range is its plain high-low extent.
func ATR(bars []types.Bar, period int) []float64 {
	out := nanSeries(len(bars))
	if period <= 0 || len(bars) < period {
		return out
	}

	tr := make([]float64, len(bars))
	for i, b := range bars {
		if i == 0 {
			tr[i] = b.High - b.Low
			continue
		}
		prevClose := bars[i-1].Close
		hl := b.High - b.Low
		hc := math.Abs(b.High - prevClose)
		lc := math.Abs(b.Low - prevClose)
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}

	return SMMA(tr, period)
}

// RollingHigh returns, for each bar, the maximum high of the previous
// period bars excluding the bar itself — the breakout reference level.
func RollingHigh(bars []types.Bar, period int) []float64 {
	out := nanSeries(len(bars))
	if period <= 0 {
		return out
	}
	for i := period; i < len(bars); i++ {
		high := bars[i-period].High
		for j := i - period + 1; j < i; j++ {
			if bars[j].High > high {
				high = bars[j].High
			}
		}
		out[i] = high
	}
	return out
}

// PercentChange returns the percent change of each value versus the value
// period positions earlier.
func PercentChange(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	if period <= 0 {
		return out
	}
	for i := period; i < len(values); i++ {
		if values[i-period] == 0 {
			continue // leave NaN, undefined base
		}
		out[i] = (values[i]/values[i-period] - 1) * 100
	}
	return out
}

func nanSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
