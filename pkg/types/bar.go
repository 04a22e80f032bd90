package types

import (
	"math"
	"time"
)

// Bar is one trading day's OHLCV record. Bars are immutable once loaded and
// are always handled in date-ascending order; non-trading days are simply
// absent from a series.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Body returns the absolute size of the candle's real body.
func (b Bar) Body() float64 {
	return math.Abs(b.Close - b.Open)
}

// Range returns the full high-low extent of the bar.
func (b Bar) Range() float64 {
	return b.High - b.Low
}

// UpperWick returns the distance from the top of the body to the high.
func (b Bar) UpperWick() float64 {
	return b.High - math.Max(b.Open, b.Close)
}
