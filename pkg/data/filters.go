package data

import (
	"time"

	"github.com/quantbt/trend-follow-bot/pkg/types"
)

// FilterByDateRange keeps bars with start <= date <= end. A zero start or
// end leaves that side unbounded.
func FilterByDateRange(bars []types.Bar, start, end time.Time) []types.Bar {
	if len(bars) == 0 {
		return bars
	}

	var filtered []types.Bar
	for _, b := range bars {
		if !start.IsZero() && b.Date.Before(start) {
			continue
		}
		if !end.IsZero() && b.Date.After(end) {
			continue
		}
		filtered = append(filtered, b)
	}
	return filtered
}

// LastN keeps the trailing n bars, bounding the input series length.
func LastN(bars []types.Bar, n int) []types.Bar {
	if n <= 0 || len(bars) <= n {
		return bars
	}
	return bars[len(bars)-n:]
}
