// Package frame holds the indicator frame: a date-ordered series of daily
// bars plus named indicator columns. The backtest engine consumes frames
// only through this read-side API, so tests can hand-build columns instead
// of running the indicator pipeline.
package frame

import (
	"fmt"
	"math"

	boterrors "github.com/quantbt/trend-follow-bot/internal/errors"
	"github.com/quantbt/trend-follow-bot/pkg/types"
)

// ColumnFunc computes one indicator series from raw bars. The returned
// slice must be aligned with the input, NaN where undefined.
type ColumnFunc func(bars []types.Bar) []float64

// Frame is an immutable, time-ordered table of bars and indicator columns.
type Frame struct {
	bars []types.Bar
	cols map[string][]float64
}

// New builds a frame from bars and precomputed columns. Dates must be
// strictly increasing and every column must cover every bar.
func New(bars []types.Bar, cols map[string][]float64) (*Frame, error) {
	for i := 1; i < len(bars); i++ {
		if !bars[i].Date.After(bars[i-1].Date) {
			return nil, boterrors.NewDataError("frame",
				fmt.Sprintf("dates not strictly increasing at row %d (%s then %s)",
					i, bars[i-1].Date.Format("2006-01-02"), bars[i].Date.Format("2006-01-02")))
		}
	}
	for name, col := range cols {
		if len(col) != len(bars) {
			return nil, boterrors.NewDataError("frame",
				fmt.Sprintf("column %q has %d values for %d bars", name, len(col), len(bars)))
		}
	}

	copied := make(map[string][]float64, len(cols))
	for name, col := range cols {
		copied[name] = col
	}
	return &Frame{bars: bars, cols: copied}, nil
}

// Build computes the requested columns from raw bars and assembles a frame.
func Build(bars []types.Bar, columns map[string]ColumnFunc) (*Frame, error) {
	cols := make(map[string][]float64, len(columns))
	for name, fn := range columns {
		cols[name] = fn(bars)
	}
	return New(bars, cols)
}

// Len returns the number of bars.
func (f *Frame) Len() int {
	return len(f.bars)
}

// Bar returns the bar at index i.
func (f *Frame) Bar(i int) types.Bar {
	return f.bars[i]
}

// Bars returns the underlying bar slice. Callers must not mutate it.
func (f *Frame) Bars() []types.Bar {
	return f.bars
}

// Value returns column name at index i, or NaN when the column is missing
// or the index is out of range. NaN is the uniform "no data" answer so
// predicate code never has to branch on bounds.
func (f *Frame) Value(name string, i int) float64 {
	col, ok := f.cols[name]
	if !ok || i < 0 || i >= len(col) {
		return math.NaN()
	}
	return col[i]
}

// HasColumn reports whether the frame carries the named column.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.cols[name]
	return ok
}

// Require returns a configuration error naming the first missing column.
func (f *Frame) Require(names ...string) error {
	for _, name := range names {
		if !f.HasColumn(name) {
			return boterrors.NewConfigError("frame", fmt.Sprintf("required column %q missing", name))
		}
	}
	return nil
}
