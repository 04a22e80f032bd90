// Package strategy defines entry rule sets evaluated row-by-row over an
// indicator frame, plus the exit parameters the position engine needs.
package strategy

import (
	"github.com/quantbt/trend-follow-bot/internal/frame"
)

// Signal is an entry decision for a single frame row.
type Signal int

const (
	// SignalHold means the entry conditions are not met.
	SignalHold Signal = iota
	// SignalEnter means every entry condition holds on this bar.
	SignalEnter
	// SignalSkip means an indicator value the rules need is undefined on
	// this bar, so entry evaluation was not possible.
	SignalSkip
)

func (s Signal) String() string {
	switch s {
	case SignalHold:
		return "HOLD"
	case SignalEnter:
		return "ENTER"
	case SignalSkip:
		return "SKIP"
	default:
		return "UNKNOWN"
	}
}

// ExitRules carries the exit-side parameters a strategy hands to the
// position engine: which ATR column sizes the stops, the stop and trail
// multipliers, and the moving-average column for the close-below exit.
type ExitRules struct {
	ATRColumn     string
	StopMult      float64
	TrailMult     float64
	ExitSMAColumn string
}

// Strategy is a pure, single-instrument entry rule set. Evaluate may only
// inspect rows at or before i — decisions on day N use data known by day N.
type Strategy interface {
	// Name identifies the strategy in reports and logs.
	Name() string

	// Warmup returns the number of leading bars the rules cannot be
	// evaluated on (the longest lookback window).
	Warmup() int

	// Columns maps every indicator column the rules reference to the
	// function that computes it from raw bars.
	Columns() map[string]frame.ColumnFunc

	// Evaluate decides ENTER, HOLD or SKIP for row i of f.
	Evaluate(f *frame.Frame, i int) Signal

	// ExitRules returns the exit parameters for positions this strategy
	// opens.
	ExitRules() ExitRules
}
