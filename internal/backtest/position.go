package backtest

import (
	"math"
	"time"
)

// ExitReason names the rule that closed a trade.
type ExitReason string

const (
	ExitTrailingStop ExitReason = "trailing_stop"
	ExitSMA          ExitReason = "sma_exit"
	ExitEndOfData    ExitReason = "end_of_data"
)

// Position is the single open long position. It exists only between an
// entry signal and the first matching exit condition.
type Position struct {
	EntryDate    time.Time
	EntryPrice   float64
	InitialStop  float64
	TrailingStop float64
	HighestPrice float64

	entryIndex int
}

// openPosition records the entry context on the signal bar: entry at the
// bar's close, initial stop ATRMultStop true ranges under the bar's low.
func openPosition(index int, date time.Time, close, low, atr, stopMult float64) *Position {
	stop := low - stopMult*atr
	return &Position{
		EntryDate:    date,
		EntryPrice:   close,
		InitialStop:  stop,
		TrailingStop: stop,
		HighestPrice: close,
		entryIndex:   index,
	}
}

// update advances the trailing state for one bar. The high ratchets the
// trailing extremum; the stop candidate is recomputed from it and applied
// through max(), so the stop never moves against the position. A NaN ATR
// keeps the previous stop rather than abandoning stop management.
func (p *Position) update(high, atr, trailMult float64) {
	if high > p.HighestPrice {
		p.HighestPrice = high
	}
	if math.IsNaN(atr) {
		return
	}
	candidate := p.HighestPrice - trailMult*atr
	if candidate > p.TrailingStop {
		p.TrailingStop = candidate
	}
}

// Trade is one closed round trip, immutable once appended to the ledger.
type Trade struct {
	EntryDate   time.Time  `json:"entry_date"`
	EntryPrice  float64    `json:"entry_price"`
	ExitDate    time.Time  `json:"exit_date"`
	ExitPrice   float64    `json:"exit_price"`
	ReturnPct   float64    `json:"return_pct"`
	HoldingDays int        `json:"holding_days"`
	ExitReason  ExitReason `json:"exit_reason"`
	InitialStop float64    `json:"initial_stop"`
}

// close converts the position into a Trade at the given exit bar.
// HoldingDays counts trading days, i.e. bar indices, not calendar days.
func (p *Position) close(index int, date time.Time, price float64, reason ExitReason) Trade {
	return Trade{
		EntryDate:   p.EntryDate,
		EntryPrice:  p.EntryPrice,
		ExitDate:    date,
		ExitPrice:   price,
		ReturnPct:   (price/p.EntryPrice - 1) * 100,
		HoldingDays: index - p.entryIndex,
		ExitReason:  reason,
		InitialStop: p.InitialStop,
	}
}
