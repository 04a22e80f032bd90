// Package backtest simulates a single-instrument, single-position long
// strategy over an indicator frame: a FLAT/OPEN state machine walked
// strictly forward in time, an append-only trade ledger, and summary
// statistics over the ledger.
package backtest

import (
	"fmt"
	"math"
	"time"

	boterrors "github.com/quantbt/trend-follow-bot/internal/errors"
	"github.com/quantbt/trend-follow-bot/internal/frame"
	"github.com/quantbt/trend-follow-bot/internal/strategy"
)

// StopCheck selects which bar price tests a trailing-stop breach.
type StopCheck string

const (
	// StopOnLow exits when the bar's low touches the stop (default).
	StopOnLow StopCheck = "low"
	// StopOnClose exits only when the bar closes at or under the stop.
	StopOnClose StopCheck = "close"
)

// Options fixes the run conventions the rule set leaves open.
type Options struct {
	// StopCheck is the stop breach convention, StopOnLow when empty.
	StopCheck StopCheck

	// CloseAtEnd force-closes a position still open on the last bar at
	// that bar's close (reason end_of_data). When false the position is
	// excluded from the ledger and reported via Result.OpenPosition.
	CloseAtEnd bool
}

func (o Options) validate() error {
	switch o.StopCheck {
	case "", StopOnLow, StopOnClose:
		return nil
	default:
		return boterrors.NewConfigError("engine",
			fmt.Sprintf("stop check must be %q or %q, got %q", StopOnLow, StopOnClose, o.StopCheck))
	}
}

// Result is one simulation's output: the closed-trade ledger plus the
// context reporting needs.
type Result struct {
	Strategy string

	// Trades is the append-only ledger, in exit order.
	Trades []Trade

	// OpenPosition is a position still open on the last bar when the run
	// does not force-close it. Never part of Trades.
	OpenPosition *Position

	// SkippedBars lists bars whose entry evaluation was skipped because a
	// required indicator value was undefined.
	SkippedBars []time.Time

	Bars       int
	FirstClose float64
	LastClose  float64
}

// Engine walks one frame for one strategy. Each engine owns its position
// and ledger exclusively, so concurrent simulations need separate engines.
type Engine struct {
	strat strategy.Strategy
	opts  Options
}

// NewEngine validates opts and returns an engine for strat.
func NewEngine(strat strategy.Strategy, opts Options) (*Engine, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.StopCheck == "" {
		opts.StopCheck = StopOnLow
	}
	return &Engine{strat: strat, opts: opts}, nil
}

// Run simulates the strategy over f. The walk starts on the first bar
// after the warmup window and touches each bar exactly once, so a bar's
// decision can only depend on data known by that bar.
func (e *Engine) Run(f *frame.Frame) (*Result, error) {
	exit := e.strat.ExitRules()

	required := make([]string, 0, 8)
	for name := range e.strat.Columns() {
		required = append(required, name)
	}
	required = append(required, exit.ATRColumn, exit.ExitSMAColumn)
	if err := f.Require(required...); err != nil {
		return nil, err
	}

	warmup := e.strat.Warmup()
	if f.Len() <= warmup {
		return nil, boterrors.NewInsufficientHistory("engine", warmup+1, f.Len())
	}

	res := &Result{
		Strategy:   e.strat.Name(),
		Trades:     make([]Trade, 0),
		Bars:       f.Len(),
		FirstClose: f.Bar(0).Close,
		LastClose:  f.Bar(f.Len() - 1).Close,
	}

	var pos *Position
	for i := warmup; i < f.Len(); i++ {
		bar := f.Bar(i)

		if pos != nil {
			pos.update(bar.High, f.Value(exit.ATRColumn, i), exit.TrailMult)

			if price, reason, ok := e.checkExit(f, i, pos, exit); ok {
				res.Trades = append(res.Trades, pos.close(i, bar.Date, price, reason))
				pos = nil
			}
			// An entry signal on a bar with an open position is ignored:
			// at most one position per run.
			continue
		}

		switch e.strat.Evaluate(f, i) {
		case strategy.SignalEnter:
			atr := f.Value(exit.ATRColumn, i)
			if math.IsNaN(atr) {
				res.SkippedBars = append(res.SkippedBars, bar.Date)
				continue
			}
			pos = openPosition(i, bar.Date, bar.Close, bar.Low, atr, exit.StopMult)
		case strategy.SignalSkip:
			res.SkippedBars = append(res.SkippedBars, bar.Date)
		}
	}

	if pos != nil {
		if e.opts.CloseAtEnd {
			last := f.Bar(f.Len() - 1)
			res.Trades = append(res.Trades, pos.close(f.Len()-1, last.Date, last.Close, ExitEndOfData))
		} else {
			res.OpenPosition = pos
		}
	}

	return res, nil
}

// checkExit tests the current bar against the exit conditions in fixed
// order: stop breach first, then close under the exit average. A missing
// exit SMA value skips only that check; stop management never pauses.
func (e *Engine) checkExit(f *frame.Frame, i int, pos *Position, exit strategy.ExitRules) (float64, ExitReason, bool) {
	bar := f.Bar(i)

	breachPrice := bar.Low
	if e.opts.StopCheck == StopOnClose {
		breachPrice = bar.Close
	}
	if breachPrice <= pos.TrailingStop {
		return pos.TrailingStop, ExitTrailingStop, true
	}

	sma := f.Value(exit.ExitSMAColumn, i)
	if !math.IsNaN(sma) && bar.Close < sma {
		return bar.Close, ExitSMA, true
	}

	return 0, "", false
}
