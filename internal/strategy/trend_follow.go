package strategy

import (
	"math"

	"github.com/quantbt/trend-follow-bot/internal/frame"
	"github.com/quantbt/trend-follow-bot/internal/indicators"
	"github.com/quantbt/trend-follow-bot/pkg/types"
)

// TrendFollow is the conservative trend-following rule set: buy breakouts
// above a rising long-term average, but only when momentum is not already
// exhausted and the signal candle itself is decisive.
type TrendFollow struct {
	cfg TrendFollowConfig
}

// NewTrendFollow validates cfg and returns the strategy.
func NewTrendFollow(cfg TrendFollowConfig) (*TrendFollow, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &TrendFollow{cfg: cfg}, nil
}

// Config returns the validated parameter set.
func (s *TrendFollow) Config() TrendFollowConfig {
	return s.cfg
}

func (s *TrendFollow) Name() string {
	return "trend_follow"
}

// Warmup is the longest lookback any filter needs. The first evaluable row
// is the one after it.
func (s *TrendFollow) Warmup() int {
	warmup := s.cfg.SMALong
	if s.cfg.BreakoutPeriod > warmup {
		warmup = s.cfg.BreakoutPeriod
	}
	if s.cfg.MaxRisePeriod > warmup {
		warmup = s.cfg.MaxRisePeriod
	}
	return warmup
}

func (s *TrendFollow) Columns() map[string]frame.ColumnFunc {
	cfg := s.cfg
	return map[string]frame.ColumnFunc{
		cfg.RSIColumn(): func(bars []types.Bar) []float64 {
			return indicators.RSI(indicators.Closes(bars), cfg.RSIPeriod)
		},
		cfg.SMALongColumn(): func(bars []types.Bar) []float64 {
			return indicators.SMA(indicators.Closes(bars), cfg.SMALong)
		},
		cfg.SMAShortColumn(): func(bars []types.Bar) []float64 {
			return indicators.SMA(indicators.Closes(bars), cfg.SMAShort)
		},
		cfg.ATRColumn(): func(bars []types.Bar) []float64 {
			return indicators.ATR(bars, cfg.ATRPeriod)
		},
		cfg.RollingHighColumn(): func(bars []types.Bar) []float64 {
			return indicators.RollingHigh(bars, cfg.BreakoutPeriod)
		},
		cfg.RiseColumn(): func(bars []types.Bar) []float64 {
			return indicators.PercentChange(indicators.Closes(bars), cfg.MaxRisePeriod)
		},
	}
}

func (s *TrendFollow) ExitRules() ExitRules {
	return ExitRules{
		ATRColumn:     s.cfg.ATRColumn(),
		StopMult:      s.cfg.ATRMultStop,
		TrailMult:     s.cfg.ATRMultTrail,
		ExitSMAColumn: s.cfg.SMAShortColumn(),
	}
}

// Evaluate applies the six entry filters to row i. All must hold for an
// ENTER; an undefined indicator value anywhere yields SKIP.
func (s *TrendFollow) Evaluate(f *frame.Frame, i int) Signal {
	bar := f.Bar(i)

	rsi := f.Value(s.cfg.RSIColumn(), i)
	smaLong := f.Value(s.cfg.SMALongColumn(), i)
	smaLongPrev := f.Value(s.cfg.SMALongColumn(), i-s.cfg.SlopePeriod)
	rollHigh := f.Value(s.cfg.RollingHighColumn(), i)
	atr := f.Value(s.cfg.ATRColumn(), i)
	rise := f.Value(s.cfg.RiseColumn(), i)

	if anyNaN(rsi, smaLong, smaLongPrev, rollHigh, atr, rise) {
		return SignalSkip
	}

	// 1. Oscillator filter: not already overbought.
	if rsi >= s.cfg.RSIThreshold {
		return SignalHold
	}

	// 2. Trend filter: price above a rising long-term average.
	if bar.Close <= smaLong || smaLong <= smaLongPrev {
		return SignalHold
	}

	// 3. Breakout trigger: close above the prior N-day high.
	if bar.Close <= rollHigh {
		return SignalHold
	}

	// 4. Momentum body filter: the candle's real body spans at least
	// ATRMultBody average true ranges.
	if bar.Body() < s.cfg.ATRMultBody*atr {
		return SignalHold
	}

	// 5. Parabolic-move filter: reject already-exhausted rallies.
	if rise > s.cfg.MaxRisePercent {
		return SignalHold
	}

	// 6. Candle-shape filter: no doji, no dominant upper wick.
	if !decisiveCandle(bar) {
		return SignalHold
	}

	return SignalEnter
}

// decisiveCandle rejects doji-like bars (body under 10% of the full range,
// a zero range counts as indecisive) and strong rejection candles whose
// upper wick exceeds twice the body.
func decisiveCandle(bar types.Bar) bool {
	rng := bar.Range()
	body := bar.Body()

	if rng <= 0 || body < minBodyRangeRatio*rng {
		return false
	}
	if body > 0 && bar.UpperWick() > maxWickBodyRatio*body {
		return false
	}
	return true
}

func anyNaN(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
