package strategy

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantbt/trend-follow-bot/internal/frame"
	"github.com/quantbt/trend-follow-bot/pkg/types"
)

// smallConfig shrinks every window so fixtures stay readable. Warmup is 5
// and the first evaluable row is index 5.
func smallConfig() TrendFollowConfig {
	cfg := DefaultTrendFollowConfig()
	cfg.SMALong = 5
	cfg.SMAShort = 3
	cfg.SlopePeriod = 2
	cfg.BreakoutPeriod = 3
	cfg.ATRPeriod = 3
	cfg.MaxRisePeriod = 4
	return cfg
}

type fixture struct {
	bars    []types.Bar
	rsi     []float64
	smaLong []float64
	atr     []float64
	high    []float64
	rise    []float64
}

// passingFixture builds six bars where row 5 satisfies every entry filter:
// decisive breakout candle above a rising long average, calm RSI, body
// wider than one ATR, no parabolic run-up.
func passingFixture() *fixture {
	base := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	bars := make([]types.Bar, 6)
	for i := range bars {
		bars[i] = types.Bar{Date: base.AddDate(0, 0, i), Open: 95, High: 97, Low: 94, Close: 96}
	}
	bars[5] = types.Bar{Date: base.AddDate(0, 0, 5), Open: 95, High: 101, Low: 95, Close: 100}

	n := len(bars)
	return &fixture{
		bars:    bars,
		rsi:     constSeries(n, 50),
		smaLong: []float64{88, 88.5, 89, 89.5, 89.8, 90},
		atr:     constSeries(n, 2),
		high:    constSeries(n, 99),
		rise:    constSeries(n, 5),
	}
}

func (fx *fixture) frame(t *testing.T, cfg TrendFollowConfig) *frame.Frame {
	t.Helper()
	f, err := frame.New(fx.bars, map[string][]float64{
		cfg.RSIColumn():         fx.rsi,
		cfg.SMALongColumn():     fx.smaLong,
		cfg.SMAShortColumn():    constSeries(len(fx.bars), 90),
		cfg.ATRColumn():         fx.atr,
		cfg.RollingHighColumn(): fx.high,
		cfg.RiseColumn():        fx.rise,
	})
	require.NoError(t, err)
	return f
}

func constSeries(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestEvaluate_AllFiltersPass(t *testing.T) {
	cfg := smallConfig()
	strat, err := NewTrendFollow(cfg)
	require.NoError(t, err)

	fx := passingFixture()
	assert.Equal(t, SignalEnter, strat.Evaluate(fx.frame(t, cfg), 5))
}

func TestEvaluate_EachFilterBlocks(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*fixture)
	}{
		{"rsi at threshold", func(fx *fixture) { fx.rsi[5] = 65 }},
		{"rsi overbought", func(fx *fixture) { fx.rsi[5] = 80 }},
		{"close below long sma", func(fx *fixture) { fx.smaLong[5] = 120 }},
		{"long sma falling", func(fx *fixture) { fx.smaLong[3] = 95 }},
		{"no breakout", func(fx *fixture) { fx.high[5] = 100.5 }},
		{"body under one atr", func(fx *fixture) { fx.atr[5] = 8 }},
		{"parabolic rise", func(fx *fixture) { fx.rise[5] = 20 }},
		{"doji body", func(fx *fixture) {
			// body 0.4 on a range of 6 is under the 10% floor; ATR kept
			// small so the body filter itself still passes
			fx.bars[5].Open = 99.6
			fx.atr[5] = 0.2
		}},
		{"long upper wick", func(fx *fixture) {
			// body 1, upper wick 2.5
			fx.bars[5] = types.Bar{Date: fx.bars[5].Date, Open: 99, High: 102.5, Low: 94.5, Close: 100}
			fx.atr[5] = 0.5
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := smallConfig()
			strat, err := NewTrendFollow(cfg)
			require.NoError(t, err)

			fx := passingFixture()
			tc.mutate(fx)
			assert.Equal(t, SignalHold, strat.Evaluate(fx.frame(t, cfg), 5))
		})
	}
}

func TestEvaluate_UndefinedValuesSkip(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*fixture)
	}{
		{"rsi undefined", func(fx *fixture) { fx.rsi[5] = math.NaN() }},
		{"atr undefined", func(fx *fixture) { fx.atr[5] = math.NaN() }},
		{"rolling high undefined", func(fx *fixture) { fx.high[5] = math.NaN() }},
		{"slope reference undefined", func(fx *fixture) { fx.smaLong[3] = math.NaN() }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := smallConfig()
			strat, err := NewTrendFollow(cfg)
			require.NoError(t, err)

			fx := passingFixture()
			tc.mutate(fx)
			assert.Equal(t, SignalSkip, strat.Evaluate(fx.frame(t, cfg), 5))
		})
	}
}

func TestEvaluate_ZeroRangeBarIsIndecisive(t *testing.T) {
	cfg := smallConfig()
	strat, err := NewTrendFollow(cfg)
	require.NoError(t, err)

	fx := passingFixture()
	fx.bars[5] = types.Bar{Date: fx.bars[5].Date, Open: 100, High: 100, Low: 100, Close: 100}
	fx.atr[5] = 0.0001 // keep the body filter out of the way

	assert.Equal(t, SignalHold, strat.Evaluate(fx.frame(t, cfg), 5))
}

func TestColumns_CoverEveryReferencedSeries(t *testing.T) {
	cfg := smallConfig()
	strat, err := NewTrendFollow(cfg)
	require.NoError(t, err)

	cols := strat.Columns()
	for _, name := range []string{
		cfg.RSIColumn(), cfg.SMALongColumn(), cfg.SMAShortColumn(),
		cfg.ATRColumn(), cfg.RollingHighColumn(), cfg.RiseColumn(),
	} {
		assert.Contains(t, cols, name)
	}
}

func TestExitRules(t *testing.T) {
	cfg := smallConfig()
	strat, err := NewTrendFollow(cfg)
	require.NoError(t, err)

	rules := strat.ExitRules()
	assert.Equal(t, cfg.ATRColumn(), rules.ATRColumn)
	assert.Equal(t, cfg.SMAShortColumn(), rules.ExitSMAColumn)
	assert.Equal(t, cfg.ATRMultStop, rules.StopMult)
	assert.Equal(t, cfg.ATRMultTrail, rules.TrailMult)
}

func TestSignalString(t *testing.T) {
	assert.Equal(t, "HOLD", SignalHold.String())
	assert.Equal(t, "ENTER", SignalEnter.String())
	assert.Equal(t, "SKIP", SignalSkip.String())
}
