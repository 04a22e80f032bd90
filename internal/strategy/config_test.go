package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	boterrors "github.com/quantbt/trend-follow-bot/internal/errors"
)

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultTrendFollowConfig().Validate())
}

func TestValidate_RejectsOutOfDomain(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*TrendFollowConfig)
	}{
		{"zero rsi period", func(c *TrendFollowConfig) { c.RSIPeriod = 0 }},
		{"negative sma long", func(c *TrendFollowConfig) { c.SMALong = -200 }},
		{"zero sma short", func(c *TrendFollowConfig) { c.SMAShort = 0 }},
		{"zero slope period", func(c *TrendFollowConfig) { c.SlopePeriod = 0 }},
		{"zero breakout period", func(c *TrendFollowConfig) { c.BreakoutPeriod = 0 }},
		{"zero atr period", func(c *TrendFollowConfig) { c.ATRPeriod = 0 }},
		{"zero max rise period", func(c *TrendFollowConfig) { c.MaxRisePeriod = 0 }},
		{"zero rsi threshold", func(c *TrendFollowConfig) { c.RSIThreshold = 0 }},
		{"negative body multiplier", func(c *TrendFollowConfig) { c.ATRMultBody = -1 }},
		{"zero stop multiplier", func(c *TrendFollowConfig) { c.ATRMultStop = 0 }},
		{"zero trail multiplier", func(c *TrendFollowConfig) { c.ATRMultTrail = 0 }},
		{"negative max rise percent", func(c *TrendFollowConfig) { c.MaxRisePercent = -15 }},
		{"short sma not shorter", func(c *TrendFollowConfig) { c.SMAShort = 200 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultTrendFollowConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			assert.Error(t, err)
			assert.True(t, boterrors.IsConfig(err))
		})
	}
}

func TestNewTrendFollow_ValidatesEagerly(t *testing.T) {
	cfg := DefaultTrendFollowConfig()
	cfg.BreakoutPeriod = 0

	_, err := NewTrendFollow(cfg)
	assert.Error(t, err)
	assert.True(t, boterrors.IsConfig(err))
}

func TestColumnNamesTrackPeriods(t *testing.T) {
	cfg := DefaultTrendFollowConfig()
	assert.Equal(t, "rsi_14", cfg.RSIColumn())
	assert.Equal(t, "sma_200", cfg.SMALongColumn())
	assert.Equal(t, "sma_50", cfg.SMAShortColumn())
	assert.Equal(t, "atr_14", cfg.ATRColumn())
	assert.Equal(t, "high_20", cfg.RollingHighColumn())
	assert.Equal(t, "rise_20", cfg.RiseColumn())

	cfg.RSIPeriod = 7
	assert.Equal(t, "rsi_7", cfg.RSIColumn())
}

func TestWarmupIsLongestLookback(t *testing.T) {
	strat, err := NewTrendFollow(DefaultTrendFollowConfig())
	assert.NoError(t, err)
	assert.Equal(t, 200, strat.Warmup())

	cfg := DefaultTrendFollowConfig()
	cfg.SMALong = 10
	cfg.SMAShort = 5
	cfg.BreakoutPeriod = 30
	strat, err = NewTrendFollow(cfg)
	assert.NoError(t, err)
	assert.Equal(t, 30, strat.Warmup())
}
