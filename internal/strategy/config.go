package strategy

import (
	"fmt"

	boterrors "github.com/quantbt/trend-follow-bot/internal/errors"
)

// Default trend-follow parameters. These mirror the documented defaults of
// the conservative SMA200 rule set.
const (
	DefaultRSIPeriod      = 14
	DefaultRSIThreshold   = 65.0
	DefaultSMALong        = 200
	DefaultSMAShort       = 50
	DefaultSlopePeriod    = 10
	DefaultBreakoutPeriod = 20
	DefaultATRPeriod      = 14
	DefaultATRMultBody    = 1.0
	DefaultATRMultStop    = 2.0
	DefaultATRMultTrail   = 2.0
	DefaultMaxRisePeriod  = 20
	DefaultMaxRisePercent = 15.0

	// Candle-shape constants: minimum body share of the full range, and
	// maximum upper wick length in body multiples.
	minBodyRangeRatio = 0.1
	maxWickBodyRatio  = 2.0
)

// TrendFollowConfig parameterizes the trend-follow entry and exit rules.
// Every field can be overridden independently; Validate rejects
// out-of-domain values instead of clamping them.
type TrendFollowConfig struct {
	RSIPeriod    int     `json:"rsi_period"`
	RSIThreshold float64 `json:"rsi_threshold"`

	SMALong     int `json:"sma_long"`
	SMAShort    int `json:"sma_short"`
	SlopePeriod int `json:"slope_period"`

	BreakoutPeriod int `json:"breakout_period"`

	ATRPeriod    int     `json:"atr_period"`
	ATRMultBody  float64 `json:"atr_multiplier_body"`
	ATRMultStop  float64 `json:"atr_multiplier_stop"`
	ATRMultTrail float64 `json:"atr_multiplier_trail"`

	MaxRisePeriod  int     `json:"max_rise_period"`
	MaxRisePercent float64 `json:"max_rise_percent"`
}

// DefaultTrendFollowConfig returns the documented default parameter set.
func DefaultTrendFollowConfig() TrendFollowConfig {
	return TrendFollowConfig{
		RSIPeriod:      DefaultRSIPeriod,
		RSIThreshold:   DefaultRSIThreshold,
		SMALong:        DefaultSMALong,
		SMAShort:       DefaultSMAShort,
		SlopePeriod:    DefaultSlopePeriod,
		BreakoutPeriod: DefaultBreakoutPeriod,
		ATRPeriod:      DefaultATRPeriod,
		ATRMultBody:    DefaultATRMultBody,
		ATRMultStop:    DefaultATRMultStop,
		ATRMultTrail:   DefaultATRMultTrail,
		MaxRisePeriod:  DefaultMaxRisePeriod,
		MaxRisePercent: DefaultMaxRisePercent,
	}
}

// Validate checks every parameter domain. Periods and windows must be
// positive integers, thresholds and multipliers positive reals.
func (c TrendFollowConfig) Validate() error {
	periods := []struct {
		name  string
		value int
	}{
		{"rsi_period", c.RSIPeriod},
		{"sma_long", c.SMALong},
		{"sma_short", c.SMAShort},
		{"slope_period", c.SlopePeriod},
		{"breakout_period", c.BreakoutPeriod},
		{"atr_period", c.ATRPeriod},
		{"max_rise_period", c.MaxRisePeriod},
	}
	for _, p := range periods {
		if p.value <= 0 {
			return boterrors.NewConfigError("strategy",
				fmt.Sprintf("%s must be a positive integer, got %d", p.name, p.value))
		}
	}

	reals := []struct {
		name  string
		value float64
	}{
		{"rsi_threshold", c.RSIThreshold},
		{"atr_multiplier_body", c.ATRMultBody},
		{"atr_multiplier_stop", c.ATRMultStop},
		{"atr_multiplier_trail", c.ATRMultTrail},
		{"max_rise_percent", c.MaxRisePercent},
	}
	for _, r := range reals {
		if r.value <= 0 {
			return boterrors.NewConfigError("strategy",
				fmt.Sprintf("%s must be positive, got %v", r.name, r.value))
		}
	}

	if c.SMAShort >= c.SMALong {
		return boterrors.NewConfigError("strategy",
			fmt.Sprintf("sma_short (%d) must be shorter than sma_long (%d)", c.SMAShort, c.SMALong))
	}
	return nil
}

// Column names referenced by the trend-follow rules. Keeping the naming
// here means the engine and tests never hardcode period suffixes.

func (c TrendFollowConfig) RSIColumn() string      { return fmt.Sprintf("rsi_%d", c.RSIPeriod) }
func (c TrendFollowConfig) SMALongColumn() string  { return fmt.Sprintf("sma_%d", c.SMALong) }
func (c TrendFollowConfig) SMAShortColumn() string { return fmt.Sprintf("sma_%d", c.SMAShort) }
func (c TrendFollowConfig) ATRColumn() string      { return fmt.Sprintf("atr_%d", c.ATRPeriod) }
func (c TrendFollowConfig) RollingHighColumn() string {
	return fmt.Sprintf("high_%d", c.BreakoutPeriod)
}
func (c TrendFollowConfig) RiseColumn() string { return fmt.Sprintf("rise_%d", c.MaxRisePeriod) }
