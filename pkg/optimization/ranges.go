package optimization

import (
	"math/rand"

	"github.com/quantbt/trend-follow-bot/internal/strategy"
)

// Ranges lists the candidate values the optimizer may assign to each tuned
// parameter. The moving-average regime windows stay fixed so every
// candidate trades the same trend definition.
type Ranges struct {
	RSIPeriods      []int
	RSIThresholds   []float64
	SlopePeriods    []int
	BreakoutPeriods []int
	ATRPeriods      []int
	ATRMultBody     []float64
	ATRMultStop     []float64
	ATRMultTrail    []float64
	MaxRisePercents []float64
}

// DefaultRanges is the stock search space.
var DefaultRanges = Ranges{
	RSIPeriods:      []int{7, 10, 14, 21},
	RSIThresholds:   []float64{55, 60, 65, 70, 75},
	SlopePeriods:    []int{5, 10, 15, 20},
	BreakoutPeriods: []int{10, 15, 20, 25, 30},
	ATRPeriods:      []int{7, 10, 14, 21},
	ATRMultBody:     []float64{0.5, 0.75, 1.0, 1.25, 1.5},
	ATRMultStop:     []float64{1.5, 2.0, 2.5, 3.0},
	ATRMultTrail:    []float64{1.5, 2.0, 2.5, 3.0},
	MaxRisePercents: []float64{10, 12.5, 15, 20, 25},
}

// Randomize assigns every tuned parameter a random candidate value.
func (r Ranges) Randomize(cfg *strategy.TrendFollowConfig, rng *rand.Rand) {
	cfg.RSIPeriod = pickInt(r.RSIPeriods, cfg.RSIPeriod, rng)
	cfg.RSIThreshold = pickFloat(r.RSIThresholds, cfg.RSIThreshold, rng)
	cfg.SlopePeriod = pickInt(r.SlopePeriods, cfg.SlopePeriod, rng)
	cfg.BreakoutPeriod = pickInt(r.BreakoutPeriods, cfg.BreakoutPeriod, rng)
	cfg.ATRPeriod = pickInt(r.ATRPeriods, cfg.ATRPeriod, rng)
	cfg.ATRMultBody = pickFloat(r.ATRMultBody, cfg.ATRMultBody, rng)
	cfg.ATRMultStop = pickFloat(r.ATRMultStop, cfg.ATRMultStop, rng)
	cfg.ATRMultTrail = pickFloat(r.ATRMultTrail, cfg.ATRMultTrail, rng)
	cfg.MaxRisePercent = pickFloat(r.MaxRisePercents, cfg.MaxRisePercent, rng)
}

// MutateOne re-rolls a single random tuned parameter.
func (r Ranges) MutateOne(cfg *strategy.TrendFollowConfig, rng *rand.Rand) {
	switch rng.Intn(9) {
	case 0:
		cfg.RSIPeriod = pickInt(r.RSIPeriods, cfg.RSIPeriod, rng)
	case 1:
		cfg.RSIThreshold = pickFloat(r.RSIThresholds, cfg.RSIThreshold, rng)
	case 2:
		cfg.SlopePeriod = pickInt(r.SlopePeriods, cfg.SlopePeriod, rng)
	case 3:
		cfg.BreakoutPeriod = pickInt(r.BreakoutPeriods, cfg.BreakoutPeriod, rng)
	case 4:
		cfg.ATRPeriod = pickInt(r.ATRPeriods, cfg.ATRPeriod, rng)
	case 5:
		cfg.ATRMultBody = pickFloat(r.ATRMultBody, cfg.ATRMultBody, rng)
	case 6:
		cfg.ATRMultStop = pickFloat(r.ATRMultStop, cfg.ATRMultStop, rng)
	case 7:
		cfg.ATRMultTrail = pickFloat(r.ATRMultTrail, cfg.ATRMultTrail, rng)
	case 8:
		cfg.MaxRisePercent = pickFloat(r.MaxRisePercents, cfg.MaxRisePercent, rng)
	}
}

// CrossoverInto mixes a and b field by field into dst with a uniform coin
// flip per tuned parameter.
func (r Ranges) CrossoverInto(dst, a, b *strategy.TrendFollowConfig, rng *rand.Rand) {
	*dst = *a
	if rng.Intn(2) == 0 {
		dst.RSIPeriod = b.RSIPeriod
	}
	if rng.Intn(2) == 0 {
		dst.RSIThreshold = b.RSIThreshold
	}
	if rng.Intn(2) == 0 {
		dst.SlopePeriod = b.SlopePeriod
	}
	if rng.Intn(2) == 0 {
		dst.BreakoutPeriod = b.BreakoutPeriod
	}
	if rng.Intn(2) == 0 {
		dst.ATRPeriod = b.ATRPeriod
	}
	if rng.Intn(2) == 0 {
		dst.ATRMultBody = b.ATRMultBody
	}
	if rng.Intn(2) == 0 {
		dst.ATRMultStop = b.ATRMultStop
	}
	if rng.Intn(2) == 0 {
		dst.ATRMultTrail = b.ATRMultTrail
	}
	if rng.Intn(2) == 0 {
		dst.MaxRisePercent = b.MaxRisePercent
	}
}

func pickInt(candidates []int, fallback int, rng *rand.Rand) int {
	if len(candidates) == 0 {
		return fallback
	}
	return candidates[rng.Intn(len(candidates))]
}

func pickFloat(candidates []float64, fallback float64, rng *rand.Rand) float64 {
	if len(candidates) == 0 {
		return fallback
	}
	return candidates[rng.Intn(len(candidates))]
}
