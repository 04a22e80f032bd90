package optimization

import (
	"github.com/quantbt/trend-follow-bot/internal/backtest"
	"github.com/quantbt/trend-follow-bot/internal/strategy"
)

// Individual is one candidate parameter set and its evaluated fitness.
type Individual struct {
	Config  strategy.TrendFollowConfig
	Fitness float64
	Summary backtest.Summary

	evaluated bool
}

// NewIndividual wraps a config as an unevaluated candidate.
func NewIndividual(cfg strategy.TrendFollowConfig) *Individual {
	return &Individual{Config: cfg}
}

// Copy duplicates the candidate, fitness included.
func (i *Individual) Copy() *Individual {
	dup := *i
	return &dup
}

// Reset discards the fitness so the candidate is evaluated again.
func (i *Individual) Reset() {
	i.Fitness = 0
	i.Summary = backtest.Summary{}
	i.evaluated = false
}
