// Package optimization tunes the entry and exit parameters of the
// trend-follow strategy with a small genetic algorithm: tournament
// selection, uniform crossover, single-parameter mutation and elitism.
// Fitness is the compounded result of the backtest ledger.
package optimization

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/quantbt/trend-follow-bot/internal/backtest"
	boterrors "github.com/quantbt/trend-follow-bot/internal/errors"
	"github.com/quantbt/trend-follow-bot/internal/frame"
	"github.com/quantbt/trend-follow-bot/internal/strategy"
	"github.com/quantbt/trend-follow-bot/pkg/types"
)

// GAConfig sets the population mechanics.
type GAConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	CrossoverRate  float64
	EliteSize      int
	TournamentSize int
	MaxWorkers     int
}

// DefaultGAConfig returns population mechanics sized for daily series.
func DefaultGAConfig() GAConfig {
	return GAConfig{
		PopulationSize: 24,
		Generations:    15,
		MutationRate:   0.2,
		CrossoverRate:  0.85,
		EliteSize:      4,
		TournamentSize: 2,
		MaxWorkers:     6,
	}
}

// deadFitness marks candidates whose evaluation failed; they lose every
// tournament and never reach the elite.
const deadFitness = -1

// Optimize searches the parameter space over bars and returns the best
// candidate found. The rng drives every stochastic step, so a seeded rng
// reproduces the search exactly.
func Optimize(bars []types.Bar, base strategy.TrendFollowConfig, ranges Ranges, ga GAConfig, opts backtest.Options, rng *rand.Rand) (*Individual, error) {
	population := initializePopulation(base, ranges, ga.PopulationSize, rng)

	var best *Individual
	for gen := 0; gen < ga.Generations; gen++ {
		evaluatePopulation(population, bars, opts, ga.MaxWorkers)
		sortByFitness(population)

		if best == nil || population[0].Fitness > best.Fitness {
			best = population[0].Copy()
		}

		if gen < ga.Generations-1 {
			population = nextGeneration(population, ranges, ga, rng)
		}
	}

	if best == nil || best.Fitness == deadFitness {
		return nil, boterrors.NewDataError("optimizer", "no candidate produced a closed trade")
	}
	return best, nil
}

func initializePopulation(base strategy.TrendFollowConfig, ranges Ranges, size int, rng *rand.Rand) []*Individual {
	population := make([]*Individual, size)
	for i := range population {
		cfg := base
		ranges.Randomize(&cfg, rng)
		population[i] = NewIndividual(cfg)
	}
	return population
}

// evaluatePopulation backtests every unevaluated candidate, maxWorkers at
// a time. Candidates are independent, so only the worker slot channel is
// shared.
func evaluatePopulation(population []*Individual, bars []types.Bar, opts backtest.Options, maxWorkers int) {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	var wg sync.WaitGroup
	slots := make(chan struct{}, maxWorkers)

	for _, ind := range population {
		if ind.evaluated {
			continue
		}
		wg.Add(1)
		go func(ind *Individual) {
			defer wg.Done()
			slots <- struct{}{}
			defer func() { <-slots }()

			ind.Fitness, ind.Summary = evaluate(ind.Config, bars, opts)
			ind.evaluated = true
		}(ind)
	}
	wg.Wait()
}

// evaluate runs one full simulation for cfg and scores the ledger by its
// compounded result. A failed run or an empty ledger is a dead candidate.
func evaluate(cfg strategy.TrendFollowConfig, bars []types.Bar, opts backtest.Options) (float64, backtest.Summary) {
	strat, err := strategy.NewTrendFollow(cfg)
	if err != nil {
		return deadFitness, backtest.Summary{}
	}

	f, err := frame.Build(bars, strat.Columns())
	if err != nil {
		return deadFitness, backtest.Summary{}
	}

	engine, err := backtest.NewEngine(strat, opts)
	if err != nil {
		return deadFitness, backtest.Summary{}
	}

	res, err := engine.Run(f)
	if err != nil {
		return deadFitness, backtest.Summary{}
	}

	s := backtest.Summarize(res)
	if !s.Valid {
		return deadFitness, s
	}
	return s.CumulativeResult, s
}

func sortByFitness(population []*Individual) {
	sort.SliceStable(population, func(i, j int) bool {
		return population[i].Fitness > population[j].Fitness
	})
}

func nextGeneration(population []*Individual, ranges Ranges, ga GAConfig, rng *rand.Rand) []*Individual {
	next := make([]*Individual, len(population))

	for i := 0; i < ga.EliteSize && i < len(population); i++ {
		next[i] = population[i].Copy()
	}

	for i := ga.EliteSize; i < len(population); i++ {
		p1 := tournamentSelection(population, ga.TournamentSize, rng)
		p2 := tournamentSelection(population, ga.TournamentSize, rng)

		child := NewIndividual(p1.Config)
		if rng.Float64() < ga.CrossoverRate {
			ranges.CrossoverInto(&child.Config, &p1.Config, &p2.Config, rng)
		}
		if rng.Float64() < ga.MutationRate {
			ranges.MutateOne(&child.Config, rng)
		}
		next[i] = child
	}

	return next
}

func tournamentSelection(population []*Individual, size int, rng *rand.Rand) *Individual {
	best := population[rng.Intn(len(population))]
	for i := 1; i < size; i++ {
		candidate := population[rng.Intn(len(population))]
		if candidate.Fitness > best.Fitness {
			best = candidate
		}
	}
	return best
}
