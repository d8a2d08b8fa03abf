package ga

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/Chopan22/ADS-B-Detection/internal/monitoring"
)

// Params holds the GA hyperparameters.
type Params struct {
	PopulationSize int     `json:"population_size"`
	Generations    int     `json:"generations"`
	CrossoverProb  float64 `json:"crossover_prob"`
	MutationProb   float64 `json:"mutation_prob"`
	TournamentSize int     `json:"tournament_size"`
	Elitist        bool    `json:"elitist"`
	Workers        int     `json:"workers"`
	Seed           int64   `json:"seed"`
}

// DefaultParams returns the reference hyperparameters.
func DefaultParams() Params {
	return Params{
		PopulationSize: 100,
		Generations:    30,
		CrossoverProb:  0.8,
		MutationProb:   0.2,
		TournamentSize: 3,
		Elitist:        true,
		Workers:        1,
		Seed:           1,
	}
}

// Validate rejects hyperparameters the engine cannot run with.
func (p Params) Validate() error {
	if p.PopulationSize <= 0 {
		return fmt.Errorf("population_size must be > 0, got %d", p.PopulationSize)
	}
	if p.Generations <= 0 {
		return fmt.Errorf("generations must be > 0, got %d", p.Generations)
	}
	if p.CrossoverProb < 0 || p.CrossoverProb > 1 {
		return fmt.Errorf("crossover_prob must be in [0,1], got %g", p.CrossoverProb)
	}
	if p.MutationProb < 0 || p.MutationProb > 1 {
		return fmt.Errorf("mutation_prob must be in [0,1], got %g", p.MutationProb)
	}
	if p.TournamentSize < 1 {
		return fmt.Errorf("tournament_size must be >= 1, got %d", p.TournamentSize)
	}
	return nil
}

// GenerationStats records the best-so-far fitness after one generation.
type GenerationStats struct {
	Generation  int     `json:"generation"`
	BestFitness float64 `json:"best_fitness"`
}

// Result is the outcome of a run.
type Result struct {
	BestGenes   []float64         `json:"best_genes"`
	BestFitness float64           `json:"best_fitness"`
	Generations int               `json:"generations"`
	Cancelled   bool              `json:"cancelled"`
	History     []GenerationStats `json:"history"`
}

// Engine orchestrates the generational loop and tracks the best chromosome
// seen across all generations.
type Engine struct {
	params    Params
	evaluator *Evaluator
	rng       *rand.Rand

	// Progress, when set, is called with (generation, bestFitness) every
	// tenth generation and on the final one.
	Progress func(generation int, bestFitness float64)
}

// NewEngine validates the hyperparameters and seeds the engine RNG.
func NewEngine(params Params, evaluator *Evaluator) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if evaluator == nil {
		return nil, fmt.Errorf("engine requires a fitness evaluator")
	}
	return &Engine{
		params:    params,
		evaluator: evaluator,
		rng:       rand.New(rand.NewSource(params.Seed)),
	}, nil
}

// Run executes the configured number of generations. The context is checked
// between generations; on cancellation the best-so-far result is returned
// with Cancelled set. Best-so-far is only updated once a whole generation has
// been evaluated.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	pop, err := NewPopulation(e.params.PopulationSize, e.evaluator, e.rng)
	if err != nil {
		return nil, err
	}
	pop.TournamentSize = e.params.TournamentSize
	pop.CrossoverProb = e.params.CrossoverProb
	pop.MutationProb = e.params.MutationProb
	pop.Elitist = e.params.Elitist
	pop.Workers = e.params.Workers

	if err := pop.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing population: %w", err)
	}

	best, bestFitness := pop.Best()
	result := &Result{
		BestGenes:   append([]float64{}, best.Genes...),
		BestFitness: bestFitness,
	}

	for g := 1; g <= e.params.Generations; g++ {
		select {
		case <-ctx.Done():
			monitoring.Logf("ga: cancelled at generation %d, best fitness %.6f", g-1, result.BestFitness)
			result.Cancelled = true
			return result, nil
		default:
		}

		if err := pop.Evolve(); err != nil {
			return nil, fmt.Errorf("generation %d: %w", g, err)
		}

		if genBest, genFitness := pop.Best(); genFitness > result.BestFitness {
			result.BestFitness = genFitness
			result.BestGenes = append(result.BestGenes[:0], genBest.Genes...)
		}
		result.Generations = g
		result.History = append(result.History, GenerationStats{Generation: g, BestFitness: result.BestFitness})

		if g%10 == 0 || g == e.params.Generations {
			monitoring.Logf("ga: generation %d best fitness %.6f", g, result.BestFitness)
			if e.Progress != nil {
				e.Progress(g, result.BestFitness)
			}
		}
	}

	return result, nil
}
