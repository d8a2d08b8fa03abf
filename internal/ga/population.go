package ga

import (
	"fmt"
	"math/rand"
	"sync"
)

// initMutationRate is the high-rate mutation applied to each default clone
// during population seeding, spreading the initial population across the
// feasible region.
const initMutationRate = 0.9

// Population is a fixed-size set of chromosomes with their fitness values.
type Population struct {
	size      int
	evaluator *Evaluator
	rng       *rand.Rand

	TournamentSize int
	CrossoverProb  float64
	MutationProb   float64

	// Elitist selects the replacement policy: when true, parents and
	// offspring are merged and the top-N by fitness survive; when false the
	// offspring replace the parents wholesale.
	Elitist bool

	// Workers > 1 evaluates chromosomes concurrently. Evaluation is pure, so
	// parallel results match the sequential reference exactly.
	Workers int

	chromosomes []*Chromosome
	fitness     []float64
}

// NewPopulation creates an uninitialized population of the given size.
func NewPopulation(size int, evaluator *Evaluator, rng *rand.Rand) (*Population, error) {
	if size <= 0 {
		return nil, fmt.Errorf("population size must be > 0, got %d", size)
	}
	if evaluator == nil {
		return nil, fmt.Errorf("population requires a fitness evaluator")
	}
	return &Population{
		size:           size,
		evaluator:      evaluator,
		rng:            rng,
		TournamentSize: 3,
		CrossoverProb:  0.8,
		MutationProb:   0.2,
		Elitist:        true,
		Workers:        1,
	}, nil
}

// Initialize seeds the population with heavily mutated copies of the default
// chromosome and evaluates them.
func (p *Population) Initialize() error {
	p.chromosomes = make([]*Chromosome, p.size)
	for i := range p.chromosomes {
		c := NewDefaultChromosome()
		c.Mutate(initMutationRate, p.rng)
		p.chromosomes[i] = c
	}

	var err error
	p.fitness, err = p.evaluateAll(p.chromosomes)
	return err
}

// Size returns the configured population size.
func (p *Population) Size() int { return p.size }

// Best returns the fittest chromosome and its fitness.
func (p *Population) Best() (*Chromosome, float64) {
	bestIdx := 0
	for i := 1; i < len(p.fitness); i++ {
		if p.fitness[i] > p.fitness[bestIdx] {
			bestIdx = i
		}
	}
	return p.chromosomes[bestIdx], p.fitness[bestIdx]
}

// TournamentSelect draws TournamentSize indices uniformly with replacement
// and returns the chromosome with the highest fitness among them.
func (p *Population) TournamentSelect() *Chromosome {
	bestIdx := p.rng.Intn(len(p.chromosomes))
	bestFit := p.fitness[bestIdx]
	for i := 1; i < p.TournamentSize; i++ {
		idx := p.rng.Intn(len(p.chromosomes))
		if p.fitness[idx] > bestFit {
			bestIdx = idx
			bestFit = p.fitness[idx]
		}
	}
	return p.chromosomes[bestIdx]
}

// Evolve produces one generation: tournament parents, probabilistic crossover
// and mutation, then replacement under the configured policy. The population
// is never observed half-built; chromosomes and fitness swap in together.
func (p *Population) Evolve() error {
	offspring := make([]*Chromosome, 0, p.size)

	for len(offspring) < p.size {
		parent1 := p.TournamentSelect()
		parent2 := p.TournamentSelect()

		var child1, child2 *Chromosome
		if p.rng.Float64() < p.CrossoverProb {
			child1, child2 = parent1.Crossover(parent2, p.rng)
		} else {
			child1 = parent1.Clone()
			child2 = parent2.Clone()
		}

		if p.rng.Float64() < p.MutationProb {
			child1.Mutate(p.MutationProb, p.rng)
		}
		if p.rng.Float64() < p.MutationProb {
			child2.Mutate(p.MutationProb, p.rng)
		}

		offspring = append(offspring, child1)
		if len(offspring) < p.size {
			offspring = append(offspring, child2)
		}
	}

	offspringFitness, err := p.evaluateAll(offspring)
	if err != nil {
		return err
	}

	if !p.Elitist {
		p.chromosomes = offspring
		p.fitness = offspringFitness
		return nil
	}

	// Merge parents and offspring, keep the top-N by fitness.
	combined := append(append([]*Chromosome{}, p.chromosomes...), offspring...)
	combinedFitness := append(append([]float64{}, p.fitness...), offspringFitness...)

	indices := make([]int, len(combined))
	for i := range indices {
		indices[i] = i
	}
	// Stable insertion order under ties keeps runs reproducible.
	sortByFitnessDesc(indices, combinedFitness)

	next := make([]*Chromosome, p.size)
	nextFitness := make([]float64, p.size)
	for i := 0; i < p.size; i++ {
		next[i] = combined[indices[i]]
		nextFitness[i] = combinedFitness[indices[i]]
	}
	p.chromosomes = next
	p.fitness = nextFitness
	return nil
}

// evaluateAll computes fitness for every chromosome, fanned out across
// Workers goroutines when configured.
func (p *Population) evaluateAll(chs []*Chromosome) ([]float64, error) {
	fitness := make([]float64, len(chs))

	if p.Workers <= 1 {
		for i, c := range chs {
			f, err := p.evaluator.Evaluate(c)
			if err != nil {
				return nil, err
			}
			fitness[i] = f
		}
		return fitness, nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	next := make(chan int, len(chs))
	for i := range chs {
		next <- i
	}
	close(next)

	workers := p.Workers
	if workers > len(chs) {
		workers = len(chs)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				f, err := p.evaluator.Evaluate(chs[i])
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					return
				}
				fitness[i] = f
			}
		}()
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return fitness, nil
}

// sortByFitnessDesc sorts indices by fitness, highest first, preserving the
// original order of equal-fitness entries.
func sortByFitnessDesc(indices []int, fitness []float64) {
	// Insertion sort: population sizes are small and stability matters.
	for i := 1; i < len(indices); i++ {
		j := i
		for j > 0 && fitness[indices[j]] > fitness[indices[j-1]] {
			indices[j], indices[j-1] = indices[j-1], indices[j]
			j--
		}
	}
}
