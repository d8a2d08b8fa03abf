package ga

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Chopan22/ADS-B-Detection/internal/fuzzy"
)

var (
	// ErrShapeMismatch reports a labeled batch whose inputs and targets
	// differ in length.
	ErrShapeMismatch = errors.New("inputs and targets differ in length")

	// ErrEmptyBatch reports an attempt to evaluate fitness over zero samples.
	ErrEmptyBatch = errors.New("empty training batch")
)

// AssembleFIS builds the anomaly scorer with membership breakpoints taken
// from a full gene vector in Layout order.
func AssembleFIS(genes []float64) (*fuzzy.FIS, error) {
	if len(genes) != TotalGenes {
		return nil, fmt.Errorf("gene vector has %d genes, want %d", len(genes), TotalGenes)
	}
	slices := BlockSlices(genes)
	return fuzzy.NewAnomalyFIS(slices[:len(slices)-1], slices[len(slices)-1])
}

// Evaluator scores chromosomes against a labeled batch by weighted MSE.
// Samples with higher target anomaly carry more weight so the sparse anomalous
// timesteps are not drowned out by the bulk of nominal flight.
type Evaluator struct {
	inputs  []map[string]float64
	targets []float64

	// Workers > 1 splits per-sample FIS evaluation across goroutines.
	// Per-sample errors land in a fixed slice and are summed sequentially,
	// so results are identical to the sequential reference.
	Workers int
}

// NewEvaluator validates the batch shape.
func NewEvaluator(inputs []map[string]float64, targets []float64) (*Evaluator, error) {
	if len(inputs) != len(targets) {
		return nil, fmt.Errorf("%w: %d inputs, %d targets", ErrShapeMismatch, len(inputs), len(targets))
	}
	if len(inputs) == 0 {
		return nil, ErrEmptyBatch
	}
	return &Evaluator{inputs: inputs, targets: targets, Workers: 1}, nil
}

// Len returns the batch size.
func (e *Evaluator) Len() int { return len(e.inputs) }

// sampleWeight grades the squared error by the target anomaly level.
func sampleWeight(target float64) float64 {
	switch {
	case target >= 0.8:
		return 10.0
	case target >= 0.4:
		return 5.0
	case target > 0.0:
		return 2.0
	default:
		return 1.0
	}
}

// Evaluate assembles a FIS from the chromosome and returns
// 1 / (1 + weighted MSE) over the batch, always in (0, 1].
func (e *Evaluator) Evaluate(c *Chromosome) (float64, error) {
	fis, err := AssembleFIS(c.Genes)
	if err != nil {
		return 0, err
	}

	predicted := make([]float64, len(e.inputs))
	if e.Workers > 1 {
		if err := e.evaluateParallel(fis, predicted); err != nil {
			return 0, err
		}
	} else {
		for i, in := range e.inputs {
			out, err := fis.Evaluate(in)
			if err != nil {
				return 0, err
			}
			predicted[i] = out
		}
	}

	var weightedErr, totalWeight float64
	for i, out := range predicted {
		target := e.targets[i]
		diff := out - target
		w := sampleWeight(target)
		weightedErr += w * diff * diff
		totalWeight += w
	}

	return 1.0 / (1.0 + weightedErr/totalWeight), nil
}

func (e *Evaluator) evaluateParallel(fis *fuzzy.FIS, predicted []float64) error {
	workers := e.Workers
	if workers > len(e.inputs) {
		workers = len(e.inputs)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	chunk := (len(e.inputs) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(e.inputs) {
			hi = len(e.inputs)
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				out, err := fis.Evaluate(e.inputs[i])
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					return
				}
				predicted[i] = out
			}
		}(lo, hi)
	}
	wg.Wait()
	return firstErr
}
