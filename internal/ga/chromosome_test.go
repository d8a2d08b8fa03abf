package ga

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultChromosomeIsValid(t *testing.T) {
	c := NewDefaultChromosome()
	if err := c.Validate(); err != nil {
		t.Fatalf("default chromosome invalid: %v", err)
	}
}

func TestRepairIsNoOpOnValidChromosome(t *testing.T) {
	c := NewDefaultChromosome()
	before := append([]float64{}, c.Genes...)
	c.Repair()
	if diff := cmp.Diff(before, c.Genes); diff != "" {
		t.Errorf("repair changed a valid chromosome (-want +got):\n%s", diff)
	}
}

func TestBoundsDerivationIsPure(t *testing.T) {
	c := NewDefaultChromosome()
	first := append([]GeneBounds{}, c.Bounds...)
	c.UpdateBounds()
	if diff := cmp.Diff(first, c.Bounds); diff != "" {
		t.Errorf("re-deriving bounds from unchanged genes differed (-want +got):\n%s", diff)
	}
}

func TestBoundsRespectDomains(t *testing.T) {
	c := NewDefaultChromosome()
	for _, blk := range Layout {
		for off := 0; off < blk.Size; off++ {
			i := blk.Start + off
			if c.Bounds[i].Min < blk.Min {
				t.Errorf("gene %d bound min %v below domain min %v", i, c.Bounds[i].Min, blk.Min)
			}
			if c.Bounds[i].Max > blk.Max {
				t.Errorf("gene %d bound max %v above domain max %v", i, c.Bounds[i].Max, blk.Max)
			}
		}
	}
}

func TestMutatePreservesInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		c := NewDefaultChromosome()
		c.Mutate(0.9, rng)
		if err := c.Validate(); err != nil {
			t.Fatalf("trial %d: mutated chromosome invalid: %v", trial, err)
		}
	}
}

func TestMutateRateZeroChangesNothing(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	c := NewDefaultChromosome()
	before := append([]float64{}, c.Genes...)
	c.Mutate(0, rng)
	if diff := cmp.Diff(before, c.Genes); diff != "" {
		t.Errorf("zero-rate mutation changed genes (-want +got):\n%s", diff)
	}
}

func TestCrossoverPreservesInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		p1 := NewDefaultChromosome()
		p1.Mutate(0.9, rng)
		p2 := NewDefaultChromosome()
		p2.Mutate(0.9, rng)

		c1, c2 := p1.Crossover(p2, rng)
		if err := c1.Validate(); err != nil {
			t.Fatalf("trial %d: child1 invalid: %v", trial, err)
		}
		if err := c2.Validate(); err != nil {
			t.Fatalf("trial %d: child2 invalid: %v", trial, err)
		}

		// Parents are untouched by crossover.
		if err := p1.Validate(); err != nil {
			t.Fatalf("trial %d: parent1 corrupted: %v", trial, err)
		}
		if err := p2.Validate(); err != nil {
			t.Fatalf("trial %d: parent2 corrupted: %v", trial, err)
		}
	}
}

func TestGenesNonDecreasingAfterOperators(t *testing.T) {
	// The neighbour-index bounds keep genes non-decreasing at stride two:
	// within each MF and across the overlap of adjacent MFs.
	rng := rand.New(rand.NewSource(99))
	for trial := 0; trial < 100; trial++ {
		c := NewDefaultChromosome()
		c.Mutate(0.9, rng)
		other := NewDefaultChromosome()
		other.Mutate(0.9, rng)
		c, _ = c.Crossover(other, rng)

		for _, blk := range Layout {
			for off := 0; off+2 < blk.Size; off++ {
				i := blk.Start + off
				if c.Genes[i] > c.Genes[i+2] {
					t.Fatalf("trial %d: gene %d (%v) > gene %d (%v)", trial, i, c.Genes[i], i+2, c.Genes[i+2])
				}
			}
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	c := NewDefaultChromosome()
	clone := c.Clone()
	clone.Genes[0] = -9.99
	clone.Bounds[0].Min = -9.99
	if c.Genes[0] == -9.99 || c.Bounds[0].Min == -9.99 {
		t.Error("clone shares backing arrays with the original")
	}
}
