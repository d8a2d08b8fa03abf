// Package ga tunes the fuzzy anomaly scorer's membership breakpoints with a
// real-coded genetic algorithm. The gene vector concatenates every breakpoint
// of every variable; ordering constraints between neighbouring breakpoints
// are enforced through per-gene bounds recomputed from the current genes.
package ga

import "github.com/Chopan22/ADS-B-Detection/internal/fuzzy"

// GeneBlock is one variable's contiguous slice of the gene vector.
type GeneBlock struct {
	Variable string
	Min      float64
	Max      float64
	Start    int
	Size     int
}

// Layout describes the gene vector: the five input variables in spec order
// followed by the output variable. It is derived once from the fuzzy variable
// inventory and drives slicing, bounds derivation and crossover.
var Layout = buildLayout()

// TotalGenes is the gene vector length across all blocks.
var TotalGenes = func() int {
	n := 0
	for _, b := range Layout {
		n += b.Size
	}
	return n
}()

func buildLayout() []GeneBlock {
	specs := append(append([]fuzzy.VariableSpec{}, fuzzy.InputSpecs...), fuzzy.OutputSpec)
	blocks := make([]GeneBlock, 0, len(specs))
	start := 0
	for _, s := range specs {
		blocks = append(blocks, GeneBlock{
			Variable: s.Name,
			Min:      s.Min,
			Max:      s.Max,
			Start:    start,
			Size:     s.ParamCount(),
		})
		start += s.ParamCount()
	}
	return blocks
}

// DefaultGenes returns the canonical expert gene vector in layout order.
func DefaultGenes() []float64 {
	genes := make([]float64, 0, TotalGenes)
	for _, b := range Layout {
		genes = append(genes, fuzzy.DefaultParams(b.Variable)...)
	}
	return genes
}

// BlockSlices cuts a gene vector into per-block slices in layout order.
func BlockSlices(genes []float64) [][]float64 {
	out := make([][]float64, len(Layout))
	for i, b := range Layout {
		out[i] = genes[b.Start : b.Start+b.Size]
	}
	return out
}
