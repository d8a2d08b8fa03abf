package analysis

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Chopan22/ADS-B-Detection/internal/fuzzy"
	"github.com/Chopan22/ADS-B-Detection/internal/ga"
)

// mfPlotSamples is the per-curve sample count for membership plots.
const mfPlotSamples = 200

var mfColors = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
}

// SaveMembershipPlots renders one PNG per variable showing each term's
// membership curve for the given gene vector. Files are named
// mf_<variable>.png under dir.
func SaveMembershipPlots(dir string, genes []float64) error {
	if len(genes) != ga.TotalGenes {
		return fmt.Errorf("gene vector has %d genes, want %d", len(genes), ga.TotalGenes)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating plot dir: %w", err)
	}

	slices := ga.BlockSlices(genes)
	specs := append(append([]fuzzy.VariableSpec{}, fuzzy.InputSpecs...), fuzzy.OutputSpec)
	for i, spec := range specs {
		v, err := fuzzy.BuildVariable(spec, slices[i])
		if err != nil {
			return err
		}
		path := filepath.Join(dir, fmt.Sprintf("mf_%s.png", spec.Name))
		if err := plotVariable(v, path); err != nil {
			return err
		}
	}
	return nil
}

func plotVariable(v fuzzy.Variable, path string) error {
	p := plot.New()
	p.Title.Text = v.Name
	p.X.Label.Text = v.Name
	p.Y.Label.Text = "membership"
	p.Y.Min = 0
	p.Y.Max = 1.05

	step := (v.Max - v.Min) / float64(mfPlotSamples-1)
	for i, mf := range v.MFs {
		pts := make(plotter.XYs, mfPlotSamples)
		for j := 0; j < mfPlotSamples; j++ {
			x := v.Min + float64(j)*step
			mu := mf.Evaluate(x)
			if mu < 0 {
				mu = 0
			}
			if mu > 1 {
				mu = 1
			}
			pts[j] = plotter.XY{X: x, Y: mu}
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = mfColors[i%len(mfColors)]
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(mf.Label, line)
	}

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
