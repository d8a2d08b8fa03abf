package analysis

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Chopan22/ADS-B-Detection/internal/ga"
	"github.com/Chopan22/ADS-B-Detection/internal/preprocess"
)

// SaveTrainingChart renders an HTML page with the best-fitness curve over
// generations and an expected-vs-predicted scatter on the validation split.
func SaveTrainingChart(path string, history []ga.GenerationStats, valSamples []preprocess.Sample, valPredicted []float64) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating chart dir: %w", err)
		}
	}

	page := components.NewPage()
	page.AddCharts(fitnessChart(history), predictionScatter(valSamples, valPredicted))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer f.Close()
	return page.Render(f)
}

func fitnessChart(history []ga.GenerationStats) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "ADS-B anomaly FIS training", Width: "900px", Height: "450px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "GA convergence",
			Subtitle: fmt.Sprintf("%d generations", len(history)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Generation"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Best fitness"}),
	)

	xs := make([]int, len(history))
	ys := make([]opts.LineData, len(history))
	for i, h := range history {
		xs[i] = h.Generation
		ys[i] = opts.LineData{Value: h.BestFitness}
	}
	line.SetXAxis(xs).AddSeries("best fitness", ys)
	return line
}

func predictionScatter(samples []preprocess.Sample, predicted []float64) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "600px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Validation predictions",
			Subtitle: fmt.Sprintf("%d samples", len(samples)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Expected", Min: 0, Max: 1}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Predicted", Min: 0, Max: 1}),
	)

	data := make([]opts.ScatterData, 0, len(samples))
	for i, s := range samples {
		if i >= len(predicted) {
			break
		}
		data = append(data, opts.ScatterData{Value: []interface{}{s.Target, predicted[i]}})
	}
	scatter.AddSeries("samples", data)
	return scatter
}
