package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/Chopan22/ADS-B-Detection/internal/fuzzy"
	"github.com/Chopan22/ADS-B-Detection/internal/monitoring"
	"github.com/Chopan22/ADS-B-Detection/internal/preprocess"
)

// topErrorCount is the number of worst predictions listed in the error report.
const topErrorCount = 20

// featureColumns is the feature order in the predictions CSV.
var featureColumns = []string{
	fuzzy.VarSpeedChange,
	fuzzy.VarHeadingChange,
	fuzzy.VarVerticalRateChange,
	fuzzy.VarAltitudeChange,
	fuzzy.VarTimeGap,
}

// WritePredictionsCSV writes one row per sample with expected and predicted
// scores, signed and absolute errors, and the input features.
func WritePredictionsCSV(w io.Writer, samples []preprocess.Sample, predicted []float64) error {
	if len(samples) != len(predicted) {
		return fmt.Errorf("have %d samples but %d predictions", len(samples), len(predicted))
	}

	cw := csv.NewWriter(w)
	header := append([]string{"Index", "Expected", "Predicted", "Error", "AbsError"}, featureColumns...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, s := range samples {
		errVal := predicted[i] - s.Target
		row := []string{
			strconv.Itoa(i),
			formatFloat(s.Target),
			formatFloat(predicted[i]),
			formatFloat(errVal),
			formatFloat(math.Abs(errVal)),
		}
		for _, col := range featureColumns {
			row = append(row, formatFloat(s.Inputs[col]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteErrorAnalysis writes a ranked table of the largest absolute errors.
func WriteErrorAnalysis(w io.Writer, samples []preprocess.Sample, predicted []float64) error {
	if len(samples) != len(predicted) {
		return fmt.Errorf("have %d samples but %d predictions", len(samples), len(predicted))
	}

	type errorSample struct {
		index    int
		expected float64
		actual   float64
		absErr   float64
	}
	errs := make([]errorSample, len(samples))
	for i, s := range samples {
		errs[i] = errorSample{
			index:    i,
			expected: s.Target,
			actual:   predicted[i],
			absErr:   math.Abs(predicted[i] - s.Target),
		}
	}
	sort.Slice(errs, func(i, j int) bool { return errs[i].absErr > errs[j].absErr })

	fmt.Fprintf(w, "Error Analysis Report\n")
	fmt.Fprintf(w, "=====================\n\n")
	fmt.Fprintf(w, "Top %d Largest Errors:\n", topErrorCount)
	fmt.Fprintf(w, "%6s %8s %12s %12s %12s\n", "Rank", "Index", "Expected", "Predicted", "AbsError")

	limit := topErrorCount
	if limit > len(errs) {
		limit = len(errs)
	}
	for i := 0; i < limit; i++ {
		e := errs[i]
		fmt.Fprintf(w, "%6d %8d %12.4f %12.4f %12.4f\n", i+1, e.index, e.expected, e.actual, e.absErr)
	}
	return nil
}

// MetricsSet pairs baseline and optimized metrics over both splits.
type MetricsSet struct {
	BaselineTrain Metrics
	BaselineVal   Metrics
	OptTrain      Metrics
	OptVal        Metrics
}

// WriteMetricsSummary writes the F1/accuracy/MSE comparison table.
func WriteMetricsSummary(w io.Writer, set MetricsSet) error {
	fmt.Fprintf(w, "Metrics Summary\n")
	fmt.Fprintf(w, "===============\n\n")
	fmt.Fprintf(w, "%-20s %-15s %-15s %-15s %-15s\n", "Metric", "Baseline Train", "Baseline Val", "Opt Train", "Opt Val")

	row := func(name string, f func(Metrics) float64) {
		fmt.Fprintf(w, "%-20s %-15.4f %-15.4f %-15.4f %-15.4f\n", name,
			f(set.BaselineTrain), f(set.BaselineVal), f(set.OptTrain), f(set.OptVal))
	}
	row("F1 Score", Metrics.F1)
	row("Accuracy", Metrics.Accuracy)
	row("MSE", func(m Metrics) float64 { return m.MSE })
	row("MAE", func(m Metrics) float64 { return m.MAE })
	row("RMSE", func(m Metrics) float64 { return m.RMSE })
	row("R2", func(m Metrics) float64 { return m.RSquared })
	return nil
}

// SaveReports writes the prediction CSV, error analysis and metrics summary
// into dir, creating it if needed.
func SaveReports(dir string, valSamples []preprocess.Sample, valPredicted []float64, set MetricsSet) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating report dir: %w", err)
	}

	if err := writeFile(filepath.Join(dir, "predictions.csv"), func(w io.Writer) error {
		return WritePredictionsCSV(w, valSamples, valPredicted)
	}); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, "error_analysis.txt"), func(w io.Writer) error {
		return WriteErrorAnalysis(w, valSamples, valPredicted)
	}); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, "metrics_summary.txt"), func(w io.Writer) error {
		return WriteMetricsSummary(w, set)
	}); err != nil {
		return err
	}

	monitoring.Logf("analysis: reports written to %s", dir)
	return nil
}

// LogMetrics prints one metrics block through the package logger.
func LogMetrics(label string, m Metrics) {
	monitoring.Logf("%s: MSE=%.4f MAE=%.4f RMSE=%.4f R2=%.4f", label, m.MSE, m.MAE, m.RMSE, m.RSquared)
	monitoring.Logf("%s: accuracy=%.4f precision=%.4f recall=%.4f F1=%.4f", label, m.Accuracy(), m.Precision(), m.Recall(), m.F1())
	monitoring.Logf("%s: confusion TN=%d FP=%d FN=%d TP=%d", label, m.TrueNegatives, m.FalsePositives, m.FalseNegatives, m.TruePositives)
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := fn(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
