// Package analysis validates a tuned chromosome against held-out data and
// writes the result artifacts: prediction CSVs, error reports, metric
// summaries, membership plots and the fitness chart.
package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/Chopan22/ADS-B-Detection/internal/ga"
	"github.com/Chopan22/ADS-B-Detection/internal/preprocess"
)

// DefaultThreshold is the score above which a sample counts as anomalous for
// the confusion matrix.
const DefaultThreshold = 0.5

// Metrics holds regression and classification quality for one evaluation.
type Metrics struct {
	MSE      float64 `json:"mse"`
	MAE      float64 `json:"mae"`
	RMSE     float64 `json:"rmse"`
	RSquared float64 `json:"r_squared"`

	TruePositives  int `json:"true_positives"`
	FalsePositives int `json:"false_positives"`
	TrueNegatives  int `json:"true_negatives"`
	FalseNegatives int `json:"false_negatives"`
}

// Precision is TP / (TP + FP), zero when undefined.
func (m Metrics) Precision() float64 {
	total := m.TruePositives + m.FalsePositives
	if total == 0 {
		return 0
	}
	return float64(m.TruePositives) / float64(total)
}

// Recall is TP / (TP + FN), zero when undefined.
func (m Metrics) Recall() float64 {
	total := m.TruePositives + m.FalseNegatives
	if total == 0 {
		return 0
	}
	return float64(m.TruePositives) / float64(total)
}

// F1 is the harmonic mean of precision and recall.
func (m Metrics) F1() float64 {
	p, r := m.Precision(), m.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// Accuracy is the fraction of correctly classified samples.
func (m Metrics) Accuracy() float64 {
	total := m.TruePositives + m.TrueNegatives + m.FalsePositives + m.FalseNegatives
	if total == 0 {
		return 0
	}
	return float64(m.TruePositives+m.TrueNegatives) / float64(total)
}

// Predict runs the scorer built from genes over each sample.
func Predict(samples []preprocess.Sample, genes []float64) ([]float64, error) {
	fis, err := ga.AssembleFIS(genes)
	if err != nil {
		return nil, err
	}
	predicted := make([]float64, len(samples))
	for i, s := range samples {
		out, err := fis.Evaluate(s.Inputs)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		predicted[i] = out
	}
	return predicted, nil
}

// Evaluate scores the chromosome's predictions against the sample labels.
func Evaluate(samples []preprocess.Sample, genes []float64, threshold float64) (Metrics, []float64, error) {
	if len(samples) == 0 {
		return Metrics{}, nil, fmt.Errorf("no samples to evaluate")
	}
	predicted, err := Predict(samples, genes)
	if err != nil {
		return Metrics{}, nil, err
	}

	expected := make([]float64, len(samples))
	for i, s := range samples {
		expected[i] = s.Target
	}

	m := computeMetrics(expected, predicted, threshold)
	return m, predicted, nil
}

func computeMetrics(expected, predicted []float64, threshold float64) Metrics {
	var m Metrics
	var sumSq, sumAbs float64
	for i := range expected {
		err := predicted[i] - expected[i]
		sumSq += err * err
		sumAbs += math.Abs(err)

		predAnomaly := predicted[i] > threshold
		trueAnomaly := expected[i] > threshold
		switch {
		case predAnomaly && trueAnomaly:
			m.TruePositives++
		case predAnomaly && !trueAnomaly:
			m.FalsePositives++
		case !predAnomaly && !trueAnomaly:
			m.TrueNegatives++
		default:
			m.FalseNegatives++
		}
	}

	n := float64(len(expected))
	m.MSE = sumSq / n
	m.MAE = sumAbs / n
	m.RMSE = math.Sqrt(m.MSE)

	meanExpected := stat.Mean(expected, nil)
	var sumSqTotal float64
	for _, e := range expected {
		diff := e - meanExpected
		sumSqTotal += diff * diff
	}
	if sumSqTotal > 0 {
		m.RSquared = 1.0 - sumSq/sumSqTotal
	}
	return m
}
