package analysis

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chopan22/ADS-B-Detection/internal/preprocess"
)

func TestWritePredictionsCSV(t *testing.T) {
	samples := []preprocess.Sample{
		sampleRow(1, -5, 0.5, 100, 2, 0.0),
		sampleRow(8, 120, 0, 0, 1, 1.0),
	}
	predicted := []float64{0.1, 0.8}

	var buf bytes.Buffer
	require.NoError(t, WritePredictionsCSV(&buf, samples, predicted))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	wantHeader := []string{"Index", "Expected", "Predicted", "Error", "AbsError",
		"SpeedChange", "HeadingChange", "VerticalRateChange", "AltitudeChange", "TimeGap"}
	assert.Equal(t, wantHeader, records[0])

	assert.Equal(t, "0", records[1][0])
	assert.Equal(t, "0", records[1][1])
	assert.Equal(t, "0.1", records[1][2])
	assert.Equal(t, "1", records[2][1])
	assert.Equal(t, "8", records[2][5])
}

func TestWritePredictionsCSVLengthMismatch(t *testing.T) {
	err := WritePredictionsCSV(&bytes.Buffer{}, []preprocess.Sample{sampleRow(0, 0, 0, 0, 1, 0)}, nil)
	require.Error(t, err)
}

func TestWriteErrorAnalysisRanksByAbsError(t *testing.T) {
	samples := []preprocess.Sample{
		sampleRow(0, 0, 0, 0, 1, 0.0),
		sampleRow(8, 120, 0, 0, 1, 1.0),
		sampleRow(2, 0, 0, 0, 1, 0.2),
	}
	predicted := []float64{0.05, 0.2, 0.25} // abs errors 0.05, 0.8, 0.05

	var buf bytes.Buffer
	require.NoError(t, WriteErrorAnalysis(&buf, samples, predicted))

	out := buf.String()
	assert.Contains(t, out, "Error Analysis Report")

	// The worst prediction (sample index 1, abs error 0.8) ranks first.
	lines := strings.Split(out, "\n")
	var firstDataLine string
	for i, line := range lines {
		if strings.Contains(line, "Rank") && i+1 < len(lines) {
			firstDataLine = lines[i+1]
			break
		}
	}
	require.NotEmpty(t, firstDataLine)
	fields := strings.Fields(firstDataLine)
	require.GreaterOrEqual(t, len(fields), 5)
	assert.Equal(t, "1", fields[0])
	assert.Equal(t, "1", fields[1])
}

func TestWriteMetricsSummaryTable(t *testing.T) {
	set := MetricsSet{
		BaselineTrain: Metrics{MSE: 0.2},
		BaselineVal:   Metrics{MSE: 0.25},
		OptTrain:      Metrics{MSE: 0.05},
		OptVal:        Metrics{MSE: 0.08},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMetricsSummary(&buf, set))

	out := buf.String()
	assert.Contains(t, out, "Metrics Summary")
	assert.Contains(t, out, "F1 Score")
	assert.Contains(t, out, "Accuracy")
	assert.Contains(t, out, "MSE")
	assert.Contains(t, out, "0.2000")
	assert.Contains(t, out, "0.0800")
}

func TestSaveReportsWritesAllFiles(t *testing.T) {
	dir := t.TempDir()
	samples := []preprocess.Sample{
		sampleRow(0, 0, 0, 0, 1, 0.0),
		sampleRow(8, 120, 0, 0, 1, 1.0),
	}
	predicted := []float64{0.1, 0.8}

	require.NoError(t, SaveReports(dir, samples, predicted, MetricsSet{}))

	for _, name := range []string{"predictions.csv", "error_analysis.txt", "metrics_summary.txt"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}
