package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chopan22/ADS-B-Detection/internal/ga"
	"github.com/Chopan22/ADS-B-Detection/internal/monitoring"
	"github.com/Chopan22/ADS-B-Detection/internal/synth"
	"github.com/Chopan22/ADS-B-Detection/internal/trainstore"
)

func init() {
	monitoring.SetLogger(nil)
}

func TestRunRequiresCSVPath(t *testing.T) {
	require.Error(t, run(nil))
}

func TestRunMissingFileFails(t *testing.T) {
	require.Error(t, run([]string{filepath.Join(t.TempDir(), "missing.csv")}))
}

func TestTrainingPipelineEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping end-to-end pipeline in short mode")
	}

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "synthetic.csv")
	f, err := os.Create(csvPath)
	require.NoError(t, err)
	require.NoError(t, synth.WriteCSV(f, 600, 1337))
	require.NoError(t, f.Close())

	params := ga.DefaultParams()
	params.PopulationSize = 8
	params.Generations = 3
	params.Seed = 5

	dbPath := filepath.Join(dir, "runs.db")
	reportDir := filepath.Join(dir, "results")
	err = runTraining(context.Background(), trainingOptions{
		csvPath:    csvPath,
		params:     params,
		trainSplit: 0.8,
		outputFile: filepath.Join(reportDir, "predictions.csv"),
		reportDir:  reportDir,
		dbPath:     dbPath,
	})
	require.NoError(t, err)

	for _, name := range []string{"predictions.csv", "error_analysis.txt", "metrics_summary.txt", "training.html"} {
		_, err := os.Stat(filepath.Join(reportDir, name))
		assert.NoError(t, err, name)
	}
	_, err = os.Stat(filepath.Join(reportDir, "membership", "mf_AnomalyLevel.png"))
	assert.NoError(t, err)

	store, err := trainstore.Open(dbPath)
	require.NoError(t, err)
	defer store.Close()
	runs, err := store.List(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, csvPath, runs[0].DatasetPath)
	assert.Greater(t, runs[0].BestFitness, 0.0)
}
