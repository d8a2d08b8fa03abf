package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Chopan22/ADS-B-Detection/internal/analysis"
	"github.com/Chopan22/ADS-B-Detection/internal/config"
	"github.com/Chopan22/ADS-B-Detection/internal/ga"
	"github.com/Chopan22/ADS-B-Detection/internal/preprocess"
	"github.com/Chopan22/ADS-B-Detection/internal/trainstore"
	"github.com/Chopan22/ADS-B-Detection/internal/version"
)

// run parses arguments and executes the training pipeline.
func run(args []string) error {
	if len(args) < 1 || args[0] == "-h" || args[0] == "--help" {
		printUsage()
		if len(args) < 1 {
			return fmt.Errorf("missing CSV path")
		}
		return nil
	}
	if args[0] == "--version" {
		fmt.Println("adsb-tune " + version.String())
		return nil
	}
	csvPath := args[0]

	fs := flag.NewFlagSet("adsb-tune", flag.ContinueOnError)
	var (
		generations = fs.Int("generations", 0, "Number of GA generations (default 30)")
		population  = fs.Int("population", 0, "Population size (default 100)")
		trainSplit  = fs.Float64("train-split", 0, "Train fraction in (0,1) (default 0.8)")
		output      = fs.String("output", "", "Predictions CSV path (default results/predictions.csv)")
		seed        = fs.Int64("seed", 0, "RNG seed (default 1)")
		elitist     = fs.Bool("elitist", true, "Merge parents and offspring, keep top-N")
		parallel    = fs.Int("parallel", 0, "Worker goroutines for population evaluation (default 1)")
		configPath  = fs.String("config", "", "JSON tuning config file")
		dbFile      = fs.String("db", "", "Optional sqlite run database")
		reportDir   = fs.String("report-dir", "", "Report output directory (default results)")
	)
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	cfg := config.EmptyTuningConfig()
	if *configPath != "" {
		loaded, err := config.LoadTuningConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	params := cfg.GAParams()
	if *generations > 0 {
		params.Generations = *generations
	}
	if *population > 0 {
		params.PopulationSize = *population
	}
	if *seed != 0 {
		params.Seed = *seed
	}
	if *parallel > 0 {
		params.Workers = *parallel
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "elitist" {
			params.Elitist = *elitist
		}
	})

	split := cfg.GetTrainSplit()
	if *trainSplit > 0 {
		split = *trainSplit
	}
	outFile := cfg.GetOutputFile()
	if *output != "" {
		outFile = *output
	}
	reports := cfg.GetReportDir()
	if *reportDir != "" {
		reports = *reportDir
	}
	dbPath := cfg.GetDBFile()
	if *dbFile != "" {
		dbPath = *dbFile
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runTraining(ctx, trainingOptions{
		csvPath:    csvPath,
		params:     params,
		trainSplit: split,
		outputFile: outFile,
		reportDir:  reports,
		dbPath:     dbPath,
	})
}

type trainingOptions struct {
	csvPath    string
	params     ga.Params
	trainSplit float64
	outputFile string
	reportDir  string
	dbPath     string
}

// runTraining executes the full pipeline: preprocess, baseline, optimize,
// validate, report and optionally persist.
func runTraining(ctx context.Context, opts trainingOptions) error {
	pre := preprocess.New(preprocess.DefaultConfig())
	samples, err := pre.Process(opts.csvPath)
	if err != nil {
		return err
	}

	splitRNG := rand.New(rand.NewSource(opts.params.Seed))
	train, val, err := preprocess.Split(samples, opts.trainSplit, splitRNG)
	if err != nil {
		return err
	}
	log.Printf("dataset: %d train / %d validation samples", len(train), len(val))

	trainInputs, trainTargets := preprocess.Batch(train)
	evaluator, err := ga.NewEvaluator(trainInputs, trainTargets)
	if err != nil {
		return err
	}
	evaluator.Workers = opts.params.Workers

	// Baseline: the expert default chromosome, untouched.
	baseline := ga.NewDefaultChromosome()
	baselineFitness, err := evaluator.Evaluate(baseline)
	if err != nil {
		return err
	}
	log.Printf("baseline fitness on training split: %.6f", baselineFitness)

	engine, err := ga.NewEngine(opts.params, evaluator)
	if err != nil {
		return err
	}
	result, err := engine.Run(ctx)
	if err != nil {
		return err
	}
	log.Printf("optimized fitness after %d generations: %.6f", result.Generations, result.BestFitness)

	// Validate both chromosomes on both splits.
	var set analysis.MetricsSet
	if set.BaselineTrain, _, err = analysis.Evaluate(train, baseline.Genes, analysis.DefaultThreshold); err != nil {
		return err
	}
	if set.BaselineVal, _, err = analysis.Evaluate(val, baseline.Genes, analysis.DefaultThreshold); err != nil {
		return err
	}
	if set.OptTrain, _, err = analysis.Evaluate(train, result.BestGenes, analysis.DefaultThreshold); err != nil {
		return err
	}
	var valPredicted []float64
	if set.OptVal, valPredicted, err = analysis.Evaluate(val, result.BestGenes, analysis.DefaultThreshold); err != nil {
		return err
	}

	analysis.LogMetrics("baseline/val", set.BaselineVal)
	analysis.LogMetrics("optimized/val", set.OptVal)

	if err := analysis.SaveReports(opts.reportDir, val, valPredicted, set); err != nil {
		return err
	}
	if opts.outputFile != filepath.Join(opts.reportDir, "predictions.csv") {
		if err := writePredictions(opts.outputFile, val, valPredicted); err != nil {
			return err
		}
	}
	if err := analysis.SaveTrainingChart(filepath.Join(opts.reportDir, "training.html"), result.History, val, valPredicted); err != nil {
		log.Printf("WARNING: could not render training chart: %v", err)
	}
	if err := analysis.SaveMembershipPlots(filepath.Join(opts.reportDir, "membership"), result.BestGenes); err != nil {
		log.Printf("WARNING: could not render membership plots: %v", err)
	}

	if opts.dbPath != "" {
		if err := persistRun(opts, result, baselineFitness, set, len(train), len(val)); err != nil {
			return err
		}
	}
	return nil
}

func writePredictions(path string, val []preprocess.Sample, predicted []float64) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()
	return analysis.WritePredictionsCSV(f, val, predicted)
}

func persistRun(opts trainingOptions, result *ga.Result, baselineFitness float64, set analysis.MetricsSet, trainN, valN int) error {
	store, err := trainstore.Open(opts.dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	paramsJSON, err := json.Marshal(opts.params)
	if err != nil {
		return err
	}
	genesJSON, err := json.Marshal(result.BestGenes)
	if err != nil {
		return err
	}
	historyJSON, err := json.Marshal(result.History)
	if err != nil {
		return err
	}

	run := &trainstore.Run{
		DatasetPath:     opts.csvPath,
		TrainSamples:    trainN,
		ValSamples:      valN,
		Seed:            opts.params.Seed,
		ParamsJSON:      paramsJSON,
		BaselineFitness: baselineFitness,
		BestFitness:     result.BestFitness,
		BaselineValMSE:  set.BaselineVal.MSE,
		OptimizedValMSE: set.OptVal.MSE,
		OptimizedValF1:  set.OptVal.F1(),
		BestGenesJSON:   genesJSON,
		HistoryJSON:     historyJSON,
	}
	if err := store.Insert(run); err != nil {
		return err
	}
	log.Printf("run %s persisted to %s", run.RunID, opts.dbPath)
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: adsb-tune <csv_path> [flags]

Flags:
  --generations N    GA generations (default 30)
  --population N     population size (default 100)
  --train-split R    train fraction in (0,1) (default 0.8)
  --output FILE      predictions CSV path
  --seed N           RNG seed (default 1)
  --elitist          elitist replacement (default true)
  --parallel N       evaluation worker goroutines
  --config FILE      JSON tuning config
  --db FILE          sqlite run database
  --report-dir DIR   report output directory (default results)
`)
}
