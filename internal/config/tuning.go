// Package config loads the optional JSON tuning file for the training CLI.
// Fields are pointer-typed so a partial file only overrides what it names;
// the Get* methods supply defaults for everything else.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Chopan22/ADS-B-Detection/internal/ga"
)

// TuningConfig is the root configuration: GA hyperparameters, the dataset
// split and output locations. Flags override file values.
type TuningConfig struct {
	// GA hyperparameters
	PopulationSize *int     `json:"population_size,omitempty"`
	Generations    *int     `json:"generations,omitempty"`
	CrossoverProb  *float64 `json:"crossover_prob,omitempty"`
	MutationProb   *float64 `json:"mutation_prob,omitempty"`
	TournamentSize *int     `json:"tournament_size,omitempty"`
	Elitist        *bool    `json:"elitist,omitempty"`
	Workers        *int     `json:"workers,omitempty"`
	Seed           *int64   `json:"seed,omitempty"`

	// Dataset handling
	TrainSplit *float64 `json:"train_split,omitempty"`

	// Output
	OutputFile *string `json:"output_file,omitempty"`
	ReportDir  *string `json:"report_dir,omitempty"`
	DBFile     *string `json:"db_file,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with every field unset.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig reads and validates a JSON tuning file. Fields omitted
// from the file keep their defaults, so partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks every set field.
func (c *TuningConfig) Validate() error {
	if c.PopulationSize != nil && *c.PopulationSize <= 0 {
		return fmt.Errorf("population_size must be > 0, got %d", *c.PopulationSize)
	}
	if c.Generations != nil && *c.Generations <= 0 {
		return fmt.Errorf("generations must be > 0, got %d", *c.Generations)
	}
	if c.CrossoverProb != nil && (*c.CrossoverProb < 0 || *c.CrossoverProb > 1) {
		return fmt.Errorf("crossover_prob must be between 0 and 1, got %f", *c.CrossoverProb)
	}
	if c.MutationProb != nil && (*c.MutationProb < 0 || *c.MutationProb > 1) {
		return fmt.Errorf("mutation_prob must be between 0 and 1, got %f", *c.MutationProb)
	}
	if c.TournamentSize != nil && *c.TournamentSize < 1 {
		return fmt.Errorf("tournament_size must be >= 1, got %d", *c.TournamentSize)
	}
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *c.Workers)
	}
	if c.TrainSplit != nil && (*c.TrainSplit <= 0 || *c.TrainSplit >= 1) {
		return fmt.Errorf("train_split must be strictly between 0 and 1, got %f", *c.TrainSplit)
	}
	return nil
}

// GAParams folds the configured values over the reference GA defaults.
func (c *TuningConfig) GAParams() ga.Params {
	p := ga.DefaultParams()
	if c.PopulationSize != nil {
		p.PopulationSize = *c.PopulationSize
	}
	if c.Generations != nil {
		p.Generations = *c.Generations
	}
	if c.CrossoverProb != nil {
		p.CrossoverProb = *c.CrossoverProb
	}
	if c.MutationProb != nil {
		p.MutationProb = *c.MutationProb
	}
	if c.TournamentSize != nil {
		p.TournamentSize = *c.TournamentSize
	}
	if c.Elitist != nil {
		p.Elitist = *c.Elitist
	}
	if c.Workers != nil {
		p.Workers = *c.Workers
	}
	if c.Seed != nil {
		p.Seed = *c.Seed
	}
	return p
}

// GetTrainSplit returns the train ratio or the default.
func (c *TuningConfig) GetTrainSplit() float64 {
	if c.TrainSplit == nil {
		return 0.8
	}
	return *c.TrainSplit
}

// GetOutputFile returns the predictions output path or the default.
func (c *TuningConfig) GetOutputFile() string {
	if c.OutputFile == nil || *c.OutputFile == "" {
		return "results/predictions.csv"
	}
	return *c.OutputFile
}

// GetReportDir returns the report directory or the default.
func (c *TuningConfig) GetReportDir() string {
	if c.ReportDir == nil || *c.ReportDir == "" {
		return "results"
	}
	return *c.ReportDir
}

// GetDBFile returns the run database path, empty when persistence is off.
func (c *TuningConfig) GetDBFile() string {
	if c.DBFile == nil {
		return ""
	}
	return *c.DBFile
}
