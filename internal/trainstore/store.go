// Package trainstore persists training runs — hyperparameters, metrics and
// the best gene vector — in a local sqlite database so runs can be compared
// after the fact.
package trainstore

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Chopan22/ADS-B-Detection/internal/monitoring"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Run is one persisted training run.
type Run struct {
	RunID           string          `json:"run_id"`
	DatasetPath     string          `json:"dataset_path"`
	TrainSamples    int             `json:"train_samples"`
	ValSamples      int             `json:"val_samples"`
	Seed            int64           `json:"seed"`
	ParamsJSON      json.RawMessage `json:"params_json"`
	BaselineFitness float64         `json:"baseline_fitness"`
	BestFitness     float64         `json:"best_fitness"`
	BaselineValMSE  float64         `json:"baseline_val_mse"`
	OptimizedValMSE float64         `json:"optimized_val_mse"`
	OptimizedValF1  float64         `json:"optimized_val_f1"`
	BestGenesJSON   json.RawMessage `json:"best_genes_json"`
	HistoryJSON     json.RawMessage `json:"history_json,omitempty"`
	CreatedAt       int64           `json:"created_at"`
}

// Store wraps the sqlite handle.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the run database and applies pending
// migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening run database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrateUp applies all pending migrations from the embedded filesystem.
func (s *Store) migrateUp() error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	driver, err := migratesqlite.WithInstance(s.db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("creating sqlite migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("creating migrate instance: %w", err)
	}
	m.Log = &migrateLogger{}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// migrateLogger routes migrate output through the package logger.
type migrateLogger struct{}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	monitoring.Logf("[migrate] "+format, v...)
}

func (l *migrateLogger) Verbose() bool { return false }

// Insert persists a run. An empty RunID gets a fresh UUID; a zero CreatedAt
// gets the current time.
func (s *Store) Insert(run *Run) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = time.Now().UnixNano()
	}

	_, err := s.db.Exec(`
		INSERT INTO training_runs (
			run_id, dataset_path, train_samples, val_samples, seed,
			params_json, baseline_fitness, best_fitness,
			baseline_val_mse, optimized_val_mse, optimized_val_f1,
			best_genes_json, history_json, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.DatasetPath, run.TrainSamples, run.ValSamples, run.Seed,
		nullableJSON(run.ParamsJSON), run.BaselineFitness, run.BestFitness,
		run.BaselineValMSE, run.OptimizedValMSE, run.OptimizedValF1,
		nullableJSON(run.BestGenesJSON), nullableJSON(run.HistoryJSON), run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

// Get returns one run by ID.
func (s *Store) Get(runID string) (*Run, error) {
	row := s.db.QueryRow(selectColumns+` FROM training_runs WHERE run_id = ?`, runID)
	return scanRun(row)
}

// List returns the most recent runs, newest first.
func (s *Store) List(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(selectColumns+` FROM training_runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

const selectColumns = `
	SELECT run_id, dataset_path, train_samples, val_samples, seed,
	       params_json, baseline_fitness, best_fitness,
	       baseline_val_mse, optimized_val_mse, optimized_val_f1,
	       best_genes_json, history_json, created_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*Run, error) {
	var r Run
	var params, genes, history sql.NullString
	err := row.Scan(
		&r.RunID, &r.DatasetPath, &r.TrainSamples, &r.ValSamples, &r.Seed,
		&params, &r.BaselineFitness, &r.BestFitness,
		&r.BaselineValMSE, &r.OptimizedValMSE, &r.OptimizedValF1,
		&genes, &history, &r.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	if params.Valid {
		r.ParamsJSON = json.RawMessage(params.String)
	}
	if genes.Valid {
		r.BestGenesJSON = json.RawMessage(genes.String)
	}
	if history.Valid {
		r.HistoryJSON = json.RawMessage(history.String)
	}
	return &r, nil
}

func nullableJSON(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
