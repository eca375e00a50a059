package triallog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteStore is a SQLite-backed trial log. Trials survive operator
// interrupts, so a cancelled search still selects over everything
// recorded up to the last completed trial.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore opens (and if needed creates) a trial log database.
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS trials (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			corpus TEXT,
			run_id TEXT,
			learning_rate REAL,
			dropout_rate REAL,
			lstm_units INTEGER,
			neurons_dense INTEGER,
			num_epochs INTEGER,
			batch_size INTEGER,
			val_error REAL,
			runtime_ns INTEGER,
			started_at TIMESTAMP,
			failed BOOLEAN,
			fail_reason TEXT
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create trials table: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

// Append records a completed trial.
func (s *SQLiteStore) Append(ctx context.Context, trial core.TrialResult) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trials (
			corpus, run_id, learning_rate, dropout_rate, lstm_units,
			neurons_dense, num_epochs, batch_size, val_error, runtime_ns,
			started_at, failed, fail_reason
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		trial.Corpus,
		trial.RunID,
		trial.Params.LearningRate,
		trial.Params.DropoutRate,
		trial.Params.LSTMUnits,
		trial.Params.NeuronsDense,
		trial.Params.NumEpochs,
		trial.Params.BatchSize,
		trial.ValError,
		trial.Runtime.Nanoseconds(),
		trial.StartedAt.Format(time.RFC3339),
		trial.Failed,
		trial.FailReason,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trial: %w", err)
	}
	return nil
}

// All returns the run's trials in append order. The database holds every
// run ever recorded; selection over stale runs would mix corpora and
// incomparable objectives.
func (s *SQLiteStore) All(ctx context.Context, runID string) ([]core.TrialResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT corpus, run_id, learning_rate, dropout_rate, lstm_units,
		       neurons_dense, num_epochs, batch_size, val_error, runtime_ns,
		       started_at, failed, fail_reason
		FROM trials WHERE run_id = ? ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trials: %w", err)
	}
	defer rows.Close()

	var trials []core.TrialResult
	for rows.Next() {
		var t core.TrialResult
		var runtimeNS int64
		var startedAt string

		err := rows.Scan(
			&t.Corpus,
			&t.RunID,
			&t.Params.LearningRate,
			&t.Params.DropoutRate,
			&t.Params.LSTMUnits,
			&t.Params.NeuronsDense,
			&t.Params.NumEpochs,
			&t.Params.BatchSize,
			&t.ValError,
			&runtimeNS,
			&startedAt,
			&t.Failed,
			&t.FailReason,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trial: %w", err)
		}

		t.Runtime = time.Duration(runtimeNS)
		if ts, err := time.Parse(time.RFC3339, startedAt); err == nil {
			t.StartedAt = ts
		} else {
			s.logger.Warn("Failed to parse trial timestamp", zap.Error(err))
		}

		trials = append(trials, t)
	}
	return trials, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
