package triallog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// MySQLStore is a MySQL-backed trial log for searches shared between
// machines.
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore connects to MySQL and prepares the trials table.
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS trials (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			corpus VARCHAR(32),
			run_id VARCHAR(64),
			learning_rate DOUBLE,
			dropout_rate DOUBLE,
			lstm_units INT,
			neurons_dense INT,
			num_epochs INT,
			batch_size INT,
			val_error DOUBLE,
			runtime_ns BIGINT,
			started_at VARCHAR(64),
			failed BOOLEAN,
			fail_reason TEXT
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create trials table: %w", err)
	}

	return &MySQLStore{db: db, logger: logger}, nil
}

// Append records a completed trial.
func (s *MySQLStore) Append(ctx context.Context, trial core.TrialResult) error {
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

// All returns the run's trials in append order.
func (s *MySQLStore) All(ctx context.Context, runID string) ([]core.TrialResult, error) {
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
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
