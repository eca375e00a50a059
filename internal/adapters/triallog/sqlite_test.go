package triallog_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/CaraTortu/SentimentAnalyser/internal/adapters/triallog"
	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"go.uber.org/zap"
)

func TestSQLiteStore_PersistsTrials(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "trials.db")

	store, err := triallog.NewSQLiteStore(dbPath, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}

	ctx := context.Background()
	trial := core.TrialResult{
		Corpus: "emails",
		RunID:  "run-1",
		Params: core.Hyperparameters{
			LearningRate: 0.001,
			DropoutRate:  0.2,
			LSTMUnits:    32,
			NeuronsDense: 256,
			NumEpochs:    4,
			BatchSize:    64,
		},
		ValError:  0.12,
		Runtime:   90 * time.Second,
		StartedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	failed := core.TrialResult{
		Corpus:     "emails",
		RunID:      "run-1",
		Params:     core.Hyperparameters{LearningRate: 0.1, NumEpochs: 1, BatchSize: 32},
		Failed:     true,
		FailReason: "worker died",
		StartedAt:  time.Date(2024, 3, 1, 12, 5, 0, 0, time.UTC),
	}

	if err := store.Append(ctx, trial); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Append(ctx, failed); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// A cancelled search reopens the same log and selects over it.
	reopened, err := triallog.NewSQLiteStore(dbPath, zap.NewNop())
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer reopened.Close()

	trials, err := reopened.All(ctx, "run-1")
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(trials) != 2 {
		t.Fatalf("Expected 2 trials, got %d", len(trials))
	}

	got := trials[0]
	if got.Corpus != "emails" || got.RunID != "run-1" {
		t.Errorf("Run scoping changed in round trip: %+v", got)
	}
	if got.Params != trial.Params {
		t.Errorf("Hyperparameters changed in round trip: %+v vs %+v", got.Params, trial.Params)
	}
	if got.ValError != trial.ValError || got.Runtime != trial.Runtime {
		t.Errorf("Objectives changed in round trip: %+v", got)
	}
	if !got.StartedAt.Equal(trial.StartedAt) {
		t.Errorf("StartedAt changed in round trip: %v vs %v", got.StartedAt, trial.StartedAt)
	}

	if !trials[1].Failed || trials[1].FailReason != "worker died" {
		t.Errorf("Failure not preserved: %+v", trials[1])
	}
}

func TestSQLiteStore_AllScopedToRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "trials.db")

	store, err := triallog.NewSQLiteStore(dbPath, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	stale := core.TrialResult{
		Corpus:    "emails",
		RunID:     "run-emails",
		Params:    core.Hyperparameters{LSTMUnits: 8, NeuronsDense: 32},
		ValError:  0.01,
		StartedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	current := core.TrialResult{
		Corpus:    "reviews",
		RunID:     "run-reviews",
		Params:    core.Hyperparameters{LSTMUnits: 32, NeuronsDense: 256},
		ValError:  0.4,
		StartedAt: time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC),
	}

	if err := store.Append(ctx, stale); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Append(ctx, current); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	trials, err := store.All(ctx, "run-reviews")
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(trials) != 1 {
		t.Fatalf("Expected 1 trial for run-reviews, got %d", len(trials))
	}
	if trials[0].Corpus != "reviews" || trials[0].Params.LSTMUnits != 32 {
		t.Errorf("Got a trial from another run: %+v", trials[0])
	}
}
