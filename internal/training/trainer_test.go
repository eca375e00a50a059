package training_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"github.com/CaraTortu/SentimentAnalyser/internal/training"
	"go.uber.org/zap"
)

// scriptedModel replays a fixed validation-loss curve and counts
// checkpoint calls.
type scriptedModel struct {
	valLosses []float64
	epoch     int
	snapshots int
	restores  int
}

func (m *scriptedModel) TrainEpoch(ctx context.Context, train, val core.Dataset) (core.EpochMetrics, error) {
	if m.epoch >= len(m.valLosses) {
		return core.EpochMetrics{}, fmt.Errorf("ran past the scripted loss curve")
	}
	loss := m.valLosses[m.epoch]
	m.epoch++
	return core.EpochMetrics{Loss: loss, ValLoss: loss}, nil
}

func (m *scriptedModel) Predict(ctx context.Context, inputs [][]int) ([]float64, error) {
	return make([]float64, len(inputs)), nil
}
func (m *scriptedModel) Snapshot(ctx context.Context) error {
	m.snapshots++
	return nil
}
func (m *scriptedModel) Restore(ctx context.Context) error {
	m.restores++
	return nil
}
func (m *scriptedModel) Save(ctx context.Context, name string) error { return nil }
func (m *scriptedModel) Close() error                                { return nil }

type scriptedBackend struct {
	model *scriptedModel
}

func (b *scriptedBackend) Build(ctx context.Context, spec core.ModelSpec) (core.SentimentModel, error) {
	return b.model, nil
}

func (b *scriptedBackend) Load(ctx context.Context, name string) (core.SentimentModel, error) {
	return nil, fmt.Errorf("not implemented")
}

func trainInfo(numEpochs int) core.ModelInfo {
	return core.ModelInfo{
		MaxTextLen:     800,
		EmbeddingModel: "glove-wiki-gigaword-100",
		Hyperparameters: core.Hyperparameters{
			LearningRate: 0.001,
			NumEpochs:    numEpochs,
			BatchSize:    32,
		},
	}
}

func TestTrainer_EarlyStopsAfterStaleEpochs(t *testing.T) {
	model := &scriptedModel{valLosses: []float64{1.0, 0.9, 0.95, 0.96, 0.97, 0.5, 0.4}}
	trainer := training.NewTrainer(&scriptedBackend{model: model}, zap.NewNop(), 3)

	_, history, err := trainer.Train(context.Background(), core.EmailsCorpus(), trainInfo(10),
		core.Dataset{}, core.Dataset{})
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	// Losses 0.95, 0.96, 0.97 are three stale epochs in a row: training
	// stops after epoch 4 and never reaches the later improvements.
	if len(history) != 5 {
		t.Errorf("Expected 5 epochs before early stop, got %d", len(history))
	}
	if model.snapshots != 2 {
		t.Errorf("Expected a checkpoint per improvement (2), got %d", model.snapshots)
	}
	if model.restores != 1 {
		t.Errorf("Expected the best checkpoint to be restored once, got %d", model.restores)
	}
}

func TestTrainer_RunsAllEpochsWhenImproving(t *testing.T) {
	model := &scriptedModel{valLosses: []float64{1.0, 0.8, 0.6, 0.4}}
	trainer := training.NewTrainer(&scriptedBackend{model: model}, zap.NewNop(), 3)

	_, history, err := trainer.Train(context.Background(), core.EmailsCorpus(), trainInfo(4),
		core.Dataset{}, core.Dataset{})
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	if len(history) != 4 {
		t.Errorf("Expected all 4 epochs, got %d", len(history))
	}
	if model.snapshots != 4 {
		t.Errorf("Expected 4 checkpoints, got %d", model.snapshots)
	}
}

func TestTrainer_PatienceSpansNonConsecutiveImprovements(t *testing.T) {
	// A single improvement inside the stale window resets the counter.
	model := &scriptedModel{valLosses: []float64{1.0, 1.1, 1.2, 0.9, 1.0, 1.1, 1.2}}
	trainer := training.NewTrainer(&scriptedBackend{model: model}, zap.NewNop(), 3)

	_, history, err := trainer.Train(context.Background(), core.EmailsCorpus(), trainInfo(10),
		core.Dataset{}, core.Dataset{})
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	if len(history) != 7 {
		t.Errorf("Expected 7 epochs, got %d", len(history))
	}
	if model.snapshots != 2 {
		t.Errorf("Expected 2 checkpoints, got %d", model.snapshots)
	}
}
