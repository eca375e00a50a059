package training

import (
	"context"
	"fmt"
	"math"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"go.uber.org/zap"
)

// Trainer fits a model to convergence with early stopping and keeps the
// checkpoint with the lowest validation loss as the final artifact.
type Trainer struct {
	backend  core.ModelBackend
	logger   *zap.Logger
	patience int
}

// NewTrainer creates a trainer. patience is the number of consecutive
// epochs without validation-loss improvement tolerated before stopping.
func NewTrainer(backend core.ModelBackend, logger *zap.Logger, patience int) *Trainer {
	if patience <= 0 {
		patience = 3
	}
	return &Trainer{backend: backend, logger: logger, patience: patience}
}

// Train builds a fresh model from the canonical configuration and fits it
// on the train split. The returned model carries the weights of the best
// epoch by validation loss, not necessarily the last one.
func (t *Trainer) Train(
	ctx context.Context,
	corpus core.CorpusSpec,
	info core.ModelInfo,
	train, val core.Dataset,
) (core.SentimentModel, []core.EpochMetrics, error) {
	model, err := t.backend.Build(ctx, core.ModelSpec{
		Corpus:     corpus.Name,
		Params:     info.Hyperparameters,
		MaxTextLen: info.MaxTextLen,
		Loss:       corpus.Loss,
		Metric:     corpus.Metric,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build model: %w", err)
	}

	var history []core.EpochMetrics
	bestValLoss := math.Inf(1)
	stale := 0

	for epoch := 0; epoch < info.NumEpochs; epoch++ {
		metrics, err := model.TrainEpoch(ctx, train, val)
		if err != nil {
			model.Close()
			return nil, history, fmt.Errorf("epoch %d failed: %w", epoch, err)
		}
		history = append(history, metrics)

		t.logger.Info("Epoch complete",
			zap.Int("epoch", epoch),
			zap.Float64("loss", metrics.Loss),
			zap.Float64("val_loss", metrics.ValLoss),
			zap.String("metric", string(corpus.Metric)),
			zap.Float64("val_metric", metrics.ValMetric))

		if metrics.ValLoss < bestValLoss {
			bestValLoss = metrics.ValLoss
			stale = 0
			if err := model.Snapshot(ctx); err != nil {
				model.Close()
				return nil, history, fmt.Errorf("failed to checkpoint: %w", err)
			}
			continue
		}

		stale++
		if stale >= t.patience {
			t.logger.Info("Early stopping",
				zap.Int("epoch", epoch),
				zap.Float64("best_val_loss", bestValLoss))
			break
		}
	}

	if len(history) > 0 && !math.IsInf(bestValLoss, 1) {
		if err := model.Restore(ctx); err != nil {
			model.Close()
			return nil, history, fmt.Errorf("failed to restore best checkpoint: %w", err)
		}
	}

	return model, history, nil
}
