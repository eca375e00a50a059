package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine runs the PROPOSE -> TRAIN -> SCORE -> RECORD loop over a bounded
// hyperparameter space. The loop ends on trial budget exhaustion or
// context cancellation; cancellation falls through to best-trial
// selection with the log intact up to the last completed trial.
type Engine struct {
	backend  core.ModelBackend
	proposer core.Proposer
	store    core.TrialStore
	logger   *zap.Logger
	budget   int
}

// NewEngine creates a search engine. A budget <= 0 means the loop runs
// until the context is cancelled.
func NewEngine(
	backend core.ModelBackend,
	proposer core.Proposer,
	store core.TrialStore,
	logger *zap.Logger,
	budget int,
) *Engine {
	return &Engine{
		backend:  backend,
		proposer: proposer,
		store:    store,
		logger:   logger,
		budget:   budget,
	}
}

// Run explores the search space for the corpus and returns the canonical
// model configuration for the best trial found.
func (e *Engine) Run(
	ctx context.Context,
	corpus core.CorpusSpec,
	train, val core.Dataset,
	maxTextLen int,
	embeddingModel string,
) (core.ModelInfo, error) {
	// Persistent trial logs outlive a single search. Each run gets a
	// fresh id so selection never sees trials from earlier searches or
	// from the other corpus.
	runID := uuid.NewString()
	e.logger.Info("Starting search run",
		zap.String("run_id", runID),
		zap.String("corpus", corpus.Name))

	for trial := 0; e.budget <= 0 || trial < e.budget; trial++ {
		if ctx.Err() != nil {
			e.logger.Info("Search cancelled, selecting best trial",
				zap.Int("completed_trials", trial))
			break
		}

		params, err := e.proposer.Propose(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				break
			}
			return core.ModelInfo{}, fmt.Errorf("proposer failed: %w", err)
		}

		e.logger.Info("Running trial",
			zap.Int("trial", trial),
			zap.Float64("learning_rate", params.LearningRate),
			zap.Float64("dropout_rate", params.DropoutRate),
			zap.Int("lstm_units", params.LSTMUnits),
			zap.Int("neurons_dense", params.NeuronsDense),
			zap.Int("num_epochs", params.NumEpochs),
			zap.Int("batch_size", params.BatchSize))

		result := e.runTrial(ctx, runID, corpus, params, train, val, maxTextLen)
		if result.Failed && ctx.Err() != nil {
			// A trial cut short by cancellation is not scored.
			break
		}

		if err := e.store.Append(ctx, result); err != nil {
			return core.ModelInfo{}, fmt.Errorf("failed to record trial: %w", err)
		}

		if result.Failed {
			e.logger.Warn("Trial failed, continuing search",
				zap.Int("trial", trial),
				zap.String("reason", result.FailReason))
		} else {
			e.logger.Info("Trial complete",
				zap.Int("trial", trial),
				zap.Float64("val_error", result.ValError),
				zap.Duration("runtime", result.Runtime))
		}
	}

	trials, err := e.store.All(ctx, runID)
	if err != nil {
		return core.ModelInfo{}, fmt.Errorf("failed to read trial log: %w", err)
	}

	best, err := SelectBest(trials)
	if err != nil {
		return core.ModelInfo{}, err
	}

	e.logger.Info("Selected best trial",
		zap.Float64("val_error", best.ValError),
		zap.Duration("runtime", best.Runtime))

	return core.ModelInfo{
		MaxTextLen:      maxTextLen,
		EmbeddingModel:  embeddingModel,
		Hyperparameters: best.Params,
	}, nil
}

// runTrial trains a fresh model with the proposed set and scores it by
// final-epoch validation error plus wall-clock duration. No warm starts:
// any previous model state is discarded.
func (e *Engine) runTrial(
	ctx context.Context,
	runID string,
	corpus core.CorpusSpec,
	params core.Hyperparameters,
	train, val core.Dataset,
	maxTextLen int,
) core.TrialResult {
	result := core.TrialResult{
		Corpus:    corpus.Name,
		RunID:     runID,
		Params:    params,
		StartedAt: time.Now(),
	}

	fail := func(err error) core.TrialResult {
		result.Failed = true
		result.FailReason = err.Error()
		result.Runtime = time.Since(result.StartedAt)
		return result
	}

	model, err := e.backend.Build(ctx, core.ModelSpec{
		Corpus:     corpus.Name,
		Params:     params,
		MaxTextLen: maxTextLen,
		Loss:       corpus.Loss,
		Metric:     corpus.Metric,
	})
	if err != nil {
		return fail(err)
	}
	defer model.Close()

	var last core.EpochMetrics
	for epoch := 0; epoch < params.NumEpochs; epoch++ {
		last, err = model.TrainEpoch(ctx, train, val)
		if err != nil {
			return fail(err)
		}
	}

	// Regression-style corpora score by the tracked validation metric
	// (MAE); classification-style ones by validation loss.
	if corpus.Metric == core.MetricMAE {
		result.ValError = last.ValMetric
	} else {
		result.ValError = last.ValLoss
	}
	result.Runtime = time.Since(result.StartedAt)
	return result
}
