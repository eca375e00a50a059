package factory

import (
	"fmt"
	"os"

	"github.com/CaraTortu/SentimentAnalyser/internal/adapters/baseline"
	"github.com/CaraTortu/SentimentAnalyser/internal/adapters/extproc"
	"github.com/CaraTortu/SentimentAnalyser/internal/config"
	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"go.uber.org/zap"
)

// ModelFactory creates model backends
type ModelFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewModelFactory creates a new model factory
func NewModelFactory(cfg *config.Config, logger *zap.Logger) *ModelFactory {
	return &ModelFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateBackend creates a model backend based on the configuration. The
// baseline backend needs the embedding vocabulary; the external worker
// loads embeddings itself.
func (f *ModelFactory) CreateBackend(vocab core.Vocabulary) (core.ModelBackend, error) {
	modelCfg := f.cfg.GetModel()

	if err := os.MkdirAll(modelCfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create model directory: %w", err)
	}

	switch modelCfg.Backend {
	case "extproc":
		return extproc.NewBackend(
			modelCfg.WorkerCommand,
			modelCfg.WorkerScript,
			modelCfg.Dir,
			f.logger,
		), nil
	case "baseline":
		trainingCfg := f.cfg.GetTraining()
		return baseline.NewBackend(vocab, modelCfg.Dir, trainingCfg.Seed, f.logger), nil
	default:
		return nil, fmt.Errorf("unsupported model backend: %s", modelCfg.Backend)
	}
}
