package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/CaraTortu/SentimentAnalyser/internal/config"
	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"github.com/CaraTortu/SentimentAnalyser/internal/embedding"
	"github.com/CaraTortu/SentimentAnalyser/internal/extract"
	"github.com/CaraTortu/SentimentAnalyser/internal/factory"
	"github.com/CaraTortu/SentimentAnalyser/internal/logging"
	"github.com/CaraTortu/SentimentAnalyser/internal/pipeline"
	"github.com/CaraTortu/SentimentAnalyser/internal/textproc"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewLabelerFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewModelFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewTrialLogFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewSinkFactory); err != nil {
		return nil, err
	}

	// Register text cleaner
	if err := container.Provide(textproc.NewCleaner); err != nil {
		return nil, err
	}

	// Register embedding vocabulary
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) (core.Vocabulary, error) {
		embeddingCfg := cfg.GetEmbedding()
		return embedding.LoadGlove(embeddingCfg.Path, logger)
	}); err != nil {
		return nil, err
	}

	// Register embedder
	if err := container.Provide(embedding.NewEmbedder); err != nil {
		return nil, err
	}

	// Register polarity analyzer
	if err := container.Provide(func(f *factory.LabelerFactory) (core.PolarityAnalyzer, error) {
		return f.CreateAnalyzer()
	}); err != nil {
		return nil, err
	}

	// Register labeler
	if err := container.Provide(pipeline.NewLabeler); err != nil {
		return nil, err
	}

	// Register model backend
	if err := container.Provide(func(f *factory.ModelFactory, vocab core.Vocabulary) (core.ModelBackend, error) {
		return f.CreateBackend(vocab)
	}); err != nil {
		return nil, err
	}

	// Register readers
	if err := container.Provide(extract.NewEmailReader); err != nil {
		return nil, err
	}
	if err := container.Provide(extract.NewReviewReader); err != nil {
		return nil, err
	}

	// Register pipeline service
	if err := container.Provide(func(
		cfg *config.Config,
		cleaner *textproc.Cleaner,
		embedder *embedding.Embedder,
		logger *zap.Logger,
	) *pipeline.Service {
		embeddingCfg := cfg.GetEmbedding()
		strict := cfg.GetBool("textproc.strict")
		return pipeline.NewService(cleaner, embedder, embeddingCfg.MaxTextLen, strict, logger)
	}); err != nil {
		return nil, err
	}

	return container, nil
}
