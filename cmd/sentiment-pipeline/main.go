package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CaraTortu/SentimentAnalyser/internal/config"
	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"github.com/CaraTortu/SentimentAnalyser/internal/di"
	"github.com/CaraTortu/SentimentAnalyser/internal/extract"
	"github.com/CaraTortu/SentimentAnalyser/internal/factory"
	"github.com/CaraTortu/SentimentAnalyser/internal/pipeline"
	"github.com/CaraTortu/SentimentAnalyser/internal/retry"
	"go.uber.org/zap"
)

var (
	corpusName  = flag.String("corpus", "emails", "Corpus whose trained model to score with (emails, reviews)")
	datasetName = flag.String("dataset", "", "Graph dataset name (required)")
	inputPath   = flag.String("input", "", "Input dataset path (overrides config)")
	maxRecords  = flag.Int("max-records", 0, "Maximum records to read (0 = all)")
)

func main() {
	flag.Parse()

	if *datasetName == "" {
		fmt.Println("A dataset name is required (-dataset)")
		os.Exit(1)
	}

	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(run); err != nil {
		fmt.Printf("Pipeline error: %v\n", err)
		os.Exit(1)
	}
}

// run scores a full corpus and folds the results into the sentiment graph.
func run(
	cfg *config.Config,
	logger *zap.Logger,
	emailReader *extract.EmailReader,
	service *pipeline.Service,
	backend core.ModelBackend,
	sinkFactory *factory.SinkFactory,
) error {
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	corpus, ok := core.CorpusByName(*corpusName)
	if !ok {
		return fmt.Errorf("unknown corpus: %s", *corpusName)
	}

	path := *inputPath
	if path == "" {
		path = cfg.GetString("dataset.emails_path")
	}
	limit := *maxRecords
	if limit == 0 {
		limit = cfg.GetInt("dataset.max_records")
	}

	records, err := emailReader.ReadFile(path, limit)
	if err != nil {
		return fmt.Errorf("failed to read dataset: %w", err)
	}

	model, err := backend.Load(ctx, corpus.Name)
	if err != nil {
		return fmt.Errorf("failed to load trained model: %w", err)
	}
	defer model.Close()

	graphSink, err := sinkFactory.CreateGraphSink(ctx)
	if err != nil {
		return fmt.Errorf("failed to create graph sink: %w", err)
	}
	defer graphSink.Close(ctx)

	retryCfg := retry.DefaultConfig()
	if maxRetries := cfg.GetNeo4j().MaxRetries; maxRetries > 0 {
		retryCfg.MaxRetries = maxRetries
	}

	start := time.Now()
	aggregates, err := service.ScoreAndPersist(ctx, model, graphSink, *datasetName, records, retryCfg)
	if err != nil {
		return err
	}

	logger.Info("Pipeline complete",
		zap.String("dataset", *datasetName),
		zap.Int("records", len(records)),
		zap.Int("pairs", len(aggregates)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}
