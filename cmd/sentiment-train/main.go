package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/CaraTortu/SentimentAnalyser/internal/config"
	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"github.com/CaraTortu/SentimentAnalyser/internal/embedding"
	"github.com/CaraTortu/SentimentAnalyser/internal/extract"
	"github.com/CaraTortu/SentimentAnalyser/internal/factory"
	"github.com/CaraTortu/SentimentAnalyser/internal/logging"
	"github.com/CaraTortu/SentimentAnalyser/internal/pipeline"
	"github.com/CaraTortu/SentimentAnalyser/internal/search"
	"github.com/CaraTortu/SentimentAnalyser/internal/textproc"
	"github.com/CaraTortu/SentimentAnalyser/internal/training"
	"go.uber.org/zap"
)

var (
	corpusName = flag.String("corpus", "emails", "Corpus to work on (emails, reviews)")
	stage      = flag.String("stage", "search", "Pipeline stage to run (clean, label, search, train, evaluate)")
	inputPath  = flag.String("input", "", "Input dataset path (overrides config)")
	maxRecords = flag.Int("max-records", 0, "Maximum records to read (0 = all)")
	dataDir    = flag.String("data-dir", "./data", "Directory for intermediate artifacts")
	strict     = flag.Bool("strict", false, "Also strip contractions and stopwords when cleaning")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
)

func main() {
	flag.Parse()

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.New()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	corpus, ok := core.CorpusByName(*corpusName)
	if !ok {
		logger.Fatal("Unknown corpus", zap.String("corpus", *corpusName))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, corpus, logger); err != nil {
		logger.Fatal("Stage failed", zap.String("stage", *stage), zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, corpus core.CorpusSpec, logger *zap.Logger) error {
	switch *stage {
	case "clean":
		return runClean(cfg, corpus, logger)
	case "label":
		return runLabel(ctx, cfg, corpus, logger)
	case "search":
		return runSearch(ctx, cfg, corpus, logger)
	case "train":
		return runTrain(ctx, cfg, corpus, logger)
	case "evaluate":
		return runEvaluate(ctx, cfg, corpus, logger)
	default:
		return fmt.Errorf("unknown stage: %s", *stage)
	}
}

// readRecords loads the raw corpus from disk.
func readRecords(cfg *config.Config, corpus core.CorpusSpec, logger *zap.Logger) ([]core.Record, error) {
	path := *inputPath
	limit := *maxRecords
	if limit == 0 {
		limit = cfg.GetInt("dataset.max_records")
	}

	switch corpus.Name {
	case "emails":
		if path == "" {
			path = cfg.GetString("dataset.emails_path")
		}
		return extract.NewEmailReader(logger).ReadFile(path, limit)
	case "reviews":
		if path == "" {
			path = cfg.GetString("dataset.reviews_path")
		}
		return extract.NewReviewReader(logger).ReadFile(path, limit)
	default:
		return nil, fmt.Errorf("no reader for corpus %s", corpus.Name)
	}
}

func labelledPath(corpus core.CorpusSpec) string {
	return filepath.Join(*dataDir, corpus.Name+"_labelled.json")
}

func saveLabelled(path string, records []core.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write labelled records: %w", err)
	}
	return nil
}

func loadLabelled(path string) ([]core.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []core.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode labelled records: %w", err)
	}
	return records, nil
}

// labelledRecords returns labelled records, preferring a previous label
// stage's output over running the labeler again.
func labelledRecords(ctx context.Context, cfg *config.Config, corpus core.CorpusSpec, logger *zap.Logger) ([]core.Record, error) {
	if records, err := loadLabelled(labelledPath(corpus)); err == nil {
		logger.Info("Using previously labelled records",
			zap.String("path", labelledPath(corpus)),
			zap.Int("records", len(records)))
		return records, nil
	}

	records, err := readRecords(cfg, corpus, logger)
	if err != nil {
		return nil, err
	}

	analyzer, err := factory.NewLabelerFactory(cfg, logger).CreateAnalyzer()
	if err != nil {
		return nil, err
	}

	return pipeline.NewLabeler(analyzer, logger).LabelRecords(ctx, records)
}

func buildService(cfg *config.Config, logger *zap.Logger) (*pipeline.Service, core.Vocabulary, error) {
	embeddingCfg := cfg.GetEmbedding()

	vocab, err := embedding.LoadGlove(embeddingCfg.Path, logger)
	if err != nil {
		return nil, nil, err
	}

	service := pipeline.NewService(
		textproc.NewCleaner(),
		embedding.NewEmbedder(vocab),
		embeddingCfg.MaxTextLen,
		cfg.GetBool("textproc.strict"),
		logger,
	)
	return service, vocab, nil
}

func runClean(cfg *config.Config, corpus core.CorpusSpec, logger *zap.Logger) error {
	records, err := readRecords(cfg, corpus, logger)
	if err != nil {
		return err
	}

	cleaner := textproc.NewCleaner()
	clean := cleaner.Clean
	if *strict || cfg.GetBool("textproc.strict") {
		clean = cleaner.CleanStrict
	}
	for i := range records {
		records[i].Content = clean(records[i].Content)
	}

	path := filepath.Join(*dataDir, corpus.Name+"_cleaned.json")
	if err := saveLabelled(path, records); err != nil {
		return err
	}

	logger.Info("Cleaned records", zap.Int("records", len(records)), zap.String("path", path))
	return nil
}

func runLabel(ctx context.Context, cfg *config.Config, corpus core.CorpusSpec, logger *zap.Logger) error {
	records, err := readRecords(cfg, corpus, logger)
	if err != nil {
		return err
	}

	analyzer, err := factory.NewLabelerFactory(cfg, logger).CreateAnalyzer()
	if err != nil {
		return err
	}

	labelled, err := pipeline.NewLabeler(analyzer, logger).LabelRecords(ctx, records)
	if err != nil {
		return err
	}

	path := labelledPath(corpus)
	if err := saveLabelled(path, labelled); err != nil {
		return err
	}

	logger.Info("Labelled records written", zap.Int("records", len(labelled)), zap.String("path", path))
	return nil
}

func runSearch(ctx context.Context, cfg *config.Config, corpus core.CorpusSpec, logger *zap.Logger) error {
	records, err := labelledRecords(ctx, cfg, corpus, logger)
	if err != nil {
		return err
	}

	service, vocab, err := buildService(cfg, logger)
	if err != nil {
		return err
	}

	dataset, err := service.BuildDataset(corpus, records)
	if err != nil {
		return err
	}

	trainingCfg := cfg.GetTraining()
	train, val := training.SplitDataset(dataset, trainingCfg.ValidationFraction, trainingCfg.Seed)

	backend, err := factory.NewModelFactory(cfg, logger).CreateBackend(vocab)
	if err != nil {
		return err
	}

	store, err := factory.NewTrialLogFactory(cfg, logger).CreateTrialStore()
	if err != nil {
		return err
	}
	defer store.Close()

	searchCfg := cfg.GetSearch()
	embeddingCfg := cfg.GetEmbedding()

	engine := search.NewEngine(
		backend,
		search.NewRandomProposer(corpus.Bounds, trainingCfg.Seed),
		store,
		logger,
		searchCfg.TrialBudget,
	)

	info, err := engine.Run(ctx, corpus, train, val, embeddingCfg.MaxTextLen, embeddingCfg.Model)
	if err != nil {
		return err
	}

	modelDir := cfg.GetModel().Dir
	if err := training.SaveModelInfo(modelDir, corpus.Name, info); err != nil {
		return err
	}

	logger.Info("Search complete",
		zap.String("model_info", training.ModelInfoPath(modelDir, corpus.Name)),
		zap.Float64("learning_rate", info.LearningRate),
		zap.Int("lstm_units", info.LSTMUnits),
		zap.Int("neurons_dense", info.NeuronsDense))
	return nil
}

func runTrain(ctx context.Context, cfg *config.Config, corpus core.CorpusSpec, logger *zap.Logger) error {
	modelDir := cfg.GetModel().Dir

	info, err := training.LoadModelInfo(modelDir, corpus.Name)
	if err != nil {
		return fmt.Errorf("no canonical configuration, run the search stage first: %w", err)
	}

	records, err := labelledRecords(ctx, cfg, corpus, logger)
	if err != nil {
		return err
	}

	service, vocab, err := buildService(cfg, logger)
	if err != nil {
		return err
	}

	dataset, err := service.BuildDataset(corpus, records)
	if err != nil {
		return err
	}

	trainingCfg := cfg.GetTraining()
	train, val := training.SplitDataset(dataset, trainingCfg.ValidationFraction, trainingCfg.Seed)

	backend, err := factory.NewModelFactory(cfg, logger).CreateBackend(vocab)
	if err != nil {
		return err
	}

	trainer := training.NewTrainer(backend, logger, trainingCfg.Patience)
	model, history, err := trainer.Train(ctx, corpus, info, train, val)
	if err != nil {
		return err
	}
	defer model.Close()

	if err := model.Save(ctx, corpus.Name); err != nil {
		return err
	}

	logger.Info("Model saved",
		zap.String("name", corpus.Name),
		zap.Int("epochs", len(history)))

	return reportOn(ctx, corpus, model, val)
}

func runEvaluate(ctx context.Context, cfg *config.Config, corpus core.CorpusSpec, logger *zap.Logger) error {
	records, err := labelledRecords(ctx, cfg, corpus, logger)
	if err != nil {
		return err
	}

	service, vocab, err := buildService(cfg, logger)
	if err != nil {
		return err
	}

	dataset, err := service.BuildDataset(corpus, records)
	if err != nil {
		return err
	}

	trainingCfg := cfg.GetTraining()
	_, val := training.SplitDataset(dataset, trainingCfg.ValidationFraction, trainingCfg.Seed)

	backend, err := factory.NewModelFactory(cfg, logger).CreateBackend(vocab)
	if err != nil {
		return err
	}

	model, err := backend.Load(ctx, corpus.Name)
	if err != nil {
		return fmt.Errorf("no trained model, run the train stage first: %w", err)
	}
	defer model.Close()

	return reportOn(ctx, corpus, model, val)
}

func reportOn(ctx context.Context, corpus core.CorpusSpec, model core.SentimentModel, val core.Dataset) error {
	predicted, err := model.Predict(ctx, val.Inputs)
	if err != nil {
		return err
	}

	report, err := training.Evaluate(val.Targets, predicted, corpus.Thresholds)
	if err != nil {
		return err
	}

	fmt.Println(report.String())
	return nil
}
