package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/CaraTortu/SentimentAnalyser/internal/config"
	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"github.com/CaraTortu/SentimentAnalyser/internal/embedding"
	"github.com/CaraTortu/SentimentAnalyser/internal/factory"
	"github.com/CaraTortu/SentimentAnalyser/internal/logging"
	"github.com/CaraTortu/SentimentAnalyser/internal/textproc"
	"github.com/CaraTortu/SentimentAnalyser/internal/training"
	"go.uber.org/zap"
)

var (
	corpusName = flag.String("corpus", "emails", "Corpus whose trained model to load (emails, reviews)")
	inputFile  = flag.String("file", "", "Score a single file and exit (use stdin prompt if not specified)")
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

	embeddingCfg := cfg.GetEmbedding()
	vocab, err := embedding.LoadGlove(embeddingCfg.Path, logger)
	if err != nil {
		logger.Fatal("Failed to load embedding vocabulary", zap.Error(err))
	}

	backend, err := factory.NewModelFactory(cfg, logger).CreateBackend(vocab)
	if err != nil {
		logger.Fatal("Failed to create model backend", zap.Error(err))
	}

	ctx := context.Background()

	model, err := backend.Load(ctx, corpus.Name)
	if err != nil {
		logger.Fatal("Failed to load trained model", zap.Error(err))
	}
	defer model.Close()

	info, err := training.LoadModelInfo(cfg.GetModel().Dir, corpus.Name)
	maxTextLen := embeddingCfg.MaxTextLen
	if err == nil {
		maxTextLen = info.MaxTextLen
	}

	scorer := &scorer{
		cleaner:    textproc.NewCleaner(),
		embedder:   embedding.NewEmbedder(vocab),
		model:      model,
		maxTextLen: maxTextLen,
		thresholds: corpus.Thresholds,
	}

	if *inputFile != "" {
		data, err := os.ReadFile(*inputFile)
		if err != nil {
			logger.Fatal("Failed to read input file", zap.Error(err), zap.String("file", *inputFile))
		}
		if err := scorer.score(ctx, string(data)); err != nil {
			logger.Fatal("Failed to score text", zap.Error(err))
		}
		return
	}

	// Interactive mode: one text per line, empty line or EOF quits.
	fmt.Println("Enter text to score (empty line to quit):")
	stdin := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !stdin.Scan() {
			break
		}
		text := strings.TrimSpace(stdin.Text())
		if text == "" {
			break
		}
		if err := scorer.score(ctx, text); err != nil {
			logger.Error("Failed to score text", zap.Error(err))
		}
	}
}

type scorer struct {
	cleaner    *textproc.Cleaner
	embedder   *embedding.Embedder
	model      core.SentimentModel
	maxTextLen int
	thresholds core.Thresholds
}

func (s *scorer) score(ctx context.Context, text string) error {
	row := embedding.Pad(s.embedder.Embed(s.cleaner.Clean(text)), s.maxTextLen)

	scores, err := s.model.Predict(ctx, [][]int{row})
	if err != nil {
		return err
	}

	score := scores[0]
	fmt.Printf("sentiment: %.4f (%s)\n", score, s.thresholds.Classify(score))
	return nil
}
