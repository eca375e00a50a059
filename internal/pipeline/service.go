package pipeline

import (
	"context"
	"fmt"

	"github.com/CaraTortu/SentimentAnalyser/internal/aggregate"
	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"github.com/CaraTortu/SentimentAnalyser/internal/embedding"
	"github.com/CaraTortu/SentimentAnalyser/internal/retry"
	"github.com/CaraTortu/SentimentAnalyser/internal/textproc"
	"go.uber.org/zap"
)

// Service chains the pipeline stages: normalize, embed, pad, predict,
// aggregate, persist. Each stage produces new values; earlier stages'
// data is never mutated in place.
type Service struct {
	clean      func(string) string
	embedder   *embedding.Embedder
	maxTextLen int
	logger     *zap.Logger
}

// NewService creates a new pipeline service. With strict set, texts go
// through the contraction and stopword stripping variant of the cleaner
// instead of the base pipeline.
func NewService(
	cleaner *textproc.Cleaner,
	embedder *embedding.Embedder,
	maxTextLen int,
	strict bool,
	logger *zap.Logger,
) *Service {
	clean := cleaner.Clean
	if strict {
		clean = cleaner.CleanStrict
	}
	return &Service{
		clean:      clean,
		embedder:   embedder,
		maxTextLen: maxTextLen,
		logger:     logger,
	}
}

// Encode normalizes, embeds and pads a batch of raw texts into
// model-ready rows.
func (s *Service) Encode(texts []string) [][]int {
	seqs := make([][]int, len(texts))
	for i, text := range texts {
		seqs[i] = s.embedder.Embed(s.clean(text))
	}
	return embedding.PadAll(seqs, s.maxTextLen)
}

// BuildDataset turns labelled records into a model-ready dataset,
// applying the corpus' label scaling. Unlabelled records are an error:
// the labelling stage must run first.
func (s *Service) BuildDataset(corpus core.CorpusSpec, records []core.Record) (core.Dataset, error) {
	texts := make([]string, len(records))
	targets := make([]float64, len(records))
	for i, rec := range records {
		if !rec.HasLabel {
			return core.Dataset{}, fmt.Errorf("record %d has no label", i)
		}
		texts[i] = rec.Content
		targets[i] = corpus.ScaleLabel(rec.Label)
	}

	return core.Dataset{
		Inputs:  s.Encode(texts),
		Targets: targets,
	}, nil
}

// ScoreRecords predicts a sentiment score for every record.
func (s *Service) ScoreRecords(
	ctx context.Context,
	model core.SentimentModel,
	records []core.Record,
) ([]core.ScoredRecord, error) {
	texts := make([]string, len(records))
	for i, rec := range records {
		texts[i] = rec.Content
	}

	scores, err := model.Predict(ctx, s.Encode(texts))
	if err != nil {
		return nil, fmt.Errorf("failed to score records: %w", err)
	}
	if len(scores) != len(records) {
		return nil, fmt.Errorf("model returned %d scores for %d records", len(scores), len(records))
	}

	out := make([]core.ScoredRecord, len(records))
	for i, rec := range records {
		out[i] = core.ScoredRecord{
			From:      rec.From,
			To:        rec.To,
			Sentiment: scores[i],
		}
	}
	return out, nil
}

// ScoreAndPersist runs the full batch pipeline: score all records, fold
// them into per-pair aggregates and upsert each pair into the graph sink.
// Upserts are idempotent and retried per pair.
func (s *Service) ScoreAndPersist(
	ctx context.Context,
	model core.SentimentModel,
	sink core.GraphSink,
	dataset string,
	records []core.Record,
	retryCfg retry.Config,
) ([]core.PairAggregate, error) {
	scored, err := s.ScoreRecords(ctx, model, records)
	if err != nil {
		return nil, err
	}

	aggregates := aggregate.Pairs(scored)
	s.logger.Info("Aggregated sentiment pairs",
		zap.Int("records", len(scored)),
		zap.Int("pairs", len(aggregates)))

	if err := retry.Do(ctx, retryCfg, func() error {
		return sink.EnsureDataset(ctx, dataset)
	}); err != nil {
		return nil, fmt.Errorf("failed to create dataset %q: %w", dataset, err)
	}

	for _, agg := range aggregates {
		agg := agg
		if err := retry.Do(ctx, retryCfg, func() error {
			return sink.UpsertPair(ctx, dataset, agg)
		}); err != nil {
			return nil, fmt.Errorf("failed to upsert pair (%s, %s): %w", agg.AddrA, agg.AddrB, err)
		}
	}

	return aggregates, nil
}
