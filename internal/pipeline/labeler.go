package pipeline

import (
	"context"
	"fmt"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"go.uber.org/zap"
)

// Labeler assigns ground-truth polarity to unlabelled records using a
// polarity backend. Labels are stored raw (the backend's [-1,1] compound
// score); the corpus' ScaleLabel maps them onto [0,1] when the training
// dataset is built.
type Labeler struct {
	analyzer core.PolarityAnalyzer
	logger   *zap.Logger
}

// NewLabeler creates a new Labeler
func NewLabeler(analyzer core.PolarityAnalyzer, logger *zap.Logger) *Labeler {
	return &Labeler{analyzer: analyzer, logger: logger}
}

// LabelRecords computes a polarity label for every record from its raw
// content. Already-labelled records are left untouched.
func (l *Labeler) LabelRecords(ctx context.Context, records []core.Record) ([]core.Record, error) {
	out := make([]core.Record, len(records))
	for i, rec := range records {
		if rec.HasLabel {
			out[i] = rec
			continue
		}

		polarity, err := l.analyzer.Polarity(ctx, rec.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to label record %d: %w", i, err)
		}

		rec.Label = polarity
		rec.HasLabel = true
		out[i] = rec
	}

	l.logger.Info("Labelled records", zap.Int("records", len(out)))
	return out, nil
}
