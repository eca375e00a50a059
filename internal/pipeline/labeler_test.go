package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"github.com/CaraTortu/SentimentAnalyser/internal/pipeline"
	"go.uber.org/zap"
)

type fakeAnalyzer struct {
	polarity float64
	err      error
	calls    int
}

func (a *fakeAnalyzer) Polarity(ctx context.Context, text string) (float64, error) {
	a.calls++
	return a.polarity, a.err
}

func TestLabeler_LabelsUnlabelledRecords(t *testing.T) {
	analyzer := &fakeAnalyzer{polarity: -0.4}
	labeler := pipeline.NewLabeler(analyzer, zap.NewNop())

	records, err := labeler.LabelRecords(context.Background(), []core.Record{
		{Content: "some text"},
		{Content: "other text"},
	})
	if err != nil {
		t.Fatalf("LabelRecords failed: %v", err)
	}

	for i, rec := range records {
		if !rec.HasLabel {
			t.Errorf("Record %d not labelled", i)
		}
		// The raw polarity is stored unscaled.
		if rec.Label != -0.4 {
			t.Errorf("Record %d label = %f, want -0.4", i, rec.Label)
		}
	}
	if analyzer.calls != 2 {
		t.Errorf("Expected 2 analyzer calls, got %d", analyzer.calls)
	}
}

func TestLabeler_SkipsAlreadyLabelled(t *testing.T) {
	analyzer := &fakeAnalyzer{polarity: 0.9}
	labeler := pipeline.NewLabeler(analyzer, zap.NewNop())

	records, err := labeler.LabelRecords(context.Background(), []core.Record{
		{Content: "labelled", Label: 0.1, HasLabel: true},
		{Content: "unlabelled"},
	})
	if err != nil {
		t.Fatalf("LabelRecords failed: %v", err)
	}

	if records[0].Label != 0.1 {
		t.Errorf("Existing label overwritten: %f", records[0].Label)
	}
	if analyzer.calls != 1 {
		t.Errorf("Expected 1 analyzer call, got %d", analyzer.calls)
	}
}

func TestLabeler_PropagatesAnalyzerError(t *testing.T) {
	analyzer := &fakeAnalyzer{err: errors.New("backend down")}
	labeler := pipeline.NewLabeler(analyzer, zap.NewNop())

	_, err := labeler.LabelRecords(context.Background(), []core.Record{{Content: "text"}})
	if err == nil {
		t.Error("Expected error from failing analyzer")
	}
}
