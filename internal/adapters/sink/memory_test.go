package sink_test

import (
	"context"
	"testing"

	"github.com/CaraTortu/SentimentAnalyser/internal/adapters/sink"
	"github.com/CaraTortu/SentimentAnalyser/internal/core"
)

func TestMemorySink_UpsertIsIdempotent(t *testing.T) {
	s := sink.NewMemorySink()
	ctx := context.Background()

	if err := s.EnsureDataset(ctx, "enron"); err != nil {
		t.Fatalf("EnsureDataset failed: %v", err)
	}

	agg := core.PairAggregate{AddrA: "a@x.com", AddrB: "b@x.com", MeanSentiment: 0.4, Count: 2}
	if err := s.UpsertPair(ctx, "enron", agg); err != nil {
		t.Fatalf("UpsertPair failed: %v", err)
	}

	// A second upsert for the same pair replaces, never duplicates.
	agg.MeanSentiment = 0.6
	agg.Count = 3
	if err := s.UpsertPair(ctx, "enron", agg); err != nil {
		t.Fatalf("UpsertPair failed: %v", err)
	}

	pairs := s.Pairs("enron")
	if len(pairs) != 1 {
		t.Fatalf("Expected 1 pair, got %d", len(pairs))
	}
	if pairs[0].MeanSentiment != 0.6 || pairs[0].Count != 3 {
		t.Errorf("Expected the upsert to replace, got %+v", pairs[0])
	}
}

func TestMemorySink_DatasetsIsolated(t *testing.T) {
	s := sink.NewMemorySink()
	ctx := context.Background()

	agg := core.PairAggregate{AddrA: "a", AddrB: "b", MeanSentiment: 0.5, Count: 1}
	if err := s.UpsertPair(ctx, "one", agg); err != nil {
		t.Fatalf("UpsertPair failed: %v", err)
	}

	if pairs := s.Pairs("two"); len(pairs) != 0 {
		t.Errorf("Expected no pairs in an untouched dataset, got %v", pairs)
	}
}
