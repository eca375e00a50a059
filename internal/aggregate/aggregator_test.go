package aggregate_test

import (
	"testing"

	"github.com/CaraTortu/SentimentAnalyser/internal/aggregate"
	"github.com/CaraTortu/SentimentAnalyser/internal/core"
)

func TestPairs_UnorderedPairsMerge(t *testing.T) {
	records := []core.ScoredRecord{
		{From: "alice@x.com", To: "bob@x.com", Sentiment: 0.2},
		{From: "bob@x.com", To: "alice@x.com", Sentiment: 0.8},
		{From: "carol@x.com", To: "dave@x.com", Sentiment: 0.5},
	}

	pairs := aggregate.Pairs(records)
	if len(pairs) != 2 {
		t.Fatalf("Expected 2 pairs, got %d", len(pairs))
	}

	ab := pairs[0]
	if ab.AddrA != "alice@x.com" || ab.AddrB != "bob@x.com" {
		t.Errorf("Unexpected first pair: %+v", ab)
	}
	if ab.MeanSentiment != 0.5 || ab.Count != 2 {
		t.Errorf("Expected mean 0.5 over 2 messages, got %+v", ab)
	}

	cd := pairs[1]
	if cd.MeanSentiment != 0.5 || cd.Count != 1 {
		t.Errorf("Unexpected second pair: %+v", cd)
	}
}

func TestPairs_DirectionInvariant(t *testing.T) {
	forward := aggregate.Pairs([]core.ScoredRecord{
		{From: "a@x.com", To: "b@x.com", Sentiment: 0.3},
	})
	backward := aggregate.Pairs([]core.ScoredRecord{
		{From: "b@x.com", To: "a@x.com", Sentiment: 0.3},
	})

	if forward[0] != backward[0] {
		t.Errorf("Direction changed the aggregate: %+v vs %+v", forward[0], backward[0])
	}
}

func TestPairs_CountsCoverAllRecords(t *testing.T) {
	records := []core.ScoredRecord{
		{From: "a", To: "b", Sentiment: 0.1},
		{From: "b", To: "a", Sentiment: 0.2},
		{From: "a", To: "c", Sentiment: 0.3},
		{From: "c", To: "b", Sentiment: 0.4},
		{From: "a", To: "b", Sentiment: 0.5},
	}

	total := 0
	for _, p := range aggregate.Pairs(records) {
		total += p.Count
	}
	if total != len(records) {
		t.Errorf("Pair counts sum to %d, want %d", total, len(records))
	}
}

func TestPairs_Empty(t *testing.T) {
	if pairs := aggregate.Pairs(nil); len(pairs) != 0 {
		t.Errorf("Expected no pairs, got %v", pairs)
	}
}

func TestPairs_SortedOutput(t *testing.T) {
	records := []core.ScoredRecord{
		{From: "z@x.com", To: "y@x.com", Sentiment: 0.1},
		{From: "a@x.com", To: "b@x.com", Sentiment: 0.2},
	}

	pairs := aggregate.Pairs(records)
	if pairs[0].AddrA != "a@x.com" {
		t.Errorf("Expected lexicographic order, got %+v first", pairs[0])
	}
}
