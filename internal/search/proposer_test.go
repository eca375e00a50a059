package search_test

import (
	"context"
	"testing"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"github.com/CaraTortu/SentimentAnalyser/internal/search"
)

func TestRandomProposer_StaysWithinBounds(t *testing.T) {
	bounds := core.EmailsCorpus().Bounds
	proposer := search.NewRandomProposer(bounds, 42)

	for i := 0; i < 200; i++ {
		params, err := proposer.Propose(context.Background())
		if err != nil {
			t.Fatalf("Propose failed: %v", err)
		}
		if !bounds.Contains(params) {
			t.Fatalf("Proposal %d left the bounds: %+v", i, params)
		}
	}
}

func TestRandomProposer_SeedReproducible(t *testing.T) {
	bounds := core.ReviewsCorpus().Bounds
	a := search.NewRandomProposer(bounds, 7)
	b := search.NewRandomProposer(bounds, 7)

	for i := 0; i < 10; i++ {
		pa, err := a.Propose(context.Background())
		if err != nil {
			t.Fatalf("Propose failed: %v", err)
		}
		pb, err := b.Propose(context.Background())
		if err != nil {
			t.Fatalf("Propose failed: %v", err)
		}
		if pa != pb {
			t.Fatalf("Same seed diverged at draw %d: %+v vs %+v", i, pa, pb)
		}
	}
}

func TestRandomProposer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	proposer := search.NewRandomProposer(core.EmailsCorpus().Bounds, 1)
	if _, err := proposer.Propose(ctx); err == nil {
		t.Error("Expected error from cancelled context")
	}
}
