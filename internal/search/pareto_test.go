package search_test

import (
	"errors"
	"testing"
	"time"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"github.com/CaraTortu/SentimentAnalyser/internal/search"
)

func TestSelectBest_WeighsErrorAndRuntime(t *testing.T) {
	trials := []core.TrialResult{
		{ValError: 0.10, Runtime: 100 * time.Millisecond},
		{ValError: 0.20, Runtime: 10 * time.Millisecond},
		// Dominated on both objectives by the first trial.
		{ValError: 0.30, Runtime: 200 * time.Millisecond},
		// Failed trials never win, even with a perfect score.
		{ValError: 0, Runtime: time.Millisecond, Failed: true, FailReason: "worker died"},
	}

	best, err := search.SelectBest(trials)
	if err != nil {
		t.Fatalf("SelectBest failed: %v", err)
	}

	// 0.8*0.20 + 0.2*(10/100) beats 0.8*0.10 + 0.2*(100/100).
	if best.ValError != 0.20 {
		t.Errorf("Expected the fast trial to win, got val_error %f", best.ValError)
	}
}

func TestSelectBest_SingleTrial(t *testing.T) {
	trials := []core.TrialResult{
		{ValError: 0.5, Runtime: time.Second},
	}

	best, err := search.SelectBest(trials)
	if err != nil {
		t.Fatalf("SelectBest failed: %v", err)
	}
	if best.ValError != 0.5 {
		t.Errorf("Unexpected best trial: %+v", best)
	}
}

func TestSelectBest_NoTrials(t *testing.T) {
	if _, err := search.SelectBest(nil); !errors.Is(err, search.ErrNoTrials) {
		t.Errorf("Expected ErrNoTrials, got %v", err)
	}
}

func TestSelectBest_AllFailed(t *testing.T) {
	trials := []core.TrialResult{
		{Failed: true, FailReason: "oom"},
		{Failed: true, FailReason: "timeout"},
	}
	if _, err := search.SelectBest(trials); !errors.Is(err, search.ErrNoTrials) {
		t.Errorf("Expected ErrNoTrials, got %v", err)
	}
}
