package triallog

import (
	"context"
	"sync"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
)

// MemoryStore is an in-memory append-only trial log, used by tests and
// short-lived searches.
type MemoryStore struct {
	mu     sync.Mutex
	trials []core.TrialResult
}

// NewMemoryStore creates a new MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append records a completed trial.
func (s *MemoryStore) Append(ctx context.Context, trial core.TrialResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trials = append(s.trials, trial)
	return nil
}

// All returns the run's trials in append order.
func (s *MemoryStore) All(ctx context.Context, runID string) ([]core.TrialResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.TrialResult
	for _, t := range s.trials {
		if t.RunID == runID {
			out = append(out, t)
		}
	}
	return out, nil
}

// Close releases nothing for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
