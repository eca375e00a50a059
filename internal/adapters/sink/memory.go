package sink

import (
	"context"
	"sync"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
)

// MemorySink keeps pair aggregates in memory, keyed by dataset and pair.
// Used in tests and when no graph database is configured.
type MemorySink struct {
	mu       sync.Mutex
	datasets map[string]map[[2]string]core.PairAggregate
}

func NewMemorySink() *MemorySink {
	return &MemorySink{datasets: make(map[string]map[[2]string]core.PairAggregate)}
}

func (s *MemorySink) EnsureDataset(ctx context.Context, dataset string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.datasets[dataset]; !ok {
		s.datasets[dataset] = make(map[[2]string]core.PairAggregate)
	}
	return nil
}

func (s *MemorySink) UpsertPair(ctx context.Context, dataset string, agg core.PairAggregate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pairs, ok := s.datasets[dataset]
	if !ok {
		pairs = make(map[[2]string]core.PairAggregate)
		s.datasets[dataset] = pairs
	}
	pairs[[2]string{agg.AddrA, agg.AddrB}] = agg
	return nil
}

// Pairs returns the stored aggregates for a dataset.
func (s *MemorySink) Pairs(dataset string) []core.PairAggregate {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.PairAggregate
	for _, agg := range s.datasets[dataset] {
		out = append(out, agg)
	}
	return out
}

func (s *MemorySink) Close(ctx context.Context) error {
	return nil
}
