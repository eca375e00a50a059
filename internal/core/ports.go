package core

import (
	"context"
)

// Vocabulary is a fixed external word embedding vocabulary. Ids are
// strictly positive; 0 is reserved as the padding sentinel. Implementations
// are read-only after loading and safe for concurrent use.
type Vocabulary interface {
	// ID returns the token id for a lowercase word, or false if the word
	// is not part of the vocabulary.
	ID(word string) (int, bool)

	// Vector returns the embedding vector for a token id. Id 0 yields the
	// all-zero padding vector.
	Vector(id int) []float64

	// Dim is the embedding vector length.
	Dim() int

	// Size is the number of known words; valid ids are 1..Size.
	Size() int
}

// PolarityAnalyzer computes a compound polarity score in [-1,1] for a
// piece of text. Used by the labelling stage.
type PolarityAnalyzer interface {
	Polarity(ctx context.Context, text string) (float64, error)
}

// Dataset is a model-ready batch: padded token-id rows and their targets.
type Dataset struct {
	Inputs  [][]int
	Targets []float64
}

// EpochMetrics reports one training epoch.
type EpochMetrics struct {
	Loss      float64
	Metric    float64
	ValLoss   float64
	ValMetric float64
}

// ModelSpec describes the model a backend should build.
type ModelSpec struct {
	Corpus     string
	Params     Hyperparameters
	MaxTextLen int
	Loss       LossKind
	Metric     MetricKind
}

// SentimentModel is an opaque trained-model handle. The architecture
// behind it (bidirectional recurrent layer, dense ReLU layer, dropout,
// sigmoid output over frozen pretrained embeddings) is the backend's
// concern; the trainer only drives epochs and checkpoints.
type SentimentModel interface {
	// TrainEpoch fits one epoch on train and reports metrics on both splits.
	TrainEpoch(ctx context.Context, train, val Dataset) (EpochMetrics, error)

	// Predict returns sentiment scores in [0,1], one per input row.
	Predict(ctx context.Context, inputs [][]int) ([]float64, error)

	// Snapshot remembers the current weights; Restore rolls back to the
	// last snapshot. Used to keep the lowest-val-loss checkpoint.
	Snapshot(ctx context.Context) error
	Restore(ctx context.Context) error

	// Save persists the model under a name for later loading.
	Save(ctx context.Context, name string) error

	Close() error
}

// ModelBackend builds fresh models and loads persisted ones.
type ModelBackend interface {
	Build(ctx context.Context, spec ModelSpec) (SentimentModel, error)
	Load(ctx context.Context, name string) (SentimentModel, error)
}

// Proposer suggests hyperparameter sets from a bounded search space.
type Proposer interface {
	Propose(ctx context.Context) (Hyperparameters, error)
}

// TrialStore is the append-only trial log kept during a search.
// Persistent implementations keep trials across searches; All returns
// only the trials of one run, in append order.
type TrialStore interface {
	Append(ctx context.Context, trial TrialResult) error
	All(ctx context.Context, runID string) ([]TrialResult, error)
	Close() error
}

// GraphSink persists pair aggregates. Upsert must be idempotent: repeated
// calls with the same dataset and pair merge instead of duplicating edges.
type GraphSink interface {
	EnsureDataset(ctx context.Context, dataset string) error
	UpsertPair(ctx context.Context, dataset string, agg PairAggregate) error
	Close(ctx context.Context) error
}
