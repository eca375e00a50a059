package core

import (
	"time"
)

// Record represents one input unit: an email message or a product review.
type Record struct {
	From    string
	To      string
	Content string
	Date    time.Time

	// Label is the ground-truth sentiment in [0,1]. HasLabel is false for
	// records that have not been through the labelling stage yet.
	Label    float64
	HasLabel bool
}

// ScoredRecord is a record together with its predicted sentiment.
type ScoredRecord struct {
	From      string
	To        string
	Sentiment float64
}

// PairAggregate holds the mean sentiment and message count for one
// unordered (sender, receiver) address pair.
type PairAggregate struct {
	AddrA         string
	AddrB         string
	MeanSentiment float64
	Count         int
}

// Hyperparameters is one candidate configuration for the recurrent model.
// Immutable once a trial starts.
type Hyperparameters struct {
	LearningRate float64 `json:"learning_rate"`
	DropoutRate  float64 `json:"dropout_rate"`
	LSTMUnits    int     `json:"lstm_units"`
	NeuronsDense int     `json:"neurons_dense"`
	NumEpochs    int     `json:"num_epochs"`
	BatchSize    int     `json:"batch_size"`
}

// TrialResult records one hyperparameter trial and its objectives.
// Corpus and RunID scope the trial: persistent logs accumulate trials
// across searches, and selection must only ever see the current run.
type TrialResult struct {
	Corpus     string
	RunID      string
	Params     Hyperparameters
	ValError   float64
	Runtime    time.Duration
	StartedAt  time.Time
	Failed     bool
	FailReason string
}

// ModelInfo is the canonical configuration persisted by the search engine
// and read back by the trainer and the scoring pipeline.
type ModelInfo struct {
	MaxTextLen     int    `json:"max_text_len"`
	EmbeddingModel string `json:"embedding_model"`
	Hyperparameters
}

// LossKind selects the training loss. The two corpora use different
// loss/metric pairings and must not be unified.
type LossKind string

// MetricKind selects the tracked training metric.
type MetricKind string

const (
	LossMSE LossKind = "mse"
	LossBCE LossKind = "binary_crossentropy"

	MetricMAE      MetricKind = "mae"
	MetricAccuracy MetricKind = "accuracy"
)

// Range is a bounded float interval in the search space.
type Range struct {
	Min      float64
	Max      float64
	LogScale bool
}

// IntRange is a bounded integer interval in the search space.
type IntRange struct {
	Min int
	Max int
}

// SearchBounds declares the hyperparameter search space for one corpus.
type SearchBounds struct {
	LearningRate Range
	DropoutRate  Range
	LSTMUnits    IntRange
	NeuronsDense IntRange
	NumEpochs    IntRange
	BatchSize    IntRange
}

// Contains reports whether every field of hp lies within the bounds.
func (b SearchBounds) Contains(hp Hyperparameters) bool {
	inRange := func(v float64, r Range) bool { return v >= r.Min && v <= r.Max }
	inInt := func(v int, r IntRange) bool { return v >= r.Min && v <= r.Max }

	return inRange(hp.LearningRate, b.LearningRate) &&
		inRange(hp.DropoutRate, b.DropoutRate) &&
		inInt(hp.LSTMUnits, b.LSTMUnits) &&
		inInt(hp.NeuronsDense, b.NeuronsDense) &&
		inInt(hp.NumEpochs, b.NumEpochs) &&
		inInt(hp.BatchSize, b.BatchSize)
}

// Thresholds discretizes a [0,1] sentiment score into three classes.
// Canonical policy: score < Negative is negative, score < Neutral is
// neutral, anything else is positive.
type Thresholds struct {
	Negative float64
	Neutral  float64
}

// SentimentClass is the discretized sentiment label.
type SentimentClass int

const (
	ClassNegative SentimentClass = iota
	ClassNeutral
	ClassPositive
)

func (c SentimentClass) String() string {
	switch c {
	case ClassNegative:
		return "negative"
	case ClassNeutral:
		return "neutral"
	case ClassPositive:
		return "positive"
	}
	return "unknown"
}

// Classify maps a scaled sentiment score to its class.
func (t Thresholds) Classify(score float64) SentimentClass {
	if score < t.Negative {
		return ClassNegative
	}
	if score < t.Neutral {
		return ClassNeutral
	}
	return ClassPositive
}

// CorpusSpec parameterizes the pipeline for one corpus. The emails and
// reviews paths share all code and differ only in this configuration.
type CorpusSpec struct {
	Name       string
	Loss       LossKind
	Metric     MetricKind
	Bounds     SearchBounds
	Thresholds Thresholds

	// ScaleLabel maps a raw source label onto the [0,1] sentiment scale.
	ScaleLabel func(raw float64) float64
}

// ScalePolarity maps a VADER-style compound polarity in [-1,1] onto [0,1].
func ScalePolarity(x float64) float64 {
	return (x + 1) / 2
}

// EmailsCorpus is the Enron email corpus configuration.
func EmailsCorpus() CorpusSpec {
	return CorpusSpec{
		Name:       "emails",
		Loss:       LossMSE,
		Metric:     MetricMAE,
		ScaleLabel: ScalePolarity,
		Thresholds: Thresholds{Negative: 0.45, Neutral: 0.6},
		Bounds: SearchBounds{
			LearningRate: Range{Min: 1e-4, Max: 5e-2, LogScale: true},
			DropoutRate:  Range{Min: 0.01, Max: 0.5, LogScale: true},
			LSTMUnits:    IntRange{Min: 8, Max: 64},
			NeuronsDense: IntRange{Min: 32, Max: 1024},
			NumEpochs:    IntRange{Min: 1, Max: 10},
			BatchSize:    IntRange{Min: 32, Max: 128},
		},
	}
}

// ReviewsCorpus is the Amazon review corpus configuration. Source labels
// are two-class: label 2 is positive, label 1 negative.
func ReviewsCorpus() CorpusSpec {
	return CorpusSpec{
		Name:   "reviews",
		Loss:   LossBCE,
		Metric: MetricAccuracy,
		ScaleLabel: func(raw float64) float64 {
			if raw == 2 {
				return 1
			}
			return 0
		},
		Thresholds: Thresholds{Negative: 0.45, Neutral: 0.6},
		Bounds: SearchBounds{
			LearningRate: Range{Min: 1e-4, Max: 5e-2, LogScale: true},
			DropoutRate:  Range{Min: 0.01, Max: 0.5, LogScale: true},
			LSTMUnits:    IntRange{Min: 16, Max: 64},
			NeuronsDense: IntRange{Min: 128, Max: 1024},
			NumEpochs:    IntRange{Min: 1, Max: 10},
			BatchSize:    IntRange{Min: 32, Max: 128},
		},
	}
}

// CorpusByName resolves a corpus selector from the CLI or config.
func CorpusByName(name string) (CorpusSpec, bool) {
	switch name {
	case "emails":
		return EmailsCorpus(), true
	case "reviews":
		return ReviewsCorpus(), true
	}
	return CorpusSpec{}, false
}
