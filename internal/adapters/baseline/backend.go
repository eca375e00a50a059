// Package baseline is an in-process model backend: a single sigmoid unit
// over the mean of the input token embeddings, fitted with SGD. It is no
// substitute for the recurrent worker model, but it trains in milliseconds,
// which makes it useful for smoke-testing searches and for environments
// without a worker runtime.
package baseline

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"go.uber.org/zap"
)

type Backend struct {
	vocab    core.Vocabulary
	modelDir string
	seed     int64
	logger   *zap.Logger
}

func NewBackend(vocab core.Vocabulary, modelDir string, seed int64, logger *zap.Logger) *Backend {
	return &Backend{vocab: vocab, modelDir: modelDir, seed: seed, logger: logger}
}

func (b *Backend) Build(ctx context.Context, spec core.ModelSpec) (core.SentimentModel, error) {
	dim := b.vocab.Dim()
	rng := rand.New(rand.NewSource(b.seed))

	weights := make([]float64, dim)
	for i := range weights {
		weights[i] = rng.NormFloat64() * 0.01
	}

	return &model{
		backend: b,
		spec:    spec,
		weights: weights,
		rng:     rng,
	}, nil
}

func (b *Backend) Load(ctx context.Context, name string) (core.SentimentModel, error) {
	path := b.modelPath(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model %q: %w", name, err)
	}

	var saved savedModel
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("failed to parse model %q: %w", name, err)
	}
	if len(saved.Weights) != b.vocab.Dim() {
		return nil, fmt.Errorf("model %q has %d weights, vocabulary dimension is %d",
			name, len(saved.Weights), b.vocab.Dim())
	}

	return &model{
		backend: b,
		spec:    saved.Spec,
		weights: saved.Weights,
		bias:    saved.Bias,
		rng:     rand.New(rand.NewSource(b.seed)),
	}, nil
}

func (b *Backend) modelPath(name string) string {
	return filepath.Join(b.modelDir, name+".json")
}

type savedModel struct {
	Spec    core.ModelSpec `json:"spec"`
	Weights []float64      `json:"weights"`
	Bias    float64        `json:"bias"`
}
