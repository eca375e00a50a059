package search

import (
	"context"
	"math"
	"math/rand"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
)

// RandomProposer draws hyperparameter sets uniformly from the declared
// bounds, on a log scale where the bound asks for one. It stands in for
// heavier black-box optimizers behind the same Proposer port.
type RandomProposer struct {
	bounds core.SearchBounds
	rng    *rand.Rand
}

// NewRandomProposer creates a proposer over the given bounds. A zero seed
// leaves the draw unseeded-equivalent but reproducible runs should pass
// an explicit one.
func NewRandomProposer(bounds core.SearchBounds, seed int64) *RandomProposer {
	return &RandomProposer{
		bounds: bounds,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Propose suggests the next hyperparameter set.
func (p *RandomProposer) Propose(ctx context.Context) (core.Hyperparameters, error) {
	if err := ctx.Err(); err != nil {
		return core.Hyperparameters{}, err
	}

	return core.Hyperparameters{
		LearningRate: p.drawFloat(p.bounds.LearningRate),
		DropoutRate:  p.drawFloat(p.bounds.DropoutRate),
		LSTMUnits:    p.drawInt(p.bounds.LSTMUnits),
		NeuronsDense: p.drawInt(p.bounds.NeuronsDense),
		NumEpochs:    p.drawInt(p.bounds.NumEpochs),
		BatchSize:    p.drawInt(p.bounds.BatchSize),
	}, nil
}

func (p *RandomProposer) drawFloat(r core.Range) float64 {
	if r.LogScale {
		lo, hi := math.Log(r.Min), math.Log(r.Max)
		return math.Exp(lo + p.rng.Float64()*(hi-lo))
	}
	return r.Min + p.rng.Float64()*(r.Max-r.Min)
}

func (p *RandomProposer) drawInt(r core.IntRange) int {
	return r.Min + p.rng.Intn(r.Max-r.Min+1)
}
