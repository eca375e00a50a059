package baseline

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"gonum.org/v1/gonum/floats"
)

type model struct {
	backend *Backend
	spec    core.ModelSpec
	weights []float64
	bias    float64
	rng     *rand.Rand

	snapWeights []float64
	snapBias    float64
	hasSnapshot bool
}

// pool averages the embedding vectors of the non-padding tokens in a row.
func (m *model) pool(row []int) []float64 {
	dim := m.backend.vocab.Dim()
	pooled := make([]float64, dim)

	count := 0
	for _, id := range row {
		if id == 0 {
			continue
		}
		floats.Add(pooled, m.backend.vocab.Vector(id))
		count++
	}
	if count > 0 {
		floats.Scale(1/float64(count), pooled)
	}
	return pooled
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func (m *model) forward(features []float64) float64 {
	return sigmoid(floats.Dot(m.weights, features) + m.bias)
}

func (m *model) TrainEpoch(ctx context.Context, train, val core.Dataset) (core.EpochMetrics, error) {
	if len(train.Inputs) != len(train.Targets) {
		return core.EpochMetrics{}, fmt.Errorf("train batch has %d inputs and %d targets",
			len(train.Inputs), len(train.Targets))
	}

	order := m.rng.Perm(len(train.Inputs))
	keep := 1 - m.spec.Params.DropoutRate

	for _, i := range order {
		if err := ctx.Err(); err != nil {
			return core.EpochMetrics{}, err
		}

		features := m.pool(train.Inputs[i])
		if m.spec.Params.DropoutRate > 0 {
			for j := range features {
				if m.rng.Float64() < m.spec.Params.DropoutRate {
					features[j] = 0
				} else {
					features[j] /= keep
				}
			}
		}

		pred := m.forward(features)
		target := train.Targets[i]

		var grad float64
		switch m.spec.Loss {
		case core.LossBCE:
			grad = pred - target
		default:
			grad = 2 * (pred - target) * pred * (1 - pred)
		}

		floats.AddScaled(m.weights, -m.spec.Params.LearningRate*grad, features)
		m.bias -= m.spec.Params.LearningRate * grad
	}

	trainLoss, trainMetric := m.evaluate(train)
	valLoss, valMetric := m.evaluate(val)

	return core.EpochMetrics{
		Loss:      trainLoss,
		Metric:    trainMetric,
		ValLoss:   valLoss,
		ValMetric: valMetric,
	}, nil
}

func (m *model) evaluate(ds core.Dataset) (loss, metric float64) {
	if len(ds.Inputs) == 0 {
		return 0, 0
	}

	for i, row := range ds.Inputs {
		pred := m.forward(m.pool(row))
		target := ds.Targets[i]

		switch m.spec.Loss {
		case core.LossBCE:
			loss += bceLoss(pred, target)
		default:
			loss += (pred - target) * (pred - target)
		}

		switch m.spec.Metric {
		case core.MetricAccuracy:
			if (pred >= 0.5) == (target >= 0.5) {
				metric++
			}
		default:
			metric += math.Abs(pred - target)
		}
	}

	n := float64(len(ds.Inputs))
	return loss / n, metric / n
}

const bceEpsilon = 1e-7

func bceLoss(pred, target float64) float64 {
	p := math.Min(math.Max(pred, bceEpsilon), 1-bceEpsilon)
	return -(target*math.Log(p) + (1-target)*math.Log(1-p))
}

func (m *model) Predict(ctx context.Context, inputs [][]int) ([]float64, error) {
	scores := make([]float64, len(inputs))
	for i, row := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		scores[i] = m.forward(m.pool(row))
	}
	return scores, nil
}

func (m *model) Snapshot(ctx context.Context) error {
	m.snapWeights = append([]float64(nil), m.weights...)
	m.snapBias = m.bias
	m.hasSnapshot = true
	return nil
}

func (m *model) Restore(ctx context.Context) error {
	if !m.hasSnapshot {
		return fmt.Errorf("no snapshot to restore")
	}
	m.weights = append([]float64(nil), m.snapWeights...)
	m.bias = m.snapBias
	return nil
}

func (m *model) Save(ctx context.Context, name string) error {
	if err := os.MkdirAll(m.backend.modelDir, 0o755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	data, err := json.Marshal(savedModel{
		Spec:    m.spec,
		Weights: m.weights,
		Bias:    m.bias,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}

	path := m.backend.modelPath(name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write model %q: %w", name, err)
	}
	return nil
}

func (m *model) Close() error {
	return nil
}
