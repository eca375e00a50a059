package training

import (
	"math/rand"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
)

// SplitIndices partitions [0,n) into a train and a validation set by
// random assignment. The seed is an explicit parameter: search and
// training runs must thread it through for reproducible splits.
func SplitIndices(n int, valFraction float64, seed int64) (train, val []int) {
	perm := rand.New(rand.NewSource(seed)).Perm(n)

	valSize := int(float64(n) * valFraction)
	if valSize < 1 && n > 1 && valFraction > 0 {
		valSize = 1
	}

	val = perm[:valSize]
	train = perm[valSize:]
	return train, val
}

// SplitDataset splits a dataset into train and validation subsets.
func SplitDataset(d core.Dataset, valFraction float64, seed int64) (train, val core.Dataset) {
	trainIdx, valIdx := SplitIndices(len(d.Inputs), valFraction, seed)

	pick := func(idx []int) core.Dataset {
		out := core.Dataset{
			Inputs:  make([][]int, len(idx)),
			Targets: make([]float64, len(idx)),
		}
		for i, j := range idx {
			out.Inputs[i] = d.Inputs[j]
			out.Targets[i] = d.Targets[j]
		}
		return out
	}

	return pick(trainIdx), pick(valIdx)
}
