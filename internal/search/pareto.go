package search

import (
	"errors"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
)

// Objective weights for the final trade-off between validation error and
// wall-clock cost. Both objectives are minimized.
const (
	weightResult  = 0.8
	weightRuntime = 0.2
)

// ErrNoTrials is returned when selection runs over an empty or
// all-failed trial log.
var ErrNoTrials = errors.New("no completed trials to select from")

// paretoOptimal filters trials down to those not dominated in both
// objectives by another trial. Failed trials never participate.
func paretoOptimal(trials []core.TrialResult) []core.TrialResult {
	var front []core.TrialResult
	for i, t := range trials {
		if t.Failed {
			continue
		}
		dominated := false
		for j, o := range trials {
			if i == j || o.Failed {
				continue
			}
			if o.ValError <= t.ValError && o.Runtime <= t.Runtime &&
				(o.ValError < t.ValError || o.Runtime < t.Runtime) {
				dominated = true
				break
			}
		}
		if !dominated {
			front = append(front, t)
		}
	}
	return front
}

// SelectBest picks, among Pareto-optimal trials, the one minimizing the
// fixed weighted sum of validation error and normalized runtime.
func SelectBest(trials []core.TrialResult) (core.TrialResult, error) {
	front := paretoOptimal(trials)
	if len(front) == 0 {
		return core.TrialResult{}, ErrNoTrials
	}

	maxRuntime := front[0].Runtime
	for _, t := range front[1:] {
		if t.Runtime > maxRuntime {
			maxRuntime = t.Runtime
		}
	}

	score := func(t core.TrialResult) float64 {
		normalized := 0.0
		if maxRuntime > 0 {
			normalized = float64(t.Runtime) / float64(maxRuntime)
		}
		return weightResult*t.ValError + weightRuntime*normalized
	}

	best := front[0]
	for _, t := range front[1:] {
		if score(t) < score(best) {
			best = t
		}
	}
	return best, nil
}
