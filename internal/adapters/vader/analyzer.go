package vader

import (
	"context"

	"github.com/jonreiter/govader"
)

// Analyzer is the default polarity backend, a rule-based VADER sentiment
// analyzer running in-process. The underlying analyzer is read-only after
// construction and safe for concurrent use.
type Analyzer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewAnalyzer creates a new Analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Polarity returns the compound polarity score in [-1,1].
func (a *Analyzer) Polarity(ctx context.Context, text string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return a.analyzer.PolarityScores(text).Compound, nil
}
