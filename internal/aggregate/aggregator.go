package aggregate

import (
	"sort"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
)

// Pairs groups scored records by unordered (sender, receiver) pair and
// computes mean sentiment and message count per pair. Every invocation
// recomputes from scratch; nothing is carried across batches.
func Pairs(records []core.ScoredRecord) []core.PairAggregate {
	type bucket struct {
		sum   float64
		count int
	}

	type key struct {
		a, b string
	}

	buckets := make(map[key]*bucket)
	order := make([]key, 0)

	for _, r := range records {
		a, b := r.From, r.To
		if b < a {
			a, b = b, a
		}

		k := key{a, b}
		agg, ok := buckets[k]
		if !ok {
			agg = &bucket{}
			buckets[k] = agg
			order = append(order, k)
		}
		agg.sum += r.Sentiment
		agg.count++
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].a != order[j].a {
			return order[i].a < order[j].a
		}
		return order[i].b < order[j].b
	})

	out := make([]core.PairAggregate, 0, len(order))
	for _, k := range order {
		agg := buckets[k]
		out = append(out, core.PairAggregate{
			AddrA:         k.a,
			AddrB:         k.b,
			MeanSentiment: agg.sum / float64(agg.count),
			Count:         agg.count,
		})
	}
	return out
}
