// Package aggregate reduces the judgment matrix to per-model scores and
// a total order for the leaderboard.
package aggregate

import (
	"sort"

	"github.com/certamen-io/certamen/internal/domain/model"
)

// Reduce produces one AggregatedScore per selected id, in selection
// order. Each aggregate is the arithmetic mean, across incoming
// judgments, of every metric dimension and of overall. A model with no
// incoming judgments keeps all-zero scores rather than dividing by zero;
// judgments targeting ids outside the selection are ignored.
func Reduce(selected []string, evals []model.CrossEvaluation) []model.AggregatedScore {
	type acc struct {
		metrics model.Metrics
		overall float64
		n       int
	}

	byTarget := make(map[string]*acc, len(selected))
	for _, id := range selected {
		byTarget[id] = &acc{}
	}

	for _, e := range evals {
		a, ok := byTarget[e.TargetModelID]
		if !ok {
			continue
		}
		a.metrics.Quality += e.Metrics.Quality
		a.metrics.Clarity += e.Metrics.Clarity
		a.metrics.Relevance += e.Metrics.Relevance
		a.metrics.Accuracy += e.Metrics.Accuracy
		a.overall += e.Overall
		a.n++
	}

	out := make([]model.AggregatedScore, 0, len(selected))
	for _, id := range selected {
		a := byTarget[id]
		agg := model.AggregatedScore{ModelID: id}
		if a.n > 0 {
			n := float64(a.n)
			agg.MeanMetrics = model.Metrics{
				Quality:   a.metrics.Quality / n,
				Clarity:   a.metrics.Clarity / n,
				Relevance: a.metrics.Relevance / n,
				Accuracy:  a.metrics.Accuracy / n,
			}
			agg.Overall = a.overall / n
		}
		out = append(out, agg)
	}
	return out
}

// Rank returns a ranked copy of the aggregates: overall descending, ties
// by higher mean accuracy, then ascending model id. The chain guarantees
// a total order, so ranking is stable across runs. The input slice is
// not modified.
func Rank(aggs []model.AggregatedScore) []model.AggregatedScore {
	out := make([]model.AggregatedScore, len(aggs))
	copy(out, aggs)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Overall != out[j].Overall {
			return out[i].Overall > out[j].Overall
		}
		if out[i].MeanMetrics.Accuracy != out[j].MeanMetrics.Accuracy {
			return out[i].MeanMetrics.Accuracy > out[j].MeanMetrics.Accuracy
		}
		return out[i].ModelID < out[j].ModelID
	})
	return out
}

// TopN returns the first min(n, len) entries of the ranked order.
func TopN(aggs []model.AggregatedScore, n int) []model.AggregatedScore {
	ranked := Rank(aggs)
	if n > len(ranked) {
		n = len(ranked)
	}
	if n < 0 {
		n = 0
	}
	return ranked[:n]
}
