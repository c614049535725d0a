// Package arbiter re-ranks the finalists under the meta-evaluator persona.
package arbiter

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/certamen-io/certamen/internal/domain/model"
	"github.com/certamen-io/certamen/internal/domain/seed"
)

// Default adjudication constants. Blend is the share of the aggregate
// signal in the arbiter score; the remainder follows the seeded persona
// fit, which is what lets the arbiter disagree with the peer ranking.
const (
	defaultBlend  = 0.6
	defaultSpread = 1.5
	scaleMax      = 10.0

	confidenceBase   = 0.58
	confidenceGain   = 0.3
	confidenceJitter = 0.1
	soloMargin       = 1.0
)

// Candidate pairs a finalist's aggregate with its catalog entry and its
// synthesized response. Only candidates handed in here can appear in the
// final ranking; the arbiter never promotes from outside.
type Candidate struct {
	Model     model.Model
	Aggregate model.AggregatedScore
	Response  model.Response
}

// Ranker produces the final placement for the finalists.
type Ranker interface {
	Rank(arb model.Model, candidates []Candidate, prompt model.Prompt) []model.RankingEntry
}

// PersonaRanker implements Ranker with a blend of the aggregate signal
// and a seeded persona fit.
type PersonaRanker struct {
	blend  float64
	spread float64
}

// NewPersonaRanker creates a ranker with configuration options.
func NewPersonaRanker(opts ...Option) *PersonaRanker {
	r := &PersonaRanker{
		blend:  defaultBlend,
		spread: defaultSpread,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Blend returns the active aggregate share.
func (r *PersonaRanker) Blend() float64 {
	return r.blend
}

type scored struct {
	cand  Candidate
	score float64
	rng   *rand.Rand
}

// Rank orders the candidates by arbiter score and emits one entry per
// candidate with a contiguous 1-based placement, a confidence derived
// from the separation between neighbors, and a persona rationale.
// Candidates must arrive in aggregate rank order; ties on the arbiter
// score fall back to that order.
func (r *PersonaRanker) Rank(arb model.Model, candidates []Candidate, prompt model.Prompt) []model.RankingEntry {
	list := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		rng := seed.Rand(arb.ID, c.Aggregate.ModelID, prompt.Text)
		delta := (rng.Float64()*2 - 1) * r.spread
		fit := math.Max(0, math.Min(scaleMax, c.Aggregate.Overall+delta))
		list = append(list, scored{
			cand:  c,
			score: r.blend*c.Aggregate.Overall + (1-r.blend)*fit,
			rng:   rng,
		})
	}

	sort.SliceStable(list, func(i, j int) bool { return list[i].score > list[j].score })

	entries := make([]model.RankingEntry, 0, len(list))
	for i, s := range list {
		conf := confidenceBase + confidenceGain*adjacentMargin(list, i) + s.rng.Float64()*confidenceJitter
		conf = math.Min(1, math.Max(0, conf))
		conf = math.Round(conf*100) / 100

		entries = append(entries, model.RankingEntry{
			ModelID:    s.cand.Aggregate.ModelID,
			Placement:  i + 1,
			Confidence: conf,
			Rationale:  rationale(i, s),
		})
	}
	return entries
}

// adjacentMargin is the distance to the nearest neighbor in the ranked
// order, the separation signal behind confidence.
func adjacentMargin(list []scored, i int) float64 {
	switch {
	case len(list) == 1:
		return soloMargin
	case i == 0:
		return list[0].score - list[1].score
	case i == len(list)-1:
		return list[i-1].score - list[i].score
	default:
		return math.Min(list[i-1].score-list[i].score, list[i].score-list[i+1].score)
	}
}

var firstPlaceRationales = []string{
	"First place to %[1]s for the most complete, defensible answer.",
	"%[1]s takes first: the strongest blend of accuracy and usable detail.",
	"%[1]s leads the field; its claims held up best under review.",
}

var secondPlaceRationales = []string{
	"%[1]s lands second: close on depth, a step behind on precision.",
	"Second for %[1]s; strong work undercut by a few soft claims.",
	"%[1]s runs a near second, trailing only on specificity.",
}

var thirdPlaceRationales = []string{
	"%[1]s rounds out the podium with a capable but narrower answer.",
	"Third for %[1]s; dependable, but the competition dug deeper.",
	"%[1]s holds third on consistency rather than reach.",
}

var trailingRationales = []string{
	"%[1]s places behind the podium on overall depth.",
}

// rationale phrases the placement under the arbiter persona. A candidate
// whose catalog entry could not be resolved falls back to its raw id.
func rationale(place int, s scored) string {
	name := s.cand.Model.Name
	if name == "" {
		name = s.cand.Aggregate.ModelID
	}

	pool := trailingRationales
	switch place {
	case 0:
		pool = firstPlaceRationales
	case 1:
		pool = secondPlaceRationales
	case 2:
		pool = thirdPlaceRationales
	}
	return fmt.Sprintf(pool[s.rng.Intn(len(pool))], name)
}
