// Package crosseval builds the peer judgment matrix over model responses.
package crosseval

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/certamen-io/certamen/internal/domain/model"
	"github.com/certamen-io/certamen/internal/domain/seed"
)

// Default matrix configuration constants.
const (
	defaultJitter = 0.9
	maxJitter     = 3.0
	minScore      = 0.0
	maxScore      = 10.0
)

// Rationale bands on the overall score.
const (
	strongBand = 8.5
	solidBand  = 7.0
)

// Evaluator produces the complete peer judgment matrix for a selection.
// Every ordered (judge, target) pair with judge != target yields exactly
// one judgment; scores are a reproducible function of the judge id, the
// target id, and the target's response content.
type Evaluator interface {
	Build(models []model.Model, responses []model.Response) []model.CrossEvaluation
}

// MatrixBuilder implements Evaluator with profile-driven seeded scoring.
type MatrixBuilder struct {
	weights WeightSet
	jitter  float64
}

// NewMatrixBuilder creates a matrix builder with configuration options.
func NewMatrixBuilder(opts ...Option) *MatrixBuilder {
	b := &MatrixBuilder{
		weights: DefaultWeights(),
		jitter:  defaultJitter,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Weights returns the active overall weighting.
func (b *MatrixBuilder) Weights() WeightSet {
	return b.weights
}

// Build walks judges in selection order and, per judge, targets in
// selection order, skipping self-pairs. Responses must be parallel to
// models; a target without a response is skipped rather than invented.
func (b *MatrixBuilder) Build(models []model.Model, responses []model.Response) []model.CrossEvaluation {
	byID := make(map[string]model.Response, len(responses))
	for _, r := range responses {
		byID[r.ModelID] = r
	}

	out := make([]model.CrossEvaluation, 0, len(models)*(len(models)-1))
	for _, judge := range models {
		for _, target := range models {
			if judge.ID == target.ID {
				continue
			}
			resp, ok := byID[target.ID]
			if !ok {
				continue
			}
			out = append(out, b.evaluate(judge, target, resp))
		}
	}
	return out
}

// evaluate scores one target response under one judge persona.
func (b *MatrixBuilder) evaluate(judge, target model.Model, resp model.Response) model.CrossEvaluation {
	rng := seed.Rand(judge.ID, target.ID, resp.Content)

	metrics := model.Metrics{
		Quality:   b.score(target.Profile.Baseline.Quality, judge.Profile.Leniency, rng),
		Clarity:   b.score(target.Profile.Baseline.Clarity, judge.Profile.Leniency, rng),
		Relevance: b.score(target.Profile.Baseline.Relevance, judge.Profile.Leniency, rng),
		Accuracy:  b.score(target.Profile.Baseline.Accuracy, judge.Profile.Leniency, rng),
	}
	overall := round1(b.weights.Overall(metrics))

	return model.CrossEvaluation{
		JudgeModelID:  judge.ID,
		TargetModelID: target.ID,
		Overall:       overall,
		Metrics:       metrics,
		Rationale:     rationale(target, resp, overall, rng),
	}
}

// score derives one dimension: target baseline plus judge leniency plus
// seeded jitter, clamped to the 0-10 scale and rounded to one decimal.
func (b *MatrixBuilder) score(baseline, leniency float64, rng *rand.Rand) float64 {
	v := baseline + leniency + (rng.Float64()*2-1)*b.jitter
	v = math.Max(minScore, math.Min(maxScore, v))
	return round1(v)
}

var strongRationales = []string{
	"Strong coverage from %[1]s; the %[2]s stands out.",
	"%[1]s answers with precision, and the %[2]s adds real depth.",
	"Hard to fault %[1]s here, particularly the %[2]s.",
}

var solidRationales = []string{
	"%[1]s is solid overall, anchored by the %[2]s.",
	"A dependable pass from %[1]s, though the %[2]s could go further.",
	"%[1]s covers the core question; the %[2]s carries the answer.",
}

var mixedRationales = []string{
	"%[1]s skims the surface; the %[2]s helps but gaps remain.",
	"Uneven coverage from %[1]s despite the %[2]s.",
	"%[1]s leaves the edge cases thin, even with the %[2]s.",
}

// rationale phrases the judgment, referencing the target's response.
func rationale(target model.Model, resp model.Response, overall float64, rng *rand.Rand) string {
	pool := mixedRationales
	switch {
	case overall >= strongBand:
		pool = strongRationales
	case overall >= solidBand:
		pool = solidRationales
	}

	anchor := "core answer"
	if len(resp.Highlights) > 0 {
		anchor = resp.Highlights[rng.Intn(len(resp.Highlights))]
	}
	return fmt.Sprintf(pool[rng.Intn(len(pool))], target.Name, anchor)
}

// round1 keeps scores tidy at one decimal.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
