package crosseval

import (
	"fmt"
	"math"

	"github.com/certamen-io/certamen/internal/domain/model"
)

// weightTolerance bounds drift when validating that weights sum to 1.0.
const weightTolerance = 0.001

// WeightSet defines the relative importance of each metric dimension in
// the overall score. All weights must sum to 1.0 (within tolerance) and
// are identical across every judge/target pair.
type WeightSet struct {
	Quality   float64
	Clarity   float64
	Relevance float64
	Accuracy  float64
}

// DefaultWeights returns the documented equal-weight distribution: each
// dimension contributes 25% of the overall score.
func DefaultWeights() WeightSet {
	return WeightSet{
		Quality:   0.25,
		Clarity:   0.25,
		Relevance: 0.25,
		Accuracy:  0.25,
	}
}

// Sum returns the total of all weights.
func (w WeightSet) Sum() float64 {
	return w.Quality + w.Clarity + w.Relevance + w.Accuracy
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w WeightSet) Validate() error {
	if math.Abs(w.Sum()-1.0) > weightTolerance {
		return fmt.Errorf("%w: sum %.4f, must be 1.0", ErrInvalidWeights, w.Sum())
	}
	for _, v := range w.asList() {
		if v < 0 {
			return fmt.Errorf("%w: negative weight %f", ErrInvalidWeights, v)
		}
	}
	return nil
}

// Overall combines the four dimension scores into one number on the same
// 0-10 scale.
func (w WeightSet) Overall(m model.Metrics) float64 {
	return m.Quality*w.Quality + m.Clarity*w.Clarity + m.Relevance*w.Relevance + m.Accuracy*w.Accuracy
}

func (w WeightSet) asList() []float64 {
	return []float64{w.Quality, w.Clarity, w.Relevance, w.Accuracy}
}
