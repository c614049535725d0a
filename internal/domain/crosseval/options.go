package crosseval

// Option applies a configuration option to the MatrixBuilder.
type Option func(*MatrixBuilder)

// WithWeights replaces the default overall weighting. Invalid sets are
// ignored in favor of the defaults.
func WithWeights(w WeightSet) Option {
	return func(b *MatrixBuilder) {
		if err := w.Validate(); err == nil {
			b.weights = w
		}
	}
}

// WithJitter sets the half-width of the seeded per-score jitter. Values
// outside (0, 3] are ignored.
func WithJitter(j float64) Option {
	return func(b *MatrixBuilder) {
		if j > 0 && j <= maxJitter {
			b.jitter = j
		}
	}
}
