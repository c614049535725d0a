package arbiter

// Option applies a configuration option to the PersonaRanker.
type Option func(*PersonaRanker)

// WithBlend sets the aggregate share of the arbiter score. Values
// outside [0,1] are ignored. At 1.0 the arbiter always follows the
// aggregate order.
func WithBlend(blend float64) Option {
	return func(r *PersonaRanker) {
		if blend >= 0 && blend <= 1 {
			r.blend = blend
		}
	}
}

// WithPersonaSpread sets the half-width of the seeded persona delta.
// Values outside (0, scale] are ignored.
func WithPersonaSpread(spread float64) Option {
	return func(r *PersonaRanker) {
		if spread > 0 && spread <= scaleMax {
			r.spread = spread
		}
	}
}
