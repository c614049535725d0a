package registry

// Option applies a configuration option to the Registry.
type Option func(*Registry)

// WithCatalog replaces the embedded catalog with raw YAML. Intended for
// tests and alternative deployments; the bytes must satisfy the same
// shape and validation rules as the embedded catalog.
func WithCatalog(raw []byte) Option {
	return func(r *Registry) {
		r.raw = raw
	}
}
