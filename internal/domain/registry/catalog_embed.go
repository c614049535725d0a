package registry

import _ "embed"

// catalogYAML contains the embedded default model catalog.
//
//go:embed models.yaml
var catalogYAML []byte
