// Package model contains domain types passed between layers.
package model

// Prompt modalities. Anything else is treated as plain text.
const (
	ModalityText       = "text"
	ModalityMultimodal = "multimodal"
)

// Selection bounds for a single evaluation run. Selections outside this
// range are rejected before any synthesis work begins.
const (
	MinSelection = 4
	MaxSelection = 5
)

// TopThreeSize is how many finalists advance to the arbiter.
const TopThreeSize = 3

// Model describes one catalog entry. Fields mirror the OpenAPI schema
// for /models. The catalog is immutable after startup.
type Model struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Vendor          string   `json:"vendor"`
	Release         string   `json:"release"`
	Description     string   `json:"description"`
	Capabilities    []string `json:"capabilities"`
	ModalitySupport []string `json:"modality_support"`
	Arbiter         bool     `json:"-"` // designated meta-evaluator, excluded from selection
	Profile         Profile  `json:"-"`
}

// Profile biases the synthetic scores a model attracts and hands out.
// Baselines share the 0-10 scale of evaluation metrics. Profiles are
// catalog data and never serialized in responses.
type Profile struct {
	Baseline Metrics
	Leniency float64 // additive bias applied to every score the model hands out as judge
	Style    string  // persona key for highlight and rationale pools
}

// Metrics holds the four per-dimension scores on a 0-10 scale.
type Metrics struct {
	Quality   float64 `json:"quality"`
	Clarity   float64 `json:"clarity"`
	Relevance float64 `json:"relevance"`
	Accuracy  float64 `json:"accuracy"`
}

// Prompt is the user submission driving one evaluation run. The image
// fields are opaque payload, carried through but never parsed.
type Prompt struct {
	Text          string `json:"text"`
	Modality      string `json:"modality"`
	ImageFileName string `json:"image_file_name,omitempty"`
	ImageDataURL  string `json:"image_data_url,omitempty"`
}

// Multimodal reports whether the prompt carries an image attachment.
func (p Prompt) Multimodal() bool {
	return p.Modality == ModalityMultimodal && p.ImageFileName != ""
}
