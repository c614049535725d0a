// Package synthesis fabricates per-model responses to a prompt.
package synthesis

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/certamen-io/certamen/internal/domain/model"
	"github.com/certamen-io/certamen/internal/domain/seed"
)

// Default synthesis configuration constants.
const (
	defaultMinHighlights = 2
	defaultMaxHighlights = 4
	topicWords           = 8
	capabilityMentions   = 3
)

// Option applies a configuration option to the TemplateSynthesizer.
type Option func(*TemplateSynthesizer)

// WithHighlightRange sets the bounds for highlights per response.
func WithHighlightRange(minCount, maxCount int) Option {
	return func(s *TemplateSynthesizer) {
		if minCount > 0 && maxCount >= minCount {
			s.minHighlights = minCount
			s.maxHighlights = maxCount
		}
	}
}

// Synthesizer produces one fabricated response per model. Output must be
// a pure function of the model and prompt; repeated calls with identical
// inputs return identical responses.
type Synthesizer interface {
	Synthesize(m model.Model, prompt model.Prompt) model.Response
}

// TemplateSynthesizer implements Synthesizer with seeded template pools.
// No real model is ever called; content is templated from the catalog
// entry and the prompt text.
type TemplateSynthesizer struct {
	minHighlights int
	maxHighlights int
}

// NewTemplateSynthesizer creates a synthesizer with configuration options.
func NewTemplateSynthesizer(opts ...Option) *TemplateSynthesizer {
	s := &TemplateSynthesizer{
		minHighlights: defaultMinHighlights,
		maxHighlights: defaultMaxHighlights,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// styleOpeners keys the first sentence off the model's persona.
var styleOpeners = map[string][]string{
	"balanced":     {"Weighing the trade-offs evenly", "Taking a measured view of the ask"},
	"analytical":   {"Breaking the problem into parts", "Mapping the structure before answering"},
	"direct":       {"Getting straight to the point", "Cutting to the core of the request"},
	"precise":      {"Pinning down the exact requirements", "Starting from precise definitions"},
	"rigorous":     {"Stepping through the reasoning carefully", "Deriving the answer from first principles"},
	"grounded":     {"Anchoring the answer in the source material", "Staying close to the evidence"},
	"adjudicative": {"Weighing each position in turn", "Reviewing the strongest arguments first"},
}

var defaultOpeners = []string{
	"Considering the request as given",
	"Addressing the prompt directly",
}

var closers = []string{
	"The response closes with concrete next steps.",
	"Key assumptions are called out explicitly.",
	"Edge cases are flagged for follow-up.",
	"The answer ends with a short self-critique.",
	"Caveats are separated from the main recommendation.",
}

// capabilityHighlights maps catalog capabilities to highlight phrasing.
var capabilityHighlights = map[string][]string{
	"reasoning":           {"step-by-step derivation", "explicit assumption tracking"},
	"coding":              {"runnable code sketch", "complexity noted per approach"},
	"summarization":       {"tight executive summary", "layered detail on request"},
	"long-context":        {"full-document grounding", "cross-section references"},
	"multilingual":        {"terminology consistent across languages"},
	"math":                {"worked numeric example"},
	"open-weights":        {"reproducible local setup notes"},
	"function-calling":    {"structured tool-call plan"},
	"realtime-search":     {"fresh sources cited inline"},
	"rag":                 {"retrieved passages quoted with attribution"},
	"tool-use":            {"tool invocations laid out in order"},
	"agentic":             {"task broken into delegable steps"},
	"video-understanding": {"frame-level references"},
	"multimodal":          {"visual details woven into the answer"},
}

var genericHighlights = []string{
	"clear section structure",
	"balanced pro and con treatment",
	"quantified claims where possible",
	"terse, skimmable phrasing",
	"speculation separated from fact",
}

// Synthesize fabricates the model's response to the prompt.
func (s *TemplateSynthesizer) Synthesize(m model.Model, prompt model.Prompt) model.Response {
	rng := seed.Rand(m.ID, prompt.Text)

	openers, ok := styleOpeners[m.Profile.Style]
	if !ok {
		openers = defaultOpeners
	}
	opener := openers[rng.Intn(len(openers))]
	topic := condense(prompt.Text)

	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s takes on %q.", opener, m.Name, topic)
	if caps := capabilityPhrase(m.Capabilities); caps != "" {
		fmt.Fprintf(&b, " Drawing on %s's training focus, the answer leans on %s.", m.Vendor, caps)
	}
	if prompt.Multimodal() {
		fmt.Fprintf(&b, " The attached %s is read alongside the text and referenced where relevant.", prompt.ImageFileName)
	}
	fmt.Fprintf(&b, " %s", closers[rng.Intn(len(closers))])

	return model.Response{
		ModelID:         m.ID,
		Content:         b.String(),
		Highlights:      s.pickHighlights(m, rng),
		ModalitySupport: m.ModalitySupport,
	}
}

// pickHighlights draws a bounded number of distinct highlights from the
// model's capability pools, topped up from the generic pool.
func (s *TemplateSynthesizer) pickHighlights(m model.Model, rng *rand.Rand) []string {
	pool := make([]string, 0, len(genericHighlights)+2*len(m.Capabilities))
	for _, c := range m.Capabilities {
		pool = append(pool, capabilityHighlights[c]...)
	}
	pool = append(pool, genericHighlights...)

	count := s.minHighlights
	if spread := s.maxHighlights - s.minHighlights; spread > 0 {
		count += rng.Intn(spread + 1)
	}
	if count > len(pool) {
		count = len(pool)
	}

	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		idx := rng.Intn(len(pool))
		out = append(out, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return out
}

// capabilityPhrase joins up to three capabilities into prose.
func capabilityPhrase(caps []string) string {
	if len(caps) == 0 {
		return ""
	}
	if len(caps) > capabilityMentions {
		caps = caps[:capabilityMentions]
	}
	switch len(caps) {
	case 1:
		return caps[0]
	case 2:
		return caps[0] + " and " + caps[1]
	default:
		return strings.Join(caps[:len(caps)-1], ", ") + ", and " + caps[len(caps)-1]
	}
}

// condense trims the prompt to a short quotable topic.
func condense(text string) string {
	words := strings.Fields(text)
	if len(words) > topicWords {
		return strings.Join(words[:topicWords], " ") + "..."
	}
	return strings.Join(words, " ")
}
