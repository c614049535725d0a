package synthesis_test

import (
	"strings"
	"testing"

	"github.com/certamen-io/certamen/internal/domain/model"
	"github.com/certamen-io/certamen/internal/domain/synthesis"
	. "github.com/smartystreets/goconvey/convey"
)

func fixtureModel() model.Model {
	return model.Model{
		ID:              "claude-sonnet-4",
		Name:            "Claude Sonnet 4",
		Vendor:          "Anthropic",
		Capabilities:    []string{"reasoning", "coding", "long-context"},
		ModalitySupport: []string{"text", "image"},
		Profile: model.Profile{
			Baseline: model.Metrics{Quality: 8.8, Clarity: 9.0, Relevance: 8.6, Accuracy: 8.7},
			Leniency: 0.3,
			Style:    "analytical",
		},
	}
}

func textPrompt(text string) model.Prompt {
	return model.Prompt{Text: text, Modality: model.ModalityText}
}

func TestSynthesizeDeterminism(t *testing.T) {
	Convey("Given a template synthesizer", t, func() {
		s := synthesis.NewTemplateSynthesizer()
		m := fixtureModel()
		prompt := textPrompt("Summarize quarterly earnings")

		Convey("When synthesizing twice with identical inputs", func() {
			first := s.Synthesize(m, prompt)
			second := s.Synthesize(m, prompt)

			Convey("Then the responses should be identical", func() {
				So(second, ShouldResemble, first)
			})
		})

		Convey("When the prompt changes", func() {
			first := s.Synthesize(m, prompt)
			second := s.Synthesize(m, textPrompt("Draft a migration plan for the data warehouse"))

			Convey("Then the content should change", func() {
				So(second.Content, ShouldNotEqual, first.Content)
			})
		})

		Convey("When the model changes", func() {
			other := fixtureModel()
			other.ID = "gpt-4o"
			other.Name = "GPT-4o"
			other.Vendor = "OpenAI"
			other.Profile.Style = "balanced"

			first := s.Synthesize(m, prompt)
			second := s.Synthesize(other, prompt)

			Convey("Then the content should differ per model", func() {
				So(second.Content, ShouldNotEqual, first.Content)
				So(second.ModelID, ShouldEqual, "gpt-4o")
			})
		})
	})
}

func TestSynthesizeContent(t *testing.T) {
	Convey("Given a template synthesizer", t, func() {
		s := synthesis.NewTemplateSynthesizer()
		m := fixtureModel()

		Convey("When synthesizing a text prompt", func() {
			resp := s.Synthesize(m, textPrompt("Summarize quarterly earnings"))

			Convey("Then the content should reference model and prompt", func() {
				So(resp.Content, ShouldContainSubstring, "Claude Sonnet 4")
				So(resp.Content, ShouldContainSubstring, "Summarize quarterly earnings")
				So(resp.Content, ShouldContainSubstring, "Anthropic")
			})

			Convey("Then modality support should mirror the catalog entry", func() {
				So(resp.ModalitySupport, ShouldResemble, []string{"text", "image"})
			})

			Convey("Then no attachment should be mentioned", func() {
				So(resp.Content, ShouldNotContainSubstring, "attached")
			})
		})

		Convey("When the prompt is long", func() {
			long := "one two three four five six seven eight nine ten eleven twelve"
			resp := s.Synthesize(m, textPrompt(long))

			Convey("Then the quoted topic should be condensed", func() {
				So(resp.Content, ShouldContainSubstring, "one two three four five six seven eight...")
				So(resp.Content, ShouldNotContainSubstring, "twelve")
			})
		})

		Convey("When the prompt is multimodal with an attachment", func() {
			prompt := model.Prompt{
				Text:          "Describe this chart",
				Modality:      model.ModalityMultimodal,
				ImageFileName: "q3-revenue.png",
			}
			resp := s.Synthesize(m, prompt)

			Convey("Then the attachment should be acknowledged", func() {
				So(resp.Content, ShouldContainSubstring, "q3-revenue.png")
			})
		})

		Convey("When the model has an unknown persona style", func() {
			odd := fixtureModel()
			odd.Profile.Style = "freewheeling"
			resp := s.Synthesize(odd, textPrompt("Summarize quarterly earnings"))

			Convey("Then synthesis should still produce content", func() {
				So(resp.Content, ShouldNotBeEmpty)
			})
		})
	})
}

func TestSynthesizeHighlights(t *testing.T) {
	Convey("Given a template synthesizer", t, func() {
		s := synthesis.NewTemplateSynthesizer()
		m := fixtureModel()

		Convey("When synthesizing a response", func() {
			resp := s.Synthesize(m, textPrompt("Summarize quarterly earnings"))

			Convey("Then the highlight count should stay in bounds", func() {
				So(len(resp.Highlights), ShouldBeBetweenOrEqual, 2, 4)
			})

			Convey("Then highlights should be distinct", func() {
				seen := make(map[string]bool)
				for _, h := range resp.Highlights {
					So(seen[h], ShouldBeFalse)
					seen[h] = true
					So(strings.TrimSpace(h), ShouldNotBeEmpty)
				}
			})
		})

		Convey("When a custom highlight range is set", func() {
			fixed := synthesis.NewTemplateSynthesizer(synthesis.WithHighlightRange(3, 3))
			resp := fixed.Synthesize(m, textPrompt("Summarize quarterly earnings"))

			Convey("Then exactly that many highlights should be produced", func() {
				So(len(resp.Highlights), ShouldEqual, 3)
			})
		})

		Convey("When an invalid highlight range is given", func() {
			fallback := synthesis.NewTemplateSynthesizer(synthesis.WithHighlightRange(5, 1))
			resp := fallback.Synthesize(m, textPrompt("Summarize quarterly earnings"))

			Convey("Then the defaults should hold", func() {
				So(len(resp.Highlights), ShouldBeBetweenOrEqual, 2, 4)
			})
		})
	})
}
