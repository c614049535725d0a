package model_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	model "github.com/certamen-io/certamen/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	convey.Convey("Given a Model struct", t, func() {
		convey.Convey("When creating a catalog entry", func() {
			m := model.Model{
				ID:              "gpt-4o",
				Name:            "GPT-4o",
				Vendor:          "OpenAI",
				Release:         "2024-05",
				Description:     "Flagship omni model",
				Capabilities:    []string{"reasoning", "coding"},
				ModalitySupport: []string{"text", "image"},
			}

			convey.Convey("Then it should have the correct values", func() {
				convey.So(m.ID, convey.ShouldEqual, "gpt-4o")
				convey.So(m.Name, convey.ShouldEqual, "GPT-4o")
				convey.So(m.Vendor, convey.ShouldEqual, "OpenAI")
				convey.So(m.Capabilities, convey.ShouldResemble, []string{"reasoning", "coding"})
				convey.So(m.ModalitySupport, convey.ShouldContain, "image")
				convey.So(m.Arbiter, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When serializing a model to JSON", func() {
			m := model.Model{
				ID:      "claude-sonnet-4",
				Name:    "Claude Sonnet 4",
				Vendor:  "Anthropic",
				Arbiter: true,
				Profile: model.Profile{
					Baseline: model.Metrics{Quality: 8.8},
					Leniency: 0.3,
					Style:    "analytical",
				},
			}
			data, err := json.Marshal(m)

			convey.Convey("Then profile and arbiter flag should stay internal", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldContainSubstring, `"id":"claude-sonnet-4"`)
				convey.So(string(data), convey.ShouldNotContainSubstring, "arbiter")
				convey.So(string(data), convey.ShouldNotContainSubstring, "leniency")
				convey.So(string(data), convey.ShouldNotContainSubstring, "analytical")
			})
		})

		convey.Convey("When creating a model with zero values", func() {
			m := model.Model{}

			convey.Convey("Then it should have default values", func() {
				convey.So(m.ID, convey.ShouldEqual, "")
				convey.So(m.Capabilities, convey.ShouldBeNil)
				convey.So(m.Profile.Baseline.Quality, convey.ShouldEqual, 0.0)
			})
		})
	})
}

func TestPrompt(t *testing.T) {
	convey.Convey("Given a Prompt struct", t, func() {
		convey.Convey("When the prompt is plain text", func() {
			p := model.Prompt{
				Text:     "Summarize quarterly earnings",
				Modality: model.ModalityText,
			}

			convey.Convey("Then it should not be multimodal", func() {
				convey.So(p.Multimodal(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the prompt declares multimodal with an attachment", func() {
			p := model.Prompt{
				Text:          "Describe this chart",
				Modality:      model.ModalityMultimodal,
				ImageFileName: "q3-revenue.png",
				ImageDataURL:  "data:image/png;base64,AAAA",
			}

			convey.Convey("Then it should be multimodal", func() {
				convey.So(p.Multimodal(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the prompt declares multimodal without an attachment", func() {
			p := model.Prompt{
				Text:     "Describe this chart",
				Modality: model.ModalityMultimodal,
			}

			convey.Convey("Then it should fall back to text behavior", func() {
				convey.So(p.Multimodal(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When serializing a text prompt", func() {
			p := model.Prompt{Text: "hello", Modality: model.ModalityText}
			data, err := json.Marshal(p)

			convey.Convey("Then empty image fields should be omitted", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldNotContainSubstring, "image_file_name")
				convey.So(string(data), convey.ShouldNotContainSubstring, "image_data_url")
			})
		})

		convey.Convey("When the prompt contains special characters", func() {
			p := model.Prompt{
				Text:     "compare résumé parsing 🚀 across vendors",
				Modality: model.ModalityText,
			}

			convey.Convey("Then the text should be preserved", func() {
				convey.So(p.Text, convey.ShouldContainSubstring, "résumé")
				convey.So(p.Text, convey.ShouldContainSubstring, "🚀")
			})
		})
	})
}

func TestSelectionBounds(t *testing.T) {
	convey.Convey("Given the selection bounds", t, func() {
		convey.Convey("Then they should frame a four or five model run", func() {
			convey.So(model.MinSelection, convey.ShouldEqual, 4)
			convey.So(model.MaxSelection, convey.ShouldEqual, 5)
			convey.So(model.TopThreeSize, convey.ShouldEqual, 3)
			convey.So(model.MinSelection, convey.ShouldBeGreaterThan, model.TopThreeSize)
		})
	})
}

func TestOutcomeShape(t *testing.T) {
	convey.Convey("Given a populated Outcome", t, func() {
		outcome := model.Outcome{
			Responses: []model.Response{
				{ModelID: "m1", Content: "answer", Highlights: []string{"a", "b"}},
			},
			CrossEvaluations: []model.CrossEvaluation{
				{
					JudgeModelID:  "m1",
					TargetModelID: "m2",
					Overall:       8.4,
					Metrics:       model.Metrics{Quality: 8.0, Clarity: 8.5, Relevance: 8.6, Accuracy: 8.5},
					Rationale:     "solid coverage of the question",
				},
			},
			Aggregates: []model.AggregatedScore{
				{ModelID: "m2", MeanMetrics: model.Metrics{Quality: 8.0}, Overall: 8.2},
			},
			TopThree: []model.AggregatedScore{
				{ModelID: "m2", Overall: 8.2},
			},
			GeminiRanking: []model.RankingEntry{
				{ModelID: "m2", Placement: 1, Confidence: 0.91, Rationale: "strongest overall"},
			},
		}

		convey.Convey("When serializing to JSON", func() {
			data, err := json.Marshal(outcome)

			convey.Convey("Then the wire keys should be snake_case", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldContainSubstring, `"cross_evaluations"`)
				convey.So(string(data), convey.ShouldContainSubstring, `"judge_model_id"`)
				convey.So(string(data), convey.ShouldContainSubstring, `"mean_metrics"`)
				convey.So(string(data), convey.ShouldContainSubstring, `"top_three"`)
				convey.So(string(data), convey.ShouldContainSubstring, `"gemini_ranking"`)
			})

			convey.Convey("Then it should round-trip", func() {
				var decoded model.Outcome
				convey.So(json.Unmarshal(data, &decoded), convey.ShouldBeNil)
				convey.So(decoded, convey.ShouldResemble, outcome)
			})
		})
	})
}

func TestSentinelErrors(t *testing.T) {
	convey.Convey("Given the input error sentinels", t, func() {
		convey.Convey("When wrapping with context", func() {
			err := fmt.Errorf("%w: size 3 outside [4,5]", model.ErrInvalidSelection)

			convey.Convey("Then errors.Is should still match", func() {
				convey.So(errors.Is(err, model.ErrInvalidSelection), convey.ShouldBeTrue)
				convey.So(errors.Is(err, model.ErrInvalidPrompt), convey.ShouldBeFalse)
			})
		})

		convey.Convey("Then the sentinels should be distinct", func() {
			convey.So(errors.Is(model.ErrInvalidPrompt, model.ErrInvalidSelection), convey.ShouldBeFalse)
		})
	})
}
