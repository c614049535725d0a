package bench

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// fixture builds a 4-model submission with an outcome that honors the
// whole contract: complete matrix, exact means, sorted leaderboard and
// a well-formed ranking.
func fixture() (Submission, Outcome) {
	sub := Submission{
		RunID:    "run-1",
		ModelIDs: []string{"alpha", "bravo", "charlie", "delta"},
		Prompt:   Prompt{Text: "compare things", Modality: "text"},
	}

	// Every judgment targeting a model carries that model's base score,
	// so aggregate means equal the base exactly.
	base := map[string]float64{"alpha": 8, "bravo": 7, "charlie": 6, "delta": 5}

	var out Outcome
	for _, id := range sub.ModelIDs {
		out.Responses = append(out.Responses, Response{
			ModelID:    id,
			Content:    "answer from " + id,
			Highlights: []string{"direct", "grounded"},
		})
	}
	for _, judge := range sub.ModelIDs {
		for _, target := range sub.ModelIDs {
			if judge == target {
				continue
			}
			s := base[target]
			out.CrossEvaluations = append(out.CrossEvaluations, CrossEvaluation{
				JudgeModelID:  judge,
				TargetModelID: target,
				Overall:       s,
				Metrics:       Metrics{Quality: s, Clarity: s, Relevance: s, Accuracy: s},
				Rationale:     "steady work",
			})
		}
	}
	for _, id := range []string{"alpha", "bravo", "charlie", "delta"} {
		s := base[id]
		out.Aggregates = append(out.Aggregates, AggregatedScore{
			ModelID:     id,
			MeanMetrics: Metrics{Quality: s, Clarity: s, Relevance: s, Accuracy: s},
			Overall:     s,
		})
	}
	out.TopThree = append([]AggregatedScore{}, out.Aggregates[:3]...)
	out.GeminiRanking = []RankingEntry{
		{ModelID: "bravo", Placement: 1, Confidence: 0.9, Rationale: "strongest finish"},
		{ModelID: "alpha", Placement: 2, Confidence: 0.8, Rationale: "close behind"},
		{ModelID: "charlie", Placement: 3, Confidence: 0.7, Rationale: "solid third"},
	}
	return sub, out
}

func TestCheckOutcome(t *testing.T) {
	Convey("Given a contract-honoring outcome", t, func() {
		sub, out := fixture()

		Convey("Then it should pass with no violations", func() {
			So(checkOutcome(sub, &out), ShouldBeEmpty)
		})

		Convey("When a cross evaluation is missing", func() {
			out.CrossEvaluations = out.CrossEvaluations[1:]

			Convey("Then the pair count should be flagged", func() {
				violations := checkOutcome(sub, &out)
				So(violations, ShouldNotBeEmpty)
				So(violations[0], ShouldContainSubstring, "expected 12 cross evaluations")
			})
		})

		Convey("When a model judges itself", func() {
			out.CrossEvaluations[0].TargetModelID = out.CrossEvaluations[0].JudgeModelID

			Convey("Then the self pair should be flagged", func() {
				violations := checkOutcome(sub, &out)
				So(violations, ShouldNotBeEmpty)
				found := false
				for _, v := range violations {
					if v == "alpha judged itself" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When a metric leaves the scale", func() {
			out.CrossEvaluations[0].Metrics.Quality = 12

			Convey("Then the range should be flagged", func() {
				violations := checkOutcome(sub, &out)
				So(violations, ShouldNotBeEmpty)
			})
		})

		Convey("When an aggregate drifts from the matrix mean", func() {
			out.Aggregates[0].Overall += 0.5
			out.TopThree[0].Overall += 0.5

			Convey("Then the drift should be flagged", func() {
				violations := checkOutcome(sub, &out)
				So(violations, ShouldNotBeEmpty)
				found := false
				for _, v := range violations {
					if strings.HasPrefix(v, "aggregate") {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When the leaderboard is out of order", func() {
			out.Aggregates[0], out.Aggregates[1] = out.Aggregates[1], out.Aggregates[0]
			out.TopThree[0], out.TopThree[1] = out.TopThree[1], out.TopThree[0]

			Convey("Then the sort should be flagged", func() {
				violations := checkOutcome(sub, &out)
				So(violations, ShouldNotBeEmpty)
				found := false
				for _, v := range violations {
					if v == "leaderboard not sorted: bravo above alpha" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When the finalists do not match the leaderboard head", func() {
			out.TopThree[2] = out.Aggregates[3]

			Convey("Then the finalist should be flagged", func() {
				violations := checkOutcome(sub, &out)
				So(violations, ShouldNotBeEmpty)
			})
		})

		Convey("When a placement repeats", func() {
			out.GeminiRanking[2].Placement = 1

			Convey("Then the duplicate should be flagged", func() {
				violations := checkOutcome(sub, &out)
				So(violations, ShouldNotBeEmpty)
				found := false
				for _, v := range violations {
					if v == "duplicate placement 1" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When confidence leaves the unit interval", func() {
			out.GeminiRanking[0].Confidence = 1.4

			Convey("Then the range should be flagged", func() {
				So(checkOutcome(sub, &out), ShouldNotBeEmpty)
			})
		})

		Convey("When the ranking includes a non-finalist", func() {
			out.GeminiRanking[0].ModelID = "delta"

			Convey("Then the outsider should be flagged", func() {
				violations := checkOutcome(sub, &out)
				So(violations, ShouldNotBeEmpty)
				found := false
				for _, v := range violations {
					if v == "ranking includes delta which is not a finalist" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When responses leave selection order", func() {
			out.Responses[0], out.Responses[1] = out.Responses[1], out.Responses[0]

			Convey("Then the order should be flagged", func() {
				So(checkOutcome(sub, &out), ShouldNotBeEmpty)
			})
		})

		Convey("When a response has too few highlights", func() {
			out.Responses[0].Highlights = out.Responses[0].Highlights[:1]

			Convey("Then the highlight count should be flagged", func() {
				So(checkOutcome(sub, &out), ShouldNotBeEmpty)
			})
		})
	})
}

func TestMeansFromMatrix(t *testing.T) {
	Convey("Given a matrix with judgments for one target", t, func() {
		evals := []CrossEvaluation{
			{JudgeModelID: "a", TargetModelID: "x", Overall: 6, Metrics: Metrics{Quality: 4, Clarity: 6, Relevance: 8, Accuracy: 6}},
			{JudgeModelID: "b", TargetModelID: "x", Overall: 8, Metrics: Metrics{Quality: 8, Clarity: 8, Relevance: 6, Accuracy: 10}},
			{JudgeModelID: "a", TargetModelID: "y", Overall: 2, Metrics: Metrics{Quality: 2, Clarity: 2, Relevance: 2, Accuracy: 2}},
		}

		Convey("When averaging the target", func() {
			mean, overall, count := meansFromMatrix("x", evals)

			Convey("Then only its judgments should contribute", func() {
				So(count, ShouldEqual, 2)
				So(overall, ShouldAlmostEqual, 7)
				So(mean.Quality, ShouldAlmostEqual, 6)
				So(mean.Clarity, ShouldAlmostEqual, 7)
				So(mean.Relevance, ShouldAlmostEqual, 7)
				So(mean.Accuracy, ShouldAlmostEqual, 8)
			})
		})

		Convey("When averaging an unknown target", func() {
			_, _, count := meansFromMatrix("z", evals)

			Convey("Then nothing should contribute", func() {
				So(count, ShouldEqual, 0)
			})
		})
	})
}
