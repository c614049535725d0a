package aggregate_test

import (
	"testing"

	"github.com/certamen-io/certamen/internal/domain/aggregate"
	"github.com/certamen-io/certamen/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func judgment(judge, target string, quality, clarity, relevance, accuracy, overall float64) model.CrossEvaluation {
	return model.CrossEvaluation{
		JudgeModelID:  judge,
		TargetModelID: target,
		Overall:       overall,
		Metrics:       model.Metrics{Quality: quality, Clarity: clarity, Relevance: relevance, Accuracy: accuracy},
		Rationale:     "fixture",
	}
}

func TestReduce(t *testing.T) {
	convey.Convey("Given a judgment matrix over four models", t, func() {
		selected := []string{"alpha", "bravo", "charlie", "delta"}
		evals := []model.CrossEvaluation{
			judgment("bravo", "alpha", 8.0, 7.0, 9.0, 8.0, 8.0),
			judgment("charlie", "alpha", 9.0, 8.0, 8.0, 9.0, 8.5),
			judgment("delta", "alpha", 7.0, 9.0, 7.0, 7.0, 7.5),

			judgment("alpha", "bravo", 6.0, 6.5, 6.0, 6.5, 6.2),
			judgment("charlie", "bravo", 7.0, 7.5, 7.0, 7.5, 7.2),
			judgment("delta", "bravo", 8.0, 8.5, 8.0, 8.5, 8.2),

			judgment("alpha", "charlie", 9.0, 9.0, 9.0, 9.0, 9.0),
			judgment("bravo", "charlie", 8.0, 8.0, 8.0, 8.0, 8.0),
			judgment("delta", "charlie", 7.0, 7.0, 7.0, 7.0, 7.0),

			judgment("alpha", "delta", 5.0, 5.0, 5.0, 5.0, 5.0),
			judgment("bravo", "delta", 6.0, 6.0, 6.0, 6.0, 6.0),
			judgment("charlie", "delta", 7.0, 7.0, 7.0, 7.0, 7.0),
		}

		convey.Convey("When reducing", func() {
			aggs := aggregate.Reduce(selected, evals)

			convey.Convey("Then there should be one aggregate per selected id in order", func() {
				convey.So(len(aggs), convey.ShouldEqual, 4)
				convey.So(aggs[0].ModelID, convey.ShouldEqual, "alpha")
				convey.So(aggs[1].ModelID, convey.ShouldEqual, "bravo")
				convey.So(aggs[2].ModelID, convey.ShouldEqual, "charlie")
				convey.So(aggs[3].ModelID, convey.ShouldEqual, "delta")
			})

			convey.Convey("Then means should equal the hand-computed averages", func() {
				alpha := aggs[0]
				convey.So(alpha.MeanMetrics.Quality, convey.ShouldAlmostEqual, 8.0, 1e-9)
				convey.So(alpha.MeanMetrics.Clarity, convey.ShouldAlmostEqual, 8.0, 1e-9)
				convey.So(alpha.MeanMetrics.Relevance, convey.ShouldAlmostEqual, 8.0, 1e-9)
				convey.So(alpha.MeanMetrics.Accuracy, convey.ShouldAlmostEqual, 8.0, 1e-9)
				convey.So(alpha.Overall, convey.ShouldAlmostEqual, 8.0, 1e-9)

				charlie := aggs[2]
				convey.So(charlie.MeanMetrics.Quality, convey.ShouldAlmostEqual, 8.0, 1e-9)
				convey.So(charlie.Overall, convey.ShouldAlmostEqual, 8.0, 1e-9)
			})

			convey.Convey("Then each aggregate should average exactly N-1 judgments", func() {
				counts := make(map[string]int)
				for _, e := range evals {
					counts[e.TargetModelID]++
				}
				for _, id := range selected {
					convey.So(counts[id], convey.ShouldEqual, len(selected)-1)
				}
			})
		})

		convey.Convey("When a selected model has no incoming judgments", func() {
			withGhost := append([]string{}, selected...)
			withGhost = append(withGhost, "ghost")
			aggs := aggregate.Reduce(withGhost, evals)

			convey.Convey("Then it should default to zero scores, not error", func() {
				convey.So(len(aggs), convey.ShouldEqual, 5)
				ghost := aggs[4]
				convey.So(ghost.ModelID, convey.ShouldEqual, "ghost")
				convey.So(ghost.Overall, convey.ShouldEqual, 0.0)
				convey.So(ghost.MeanMetrics, convey.ShouldResemble, model.Metrics{})
			})
		})

		convey.Convey("When judgments target ids outside the selection", func() {
			noisy := append([]model.CrossEvaluation{}, evals...)
			noisy = append(noisy, judgment("alpha", "intruder", 9.9, 9.9, 9.9, 9.9, 9.9))
			aggs := aggregate.Reduce(selected, noisy)

			convey.Convey("Then they should be ignored", func() {
				convey.So(len(aggs), convey.ShouldEqual, 4)
				for _, a := range aggs {
					convey.So(a.ModelID, convey.ShouldNotEqual, "intruder")
				}
			})
		})
	})
}

func TestRank(t *testing.T) {
	convey.Convey("Given aggregates with distinct overalls", t, func() {
		aggs := []model.AggregatedScore{
			{ModelID: "low", Overall: 6.1},
			{ModelID: "high", Overall: 9.2},
			{ModelID: "mid", Overall: 7.7},
		}

		convey.Convey("When ranking", func() {
			ranked := aggregate.Rank(aggs)

			convey.Convey("Then order should be overall descending", func() {
				convey.So(ranked[0].ModelID, convey.ShouldEqual, "high")
				convey.So(ranked[1].ModelID, convey.ShouldEqual, "mid")
				convey.So(ranked[2].ModelID, convey.ShouldEqual, "low")
			})

			convey.Convey("Then the input should be untouched", func() {
				convey.So(aggs[0].ModelID, convey.ShouldEqual, "low")
			})
		})
	})

	convey.Convey("Given aggregates tied on overall", t, func() {
		aggs := []model.AggregatedScore{
			{ModelID: "lower-accuracy", Overall: 8.0, MeanMetrics: model.Metrics{Accuracy: 7.5}},
			{ModelID: "higher-accuracy", Overall: 8.0, MeanMetrics: model.Metrics{Accuracy: 8.5}},
		}

		convey.Convey("When ranking", func() {
			ranked := aggregate.Rank(aggs)

			convey.Convey("Then higher mean accuracy should win the tie", func() {
				convey.So(ranked[0].ModelID, convey.ShouldEqual, "higher-accuracy")
				convey.So(ranked[1].ModelID, convey.ShouldEqual, "lower-accuracy")
			})
		})
	})

	convey.Convey("Given aggregates tied on overall and accuracy", t, func() {
		aggs := []model.AggregatedScore{
			{ModelID: "zulu", Overall: 8.0, MeanMetrics: model.Metrics{Accuracy: 8.0}},
			{ModelID: "alpha", Overall: 8.0, MeanMetrics: model.Metrics{Accuracy: 8.0}},
			{ModelID: "mike", Overall: 8.0, MeanMetrics: model.Metrics{Accuracy: 8.0}},
		}

		convey.Convey("When ranking", func() {
			ranked := aggregate.Rank(aggs)

			convey.Convey("Then lexicographic id should settle the order", func() {
				convey.So(ranked[0].ModelID, convey.ShouldEqual, "alpha")
				convey.So(ranked[1].ModelID, convey.ShouldEqual, "mike")
				convey.So(ranked[2].ModelID, convey.ShouldEqual, "zulu")
			})
		})
	})
}

func TestTopN(t *testing.T) {
	convey.Convey("Given five ranked aggregates", t, func() {
		aggs := []model.AggregatedScore{
			{ModelID: "a", Overall: 5.0},
			{ModelID: "b", Overall: 9.0},
			{ModelID: "c", Overall: 7.0},
			{ModelID: "d", Overall: 8.0},
			{ModelID: "e", Overall: 6.0},
		}

		convey.Convey("When taking the top three", func() {
			top := aggregate.TopN(aggs, 3)

			convey.Convey("Then the three best should come back in rank order", func() {
				convey.So(len(top), convey.ShouldEqual, 3)
				convey.So(top[0].ModelID, convey.ShouldEqual, "b")
				convey.So(top[1].ModelID, convey.ShouldEqual, "d")
				convey.So(top[2].ModelID, convey.ShouldEqual, "c")
			})
		})

		convey.Convey("When asking for more than exist", func() {
			top := aggregate.TopN(aggs, 10)

			convey.Convey("Then all entries should come back", func() {
				convey.So(len(top), convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When asking for none", func() {
			convey.So(len(aggregate.TopN(aggs, 0)), convey.ShouldEqual, 0)
		})

		convey.Convey("When asking for a negative count", func() {
			convey.So(len(aggregate.TopN(aggs, -2)), convey.ShouldEqual, 0)
		})
	})
}
