package bench

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
)

// verifyResults checks every successful outcome against the arena
// contract and tallies violations.
func verifyResults(ctx context.Context, config *Config, results []Result, stats *Stats) error {
	log.Println("🔍 Verifying outcomes...")

	checked := 0
	for _, result := range results {
		if result.Status != StatusOK {
			continue
		}

		var outcome Outcome
		if err := unmarshalJSON(result.Envelope.Outcome, &outcome); err != nil {
			stats.CheckFailures++
			log.Printf("⚠️  Run %s: outcome did not decode: %v", result.Submission.RunID, err)
			continue
		}

		checked++
		stats.CrossEvalsSeen += len(outcome.CrossEvaluations)

		violations := checkOutcome(result.Submission, &outcome)
		stats.CheckFailures += len(violations)
		for _, v := range violations {
			log.Printf("⚠️  Run %s: %s", result.Submission.RunID, v)
		}
	}

	if checked == 0 {
		return fmt.Errorf("no successful outcomes to verify")
	}

	displayWinners(results, config.Verbose)

	if stats.CheckFailures == 0 {
		log.Printf("✅ Verified %d outcomes, no contract violations", checked)
	} else {
		log.Printf("⚠️  Verified %d outcomes, %d contract violations", checked, stats.CheckFailures)
	}
	return nil
}

// checkOutcome returns every contract violation in one outcome.
//
//nolint:gocognit,gocyclo // one linear pass per contract clause
func checkOutcome(sub Submission, out *Outcome) []string {
	var violations []string
	bad := func(format string, args ...interface{}) {
		violations = append(violations, fmt.Sprintf(format, args...))
	}

	n := len(sub.ModelIDs)
	selected := make(map[string]bool, n)
	for _, id := range sub.ModelIDs {
		selected[id] = true
	}

	// Responses: one per selected model, in selection order.
	if len(out.Responses) != n {
		bad("expected %d responses, got %d", n, len(out.Responses))
	} else {
		for i, r := range out.Responses {
			if r.ModelID != sub.ModelIDs[i] {
				bad("response %d is from %s, expected %s", i, r.ModelID, sub.ModelIDs[i])
			}
			if len(r.Highlights) < 2 || len(r.Highlights) > 4 {
				bad("response from %s has %d highlights, expected 2..4", r.ModelID, len(r.Highlights))
			}
		}
	}

	// Matrix: every ordered judge-target pair exactly once, no self pairs.
	expectedPairs := n * (n - 1)
	if len(out.CrossEvaluations) != expectedPairs {
		bad("expected %d cross evaluations, got %d", expectedPairs, len(out.CrossEvaluations))
	}
	seenPairs := make(map[string]bool, expectedPairs)
	for _, e := range out.CrossEvaluations {
		if e.JudgeModelID == e.TargetModelID {
			bad("%s judged itself", e.JudgeModelID)
		}
		if !selected[e.JudgeModelID] || !selected[e.TargetModelID] {
			bad("pair %s->%s is outside the selection", e.JudgeModelID, e.TargetModelID)
		}
		key := e.JudgeModelID + "->" + e.TargetModelID
		if seenPairs[key] {
			bad("duplicate pair %s", key)
		}
		seenPairs[key] = true
		for name, v := range map[string]float64{
			"quality": e.Metrics.Quality, "clarity": e.Metrics.Clarity,
			"relevance": e.Metrics.Relevance, "accuracy": e.Metrics.Accuracy,
			"overall": e.Overall,
		} {
			if v < 0 || v > 10 {
				bad("pair %s has %s %.3f outside 0..10", key, name, v)
			}
		}
	}

	// Aggregates: per-target means of the matrix, sorted as a leaderboard.
	if len(out.Aggregates) != n {
		bad("expected %d aggregates, got %d", n, len(out.Aggregates))
	}
	for _, agg := range out.Aggregates {
		if !selected[agg.ModelID] {
			bad("aggregate for %s is outside the selection", agg.ModelID)
			continue
		}
		mean, overall, count := meansFromMatrix(agg.ModelID, out.CrossEvaluations)
		if count != n-1 {
			continue // already reported as a matrix violation
		}
		for name, pair := range map[string][2]float64{
			"quality":   {agg.MeanMetrics.Quality, mean.Quality},
			"clarity":   {agg.MeanMetrics.Clarity, mean.Clarity},
			"relevance": {agg.MeanMetrics.Relevance, mean.Relevance},
			"accuracy":  {agg.MeanMetrics.Accuracy, mean.Accuracy},
			"overall":   {agg.Overall, overall},
		} {
			if math.Abs(pair[0]-pair[1]) > floatTolerance {
				bad("aggregate %s for %s is %.6f, matrix mean is %.6f", name, agg.ModelID, pair[0], pair[1])
			}
		}
	}
	for i := 1; i < len(out.Aggregates); i++ {
		prev, cur := out.Aggregates[i-1], out.Aggregates[i]
		switch {
		case cur.Overall > prev.Overall:
			bad("leaderboard not sorted: %s above %s", prev.ModelID, cur.ModelID)
		case cur.Overall == prev.Overall && cur.MeanMetrics.Accuracy > prev.MeanMetrics.Accuracy:
			bad("tie between %s and %s not broken by accuracy", prev.ModelID, cur.ModelID)
		case cur.Overall == prev.Overall && cur.MeanMetrics.Accuracy == prev.MeanMetrics.Accuracy && cur.ModelID < prev.ModelID:
			bad("tie between %s and %s not broken by id", prev.ModelID, cur.ModelID)
		}
	}

	// Top three: the head of the leaderboard.
	finalists := minInt(3, n)
	if len(out.TopThree) != finalists {
		bad("expected %d finalists, got %d", finalists, len(out.TopThree))
	} else {
		for i, top := range out.TopThree {
			if i < len(out.Aggregates) && top.ModelID != out.Aggregates[i].ModelID {
				bad("finalist %d is %s, leaderboard row is %s", i, top.ModelID, out.Aggregates[i].ModelID)
			}
		}
	}

	// Ranking: a permutation of the finalists with sane confidence.
	if len(out.GeminiRanking) != finalists {
		bad("expected %d ranking entries, got %d", finalists, len(out.GeminiRanking))
	}
	finalistIDs := make(map[string]bool, finalists)
	for _, top := range out.TopThree {
		finalistIDs[top.ModelID] = true
	}
	placements := make(map[int]bool, len(out.GeminiRanking))
	for _, entry := range out.GeminiRanking {
		if !finalistIDs[entry.ModelID] {
			bad("ranking includes %s which is not a finalist", entry.ModelID)
		}
		if entry.Placement < 1 || entry.Placement > len(out.GeminiRanking) {
			bad("placement %d for %s outside 1..%d", entry.Placement, entry.ModelID, len(out.GeminiRanking))
		}
		if placements[entry.Placement] {
			bad("duplicate placement %d", entry.Placement)
		}
		placements[entry.Placement] = true
		if entry.Confidence < 0 || entry.Confidence > 1 {
			bad("confidence %.3f for %s outside 0..1", entry.Confidence, entry.ModelID)
		}
		if entry.Rationale == "" {
			bad("empty rationale for %s", entry.ModelID)
		}
	}

	return violations
}

// meansFromMatrix averages every judgment targeting one model.
func meansFromMatrix(targetID string, evals []CrossEvaluation) (Metrics, float64, int) {
	var mean Metrics
	var overall float64
	count := 0
	for _, e := range evals {
		if e.TargetModelID != targetID {
			continue
		}
		mean.Quality += e.Metrics.Quality
		mean.Clarity += e.Metrics.Clarity
		mean.Relevance += e.Metrics.Relevance
		mean.Accuracy += e.Metrics.Accuracy
		overall += e.Overall
		count++
	}
	if count == 0 {
		return Metrics{}, 0, 0
	}
	f := float64(count)
	mean.Quality /= f
	mean.Clarity /= f
	mean.Relevance /= f
	mean.Accuracy /= f
	return mean, overall / f, count
}

// displayWinners shows how first placements spread across the catalog.
func displayWinners(results []Result, verbose bool) {
	wins := make(map[string]int)
	for _, result := range results {
		if result.Status != StatusOK {
			continue
		}
		var outcome Outcome
		if err := unmarshalJSON(result.Envelope.Outcome, &outcome); err != nil {
			continue
		}
		for _, entry := range outcome.GeminiRanking {
			if entry.Placement == 1 {
				wins[entry.ModelID]++
			}
		}
	}

	if len(wins) == 0 {
		return
	}

	type winRow struct {
		id    string
		count int
	}
	rows := make([]winRow, 0, len(wins))
	for id, count := range wins {
		rows = append(rows, winRow{id: id, count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].id < rows[j].id
	})

	log.Printf("🏆 First placements across the workload:")
	for _, row := range rows {
		log.Printf("   %s - %d wins", row.id, row.count)
	}

	if verbose {
		total := 0
		for _, row := range rows {
			total += row.count
		}
		log.Printf("📊 %d ranked outcomes across %d distinct winners", total, len(rows))
	}
}
