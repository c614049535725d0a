package bench

import (
	"bytes"
	"context"
	"log"
)

// replayProbe resubmits a spread of successful submissions and checks
// that the arena returns byte-identical outcomes. Any drift means the
// pipeline leaked state between runs.
func replayProbe(ctx context.Context, config *Config, results []Result, stats *Stats) {
	if config.Replays <= 0 {
		return
	}

	candidates := make([]int, 0, len(results))
	for i, result := range results {
		if result.Status == StatusOK {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		log.Println("⚠️  No successful outcomes to replay")
		return
	}

	probes := minInt(config.Replays, len(candidates))
	step := len(candidates) / probes

	log.Printf("🔁 Replaying %d submissions to check determinism...", probes)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/simulations"

	for p := 0; p < probes; p++ {
		original := results[candidates[p*step]]
		replayed := submitSingleSubmission(ctx, client, url, original.Submission)
		stats.ReplaysRun++

		switch {
		case replayed.Status != StatusOK:
			stats.ReplayMismatches++
			log.Printf("⚠️  Replay of %s failed with status %d", original.Submission.RunID, replayed.Status)
		case !bytes.Equal(original.Envelope.Outcome, replayed.Envelope.Outcome):
			stats.ReplayMismatches++
			log.Printf("⚠️  Replay of %s produced a different outcome", original.Submission.RunID)
		case config.Verbose:
			log.Printf("📊 Replay of %s matched", original.Submission.RunID)
		}
	}

	if stats.ReplayMismatches == 0 {
		log.Printf("✅ All %d replays produced identical outcomes", stats.ReplaysRun)
	}
}
