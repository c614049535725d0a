package bench

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/certamen-io/certamen/pkg/logger"
)

// Workload variety constants.
const (
	multimodalShare = 4 // one in four submissions carries an image
)

// promptPool feeds generated submissions. Mixed lengths and registers
// so synthesized responses and scores spread out.
//
//nolint:gochecknoglobals
var promptPool = []string{
	"Compare supervised and unsupervised learning with one concrete example of each.",
	"Explain eventual consistency to a backend engineer who has only used relational databases.",
	"What are the trade-offs between monorepos and polyrepos for a 40-person team?",
	"Summarize the CAP theorem and name a system that picks each corner.",
	"Design a rate limiter for a public API. Token bucket or sliding window, and why?",
	"Why do garbage-collected languages still leak memory? Give three patterns.",
	"Walk through what happens when I type a URL into a browser and press enter.",
	"When would you reach for gRPC over REST, and what does it cost you?",
	"Explain how a bloom filter works and where a false positive actually hurts.",
	"What makes a good code review? List habits of effective reviewers.",
	"Describe the difference between concurrency and parallelism using a kitchen analogy.",
	"How would you migrate a live database column from integers to UUIDs with zero downtime?",
	"Argue for and against microservices for an early-stage startup.",
	"Explain TCP slow start and why it matters for short-lived connections.",
	"What is the difference between idempotency and determinism in API design?",
	"Sketch an incident response runbook for a cache stampede at 3am.",
}

// imagePool names the attachments multimodal submissions carry.
//
//nolint:gochecknoglobals
var imagePool = []string{
	"architecture-sketch.png",
	"latency-histogram.png",
	"whiteboard-notes.jpg",
	"q3-dashboard.png",
}

// generateSubmissions creates the workload. Every submission is derived
// from the seed and its index alone, so a seed reproduces the exact
// workload regardless of worker count.
func generateSubmissions(ctx context.Context, config *Config, selectable []string, stats *Stats) ([]Submission, error) {
	logger.Get().Info(ctx, "generating submissions",
		logger.Int("numSims", config.NumSims),
		logger.Any("seed", config.Seed))

	if len(selectable) < minSelection {
		return nil, fmt.Errorf("catalog too small: %d selectable models, need at least %d", len(selectable), minSelection)
	}

	submissions := make([]Submission, config.NumSims)

	type genResult struct {
		index int
		sub   Submission
		err   error
	}

	resultChan := make(chan genResult, config.NumSims)

	workerCount := minInt(config.Workers, config.NumSims)
	simsPerWorker := config.NumSims / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * simsPerWorker
		end := start + simsPerWorker
		if worker == workerCount-1 {
			end = config.NumSims // Last worker gets the remainder
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- genResult{index: i, err: ctx.Err()}
					return
				default:
					resultChan <- genResult{index: i, sub: generateSingleSubmission(i, config.Seed, selectable)}
				}
			}
		}(start, end)
	}

	for i := 0; i < config.NumSims; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate submission %d: %w", result.index, result.err)
			}
			submissions[result.index] = result.sub
		}
	}

	stats.SimsGenerated = len(submissions)
	logger.Get().Info(ctx, "generated submissions successfully", logger.Int("count", len(submissions)))

	return submissions, nil
}

// generateSingleSubmission derives one submission from the seed and index.
// The run id is fresh per call and only labels the workload entry.
func generateSingleSubmission(index int, seed int64, selectable []string) Submission {
	rng := rand.New(rand.NewSource(seed + int64(index))) //nolint:gosec // workload variety, not security

	size := minSelection + rng.Intn(maxSelection-minSelection+1)
	perm := rng.Perm(len(selectable))
	ids := make([]string, size)
	for i := 0; i < size; i++ {
		ids[i] = selectable[perm[i]]
	}

	prompt := Prompt{
		Text:     promptPool[rng.Intn(len(promptPool))],
		Modality: "text",
	}
	if rng.Intn(multimodalShare) == 0 {
		prompt.Modality = "multimodal"
		prompt.ImageFileName = imagePool[rng.Intn(len(imagePool))]
		prompt.ImageDataURL = "data:image/png;base64,aGVsbG8="
	}

	return Submission{
		RunID:    uuid.New().String(),
		ModelIDs: ids,
		Prompt:   prompt,
	}
}

// pickSeed resolves the configured seed, substituting a time-based one
// for the zero value.
func pickSeed(configured int64) int64 {
	if configured != 0 {
		return configured
	}
	return time.Now().UnixNano()
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
