package bench

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/certamen-io/certamen/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// workloadFile is the saved shape of one bench run, enough to replay it
// with the same seed later.
type workloadFile struct {
	Seed        int64        `json:"seed"`
	BaseURL     string       `json:"base_url"`
	GeneratedAt time.Time    `json:"generated_at"`
	Submissions []Submission `json:"submissions"`
}

// Run executes the complete arena bench.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	config.Seed = pickSeed(config.Seed)

	logger.Get().Info(ctx, "starting certamen arena bench",
		logger.String("baseURL", config.BaseURL),
		logger.Int("sims", config.NumSims),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("replays", config.Replays),
		logger.Any("seed", config.Seed),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Fetch the catalog
	client := newHTTPClient(config.Timeout)
	catalog, err := fetchCatalog(ctx, client, config.BaseURL)
	if err != nil {
		return fmt.Errorf("catalog fetch failed: %w", err)
	}
	selectable := make([]string, len(catalog.Models))
	for i, m := range catalog.Models {
		selectable[i] = m.ID
	}
	logger.Get().Info(ctx, "catalog fetched",
		logger.Int("selectable", len(selectable)),
		logger.String("arbiter", catalog.Arbiter.ID))

	// Step 3: Generate the workload
	submissions, err := generateSubmissions(ctx, config, selectable, stats)
	if err != nil {
		return fmt.Errorf("workload generation failed: %w", err)
	}

	// Step 4: Submit concurrently
	results, err := submitSubmissions(ctx, config, submissions, stats)
	if err != nil {
		return fmt.Errorf("submission failed: %w", err)
	}

	// Step 5: Verify outcomes against the contract
	if err := verifyResults(ctx, config, results, stats); err != nil {
		return fmt.Errorf("outcome verification failed: %w", err)
	}

	// Step 6: Determinism probes
	replayProbe(ctx, config, results, stats)

	// Step 7: Save the workload
	if err := saveWorkloadToFile(ctx, config, submissions); err != nil {
		logger.Get().Warn(ctx, "failed to save workload to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)
	if err := printReport(os.Stdout, config, stats); err != nil {
		logger.Get().Warn(ctx, "failed to render report", logger.Error(err))
	}

	if stats.CheckFailures > 0 || stats.ReplayMismatches > 0 {
		return fmt.Errorf("bench found %d contract violations and %d replay mismatches",
			stats.CheckFailures, stats.ReplayMismatches)
	}

	logger.Get().Info(ctx, "bench completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Any 200 counts as healthy, the endpoint serves Prometheus metrics
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveWorkloadToFile saves the generated workload to a JSON file.
func saveWorkloadToFile(ctx context.Context, config *Config, submissions []Submission) error {
	if len(submissions) == 0 {
		return fmt.Errorf("no submissions to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "bench_workload_" + timestamp + ".json"
	}

	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(workloadFile{
		Seed:        config.Seed,
		BaseURL:     config.BaseURL,
		GeneratedAt: time.Now().UTC(),
		Submissions: submissions,
	}); err != nil {
		return fmt.Errorf("failed to encode workload: %w", err)
	}

	logger.Get().Info(ctx, "workload saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final bench statistics.
func displayFinalStats(stats *Stats) {
	var successRate, simsPerSecond float64

	if stats.SimsSubmitted > 0 {
		successRate = float64(stats.SimsSucceeded) / float64(stats.SimsSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		simsPerSecond = float64(stats.SimsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("simsGenerated", stats.SimsGenerated),
		logger.Int("simsSubmitted", stats.SimsSubmitted),
		logger.Int("simsSucceeded", stats.SimsSucceeded),
		logger.Int("simsRejected", stats.SimsRejected),
		logger.Int("simsFailed", stats.SimsFailed),
		logger.Int("crossEvalsSeen", stats.CrossEvalsSeen),
		logger.Int("checkFailures", stats.CheckFailures),
		logger.Int("replaysRun", stats.ReplaysRun),
		logger.Int("replayMismatches", stats.ReplayMismatches),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("simsPerSecond", simsPerSecond))
}
