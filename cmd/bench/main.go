package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/certamen-io/certamen/internal/bench"
)

// Default configuration constants.
const (
	defaultNumSims      = 200
	defaultReplays      = 3
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultTimeout      = 30 * time.Second
	defaultBenchTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:8080", "Base URL of the service")
		numSims    = flag.Int("sims", defaultNumSims, "Number of simulations to generate and submit")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		replays    = flag.Int("replays", defaultReplays, "Number of determinism probes after the main run")
		seed       = flag.Int64("seed", 0, "Workload seed, 0 picks a time-based one")
		outputFile = flag.String("output", "", "Output file for the generated workload (default: bench_workload_TIMESTAMP.json)")
		logFile    = flag.String("log", "", "Log file for bench output (default: bench_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		bench.ShowHelp()
		return
	}

	// Setup logging
	if err := bench.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultBenchTimeout)
	defer cancel()

	// Create bench configuration
	config := &bench.Config{
		BaseURL:    *baseURL,
		NumSims:    *numSims,
		Workers:    *workers,
		Timeout:    *timeout,
		Replays:    *replays,
		Seed:       *seed,
		OutputFile: *outputFile,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}

	// Run the bench
	if err := bench.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Bench failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
