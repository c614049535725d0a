package bench

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/certamen-io/certamen/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "bench_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	// Structured and stdlib logging both tee to console and file.
	multiWriter := io.MultiWriter(os.Stdout, file)
	if err := logger.InitWithWriter(multiWriter); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the arena bench tool.
func ShowHelp() {
	os.Stdout.WriteString(`Certamen Arena Bench
====================

A concurrent tool for load testing and verifying the certamen
cross-evaluation arena.

Usage:
  go run cmd/bench/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8080")
  -sims int
        Number of simulations to generate and submit (default 200)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -replays int
        Number of determinism probes after the main run (default 3)
  -seed int
        Workload seed, 0 picks a time-based one (default 0)
  -output string
        Output file for the generated workload (default: bench_workload_TIMESTAMP.json)
  -log string
        Log file for bench output (default: bench_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Bench with default settings
  go run cmd/bench/main.go

  # Bench with custom parameters
  go run cmd/bench/main.go -sims 1000 -workers 16 -url http://localhost:8080

  # Reproduce a previous workload
  go run cmd/bench/main.go -sims 500 -seed 42

  # Bench with verbose output
  go run cmd/bench/main.go -verbose -sims 200
`)
}
