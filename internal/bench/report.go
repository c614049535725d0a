package bench

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// printReport renders the final summary table and verdict.
func printReport(w io.Writer, config *Config, stats *Stats) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Value"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var simsPerSecond float64
	if stats.Duration > 0 {
		simsPerSecond = float64(stats.SimsSubmitted) / stats.Duration.Seconds()
	}

	data := [][]string{
		{"Seed", strconv.FormatInt(config.Seed, 10)},
		{"Simulations generated", strconv.Itoa(stats.SimsGenerated)},
		{"Simulations submitted", strconv.Itoa(stats.SimsSubmitted)},
		{"Succeeded", strconv.Itoa(stats.SimsSucceeded)},
		{"Rejected", strconv.Itoa(stats.SimsRejected)},
		{"Failed", strconv.Itoa(stats.SimsFailed)},
		{"Cross-evaluations seen", strconv.Itoa(stats.CrossEvalsSeen)},
		{"Contract violations", strconv.Itoa(stats.CheckFailures)},
		{"Replays", strconv.Itoa(stats.ReplaysRun)},
		{"Replay mismatches", strconv.Itoa(stats.ReplayMismatches)},
		{"Duration", stats.Duration.Round(time.Millisecond).String()},
		{"Simulations/sec", fmt.Sprintf("%.1f", simsPerSecond)},
	}

	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("failed to build report table: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render report table: %w", err)
	}

	pass := color.New(color.FgGreen, color.Bold).SprintFunc()
	fail := color.New(color.FgRed, color.Bold).SprintFunc()

	verdict := pass("PASS") + " every outcome honored the contract"
	if stats.CheckFailures > 0 || stats.ReplayMismatches > 0 {
		verdict = fail("FAIL") + fmt.Sprintf(" %d contract violations, %d replay mismatches",
			stats.CheckFailures, stats.ReplayMismatches)
	}
	if stats.SimsFailed > 0 {
		verdict += fmt.Sprintf(" (%d submissions never completed)", stats.SimsFailed)
	}

	if _, err := fmt.Fprintln(w, verdict); err != nil {
		return err
	}
	return nil
}
