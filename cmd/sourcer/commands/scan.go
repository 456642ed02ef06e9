package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Theworldzyours/TRADE-SOURCER/internal/contracts"
	"github.com/Theworldzyours/TRADE-SOURCER/internal/intake"
	"github.com/Theworldzyours/TRADE-SOURCER/internal/pipeline"
	"github.com/Theworldzyours/TRADE-SOURCER/internal/strategy"
	"github.com/Theworldzyours/TRADE-SOURCER/pkg/config"
	"github.com/Theworldzyours/TRADE-SOURCER/pkg/logger"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a full scan over a metric-bundle snapshot",
	Long: `Runs the full pipeline over one snapshot file:

  intake → quality gate + forecast → scoring → ranking → sizing

The result is written as JSON and a summary with processed, rejected,
and forecast-failed counts is always printed.

Example:
  go run ./cmd/sourcer scan --input snapshot.json
  go run ./cmd/sourcer scan --input snapshot.json --output result.json --workers 4`,
	RunE: runScan,
}

var (
	// Flags
	scanInput   string
	scanOutput  string
	scanWorkers int
)

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&scanInput, "input", "", "snapshot JSON file (required)")
	scanCmd.Flags().StringVar(&scanOutput, "output", "", "result JSON file (default: stdout)")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "worker pool size (0 = default)")
	_ = scanCmd.MarkFlagRequired("input")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	log := logger.New(cfg)

	strat, err := loadStrategy(cfg)
	if err != nil {
		return fmt.Errorf("load strategy: %w", err)
	}

	workers := scanWorkers
	if workers == 0 {
		workers = cfg.Workers
	}

	loader := intake.New(log)
	bundles, rejectedRecords, err := loader.LoadFile(scanInput)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	p := pipeline.New(*strat, workers, log)
	result, err := p.Run(cmd.Context(), bundles)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if err := writeResult(result); err != nil {
		return err
	}

	printScanSummary(result, rejectedRecords)
	return nil
}

// loadStrategy resolves the strategy file from the flag, then the
// environment, then falls back to the built-in reference strategy.
func loadStrategy(cfg *config.Config) (*strategy.Config, error) {
	path := strategyFile
	if path == "" {
		path = cfg.StrategyFile
	}
	if path == "" {
		def := strategy.Default()
		return &def, nil
	}

	strat, _, err := strategy.Load(path)
	return strat, err
}

func writeResult(result *contracts.ScanResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	data = append(data, '\n')

	if scanOutput == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(scanOutput, data, 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

func printScanSummary(result *contracts.ScanResult, rejectedRecords []intake.RejectedRecord) {
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "=== Scan Summary ===")
	fmt.Fprintf(os.Stderr, "Strategy: %s (config %s)\n", result.StrategyID, shortHash(result.ConfigHash))
	fmt.Fprintf(os.Stderr, "Input: %d instruments (%d rejected at intake)\n", result.Counts.Input, len(rejectedRecords))
	fmt.Fprintf(os.Stderr, "Processed: %d\n", result.Counts.Processed)
	fmt.Fprintf(os.Stderr, "Rejected by gate: %d\n", result.Counts.Rejected)
	fmt.Fprintf(os.Stderr, "Forecast failed: %d\n", result.Counts.ForecastFailed)
	fmt.Fprintf(os.Stderr, "Shortlisted: %d (total exposure %.1f%%)\n", result.Counts.Shortlisted, result.TotalExposure())

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "⚠️  %s\n", w)
	}

	if len(result.Opportunities) > 0 {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Top opportunities:")
		for i, opp := range result.Opportunities {
			if i == 5 {
				break
			}
			line := fmt.Sprintf("  %2d. %-6s %-22s %5.1f %-2s %-12s %4.1f%%",
				opp.Rank, opp.Ticker, opp.Sector, opp.Breakdown.Composite,
				opp.Breakdown.Grade, opp.RiskCategory, opp.PositionPct)
			if opp.Profile != nil {
				line += fmt.Sprintf("  range %.1f%%", opp.Profile.RangeWidthPct())
			}
			fmt.Fprintln(os.Stderr, line)
		}
	}
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
