package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	strategyFile string
	verbose      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sourcer",
	Short: "Trade Sourcer - weekly opportunity scanner",
	Long: `Trade Sourcer CLI

Turns a snapshot of per-instrument metric bundles into an ordered,
risk-annotated shortlist with position-sizing guidance for the coming
trading week.

Usage:
  go run ./cmd/sourcer [command]

Examples:
  go run ./cmd/sourcer scan --input snapshot.json
  go run ./cmd/sourcer scan --input snapshot.json --output result.json
  go run ./cmd/sourcer strategy validate --strategy strategy.yaml
  go run ./cmd/sourcer strategy hash`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&strategyFile, "strategy", "", "strategy YAML file (default: built-in reference strategy)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
