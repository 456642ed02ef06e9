package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Theworldzyours/TRADE-SOURCER/internal/strategy"
)

// strategyCmd represents the strategy command
var strategyCmd = &cobra.Command{
	Use:   "strategy",
	Short: "Inspect and validate strategy configuration",
	Long: `Strategy configuration tools.

Example:
  go run ./cmd/sourcer strategy show
  go run ./cmd/sourcer strategy validate --strategy strategy.yaml
  go run ./cmd/sourcer strategy hash --strategy strategy.yaml`,
}

var strategyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective strategy configuration as YAML",
	RunE:  runStrategyShow,
}

var strategyValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a strategy file",
	RunE:  runStrategyValidate,
}

var strategyHashCmd = &cobra.Command{
	Use:   "hash",
	Short: "Print the SHA-256 hash of the effective configuration",
	RunE:  runStrategyHash,
}

func init() {
	rootCmd.AddCommand(strategyCmd)
	strategyCmd.AddCommand(strategyShowCmd)
	strategyCmd.AddCommand(strategyValidateCmd)
	strategyCmd.AddCommand(strategyHashCmd)
}

// resolveStrategy loads the flagged strategy file or falls back to
// the built-in reference strategy.
func resolveStrategy() (*strategy.Config, error) {
	if strategyFile == "" {
		cfg := strategy.Default()
		return &cfg, nil
	}
	cfg, _, err := strategy.Load(strategyFile)
	return cfg, err
}

func runStrategyShow(cmd *cobra.Command, args []string) error {
	cfg, err := resolveStrategy()
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal strategy: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

func runStrategyValidate(cmd *cobra.Command, args []string) error {
	cfg, err := resolveStrategy()
	if err != nil {
		return err
	}
	if err := strategy.Validate(cfg); err != nil {
		return err
	}

	fmt.Printf("✅ strategy %q is valid\n", cfg.Meta.StrategyID)
	return nil
}

func runStrategyHash(cmd *cobra.Command, args []string) error {
	cfg, err := resolveStrategy()
	if err != nil {
		return err
	}

	hash, err := strategy.Hash(cfg)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}
