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
	Use:   "momentum",
	Short: "Momentum signal construction and simulated trading",
	Long: `Momentum CLI

Builds long/short momentum portfolios from daily price history:
universe filtering, lagged momentum, strategy screens, ranking and
selection, then simulated rebalancing against a persisted book.

Examples:
  go run ./cmd/momentum construct --strategy CORE --timeframe MONTHLY
  go run ./cmd/momentum rebalance
  go run ./cmd/momentum scheduler
  go run ./cmd/momentum api
  go run ./cmd/momentum status`,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&strategyFile, "strategy-config", "config/strategy/momentum_v1.yaml", "strategy YAML file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
