package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"PickRank/pkg/config"
)

var (
	configPath string
	jsonOutput bool
)

// rootCmd is the base command for the picks CLI
var rootCmd = &cobra.Command{
	Use:   "picks",
	Short: "Rank market symbols by composite signal score",
	Long: `picks scores symbols from daily price history, fundamentals, crowd
sentiment and implied volatility, then ranks them best first.

Provider credentials and the default watchlist come from the config file
and the environment (ALPHAVANTAGE_API_KEY, SENTIMENT_API_KEY,
VOLATILITY_API_KEY, WATCHLIST).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config (defaults and environment when empty)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print the batch as JSON")
}

// loadConfig reads config and routes logs to stderr so stdout carries only
// the ranking.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return nil, err
	}
	cfg.Log.Output = "stderr"
	cfg.Log.Format = "console"
	cfg.Metrics.Enabled = false
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
