package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"PickRank/internal/di"
)

var rankTimeout time.Duration

// rankCmd represents the rank command
var rankCmd = &cobra.Command{
	Use:   "rank [SYMBOL...]",
	Short: "Score and rank symbols",
	Long: `Score each symbol and print them best first. With no arguments the
configured watchlist is ranked.

Examples:
  picks rank
  picks rank AAPL MSFT NVDA
  picks rank tsla --json`,
	RunE: runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)
	rankCmd.Flags().DurationVar(&rankTimeout, "timeout", 2*time.Minute, "Upper bound for the whole batch")
}

func runRank(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	picks, cleanup, err := di.InitializePicks(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), rankTimeout)
	defer cancel()

	resp, err := picks.GetPicks(ctx, args)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), resp, jsonOutput)
}
