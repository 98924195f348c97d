package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"PickRank/internal/di"
)

var publishTimeout time.Duration

// publishCmd represents the publish command
var publishCmd = &cobra.Command{
	Use:   "publish [SYMBOL...]",
	Short: "Rank symbols and publish the batch to Kafka",
	Long: `Rank symbols like 'picks rank' and write one message per pick, keyed by
symbol, plus a batch summary to the configured topic.

Examples:
  KAFKA_BROKERS=localhost:9092 picks publish
  picks publish AAPL MSFT --config configs/config.yaml`,
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().DurationVar(&publishTimeout, "timeout", 2*time.Minute, "Upper bound for ranking and publishing")
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(cfg.Kafka.Brokers) == 0 {
		return fmt.Errorf("no kafka brokers configured (set kafka.brokers or KAFKA_BROKERS)")
	}

	uc, cleanup, err := di.InitializePublish(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), publishTimeout)
	defer cancel()

	resp, err := uc.Publish(ctx, args)
	if resp != nil {
		if rerr := render(cmd.OutOrStdout(), resp, jsonOutput); rerr != nil {
			return rerr
		}
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "published batch %s to %s\n", resp.BatchID, cfg.Kafka.Topic)
	return nil
}
