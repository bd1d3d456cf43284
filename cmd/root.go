package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Kathail/NorthScrape/internal/config"
	"github.com/Kathail/NorthScrape/internal/normalize"
)

var (
	cfg         *config.Config
	postalTable normalize.PostalTable
)

var rootCmd = &cobra.Command{
	Use:   "northscrape",
	Short: "Business lead discovery and enrichment for Northern Ontario",
	Long:  "Discovers businesses by category across Northern Ontario localities and enriches lead lists with phone numbers and websites from YellowPages, falling back to DuckDuckGo.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		postalTable = normalize.DefaultPostalTable
		if cfg.DataFile != "" {
			df, err := config.LoadDataFile(cfg.DataFile)
			if err != nil {
				return fmt.Errorf("load data file: %w", err)
			}
			postalTable = df.Apply(cfg)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
