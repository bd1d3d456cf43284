package main

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Kathail/NorthScrape/internal/engine"
	"github.com/Kathail/NorthScrape/internal/model"
)

var (
	discoverOut  string
	discoverXLSX string
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Scan the directory for businesses by category and locality",
	Long:  "Walks every configured category and locality combination against the directory search, deduplicates the listings, and stores the resulting leads for a later enrichment pass.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		minPause, maxPause := cfg.Discover.Pause()
		eng := engine.NewDiscovery(buildDiscoverer(), engine.DiscoverOptions{
			Categories: cfg.Discover.Categories,
			Localities: cfg.Discover.Localities,
			MinPause:   minPause,
			MaxPause:   maxPause,
			Table:      postalTable,
		})

		params := fmt.Sprintf("%d categories x %d localities",
			len(cfg.Discover.Categories), len(cfg.Discover.Localities))
		run, err := st.CreateRun(ctx, model.RunKindDiscover, params)
		if err != nil {
			return err
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			renderEvents(eng.Events())
		}()

		leads, summary, err := eng.Run(ctx)
		<-done
		if err != nil {
			return eris.Wrap(err, "discover")
		}

		// Persist even when the run was cancelled mid-scan.
		saveCtx := context.WithoutCancel(ctx)
		if err := st.InsertLeads(saveCtx, run.ID, leads); err != nil {
			return err
		}
		if err := st.CompleteRun(saveCtx, run.ID, runStatus(eng.State()), summary); err != nil {
			return err
		}

		zap.L().Info("discovery run recorded",
			zap.String("run_id", run.ID),
			zap.Int("scanned", summary.Completed),
			zap.Int("discovered", summary.Discovered),
		)
		fmt.Printf("Discovered %d leads across %d/%d combinations (run %s)\n",
			summary.Discovered, summary.Completed, summary.Total, run.ID)

		return writeLeads(leads, discoverOut, discoverXLSX)
	},
}

func init() {
	discoverCmd.Flags().StringVar(&discoverOut, "out", "", "also write discovered leads to a CSV file")
	discoverCmd.Flags().StringVar(&discoverXLSX, "xlsx", "", "also write discovered leads to an XLSX file")
	rootCmd.AddCommand(discoverCmd)
}
