package main

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Kathail/NorthScrape/internal/engine"
	"github.com/Kathail/NorthScrape/internal/leadio"
	"github.com/Kathail/NorthScrape/internal/model"
)

var (
	enrichCSV       string
	enrichFromStore bool
	enrichRunID     string
	enrichOut       string
	enrichXLSX      string
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Fill missing phone numbers and websites on a lead list",
	Long:  "Loads leads from a CSV file or from the latest discovery run, looks up missing contact data through YellowPages with a DuckDuckGo fallback, and writes the enriched list back out.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if enrichFromStore == (enrichCSV != "") {
			return eris.New("enrich: exactly one of --csv or --from-store is required")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		var records []model.LeadRecord
		var params string
		switch {
		case enrichFromStore && enrichRunID != "":
			records, err = st.LeadsByRun(ctx, enrichRunID)
			if err != nil {
				return err
			}
			params = fmt.Sprintf("%d leads from run %s", len(records), truncateID(enrichRunID))
		case enrichFromStore:
			records, err = st.LatestLeads(ctx, model.RunKindDiscover)
			if err != nil {
				return err
			}
			params = fmt.Sprintf("%d leads from latest discovery", len(records))
		default:
			records, err = leadio.ImportCSV(enrichCSV)
			if err != nil {
				return err
			}
			params = fmt.Sprintf("%d leads from %s", len(records), enrichCSV)
		}
		if len(records) == 0 {
			return eris.New("enrich: no leads to process")
		}

		eng := engine.NewEnricher(buildSources(), engine.EnrichOptions{
			Concurrency:   cfg.Enrich.Concurrency,
			ProgressBatch: cfg.Enrich.ProgressBatch,
			Table:         postalTable,
		})

		run, err := st.CreateRun(ctx, model.RunKindEnrich, params)
		if err != nil {
			return err
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			renderEvents(eng.Events())
		}()

		results, summary, err := eng.Run(ctx, records)
		<-done
		if err != nil {
			return eris.Wrap(err, "enrich")
		}

		saveCtx := context.WithoutCancel(ctx)
		if err := st.InsertLeads(saveCtx, run.ID, results); err != nil {
			return err
		}
		if err := st.CompleteRun(saveCtx, run.ID, runStatus(eng.State()), summary); err != nil {
			return err
		}

		zap.L().Info("enrichment run recorded",
			zap.String("run_id", run.ID),
			zap.Int("completed", summary.Completed),
			zap.Int("kept", summary.Kept),
			zap.Int("primary", summary.Primary),
			zap.Int("fallback", summary.Fallback),
		)
		fmt.Printf("Enriched %d/%d leads: %d kept, %d primary, %d fallback (run %s)\n",
			summary.Completed, summary.Total, summary.Kept, summary.Primary, summary.Fallback, run.ID)

		return writeLeads(results, enrichOut, enrichXLSX)
	},
}

func init() {
	enrichCmd.Flags().StringVar(&enrichCSV, "csv", "", "input lead CSV file")
	enrichCmd.Flags().BoolVar(&enrichFromStore, "from-store", false, "enrich the leads of the latest discovery run")
	enrichCmd.Flags().StringVar(&enrichRunID, "run", "", "with --from-store, enrich the leads of a specific run")
	enrichCmd.Flags().StringVar(&enrichOut, "out", "leads_enriched.csv", "output CSV file")
	enrichCmd.Flags().StringVar(&enrichXLSX, "xlsx", "", "also write an XLSX file")
	rootCmd.AddCommand(enrichCmd)
}
