package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/Kathail/NorthScrape/internal/model"
)

var (
	exportRunID string
	exportOut   string
	exportXLSX  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored leads to CSV or XLSX",
	Long:  "Exports the leads of a recorded run, or of the latest enrichment run when no run ID is given. Duplicates are collapsed by phone number, then by address, and rows are sorted by name.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		var leads []model.LeadRecord
		if exportRunID != "" {
			leads, err = st.LeadsByRun(ctx, exportRunID)
		} else {
			leads, err = st.LatestLeads(ctx, model.RunKindEnrich)
		}
		if err != nil {
			return err
		}
		if len(leads) == 0 {
			return eris.New("export: no leads found")
		}

		fmt.Printf("Exporting %d leads\n", len(leads))
		return writeLeads(leads, exportOut, exportXLSX)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportRunID, "run", "", "run ID to export (default: latest enrichment run)")
	exportCmd.Flags().StringVar(&exportOut, "out", "leads.csv", "output CSV file")
	exportCmd.Flags().StringVar(&exportXLSX, "xlsx", "", "also write an XLSX file")
	rootCmd.AddCommand(exportCmd)
}
