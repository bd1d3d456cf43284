package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rotisserie/eris"

	"github.com/Kathail/NorthScrape/internal/engine"
	"github.com/Kathail/NorthScrape/internal/leadio"
	"github.com/Kathail/NorthScrape/internal/model"
	"github.com/Kathail/NorthScrape/internal/source"
	"github.com/Kathail/NorthScrape/internal/store"
)

// initStore opens and migrates the local run database.
func initStore(ctx context.Context) (*store.SQLiteStore, error) {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// buildSources constructs the paced clients and the ordered lookup chain.
func buildSources() *source.Chain {
	minDelay, maxDelay := cfg.Sources.Delay()

	ypClient := source.NewClient(source.ClientOptions{
		UserAgents: cfg.Sources.UserAgents,
		Timeout:    cfg.Sources.YellowPages.Timeout(),
		MinDelay:   minDelay,
		MaxDelay:   maxDelay,
		RatePerSec: cfg.Sources.RatePerSec,
	})
	ddgClient := source.NewClient(source.ClientOptions{
		UserAgents: cfg.Sources.UserAgents,
		Timeout:    cfg.Sources.DuckDuckGo.Timeout(),
		MinDelay:   minDelay,
		MaxDelay:   maxDelay,
		RatePerSec: cfg.Sources.RatePerSec,
	})

	yp := source.NewYellowPages(ypClient, cfg.Sources.YellowPages.BaseURL)
	ddg := source.NewDuckDuckGo(ddgClient, cfg.Sources.DuckDuckGo.BaseURL, cfg.Sources.DirectoryBlocklist)
	return source.NewChain(yp, ddg)
}

// buildDiscoverer constructs the directory source on its own client; result
// pages are heavier than single lookups, so discovery gets a wider delay
// window and a longer timeout.
func buildDiscoverer() *source.YellowPages {
	minDelay, maxDelay := cfg.Discover.FetchDelay()
	client := source.NewClient(source.ClientOptions{
		UserAgents: cfg.Sources.UserAgents,
		Timeout:    cfg.Discover.Timeout(),
		MinDelay:   minDelay,
		MaxDelay:   maxDelay,
		RatePerSec: cfg.Sources.RatePerSec,
	})
	return source.NewYellowPages(client, cfg.Sources.YellowPages.BaseURL)
}

// renderEvents prints engine progress to stderr until the event stream
// closes, then returns the final summary.
func renderEvents(events <-chan engine.Event) *model.RunSummary {
	var summary *model.RunSummary
	for ev := range events {
		switch ev.Kind {
		case engine.EventStatus:
			fmt.Fprintln(os.Stderr, ev.Message)
		case engine.EventProgress:
			fmt.Fprintf(os.Stderr, "  %.0f%%\n", ev.Percent)
		case engine.EventCompleted:
			summary = ev.Summary
		}
	}
	return summary
}

// writeLeads exports leads to CSV, and to XLSX when xlsxPath is set.
func writeLeads(leads []model.LeadRecord, csvPath, xlsxPath string) error {
	if csvPath != "" {
		if err := leadio.ExportCSV(leads, csvPath); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", csvPath)
	}
	if xlsxPath != "" {
		if err := leadio.ExportXLSX(leads, xlsxPath); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", xlsxPath)
	}
	return nil
}

// runStatus maps a finished engine state to the stored run status.
func runStatus(st engine.State) model.RunStatus {
	if st == engine.StateCancelled {
		return model.RunStatusCancelled
	}
	return model.RunStatusComplete
}
