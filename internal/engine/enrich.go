package engine

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Kathail/NorthScrape/internal/model"
	"github.com/Kathail/NorthScrape/internal/normalize"
	"github.com/Kathail/NorthScrape/internal/source"
)

// EnrichOptions configures an Enricher. Zero values fall back to defaults.
type EnrichOptions struct {
	Concurrency   int // worker pool width, default 20
	ProgressBatch int // status/percent cadence in completions, default 5
	Table         normalize.PostalTable
}

// Enricher fills missing phone/website data on lead records through the
// source chain, running records through a bounded worker pool. Each record
// is owned by exactly one task; completion order is unordered and results
// carry their input index.
type Enricher struct {
	chain *source.Chain
	opts  EnrichOptions
	sm    stateMachine
	queue *Queue
}

// NewEnricher creates an enrichment engine. A single Enricher runs once.
func NewEnricher(chain *source.Chain, opts EnrichOptions) *Enricher {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 20
	}
	if opts.ProgressBatch <= 0 {
		opts.ProgressBatch = 5
	}
	if opts.Table == nil {
		opts.Table = normalize.DefaultPostalTable
	}
	return &Enricher{
		chain: chain,
		opts:  opts,
		queue: NewQueue(),
	}
}

// Events returns the progress stream for this run.
func (e *Enricher) Events() <-chan Event { return e.queue.Events() }

// State returns the engine state.
func (e *Enricher) State() State { return e.sm.state() }

type taskDone struct {
	idx  int
	lead model.LeadRecord
}

// Run enriches every record and returns the results in input order, along
// with the run summary. On cancellation, submission stops, unstarted tasks
// are abandoned, and in-flight results are discarded; slots for records
// never reconciled keep their input values with an empty Source.
func (e *Enricher) Run(ctx context.Context, records []model.LeadRecord) ([]model.LeadRecord, *model.RunSummary, error) {
	if !e.sm.start() {
		return nil, nil, eris.Errorf("engine: enricher not idle (%s)", e.sm.state())
	}

	log := zap.L().With(zap.String("component", "engine.enrich"))
	total := len(records)
	log.Info("enrichment starting",
		zap.Int("records", total),
		zap.Int("concurrency", e.opts.Concurrency),
	)

	results := make([]model.LeadRecord, total)
	copy(results, records)

	doneCh := make(chan taskDone)

	var g errgroup.Group
	g.SetLimit(e.opts.Concurrency)
	go func() {
		for i, rec := range records {
			if ctx.Err() != nil {
				// Stop submitting; workers already queued still run.
				break
			}
			i, rec := i, rec
			g.Go(func() error {
				if ctx.Err() != nil {
					return nil // abandoned before start
				}
				enriched := e.process(ctx, rec)
				select {
				case doneCh <- taskDone{idx: i, lead: enriched}:
				case <-ctx.Done():
				}
				return nil
			})
		}
		_ = g.Wait()
		close(doneCh)
	}()

	summary := &model.RunSummary{Total: total}
	for d := range doneCh {
		if ctx.Err() != nil {
			continue // cancelled: drain without reporting
		}
		results[d.idx] = d.lead
		summary.Completed++
		switch d.lead.Source {
		case model.SourceKept:
			summary.Kept++
		case model.SourcePrimary:
			summary.Primary++
		case model.SourceFallback:
			summary.Fallback++
		}

		e.queue.Publish(Event{Kind: EventResult, Result: &TaskResult{Index: d.idx, Lead: d.lead}})

		// Batch status/percent updates to bound event volume.
		if summary.Completed%e.opts.ProgressBatch == 0 || summary.Completed == total {
			e.queue.Publish(Event{
				Kind:    EventStatus,
				Message: fmt.Sprintf("Enriching... %d/%d", summary.Completed, total),
			})
			e.queue.Publish(Event{
				Kind:    EventProgress,
				Percent: float64(summary.Completed) / float64(total) * 100,
			})
		}
	}

	cancelled := ctx.Err() != nil
	e.sm.finish(cancelled)
	e.queue.Publish(Event{Kind: EventCompleted, Summary: summary})
	e.queue.Close()

	log.Info("enrichment finished",
		zap.Int("completed", summary.Completed),
		zap.Int("kept", summary.Kept),
		zap.Int("primary", summary.Primary),
		zap.Int("fallback", summary.Fallback),
		zap.Bool("cancelled", cancelled),
	)
	return results, summary, nil
}

// process enriches a single record. The address is always normalized; a
// record that already carries a usable phone skips the lookup chain.
func (e *Enricher) process(ctx context.Context, rec model.LeadRecord) model.LeadRecord {
	rec.Address = normalize.AddressWithTable(rec.Address, e.opts.Table)

	if rec.HasUsablePhone() {
		if rec.Website == "" {
			rec.Website = model.NA
		}
		rec.Source = model.SourceKept
		return rec
	}

	contact, src := e.chain.Lookup(ctx, rec.Name, rec.Address)
	rec.Phone = contact.Phone
	rec.Website = contact.Website
	rec.Source = model.Source(src)
	return rec
}
