package engine

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Kathail/NorthScrape/internal/dedup"
	"github.com/Kathail/NorthScrape/internal/model"
	"github.com/Kathail/NorthScrape/internal/normalize"
	"github.com/Kathail/NorthScrape/internal/source"
)

// DiscoverOptions configures a Discovery run.
type DiscoverOptions struct {
	Categories []string
	Localities []string
	MinPause   time.Duration // pause between combinations, default 500ms
	MaxPause   time.Duration // default 1500ms
	Table      normalize.PostalTable
}

// Discovery scans every category x locality combination sequentially and
// emits each previously unseen business as a lead. Sequential on purpose:
// directory search pages rate-limit aggressively, and one polite crawler
// outlasts twenty parallel ones.
type Discovery struct {
	src   source.Discoverer
	opts  DiscoverOptions
	seen  *dedup.Index
	sm    stateMachine
	queue *Queue
}

// NewDiscovery creates a discovery engine. A single Discovery runs once.
func NewDiscovery(src source.Discoverer, opts DiscoverOptions) *Discovery {
	if opts.MinPause <= 0 {
		opts.MinPause = 500 * time.Millisecond
	}
	if opts.MaxPause < opts.MinPause {
		opts.MaxPause = opts.MinPause + time.Second
	}
	if opts.Table == nil {
		opts.Table = normalize.DefaultPostalTable
	}
	return &Discovery{
		src:   src,
		opts:  opts,
		seen:  dedup.NewIndex(),
		queue: NewQueue(),
	}
}

// Events returns the progress stream for this run.
func (d *Discovery) Events() <-chan Event { return d.queue.Events() }

// State returns the engine state.
func (d *Discovery) State() State { return d.sm.state() }

// Run walks the category x locality grid in order and returns the deduplicated
// leads. Cancellation takes effect at combination boundaries: combinations
// already scanned keep their results, the rest are skipped.
func (d *Discovery) Run(ctx context.Context) ([]model.LeadRecord, *model.RunSummary, error) {
	if !d.sm.start() {
		return nil, nil, eris.Errorf("engine: discovery not idle (%s)", d.sm.state())
	}

	log := zap.L().With(zap.String("component", "engine.discover"))
	total := len(d.opts.Categories) * len(d.opts.Localities)
	log.Info("discovery starting",
		zap.Int("categories", len(d.opts.Categories)),
		zap.Int("localities", len(d.opts.Localities)),
		zap.Int("combinations", total),
	)

	var leads []model.LeadRecord
	summary := &model.RunSummary{Total: total}

scan:
	for _, category := range d.opts.Categories {
		for _, locality := range d.opts.Localities {
			if ctx.Err() != nil {
				break scan
			}

			d.queue.Publish(Event{
				Kind: EventStatus,
				Message: fmt.Sprintf("Scanning (%d/%d): %s in %s",
					summary.Completed+1, total, category, locality),
			})

			for _, cand := range d.src.DiscoverCandidates(ctx, category, locality) {
				addr := normalize.AddressWithTable(cand.RawAddress, d.opts.Table)
				if !d.seen.TryInsert(dedup.DiscoveryKey(cand.Name, addr)) {
					continue
				}
				lead := model.LeadRecord{
					Name:    cand.Name,
					Address: addr,
					Phone:   model.NA,
					Website: model.NA,
					Source:  model.SourceDiscovered,
				}
				leads = append(leads, lead)
				summary.Discovered++
				d.queue.Publish(Event{Kind: EventResult, Result: &TaskResult{Index: len(leads) - 1, Lead: lead}})
			}

			summary.Completed++
			d.queue.Publish(Event{
				Kind:    EventProgress,
				Percent: float64(summary.Completed) / float64(total) * 100,
			})

			if summary.Completed < total {
				d.pause(ctx)
			}
		}
	}

	cancelled := ctx.Err() != nil
	d.sm.finish(cancelled)
	d.queue.Publish(Event{Kind: EventCompleted, Summary: summary})
	d.queue.Close()

	log.Info("discovery finished",
		zap.Int("scanned", summary.Completed),
		zap.Int("discovered", summary.Discovered),
		zap.Bool("cancelled", cancelled),
	)
	return leads, summary, nil
}

// pause sleeps a randomized interval between combinations, returning early
// on cancellation.
func (d *Discovery) pause(ctx context.Context) {
	span := d.opts.MaxPause - d.opts.MinPause
	wait := d.opts.MinPause
	if span > 0 {
		wait += time.Duration(rand.Int63n(int64(span)))
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
