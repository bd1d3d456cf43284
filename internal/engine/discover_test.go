package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kathail/NorthScrape/internal/model"
	"github.com/Kathail/NorthScrape/internal/source"
)

// stubDiscoverer implements source.Discoverer for testing.
type stubDiscoverer struct {
	calls   []string
	results map[string][]source.Candidate
	onCall  func(n int)
}

func (s *stubDiscoverer) DiscoverCandidates(_ context.Context, category, locality string) []source.Candidate {
	s.calls = append(s.calls, category+"/"+locality)
	if s.onCall != nil {
		s.onCall(len(s.calls))
	}
	return s.results[category+"/"+locality]
}

func fastDiscovery(src source.Discoverer, categories, localities []string) *Discovery {
	return NewDiscovery(src, DiscoverOptions{
		Categories: categories,
		Localities: localities,
		MinPause:   time.Millisecond,
		MaxPause:   2 * time.Millisecond,
	})
}

func TestDiscovery_ScansEveryCombinationInOrder(t *testing.T) {
	src := &stubDiscoverer{results: map[string][]source.Candidate{
		"Convenience Stores/Timmins": {{Name: "Acme Store", RawAddress: "12 Oak Ave, Timmins, ON"}},
		"Pharmacies/Sudbury":         {{Name: "Pine Pharmacy", RawAddress: "9 Bay Rd, Sudbury, ON"}},
	}}
	d := fastDiscovery(src, []string{"Convenience Stores", "Pharmacies"}, []string{"Sudbury", "Timmins"})

	go func() {
		for range d.Events() {
		}
	}()
	leads, summary, err := d.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{
		"Convenience Stores/Sudbury",
		"Convenience Stores/Timmins",
		"Pharmacies/Sudbury",
		"Pharmacies/Timmins",
	}, src.calls)
	assert.Equal(t, 4, summary.Completed)
	assert.Equal(t, 2, summary.Discovered)
	require.Len(t, leads, 2)
	assert.Equal(t, "Acme Store", leads[0].Name)
	assert.Equal(t, model.SourceDiscovered, leads[0].Source)
	assert.Equal(t, "N/A", leads[0].Phone)
	assert.Equal(t, StateCompleted, d.State())
}

func TestDiscovery_CollapsesCaseInsensitiveDuplicates(t *testing.T) {
	src := &stubDiscoverer{results: map[string][]source.Candidate{
		"Convenience Stores/Timmins": {
			{Name: "Acme Store", RawAddress: "12 Oak Ave, Timmins, ON"},
			{Name: "ACME STORE", RawAddress: "12 Oak Avenue, Timmins, ON"},
		},
	}}
	d := fastDiscovery(src, []string{"Convenience Stores"}, []string{"Timmins"})

	go func() {
		for range d.Events() {
		}
	}()
	leads, summary, err := d.Run(context.Background())

	require.NoError(t, err)
	// Same name, same 10-char address prefix: one lead.
	require.Len(t, leads, 1)
	assert.Equal(t, 1, summary.Discovered)
	assert.Equal(t, "Acme Store", leads[0].Name)
}

func TestDiscovery_EventsCarryStatusAndPercent(t *testing.T) {
	src := &stubDiscoverer{results: map[string][]source.Candidate{}}
	d := fastDiscovery(src, []string{"Pharmacies"}, []string{"Sudbury", "Timmins"})

	evsCh := make(chan []Event, 1)
	go func() { evsCh <- collectEvents(t, d.Events()) }()
	_, _, err := d.Run(context.Background())
	require.NoError(t, err)
	evs := <-evsCh

	statuses := eventsOfKind(evs, EventStatus)
	require.Len(t, statuses, 2)
	assert.Equal(t, "Scanning (1/2): Pharmacies in Sudbury", statuses[0].Message)
	assert.Equal(t, "Scanning (2/2): Pharmacies in Timmins", statuses[1].Message)

	progress := eventsOfKind(evs, EventProgress)
	require.Len(t, progress, 2)
	assert.InDelta(t, 50.0, progress[0].Percent, 0.001)
	assert.InDelta(t, 100.0, progress[1].Percent, 0.001)

	completed := eventsOfKind(evs, EventCompleted)
	require.Len(t, completed, 1)
	assert.Equal(t, 2, completed[0].Summary.Completed)
}

func TestDiscovery_CancellationStopsAtCombinationBoundary(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := &stubDiscoverer{
		results: map[string][]source.Candidate{
			"Pharmacies/Sudbury": {{Name: "Pine Pharmacy", RawAddress: "9 Bay Rd, Sudbury, ON"}},
		},
	}
	src.onCall = func(n int) {
		if n == 2 {
			cancel()
		}
	}
	d := fastDiscovery(src, []string{"Pharmacies"}, []string{"Sudbury", "Timmins", "Cochrane", "Kapuskasing"})

	go func() {
		for range d.Events() {
		}
	}()
	leads, summary, err := d.Run(ctx)

	require.NoError(t, err)
	// The combination in flight when cancel lands still finishes.
	assert.Equal(t, 2, summary.Completed)
	assert.Len(t, src.calls, 2)
	assert.Len(t, leads, 1)
	assert.Equal(t, StateCancelled, d.State())
}

func TestDiscovery_RunsOnce(t *testing.T) {
	d := fastDiscovery(&stubDiscoverer{}, nil, nil)
	go func() {
		for range d.Events() {
		}
	}()
	_, _, err := d.Run(context.Background())
	require.NoError(t, err)

	_, _, err = d.Run(context.Background())
	assert.Error(t, err)
}
