// Package source implements the outbound lookup clients: a structured
// directory search (YellowPages) and a free-text web search fallback
// (DuckDuckGo), plus the ordered chain that tries them in sequence.
package source

import (
	"context"

	"github.com/rotisserie/eris"
)

// Contact holds the phone/website pair a lookup returns. Phone is already
// normalized; either field may be the "N/A" sentinel.
type Contact struct {
	Phone   string
	Website string
}

// Candidate is a discovered name/address pair, address still raw.
type Candidate struct {
	Name       string
	RawAddress string
}

// ErrNotFound signals that a lookup completed but produced no listing.
// Transport and parse failures collapse to this as well; callers fall
// through to the next source in the chain.
var ErrNotFound = eris.New("source: not found")

// LookupSource finds contact data for a named business. The address is used
// to infer the search locality.
type LookupSource interface {
	Name() string
	LookupContact(ctx context.Context, name, address string) (*Contact, error)
}

// Discoverer finds candidate businesses for a category within a locality.
// Failures collapse to an empty slice, never an error.
type Discoverer interface {
	DiscoverCandidates(ctx context.Context, category, locality string) []Candidate
}
