package source

import (
	"context"

	"go.uber.org/zap"

	"github.com/Kathail/NorthScrape/internal/normalize"
)

// Chain tries lookup sources in priority order. A source's answer is usable
// when it carries a phone; otherwise the next source is consulted. The last
// source's answer is used regardless of outcome, so a chain lookup always
// produces a contact. Adding a third source means appending it here, the
// engine never changes.
type Chain struct {
	sources []LookupSource
}

// NewChain creates a Chain over the given sources, tried in order.
func NewChain(sources ...LookupSource) *Chain {
	return &Chain{sources: sources}
}

// Lookup resolves contact data for a business, returning the contact and the
// name of the source that supplied it.
func (c *Chain) Lookup(ctx context.Context, name, address string) (Contact, string) {
	absent := Contact{Phone: normalize.NA, Website: normalize.NA}

	for i, s := range c.sources {
		last := i == len(c.sources)-1

		contact, err := s.LookupContact(ctx, name, address)
		if err != nil || contact == nil {
			if last {
				return absent, s.Name()
			}
			zap.L().Debug("source: lookup missed, trying next",
				zap.String("source", s.Name()),
				zap.String("name", name),
			)
			continue
		}

		if contact.Phone != normalize.NA || last {
			return *contact, s.Name()
		}
	}

	return absent, ""
}
