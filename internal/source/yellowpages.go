package source

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/Kathail/NorthScrape/internal/normalize"
)

// listingMarker bounds one listing card in a YellowPages results page.
const listingMarker = "listing__content__wrapper"

var (
	ypPhoneHeadRe = regexp.MustCompile(`(?is)<h4[^>]*impl_phone_number[^>]*>(.*?)</h4>`)
	ypPhoneItemRe = regexp.MustCompile(`(?is)<li[^>]*mlr__item--phone[^>]*>(.*?)</li>`)
	ypWebsiteRe   = regexp.MustCompile(`(?is)<li[^>]*mlr__item--website[^>]*>(.*?)</li>`)
	ypNameRe      = regexp.MustCompile(`(?is)<a[^>]*listing__name--link[^>]*>(.*?)</a>`)
	ypAddressRe   = regexp.MustCompile(`(?is)<span[^>]*listing__address--full[^>]*>(.*?)</span>`)
)

// YellowPages is the primary lookup source: a structured directory search.
// It also implements Discoverer for category/locality candidate generation.
type YellowPages struct {
	client  *Client
	baseURL string
}

// NewYellowPages creates the directory-search source.
func NewYellowPages(client *Client, baseURL string) *YellowPages {
	return &YellowPages{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

func (y *YellowPages) Name() string { return "yellowpages" }

// searchURL builds the directory search URL. Spaces become '+'.
func (y *YellowPages) searchURL(query, locality string) string {
	return y.baseURL + "/search/si/1/" +
		strings.ReplaceAll(query, " ", "+") + "/" +
		strings.ReplaceAll(locality, " ", "+")
}

// LookupContact searches the directory for the business and parses the first
// listing. Any transport or parse failure collapses to ErrNotFound.
func (y *YellowPages) LookupContact(ctx context.Context, name, address string) (*Contact, error) {
	locality := normalize.LocalityFrom(address, "ON")

	body, err := y.client.Get(ctx, y.searchURL(name, locality))
	if err != nil {
		zap.L().Debug("yellowpages: lookup fetch failed",
			zap.String("name", name),
			zap.Error(err),
		)
		return nil, ErrNotFound
	}

	blocks := listingBlocks(body)
	if len(blocks) == 0 {
		return nil, ErrNotFound
	}
	listing := blocks[0]

	phone := normalize.NA
	if m := ypPhoneHeadRe.FindStringSubmatch(listing); m != nil {
		phone = stripTags(m[1])
	} else if m := ypPhoneItemRe.FindStringSubmatch(listing); m != nil {
		phone = stripTags(m[1])
	}

	contact := &Contact{
		Phone:   normalize.Phone(phone),
		Website: normalize.NA,
	}

	if m := ypWebsiteRe.FindStringSubmatch(listing); m != nil {
		if h := hrefRe.FindStringSubmatch(m[1]); h != nil {
			contact.Website = y.resolveWebsite(h[1])
		}
	}

	return contact, nil
}

// resolveWebsite turns a listing href into the business website, unwrapping
// the directory's redirect query parameter when present.
func (y *YellowPages) resolveWebsite(href string) string {
	website := href
	if strings.HasPrefix(href, "/") {
		website = y.baseURL + href
	}
	if strings.Contains(website, "redirect=") {
		if u, err := url.Parse(website); err == nil {
			if target := u.Query().Get("redirect"); target != "" {
				website = target
			}
		}
	}
	return website
}

// DiscoverCandidates searches the directory by category and returns every
// listing's name/address pair. Failures collapse to an empty result.
func (y *YellowPages) DiscoverCandidates(ctx context.Context, category, locality string) []Candidate {
	body, err := y.client.Get(ctx, y.searchURL(category, locality))
	if err != nil {
		zap.L().Debug("yellowpages: discovery fetch failed",
			zap.String("category", category),
			zap.String("locality", locality),
			zap.Error(err),
		)
		return nil
	}

	var candidates []Candidate
	for _, block := range listingBlocks(body) {
		nameM := ypNameRe.FindStringSubmatch(block)
		addrM := ypAddressRe.FindStringSubmatch(block)
		if nameM == nil || addrM == nil {
			continue
		}
		candidates = append(candidates, Candidate{
			Name:       stripTags(nameM[1]),
			RawAddress: stripTags(addrM[1]),
		})
	}
	return candidates
}

// listingBlocks slices a results page into per-listing fragments, one per
// occurrence of the listing wrapper marker.
func listingBlocks(body string) []string {
	var blocks []string
	idx := 0
	for {
		i := strings.Index(body[idx:], listingMarker)
		if i < 0 {
			break
		}
		start := idx + i
		rest := start + len(listingMarker)
		end := len(body)
		if next := strings.Index(body[rest:], listingMarker); next >= 0 {
			end = rest + next
		}
		blocks = append(blocks, body[start:end])
		idx = end
	}
	return blocks
}
