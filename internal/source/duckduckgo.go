package source

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/Kathail/NorthScrape/internal/normalize"
)

var (
	// North-American phone pattern; area code and exchange must not start
	// with 0 or 1.
	naPhoneRe = regexp.MustCompile(`(?:\+?1[-. ]?)?\(?([2-9][0-9]{2})\)?[-. ]?([2-9][0-9]{2})[-. ]?([0-9]{4})`)
	anchorRe  = regexp.MustCompile(`(?is)<a\b[^>]*>`)
)

// DuckDuckGo is the fallback lookup source: a free-text web search whose
// response is scanned for phone-like patterns and a plausible website link.
// It never fails; the worst outcome is an all-absent contact.
type DuckDuckGo struct {
	client    *Client
	baseURL   string
	blocklist []string
}

// NewDuckDuckGo creates the web-search fallback source. blocklist entries
// are directory-aggregator domains never accepted as a business website.
func NewDuckDuckGo(client *Client, baseURL string, blocklist []string) *DuckDuckGo {
	return &DuckDuckGo{
		client:    client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		blocklist: blocklist,
	}
}

func (d *DuckDuckGo) Name() string { return "duckduckgo" }

// LookupContact posts a "{name} {city} phone" query and extracts the first
// phone-like sequence from the page text plus the first non-directory result
// link. Transport and parse failures yield an all-"N/A" contact, not an
// error.
func (d *DuckDuckGo) LookupContact(ctx context.Context, name, address string) (*Contact, error) {
	city := normalize.LocalityFrom(address, "")

	terms := []string{name}
	if city != "" {
		terms = append(terms, city)
	}
	terms = append(terms, "phone")
	form := url.Values{"q": {strings.Join(terms, " ")}}

	body, err := d.client.PostForm(ctx, d.baseURL+"/html/", form)
	if err != nil {
		zap.L().Debug("duckduckgo: search failed",
			zap.String("name", name),
			zap.Error(err),
		)
		return &Contact{Phone: normalize.NA, Website: normalize.NA}, nil
	}

	contact := &Contact{
		Phone:   normalize.NA,
		Website: normalize.NA,
	}

	if m := naPhoneRe.FindStringSubmatch(stripTags(body)); m != nil {
		contact.Phone = "(" + m[1] + ") " + m[2] + "-" + m[3]
	}

	for _, tag := range anchorRe.FindAllString(body, -1) {
		if !strings.Contains(tag, "result__a") {
			continue
		}
		h := hrefRe.FindStringSubmatch(tag)
		if h == nil {
			continue
		}
		if href := h[1]; d.acceptableWebsite(href) {
			contact.Website = href
			break
		}
	}

	return contact, nil
}

// acceptableWebsite rejects the search engine's own links and known
// directory-aggregator domains.
func (d *DuckDuckGo) acceptableWebsite(href string) bool {
	if href == "" || strings.Contains(href, "duckduckgo") {
		return false
	}
	for _, blocked := range d.blocklist {
		if strings.Contains(href, blocked) {
			return false
		}
	}
	return true
}
