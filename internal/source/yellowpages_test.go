package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *Client {
	return NewClient(ClientOptions{
		UserAgents: []string{"test-agent"},
		Timeout:    2 * time.Second,
		RatePerSec: 1000,
	})
}

const ypListingPage = `
<html><body>
<div class="listing__content__wrapper">
  <a class="listing__name--link" href="/bus/1">Pine Variety Store</a>
  <span class="listing__address--full">123 Main St, Sudbury, ON P3B 1A1</span>
  <h4 class="impl_phone_number">705-555-1234</h4>
  <li class="mlr__item--website"><a href="/gourl/xyz?redirect=https%3A%2F%2Fpinevariety.ca&amp;x=1">Website</a></li>
</div>
<div class="listing__content__wrapper">
  <a class="listing__name--link" href="/bus/2">Acme Store</a>
  <span class="listing__address--full">12 Oak Ave, Timmins, ON</span>
  <li class="mlr__item--phone">(705) 555-9999</li>
</div>
</body></html>`

func TestYellowPages_LookupContact(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(ypListingPage))
	}))
	defer srv.Close()

	yp := NewYellowPages(testClient(), srv.URL)
	contact, err := yp.LookupContact(context.Background(), "Pine Variety Store", "123 Main St, Sudbury, ON")

	require.NoError(t, err)
	assert.Equal(t, "(705) 555-1234", contact.Phone)
	assert.Equal(t, "https://pinevariety.ca", contact.Website)
	// Locality extracted from the address; spaces become '+'.
	assert.Equal(t, "/search/si/1/Pine+Variety+Store/Sudbury", gotPath)
}

func TestYellowPages_LookupContact_PhoneListItemFallback(t *testing.T) {
	page := `<div class="listing__content__wrapper">
		<li class="mlr__item--phone">705 555 9999</li>
	</div>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	yp := NewYellowPages(testClient(), srv.URL)
	contact, err := yp.LookupContact(context.Background(), "Acme", "no province")

	require.NoError(t, err)
	assert.Equal(t, "(705) 555-9999", contact.Phone)
	assert.Equal(t, "N/A", contact.Website)
}

func TestYellowPages_LookupContact_NoListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body>no results</body></html>"))
	}))
	defer srv.Close()

	yp := NewYellowPages(testClient(), srv.URL)
	_, err := yp.LookupContact(context.Background(), "Nobody", "Sudbury, ON")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestYellowPages_LookupContact_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	yp := NewYellowPages(testClient(), srv.URL)
	_, err := yp.LookupContact(context.Background(), "Anyone", "Sudbury, ON")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestYellowPages_DiscoverCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(ypListingPage))
	}))
	defer srv.Close()

	yp := NewYellowPages(testClient(), srv.URL)
	candidates := yp.DiscoverCandidates(context.Background(), "Variety Stores", "Sudbury, ON")

	require.Len(t, candidates, 2)
	assert.Equal(t, "Pine Variety Store", candidates[0].Name)
	assert.Equal(t, "123 Main St, Sudbury, ON P3B 1A1", candidates[0].RawAddress)
	assert.Equal(t, "Acme Store", candidates[1].Name)
}

func TestYellowPages_DiscoverCandidates_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	yp := NewYellowPages(testClient(), srv.URL)
	assert.Empty(t, yp.DiscoverCandidates(context.Background(), "Museums", "Wawa, ON"))
}

func TestListingBlocks(t *testing.T) {
	assert.Empty(t, listingBlocks("no markers here"))

	blocks := listingBlocks("xx listing__content__wrapper aaa listing__content__wrapper bbb")
	require.Len(t, blocks, 2)
	assert.Contains(t, blocks[0], "aaa")
	assert.Contains(t, blocks[1], "bbb")
}
