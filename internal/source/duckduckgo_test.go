package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ddgResultPage = `
<html><body>
<div class="results">
  <a rel="nofollow" class="result__a" href="https://duckduckgo.com/y.js?ad=1">Sponsored</a>
  <a rel="nofollow" class="result__a" href="https://www.yelp.ca/biz/acme-store">Acme Store - Yelp</a>
  <a rel="nofollow" class="result__a" href="https://acmestore.ca/contact">Acme Store | Contact</a>
  <p>Call Acme Store at 705-555-1234 or visit us in Timmins.</p>
</div>
</body></html>`

func newDDG(t *testing.T, handler http.HandlerFunc) (*DuckDuckGo, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewDuckDuckGo(testClient(), srv.URL, []string{"yelp", "yellowpages", "411.ca"}), srv
}

func TestDuckDuckGo_LookupContact(t *testing.T) {
	var gotQuery string
	ddg, _ := newDDG(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotQuery = r.PostForm.Get("q")
		_, _ = w.Write([]byte(ddgResultPage))
	})

	contact, err := ddg.LookupContact(context.Background(), "Acme Store", "12 Oak Ave, Timmins, ON")

	require.NoError(t, err)
	assert.Equal(t, "Acme Store Timmins phone", gotQuery)
	assert.Equal(t, "(705) 555-1234", contact.Phone)
	// Search-engine and directory links are skipped.
	assert.Equal(t, "https://acmestore.ca/contact", contact.Website)
}

func TestDuckDuckGo_LookupContact_NoCityInAddress(t *testing.T) {
	var gotQuery string
	ddg, _ := newDDG(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotQuery = r.PostForm.Get("q")
		_, _ = w.Write([]byte("<html><body>nothing useful</body></html>"))
	})

	contact, err := ddg.LookupContact(context.Background(), "Acme Store", "12 Oak Ave")

	require.NoError(t, err)
	assert.Equal(t, "Acme Store phone", gotQuery)
	assert.Equal(t, "N/A", contact.Phone)
	assert.Equal(t, "N/A", contact.Website)
}

func TestDuckDuckGo_LookupContact_RejectsLowAreaCodes(t *testing.T) {
	// Area code / exchange starting with 0 or 1 must not match.
	ddg, _ := newDDG(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<p>ref 123-456-7890 and 705-555-2222</p>"))
	})

	contact, err := ddg.LookupContact(context.Background(), "Acme", "Timmins, ON")

	require.NoError(t, err)
	assert.Equal(t, "(705) 555-2222", contact.Phone)
}

func TestDuckDuckGo_LookupContact_TransportFailureDegrades(t *testing.T) {
	ddg, srv := newDDG(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_ = srv

	contact, err := ddg.LookupContact(context.Background(), "Acme", "Timmins, ON")

	// The fallback source never raises.
	require.NoError(t, err)
	assert.Equal(t, "N/A", contact.Phone)
	assert.Equal(t, "N/A", contact.Website)
}
