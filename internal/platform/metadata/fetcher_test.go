package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/persx/persx-sub000/internal/platform/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))
}

const page = `<!doctype html><html><head>
<title>Fallback title</title>
<meta property="og:title" content="How Retailers Personalize Checkout">
<meta name="description" content="A look at checkout experiments.">
<meta property="og:site_name" content="Retail Weekly">
<meta name="author" content="Dana Lee">
<meta property="article:published_time" content="2026-02-01T09:00:00Z">
</head><body><h1>ignored</h1></body></html>`

func testServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, page)
	})
	mux.HandleFunc("/plain", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><head><title>Just a title</title></head></html>")
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	})
	return httptest.NewServer(mux)
}

func TestParsePrefersOpenGraph(t *testing.T) {
	md, err := Parse(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, "How Retailers Personalize Checkout", md.Title)
	assert.Equal(t, "A look at checkout experiments.", md.Description)
	assert.Equal(t, "Retail Weekly", md.SiteName)
	assert.Equal(t, "Dana Lee", md.Author)
	assert.Equal(t, "2026-02-01T09:00:00Z", md.PublishedTime)
}

func TestFetchAllPreservesOrder(t *testing.T) {
	srv := testServer()
	defer srv.Close()
	f := NewFetcher(logger.Nop(), Config{HTTPClient: srv.Client()})

	got, err := f.FetchAll(context.Background(), []string{srv.URL + "/plain", srv.URL + "/ok"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Just a title", got[0].Title)
	assert.Equal(t, "How Retailers Personalize Checkout", got[1].Title)
	assert.Equal(t, srv.URL+"/ok", got[1].URL)
}

func TestFetchAllFailsIfAnyFails(t *testing.T) {
	srv := testServer()
	defer srv.Close()
	f := NewFetcher(logger.Nop(), Config{HTTPClient: srv.Client()})

	got, err := f.FetchAll(context.Background(), []string{srv.URL + "/ok", srv.URL + "/gone"})
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "410")
}

func TestFetchRejectsNonHTTP(t *testing.T) {
	f := NewFetcher(logger.Nop(), Config{})
	_, err := f.Fetch(context.Background(), "ftp://example.com/file")
	assert.Error(t, err)
	_, err = f.Fetch(context.Background(), "not a url")
	assert.Error(t, err)
}
