// Package metadata fetches article metadata (title, description, site name)
// from public URLs.
package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/persx/persx-sub000/internal/platform/logger"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 2 << 20
	userAgent      = "PersXBot/1.0 (+https://persx.ai)"
)

type Metadata struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	SiteName      string `json:"site_name,omitempty"`
	Author        string `json:"author,omitempty"`
	PublishedTime string `json:"published_time,omitempty"`
}

type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Metadata, error)
	// FetchAll fetches every URL concurrently and fails if any one fetch fails.
	FetchAll(ctx context.Context, urls []string) ([]*Metadata, error)
}

type Config struct {
	Timeout    time.Duration
	HTTPClient *http.Client
}

type fetcher struct {
	log     *logger.Logger
	http    *http.Client
	timeout time.Duration
}

func NewFetcher(log *logger.Logger, cfg Config) Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &fetcher{log: log.With("client", "MetadataFetcher"), http: hc, timeout: cfg.Timeout}
}

func (f *fetcher) FetchAll(ctx context.Context, urls []string) ([]*Metadata, error) {
	out := make([]*Metadata, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	for i, u := range urls {
		g.Go(func() error {
			md, err := f.Fetch(gctx, u)
			if err != nil {
				return err
			}
			out[i] = md
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (f *fetcher) Fetch(ctx context.Context, rawURL string) (*Metadata, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid url %q", rawURL)
	}
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u.Host, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: status %d", u.Host, resp.StatusCode)
	}

	md, err := Parse(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", u.Host, err)
	}
	md.URL = u.String()
	if md.SiteName == "" {
		md.SiteName = strings.TrimPrefix(u.Hostname(), "www.")
	}
	if md.Title == "" {
		md.Title = md.SiteName
	}
	f.log.Debug("fetched metadata", "host", u.Host, "title", md.Title)
	return md, nil
}

// Parse extracts metadata from an HTML document, preferring Open Graph tags.
func Parse(r io.Reader) (*Metadata, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	md := &Metadata{}
	var docTitle string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if docTitle == "" && n.FirstChild != nil {
					docTitle = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				applyMeta(md, n)
			case "body":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if md.Title == "" {
		md.Title = docTitle
	}
	return md, nil
}

func applyMeta(md *Metadata, n *html.Node) {
	key := strings.ToLower(attr(n, "property"))
	if key == "" {
		key = strings.ToLower(attr(n, "name"))
	}
	val := strings.TrimSpace(attr(n, "content"))
	if val == "" {
		return
	}
	switch key {
	case "og:title", "twitter:title":
		if md.Title == "" {
			md.Title = val
		}
	case "og:description", "twitter:description", "description":
		if md.Description == "" {
			md.Description = val
		}
	case "og:site_name":
		md.SiteName = val
	case "author", "article:author":
		if md.Author == "" {
			md.Author = val
		}
	case "article:published_time":
		md.PublishedTime = val
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
