package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pfrederiksen/mcc-scraper/internal/config"
	"github.com/pfrederiksen/mcc-scraper/internal/document"
	"github.com/pfrederiksen/mcc-scraper/internal/logger"
)

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d fetching %s", e.StatusCode, e.URL)
}

// Fetcher retrieves pages from a single origin.
type Fetcher struct {
	client    *http.Client
	base      *url.URL
	userAgent string
}

// NewFetcher builds a Fetcher from cfg. A zero cfg.Timeout leaves requests
// without a client-side deadline.
func NewFetcher(cfg config.Config) (*Fetcher, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		base:      base,
		userAgent: cfg.UserAgent,
	}, nil
}

// URL resolves path against the base origin the way a browser resolves a link.
func (f *Fetcher) URL(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parsing path %q: %w", path, err)
	}
	return f.base.ResolveReference(ref).String(), nil
}

// Fetch downloads and parses the page at path.
func (f *Fetcher) Fetch(ctx context.Context, path string) (document.Node, error) {
	pageURL, err := f.URL(path)
	if err != nil {
		return nil, err
	}

	logger.Info("Fetching page", logger.Fields{"url": pageURL})
	start := time.Now()
	defer func() {
		logger.RecordTiming("fetch.page", time.Since(start))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		logger.IncrCounter("fetch.errors")
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.IncrCounter("fetch.errors")
		return nil, &StatusError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	doc, err := document.Parse(resp.Body)
	if err != nil {
		logger.IncrCounter("fetch.errors")
		return nil, err
	}

	return doc, nil
}
