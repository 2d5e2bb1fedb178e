package scraper

import (
	"context"
	"fmt"

	"github.com/pfrederiksen/mcc-scraper/internal/config"
	"github.com/pfrederiksen/mcc-scraper/internal/document"
	"github.com/pfrederiksen/mcc-scraper/internal/fixture"
	"github.com/pfrederiksen/mcc-scraper/internal/logger"
	"github.com/pfrederiksen/mcc-scraper/internal/news"
)

// PageFetcher returns the parsed page at a path relative to the site origin.
type PageFetcher interface {
	Fetch(ctx context.Context, path string) (document.Node, error)
}

// Result is the aggregate of one scrape run, in the snapshot file layout.
type Result struct {
	Homepage Homepage          `json:"homepage"`
	Fixtures []fixture.Fixture `json:"fixtures"`
}

// Homepage holds what was read from the site root.
type Homepage struct {
	News []news.Item `json:"news"`
}

// Scraper runs a full scrape against one site.
type Scraper struct {
	fetcher PageFetcher
	paths   config.Paths
}

// New creates a Scraper reading the pages at paths.
func New(fetcher PageFetcher, paths config.Paths) *Scraper {
	return &Scraper{
		fetcher: fetcher,
		paths:   paths,
	}
}

// Run fetches the homepage and the fixtures page in turn and parses both.
// A fetch failure ends the run and no result is returned.
func (s *Scraper) Run(ctx context.Context) (*Result, error) {
	home, err := s.fetcher.Fetch(ctx, s.paths.Home)
	if err != nil {
		return nil, fmt.Errorf("fetching homepage: %w", err)
	}
	items := news.Parse(home)

	page, err := s.fetcher.Fetch(ctx, s.paths.Fixtures)
	if err != nil {
		return nil, fmt.Errorf("fetching fixtures: %w", err)
	}
	fixtures := fixture.Parse(page)

	logger.SetGauge("snapshot.news", float64(len(items)))
	logger.SetGauge("snapshot.fixtures", float64(len(fixtures)))
	logger.Info("Parsed pages", logger.Fields{
		"news":     len(items),
		"fixtures": len(fixtures),
	})

	return &Result{
		Homepage: Homepage{News: items},
		Fixtures: fixtures,
	}, nil
}
