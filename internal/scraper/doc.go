// Package scraper fetches the club website and assembles one scrape result.
//
// A Fetcher retrieves a page relative to the configured origin and hands back a
// parsed document, failing with a *StatusError on any non-2xx response. A
// Scraper runs the fixed sequence of a scrape: homepage news first, then the
// fixtures listing. Any fetch failure aborts the run so that no partial
// snapshot is ever produced.
package scraper
