// Package cli implements the command-line interface for mcc-scraper.
//
// The root command runs one scrape of the club website and writes a JSON
// snapshot. The ics and notify subcommands read a snapshot back and export its
// fixtures as a calendar feed or post them to Twitter or Telegram.
package cli
