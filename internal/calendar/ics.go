// Package calendar renders fixtures as an iCalendar (RFC 5545) feed.
package calendar

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pfrederiksen/mcc-scraper/internal/fixture"
)

// DefaultMatchLength is used when Options.MatchLength is zero.
const DefaultMatchLength = 6 * time.Hour

// Options control how fixtures are placed on the calendar.
type Options struct {
	Name        string         // X-WR-CALNAME, omitted when empty
	SiteURL     string         // URL property and UID domain
	Reference   time.Time      // resolves fixture dates that carry no year
	Location    *time.Location // time zone of the fixture text; UTC when nil
	MatchLength time.Duration
	Now         time.Time // DTSTAMP; time.Now when zero
}

// GenerateICS renders every fixture whose date can be read as a VEVENT and
// returns the calendar together with the number of fixtures left out.
// It returns an empty string when no fixture could be placed.
func GenerateICS(fixtures []fixture.Fixture, opts Options) (string, int) {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	length := opts.MatchLength
	if length <= 0 {
		length = DefaultMatchLength
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	ref := opts.Reference
	if ref.IsZero() {
		ref = now
	}
	domain := uidDomain(opts.SiteURL)

	var events strings.Builder
	skipped := 0
	for _, f := range fixtures {
		start, allDay, ok := f.StartTime(ref, loc)
		if !ok {
			skipped++
			continue
		}

		events.WriteString("BEGIN:VEVENT\r\n")
		events.WriteString(fmt.Sprintf("UID:%s@%s\r\n", f.ID(), domain))
		events.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(now)))
		if allDay {
			events.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", formatICSDate(start)))
			events.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", formatICSDate(start.AddDate(0, 0, 1))))
		} else {
			events.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(start)))
			events.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(start.Add(length))))
		}
		events.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary(f))))
		events.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description(f))))
		if f.Venue != "" {
			events.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(f.Venue)))
		}
		if opts.SiteURL != "" {
			events.WriteString(fmt.Sprintf("URL:%s\r\n", opts.SiteURL))
		}
		events.WriteString("STATUS:CONFIRMED\r\n")
		events.WriteString("TRANSP:OPAQUE\r\n")
		events.WriteString("END:VEVENT\r\n")
	}

	if events.Len() == 0 {
		return "", skipped
	}

	var ics strings.Builder
	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//MCC Scraper//mcc-scraper//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	if opts.Name != "" {
		ics.WriteString(fmt.Sprintf("X-WR-CALNAME:%s\r\n", escapeICS(opts.Name)))
	}
	ics.WriteString(events.String())
	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String(), skipped
}

func summary(f fixture.Fixture) string {
	switch {
	case f.Team != "" && f.Opponent != "":
		return fmt.Sprintf("%s v %s", f.Team, f.Opponent)
	case f.Opponent != "":
		return f.Opponent
	default:
		return f.Team
	}
}

func description(f fixture.Fixture) string {
	lines := []string{
		"Date: " + f.Date,
		"Team: " + f.Team,
		"Opponent: " + f.Opponent,
		"Venue: " + f.Venue,
		"Start: " + f.Start,
	}
	return strings.Join(lines, "\n")
}

func uidDomain(siteURL string) string {
	if u, err := url.Parse(siteURL); err == nil && u.Host != "" {
		return u.Host
	}
	return "mcc-scraper"
}

// formatICSTime formats a time.Time as an iCalendar UTC datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// formatICSDate formats the calendar day of t without converting zones.
func formatICSDate(t time.Time) string {
	return t.Format("20060102")
}

// escapeICS escapes text values according to RFC 5545
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
