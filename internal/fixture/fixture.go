package fixture

import (
	"crypto/sha1"
	"fmt"
	"strings"

	"github.com/pfrederiksen/mcc-scraper/internal/document"
	"github.com/pfrederiksen/mcc-scraper/internal/logger"
)

const (
	// ContainerSelector identifies the panel holding the fixtures text.
	ContainerSelector = "div#pnlContent"
	// Separator delimits the fields of a fixture line.
	Separator = "|"

	fieldCount = 5
)

// Fixture is one scheduled match. Fields hold the trimmed page text as-is.
type Fixture struct {
	Date     string `json:"date"`
	Team     string `json:"team"`
	Opponent string `json:"opponent"`
	Venue    string `json:"venue"`
	Start    string `json:"start"`
}

// ID returns a deterministic identifier built from every field.
func (f Fixture) ID() string {
	h := sha1.New()
	h.Write([]byte(strings.Join([]string{f.Date, f.Team, f.Opponent, f.Venue, f.Start}, Separator)))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Parse extracts fixtures from the content panel of a fixtures page.
// A page without the panel yields an empty slice; this is not an error.
func Parse(doc document.Node) []Fixture {
	content, ok := doc.FindFirst(ContainerSelector)
	if !ok {
		logger.Warn("No content found on fixtures page", logger.Fields{
			"selector": ContainerSelector,
		})
		return []Fixture{}
	}

	return ParseText(content.LineText())
}

// ParseText parses newline-separated fixture text, keeping line order.
func ParseText(text string) []Fixture {
	fixtures := make([]Fixture, 0)
	var dropped int64

	for _, line := range strings.FieldsFunc(text, isLineBreak) {
		if !strings.Contains(line, Separator) {
			continue // headings, blank rows, decoration
		}

		f, ok := ParseLine(line)
		if !ok {
			dropped++
			continue
		}
		fixtures = append(fixtures, f)
	}

	logger.AddCounter("fixtures.rows_parsed", int64(len(fixtures)))
	logger.AddCounter("fixtures.rows_dropped", dropped)
	if dropped > 0 {
		logger.Debug("Dropped incomplete fixture rows", logger.Fields{"count": dropped})
	}

	return fixtures
}

// ParseLine parses a single fixture line. It reports false when the line has no
// separator or splits into fewer than five parts.
func ParseLine(line string) (Fixture, bool) {
	if !strings.Contains(line, Separator) {
		return Fixture{}, false
	}

	parts := strings.Split(line, Separator)
	if len(parts) < fieldCount {
		return Fixture{}, false
	}
	for i := range parts[:fieldCount] {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return Fixture{
		Date:     parts[0],
		Team:     parts[1],
		Opponent: parts[2],
		Venue:    parts[3],
		Start:    parts[4],
	}, true
}

// FilterByTeam returns the fixtures whose team matches name, ignoring case.
// An empty name returns fixtures unchanged.
func FilterByTeam(fixtures []Fixture, name string) []Fixture {
	name = strings.TrimSpace(name)
	if name == "" {
		return fixtures
	}

	filtered := make([]Fixture, 0)
	for _, f := range fixtures {
		if strings.EqualFold(f.Team, name) {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\u001c', '\u001d', '\u001e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
