package notifier

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/mcc-scraper/internal/fixture"
)

// Notifier defines the interface for posting fixture notifications
type Notifier interface {
	// Notify posts notifications for the given fixtures
	Notify(fixtures []fixture.Fixture) error
}

// fixtureLine renders a fixture on one line, leaving out empty fields.
func fixtureLine(f fixture.Fixture) string {
	var parts []string
	if when := strings.TrimSpace(f.Date + " " + f.Start); when != "" {
		parts = append(parts, when)
	}
	switch {
	case f.Team != "" && f.Opponent != "":
		parts = append(parts, fmt.Sprintf("%s v %s", f.Team, f.Opponent))
	case f.Team != "":
		parts = append(parts, f.Team)
	case f.Opponent != "":
		parts = append(parts, "v "+f.Opponent)
	}
	if f.Venue != "" {
		parts = append(parts, "("+f.Venue+")")
	}
	return strings.Join(parts, " ")
}
