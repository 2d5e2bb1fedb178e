package cli

import (
	"sort"
	"time"

	"github.com/pfrederiksen/mcc-scraper/internal/fixture"
)

// upcoming returns the fixtures dated on or after the day of ref, sorted by
// start. Fixtures whose date cannot be read are dropped.
func upcoming(fixtures []fixture.Fixture, ref time.Time) []fixture.Fixture {
	loc := ref.Location()
	y, m, d := ref.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)

	type dated struct {
		f     fixture.Fixture
		start time.Time
	}

	var list []dated
	for _, f := range fixtures {
		start, _, ok := f.StartTime(ref, loc)
		if !ok || start.Before(today) {
			continue
		}
		list = append(list, dated{f: f, start: start})
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].start.Before(list[j].start)
	})

	result := make([]fixture.Fixture, len(list))
	for i, item := range list {
		result[i] = item.f
	}
	return result
}
