package fixture

import (
	"regexp"
	"strings"
	"time"
)

var (
	ordinalSuffix = regexp.MustCompile(`(\d)(st|nd|rd|th)\b`)

	datedLayouts = []string{
		"Mon 2 Jan 2006",
		"Monday 2 January 2006",
		"2 Jan 2006",
		"2 January 2006",
		"02/01/2006",
		"02/01/06",
	}

	// The fixtures list usually omits the year.
	yearlessLayouts = []string{
		"Mon 2 Jan",
		"Monday 2 January",
		"Mon 2 January",
		"2 Jan",
		"2 January",
		"02/01",
	}

	startLayouts = []string{
		"15:04",
		"15.04",
		"3:04pm",
		"3.04pm",
		"3pm",
	}
)

// ParseDate turns a fixture date such as "Sat 12 Jul" into a calendar date in loc.
// Dates without a year take the year of ref, moved to the following year when
// that would put the date more than six months before ref.
// It returns the zero time when the text is not recognised.
func ParseDate(dateText string, ref time.Time, loc *time.Location) time.Time {
	text := normalizeDate(dateText)
	if text == "" {
		return time.Time{}
	}

	for _, layout := range datedLayouts {
		if t, err := time.ParseInLocation(layout, text, loc); err == nil {
			return t
		}
	}

	for _, layout := range yearlessLayouts {
		t, err := time.ParseInLocation(layout, text, loc)
		if err != nil {
			continue
		}
		ref = ref.In(loc)
		d := time.Date(ref.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		if d.Before(ref.AddDate(0, -6, 0)) {
			d = d.AddDate(1, 0, 0)
		}
		return d
	}

	return time.Time{}
}

// ParseStart reads a start time like "13:00" or "1.30pm".
func ParseStart(startText string) (hour, minute int, ok bool) {
	text := strings.ToLower(strings.Join(strings.Fields(startText), ""))
	if text == "" {
		return 0, 0, false
	}

	for _, layout := range startLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t.Hour(), t.Minute(), true
		}
	}
	return 0, 0, false
}

// StartTime combines Date and Start. allDay is true when only the date could be
// read; ok is false when neither could.
func (f Fixture) StartTime(ref time.Time, loc *time.Location) (start time.Time, allDay bool, ok bool) {
	day := ParseDate(f.Date, ref, loc)
	if day.IsZero() {
		return time.Time{}, false, false
	}

	hour, minute, timed := ParseStart(f.Start)
	if !timed {
		return day, true, true
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc), false, true
}

func normalizeDate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, ",", "")
	return ordinalSuffix.ReplaceAllString(s, "$1")
}
