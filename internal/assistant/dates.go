package assistant

import (
	"fmt"
	"strings"
	"time"
)

// Date layouts tried by ResolveDate, most specific first. Numeric forms put
// the day before the month, matching how the clinic's clients write dates.
var dateLayouts = []string{
	"January 2 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"January 2",
	"Jan 2",
	"2 January",
}

// ResolveDate turns a fuzzy date expression into a calendar date. Relative
// words win over the slot value: "today" or "tomorrow" in either input
// resolves immediately. Otherwise the slot value is parsed permissively,
// tolerating surrounding words. Returns false when nothing parses; callers
// should ask the user to rephrase rather than guess.
func ResolveDate(slotValue, utterance string, now time.Time) (time.Time, bool) {
	haystack := strings.ToLower(slotValue + " " + utterance)
	if strings.Contains(haystack, "today") {
		return midnight(now), true
	}
	if strings.Contains(haystack, "tomorrow") {
		return midnight(now.AddDate(0, 0, 1)), true
	}

	slotValue = strings.TrimSpace(slotValue)
	if slotValue == "" {
		return time.Time{}, false
	}
	return parseLoose(slotValue, now)
}

// parseLoose scans contiguous token windows of the cleaned input against the
// known layouts, so "see you on July 24, 2025 then" still parses.
func parseLoose(raw string, now time.Time) (time.Time, bool) {
	cleaned := strings.NewReplacer(",", " ", ".", " ").Replace(raw)
	tokens := strings.Fields(cleaned)
	for i := range tokens {
		tokens[i] = capitalize(tokens[i])
	}

	for width := len(tokens); width >= 1; width-- {
		if width > 4 {
			continue
		}
		for start := 0; start+width <= len(tokens); start++ {
			candidate := strings.Join(tokens[start:start+width], " ")
			for _, layout := range dateLayouts {
				t, err := time.Parse(layout, candidate)
				if err != nil {
					continue
				}
				if t.Year() == 0 {
					t = t.AddDate(now.Year(), 0, 0)
				}
				return midnight(t), true
			}
		}
	}
	return time.Time{}, false
}

// ClockFromMidnight renders elapsed time since midnight as a 12-hour clock
// string. Midnight maps to 12:00 AM, noon to 12:00 PM.
func ClockFromMidnight(d time.Duration) string {
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60

	suffix := "AM"
	if hours >= 12 {
		suffix = "PM"
	}
	h12 := hours % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h12, minutes, suffix)
}

// FormatDate renders a calendar date the way the management UI shows it.
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
