package calendar

import (
	"fmt"
	"strings"

	ical "github.com/arran4/golang-ical"
)

// Verify parses generated calendar text back and checks that it holds want
// events, each with a distinct UID, a start before its end, and a summary.
func Verify(data string, want int) error {
	cal, err := ical.ParseCalendar(strings.NewReader(data))
	if err != nil {
		return fmt.Errorf("parsing generated calendar: %w", err)
	}

	events := cal.Events()
	if len(events) != want {
		return fmt.Errorf("generated calendar has %d events, want %d", len(events), want)
	}

	seen := make(map[string]int, len(events))
	for i, ev := range events {
		uidProp := ev.GetProperty(ical.ComponentPropertyUniqueId)
		if uidProp == nil || uidProp.Value == "" {
			return fmt.Errorf("event %d: missing UID", i)
		}
		if prev, dup := seen[uidProp.Value]; dup {
			return fmt.Errorf("event %d: UID %s already used by event %d", i, uidProp.Value, prev)
		}
		seen[uidProp.Value] = i

		if p := ev.GetProperty(ical.ComponentPropertySummary); p == nil || p.Value == "" {
			return fmt.Errorf("event %d (%s): missing SUMMARY", i, uidProp.Value)
		}

		start, err := ev.GetStartAt()
		if err != nil {
			return fmt.Errorf("event %d (%s): DTSTART: %w", i, uidProp.Value, err)
		}
		end, err := ev.GetEndAt()
		if err != nil {
			return fmt.Errorf("event %d (%s): DTEND: %w", i, uidProp.Value, err)
		}
		if !end.After(start) {
			return fmt.Errorf("event %d (%s): DTEND %s not after DTSTART %s", i, uidProp.Value, end, start)
		}
	}
	return nil
}
