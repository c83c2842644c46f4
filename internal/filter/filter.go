// Package filter narrows a fixture list by date range, venue, competition,
// opponent and day of week.
//
// Example usage:
//
//	// Home league matches played at weekends
//	f := filter.NewFilter()
//	f.Venue = filter.VenueHome
//	f.Competitions = []string{"Premier Division"}
//	f.WeekendsOnly = true
//
//	filtered := f.Apply(fixtures)
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/fixtures-ics/internal/fixture"
)

// Venue restricts fixtures to one side of the draw
type Venue string

const (
	VenueAny  Venue = ""
	VenueHome Venue = "home"
	VenueAway Venue = "away"
)

// ParseVenue accepts "home", "away", "all" or ""
func ParseVenue(s string) (Venue, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "any":
		return VenueAny, nil
	case "home", "h":
		return VenueHome, nil
	case "away", "a":
		return VenueAway, nil
	default:
		return VenueAny, fmt.Errorf("invalid venue %q (must be 'home', 'away' or 'all')", s)
	}
}

// Filter represents fixture filtering criteria
type Filter struct {
	// Date range filtering on the match date, both ends inclusive
	DateFrom *time.Time
	DateTo   *time.Time

	Venue Venue

	// Case-insensitive substring matches; any entry may match
	Competitions []string
	Opponents    []string

	// Saturday/Sunday only
	WeekendsOnly bool
}

// NewFilter creates a new empty filter with no active criteria.
// The filter will match all fixtures until criteria are added.
func NewFilter() *Filter {
	return &Filter{}
}

// IsEmpty checks if the filter has any active criteria
func (f *Filter) IsEmpty() bool {
	return f.DateFrom == nil &&
		f.DateTo == nil &&
		f.Venue == VenueAny &&
		len(f.Competitions) == 0 &&
		len(f.Opponents) == 0 &&
		!f.WeekendsOnly
}

// SetDateRange parses YYYY-MM-DD bounds; an empty string leaves that end open
func (f *Filter) SetDateRange(from, to string) error {
	if from != "" {
		t, err := time.Parse(fixture.DateLayout, strings.TrimSpace(from))
		if err != nil {
			return fmt.Errorf("invalid from date %q: want YYYY-MM-DD", from)
		}
		f.DateFrom = &t
	}
	if to != "" {
		t, err := time.Parse(fixture.DateLayout, strings.TrimSpace(to))
		if err != nil {
			return fmt.Errorf("invalid to date %q: want YYYY-MM-DD", to)
		}
		f.DateTo = &t
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		return fmt.Errorf("start date must be before end date")
	}
	return nil
}

// Matches checks if a fixture passes all active criteria.
// Fixtures with an unparseable date never match a date or weekend criterion.
func (f *Filter) Matches(fx *fixture.Fixture) bool {
	if f.IsEmpty() {
		return true
	}

	if f.Venue != VenueAny && fx.Venue() != string(f.Venue) {
		return false
	}
	if len(f.Competitions) > 0 && !containsAny(fx.Competition, f.Competitions) {
		return false
	}
	if len(f.Opponents) > 0 && !containsAny(fx.Opponent, f.Opponents) {
		return false
	}

	if f.DateFrom != nil || f.DateTo != nil || f.WeekendsOnly {
		date, err := time.Parse(fixture.DateLayout, strings.TrimSpace(fx.Date))
		if err != nil {
			return false
		}
		if f.DateFrom != nil && date.Before(*f.DateFrom) {
			return false
		}
		if f.DateTo != nil && date.After(*f.DateTo) {
			return false
		}
		if f.WeekendsOnly {
			day := date.Weekday()
			if day != time.Saturday && day != time.Sunday {
				return false
			}
		}
	}

	return true
}

// Apply returns the fixtures that match, keeping their order
func (f *Filter) Apply(fixtures []*fixture.Fixture) []*fixture.Fixture {
	if f.IsEmpty() {
		return fixtures
	}

	filtered := make([]*fixture.Fixture, 0, len(fixtures))
	for _, fx := range fixtures {
		if f.Matches(fx) {
			filtered = append(filtered, fx)
		}
	}
	return filtered
}

// Describe returns a short human-readable summary of the active criteria
func (f *Filter) Describe() string {
	if f.IsEmpty() {
		return "all fixtures"
	}

	var parts []string
	if f.Venue != VenueAny {
		parts = append(parts, string(f.Venue))
	}
	if len(f.Competitions) > 0 {
		parts = append(parts, "competition: "+strings.Join(f.Competitions, ", "))
	}
	if len(f.Opponents) > 0 {
		parts = append(parts, "opponent: "+strings.Join(f.Opponents, ", "))
	}
	if f.DateFrom != nil {
		parts = append(parts, "from "+f.DateFrom.Format(fixture.DateLayout))
	}
	if f.DateTo != nil {
		parts = append(parts, "to "+f.DateTo.Format(fixture.DateLayout))
	}
	if f.WeekendsOnly {
		parts = append(parts, "weekends only")
	}
	return strings.Join(parts, "; ")
}

func containsAny(value string, needles []string) bool {
	value = strings.ToLower(value)
	for _, n := range needles {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" && strings.Contains(value, n) {
			return true
		}
	}
	return false
}
