package fixture

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout    = "2006-01-02"
	KickoffLayout = "15:04"
)

// Ground is the venue of an away fixture
type Ground struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// Fixture represents a single match in a season's fixture list
type Fixture struct {
	Date        string  `json:"date"`
	KickOff     string  `json:"kick-off"`
	Opponent    string  `json:"opponent"`
	IsHome      *bool   `json:"is_home"`
	Competition string  `json:"competition"`
	AwayGround  *Ground `json:"away_ground,omitempty"`
	LastUpdated string  `json:"last_updated,omitempty"`
	Version     int     `json:"version,omitempty"`

	// UID is derived, never read from input
	UID string `json:"-"`
}

// Home reports whether the fixture is played at the club's own ground.
// A missing is_home is treated as away; Validate rejects it before it matters.
func (f *Fixture) Home() bool {
	return f.IsHome != nil && *f.IsHome
}

// Venue returns "home" or "away"
func (f *Fixture) Venue() string {
	if f.Home() {
		return "home"
	}
	return "away"
}

// Kickoff combines Date and KickOff into an instant. The wall clock is read at
// the given fixed UTC offset and the result is returned in UTC.
func (f *Fixture) Kickoff(offset time.Duration) (time.Time, error) {
	t, err := time.Parse(DateLayout+" "+KickoffLayout, strings.TrimSpace(f.Date)+" "+strings.TrimSpace(f.KickOff))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing kick-off %q %q: %w", f.Date, f.KickOff, err)
	}
	zone := time.FixedZone("fixture", int(offset/time.Second))
	local := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, zone)
	return local.UTC(), nil
}

// Updated parses LastUpdated. The zero time is returned when it is empty.
func (f *Fixture) Updated() (time.Time, error) {
	if strings.TrimSpace(f.LastUpdated) == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(f.LastUpdated))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing last_updated %q: %w", f.LastUpdated, err)
	}
	return t.UTC(), nil
}

// AwayLocation returns the away ground as "name, address"
func (f *Fixture) AwayLocation() string {
	if f.AwayGround == nil {
		return ""
	}
	name := strings.TrimSpace(f.AwayGround.Name)
	addr := strings.TrimSpace(f.AwayGround.Address)
	if addr == "" {
		return name
	}
	return name + ", " + addr
}

// Bool returns a pointer to b, handy for building fixtures in code
func Bool(b bool) *bool {
	return &b
}
