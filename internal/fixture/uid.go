package fixture

import (
	"regexp"
	"strings"
)

var (
	nonAlnum     = regexp.MustCompile(`[^a-z0-9]`)
	nonAlnumRuns = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slug lower-cases s and collapses runs of other characters to "-"
func Slug(s string) string {
	return strings.Trim(nonAlnumRuns.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

func squash(s string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(s), "")
}

// GenerateUID builds the base UID of a fixture from its semantic content:
// club, season, opponent, competition and venue. The date and kick-off are left
// out so a rescheduled match keeps its UID.
func GenerateUID(f *Fixture, club, season string) string {
	return strings.Join([]string{
		Slug(club),
		season,
		squash(f.Opponent),
		squash(f.Competition),
		f.Venue(),
	}, "-")
}

// AssignUIDs sets UID on every fixture. Fixtures that share a base UID, such
// as a cup tie and its replay, all get their date appended.
func AssignUIDs(fixtures []*Fixture, club, season string) {
	counts := make(map[string]int, len(fixtures))
	for _, f := range fixtures {
		f.UID = GenerateUID(f, club, season)
		counts[f.UID]++
	}

	for _, f := range fixtures {
		if counts[f.UID] > 1 {
			f.UID += "-" + strings.ReplaceAll(strings.TrimSpace(f.Date), "-", "")
		}
	}
}
