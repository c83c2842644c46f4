package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/pfrederiksen/fixtures-ics/internal/calendar"
	"github.com/pfrederiksen/fixtures-ics/internal/config"
	"github.com/pfrederiksen/fixtures-ics/internal/fixture"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// FixtureView is a fixture as it will appear in the calendar
type FixtureView struct {
	UID         string    `json:"uid"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Venue       string    `json:"venue"`
	Opponent    string    `json:"opponent"`
	Competition string    `json:"competition"`
	Summary     string    `json:"summary"`
	Location    string    `json:"location"`
	Version     int       `json:"version"`
}

// OutputResult contains data to be output
type OutputResult struct {
	Season   string         `json:"season"`
	Input    string         `json:"input"`
	Filter   string         `json:"filter,omitempty"`
	Fixtures []*FixtureView `json:"fixtures"`
	Count    int            `json:"count"`
}

// newFixtureView renders the calendar-facing fields of a validated fixture
func newFixtureView(f *fixture.Fixture, cfg *config.Config) (*FixtureView, error) {
	start, err := f.Kickoff(cfg.UTCOffset)
	if err != nil {
		return nil, err
	}
	return &FixtureView{
		UID:         f.UID,
		Start:       start,
		End:         start.Add(cfg.MatchDuration),
		Venue:       f.Venue(),
		Opponent:    f.Opponent,
		Competition: f.Competition,
		Summary:     calendar.Summary(f, cfg.Club),
		Location:    calendar.Location(f, cfg.HomeAddress),
		Version:     f.Version,
	}, nil
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as an aligned table
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.Count == 0 {
		if result.Filter != "" {
			fmt.Fprintf(w, "No fixtures in %s match %s.\n", result.Input, result.Filter)
		} else {
			fmt.Fprintf(w, "No fixtures in %s.\n", result.Input)
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range result.Fixtures {
		venue := "A"
		if f.Venue == "home" {
			venue = "H"
		}
		start := f.Start.Format("Mon 02 Jan 2006 15:04")
		if verbose {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\tv%d\t%s\t%s\n",
				start, venue, f.Opponent, f.Competition, f.Version, f.UID, f.Location)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\tv%d\n", start, venue, f.Opponent, f.Competition, f.Version)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if result.Filter != "" {
		fmt.Fprintf(w, "\nTotal: %d fixtures in season %s (%s)\n", result.Count, result.Season, result.Filter)
	} else {
		fmt.Fprintf(w, "\nTotal: %d fixtures in season %s\n", result.Count, result.Season)
	}
	return nil
}
