package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/fixtures-ics/internal/filter"
)

var (
	flagFormat       string
	flagSort         string
	flagVenue        string
	flagCompetitions []string
	flagOpponents    []string
	flagFrom         string
	flagTo           string
	flagWeekends     bool
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <season>",
		Short: "Print a season's fixtures as text or JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runList,
	}
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagSort, "sort", string(SortByDate), "Sort by: date, opponent, competition or file")
	cmd.Flags().StringVar(&flagVenue, "venue", "all", "Only home or away fixtures: home, away or all")
	cmd.Flags().StringSliceVar(&flagCompetitions, "competition", nil, "Only competitions containing this text (repeatable)")
	cmd.Flags().StringSliceVar(&flagOpponents, "opponent", nil, "Only opponents containing this text (repeatable)")
	cmd.Flags().StringVar(&flagFrom, "from", "", "Only fixtures on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flagTo, "to", "", "Only fixtures on or before this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&flagWeekends, "weekends", false, "Only fixtures on Saturday or Sunday")
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	// Validate format
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	order := SortOrder(strings.ToLower(flagSort))
	if !validSortOrder(order) {
		return fmt.Errorf("invalid sort: %s (must be 'date', 'opponent', 'competition' or 'file')", flagSort)
	}

	f, err := buildFilter()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	b, err := prepare(cfg, args[0])
	if err != nil {
		return err
	}

	selected := f.Apply(b.fixtures)
	result := &OutputResult{
		Season:   b.season,
		Input:    b.input,
		Fixtures: make([]*FixtureView, 0, len(selected)),
		Count:    len(selected),
	}
	if !f.IsEmpty() {
		result.Filter = f.Describe()
	}
	for _, fx := range selected {
		view, err := newFixtureView(fx, cfg)
		if err != nil {
			return err
		}
		result.Fixtures = append(result.Fixtures, view)
	}
	sortFixtures(result.Fixtures, order)

	if err := WriteOutput(cmd.OutOrStdout(), result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// buildFilter turns the list flags into a fixture filter
func buildFilter() (*filter.Filter, error) {
	f := filter.NewFilter()

	venue, err := filter.ParseVenue(flagVenue)
	if err != nil {
		return nil, err
	}
	f.Venue = venue
	f.Competitions = flagCompetitions
	f.Opponents = flagOpponents
	f.WeekendsOnly = flagWeekends

	if err := f.SetDateRange(flagFrom, flagTo); err != nil {
		return nil, err
	}
	return f, nil
}
