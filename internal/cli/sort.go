package cli

import (
	"sort"
	"strings"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByDate        SortOrder = "date"
	SortByOpponent    SortOrder = "opponent"
	SortByCompetition SortOrder = "competition"
	SortByFile        SortOrder = "file"
)

// sortFixtures sorts fixture views in place. SortByFile keeps input order.
func sortFixtures(fixtures []*FixtureView, order SortOrder) {
	switch order {
	case SortByDate:
		sort.SliceStable(fixtures, func(i, j int) bool {
			return fixtures[i].Start.Before(fixtures[j].Start)
		})
	case SortByOpponent:
		sort.SliceStable(fixtures, func(i, j int) bool {
			a, b := strings.ToLower(fixtures[i].Opponent), strings.ToLower(fixtures[j].Opponent)
			if a != b {
				return a < b
			}
			// If opponents are equal, sort by date
			return fixtures[i].Start.Before(fixtures[j].Start)
		})
	case SortByCompetition:
		sort.SliceStable(fixtures, func(i, j int) bool {
			a, b := strings.ToLower(fixtures[i].Competition), strings.ToLower(fixtures[j].Competition)
			if a != b {
				return a < b
			}
			return fixtures[i].Start.Before(fixtures[j].Start)
		})
	}
}

func validSortOrder(s SortOrder) bool {
	switch s {
	case SortByDate, SortByOpponent, SortByCompetition, SortByFile:
		return true
	}
	return false
}
