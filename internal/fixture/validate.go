package fixture

import (
	"fmt"
	"strings"
	"time"
)

// Problem is a single validation failure
type Problem struct {
	Index   int
	Field   string
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("fixture %d: %s: %s", p.Index, p.Field, p.Message)
}

// ValidationError collects every problem found in a fixture list
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid fixtures: " + e.Problems[0].String()
	}
	lines := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		lines = append(lines, "  "+p.String())
	}
	return fmt.Sprintf("invalid fixtures (%d problems):\n%s", len(e.Problems), strings.Join(lines, "\n"))
}

// Validate checks the required fields of every fixture and returns a
// *ValidationError listing all problems, or nil.
func Validate(fixtures []*Fixture) error {
	var problems []Problem
	add := func(i int, field, format string, args ...interface{}) {
		problems = append(problems, Problem{Index: i, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	for i, f := range fixtures {
		if _, err := time.Parse(DateLayout, strings.TrimSpace(f.Date)); err != nil {
			add(i, "date", "want YYYY-MM-DD, got %q", f.Date)
		}
		if _, err := time.Parse(KickoffLayout, strings.TrimSpace(f.KickOff)); err != nil {
			add(i, "kick-off", "want HH:MM, got %q", f.KickOff)
		}
		if strings.TrimSpace(f.Opponent) == "" {
			add(i, "opponent", "required")
		}
		if strings.TrimSpace(f.Competition) == "" {
			add(i, "competition", "required")
		}
		if f.IsHome == nil {
			add(i, "is_home", "required")
		} else if !*f.IsHome && (f.AwayGround == nil || strings.TrimSpace(f.AwayGround.Name) == "") {
			add(i, "away_ground", "name required for away fixtures")
		}
		if f.Version < 0 {
			add(i, "version", "must not be negative, got %d", f.Version)
		}
		if _, err := f.Updated(); err != nil {
			add(i, "last_updated", "want RFC 3339 timestamp, got %q", f.LastUpdated)
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
