package fixture

import (
	"sort"
)

// Snapshot represents the fixtures of a season as last written to a calendar
type Snapshot struct {
	Season    string              `json:"season"`
	Fixtures  map[string]*Fixture `json:"fixtures"` // keyed by UID
	UpdatedAt string              `json:"updated_at"`
}

// NewSnapshot creates an empty snapshot
func NewSnapshot(season string) *Snapshot {
	return &Snapshot{
		Season:   season,
		Fixtures: make(map[string]*Fixture),
	}
}

// CreateSnapshot creates a snapshot from fixtures that already carry UIDs
func CreateSnapshot(season string, fixtures []*Fixture, updatedAt string) *Snapshot {
	snap := NewSnapshot(season)
	snap.UpdatedAt = updatedAt
	for _, f := range fixtures {
		snap.Fixtures[f.UID] = f
	}
	return snap
}

// FieldChange is a single field that differs between two versions of a fixture
type FieldChange struct {
	Field    string `json:"field"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

// Change describes an edited fixture
type Change struct {
	UID        string        `json:"uid"`
	OldVersion int           `json:"old_version"`
	NewVersion int           `json:"new_version"`
	Fields     []FieldChange `json:"fields"`
}

// Unversioned reports whether the fixture changed without a version bump.
// Calendar clients ignore updates whose SEQUENCE did not increase.
func (c *Change) Unversioned() bool {
	return c.NewVersion <= c.OldVersion
}

// DiffResult contains the results of comparing fixtures against a snapshot
type DiffResult struct {
	Added   []*Fixture
	Removed []*Fixture
	Changed []*Change
}

// Unversioned returns the changes that did not bump the version
func (d *DiffResult) Unversioned() []*Change {
	var out []*Change
	for _, c := range d.Changed {
		if c.Unversioned() {
			out = append(out, c)
		}
	}
	return out
}

// Empty reports whether nothing was added, removed or changed
func (d *DiffResult) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Diff compares current fixtures against a previous snapshot, matching by UID
func Diff(previous *Snapshot, current []*Fixture) *DiffResult {
	result := &DiffResult{}
	if previous == nil {
		previous = NewSnapshot("")
	}

	seen := make(map[string]bool, len(current))
	for _, f := range current {
		seen[f.UID] = true
		old, exists := previous.Fixtures[f.UID]
		if !exists {
			result.Added = append(result.Added, f)
			continue
		}
		if fields := DetectChanges(old, f); len(fields) > 0 {
			result.Changed = append(result.Changed, &Change{
				UID:        f.UID,
				OldVersion: old.Version,
				NewVersion: f.Version,
				Fields:     fields,
			})
		}
	}

	for uid, f := range previous.Fixtures {
		if !seen[uid] {
			f.UID = uid
			result.Removed = append(result.Removed, f)
		}
	}

	sort.Slice(result.Removed, func(i, j int) bool {
		return result.Removed[i].UID < result.Removed[j].UID
	})

	return result
}

// DetectChanges compares the fields that end up in a calendar event
func DetectChanges(previous, current *Fixture) []FieldChange {
	var changes []FieldChange
	check := func(field, oldValue, newValue string) {
		if oldValue != newValue {
			changes = append(changes, FieldChange{Field: field, OldValue: oldValue, NewValue: newValue})
		}
	}

	check("date", previous.Date, current.Date)
	check("kick-off", previous.KickOff, current.KickOff)
	check("opponent", previous.Opponent, current.Opponent)
	check("competition", previous.Competition, current.Competition)
	check("venue", previous.Venue(), current.Venue())
	check("away_ground", previous.AwayLocation(), current.AwayLocation())

	return changes
}
