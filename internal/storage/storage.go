package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pfrederiksen/fixtures-ics/internal/fixture"
)

// Storage handles persistence of fixture snapshots
type Storage struct {
	dataDir string
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// Dir returns the resolved data directory
func (s *Storage) Dir() string {
	return s.dataDir
}

// getSnapshotPath returns the path to the snapshot file
func (s *Storage) getSnapshotPath(season string) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("snapshot_%s.json", season))
}

// LoadSnapshot loads a season's snapshot from disk.
// An empty snapshot is returned when none has been saved yet.
func (s *Storage) LoadSnapshot(season string) (*fixture.Snapshot, error) {
	path := s.getSnapshotPath(season)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No previous snapshot, return empty one
			return fixture.NewSnapshot(season), nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snapshot fixture.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	// Ensure Fixtures map is initialized
	if snapshot.Fixtures == nil {
		snapshot.Fixtures = make(map[string]*fixture.Fixture)
	}
	if snapshot.Season == "" {
		snapshot.Season = season
	}

	// UIDs are not part of fixture JSON; the map key carries them
	for uid, f := range snapshot.Fixtures {
		if f == nil {
			delete(snapshot.Fixtures, uid)
			continue
		}
		f.UID = uid
	}

	return &snapshot, nil
}

// SaveSnapshot saves a snapshot to disk
func (s *Storage) SaveSnapshot(snapshot *fixture.Snapshot) error {
	if snapshot.Season == "" {
		return fmt.Errorf("snapshot has no season")
	}
	path := s.getSnapshotPath(snapshot.Season)

	// Set updated timestamp
	snapshot.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}

// CreateSnapshotFromFixtures creates and saves a snapshot from fixtures carrying UIDs
func (s *Storage) CreateSnapshotFromFixtures(season string, fixtures []*fixture.Fixture) error {
	snapshot := fixture.CreateSnapshot(season, fixtures, time.Now().UTC().Format(time.RFC3339))
	return s.SaveSnapshot(snapshot)
}
