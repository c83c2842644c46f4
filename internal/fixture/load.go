package fixture

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrNoInput is returned when no JSON file matches a season argument
	ErrNoInput = errors.New("no fixture file found")
	// ErrBadSeason is returned when a file name carries no yyyy-yyyy season
	ErrBadSeason = errors.New("expected file format yyyy-yyyy.json")
)

var seasonPattern = regexp.MustCompile(`(\d{4})[-_](\d{4})`)

// Candidates lists the paths tried for a season argument, in order.
// For each candidate name the JSON directory is tried before the working directory.
func Candidates(season, jsonDir string) []string {
	underscored := strings.ReplaceAll(season, "-", "_")
	names := []string{season + ".json"}
	if underscored != season {
		names = append(names, underscored+".json")
	}

	paths := make([]string, 0, len(names)*2)
	for _, name := range names {
		if jsonDir != "" {
			paths = append(paths, filepath.Join(jsonDir, name))
		}
		paths = append(paths, name)
	}
	return paths
}

// FindInput resolves the fixture file for a season argument such as "2024-2025".
// When nothing matches, the error names the JSON files that are available.
func FindInput(season, jsonDir string) (string, error) {
	season = strings.TrimSpace(season)
	if season == "" {
		return "", fmt.Errorf("%w: empty season", ErrNoInput)
	}

	for _, path := range Candidates(season, jsonDir) {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}

	available := availableFiles(jsonDir)
	if len(available) == 0 {
		return "", fmt.Errorf("%w for season %q: no JSON files in %s", ErrNoInput, season, jsonDir)
	}
	return "", fmt.Errorf("%w for season %q (available: %s)", ErrNoInput, season, strings.Join(available, ", "))
}

func availableFiles(dir string) []string {
	if dir == "" {
		return nil
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	sort.Strings(names)
	return names
}

// Load reads a JSON array of fixtures from disk
func Load(path string) ([]*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening fixtures: %w", err)
	}
	defer f.Close() // nolint:errcheck

	fixtures, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON in '%s': %w", path, err)
	}
	return fixtures, nil
}

// Decode reads a JSON array of fixtures
func Decode(r io.Reader) ([]*Fixture, error) {
	var fixtures []*Fixture
	dec := json.NewDecoder(r)
	if err := dec.Decode(&fixtures); err != nil {
		return nil, err
	}
	if fixtures == nil {
		fixtures = make([]*Fixture, 0)
	}
	for i, f := range fixtures {
		if f == nil {
			return nil, fmt.Errorf("fixture %d is null", i)
		}
	}
	return fixtures, nil
}

// SeasonFromFilename extracts the season label from a name like "json/2024-2025.json".
// An underscore separator is accepted and the second year must follow the first.
func SeasonFromFilename(name string) (string, error) {
	m := seasonPattern.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return "", fmt.Errorf("%w: %s", ErrBadSeason, name)
	}

	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	if end != start+1 {
		return "", fmt.Errorf("%w: %s spans %d to %d", ErrBadSeason, name, start, end)
	}
	return m[1] + "-" + m[2], nil
}
