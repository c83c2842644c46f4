package fixture

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleJSON = `[
  {
    "date": "2024-08-10",
    "kick-off": "15:00",
    "opponent": "Stocksbridge Park Steels",
    "is_home": true,
    "competition": "NCEL Premier Division",
    "last_updated": "2024-07-01T09:00:00Z",
    "version": 2
  },
  {
    "date": "2024-08-17",
    "kick-off": "15:00",
    "opponent": "Handsworth",
    "is_home": false,
    "competition": "FA Cup",
    "away_ground": {"name": "Oliver's Mount", "address": "Handsworth, S13 9JD"}
  }
]`

func TestDecode(t *testing.T) {
	fixtures, err := Decode(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(fixtures) != 2 {
		t.Fatalf("Decode() returned %d fixtures, want 2", len(fixtures))
	}

	home := fixtures[0]
	if home.KickOff != "15:00" || !home.Home() || home.Version != 2 {
		t.Errorf("first fixture decoded wrong: %+v", home)
	}

	away := fixtures[1]
	if away.Home() || away.AwayGround == nil || away.AwayGround.Name != "Oliver's Mount" {
		t.Errorf("second fixture decoded wrong: %+v", away)
	}
	if away.Version != 0 {
		t.Errorf("missing version should default to 0, got %d", away.Version)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not JSON", "fixtures"},
		{"object instead of array", `{"date": "2024-08-10"}`},
		{"null element", `[null]`},
		{"truncated", `[{"date": "2024-08-10"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.input)); err == nil {
				t.Error("Decode() expected error")
			}
		})
	}
}

func TestDecode_EmptyArray(t *testing.T) {
	fixtures, err := Decode(strings.NewReader("[]"))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if fixtures == nil || len(fixtures) != 0 {
		t.Errorf("Decode([]) = %v, want empty non-nil slice", fixtures)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "2024-2025.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0600); err != nil {
		t.Fatal(err)
	}

	fixtures, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(fixtures) != 2 {
		t.Errorf("Load() returned %d fixtures, want 2", len(fixtures))
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}
	_, err = Load(bad)
	if err == nil || !strings.Contains(err.Error(), "invalid JSON in") {
		t.Errorf("Load() of malformed file error = %v, want invalid JSON error", err)
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Load() of missing file should fail")
	}
}

func TestCandidates(t *testing.T) {
	got := Candidates("2024-2025", "json")
	want := []string{
		filepath.Join("json", "2024-2025.json"),
		"2024-2025.json",
		filepath.Join("json", "2024_2025.json"),
		"2024_2025.json",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Candidates() = %v, want %v", got, want)
	}

	got = Candidates("current", "")
	if !reflect.DeepEqual(got, []string{"current.json"}) {
		t.Errorf("Candidates() without dir = %v", got)
	}
}

func TestFindInput(t *testing.T) {
	dir := t.TempDir()
	jsonDir := filepath.Join(dir, "json")
	if err := os.MkdirAll(jsonDir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"2023_2024.json", "2024-2025.json"} {
		if err := os.WriteFile(filepath.Join(jsonDir, name), []byte("[]"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name    string
		season  string
		want    string
		wantErr bool
	}{
		{"dashed name", "2024-2025", filepath.Join(jsonDir, "2024-2025.json"), false},
		{"underscored fallback", "2023-2024", filepath.Join(jsonDir, "2023_2024.json"), false},
		{"missing season", "2019-2020", "", true},
		{"empty season", "  ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindInput(tt.season, jsonDir)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FindInput() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrNoInput) {
					t.Errorf("FindInput() error = %v, want ErrNoInput", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("FindInput() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindInput_ListsAvailable(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "2024-2025.json"), []byte("[]"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := FindInput("2030-2031", dir)
	if err == nil {
		t.Fatal("FindInput() expected error")
	}
	if !strings.Contains(err.Error(), "available: 2024-2025.json") {
		t.Errorf("error should list available files, got %v", err)
	}
}

func TestSeasonFromFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain", "2024-2025.json", "2024-2025", false},
		{"with directory", filepath.Join("json", "2024-2025.json"), "2024-2025", false},
		{"embedded", "hallam-2023-2024-final.json", "2023-2024", false},
		{"underscored", "2024_2025.json", "2024-2025", false},
		{"no season", "fixtures.json", "", true},
		{"years not consecutive", "2024-2026.json", "", true},
		{"years reversed", "2025-2024.json", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SeasonFromFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SeasonFromFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrBadSeason) {
				t.Errorf("error = %v, want ErrBadSeason", err)
			}
			if got != tt.want {
				t.Errorf("SeasonFromFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
