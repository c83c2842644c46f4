package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pfrederiksen/fixtures-ics/internal/fixture"
)

const seasonJSON = `[
  {
    "date": "2024-08-17",
    "kick-off": "15:00",
    "opponent": "Handsworth",
    "is_home": false,
    "competition": "FA Cup",
    "away_ground": {"name": "Oliver's Mount", "address": "Handsworth, S13 9JD"},
    "version": 1
  },
  {
    "date": "2024-08-10",
    "kick-off": "15:00",
    "opponent": "Stocksbridge Park Steels",
    "is_home": true,
    "competition": "NCEL Premier Division",
    "last_updated": "2024-07-01T09:00:00Z"
  }
]`

type workspace struct {
	jsonDir   string
	outputDir string
	dataDir   string
}

func newWorkspace(t *testing.T, content string) *workspace {
	t.Helper()
	root := t.TempDir()
	ws := &workspace{
		jsonDir:   filepath.Join(root, "json"),
		outputDir: filepath.Join(root, "ics"),
		dataDir:   filepath.Join(root, "data"),
	}
	if err := os.MkdirAll(ws.jsonDir, 0755); err != nil {
		t.Fatal(err)
	}
	ws.writeSeason(t, content)
	return ws
}

func (ws *workspace) writeSeason(t *testing.T, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(ws.jsonDir, "2024-2025.json"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

// run executes the CLI with the workspace directories and returns stdout and stderr
func (ws *workspace) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args,
		"--json-dir", ws.jsonDir,
		"--output-dir", ws.outputDir,
		"--data-dir", ws.dataDir,
	))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGenerate(t *testing.T) {
	ws := newWorkspace(t, seasonJSON)

	stdout, _, err := ws.run(t, "generate", "2024-2025")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}

	path := filepath.Join(ws.outputDir, "2024-2025.ics")
	want := "Successfully generated '" + path + "' with 2 fixtures"
	if !strings.Contains(stdout, want) {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading calendar: %v", err)
	}
	ics := string(data)
	for _, field := range []string{
		"PRODID:-//Hallam FC//Fixtures Calendar//2024-2025//EN",
		"UID:hallam-fc-2024-2025-handsworth-facup-away",
		"UID:hallam-fc-2024-2025-stocksbridgeparksteels-ncelpremierdivision-home",
		"SEQUENCE:1",
	} {
		if !strings.Contains(ics, field) {
			t.Errorf("calendar missing %q", field)
		}
	}

	// Input order is kept
	if strings.Index(ics, "handsworth") > strings.Index(ics, "stocksbridge") {
		t.Error("events should follow input order")
	}

	if _, err := os.Stat(filepath.Join(ws.dataDir, "snapshot_2024-2025.json")); err != nil {
		t.Errorf("snapshot not written: %v", err)
	}
}

func TestRootDefaultsToGenerate(t *testing.T) {
	ws := newWorkspace(t, seasonJSON)

	stdout, _, err := ws.run(t, "2024-2025")
	if err != nil {
		t.Fatalf("root error = %v", err)
	}
	if !strings.Contains(stdout, "Successfully generated") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestGenerate_Stdout(t *testing.T) {
	ws := newWorkspace(t, seasonJSON)

	stdout, _, err := ws.run(t, "generate", "2024-2025", "--output", "-", "--no-snapshot")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}
	if !strings.HasPrefix(stdout, "BEGIN:VCALENDAR\r\n") || !strings.HasSuffix(stdout, "END:VCALENDAR\r\n") {
		t.Errorf("stdout should be the calendar, got %q", stdout)
	}
	if _, err := os.Stat(ws.outputDir); !os.IsNotExist(err) {
		t.Error("nothing should be written to the output directory")
	}
	if _, err := os.Stat(ws.dataDir); !os.IsNotExist(err) {
		t.Error("--no-snapshot should not touch the data directory")
	}
}

func TestGenerate_UnversionedChange(t *testing.T) {
	ws := newWorkspace(t, seasonJSON)
	if _, _, err := ws.run(t, "generate", "2024-2025"); err != nil {
		t.Fatalf("first generate error = %v", err)
	}

	// Kick-off moved, version left at 0
	ws.writeSeason(t, strings.Replace(seasonJSON, `"date": "2024-08-10",
    "kick-off": "15:00"`, `"date": "2024-08-10",
    "kick-off": "12:30"`, 1))

	_, _, err := ws.run(t, "generate", "2024-2025", "--strict")
	if err == nil || !strings.Contains(err.Error(), "without a version bump") {
		t.Fatalf("strict generate error = %v, want version bump error", err)
	}

	_, stderr, err := ws.run(t, "generate", "2024-2025")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}
	if !strings.Contains(stderr, `"level":"WARN"`) || !strings.Contains(stderr, "stocksbridgeparksteels") {
		t.Errorf("expected a warning naming the fixture, stderr = %q", stderr)
	}
}

func TestGenerate_MissingSeason(t *testing.T) {
	ws := newWorkspace(t, seasonJSON)

	_, _, err := ws.run(t, "generate", "2019-2020")
	if !errors.Is(err, fixture.ErrNoInput) {
		t.Fatalf("error = %v, want ErrNoInput", err)
	}
	if !strings.Contains(err.Error(), "2024-2025.json") {
		t.Errorf("error should list available files, got %v", err)
	}
}

func TestGenerate_InvalidJSON(t *testing.T) {
	ws := newWorkspace(t, "[{")

	_, _, err := ws.run(t, "generate", "2024-2025")
	if err == nil || !strings.Contains(err.Error(), "invalid JSON") {
		t.Fatalf("error = %v, want invalid JSON error", err)
	}
}

func TestValidate(t *testing.T) {
	ws := newWorkspace(t, seasonJSON)

	stdout, _, err := ws.run(t, "validate", "2024-2025")
	if err != nil {
		t.Fatalf("validate error = %v", err)
	}
	if !strings.Contains(stdout, "is valid: 2 fixtures (1 home, 1 away) for season 2024-2025") {
		t.Errorf("stdout = %q", stdout)
	}
	if _, err := os.Stat(ws.outputDir); !os.IsNotExist(err) {
		t.Error("validate should not write a calendar")
	}
}

func TestValidate_Problems(t *testing.T) {
	ws := newWorkspace(t, `[{"date": "2024-08-10", "kick-off": "3pm", "opponent": "Handsworth", "competition": "League"}]`)

	_, _, err := ws.run(t, "validate", "2024-2025")
	var verr *fixture.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *fixture.ValidationError", err)
	}
	if len(verr.Problems) != 2 {
		t.Errorf("problems = %v, want kick-off and is_home", verr.Problems)
	}
}

func TestList_JSON(t *testing.T) {
	ws := newWorkspace(t, seasonJSON)

	stdout, _, err := ws.run(t, "list", "2024-2025", "--format", "json")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}

	var result OutputResult
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("list output is not JSON: %v", err)
	}
	if result.Count != 2 || result.Season != "2024-2025" {
		t.Errorf("result = %+v", result)
	}
	// Sorted by date, so the home match on the 10th comes first
	if result.Fixtures[0].Opponent != "Stocksbridge Park Steels" {
		t.Errorf("first fixture = %q, want Stocksbridge Park Steels", result.Fixtures[0].Opponent)
	}
	if result.Fixtures[1].Location != "Oliver's Mount, Handsworth, S13 9JD" {
		t.Errorf("away location = %q", result.Fixtures[1].Location)
	}
}

func TestList_Text(t *testing.T) {
	ws := newWorkspace(t, seasonJSON)

	stdout, _, err := ws.run(t, "list", "2024-2025", "--sort", "file")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(stdout, "Sat 17 Aug 2024 15:00") {
		t.Errorf("stdout = %q", stdout)
	}
	if strings.Index(stdout, "Handsworth") > strings.Index(stdout, "Stocksbridge") {
		t.Error("--sort file should keep input order")
	}
	if !strings.Contains(stdout, "Total: 2 fixtures in season 2024-2025") {
		t.Errorf("stdout missing total: %q", stdout)
	}
}

func TestList_InvalidFlags(t *testing.T) {
	ws := newWorkspace(t, seasonJSON)

	if _, _, err := ws.run(t, "list", "2024-2025", "--format", "xml"); err == nil {
		t.Error("expected error for invalid format")
	}
	if _, _, err := ws.run(t, "list", "2024-2025", "--sort", "venue"); err == nil {
		t.Error("expected error for invalid sort")
	}
}

func TestConfigFile(t *testing.T) {
	ws := newWorkspace(t, seasonJSON)
	cfgPath := filepath.Join(t.TempDir(), "club.yaml")
	if err := os.WriteFile(cfgPath, []byte("club: Sheffield FC\nutc_offset: 1h\n"), 0600); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := ws.run(t, "generate", "2024-2025", "--config", cfgPath, "--output", "-", "--no-snapshot")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}
	if !strings.Contains(stdout, "UID:sheffield-fc-2024-2025-handsworth-facup-away") {
		t.Error("club from config should drive UIDs")
	}
	if !strings.Contains(stdout, "DTSTART:20240810T140000Z") {
		t.Error("utc_offset from config should shift kick-off")
	}

	_, _, err = ws.run(t, "validate", "2024-2025", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("an explicit config path must exist")
	}
}

func TestList_Filter(t *testing.T) {
	ws := newWorkspace(t, seasonJSON)

	stdout, _, err := ws.run(t, "list", "2024-2025", "--venue", "home", "--format", "json")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}

	var result OutputResult
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("list output is not JSON: %v", err)
	}
	if result.Count != 1 || result.Fixtures[0].Venue != "home" {
		t.Errorf("result = %+v, want only the home fixture", result)
	}
	if result.Filter != "home" {
		t.Errorf("Filter = %q, want home", result.Filter)
	}

	stdout, _, err = ws.run(t, "list", "2024-2025", "--competition", "vase")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(stdout, "match competition: vase") {
		t.Errorf("stdout = %q", stdout)
	}

	if _, _, err := ws.run(t, "list", "2024-2025", "--from", "2024-09-01", "--to", "2024-08-01"); err == nil {
		t.Error("expected error for reversed date range")
	}
}
