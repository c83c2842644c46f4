package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/fixtures-ics/internal/calendar"
	"github.com/pfrederiksen/fixtures-ics/internal/config"
	"github.com/pfrederiksen/fixtures-ics/internal/fixture"
	"github.com/pfrederiksen/fixtures-ics/internal/logger"
	"github.com/pfrederiksen/fixtures-ics/internal/storage"
)

var (
	flagOutput     string
	flagStrict     bool
	flagNoSnapshot bool
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <season>",
		Short: "Write the iCalendar file for a season",
		Long: `Find <season>.json, validate it and write <output-dir>/<season>.ics.

Fixtures edited since the last run without a version bump are reported, because
calendar apps ignore updates whose SEQUENCE did not increase.`,
		Example: "  fixtures-ics generate 2024-2025\n  fixtures-ics generate 2024-2025 --output - > fixtures.ics",
		Args:    cobra.ExactArgs(1),
		RunE:    runGenerate,
	}
	addGenerateFlags(cmd)
	return cmd
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file (default <output-dir>/<input name>.ics, '-' for stdout)")
	cmd.Flags().BoolVar(&flagStrict, "strict", false, "Fail when a fixture changed without a version bump")
	cmd.Flags().BoolVar(&flagNoSnapshot, "no-snapshot", false, "Skip change detection and do not update the snapshot")
}

// runGenerate is the main command logic
func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	b, err := prepare(cfg, args[0])
	if err != nil {
		return err
	}

	var store *storage.Storage
	if !flagNoSnapshot {
		store, err = storage.New(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("initializing storage: %w", err)
		}
		if err := checkChanges(store, cfg, b); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if flagOutput == "-" {
		if _, err := io.WriteString(out, b.ics); err != nil {
			return fmt.Errorf("writing calendar: %w", err)
		}
		logger.Info("Calendar written to stdout", logger.Fields{"season": b.season, "fixtures": len(b.fixtures)})
	} else {
		path := flagOutput
		if path == "" {
			path = calendar.OutputPath(cfg.OutputDir, b.input)
		}
		if err := calendar.WriteFile(path, b.ics); err != nil {
			return fmt.Errorf("error writing to '%s': %w", path, err)
		}
		fmt.Fprintf(out, "Successfully generated '%s' with %d fixtures\n", path, len(b.fixtures))
	}

	if store != nil {
		if err := store.CreateSnapshotFromFixtures(b.season, b.fixtures); err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}
		logger.Debug("Saved snapshot", logger.Fields{"season": b.season, "data_dir": store.Dir()})
	}

	return nil
}

// checkChanges compares the build with the last snapshot and reports edits.
// Unversioned edits are warnings, or an error in strict mode.
func checkChanges(store *storage.Storage, cfg *config.Config, b *build) error {
	previous, err := store.LoadSnapshot(b.season)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}

	// First run for this season: everything would be reported as added
	if len(previous.Fixtures) == 0 {
		logger.Debug("No previous snapshot", logger.Fields{"season": b.season})
		return nil
	}

	diff := fixture.Diff(previous, b.fixtures)
	for _, f := range diff.Added {
		logger.Info("Fixture added", logger.Fields{"uid": f.UID, "date": f.Date})
	}
	for _, f := range diff.Removed {
		logger.Info("Fixture removed", logger.Fields{"uid": f.UID, "date": f.Date})
	}
	for _, c := range diff.Changed {
		fields := logger.Fields{
			"uid":         c.UID,
			"changed":     changedFields(c),
			"old_version": c.OldVersion,
			"new_version": c.NewVersion,
		}
		if c.Unversioned() {
			logger.Warn("Fixture changed without a version bump", fields)
		} else {
			logger.Info("Fixture updated", fields)
		}
	}
	logger.AddCounter("fixtures.added", int64(len(diff.Added)))
	logger.AddCounter("fixtures.removed", int64(len(diff.Removed)))
	logger.AddCounter("fixtures.changed", int64(len(diff.Changed)))

	unversioned := diff.Unversioned()
	if cfg.Strict && len(unversioned) > 0 {
		uids := make([]string, 0, len(unversioned))
		for _, c := range unversioned {
			uids = append(uids, c.UID)
		}
		return fmt.Errorf("%d fixtures changed without a version bump: %s", len(unversioned), strings.Join(uids, ", "))
	}
	return nil
}

func changedFields(c *fixture.Change) string {
	names := make([]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		names = append(names, f.Field)
	}
	return strings.Join(names, ",")
}
