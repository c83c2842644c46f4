package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/fixtures-ics/internal/calendar"
	"github.com/pfrederiksen/fixtures-ics/internal/config"
	"github.com/pfrederiksen/fixtures-ics/internal/fixture"
	"github.com/pfrederiksen/fixtures-ics/internal/logger"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig    string
	flagJSONDir   string
	flagOutputDir string
	flagDataDir   string
	flagVerbose   bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixtures-ics [season]",
		Short: "Generate an iCalendar file from a season's football fixtures",
		Long: `A CLI tool to turn a season's fixture list (json/2024-2025.json) into an
iCalendar file (ics/2024-2025.ics) that calendar apps can import or subscribe to.

Running it with a season is the same as "fixtures-ics generate <season>".`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupLogging,
		PersistentPostRun: logMetrics,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runGenerate(cmd, args)
		},
	}

	// Define flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", config.DefaultConfigPath, "Path to YAML config file")
	pf.StringVar(&flagJSONDir, "json-dir", config.DefaultJSONDir, "Directory holding <season>.json fixture files")
	pf.StringVar(&flagOutputDir, "output-dir", config.DefaultOutputDir, "Directory for generated .ics files")
	pf.StringVar(&flagDataDir, "data-dir", config.DefaultDataDir, "Data directory for fixture snapshots")
	pf.BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	addGenerateFlags(cmd)

	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level := logger.LevelInfo
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))
	return nil
}

func logMetrics(cmd *cobra.Command, args []string) {
	logger.Debug("Run metrics", logger.Fields{"metrics": logger.GetMetricsSnapshot()})
}

// loadConfig reads the config file and applies flags the user set explicitly.
// The default config path may be absent.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	cfg, err := config.Load(flagConfig, !flags.Changed("config"))
	if err != nil {
		return nil, err
	}

	if flags.Changed("json-dir") {
		cfg.JSONDir = flagJSONDir
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = flagOutputDir
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = flagDataDir
	}
	if flags.Lookup("strict") != nil && flags.Changed("strict") {
		cfg.Strict = flagStrict
	}

	logger.Debug("Effective config", logger.Fields{
		"club":           cfg.Club,
		"json_dir":       cfg.JSONDir,
		"output_dir":     cfg.OutputDir,
		"data_dir":       cfg.DataDir,
		"utc_offset":     cfg.UTCOffset.String(),
		"match_duration": cfg.MatchDuration.String(),
		"strict":         cfg.Strict,
	})
	return cfg, nil
}

// calendarOptions maps configuration onto rendering options
func calendarOptions(cfg *config.Config, season string) calendar.Options {
	links := make([]calendar.Link, 0, len(cfg.Links))
	for _, l := range cfg.Links {
		links = append(links, calendar.Link{Label: l.Label, URL: l.URL})
	}
	return calendar.Options{
		Club:        cfg.Club,
		Season:      season,
		HomeAddress: cfg.HomeAddress,
		Timezone:    cfg.Timezone,
		UTCOffset:   cfg.UTCOffset,
		Duration:    cfg.MatchDuration,
		Links:       links,
	}
}

// build holds the result of the shared load → validate → render pipeline
type build struct {
	input    string
	season   string
	fixtures []*fixture.Fixture
	ics      string
}

// prepare finds, loads and validates a season, then renders and verifies its calendar
func prepare(cfg *config.Config, seasonArg string) (*build, error) {
	input, err := fixture.FindInput(seasonArg, cfg.JSONDir)
	if err != nil {
		return nil, err
	}
	logger.Debug("Found fixture file", logger.Fields{"season": seasonArg, "path": input})

	season, err := fixture.SeasonFromFilename(input)
	if err != nil {
		return nil, err
	}

	fixtures, err := fixture.Load(input)
	if err != nil {
		return nil, err
	}
	logger.AddCounter("fixtures.loaded", int64(len(fixtures)))

	if err := fixture.Validate(fixtures); err != nil {
		return nil, err
	}
	fixture.AssignUIDs(fixtures, cfg.Club, season)

	start := time.Now()
	ics, err := calendar.GenerateICS(fixtures, calendarOptions(cfg, season))
	if err != nil {
		return nil, fmt.Errorf("generating calendar: %w", err)
	}
	logger.RecordTiming("calendar.generate", time.Since(start))
	logger.SetGauge("calendar.bytes", float64(len(ics)))

	if err := calendar.Verify(ics, len(fixtures)); err != nil {
		return nil, fmt.Errorf("verifying calendar: %w", err)
	}

	return &build{
		input:    input,
		season:   season,
		fixtures: fixtures,
		ics:      ics,
	}, nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
