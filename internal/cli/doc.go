// Package cli implements the command-line interface for fixtures-ics.
//
// The cli package provides the Cobra-based CLI with commands to generate a season's
// calendar, validate a fixture file without writing anything, and list fixtures as
// text or JSON. It coordinates the config, fixture, calendar and storage packages:
// find the season's JSON file, load and validate it, render and verify the
// calendar, write it, and record a snapshot for change detection on the next run.
package cli
