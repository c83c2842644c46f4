// Package config loads the fixtures-ics configuration.
//
// Settings come from an optional YAML file, then FIXTURES_* environment variables,
// then command-line flags. Missing or zero values fall back to the defaults in
// DefaultConfig, which describe Hallam FC.
package config
