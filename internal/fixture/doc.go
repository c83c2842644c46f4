// Package fixture provides types and functions for loading and validating football fixtures.
//
// The fixture package reads a season's fixture list from JSON, derives the season label
// from the input file name, validates every record and assigns each fixture a
// deterministic UID built from its opponent, competition and venue. It also compares a
// fixture list against a previously stored snapshot to catch edits that were made
// without bumping the fixture version.
package fixture
