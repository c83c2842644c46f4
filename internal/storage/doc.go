// Package storage provides JSON-based persistence for fixture snapshots.
//
// After a calendar is written, the fixtures behind it are saved as
// snapshot_<season>.json so the next run can tell which fixtures were edited.
// The default storage location is ~/.local/share/fixtures-ics/.
package storage
