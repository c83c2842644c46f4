package calendar

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// OutputPath returns <dir>/<input stem>.ics
func OutputPath(dir, input string) string {
	base := filepath.Base(input)
	stem := base[:len(base)-len(filepath.Ext(base))]
	return filepath.Join(dir, stem+".ics")
}

// WriteFile writes data to path through a temp file in the same directory, so
// subscribers never fetch a half-written calendar. The directory is created if needed.
func WriteFile(path, data string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".fixtures-*.ics.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // nolint:errcheck

	if _, err := io.WriteString(tmp, data); err != nil {
		tmp.Close() // nolint:errcheck
		return fmt.Errorf("writing calendar: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
