package store

import (
	"os"
	"path/filepath"
	"strings"
)

// Store keeps the console's local bookkeeping (activity log, last screen)
// under Dir. Entities themselves are never stored here.
//
// A Store with an empty Dir is disabled: writes are dropped and reads
// return nothing.
type Store struct {
	Dir string
}

// DefaultDir is ~/.crudconsole unless CRUDCONSOLE_DATA_DIR is set.
func DefaultDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("CRUDCONSOLE_DATA_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".crudconsole"), nil
}

func (s Store) Enabled() bool { return strings.TrimSpace(s.Dir) != "" }

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}
