// Package storage persists the high-score ledger.
// SQLite is the default backend; a path ending in .json selects the plain
// JSON file layout used by older score files.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vovakirdan/snake-arcade/internal/ledger"
)

// Backend is a ledger store that can also answer per-mode queries and
// holds resources until closed.
type Backend interface {
	ledger.Store
	TopScores(mode string, limit int) ([]ledger.Record, error)
	Close() error
}

// Open picks a backend from the path's extension and opens it.
func Open(path string) (Backend, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewFileStore(path), nil
	}
	return OpenSQLite(path)
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// ensureDir creates the parent directory of path.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}
	return nil
}
