package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/vovakirdan/snake-arcade/internal/ledger"
)

// FileStore keeps the ledger as one JSON document mapping mode names to
// record lists.
type FileStore struct {
	path string
}

var _ Backend = (*FileStore)(nil)

// NewFileStore returns a store for the JSON file at path.
// The file is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the file. A missing file is an empty ledger.
func (s *FileStore) Load() (map[string][]ledger.Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string][]ledger.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read %s: %w", s.path, err)
	}

	var scores map[string][]ledger.Record
	if err := json.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("storage: cannot parse %s: %w", s.path, err)
	}
	if scores == nil {
		scores = map[string][]ledger.Record{}
	}
	return scores, nil
}

// Save writes the whole ledger to a temporary file and renames it into place.
func (s *FileStore) Save(scores map[string][]ledger.Record) error {
	if err := ensureDir(s.path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(scores, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: cannot encode scores: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".scores-*.json")
	if err != nil {
		return fmt.Errorf("storage: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: cannot write scores: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: cannot write scores: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("storage: cannot replace %s: %w", s.path, err)
	}
	return nil
}

// TopScores reads the file and returns up to limit records for one mode,
// best first.
func (s *FileStore) TopScores(mode string, limit int) ([]ledger.Record, error) {
	if limit <= 0 {
		limit = ledger.DefaultKeep
	}

	scores, err := s.Load()
	if err != nil {
		return nil, err
	}

	recs := append([]ledger.Record(nil), scores[mode]...)
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// Close is a no-op; the file is only open during Load and Save.
func (s *FileStore) Close() error {
	return nil
}
