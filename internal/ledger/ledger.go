// Package ledger keeps the per-mode high-score tables.
// Persistence is delegated to a Store; the ledger itself only orders,
// truncates and serves records.
package ledger

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DateLayout is the minute-precision timestamp stored with each record.
const DateLayout = "2006-01-02 15:04"

// DefaultKeep is the number of records kept per mode.
const DefaultKeep = 10

// Record is one finished run.
type Record struct {
	Score  int    `json:"score"`
	Length int    `json:"length"`
	Food   int    `json:"food"`
	Moves  int    `json:"moves"`
	Date   string `json:"date"`
}

// NewRecord builds a record stamped with the given time.
func NewRecord(score, length, food, moves int, at time.Time) Record {
	return Record{
		Score:  score,
		Length: length,
		Food:   food,
		Moves:  moves,
		Date:   at.Format(DateLayout),
	}
}

// Store loads and saves the whole ledger mapping at once.
type Store interface {
	Load() (map[string][]Record, error)
	Save(scores map[string][]Record) error
}

// Ledger holds up to keep records per mode, best first.
// It is safe for concurrent use.
type Ledger struct {
	mu     sync.Mutex
	store  Store
	keep   int
	logger *log.Logger
	scores map[string][]Record
}

// Option customizes a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger used for persistence warnings.
func WithLogger(logger *log.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
	}
}

// WithKeep sets how many records are kept per mode.
func WithKeep(keep int) Option {
	return func(l *Ledger) {
		if keep > 0 {
			l.keep = keep
		}
	}
}

// New creates a ledger backed by store and loads its contents.
// A store that fails to load leaves the ledger empty; the failure is logged,
// not returned. store may be nil for a memory-only ledger.
func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:  store,
		keep:   DefaultKeep,
		logger: log.Default(),
		scores: make(map[string][]Record),
	}
	for _, opt := range opts {
		opt(l)
	}

	if store == nil {
		return l
	}

	loaded, err := store.Load()
	if err != nil {
		l.logger.Warn("Cannot load high scores, starting empty", "error", err)
		return l
	}
	for mode, recs := range loaded {
		l.scores[mode] = l.normalize(recs)
	}
	return l
}

// normalize sorts a copy of recs best first and truncates it.
// Equal scores keep their relative order, so older records stay ahead.
func (l *Ledger) normalize(recs []Record) []Record {
	out := append([]Record(nil), recs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > l.keep {
		out = out[:l.keep]
	}
	return out
}

// Record adds a finished run to the mode's table and persists the ledger.
// It returns the 1-based rank the record landed on, or 0 if it did not make
// the table. The in-memory table is updated even when saving fails.
func (l *Ledger) Record(mode string, rec Record) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Equal scores keep insertion order, so the new record lands after
	// every existing record that scores at least as much.
	pos := 0
	for _, r := range l.scores[mode] {
		if r.Score >= rec.Score {
			pos++
		}
	}
	rank := 0
	if pos < l.keep {
		rank = pos + 1
	}

	recs := append(append([]Record(nil), l.scores[mode]...), rec)
	l.scores[mode] = l.normalize(recs)

	return rank, l.save()
}

// Merge folds a whole mapping into the ledger and persists once.
// Used to import tables from another store.
func (l *Ledger) Merge(scores map[string][]Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for mode, recs := range scores {
		l.scores[mode] = l.normalize(append(l.scores[mode], recs...))
	}
	return l.save()
}

func (l *Ledger) save() error {
	if l.store == nil {
		return nil
	}
	if err := l.store.Save(l.copyScores()); err != nil {
		return fmt.Errorf("ledger: cannot save high scores: %w", err)
	}
	return nil
}

// Best returns the top record for the mode.
func (l *Ledger) Best(mode string) (Record, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	recs := l.scores[mode]
	if len(recs) == 0 {
		return Record{}, false
	}
	return recs[0], true
}

// Top returns up to n records for the mode, best first.
// n <= 0 returns the whole table.
func (l *Ledger) Top(mode string, n int) []Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	recs := l.scores[mode]
	if n <= 0 || n > len(recs) {
		n = len(recs)
	}
	return append([]Record(nil), recs[:n]...)
}

// Modes returns the modes that have at least one record, sorted by name.
func (l *Ledger) Modes() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	modes := make([]string, 0, len(l.scores))
	for mode, recs := range l.scores {
		if len(recs) > 0 {
			modes = append(modes, mode)
		}
	}
	sort.Strings(modes)
	return modes
}

// Snapshot returns a copy of every table.
func (l *Ledger) Snapshot() map[string][]Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.copyScores()
}

func (l *Ledger) copyScores() map[string][]Record {
	out := make(map[string][]Record, len(l.scores))
	for mode, recs := range l.scores {
		out[mode] = append([]Record(nil), recs...)
	}
	return out
}
