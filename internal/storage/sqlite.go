package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/snake-arcade/internal/ledger"
)

// SQLiteStore keeps the ledger in a SQLite database.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
type SQLiteStore struct {
	db *sql.DB
}

var _ Backend = (*SQLiteStore)(nil)

// OpenSQLite creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	dbPath, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}
	if err := ensureDir(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &SQLiteStore{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS high_scores (
			mode TEXT NOT NULL,
			rank INTEGER NOT NULL,
			score INTEGER NOT NULL,
			length INTEGER NOT NULL,
			food INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			date TEXT NOT NULL,
			PRIMARY KEY (mode, rank)
		);
		CREATE INDEX IF NOT EXISTS idx_high_scores_top ON high_scores(mode, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads every table, each in rank order.
func (s *SQLiteStore) Load() (map[string][]ledger.Record, error) {
	rows, err := s.db.Query(
		`SELECT mode, score, length, food, moves, date
		 FROM high_scores
		 ORDER BY mode, rank`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	scores := make(map[string][]ledger.Record)
	for rows.Next() {
		var mode string
		var r ledger.Record
		if err := rows.Scan(&mode, &r.Score, &r.Length, &r.Food, &r.Moves, &r.Date); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		scores[mode] = append(scores[mode], r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return scores, nil
}

// Save replaces the stored tables with scores in a single transaction.
func (s *SQLiteStore) Save(scores map[string][]ledger.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	//nolint:errcheck // Rollback after Commit is a no-op
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM high_scores"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO high_scores (mode, rank, score, length, food, moves, date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for mode, recs := range scores {
		for i, r := range recs {
			if _, err := stmt.Exec(mode, i+1, r.Score, r.Length, r.Food, r.Moves, r.Date); err != nil {
				return fmt.Errorf("storage: cannot save score: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit scores: %w", err)
	}
	return nil
}

// TopScores retrieves up to limit records for one mode, best first.
func (s *SQLiteStore) TopScores(mode string, limit int) ([]ledger.Record, error) {
	if limit <= 0 {
		limit = ledger.DefaultKeep
	}

	rows, err := s.db.Query(
		`SELECT score, length, food, moves, date
		 FROM high_scores
		 WHERE mode = ?
		 ORDER BY rank
		 LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var recs []ledger.Record
	for rows.Next() {
		var r ledger.Record
		if err := rows.Scan(&r.Score, &r.Length, &r.Food, &r.Moves, &r.Date); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		recs = append(recs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return recs, nil
}
