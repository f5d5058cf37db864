// Package storage keeps a local log of finished UFO Race matches.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// The log is write-once history for `ufo results`; sessions never read it back.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for match results.
type Store struct {
	db *sql.DB
}

// MatchResult is the outcome of one match as seen by one client.
type MatchResult struct {
	ID         int64
	MatchID    string
	Role       int // Local player, 1 or 2
	Winner     int // 1 or 2
	LocalScore int
	PeerScore  int
	Ticks      int
	Duration   int // Wall-clock seconds
	CreatedAt  time.Time
}

// Won reports whether the local player won.
func (r MatchResult) Won() bool {
	return r.Role == r.Winner
}

// Record aggregates results for one role.
type Record struct {
	Role   int
	Played int
	Wins   int
	Losses int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS match_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			role INTEGER NOT NULL,
			winner INTEGER NOT NULL,
			local_score INTEGER NOT NULL,
			peer_score INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_match_results_role ON match_results(role);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatchResult records a finished match.
// Returns the ID of the inserted record.
func (s *Store) SaveMatchResult(r MatchResult) (int64, error) {
	if r.MatchID == "" {
		return 0, fmt.Errorf("storage: match id is required")
	}
	res, err := s.db.Exec(
		`INSERT INTO match_results
		 (match_id, role, winner, local_score, peer_score, ticks, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.MatchID, r.Role, r.Winner, r.LocalScore, r.PeerScore, r.Ticks, r.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentResults retrieves the most recent matches, newest first.
func (s *Store) RecentResults(limit int) ([]MatchResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, match_id, role, winner, local_score, peer_score, ticks, duration_secs, created_at
		 FROM match_results
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match results: %w", err)
	}
	defer rows.Close()

	var results []MatchResult
	for rows.Next() {
		var r MatchResult
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.MatchID,
			&r.Role,
			&r.Winner,
			&r.LocalScore,
			&r.PeerScore,
			&r.Ticks,
			&r.Duration,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// RecordFor returns the win/loss record of the given role.
func (s *Store) RecordFor(role int) (Record, error) {
	rec := Record{Role: role}
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN winner = role THEN 1 ELSE 0 END), 0)
		 FROM match_results WHERE role = ?`,
		role,
	).Scan(&rec.Played, &rec.Wins)
	if err != nil {
		return rec, fmt.Errorf("storage: cannot get record: %w", err)
	}
	rec.Losses = rec.Played - rec.Wins
	return rec, nil
}

// ClearResults deletes every stored match.
func (s *Store) ClearResults() error {
	if _, err := s.db.Exec("DELETE FROM match_results"); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
