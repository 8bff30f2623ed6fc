// Package storage keeps a journal of finished runs in an in-memory SQLite
// database. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies. Nothing is written to disk; the journal lives as long as
// the process.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultLimit and MaxLimit bound list queries.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Store manages the SQLite connection backing the run journal.
type Store struct {
	db *sql.DB
}

// Run is a single finished run.
type Run struct {
	ID      string    `json:"id"`       // UUID assigned on save
	Player  string    `json:"player"`   // Local user or SSH user name
	Score   int       `json:"score"`    // Pipes passed
	Ticks   int64     `json:"ticks"`    // Playing ticks the run lasted
	Flaps   int       `json:"flaps"`    // Flaps during the run
	EndedAt time.Time `json:"ended_at"` // When the bird hit a pipe
}

// Stats aggregates the whole journal.
type Stats struct {
	Runs       int       `json:"runs"`
	HighScore  int       `json:"high_score"`
	AvgScore   float64   `json:"avg_score"`
	TotalTicks int64     `json:"total_ticks"`
	Players    int       `json:"players"`
	LastPlayed time.Time `json:"last_played"`
}

// OpenMemory creates an empty in-memory journal and runs migrations.
// A single connection is kept open because every new connection to
// ":memory:" would see its own empty database.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Test connection
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

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			flaps INTEGER NOT NULL DEFAULT 0,
			ended_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC, seq);
		CREATE INDEX IF NOT EXISTS idx_runs_ended ON runs(ended_at DESC, seq DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection and drops the journal.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run. A missing ID or end time is filled in.
// Returns the run as stored.
func (s *Store) SaveRun(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.EndedAt.IsZero() {
		run.EndedAt = time.Now()
	}
	if run.Player == "" {
		run.Player = "anonymous"
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (id, player, score, ticks, flaps, ended_at) VALUES (?, ?, ?, ?, ?, ?)",
		run.ID, run.Player, run.Score, run.Ticks, run.Flaps, run.EndedAt.UnixMilli(),
	)
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot save run: %w", err)
	}

	run.EndedAt = time.UnixMilli(run.EndedAt.UnixMilli())
	return run, nil
}

// TopRuns retrieves the best runs, highest score first. Ties keep the
// earlier run first.
func (s *Store) TopRuns(ctx context.Context, limit int) ([]Run, error) {
	return s.queryRuns(ctx,
		`SELECT id, player, score, ticks, flaps, ended_at
		 FROM runs
		 ORDER BY score DESC, seq ASC
		 LIMIT ?`,
		clampLimit(limit),
	)
}

// RecentRuns retrieves the latest runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	return s.queryRuns(ctx,
		`SELECT id, player, score, ticks, flaps, ended_at
		 FROM runs
		 ORDER BY ended_at DESC, seq DESC
		 LIMIT ?`,
		clampLimit(limit),
	)
}

// RunByID retrieves a single run. Returns nil if it does not exist.
func (s *Store) RunByID(ctx context.Context, id string) (*Run, error) {
	runs, err := s.queryRuns(ctx,
		`SELECT id, player, score, ticks, flaps, ended_at
		 FROM runs
		 WHERE id = ?`,
		id,
	)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

func (s *Store) queryRuns(ctx context.Context, query string, args ...any) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		var endedAt int64
		if err := rows.Scan(&r.ID, &r.Player, &r.Score, &r.Ticks, &r.Flaps, &endedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.EndedAt = time.UnixMilli(endedAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// HighScore returns the best score in the journal.
// Returns 0 if no runs exist.
func (s *Store) HighScore(ctx context.Context) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx, "SELECT MAX(score) FROM runs").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// Stats retrieves aggregated statistics over every run.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	var lastPlayed sql.NullInt64

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(ticks), 0), COUNT(DISTINCT player), MAX(ended_at)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.HighScore, &stats.AvgScore, &stats.TotalTicks, &stats.Players, &lastPlayed)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	if lastPlayed.Valid {
		stats.LastPlayed = time.UnixMilli(lastPlayed.Int64)
	}

	return stats, nil
}

// Clear deletes every run.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
