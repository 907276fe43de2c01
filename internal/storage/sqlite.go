// Package storage provides SQLite-based persistence for recorded runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrRunNotFound is returned when a run id does not exist.
var ErrRunNotFound = errors.New("storage: run not found")

// End reasons stored with each run.
const (
	EndDead = "dead"
	EndQuit = "quit"
)

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db *sql.DB
}

// Run is one recorded attempt. Config and Inputs are opaque blobs owned by
// the replay package; listings leave them nil.
type Run struct {
	ID        int64
	GameID    string
	Player    string
	Seed      int64
	Config    []byte // YAML snapshot of the simulation config
	Inputs    []byte // encoded per-tick input log
	Ticks     int
	Score     int
	EndReason string
	CreatedAt time.Time
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL,
			config BLOB NOT NULL,
			inputs BLOB NOT NULL,
			ticks INTEGER NOT NULL,
			score INTEGER NOT NULL,
			end_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player, created_at DESC);
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

// SaveRun records a finished run and returns its id.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (game_id, player, seed, config, inputs, ticks, score, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Player, r.Seed, r.Config, r.Inputs, r.Ticks, r.Score, r.EndReason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Run loads a run including its config and input blobs.
func (s *Store) Run(id int64) (Run, error) {
	var r Run
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, game_id, player, seed, config, inputs, ticks, score, end_reason, created_at
		 FROM runs WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.GameID, &r.Player, &r.Seed, &r.Config, &r.Inputs,
		&r.Ticks, &r.Score, &r.EndReason, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot query run: %w", err)
	}

	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// RecentRuns lists the newest runs first, without blobs.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	return s.listRuns(
		`SELECT id, game_id, player, seed, ticks, score, end_reason, created_at
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		normalizeLimit(limit),
	)
}

// PlayerRuns lists the newest runs of one player first, without blobs.
func (s *Store) PlayerRuns(player string, limit int) ([]Run, error) {
	return s.listRuns(
		`SELECT id, game_id, player, seed, ticks, score, end_reason, created_at
		 FROM runs
		 WHERE player = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		player, normalizeLimit(limit),
	)
}

func (s *Store) listRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Player, &r.Seed, &r.Ticks,
			&r.Score, &r.EndReason, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// DeleteRun removes a run.
func (s *Store) DeleteRun(id int64) error {
	res, err := s.db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	return nil
}

// Stats contains aggregated journal statistics.
type Stats struct {
	Runs       int
	TotalTicks int
	LastPlayed time.Time
}

// Stats aggregates runs for a player, or for everyone when player is empty.
func (s *Store) Stats(player string) (Stats, error) {
	var st Stats
	var total sql.NullInt64
	var last any

	query := "SELECT COUNT(*), SUM(ticks), MAX(created_at) FROM runs"
	var args []any
	if player != "" {
		query += " WHERE player = ?"
		args = append(args, player)
	}

	if err := s.db.QueryRow(query, args...).Scan(&st.Runs, &total, &last); err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	if total.Valid {
		st.TotalTicks = int(total.Int64)
	}
	st.LastPlayed = parseTime(last)
	return st, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	return limit
}

// parseTime handles the driver returning DATETIME as time.Time or string.
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
