// Package storage provides SQLite-based persistence for finished arena runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/zone-arena/internal/games/arena"
)

// DefaultPath is where the run history lives unless --db says otherwise.
const DefaultPath = "~/.arena/runs.db"

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one finished session as recorded in the history.
type Run struct {
	ID              int64
	RunID           string
	Difficulty      string
	Class           string
	Score           int
	Kills           int
	DamageDealt     int
	Accuracy        float64
	SurvivedSeconds int
	Rank            string
	CreatedAt       time.Time
}

// NewRun converts game-over stats into a run record with a fresh run ID.
func NewRun(s arena.GameOverStats) Run {
	return Run{
		RunID:           uuid.NewString(),
		Difficulty:      string(s.Difficulty),
		Class:           string(s.Class),
		Score:           s.Score,
		Kills:           s.Kills,
		DamageDealt:     s.DamageDealt,
		Accuracy:        s.Accuracy,
		SurvivedSeconds: s.SurvivedSeconds,
		Rank:            s.Rank,
	}
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
			run_id TEXT NOT NULL UNIQUE,
			difficulty TEXT NOT NULL,
			class TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			kills INTEGER NOT NULL DEFAULT 0,
			damage_dealt INTEGER NOT NULL DEFAULT 0,
			accuracy REAL NOT NULL DEFAULT 0,
			survived_secs INTEGER NOT NULL DEFAULT 0,
			rank TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(difficulty, score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_class ON runs(class);
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

// SaveRun records a finished run. A missing RunID is generated.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}

	result, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, difficulty, class, score, kills, damage_dealt, accuracy, survived_secs, rank)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Difficulty, r.Class, r.Score, r.Kills, r.DamageDealt, r.Accuracy, r.SurvivedSeconds, r.Rank,
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

// UpdateRank replaces the rank of a stored run, used once the after-action
// report arrives.
func (s *Store) UpdateRank(runID, rank string) error {
	res, err := s.db.Exec("UPDATE runs SET rank = ? WHERE run_id = ?", rank, runID)
	if err != nil {
		return fmt.Errorf("storage: cannot update rank: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: cannot update rank: run %s not found", runID)
	}
	return nil
}

const runColumns = `id, run_id, difficulty, class, score, kills, damage_dealt, accuracy, survived_secs, rank, created_at`

// TopRuns retrieves the best N runs, ordered by score descending.
// An empty difficulty matches every difficulty.
func (s *Store) TopRuns(difficulty string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR difficulty = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		difficulty, difficulty, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RecentRuns retrieves the most recent runs.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RunByID retrieves a run by its run ID. Returns nil if it does not exist.
func (s *Store) RunByID(runID string) (*Run, error) {
	rows, err := s.db.Query(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.RunID,
			&r.Difficulty,
			&r.Class,
			&r.Score,
			&r.Kills,
			&r.DamageDealt,
			&r.Accuracy,
			&r.SurvivedSeconds,
			&r.Rank,
			&createdAt,
		); err != nil {
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

// HighScore returns the highest score on the given difficulty.
// Returns 0 if no runs exist.
func (s *Store) HighScore(difficulty string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE difficulty = ?",
		difficulty,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRuns deletes every run on the given difficulty, or all runs when empty.
func (s *Store) ClearRuns(difficulty string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR difficulty = ?", difficulty, difficulty)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// ClassStats contains aggregated statistics for one player class.
type ClassStats struct {
	Class        string
	Runs         int
	HighScore    int
	AvgScore     float64
	TotalKills   int64
	BestSurvival int
	LastPlayed   time.Time
}

// GetClassStats retrieves aggregated statistics for one class.
func (s *Store) GetClassStats(class string) (*ClassStats, error) {
	stats := &ClassStats{Class: class}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(kills), 0), COALESCE(MAX(survived_secs), 0)
		 FROM runs WHERE class = ?`,
		class,
	).Scan(&stats.Runs, &stats.HighScore, &stats.AvgScore, &stats.TotalKills, &stats.BestSurvival)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get class stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE class = ? ORDER BY id DESC LIMIT 1`,
		class,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllClassStats retrieves statistics for every class that has been played.
func (s *Store) GetAllClassStats() (map[string]*ClassStats, error) {
	rows, err := s.db.Query(
		`SELECT class, COUNT(*), MAX(score), AVG(score), SUM(kills), MAX(survived_secs), MAX(created_at)
		 FROM runs
		 GROUP BY class`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all class stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ClassStats)
	for rows.Next() {
		var cs ClassStats
		var lastPlayed any
		if err := rows.Scan(&cs.Class, &cs.Runs, &cs.HighScore, &cs.AvgScore, &cs.TotalKills, &cs.BestSurvival, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		cs.LastPlayed = parseTime(lastPlayed)
		stats[cs.Class] = &cs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
