// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// Run is one finished game as recorded on the scoreboard.
type Run struct {
	ID         int64
	GameID     string
	Score      int
	Level      int
	Difficulty string // preset name, empty for the configured default
	Won        bool
	Duration   int // seconds of play
	CreatedAt  time.Time
}

// schema is applied on every Open; each statement is idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id       TEXT    NOT NULL,
	score         INTEGER NOT NULL,
	level         INTEGER NOT NULL DEFAULT 1,
	difficulty    TEXT    NOT NULL DEFAULT '',
	won           INTEGER NOT NULL DEFAULT 0,
	duration_secs INTEGER NOT NULL DEFAULT 0,
	created_at    DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(game_id, score DESC);
`

// runColumns matches the field order read by scanRuns.
const runColumns = "id, game_id, score, level, difficulty, won, duration_secs, created_at"

// Open opens the database at path, creating it and its directory on first
// use. A leading ~ is the home directory.
func Open(path string) (*Store, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory for %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return &Store{db: db}, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.Level < 1 {
		r.Level = 1
	}
	result, err := s.db.Exec(
		`INSERT INTO runs (game_id, score, level, difficulty, won, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Score, r.Level, r.Difficulty, r.Won, r.Duration,
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

// SaveScore records a bare score for the given game.
func (s *Store) SaveScore(gameID string, score, level int) (int64, error) {
	return s.SaveRun(Run{GameID: gameID, Score: score, Level: level})
}

// TopScores returns the best limit runs of a game. Ties go to the higher
// level, then to the earlier run. limit <= 0 means 10.
func (s *Store) TopScores(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(`WHERE game_id = ? ORDER BY score DESC, level DESC, id ASC LIMIT ?`, gameID, limit)
}

// AllScores returns every run of a game in TopScores order.
func (s *Store) AllScores(gameID string) ([]Run, error) {
	return s.queryRuns(`WHERE game_id = ? ORDER BY score DESC, level DESC, id ASC`, gameID)
}

func (s *Store) queryRuns(clause string, args ...any) ([]Run, error) {
	rows, err := s.db.Query("SELECT "+runColumns+" FROM runs "+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Score, &r.Level, &r.Difficulty, &r.Won, &r.Duration, &createdAt); err != nil {
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
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes every run of a game and returns how many were removed.
func (s *Store) ClearScores(gameID string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return res.RowsAffected()
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	Wins       int
	HighScore  int
	BestLevel  int
	AvgScore   float64
	TotalScore int64
	PlayTime   time.Duration
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var secs int64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0), COALESCE(MAX(level), 0),
		        COALESCE(AVG(score), 0), COALESCE(SUM(score), 0), COALESCE(SUM(duration_secs), 0)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.Wins, &stats.HighScore, &stats.BestLevel,
		&stats.AvgScore, &stats.TotalScore, &secs)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.PlayTime = time.Duration(secs) * time.Second

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE game_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), SUM(won), MAX(score), MAX(level), AVG(score), SUM(score),
		        SUM(duration_secs), MAX(created_at)
		 FROM runs
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var gs GameStats
		var secs int64
		var lastPlayed any
		if err := rows.Scan(&gs.GameID, &gs.GamesCount, &gs.Wins, &gs.HighScore, &gs.BestLevel,
			&gs.AvgScore, &gs.TotalScore, &secs, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		gs.PlayTime = time.Duration(secs) * time.Second
		gs.LastPlayed = parseTime(lastPlayed)
		stats[gs.GameID] = &gs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
