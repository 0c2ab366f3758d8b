package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-drill/internal/registry"
)

// RunEntry is a stored attempt: enough to rebuild the level and replay it.
type RunEntry struct {
	ID        int64
	GameID    string
	Attempt   registry.Attempt
	CreatedAt time.Time
}

const runColumns = `id, game_id, seed, scene, level, randomness, speed_divider,
	max_starts, scheme, token, result, pipe_length, score, created_at`

// SaveRun records a finished attempt and returns its ID.
func (s *Store) SaveRun(gameID string, a registry.Attempt) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs
		 (game_id, seed, scene, level, randomness, speed_divider, max_starts, scheme, token, result, pipe_length, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gameID, a.Seed, a.Scene, a.Level, a.Randomness, a.SpeedDivider, a.MaxStarts,
		a.Scheme, a.Token, a.Result, a.PipeLength, a.Score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RunByID retrieves a stored attempt. Returns nil if it does not exist.
func (s *Store) RunByID(id int64) (*RunEntry, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	e, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &e, nil
}

// RecentRuns retrieves the latest attempts, newest first. An empty gameID
// matches every game.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		e, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (RunEntry, error) {
	var e RunEntry
	var createdAt any
	a := &e.Attempt
	err := sc.Scan(&e.ID, &e.GameID, &a.Seed, &a.Scene, &a.Level, &a.Randomness, &a.SpeedDivider,
		&a.MaxStarts, &a.Scheme, &a.Token, &a.Result, &a.PipeLength, &a.Score, &createdAt)
	if err != nil {
		return e, err
	}
	e.CreatedAt = parseTime(createdAt)
	return e, nil
}
