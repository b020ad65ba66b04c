package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ScoreEntry is one finished run on the scoreboard.
type ScoreEntry struct {
	ID        int64
	Pack      string
	Level     int // highest level reached, 1-based
	Score     int
	CreatedAt time.Time
}

// PackStats aggregates the runs recorded for a pack.
type PackStats struct {
	Pack       string
	GamesCount int
	HighScore  int
	BestLevel  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// SaveScore records a finished run and returns its ID.
func (s *Store) SaveScore(pack string, level, score int) (int64, error) {
	var id int64
	err := s.db.QueryRow(
		s.rebind("INSERT INTO scores (pack, level, score) VALUES (?, ?, ?) RETURNING id"),
		pack, level, score,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	return id, nil
}

// TopScores returns the best runs for a pack, highest first.
// A non-positive limit means 10.
func (s *Store) TopScores(pack string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(
		`SELECT id, pack, level, score, created_at
		 FROM scores
		 WHERE pack = ?
		 ORDER BY score DESC, level DESC, id ASC
		 LIMIT ?`,
		pack, limit,
	)
}

// AllScores returns every run for a pack, highest first.
func (s *Store) AllScores(pack string) ([]ScoreEntry, error) {
	return s.queryScores(
		`SELECT id, pack, level, score, created_at
		 FROM scores
		 WHERE pack = ?
		 ORDER BY score DESC, level DESC, id ASC`,
		pack,
	)
}

func (s *Store) queryScores(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Pack, &e.Level, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the best score for a pack, or 0 if none exist.
func (s *Store) HighScore(pack string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(s.rebind("SELECT MAX(score) FROM scores WHERE pack = ?"), pack).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes every run for a pack.
func (s *Store) ClearScores(pack string) error {
	if _, err := s.db.Exec(s.rebind("DELETE FROM scores WHERE pack = ?"), pack); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GetPackStats aggregates the runs for one pack.
func (s *Store) GetPackStats(pack string) (*PackStats, error) {
	stats := &PackStats{Pack: pack}

	err := s.db.QueryRow(
		s.rebind(`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(MAX(level), 0),
		        COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM scores WHERE pack = ?`),
		pack,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.BestLevel, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get pack stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		s.rebind(`SELECT created_at FROM scores WHERE pack = ? ORDER BY created_at DESC, id DESC LIMIT 1`),
		pack,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}
	return stats, nil
}

// GetAllPackStats aggregates the runs of every pack that has been played.
func (s *Store) GetAllPackStats() (map[string]*PackStats, error) {
	rows, err := s.db.Query(
		`SELECT pack, COUNT(*), MAX(score), MAX(level), AVG(score), SUM(score), MAX(created_at)
		 FROM scores
		 GROUP BY pack`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get pack stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*PackStats)
	for rows.Next() {
		var ps PackStats
		var lastPlayed any
		if err := rows.Scan(&ps.Pack, &ps.GamesCount, &ps.HighScore, &ps.BestLevel, &ps.AvgScore, &ps.TotalScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ps.LastPlayed = parseTime(lastPlayed)
		stats[ps.Pack] = &ps
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
