package storage

import (
	"context"
	"fmt"
)

// Standing is one player's position on a leaderboard: their best round.
type Standing struct {
	Rank  int    `json:"rank"`
	User  string `json:"user"`
	Score int    `json:"score"`
}

// Leaderboard ranks players by their best score, fewest moves first.
type Leaderboard interface {
	Submit(ctx context.Context, user, gameID string, score int) error
	Top(ctx context.Context, gameID string, limit int) ([]Standing, error)
}

var _ Leaderboard = (*Store)(nil)

// Submit records a finished round.
func (s *Store) Submit(ctx context.Context, user, gameID string, score int) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO scores (player, game_id, score) VALUES (?, ?, ?)",
		user, gameID, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save score: %w", err)
	}
	return nil
}

// Top returns one standing per player, ranked by their best score.
// Equal bests are ordered by player name.
func (s *Store) Top(ctx context.Context, gameID string, limit int) ([]Standing, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT player, MIN(score) AS best
		 FROM scores
		 WHERE game_id = ?
		 GROUP BY player
		 ORDER BY best ASC, player ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var standings []Standing
	for rows.Next() {
		st := Standing{Rank: len(standings) + 1}
		if err := rows.Scan(&st.User, &st.Score); err != nil {
			return nil, fmt.Errorf("storage: cannot scan standing: %w", err)
		}
		standings = append(standings, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return standings, nil
}

// Cached is a leaderboard that records every round in Primary and mirrors
// it into Cache, which serves the rankings.
type Cached struct {
	Primary Leaderboard
	Cache   Leaderboard
}

// Submit writes to Primary first; a Primary failure skips the cache.
func (c Cached) Submit(ctx context.Context, user, gameID string, score int) error {
	if err := c.Primary.Submit(ctx, user, gameID, score); err != nil {
		return err
	}
	if err := c.Cache.Submit(ctx, user, gameID, score); err != nil {
		return fmt.Errorf("storage: cannot update cached leaderboard: %w", err)
	}
	return nil
}

// Top reads from the cache.
func (c Cached) Top(ctx context.Context, gameID string, limit int) ([]Standing, error) {
	return c.Cache.Top(ctx, gameID, limit)
}
