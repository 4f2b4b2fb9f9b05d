// Package redisboard keeps leaderboards in Redis sorted sets, one set per
// game, holding each player's best score.
package redisboard

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/vovakirdan/echo-arcade/internal/storage"
)

const defaultPrefix = "arcade:leaderboard:"

// Board is a storage.Leaderboard backed by Redis.
type Board struct {
	client *redis.Client
	prefix string
}

var _ storage.Leaderboard = (*Board)(nil)

// New wraps an existing client. An empty prefix selects the default.
func New(client *redis.Client, prefix string) *Board {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Board{client: client, prefix: prefix}
}

// Dial connects to addr and checks the server answers.
func Dial(ctx context.Context, addr string) (*Board, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redisboard: cannot reach %s: %w", addr, err)
	}
	return New(client, ""), nil
}

func (b *Board) key(gameID string) string {
	return b.prefix + gameID
}

// Submit records score for user, keeping only their lowest.
func (b *Board) Submit(ctx context.Context, user, gameID string, score int) error {
	err := b.client.ZAddArgs(ctx, b.key(gameID), redis.ZAddArgs{
		LT:      true,
		Members: []redis.Z{{Score: float64(score), Member: user}},
	}).Err()
	if err != nil {
		return fmt.Errorf("redisboard: cannot submit score: %w", err)
	}
	return nil
}

// Top returns up to limit standings, lowest score first.
func (b *Board) Top(ctx context.Context, gameID string, limit int) ([]storage.Standing, error) {
	if limit <= 0 {
		limit = 10
	}

	entries, err := b.client.ZRangeWithScores(ctx, b.key(gameID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("redisboard: cannot read leaderboard: %w", err)
	}

	standings := make([]storage.Standing, 0, len(entries))
	for i, e := range entries {
		user, _ := e.Member.(string)
		standings = append(standings, storage.Standing{
			Rank:  i + 1,
			User:  user,
			Score: int(e.Score),
		})
	}
	return standings, nil
}

// Clear drops the leaderboard for a game.
func (b *Board) Clear(ctx context.Context, gameID string) error {
	return b.client.Del(ctx, b.key(gameID)).Err()
}

// Close releases the underlying client.
func (b *Board) Close() error {
	return b.client.Close()
}
