// Package leaderboard keeps a global XP ranking in a Redis sorted set.
// The feature is optional: the server runs without it when no Redis
// address is configured.
package leaderboard

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const xpKey = "leaderboard:xp"

type Entry struct {
	UserID string `json:"user_id"`
	XP     int64  `json:"xp"`
	Rank   int64  `json:"rank"`
}

type Board struct {
	client *redis.Client
}

func New(addr string) *Board {
	return &Board{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (b *Board) Close() error {
	return b.client.Close()
}

// AddXP adds session XP to the user's lifetime total in the ranking.
func (b *Board) AddXP(ctx context.Context, userID string, xp int) error {
	return b.client.ZIncrBy(ctx, xpKey, float64(xp), userID).Err()
}

// Top returns the highest-XP users, best first.
func (b *Board) Top(ctx context.Context, limit int64) ([]Entry, error) {
	results, err := b.client.ZRevRangeWithScores(ctx, xpKey, 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(results))
	for i, result := range results {
		userID, ok := result.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			UserID: userID,
			XP:     int64(result.Score),
			Rank:   int64(i) + 1,
		})
	}
	return entries, nil
}

// Rank returns the user's 1-indexed position, 0 when unranked.
func (b *Board) Rank(ctx context.Context, userID string) (int64, error) {
	rank, err := b.client.ZRevRank(ctx, xpKey, userID).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return rank + 1, nil
}
