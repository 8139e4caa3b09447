package leaderboard

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const redisKey = "connect4:leaderboard"

// RedisStore keeps the leaderboard in a Redis sorted set, scored by wins.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (rs *RedisStore) RecordWin(ctx context.Context, username string) error {
	return rs.client.ZIncrBy(ctx, redisKey, 1, username).Err()
}

func (rs *RedisStore) Top(ctx context.Context, n int) ([]Entry, error) {
	results, err := rs.client.ZRevRangeWithScores(ctx, redisKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(results))
	for _, z := range results {
		username, ok := z.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, Entry{Username: username, Wins: int(z.Score)})
	}
	return entries, nil
}
