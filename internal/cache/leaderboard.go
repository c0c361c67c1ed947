package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ecotrack-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// Leaderboard rankings are recomputed from waste_entries on every request;
// this cache keeps the hot dashboard query off Postgres. Entries expire
// quickly since new logs shift the ranking.
const leaderboardTTL = 60 * time.Second

// Cache wraps the Redis client used for leaderboard snapshots
type Cache struct {
	redis *redis.Client
}

// New creates a cache from a Redis URL (redis://host:port/db)
func New(redisURL string) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Cache{redis: client}, nil
}

func leaderboardKey(period models.Period, limit int) string {
	return fmt.Sprintf("leaderboard:%s:%d", period, limit)
}

// GetLeaderboard returns the cached ranking, or (nil, nil) on a miss.
func (c *Cache) GetLeaderboard(ctx context.Context, period models.Period, limit int) ([]models.LeaderboardRow, error) {
	data, err := c.redis.Get(ctx, leaderboardKey(period, limit)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard from Redis: %w", err)
	}

	var rows []models.LeaderboardRow
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal leaderboard: %w", err)
	}

	return rows, nil
}

// SetLeaderboard stores a ranking with the standard TTL.
func (c *Cache) SetLeaderboard(ctx context.Context, period models.Period, limit int, rows []models.LeaderboardRow) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard: %w", err)
	}

	if err := c.redis.Set(ctx, leaderboardKey(period, limit), data, leaderboardTTL).Err(); err != nil {
		return fmt.Errorf("failed to set leaderboard in Redis: %w", err)
	}

	return nil
}

// Close closes the underlying Redis client
func (c *Cache) Close() error {
	return c.redis.Close()
}
