package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// StatsCache counts recommendation outcomes in a Redis ZSET per strategy
type StatsCache interface {
	Record(ctx context.Context, strategy, outcome string) error
	Top(ctx context.Context, strategy string, limit int) ([]StatEntry, error)
}

// StatEntry is how often one outcome (rule name or bucket id) was produced
type StatEntry struct {
	Outcome string `json:"outcome"`
	Count   int    `json:"count"`
	Rank    int    `json:"rank"`
}

type statsCache struct {
	client *redis.Client
}

// NewStatsCache creates a new stats cache
func NewStatsCache(client *redis.Client) StatsCache {
	return &statsCache{client: client}
}

func (c *statsCache) key(strategy string) string {
	return fmt.Sprintf("planner:stats:%s", strategy)
}

func (c *statsCache) Record(ctx context.Context, strategy, outcome string) error {
	return c.client.ZIncrBy(ctx, c.key(strategy), 1, outcome).Err()
}

func (c *statsCache) Top(ctx context.Context, strategy string, limit int) ([]StatEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(strategy), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]StatEntry, len(results))
	for i, z := range results {
		member, _ := z.Member.(string)
		entries[i] = StatEntry{
			Outcome: member,
			Count:   int(z.Score),
			Rank:    i + 1,
		}
	}
	return entries, nil
}
