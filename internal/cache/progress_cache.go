package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"mediaplanner/internal/model"
	"time"

	"github.com/redis/go-redis/v9"
)

// ProgressCache keeps unfinished step-by-step runs in Redis
type ProgressCache interface {
	Set(ctx context.Context, p *model.Progress) error
	Get(ctx context.Context, id string) (*model.Progress, error)
	// Delete removes a run and reports whether this call removed it
	Delete(ctx context.Context, id string) (bool, error)
}

type progressCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProgressCache creates a progress cache whose entries expire after ttl
func NewProgressCache(client *redis.Client, ttl time.Duration) ProgressCache {
	return &progressCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *progressCache) key(id string) string {
	return fmt.Sprintf("planner:progress:%s", id)
}

func (c *progressCache) Set(ctx context.Context, p *model.Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(p.ID), data, c.ttl).Err()
}

func (c *progressCache) Get(ctx context.Context, id string) (*model.Progress, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var p model.Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *progressCache) Delete(ctx context.Context, id string) (bool, error) {
	n, err := c.client.Del(ctx, c.key(id)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
