package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sirpyerre/posts-gateway/internal/core/domain"
)

const listKey = "posts:list"

// PostCache stores the upstream post listing in Redis for a short TTL so
// repeated authenticated reads don't hammer the upstream API.
type PostCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPostCache creates a PostCache wrapping the given Redis client.
func NewPostCache(client *redis.Client, ttl time.Duration) *PostCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &PostCache{client: client, ttl: ttl}
}

// GetList returns the cached listing; the boolean reports a hit.
func (c *PostCache) GetList(ctx context.Context) ([]domain.Post, bool, error) {
	raw, err := c.client.Get(ctx, listKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var posts []domain.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		// Corrupt entry: treat as a miss and let the next Set repair it.
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	return posts, true, nil
}

// SetList stores the listing, expiring after the configured TTL.
func (c *PostCache) SetList(ctx context.Context, posts []domain.Post) error {
	raw, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, listKey, raw, c.ttl).Err()
}

// InvalidateList drops the cached listing after a mutation.
func (c *PostCache) InvalidateList(ctx context.Context) error {
	return c.client.Del(ctx, listKey).Err()
}
