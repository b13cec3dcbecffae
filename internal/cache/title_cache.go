package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"reviewhub/internal/api/dto"

	"github.com/redis/go-redis/v9"
)

const titleKeyPrefix = "title:"

// TitleCache keeps assembled title payloads in redis so catalog reads skip
// the joins. The derived rating is NEVER cached; callers recompute it on
// every read and stamp it onto whatever this cache returns.
type TitleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTitleCache connects to redis. A nil *TitleCache is a valid no-op cache,
// which keeps the services runnable without redis in tests and dev.
func NewTitleCache(redisURL, password string, ttl time.Duration) (*TitleCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &TitleCache{client: client, ttl: ttl}, nil
}

func (c *TitleCache) Get(ctx context.Context, titleID int64) *dto.TitleResponse {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := c.client.Get(ctx, titleKey(titleID)).Bytes()
	if err != nil {
		return nil
	}
	var resp dto.TitleResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil
	}
	return &resp
}

func (c *TitleCache) Set(ctx context.Context, titleID int64, resp *dto.TitleResponse) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	// Best effort; a miss on the next read just hits the store.
	c.client.Set(ctx, titleKey(titleID), raw, c.ttl)
}

func (c *TitleCache) Invalidate(ctx context.Context, titleID int64) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, titleKey(titleID))
}

// InvalidateAll drops every cached title. Used when a category or genre
// changes, since those are embedded in an unknown set of title payloads.
func (c *TitleCache) InvalidateAll(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, titleKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
}

func (c *TitleCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func titleKey(titleID int64) string {
	return fmt.Sprintf("%s%d", titleKeyPrefix, titleID)
}
