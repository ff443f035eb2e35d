package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

type CachedBinStatus struct {
	CurrentLevel float64   `json:"currentLevel"`
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
}

// BinStatusCache keeps the latest reading per bin so dashboard polling
// does not hit Postgres on every request.
type BinStatusCache struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewBinStatusCache(client *goredis.Client, ttlSeconds int) *BinStatusCache {
	return &BinStatusCache{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

func (c *BinStatusCache) Set(ctx context.Context, binID string, level float64, status string) error {
	data := CachedBinStatus{
		CurrentLevel: level,
		Status:       status,
		Timestamp:    time.Now(),
	}
	bytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal bin status: %w", err)
	}
	return c.client.Set(ctx, binStatusKey(binID), bytes, c.ttl).Err()
}

func (c *BinStatusCache) Get(ctx context.Context, binID string) (*CachedBinStatus, error) {
	bytes, err := c.client.Get(ctx, binStatusKey(binID)).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get bin status: %w", err)
	}

	var status CachedBinStatus
	if err := json.Unmarshal(bytes, &status); err != nil {
		return nil, fmt.Errorf("unmarshal bin status: %w", err)
	}
	return &status, nil
}

func (c *BinStatusCache) Invalidate(ctx context.Context, binID string) error {
	return c.client.Del(ctx, binStatusKey(binID)).Err()
}

func binStatusKey(binID string) string {
	return fmt.Sprintf("bin:status:%s", binID)
}
