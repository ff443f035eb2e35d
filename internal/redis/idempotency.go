package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// IdempotencyStore deduplicates retried mutations (sensor gateways resend
// readings on flaky links). Keys are scoped by caller identity.
type IdempotencyStore struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewIdempotencyStore(client *goredis.Client, ttlSeconds int) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

func (s *IdempotencyStore) Check(ctx context.Context, scope, key string) ([]byte, bool, error) {
	k := idempotencyKey(scope, key)
	bytes, err := s.client.Get(ctx, k).Bytes()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("check idempotency key: %w", err)
	}
	return bytes, true, nil
}

func (s *IdempotencyStore) Set(ctx context.Context, scope, key string, response []byte) error {
	k := idempotencyKey(scope, key)
	_, err := s.client.SetNX(ctx, k, response, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("set idempotency key: %w", err)
	}
	return nil
}

func idempotencyKey(scope, key string) string {
	return fmt.Sprintf("idempotency:%s:%s", scope, key)
}
