package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
)

// RedisStore backs PendingStore with Redis so authorizations survive process
// restarts and are visible across API replicas.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "pending_auth:"}
}

func (s *RedisStore) Set(ctx context.Context, key string, value entity.PendingAuthorization, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode authorization: %w", err)
	}
	return s.client.Set(ctx, s.prefix+key, data, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, key string) (*entity.PendingAuthorization, bool, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var value entity.PendingAuthorization
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, false, fmt.Errorf("failed to decode authorization: %w", err)
	}
	return &value, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
