package storage

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisSlot keeps the board document under a single Redis key.
type RedisSlot struct {
	client *redis.Client
	key    string
}

// NewRedisSlot creates a slot using the provided client. An empty key falls
// back to DefaultKey.
func NewRedisSlot(client *redis.Client, key string) *RedisSlot {
	if key == "" {
		key = DefaultKey
	}
	return &RedisSlot{client: client, key: key}
}

func (s *RedisSlot) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (s *RedisSlot) Save(ctx context.Context, data []byte) error {
	return s.client.Set(ctx, s.key, data, 0).Err()
}

func (s *RedisSlot) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
