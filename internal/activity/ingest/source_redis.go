package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// KeyReader is the subset of the redis client used by RedisSource.
type KeyReader interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisSource reads the CSV document stored as a string value under key.
type RedisSource struct {
	client KeyReader
	key    string
}

func NewRedisSource(client KeyReader, key string) (*RedisSource, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if key == "" {
		return nil, fmt.Errorf("redis key is required")
	}
	return &RedisSource{client: client, key: key}, nil
}

func (s *RedisSource) Name() string {
	return "redis:" + s.key
}

func (s *RedisSource) Fetch(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, unavailable(s.Name(), fmt.Errorf("key not found"))
	}
	if err != nil {
		return nil, unavailable(s.Name(), err)
	}
	return data, nil
}
