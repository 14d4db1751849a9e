package mirror

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/sangkips/warehouse-api/internal/domain/repository"
)

type redisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore stores mirror keys as plain redis strings under prefix
func NewRedisStore(rdb *redis.Client, prefix string) repository.KeyValueStore {
	return &redisStore{rdb: rdb, prefix: prefix}
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *redisStore) Put(ctx context.Context, key string, value []byte) error {
	return s.rdb.Set(ctx, s.prefix+key, value, 0).Err()
}
