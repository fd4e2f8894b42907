package storage

import (
	"context"
	"errors"
	"time"

	"storefront/models"

	"github.com/redis/go-redis/v9"
)

const defaultRedisTimeout = 2 * time.Second

// RedisStore keeps the cart under a single Redis string key.
type RedisStore struct {
	failures
	rdb     *redis.Client
	key     string
	timeout time.Duration
}

func NewRedisStore(rdb *redis.Client, key string, timeout time.Duration) *RedisStore {
	if key == "" {
		key = DefaultKey
	}
	if timeout <= 0 {
		timeout = defaultRedisTimeout
	}
	return &RedisStore{rdb: rdb, key: key, timeout: timeout}
}

func (s *RedisStore) Load() []models.LineItem {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []models.LineItem{}
	}
	if err != nil {
		s.report("load", s.key, err)
		return []models.LineItem{}
	}

	items, err := Decode(data)
	if err != nil {
		s.report("load", s.key, err)
		return []models.LineItem{}
	}
	return items
}

func (s *RedisStore) Save(items []models.LineItem) {
	data, err := Encode(items)
	if err != nil {
		s.report("save", s.key, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.rdb.Set(ctx, s.key, data, 0).Err(); err != nil {
		s.report("save", s.key, err)
	}
}

func (s *RedisStore) Erase() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.rdb.Del(ctx, s.key).Err(); err != nil {
		s.report("erase", s.key, err)
	}
}
