package repository

import (
	"context"
	"errors"
	"time"

	repo "storefront/internal/repository"

	"github.com/redis/go-redis/v9"
)

// セッション側（Redis）のKeyValueStore
// 書き込みのたびにTTLを付け直すので、触られなくなったカートは期限で消える。
type KVRedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// ttl が0以下なら期限なし
func NewKVRedisStore(client *redis.Client, ttl time.Duration) *KVRedisStore {
	if ttl < 0 {
		ttl = 0
	}
	return &KVRedisStore{client: client, ttl: ttl}
}

func (s *KVRedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", repo.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *KVRedisStore) Set(ctx context.Context, key string, value string) error {
	return s.client.Set(ctx, key, value, s.ttl).Err()
}

func (s *KVRedisStore) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
