package repository

import (
	"context"
	"sync"

	repo "storefront/internal/repository"
)

// プロセス内のKeyValueStore。
// バックエンド未設定・接続失敗時の代わりと、テストで使う。
type KVMemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewKVMemoryStore() *KVMemoryStore {
	return &KVMemoryStore{data: make(map[string]string)}
}

func (s *KVMemoryStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return "", repo.ErrNotFound
	}
	return v, nil
}

func (s *KVMemoryStore) Set(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

func (s *KVMemoryStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

// 保存中のキー数
func (s *KVMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
