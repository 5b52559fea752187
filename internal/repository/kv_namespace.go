package repository

import "context"

// キーに "session:<id>:" を付けて別のストアに委ねる。
// 1つのバックエンドを複数セッションで共有するために使う。
type NamespacedStore struct {
	inner  KeyValueStore
	prefix string
}

func NewNamespacedStore(inner KeyValueStore, sessionID string) *NamespacedStore {
	return &NamespacedStore{inner: inner, prefix: "session:" + sessionID + ":"}
}

func (s *NamespacedStore) Get(ctx context.Context, key string) (string, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *NamespacedStore) Set(ctx context.Context, key string, value string) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

func (s *NamespacedStore) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, s.prefix+key)
}
