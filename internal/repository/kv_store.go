package repository

import (
	"context"
	"errors"
)

// キーが無い
var ErrNotFound = errors.New("not found")

// 文字列の値をキーで保存するだけのストア。
// 実装は失敗しうる（接続断・容量不足など）。Getで値が無いときは ErrNotFound を返す。
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
}

// 名前付きのバックエンド（ログとデバッグ表示用）
type NamedStore struct {
	Name  string
	Store KeyValueStore
}
