package repository

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 永続側（Postgres）のKeyValueStore
type KVGormStore struct {
	db *gorm.DB
}

// DI
func NewKVGormStore(db *gorm.DB) *KVGormStore {
	return &KVGormStore{db: db}
}

func (s *KVGormStore) Get(ctx context.Context, key string) (string, error) {
	var row model.KVEntry

	err := s.db.WithContext(ctx).
		Where("kv_key = ?", key).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", repo.ErrNotFound
		}
		return "", err
	}
	return row.Value, nil
}

// 同じキーは上書き（upsert）
func (s *KVGormStore) Set(ctx context.Context, key string, value string) error {
	row := model.KVEntry{Key: key, Value: value, UpdatedAt: time.Now()}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kv_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
}

// 無いキーの削除はエラーにしない
func (s *KVGormStore) Remove(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).
		Where("kv_key = ?", key).
		Delete(&model.KVEntry{}).Error
}
