package model

import "time"

// 永続側ストアの1行（cart_kv テーブル）
type KVEntry struct {
	Key       string    `gorm:"column:kv_key;type:varchar(255);primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`
}

func (KVEntry) TableName() string {
	return "cart_kv"
}
