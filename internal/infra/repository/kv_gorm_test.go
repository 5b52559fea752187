package repository_test

import (
	"os"
	"testing"

	"storefront/internal/domain/model"
	infraRepo "storefront/internal/infra/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TEST_DATABASE_URL が無ければスキップ
func TestKVGormStore(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.KVEntry{}))
	t.Cleanup(func() {
		db.Where("kv_key = ?", "cart").Delete(&model.KVEntry{})
	})

	exerciseStore(t, infraRepo.NewKVGormStore(db))
}
