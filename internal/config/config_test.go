package config_test

import (
	"testing"
	"time"

	"storefront/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("SESSION_SECRET", "")

	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTTL)
	assert.Equal(t, 2*time.Second, cfg.StorageWriteTimeout)
	assert.NotEmpty(t, cfg.SessionSecret)
}

func TestParse_SecretRequiredOutsideDev(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("SESSION_SECRET", "")

	_, err := config.Parse()
	assert.ErrorIs(t, err, config.ErrSessionSecretRequired)
}

func TestParse_BadDuration(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("SESSION_TTL", "soon")

	_, err := config.Parse()
	assert.Error(t, err)
}

func TestConfig_PostgresDSN(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PASSWORD", "pw")

	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.True(t, cfg.HasPostgres())
	assert.Equal(t, "host=db port=5432 user=postgres password=pw dbname=storefront sslmode=disable", cfg.PostgresDSN())

	cfg.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", cfg.PostgresDSN())
}

func TestConfig_Addr(t *testing.T) {
	assert.Equal(t, ":9000", config.Config{Port: ":9000"}.Addr())
	assert.Equal(t, ":9000", config.Config{Port: "9000"}.Addr())
}
