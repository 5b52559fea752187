package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Configはアプリ全体の設定
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`  // サーバーポート
	AppEnv   string `env:"APP_ENV" envDefault:"dev"` // dev/prod
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// 永続側ストア（Postgres）。DATABASE_URL があれば最優先。
	DatabaseURL      string `env:"DATABASE_URL"`
	PostgresHost     string `env:"POSTGRES_HOST"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"storefront"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	// セッション側ストア（Redis）。REDIS_URL があれば最優先。
	RedisURL      string `env:"REDIS_URL"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	SessionSecret       string        `env:"SESSION_SECRET"`
	SessionTTL          time.Duration `env:"SESSION_TTL" envDefault:"24h"`      // cookieとRedisの期限
	SessionIdleTTL      time.Duration `env:"SESSION_IDLE_TTL" envDefault:"30m"` // メモリ上のカートを捨てるまで
	StorageWriteTimeout time.Duration `env:"STORAGE_WRITE_TIMEOUT" envDefault:"2s"`
	CookieSecure        bool          `env:"COOKIE_SECURE" envDefault:"false"`

	OrdersAPIURL     string        `env:"ORDERS_API_URL"`
	OrdersAPITimeout time.Duration `env:"ORDERS_API_TIMEOUT" envDefault:"10s"`
}

// dev以外ではセッション署名の鍵が必須
var ErrSessionSecretRequired = errors.New("SESSION_SECRET is required")

const devSessionSecret = "dev_secret_change_me"

// Loadは .env（あれば）と環境変数から設定を読む
func Load() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}
	return Parse()
}

// 環境変数だけから読む
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	//必須チェック
	if strings.TrimSpace(cfg.SessionSecret) == "" {
		if !cfg.IsDev() {
			return Config{}, ErrSessionSecretRequired
		}
		cfg.SessionSecret = devSessionSecret
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be positive")
	}
	if cfg.StorageWriteTimeout <= 0 {
		return Config{}, fmt.Errorf("STORAGE_WRITE_TIMEOUT must be positive")
	}

	return cfg, nil
}

func (c Config) IsDev() bool {
	return c.AppEnv == "dev"
}

// ":8080" 形式のアドレス
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// Postgresの設定があるか
func (c Config) HasPostgres() bool {
	return c.DatabaseURL != "" || c.PostgresHost != ""
}

// Redisの設定があるか
func (c Config) HasRedis() bool {
	return c.RedisURL != "" || c.RedisAddr != ""
}

func (c Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}
