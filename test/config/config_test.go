package config_test

import (
	"os"
	"testing"
	"time"

	"memoflow/src/config"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	keys := []string{
		"SERVER_PORT", "SERVER_ENV",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"LOG_LEVEL", "LOG_DIRECTORY", "LOG_UPLOAD_ENABLED", "LOG_UPLOAD_MAX_AGE", "LOG_UPLOAD_INTERVAL",
		"S3_ENDPOINT", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY", "S3_REGION", "S3_BUCKET", "S3_USE_SSL",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	}
	clear := func() {
		for _, key := range keys {
			os.Unsetenv(key)
		}
	}
	clear()
	defer clear()

	t.Run("デフォルト値でのconfig読み込み", func(t *testing.T) {
		cfg := config.LoadConfig()

		assert.Equal(t, "8000", cfg.Server.Port)
		assert.Equal(t, "development", cfg.Server.Env)
		assert.False(t, cfg.Server.IsProduction())

		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "memoflow", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)

		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "logs", cfg.Log.Directory)
		assert.False(t, cfg.Log.UploadEnabled)
		assert.Equal(t, 24*time.Hour, cfg.Log.UploadMaxAge)
		assert.Equal(t, 1*time.Hour, cfg.Log.UploadInterval)

		assert.Equal(t, "memoflow-logs", cfg.S3.Bucket)
		assert.Equal(t, "us-east-1", cfg.S3.Region)

		assert.Equal(t, 100, cfg.RateLimit.RPS)
		assert.Equal(t, 200, cfg.RateLimit.Burst)
	})

	t.Run("環境変数でのconfig上書き", func(t *testing.T) {
		os.Setenv("SERVER_PORT", "9090")
		os.Setenv("SERVER_ENV", "production")
		os.Setenv("DB_PORT", "15432")
		os.Setenv("LOG_UPLOAD_ENABLED", "true")
		os.Setenv("LOG_UPLOAD_INTERVAL", "30m")
		os.Setenv("RATE_LIMIT_RPS", "10")
		defer clear()

		cfg := config.LoadConfig()

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.True(t, cfg.Server.IsProduction())
		assert.Equal(t, 15432, cfg.Database.Port)
		assert.True(t, cfg.Log.UploadEnabled)
		assert.Equal(t, 30*time.Minute, cfg.Log.UploadInterval)
		assert.Equal(t, 10, cfg.RateLimit.RPS)
	})

	t.Run("不正な数値はデフォルトにフォールバック", func(t *testing.T) {
		os.Setenv("DB_PORT", "not-a-number")
		os.Setenv("LOG_UPLOAD_MAX_AGE", "not-a-duration")
		defer clear()

		cfg := config.LoadConfig()

		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, 24*time.Hour, cfg.Log.UploadMaxAge)
	})
}
